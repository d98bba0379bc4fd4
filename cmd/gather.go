package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/imageio"
	"github.com/Beastly713/steg/pkg/pipeline"
	"github.com/Beastly713/steg/pkg/stego"
)

var (
	gatherDest      string
	gatherOverwrite bool
)

// gatherCmd represents the gather command
var gatherCmd = &cobra.Command{
	Use:   "gather [image or directory]...",
	Short: "Reconstruct a file from images made by spread",
	Long: `Gather extracts shard envelopes from the given stego images (directories
are scanned for .png and .bmp files), groups them by spread session and
reconstructs every file that has enough shards.

Images without a shard envelope are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Gather files
		paths, err := collectImages(args)
		if err != nil {
			return err
		}

		// 2. Extract envelopes
		var shards []*pipeline.ShardFile
		for _, path := range paths {
			shard, err := extractShard(path)
			if err != nil {
				log.Warn().Err(err).Str("image", path).Msg("skipping")
				continue
			}
			shards = append(shards, shard)
		}

		if len(shards) == 0 {
			return fmt.Errorf("no shards found in %s", strings.Join(args, ", "))
		}

		// 3. Process Each Group
		groups, keys := pipeline.GroupShards(shards)
		restored := 0
		for _, key := range keys {
			group := groups[key]
			ref := group[0].Header
			fmt.Fprintf(cmd.OutOrStdout(), "Found shards for: %s (%d/%d)\n", ref.OriginalFilename, len(group), ref.Threshold)

			if len(group) < ref.Threshold {
				log.Warn().Str("file", ref.OriginalFilename).Int("need", ref.Threshold).Int("found", len(group)).Msg("not enough shards")
				continue
			}

			data, err := pipeline.JoinPipeline(group)
			if err != nil {
				log.Error().Err(err).Str("file", ref.OriginalFilename).Msg("reconstruction failed")
				continue
			}

			// 4. Write Output (header names are never trusted as paths)
			finalPath := filepath.Join(gatherDest, filepath.Base(ref.OriginalFilename))
			if _, err := os.Stat(finalPath); err == nil && !(gatherOverwrite || cfg.Overwrite) {
				log.Warn().Str("file", finalPath).Msg("already exists, use --overwrite to replace it")
				continue
			}
			if err := os.WriteFile(finalPath, data, 0644); err != nil {
				return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
			}

			restored++
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", finalPath)
		}

		if restored == 0 {
			return fmt.Errorf("no file could be reconstructed")
		}
		return nil
	},
}

// collectImages expands directories into the lossless images they contain.
func collectImages(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := imageio.FormatFromPath(e.Name()); err != nil {
				continue
			}
			paths = append(paths, filepath.Join(arg, e.Name()))
		}
	}
	return paths, nil
}

func extractShard(path string) (*pipeline.ShardFile, error) {
	img, _, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	envelope, err := stego.Decode(img)
	if err != nil {
		return nil, err
	}
	return pipeline.ParseEnvelope(envelope)
}

func init() {
	rootCmd.AddCommand(gatherCmd)

	gatherCmd.Flags().StringVarP(&gatherDest, "destination", "d", "", "Directory to write the reconstructed file")
	gatherCmd.Flags().BoolVar(&gatherOverwrite, "overwrite", false, "Overwrite existing file if present")
}
