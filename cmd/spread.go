package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/imageio"
	"github.com/Beastly713/steg/pkg/pipeline"
	"github.com/Beastly713/steg/pkg/stego"
)

var (
	totalShards int
	threshold   int
	spreadDest  string
)

var spreadCmd = &cobra.Command{
	Use:   "spread [payload] [carrier]...",
	Short: "Spread a file across several carrier images",
	Long: `Spread splits the payload into Reed-Solomon shards and hides one shard
in each carrier image. Any T of the N stego images are enough to gather
the file back.

Example:
  steg spread diary.txt a.png b.png c.png -t 2

  This writes a_1_of_3.png, b_2_of_3.png and c_3_of_3.png.
  Any 2 of them recover diary.txt.

  steg spread diary.txt cat.png -n 4 -t 2

  This hides 4 shards in copies of cat.png.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payloadPath, carriers := args[0], args[1:]

		// 1. Validation (a single carrier is reused for every shard)
		total := totalShards
		if total == 0 {
			total = len(carriers)
			if total == 1 {
				total = cfg.Shards
			}
		}
		if total < 2 {
			return fmt.Errorf("number of shards (-n) must be at least 2")
		}
		if len(carriers) == 1 {
			shared := carriers[0]
			carriers = make([]string, total)
			for i := range carriers {
				carriers[i] = shared
			}
		}
		if total != len(carriers) {
			return fmt.Errorf("need one carrier per shard or a single shared carrier: %d shards, %d carriers", total, len(carriers))
		}
		t := threshold
		if t == 0 {
			t = cfg.Threshold
		}
		if t < 1 || t > total {
			return fmt.Errorf("threshold (-t) must be between 1 and %d", total)
		}

		// 2. Shard the payload
		payload, err := os.Open(payloadPath)
		if err != nil {
			return fmt.Errorf("%w: %v", stego.ErrPayloadRead, err)
		}
		defer payload.Close()

		envelopes, err := pipeline.SpreadPipeline(payload, pipeline.SpreadConfig{
			Total:     total,
			Threshold: t,
			Name:      filepath.Base(payloadPath),
			Timestamp: time.Now().Unix(),
		})
		if err != nil {
			return err
		}

		// 3. Hide every shard in its own carrier, all in memory first so a
		// carrier that is too small leaves nothing half-written behind.
		images := make([][]byte, len(envelopes))
		for i, envelope := range envelopes {
			img, err := hideInCarrier(carriers[i], envelope)
			if err != nil {
				return fmt.Errorf("shard %d (%s): %w", i+1, carriers[i], err)
			}
			images[i] = img
		}

		// 4. Prepare Output Directory
		dest := spreadDest
		if dest == "" {
			dest = filepath.Dir(payloadPath)
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("%w: failed to create destination directory: %v", stego.ErrOutputWrite, err)
		}

		// 5. Write stego images
		for i, img := range images {
			base := filepath.Base(carriers[i])
			name := strings.TrimSuffix(base, filepath.Ext(base))
			outName := fmt.Sprintf("%s_%d_of_%d.png", name, i+1, total)
			outPath := filepath.Join(dest, outName)

			if err := os.WriteFile(outPath, img, 0644); err != nil {
				return fmt.Errorf("%w: %v", stego.ErrOutputWrite, err)
			}
			log.Debug().Str("carrier", carriers[i]).Int("shard", i+1).Msg("shard hidden")
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outName)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Done! Any %d of the %d images recover %s.\n", t, total, filepath.Base(payloadPath))
		return nil
	},
}

func hideInCarrier(carrierPath string, envelope []byte) ([]byte, error) {
	carrier, err := os.Open(carrierPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
	}
	defer carrier.Close()

	var buf bytes.Buffer
	if _, err := pipeline.Hide(carrier, bytes.NewReader(envelope), &buf, imageio.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func init() {
	rootCmd.AddCommand(spreadCmd)

	spreadCmd.Flags().IntVarP(&totalShards, "shards", "n", 0, "Total number of shards (default: one per carrier, or config shards for a single carrier)")
	spreadCmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Number of images required to gather the file (default from config: 2)")
	spreadCmd.Flags().StringVarP(&spreadDest, "destination", "d", "", "Directory to write stego images (default: payload directory)")
}
