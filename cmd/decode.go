package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/stego"
)

var (
	decodeOutput    string
	decodeOverwrite bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [stego-image]",
	Short: "Recover a file hidden in an image",
	Long: `Decode reads the length prefix from the image's channel LSBs and
writes the hidden payload to the output path.

An image carrying an empty payload is reported as a warning and no file
is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := decodeOutput
		if outPath == "" {
			outPath = cfg.DecodeOutput
		}

		n, err := decodeFile(args[0], outPath, decodeOverwrite || cfg.Overwrite)
		if stego.IsWarning(err) {
			log.Warn().Str("image", args[0]).Msg("empty payload, nothing written")
			fmt.Fprintln(cmd.OutOrStdout(), statusLine("", err))
			return nil
		}
		if err != nil {
			return err
		}

		log.Debug().Int("bytes", n).Str("output", outPath).Msg("payload extracted")
		fmt.Fprintln(cmd.OutOrStdout(), statusLine("Decoded data saved to "+outPath, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Path for the recovered file (default from config: decoded_file)")
	decodeCmd.Flags().BoolVar(&decodeOverwrite, "overwrite", false, "Overwrite the output file if present")
}
