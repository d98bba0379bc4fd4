package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var encodeOutput string

var encodeCmd = &cobra.Command{
	Use:   "encode [carrier] [payload]",
	Short: "Hide a file inside a carrier image",
	Long: `Encode hides the payload file in the least-significant bits of the
carrier image's red, green and blue channels.

Each pixel carries 3 bits, and 32 bits go to the length prefix, so a
W x H image holds (3*W*H - 32) / 8 bytes.

Example:
  steg encode cat.png diary.txt -o cat_with_diary.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := encodeOutput
		if outPath == "" {
			outPath = cfg.EncodeOutput
		}

		stats, err := encodeFile(args[0], args[1], outPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Hid %d bytes (%d of %d bits used)\n", stats.PayloadBytes, stats.FrameBits, stats.CapacityBits)
		fmt.Fprintln(cmd.OutOrStdout(), statusLine("Data encoded and saved to "+outPath, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Output image path, .png or .bmp (default from config: output.png)")
}
