package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/pipeline"
	"github.com/Beastly713/steg/pkg/stego"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image]...",
	Short: "Show how much data images can hide",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wtr := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Image\tSize\tCapacity (Bits)\tMax Payload (Bytes)")
		fmt.Fprintln(wtr, "-----\t----\t---------------\t-------------------")

		for _, path := range args {
			stats, err := inspectFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(wtr, "%s\t%dx%d\t%d\t%d\n", path, stats.Width, stats.Height, stats.CapacityBits, stats.MaxPayload)
		}

		return wtr.Flush()
	},
}

func inspectFile(path string) (pipeline.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.Stats{}, fmt.Errorf("%w: %v", stego.ErrImageLoad, err)
	}
	defer f.Close()

	return pipeline.Inspect(f)
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
