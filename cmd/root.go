package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/config"
)

var (
	cfgPath string
	verbose bool

	// cfg is replaced by the loaded config before any command runs.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "steg",
	Short: "Hide files inside the pixels of an image",
	Long: `Steg: hide any file in the least-significant bits of a PNG or BMP image
and get it back bit-for-bit later.

Only lossless outputs (.png, .bmp) are written; lossy formats would destroy
the hidden data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, required := cfgPath, true
		if path == "" {
			path, required = config.DefaultPath, false
		}

		loaded, err := config.Load(path, required)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Level()
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()

		log.Debug().Str("config", path).Msg("configuration loaded")
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a TOML config file (default: ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
