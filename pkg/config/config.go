package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creasty/defaults"
	"github.com/pelletier/go-toml"
	"github.com/rs/zerolog"
)

// DefaultPath is read when no --config flag is given. Its absence is not an error.
const DefaultPath = "steg.toml"

// Config holds user preferences for the CLI and the interactive shell.
type Config struct {
	EncodeOutput string `toml:"encode_output" default:"output.png"`
	DecodeOutput string `toml:"decode_output" default:"decoded_file"`
	LogLevel     string `toml:"log_level" default:"info"`
	Overwrite    bool   `toml:"overwrite"`

	// Spread settings
	Shards    int `toml:"shards" default:"3"`
	Threshold int `toml:"threshold" default:"2"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic("config: invalid default tag: " + err.Error())
	}
	return cfg
}

// Load reads a TOML file and fills anything it leaves out with defaults.
// An empty path returns the defaults. When required is false a missing
// file is treated the same way.
func Load(path string, required bool) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the config contains sane values.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Shards < 2 {
		return fmt.Errorf("shards must be at least 2, got %d", c.Shards)
	}
	if c.Threshold < 1 || c.Threshold > c.Shards {
		return fmt.Errorf("threshold must be between 1 and shards (%d), got %d", c.Shards, c.Threshold)
	}
	if c.EncodeOutput == "" || c.DecodeOutput == "" {
		return errors.New("output paths cannot be empty")
	}
	return nil
}

// Level returns the parsed log level. Validate has already vetted it.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
