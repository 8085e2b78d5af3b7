package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/kriansa/mountline/internal/mounttab"
	"github.com/kriansa/mountline/internal/render"
)

const (
	// DefaultConfigPath is the default location for the config file
	DefaultConfigPath = "/etc/mountline.conf"
	// DefaultCounters is the default dump/pass grammar
	DefaultCounters = "strict"
	// DefaultFormat is the default output format
	DefaultFormat = render.FormatText
)

// Config holds the mountline configuration
type Config struct {
	// Counters selects the dump/pass grammar: "strict" or "digits"
	Counters string `toml:"counters"`
	// SkipInvalid skips lines that fail to parse instead of aborting
	SkipInvalid bool `toml:"skip_invalid"`
	// Format is the output format: "text", "json" or "yaml"
	Format string `toml:"format"`
}

// Load loads configuration from a TOML file
// Returns an empty config if the file doesn't exist
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Merge merges CLI flags into the config, with CLI flags taking precedence
// over config file values. Empty CLI values are ignored, and skipInvalid can
// only turn skipping on.
func (c *Config) Merge(counters, format string, skipInvalid bool) {
	if counters != "" {
		c.Counters = counters
	}
	if format != "" {
		c.Format = format
	}
	if skipInvalid {
		c.SkipInvalid = true
	}
}

// ApplyDefaults applies default values for any unset fields
func (c *Config) ApplyDefaults() {
	if c.Counters == "" {
		c.Counters = DefaultCounters
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := mounttab.ParseCounters(c.Counters); err != nil {
		return err
	}

	if !render.ValidFormat(c.Format) {
		return fmt.Errorf("format must be 'text', 'json' or 'yaml', got %q", c.Format)
	}

	return nil
}

// Parser returns the line parser selected by the configuration.
// The config must have passed Validate.
func (c *Config) Parser() mounttab.Parser {
	counters, err := mounttab.ParseCounters(c.Counters)
	if err != nil {
		counters = mounttab.CountersStrict
	}
	return mounttab.Parser{Counters: counters}
}
