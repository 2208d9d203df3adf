// Package config loads the lessel configuration file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config holds the lessel settings. Command line flags override values read
// from the configuration file.
type Config struct {
	// Format is the build output format: text, yaml or json.
	Format string `toml:"format"`
	// Color is auto, on or off.
	Color string `toml:"color"`
	// Jobs bounds how many selectors are built at once. Zero means GOMAXPROCS.
	Jobs     int    `toml:"jobs"`
	LogLevel string `toml:"log_level"`
	// Compact prints combinators without surrounding spaces.
	Compact bool `toml:"compact"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:   "text",
		Color:    "auto",
		LogLevel: "warning",
	}
}

// Load reads path on top of the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting has an allowed value.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("invalid format %q (want text, yaml or json)", c.Format)
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color %q (want auto, on or off)", c.Color)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d", c.Jobs)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}
