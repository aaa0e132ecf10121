// Package config loads carpack settings from YAML, layered over built-in
// defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gocarma/ensemble"
)

// Config holds all carpack settings.
type Config struct {
	// Workers bounds per-draw parallelism. 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Seed for simulated paths.
	Seed uint64 `yaml:"seed"`

	Spectrum    SpectrumConfig    `yaml:"spectrum"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`
}

// SpectrumConfig controls PSD credible bands.
type SpectrumConfig struct {
	Frequencies int     `yaml:"frequencies"` // points on the log-spaced grid
	Percentile  float64 `yaml:"percentile"`  // width of the central interval, in percent
	Subsample   int     `yaml:"subsample"`   // draws used for the band, 0 for all
}

// DiagnosticsConfig controls residual checks of the best-fit model.
type DiagnosticsConfig struct {
	MaxLag  int    `yaml:"max_lag"`
	BestFit string `yaml:"best_fit"` // map, median or mean
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// LoadDefaults returns the built-in configuration.
func LoadDefaults() *Config {
	config := &Config{}

	config.Workers = 0
	config.Seed = 1

	// Spectrum defaults
	config.Spectrum.Frequencies = 1000
	config.Spectrum.Percentile = 68.0
	config.Spectrum.Subsample = 0

	// Diagnostics defaults
	config.Diagnostics.MaxLag = 50
	config.Diagnostics.BestFit = "map"

	// Logging defaults
	config.Log.Level = "info"
	config.Log.Development = false

	return config
}

// LoadFromFile reads configPath over the defaults. Keys missing from the
// file keep their default; a missing file yields the defaults unchanged.
func LoadFromFile(configPath string) (*Config, error) {
	config := LoadDefaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.Spectrum.Frequencies < 2 {
		return fmt.Errorf("spectrum.frequencies must be at least 2, got %d", c.Spectrum.Frequencies)
	}
	if !(c.Spectrum.Percentile > 0 && c.Spectrum.Percentile < 100) {
		return fmt.Errorf("spectrum.percentile must be in (0, 100), got %g", c.Spectrum.Percentile)
	}
	if c.Spectrum.Subsample < 0 {
		return fmt.Errorf("invalid spectrum.subsample: %d", c.Spectrum.Subsample)
	}
	if c.Diagnostics.MaxLag < 1 {
		return fmt.Errorf("diagnostics.max_lag must be positive, got %d", c.Diagnostics.MaxLag)
	}
	if _, err := ensemble.ParseMethod(c.Diagnostics.BestFit); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	return nil
}
