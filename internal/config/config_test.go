package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := LoadDefaults()

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 1000, cfg.Spectrum.Frequencies)
	assert.Equal(t, 68.0, cfg.Spectrum.Percentile)
	assert.Equal(t, 50, cfg.Diagnostics.MaxLag)
	assert.Equal(t, "map", cfg.Diagnostics.BestFit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carpack.yaml")
	content := `
workers: 4
seed: 99
spectrum:
  percentile: 95
diagnostics:
  best_fit: median
log:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 95.0, cfg.Spectrum.Percentile)
	assert.Equal(t, "median", cfg.Diagnostics.BestFit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 1000, cfg.Spectrum.Frequencies)
	assert.Equal(t, 50, cfg.Diagnostics.MaxLag)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, LoadDefaults(), cfg)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"tiny grid", func(c *Config) { c.Spectrum.Frequencies = 1 }},
		{"percentile zero", func(c *Config) { c.Spectrum.Percentile = 0 }},
		{"percentile hundred", func(c *Config) { c.Spectrum.Percentile = 100 }},
		{"negative subsample", func(c *Config) { c.Spectrum.Subsample = -2 }},
		{"zero lag", func(c *Config) { c.Diagnostics.MaxLag = 0 }},
		{"unknown best fit", func(c *Config) { c.Diagnostics.BestFit = "mode" }},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadDefaults()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
