// Package testsupport provides shared helpers for package tests: seeded
// configurations, WAV fixtures, and stub synthesis executables.
package testsupport

import (
	"path/filepath"
	"testing"

	"serifu/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.AudioDir = filepath.Join(base, "output", "audio")
	cfg.Paths.PresetFile = filepath.Join(base, "presets.toml")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Cache.Path = filepath.Join(base, "synthcache.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithConcurrency overrides the synthesis worker limit on the test config.
func WithConcurrency(n int) ConfigOption {
	return func(c *config.Config) {
		c.Synthesis.Concurrency = n
	}
}

// WithSectionGap sets the inter-section gap in seconds on the test config.
func WithSectionGap(seconds float64) ConfigOption {
	return func(c *config.Config) {
		c.Synthesis.SectionGapSeconds = seconds
	}
}

// WithCache enables the synthesis cache on the test config.
func WithCache() ConfigOption {
	return func(c *config.Config) {
		c.Cache.Enabled = true
	}
}
