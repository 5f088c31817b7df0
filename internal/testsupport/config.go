package testsupport

import (
	"path/filepath"
	"testing"

	"signaldedup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose input directory is a fresh temp dir and
// whose output directory is "output" nested inside it, mirroring the default
// layout. Options run before normalization.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = base
	cfg.Paths.OutputDir = filepath.Join(base, "output")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Apply(config.Overrides{}); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithOutputDir places the output directory at path.
func WithOutputDir(path string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.OutputDir = path
	}
}

// WithExtensions replaces the accepted extensions.
func WithExtensions(exts ...string) ConfigOption {
	return func(c *config.Config) {
		c.Scan.Extensions = exts
	}
}

// WithExcludeDirs replaces the pruned directory names.
func WithExcludeDirs(names ...string) ConfigOption {
	return func(c *config.Config) {
		c.Scan.ExcludeDirs = names
	}
}

// WithVerifyCopies toggles post-copy verification.
func WithVerifyCopies(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Output.VerifyCopies = enabled
	}
}
