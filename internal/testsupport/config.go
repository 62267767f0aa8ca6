package testsupport

import (
	"path/filepath"
	"testing"

	"appxify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Identity.Name = "Test.App"
	cfg.Identity.Publisher = "CN=Test"
	cfg.Identity.PublisherDisplayName = "Test Publisher"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPackagingTool overrides the external packaging binary.
func WithPackagingTool(tool string) ConfigOption {
	return func(c *config.Config) {
		c.Packaging.Tool = tool
	}
}
