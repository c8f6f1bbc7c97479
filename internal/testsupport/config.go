package testsupport

import (
	"path/filepath"
	"testing"

	"snapsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a normalized config whose log file lives in a per-test
// temp directory. Progress is off and two workers are used unless overridden.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Sort.Workers = 2
	cfg.Progress.Enabled = false
	cfg.Logging.File = filepath.Join(t.TempDir(), "debug.log")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return &cfg
}

// WithWorkers sets the worker count.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) { c.Sort.Workers = n }
}

// WithDedupe selects the duplicate detection mode.
func WithDedupe(mode string) ConfigOption {
	return func(c *config.Config) { c.Sort.Dedupe = mode }
}

// WithDryRun enables planning without filesystem changes.
func WithDryRun() ConfigOption {
	return func(c *config.Config) { c.Sort.DryRun = true }
}

// WithExiftool points the metadata reader at binary.
func WithExiftool(binary string) ConfigOption {
	return func(c *config.Config) {
		c.Metadata.Reader = config.ReaderExiftool
		c.Metadata.Exiftool = binary
	}
}

// WithNativeReader selects the in-process EXIF reader.
func WithNativeReader() ConfigOption {
	return func(c *config.Config) { c.Metadata.Reader = config.ReaderNative }
}
