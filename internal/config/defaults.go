package config

import "time"

const (
	defaultHiddenPrefix    = "._"
	defaultDedupe          = DedupeSize
	defaultReader          = ReaderExiftool
	defaultExiftool        = "exiftool"
	defaultTimeoutSeconds  = 60
	defaultProgressEnabled = true
	defaultIntervalMS      = 100
	defaultProgressWidth   = 40
	defaultLogFileName     = "debug.log"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Dedupe modes.
const (
	DedupeSize    = "size"
	DedupeContent = "content"
)

// Metadata readers.
const (
	ReaderExiftool = "exiftool"
	ReaderNative   = "native"
)

// DefaultExtensions are the recognized media extensions, lowercase, without the dot.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "bmp", "mov", "3gp", "3gpp", "mp4", "avi", "wmv"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sort: Sort{
			Extensions:   append([]string(nil), DefaultExtensions...),
			HiddenPrefix: defaultHiddenPrefix,
			Dedupe:       defaultDedupe,
		},
		Metadata: Metadata{
			Reader:         defaultReader,
			Exiftool:       defaultExiftool,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Progress: Progress{
			Enabled:    defaultProgressEnabled,
			IntervalMS: defaultIntervalMS,
			Width:      defaultProgressWidth,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// MetadataTimeout returns the per-file extraction deadline.
func (c *Config) MetadataTimeout() time.Duration {
	return time.Duration(c.Metadata.TimeoutSeconds) * time.Second
}

// ProgressInterval returns the progress refresh period.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Progress.IntervalMS) * time.Millisecond
}
