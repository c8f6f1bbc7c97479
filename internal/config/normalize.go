package config

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSort()
	c.normalizeMetadata()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeSort() {
	if c.Sort.Workers == 0 {
		c.Sort.Workers = runtime.NumCPU()
	}
	c.Sort.Extensions = NormalizeExtensions(c.Sort.Extensions)
	if len(c.Sort.Extensions) == 0 {
		c.Sort.Extensions = append([]string(nil), DefaultExtensions...)
	}
	c.Sort.Dedupe = strings.ToLower(strings.TrimSpace(c.Sort.Dedupe))
	if c.Sort.Dedupe == "" {
		c.Sort.Dedupe = defaultDedupe
	}
}

func (c *Config) normalizeMetadata() {
	c.Metadata.Reader = strings.ToLower(strings.TrimSpace(c.Metadata.Reader))
	if c.Metadata.Reader == "" {
		c.Metadata.Reader = defaultReader
	}
	c.Metadata.Exiftool = strings.TrimSpace(c.Metadata.Exiftool)
	if c.Metadata.Exiftool == "" {
		c.Metadata.Exiftool = defaultExiftool
	}
	if c.Metadata.TimeoutSeconds == 0 {
		c.Metadata.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = defaultLogFile()
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

// NormalizeExtensions lowercases, strips leading dots, and drops blanks and
// duplicates while keeping the first-seen order.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" || slices.Contains(out, ext) {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// Normalize applies defaults and path expansion after CLI overrides.
func (c *Config) Normalize() error {
	return c.normalize()
}
