package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateProgress(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSort() error {
	if c.Sort.Workers < 0 {
		return errors.New("sort.workers must be zero (all CPUs) or positive")
	}
	switch c.Sort.Dedupe {
	case DedupeSize, DedupeContent:
	default:
		return fmt.Errorf("sort.dedupe: unsupported value %q (want %q or %q)", c.Sort.Dedupe, DedupeSize, DedupeContent)
	}
	for _, ext := range c.Sort.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("sort.extensions: %q is not a file extension", ext)
		}
	}
	return nil
}

func (c *Config) validateMetadata() error {
	switch c.Metadata.Reader {
	case ReaderExiftool, ReaderNative:
	default:
		return fmt.Errorf("metadata.reader: unsupported value %q (want %q or %q)", c.Metadata.Reader, ReaderExiftool, ReaderNative)
	}
	if c.Metadata.TimeoutSeconds < 0 {
		return errors.New("metadata.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateProgress() error {
	if c.Progress.IntervalMS <= 0 {
		return errors.New("progress.interval_ms must be positive")
	}
	if c.Progress.Width <= 0 {
		return errors.New("progress.width must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
