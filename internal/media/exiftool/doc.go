// Package exiftool provides a typed wrapper around `exiftool -time:all` text
// output.
//
// Key types:
//   - Result: labelled timestamps parsed from one invocation
//   - Reader: timeout-bounded adapter used by the organizer
//
// Primary entry point:
//   - Inspect: executes exiftool and returns the parsed Result
//
// A missing binary, a non-zero exit, a timeout and output without any
// timestamp all surface as outcome.ErrMetadataUnavailable so callers can
// leave the file in place and carry on.
package exiftool
