// Package logging assembles the structured slog loggers used by snapsort.
//
// It owns the console and JSON handlers, level parsing, and output routing.
// A run writes to a single log file that is truncated when the run starts;
// every line carries the run identifier so interleaved worker output can be
// grouped. NewNop serves tests and wiring code that has no logger.
package logging
