// Package outcome defines the error taxonomy and per-file result types shared by
// the sorting pipeline.
//
// Stages tag their errors with one of the sentinel markers through Wrap so the
// organizer, the worker pool and the CLI summary can classify failures without
// string matching. Every marker is recoverable at file or subtree granularity;
// only ErrConfiguration is used for fatal startup conditions.
package outcome
