// Package batch runs the per-file pipeline on a fixed pool of workers.
//
// Submission blocks once every worker is busy and the buffer is full, and
// Run returns only after all workers drain. The discovered and processed
// counters are atomic so a reporter can read them while workers run.
package batch
