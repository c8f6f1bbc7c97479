// Package progress draws processed/discovered counts on a timer.
//
// The Reporter wakes only on its ticker, reads the two counters, and hands
// them to a Renderer. Nothing is drawn while no file has been discovered.
// Stop clears the line so the caller's summary replaces it.
package progress
