// Package capturedate turns labelled metadata timestamps into a single capture
// date.
//
// Resolution walks PriorityFields in order and stops at the first field whose
// value parses and lies after the digital-era Floor. It is first match by
// priority, not the earliest or latest timestamp.
package capturedate
