// Package preflight runs the startup checks for a sort.
//
// The source must be a listable directory and the target must be a writable
// directory or creatable under a writable ancestor; either failing stops the
// run before any file is touched. A missing exiftool is only a warning since
// each file then degrades to a metadata-unavailable outcome on its own.
package preflight
