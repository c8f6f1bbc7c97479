// Package scan discovers media files under an input tree.
//
// The walk is lazy and deterministic: directories are visited depth-first
// with entries in lexical order, so a file is yielded at most once and the
// order is stable across runs. Directories that cannot be listed are logged
// and skipped without ending the walk.
package scan
