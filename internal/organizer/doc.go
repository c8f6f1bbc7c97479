// Package organizer moves media files into the dated target tree.
//
// Each file passes through read metadata, resolve date, plan destination,
// and relocate. A failure at any step stops that file only and leaves it
// where it was. Duplicates and zero-byte leftovers are deleted from the
// source; everything else is renamed into {target}/{year}/{month}, with a
// verified copy when the rename crosses filesystems.
package organizer
