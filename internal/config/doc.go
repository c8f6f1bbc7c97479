// Package config loads, normalizes, and validates snapsort configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), and
// reads TOML files from ~/.config/snapsort/config.toml or ./snapsort.toml.
// Every field has a working default, so running without a file is normal.
package config
