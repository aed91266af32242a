// Package logging provides structured logging built on log/slog.
//
// Diagnostics go to stderr by default: the converter's primary output is a
// YAML document on stdout, and the two streams must not interleave.
package logging
