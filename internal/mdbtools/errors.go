package mdbtools

import "errors"

// Sentinel errors for the extraction adapter.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrToolNotFound indicates a required mdbtools binary is not on PATH.
	// Raised at construction time, before the input file is touched.
	ErrToolNotFound = errors.New("mdbtools: extraction tool not found")

	// ErrInputFile indicates the legacy export file is missing or unreadable.
	ErrInputFile = errors.New("mdbtools: input file error")

	// ErrExtraction indicates the external tool reported a failure.
	// This covers non-zero exits, error-stream output, and timeouts.
	ErrExtraction = errors.New("mdbtools: extraction failed")
)
