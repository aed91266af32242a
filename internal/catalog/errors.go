package catalog

import "errors"

// Sentinel errors for catalog loading.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrSchemaMismatch indicates a loaded table's columns do not match the
	// expected legacy layout. Raised at load time, before any row is scanned.
	ErrSchemaMismatch = errors.New("catalog: table schema mismatch")

	// ErrTableNotFound indicates no table matching the naming conventions
	// exists for a version (and carry-over is disabled).
	ErrTableNotFound = errors.New("catalog: table not found")

	// ErrDuplicateIndex indicates two rows in one version's table share an
	// Index value.
	ErrDuplicateIndex = errors.New("catalog: duplicate index")
)
