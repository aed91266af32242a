// Package database provides the in-memory SQLite store the legacy export is
// loaded into.
//
// This package manages:
//   - A single-connection in-memory database per pipeline run
//   - Transactional application of exported schema and INSERT scripts
//   - The ordered-by-Index select primitive used by the catalog loader
//
// The store is write-once: after the two Apply phases (schema, then rows) it
// is only ever read, and it lives exactly as long as one pipeline run.
//
// Usage:
//
//	store, err := database.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Apply(ctx, schemaDDL); err != nil {
//	    return err
//	}
package database
