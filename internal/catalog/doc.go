// Package catalog turns the raw relational export of a legacy configuration
// file into typed, versioned record sequences.
//
// Firmware versions are discovered from table name suffixes ("..._V3"); the
// supported set is always the contiguous range 1..max. For each version the
// loader resolves the parameter and datalabel table names, validates the
// live columns against the known legacy layout, and materializes one
// ascending-by-Index sequence of records per table. Loading is
// all-or-nothing: any resolution, schema, or scan failure aborts the whole
// catalog.
package catalog
