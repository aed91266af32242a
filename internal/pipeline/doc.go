// Package pipeline orchestrates the conversion of a legacy export file
// into a versioned catalog and on-demand sensor discovery descriptors.
//
// Control flow is strictly sequential: extraction, relational rebuild,
// version discovery and catalog loading, then per-version descriptor
// synthesis. All errors surface synchronously with the file, table,
// version, or tool implicated; nothing is retried and there is no
// partial-success mode.
package pipeline
