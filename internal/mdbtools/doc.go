// Package mdbtools wraps the external mdbtools utilities (mdb-schema,
// mdb-tables, mdb-export) used to read the legacy `.par` configuration
// export.
//
// Each tool call is a one-shot synchronous subprocess with captured
// stdout/stderr and an explicit timeout. The tools report problems on their
// error stream rather than via exit codes, so any stderr output is treated
// as a fatal extraction failure carrying the tool's own message.
//
// The adapter owns a private working directory: the input file is copied in
// (never modified in place), exported artifacts are materialized beside it,
// and Close discards the lot.
package mdbtools
