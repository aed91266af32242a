package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// connectionTimeout is the timeout for verifying database connectivity.
const connectionTimeout = 5 * time.Second

// Store wraps an in-memory SQLite database holding the converted legacy
// export. It is rebuilt from scratch for every pipeline run and discarded
// with Close; nothing is ever persisted to disk.
type Store struct {
	*sql.DB
}

// Open creates a fresh in-memory store.
//
// The pool is pinned to a single connection: each SQLite ":memory:"
// connection is its own database, and recycling the connection would
// silently discard everything loaded into it.
//
// Parameters:
//   - ctx: Context for the connectivity check
//
// Returns:
//   - *Store: Empty store ready for Apply
//   - error: If opening or verifying the connection fails
func Open(ctx context.Context) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return &Store{DB: sqlDB}, nil
}

// Apply executes one or more SQL scripts inside a single transaction.
//
// The extraction pipeline calls it twice: once with the exported schema DDL
// and once with every table's INSERT script, giving exactly one commit per
// phase. A failing script rolls back the whole batch.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - scripts: SQL script texts, each possibly containing many statements
//
// Returns:
//   - error: If any script fails; the transaction is rolled back
func (s *Store) Apply(ctx context.Context, scripts ...string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	for _, script := range scripts {
		if strings.TrimSpace(script) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("applying script: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing scripts: %w", err)
	}
	return nil
}

// SelectByIndex returns every row of the named table ordered ascending by
// its "Index" column. Table names come from the extraction tool's own table
// enumeration, not user input; they are still quoted defensively.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - table: Table name as reported by the extraction tool
//
// Returns:
//   - *sql.Rows: Result rows; caller must Close
//   - error: If the table does not exist or the query fails
func (s *Store) SelectByIndex(ctx context.Context, table string) (*sql.Rows, error) {
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY "Index" ASC`, quoteIdent(table))
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	return rows, nil
}

// Close closes the store, discarding the in-memory database.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// quoteIdent quotes an SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
