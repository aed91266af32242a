package catalog

import (
	"context"
	"fmt"

	"github.com/nerrad567/itho-discovery/internal/infrastructure/database"
)

// Logger defines the logging interface for the loader.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Catalog holds the fully loaded record sequences for every discovered
// firmware version. It is immutable after Load returns.
type Catalog struct {
	Versions   []int
	Parameters map[int][]Parameter
	Datalabels map[int][]Datalabel
}

// Loader materializes typed Parameter and Datalabel records from the
// relational store, one ordered sequence per firmware version.
type Loader struct {
	store  *database.Store
	logger Logger

	// carryOver reuses the previously resolved table name when a version
	// has no table of its own, mirroring how the legacy tool behaved for
	// gap versions. With carry-over disabled a missing table is an error.
	carryOver bool
}

// NewLoader creates a Loader reading from the given store.
func NewLoader(store *database.Store, logger Logger, carryOver bool) *Loader {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Loader{store: store, logger: logger, carryOver: carryOver}
}

// Load discovers versions from the table list and loads every version's
// parameter and datalabel sequences.
//
// Parameter tables are resolved by trying "Parameterlijst_V<n>" then
// "parameterlijst_V<n>"; datalabel tables only "Datalabel_V<n>". Any
// failure is fatal for the whole load; there is no partial catalog.
func (l *Loader) Load(ctx context.Context, tables []string) (*Catalog, error) {
	versions := DiscoverVersions(tables)
	l.logger.Debug("discovered firmware versions", "versions", versions)

	present := make(map[string]bool, len(tables))
	for _, table := range tables {
		present[table] = true
	}

	c := &Catalog{
		Versions:   versions,
		Parameters: make(map[int][]Parameter, len(versions)),
		Datalabels: make(map[int][]Datalabel, len(versions)),
	}

	var paramTable, labelTable string
	for _, version := range versions {
		var err error

		paramTable, err = l.resolveTable(version, paramTable, present,
			fmt.Sprintf("Parameterlijst_V%d", version),
			fmt.Sprintf("parameterlijst_V%d", version),
		)
		if err != nil {
			return nil, err
		}
		parameters, err := l.loadParameters(ctx, version, paramTable)
		if err != nil {
			return nil, err
		}
		c.Parameters[version] = parameters

		labelTable, err = l.resolveTable(version, labelTable, present,
			fmt.Sprintf("Datalabel_V%d", version),
		)
		if err != nil {
			return nil, err
		}
		datalabels, err := l.loadDatalabels(ctx, version, labelTable)
		if err != nil {
			return nil, err
		}
		c.Datalabels[version] = datalabels

		l.logger.Info("loaded version catalog",
			"version", version,
			"parameters", len(parameters),
			"datalabels", len(datalabels))
	}

	return c, nil
}

// resolveTable picks the first candidate present in the export. When none
// is present it either carries over the previous version's table or fails,
// depending on the carry-over setting.
func (l *Loader) resolveTable(version int, previous string, present map[string]bool, candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if present[candidate] {
			return candidate, nil
		}
	}

	if l.carryOver && previous != "" {
		l.logger.Warn("no table for version, carrying over previous table",
			"version", version, "table", previous)
		return previous, nil
	}
	return "", fmt.Errorf("%w: no table among %v for version %d", ErrTableNotFound, candidates, version)
}

func (l *Loader) loadParameters(ctx context.Context, version int, table string) ([]Parameter, error) {
	rows, err := l.store.SelectByIndex(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("loading parameters for version %d: %w", version, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	if err := validateColumns(columns, parameterColumns); err != nil {
		return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
	}

	scanned, err := scanRows(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
	}

	parameters := make([]Parameter, 0, len(scanned))
	seen := make(map[int]bool, len(scanned))
	for _, r := range scanned {
		p, err := newParameter(r)
		if err != nil {
			return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
		}
		if seen[p.Index] {
			return nil, fmt.Errorf("%w: %d in table %s (version %d)", ErrDuplicateIndex, p.Index, table, version)
		}
		seen[p.Index] = true
		parameters = append(parameters, p)
		l.logger.Debug("loaded parameter", "version", version, "index", p.Index, "label", p.LabelNL)
	}
	return parameters, nil
}

func (l *Loader) loadDatalabels(ctx context.Context, version int, table string) ([]Datalabel, error) {
	rows, err := l.store.SelectByIndex(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("loading datalabels for version %d: %w", version, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	if err := validateColumns(columns, datalabelColumns); err != nil {
		return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
	}

	scanned, err := scanRows(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
	}

	datalabels := make([]Datalabel, 0, len(scanned))
	seen := make(map[int]bool, len(scanned))
	for _, r := range scanned {
		d, err := newDatalabel(r)
		if err != nil {
			return nil, fmt.Errorf("table %s (version %d): %w", table, version, err)
		}
		if seen[d.Index] {
			return nil, fmt.Errorf("%w: %d in table %s (version %d)", ErrDuplicateIndex, d.Index, table, version)
		}
		seen[d.Index] = true
		datalabels = append(datalabels, d)
		l.logger.Debug("loaded datalabel", "version", version, "index", d.Index, "label", d.LabelGB)
	}
	return datalabels, nil
}
