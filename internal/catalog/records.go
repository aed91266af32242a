package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Parameter is one configurable controller setting for a firmware version.
// Records are immutable once loaded; one ascending-by-Index sequence exists
// per version.
type Parameter struct {
	Index       int
	Order       int
	Name        string
	FactoryName string
	Min         float64
	Max         float64
	Default     float64

	LabelNL       string
	DescriptionNL string
	UnitNL        string
	LabelGB       string
	DescriptionGB string
	UnitGB        string
	LabelD        string
	DescriptionD  string
	UnitD         string

	Subtable      string
	PasswordLevel int
}

// Datalabel is one telemetry field a controller reports for a firmware
// version. The GB label/tooltip/unit triple feeds sensor descriptor
// synthesis.
type Datalabel struct {
	Index int
	Name  string

	LabelNL   string
	TooltipNL string
	UnitNL    string
	LabelGB   string
	TooltipGB string
	UnitGB    string
	LabelD    string
	TooltipD  string
	UnitD     string

	Subtable string
	Visible  bool
}

// Column layouts of the legacy tables. Loading validates the live table
// against these before scanning any row: a missing or extra column is a
// schema mismatch, not a silent zero value.
var (
	parameterColumns = []string{
		"Index", "Volgorde", "Naam", "Naam_fabriek",
		"Min", "Max", "Default",
		"Tekst_NL", "Omschrijving_NL", "Eenheid_NL",
		"Tekst_GB", "Omschrijving_GB", "Eenheid_GB",
		"Tekst_D", "Omschrijving_D", "Eenheid_D",
		"Subtabel", "Paswoordnivo",
	}

	datalabelColumns = []string{
		"Index", "Naam",
		"Tekst_NL", "Tooltip_NL", "Eenheid_NL",
		"Tekst_GB", "Tooltip_GB", "Eenheid_GB",
		"Tekst_D", "Tooltip_D", "Eenheid_D",
		"SubTabel", "Visible",
	}
)

// validateColumns checks live table columns against the expected layout as
// sets (the SELECT * column order is the table's own).
func validateColumns(got, want []string) error {
	wantSet := make(map[string]bool, len(want))
	for _, name := range want {
		wantSet[name] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, name := range got {
		gotSet[name] = true
	}

	for _, name := range want {
		if !gotSet[name] {
			return fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, name)
		}
	}
	for _, name := range got {
		if !wantSet[name] {
			return fmt.Errorf("%w: unexpected column %q", ErrSchemaMismatch, name)
		}
	}
	return nil
}

// row is one scanned record keyed by column name.
type row map[string]any

// scanRows materializes every row of the result set into column-keyed maps.
func scanRows(rows *sql.Rows, columns []string) ([]row, error) {
	var result []row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r := make(row, len(columns))
		for i, name := range columns {
			r[name] = values[i]
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// The legacy tables are loose about storage classes: integers arrive as
// int64, numerics sometimes as text, strings sometimes as raw bytes, and
// any field may be NULL. The coercions below absorb that.

func (r row) text(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r row) integer(column string) (int, error) {
	switch v := r[column].(type) {
	case nil:
		return 0, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case []byte:
		return strconv.Atoi(string(v))
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("column %q: unsupported type %T", column, v)
	}
}

func (r row) number(column string) (float64, error) {
	switch v := r[column].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("column %q: unsupported type %T", column, v)
	}
}

func (r row) flag(column string) (bool, error) {
	n, err := r.integer(column)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// newParameter builds a Parameter from a validated row.
func newParameter(r row) (Parameter, error) {
	p := Parameter{
		Name:          r.text("Naam"),
		FactoryName:   r.text("Naam_fabriek"),
		LabelNL:       r.text("Tekst_NL"),
		DescriptionNL: r.text("Omschrijving_NL"),
		UnitNL:        r.text("Eenheid_NL"),
		LabelGB:       r.text("Tekst_GB"),
		DescriptionGB: r.text("Omschrijving_GB"),
		UnitGB:        r.text("Eenheid_GB"),
		LabelD:        r.text("Tekst_D"),
		DescriptionD:  r.text("Omschrijving_D"),
		UnitD:         r.text("Eenheid_D"),
		Subtable:      r.text("Subtabel"),
	}

	var err error
	if p.Index, err = r.integer("Index"); err != nil {
		return Parameter{}, err
	}
	if p.Order, err = r.integer("Volgorde"); err != nil {
		return Parameter{}, err
	}
	if p.Min, err = r.number("Min"); err != nil {
		return Parameter{}, err
	}
	if p.Max, err = r.number("Max"); err != nil {
		return Parameter{}, err
	}
	if p.Default, err = r.number("Default"); err != nil {
		return Parameter{}, err
	}
	if p.PasswordLevel, err = r.integer("Paswoordnivo"); err != nil {
		return Parameter{}, err
	}
	return p, nil
}

// newDatalabel builds a Datalabel from a validated row.
func newDatalabel(r row) (Datalabel, error) {
	d := Datalabel{
		Name:      r.text("Naam"),
		LabelNL:   r.text("Tekst_NL"),
		TooltipNL: r.text("Tooltip_NL"),
		UnitNL:    r.text("Eenheid_NL"),
		LabelGB:   r.text("Tekst_GB"),
		TooltipGB: r.text("Tooltip_GB"),
		UnitGB:    r.text("Eenheid_GB"),
		LabelD:    r.text("Tekst_D"),
		TooltipD:  r.text("Tooltip_D"),
		UnitD:     r.text("Eenheid_D"),
		Subtable:  r.text("SubTabel"),
	}

	var err error
	if d.Index, err = r.integer("Index"); err != nil {
		return Datalabel{}, err
	}
	if d.Visible, err = r.flag("Visible"); err != nil {
		return Datalabel{}, err
	}
	return d, nil
}
