package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nerrad567/itho-discovery/internal/infrastructure/database"
)

const (
	parameterDDL = `CREATE TABLE %q (
		"Index" INTEGER, "Volgorde" INTEGER, "Naam" TEXT, "Naam_fabriek" TEXT,
		"Min" REAL, "Max" REAL, "Default" REAL,
		"Tekst_NL" TEXT, "Omschrijving_NL" TEXT, "Eenheid_NL" TEXT,
		"Tekst_GB" TEXT, "Omschrijving_GB" TEXT, "Eenheid_GB" TEXT,
		"Tekst_D" TEXT, "Omschrijving_D" TEXT, "Eenheid_D" TEXT,
		"Subtabel" TEXT, "Paswoordnivo" INTEGER
	);`

	datalabelDDL = `CREATE TABLE %q (
		"Index" INTEGER, "Naam" TEXT,
		"Tekst_NL" TEXT, "Tooltip_NL" TEXT, "Eenheid_NL" TEXT,
		"Tekst_GB" TEXT, "Tooltip_GB" TEXT, "Eenheid_GB" TEXT,
		"Tekst_D" TEXT, "Tooltip_D" TEXT, "Eenheid_D" TEXT,
		"SubTabel" TEXT, "Visible" INTEGER
	);`
)

func insertParameter(table string, index int, label string) string {
	return fmt.Sprintf(`INSERT INTO %q VALUES (%d, %d, 'naam%d', 'fab', 0.0, 100.0, 50.0,
		'%s', 'omschrijving', 'min', '%s', 'description', 'min', '%s', 'beschreibung', 'min',
		'', 1);`, table, index, index, index, label, label, label)
}

func insertDatalabel(table string, index int, label, unit string) string {
	return fmt.Sprintf(`INSERT INTO %q VALUES (%d, 'naam%d',
		'%s', 'tooltip %s', '%s', '%s', 'tooltip %s', '%s', '%s', 'tooltip %s', '%s',
		'', 1);`, table, index, index, label, label, unit, label, label, unit, label, label, unit)
}

func openStore(t *testing.T, scripts ...string) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Apply(context.Background(), scripts...); err != nil {
		t.Fatalf("applying fixture scripts: %v", err)
	}
	return store
}

func TestDiscoverVersions(t *testing.T) {
	tests := []struct {
		name   string
		tables []string
		want   []int
	}{
		{
			name:   "contiguous range up to max",
			tables: []string{"Parameterlijst_V1", "Datalabel_V1", "Parameterlijst_V3", "Datalabel_V3"},
			want:   []int{1, 2, 3},
		},
		{
			name:   "two digit version",
			tables: []string{"Datalabel_V12"},
			want:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
		{
			name:   "untagged tables ignored",
			tables: []string{"Versiebeheer", "Instellingen"},
			want:   nil,
		},
		{
			name:   "suffix without separator skipped",
			tables: []string{"ParameterlijstV3", "Datalabel_V2"},
			want:   []int{1, 2},
		},
		{
			name:   "no tables",
			tables: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscoverVersions(tt.tables)
			if len(got) != len(tt.want) {
				t.Fatalf("DiscoverVersions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("versions[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadOrdersByIndex(t *testing.T) {
	store := openStore(t,
		fmt.Sprintf(parameterDDL, "Parameterlijst_V1"),
		fmt.Sprintf(datalabelDDL, "Datalabel_V1"),
		insertParameter("Parameterlijst_V1", 30, "Nadraaitijd"),
		insertParameter("Parameterlijst_V1", 10, "Stand 1"),
		insertParameter("Parameterlijst_V1", 20, "Stand 2"),
		insertDatalabel("Datalabel_V1", 2, "Supply temp", "C"),
		insertDatalabel("Datalabel_V1", 1, "Ventilation level", "%"),
	)

	loader := NewLoader(store, nil, true)
	c, err := loader.Load(context.Background(), []string{"Parameterlijst_V1", "Datalabel_V1"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	params := c.Parameters[1]
	if len(params) != 3 {
		t.Fatalf("got %d parameters, want 3", len(params))
	}
	for i, want := range []int{10, 20, 30} {
		if params[i].Index != want {
			t.Errorf("parameters[%d].Index = %d, want %d", i, params[i].Index, want)
		}
	}
	if params[0].LabelNL != "Stand 1" {
		t.Errorf("LabelNL = %q, want %q", params[0].LabelNL, "Stand 1")
	}
	if params[0].Max != 100.0 {
		t.Errorf("Max = %v, want 100.0", params[0].Max)
	}

	labels := c.Datalabels[1]
	if len(labels) != 2 {
		t.Fatalf("got %d datalabels, want 2", len(labels))
	}
	if labels[0].Index != 1 || labels[1].Index != 2 {
		t.Errorf("datalabel order = [%d %d], want [1 2]", labels[0].Index, labels[1].Index)
	}
	if labels[0].TooltipGB != "tooltip Ventilation level" {
		t.Errorf("TooltipGB = %q", labels[0].TooltipGB)
	}
	if !labels[0].Visible {
		t.Error("Visible = false, want true")
	}
}

// TestLoadCarryOver documents the gap-version behavior inherited from the
// legacy tool: when a version has no table of its own, the previously
// resolved table is reused instead of failing.
func TestLoadCarryOver(t *testing.T) {
	scripts := []string{
		fmt.Sprintf(parameterDDL, "Parameterlijst_V1"),
		fmt.Sprintf(datalabelDDL, "Datalabel_V1"),
		fmt.Sprintf(datalabelDDL, "Datalabel_V2"),
		insertParameter("Parameterlijst_V1", 1, "Stand 1"),
		insertDatalabel("Datalabel_V1", 1, "Ventilation level", "%"),
		insertDatalabel("Datalabel_V2", 1, "Supply temp", "C"),
	}
	// Datalabel_V2 exists but Parameterlijst_V2 does not.
	tables := []string{"Parameterlijst_V1", "Datalabel_V1", "Datalabel_V2"}

	t.Run("enabled reuses previous table", func(t *testing.T) {
		store := openStore(t, scripts...)
		loader := NewLoader(store, nil, true)

		c, err := loader.Load(context.Background(), tables)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if len(c.Parameters[2]) != 1 {
			t.Fatalf("got %d parameters for version 2, want 1 carried over", len(c.Parameters[2]))
		}
		if c.Parameters[2][0].LabelNL != "Stand 1" {
			t.Errorf("carried-over parameter = %q, want the version 1 row", c.Parameters[2][0].LabelNL)
		}
	})

	t.Run("disabled fails with the version", func(t *testing.T) {
		store := openStore(t, scripts...)
		loader := NewLoader(store, nil, false)

		_, err := loader.Load(context.Background(), tables)
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("Load() error = %v, want ErrTableNotFound", err)
		}
		if !strings.Contains(err.Error(), "version 2") {
			t.Errorf("error %q should name version 2", err)
		}
	})
}

func TestLoadLowercaseParameterTable(t *testing.T) {
	store := openStore(t,
		fmt.Sprintf(parameterDDL, "parameterlijst_V1"),
		fmt.Sprintf(datalabelDDL, "Datalabel_V1"),
		insertParameter("parameterlijst_V1", 1, "Stand 1"),
		insertDatalabel("Datalabel_V1", 1, "Ventilation level", "%"),
	)

	loader := NewLoader(store, nil, true)
	c, err := loader.Load(context.Background(), []string{"parameterlijst_V1", "Datalabel_V1"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(c.Parameters[1]) != 1 {
		t.Fatalf("got %d parameters, want 1", len(c.Parameters[1]))
	}
}

func TestLoadSchemaMismatch(t *testing.T) {
	store := openStore(t,
		`CREATE TABLE "Datalabel_V1" ("Index" INTEGER, "Naam" TEXT);`,
		fmt.Sprintf(parameterDDL, "Parameterlijst_V1"),
	)

	loader := NewLoader(store, nil, true)
	_, err := loader.Load(context.Background(), []string{"Parameterlijst_V1", "Datalabel_V1"})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Load() error = %v, want ErrSchemaMismatch", err)
	}
	if !strings.Contains(err.Error(), "Datalabel_V1") {
		t.Errorf("error %q should name the table", err)
	}
}

func TestLoadDuplicateIndex(t *testing.T) {
	store := openStore(t,
		fmt.Sprintf(parameterDDL, "Parameterlijst_V1"),
		fmt.Sprintf(datalabelDDL, "Datalabel_V1"),
		insertParameter("Parameterlijst_V1", 7, "Stand 1"),
		insertParameter("Parameterlijst_V1", 7, "Stand 2"),
		insertDatalabel("Datalabel_V1", 1, "Ventilation level", "%"),
	)

	loader := NewLoader(store, nil, true)
	_, err := loader.Load(context.Background(), []string{"Parameterlijst_V1", "Datalabel_V1"})
	if !errors.Is(err, ErrDuplicateIndex) {
		t.Fatalf("Load() error = %v, want ErrDuplicateIndex", err)
	}
	if !strings.Contains(err.Error(), "7") {
		t.Errorf("error %q should name the duplicated index", err)
	}
}

func TestLoadMissingTableInStore(t *testing.T) {
	// Table is announced in the enumeration but absent from the store.
	store := openStore(t, fmt.Sprintf(datalabelDDL, "Datalabel_V1"))

	loader := NewLoader(store, nil, true)
	_, err := loader.Load(context.Background(), []string{"Parameterlijst_V1", "Datalabel_V1"})
	if err == nil {
		t.Fatal("Load() should fail when a resolved table does not exist")
	}
	if !strings.Contains(err.Error(), "version 1") {
		t.Errorf("error %q should name the version", err)
	}
}
