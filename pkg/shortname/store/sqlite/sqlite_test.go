package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/internalerr"
	"github.com/cognicore/shortname/pkg/shortname/store"
)

// TestSchemaCreationIdempotent tests that running initSchema multiple times is safe
func TestSchemaCreationIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Open database: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := initSchema(ctx, db); err != nil {
			t.Fatalf("initSchema iteration %d: %v", i, err)
		}
	}

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Count tables: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 table, got %d", count)
	}
}

func TestReplaceAndReadEntries(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	entries := []dictionary.Entry{
		{Term: "milliliters", Abbreviation: "ml"},
		{Term: "Bottle", Abbreviation: "BTL"},
		{Term: "", Abbreviation: "X"},
		{Term: "bottle", Abbreviation: "BT"},
		{Term: "non-latex", Abbreviation: "NL"},
	}
	if err := st.ReplaceEntries(ctx, entries); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}

	n, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("Count = %d, want 3", n)
	}

	got, err := st.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []dictionary.Entry{
		{Term: "milliliters", Abbreviation: "ml"},
		{Term: "bottle", Abbreviation: "BT"},
		{Term: "non-latex", Abbreviation: "NL"},
	}
	if len(got) != len(want) {
		t.Fatalf("Entries len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestReplaceIsNotCumulative checks a second import fully replaces the first
func TestReplaceIsNotCumulative(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	first := []dictionary.Entry{{Term: "a", Abbreviation: "A"}, {Term: "b", Abbreviation: "B"}}
	if err := st.ReplaceEntries(ctx, first); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}
	if err := st.ReplaceEntries(ctx, first[:1]); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}
	if n, _ := st.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "dict.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.ReplaceEntries(ctx, []dictionary.Entry{{Term: "sterile", Abbreviation: "STER"}}); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st.Close()

	d, err := store.LoadDictionary(ctx, st, dbPath)
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if abbr, ok := d.Lookup("STERILE"); !ok || abbr != "STER" {
		t.Errorf("Lookup = %q, %v", abbr, ok)
	}
}

func TestLoadDictionaryFromEmptyStore(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	_, err = store.LoadDictionary(ctx, st, "empty")
	if !errors.Is(err, internalerr.ErrDictionaryLoad) {
		t.Fatalf("expected ErrDictionaryLoad, got %v", err)
	}
}
