package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the abbreviation table if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS abbreviations (
	term_key TEXT PRIMARY KEY,
	term TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	ordinal INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS abbreviations_ordinal ON abbreviations(ordinal);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Entries returns all rows ordered as they were inserted
func (s *sqliteStore) Entries(ctx context.Context) ([]dictionary.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT term, abbreviation FROM abbreviations ORDER BY ordinal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []dictionary.Entry
	for rows.Next() {
		var e dictionary.Entry
		if err := rows.Scan(&e.Term, &e.Abbreviation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceEntries clears the table and inserts entries in one transaction
func (s *sqliteStore) ReplaceEntries(ctx context.Context, entries []dictionary.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM abbreviations`); err != nil {
		return err
	}

	const stmt = `
INSERT INTO abbreviations (term_key, term, abbreviation, ordinal)
VALUES (?, ?, ?, ?)
ON CONFLICT(term_key) DO UPDATE SET
	term=excluded.term,
	abbreviation=excluded.abbreviation;
`
	insert, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer insert.Close()

	for i, e := range entries {
		term := strings.TrimSpace(e.Term)
		abbr := strings.TrimSpace(e.Abbreviation)
		if term == "" || abbr == "" {
			continue
		}
		if _, err := insert.ExecContext(ctx, dictionary.Fold(term), term, abbr, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Count returns the number of stored terms
func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM abbreviations`).Scan(&n)
	return n, err
}
