package store

import (
	"context"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/internalerr"
)

// Store persists an abbreviation table so it can be used as a
// dictionary source instead of a spreadsheet.
type Store interface {
	Close() error

	// Entries returns every stored entry in insertion order.
	Entries(ctx context.Context) ([]dictionary.Entry, error)

	// ReplaceEntries atomically swaps the whole table. Terms are keyed
	// case-insensitively; the last entry wins on a collision.
	ReplaceEntries(ctx context.Context, entries []dictionary.Entry) error

	// Count returns the number of stored terms.
	Count(ctx context.Context) (int, error)
}

// LoadDictionary builds a dictionary from a store. An empty table is a
// load error, the same as a spreadsheet without usable rows.
func LoadDictionary(ctx context.Context, s Store, source string) (*dictionary.Dictionary, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, internalerr.NewDictionaryLoadError(source, err, "read store")
	}
	d := dictionary.FromEntries(source, entries)
	if d.Empty() {
		return nil, internalerr.NewDictionaryLoadError(source, nil, "store has no usable entries")
	}
	return d, nil
}
