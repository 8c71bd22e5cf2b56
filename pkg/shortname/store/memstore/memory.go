package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	index   map[string]int
	entries []dictionary.Entry
	closed  bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Entries returns a copy of the stored entries in insertion order.
func (s *Store) Entries(ctx context.Context) ([]dictionary.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dictionary.Entry(nil), s.entries...), nil
}

// ReplaceEntries swaps the whole table.
func (s *Store) ReplaceEntries(ctx context.Context, entries []dictionary.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	index := make(map[string]int, len(entries))
	var out []dictionary.Entry
	for _, e := range entries {
		e.Term = strings.TrimSpace(e.Term)
		e.Abbreviation = strings.TrimSpace(e.Abbreviation)
		if e.Term == "" || e.Abbreviation == "" {
			continue
		}
		key := dictionary.Fold(e.Term)
		if i, ok := index[key]; ok {
			out[i] = e
			continue
		}
		index[key] = len(out)
		out = append(out, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
	s.entries = out
	return nil
}

// Count returns the number of stored terms.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Closed reports whether Close was called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
