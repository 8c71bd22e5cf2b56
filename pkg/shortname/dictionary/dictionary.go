package dictionary

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
)

// Dictionary maps full terms to their approved abbreviations:
// - Keys are case-folded and whitespace-collapsed ("Non-Latex" == "non-latex")
// - Multi-word terms are supported ("single use" → "SU")
// - Load order is preserved for listing; the last row wins on a key collision
//
// A Dictionary is immutable once built and safe for concurrent readers.
// Reloading means building a new Dictionary and swapping the reference.
type Dictionary struct {
	// folded term -> index into entries
	index map[string]int

	// entries in first-seen order
	entries []Entry

	// longest term, in words, for greedy phrase matching
	maxWords int

	warnings []string
	source   string
	revision string
}

// Entry is one full term with its abbreviation.
type Entry struct {
	Term         string `yaml:"term" json:"term"`
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
}

// New creates an empty dictionary. No lookup on it ever succeeds.
func New() *Dictionary {
	return &Dictionary{
		index:    make(map[string]int),
		maxWords: 1,
	}
}

// FromEntries builds a dictionary from entries, skipping any with an
// empty term or abbreviation. Skipped rows are recorded as warnings.
func FromEntries(source string, entries []Entry) *Dictionary {
	d := New()
	d.source = source
	for i, e := range entries {
		if !d.add(e.Term, e.Abbreviation) {
			d.warnf("entry %d skipped: term and abbreviation are both required", i+1)
		}
	}
	d.revision = newRevision()
	return d
}

// add inserts or replaces a term. It reports false for unusable input.
func (d *Dictionary) add(term, abbreviation string) bool {
	term = collapse(term)
	abbreviation = strings.TrimSpace(abbreviation)
	if term == "" || abbreviation == "" {
		return false
	}

	key := Fold(term)
	if i, exists := d.index[key]; exists {
		d.entries[i] = Entry{Term: term, Abbreviation: abbreviation}
		return true
	}

	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Term: term, Abbreviation: abbreviation})
	if n := len(strings.Fields(term)); n > d.maxWords {
		d.maxWords = n
	}
	return true
}

func (d *Dictionary) warnf(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// Lookup returns the abbreviation for term. Matching is case-insensitive
// and exact on the whole term; there is no partial matching.
//
// Examples:
//   - Lookup("Milliliters") -> "ml", true
//   - Lookup("milli") -> "", false
func (d *Dictionary) Lookup(term string) (string, bool) {
	if d == nil || len(d.index) == 0 {
		return "", false
	}
	i, ok := d.index[Fold(term)]
	if !ok {
		return "", false
	}
	return d.entries[i].Abbreviation, true
}

// Contains reports whether term is a known full term.
func (d *Dictionary) Contains(term string) bool {
	_, ok := d.Lookup(term)
	return ok
}

// Len returns the number of unique (case-folded) terms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Empty reports whether the dictionary has no entries.
func (d *Dictionary) Empty() bool {
	return d.Len() == 0
}

// Entries returns a copy of all entries in load order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	return append([]Entry(nil), d.entries...)
}

// Sample returns up to n entries in load order.
func (d *Dictionary) Sample(n int) []Entry {
	entries := d.Entries()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MaxPhraseWords returns the word count of the longest term.
func (d *Dictionary) MaxPhraseWords() int {
	if d == nil {
		return 1
	}
	return d.maxWords
}

// Warnings returns the rows skipped while loading.
func (d *Dictionary) Warnings() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.warnings...)
}

// Source returns where the dictionary was loaded from ("" for New).
func (d *Dictionary) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// Revision returns a unique ID assigned when the dictionary was built.
func (d *Dictionary) Revision() string {
	if d == nil {
		return ""
	}
	return d.revision
}

// Stats returns statistics about the dictionary contents.
func (d *Dictionary) Stats() Stats {
	s := Stats{Entries: d.Len(), Skipped: len(d.Warnings())}
	for _, e := range d.Entries() {
		if strings.Contains(e.Term, " ") {
			s.MultiWord++
		}
	}
	return s
}

// Stats holds statistics about dictionary contents.
type Stats struct {
	Entries   int // unique terms
	MultiWord int // terms with more than one word
	Skipped   int // rows rejected at load time
}

// Fold normalizes a term for comparison: whitespace collapsed, Unicode case-folded.
func Fold(term string) string {
	return cases.Fold().String(collapse(term))
}

func newRevision() string {
	return ulid.Make().String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
