package classify

import "strings"

// Lexicon is the read-only view of the abbreviation dictionary the
// classifier needs to keep multi-word terms together.
type Lexicon interface {
	Contains(term string) bool
	MaxPhraseWords() int
}

// Unit is a run of tokens classified as a whole: either a single word
// or a multi-word dictionary term such as "single use".
type Unit struct {
	Tokens []Token
}

// Text joins the unit's words with single spaces.
func (u Unit) Text() string {
	return strings.Join(Words(u.Tokens), " ")
}

// Words returns the unit's words.
func (u Unit) Words() []string {
	return Words(u.Tokens)
}

// First returns the first word of the unit.
func (u Unit) First() string {
	return u.Tokens[0].Text
}

// GroupUnits applies greedy longest-match against the dictionary so
// that a known multi-word term is never split across positions.
func GroupUnits(tokens []Token, lex Lexicon) []Unit {
	var units []Unit
	maxLen := 1
	if lex != nil {
		maxLen = lex.MaxPhraseWords()
	}

	i := 0
	for i < len(tokens) {
		matchLen := 1

		// Try matching from longest phrase to shortest (bigram)
		maxPhrase := maxLen
		if remaining := len(tokens) - i; maxPhrase > remaining {
			maxPhrase = remaining
		}
		for n := maxPhrase; n >= 2; n-- {
			phrase := strings.Join(Words(tokens[i:i+n]), " ")
			if lex.Contains(phrase) {
				matchLen = n
				break
			}
		}

		units = append(units, Unit{Tokens: tokens[i : i+matchLen]})
		i += matchLen
	}

	return units
}
