package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
)

func unitTexts(units []Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Text()
	}
	return out
}

func TestGroupUnitsWithoutLexicon(t *testing.T) {
	units := GroupUnits(Tokenize("Glove Exam Large"), nil)
	assert.Equal(t, []string{"Glove", "Exam", "Large"}, unitTexts(units))
}

func TestGroupUnitsLongestMatch(t *testing.T) {
	lex := dictionary.FromEntries("test", []dictionary.Entry{
		{Term: "single use", Abbreviation: "SU"},
		{Term: "single use only", Abbreviation: "SUO"},
		{Term: "latex free", Abbreviation: "LF"},
	})

	units := GroupUnits(Tokenize("Mask Single Use Only Latex Free Box"), lex)
	assert.Equal(t, []string{"Mask", "Single Use Only", "Latex Free", "Box"}, unitTexts(units))
}

func TestGroupUnitsPhraseAtEnd(t *testing.T) {
	lex := dictionary.FromEntries("test", []dictionary.Entry{
		{Term: "latex free", Abbreviation: "LF"},
	})

	units := GroupUnits(Tokenize("Glove Latex"), lex)
	assert.Equal(t, []string{"Glove", "Latex"}, unitTexts(units))

	units = GroupUnits(Tokenize("Glove latex FREE"), lex)
	assert.Equal(t, []string{"Glove", "latex FREE"}, unitTexts(units))
}

func TestUnitAccessors(t *testing.T) {
	u := Unit{Tokens: Tokenize("Single Use")}
	assert.Equal(t, "Single", u.First())
	assert.Equal(t, []string{"Single", "Use"}, u.Words())
}
