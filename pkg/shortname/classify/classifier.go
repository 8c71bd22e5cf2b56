package classify

import (
	"strings"

	"github.com/cognicore/shortname/pkg/shortname/internalerr"
	"github.com/cognicore/shortname/pkg/shortname/result"
	"github.com/cognicore/shortname/pkg/shortname/ruleset"
)

// Slot holds the units assigned to one position, in source order.
type Slot struct {
	Position result.Position
	Units    []Unit
}

// Text returns the verbatim source words of the slot.
func (s Slot) Text() string {
	parts := make([]string, len(s.Units))
	for i, u := range s.Units {
		parts[i] = u.Text()
	}
	return strings.Join(parts, " ")
}

// Empty reports whether nothing was assigned to the slot.
func (s Slot) Empty() bool {
	return len(s.Units) == 0
}

// Assignment is the outcome of classifying one description.
type Assignment struct {
	Tokens []Token
	Slots  [result.NumPositions]Slot
	Notes  result.Messages
}

// Slot returns the slot for position p.
func (a *Assignment) Slot(p result.Position) Slot {
	return a.Slots[p.Index()]
}

// Classifier assigns the words of a description to the five positions.
// Recognizers run in a fixed precedence over the units not yet claimed:
// product type, primary variant, secondary variant, product name, and
// finally additional description for whatever is left.
type Classifier struct {
	rules *ruleset.Ruleset
	lex   Lexicon
}

// NewClassifier creates a classifier. lex may be nil.
func NewClassifier(rules *ruleset.Ruleset, lex Lexicon) *Classifier {
	return &Classifier{rules: rules, lex: lex}
}

// Classify tokenizes text and assigns every token to exactly one position.
// It fails with ErrMissingMandatoryPosition when text has no words.
func (c *Classifier) Classify(text string) (Assignment, error) {
	var a Assignment
	for i, p := range result.Positions {
		a.Slots[i].Position = p
	}

	a.Tokens = Tokenize(text)
	if len(a.Tokens) == 0 {
		return a, internalerr.ErrMissingMandatoryPosition
	}

	units := GroupUnits(a.Tokens, c.lex)
	st := &state{units: units, owner: make([]result.Position, len(units))}

	typeEnd := c.claimProductType(st, &a)
	c.claimPrimaryVariant(st)
	c.claimSecondaryVariant(st)
	c.claimProductName(st, typeEnd)

	for i := range units {
		if st.owner[i] == 0 {
			st.owner[i] = result.AdditionalDescription
		}
	}
	for i, u := range units {
		slot := &a.Slots[st.owner[i].Index()]
		slot.Units = append(slot.Units, u)
	}
	return a, nil
}

// state tracks which position owns each unit.
type state struct {
	units []Unit
	owner []result.Position // 0 = unclaimed
}

func (s *state) free(i int) bool {
	return i >= 0 && i < len(s.units) && s.owner[i] == 0
}

func (s *state) claim(from, to int, p result.Position) {
	for i := from; i < to; i++ {
		s.owner[i] = p
	}
}

// claimProductType takes a known product-type phrase at the start, or
// else the leading run up to the first measurement, brand, packaging or
// material word. At least one unit is always taken. It returns the index
// just past the claimed run.
func (c *Classifier) claimProductType(st *state, a *Assignment) int {
	words := make([]string, len(st.units))
	for i, u := range st.units {
		words[i] = u.Text()
	}

	if n := c.rules.MatchProductType(words); n > 0 {
		st.claim(0, n, result.ProductType)
		return n
	}

	end := 0
	for end < len(st.units) && !c.stopsProductType(st.units[end]) {
		end++
	}
	if end == 0 {
		a.Notes.Warnf("%s starts with %q, which also matches another position; kept as product type", result.ProductType, words[0])
		end = 1
	} else {
		a.Notes.Infof("%q is not a known product type; classified by position", strings.Join(words[:end], " "))
	}
	st.claim(0, end, result.ProductType)
	return end
}

func (c *Classifier) stopsProductType(u Unit) bool {
	return c.rules.IsMeasurement(u.Text()) ||
		c.every(u, c.rules.IsBrand) ||
		c.every(u, c.rules.IsPackaging) ||
		c.every(u, c.rules.IsMaterialQualifier)
}

// every reports whether the whole unit, or each of its words, matches.
// Multi-word units come from the dictionary ("sterile powder-free").
func (c *Classifier) every(u Unit, match func(string) bool) bool {
	if match(u.Text()) {
		return true
	}
	if len(u.Tokens) < 2 {
		return false
	}
	for _, w := range u.Words() {
		if !match(w) {
			return false
		}
	}
	return true
}

// claimPrimaryVariant takes the first run of measurements ("5% 500
// milliliters", "1.25cm x 9.14m") or size/side qualifiers.
func (c *Classifier) claimPrimaryVariant(st *state) {
	for i := range st.units {
		if !st.free(i) || !c.startsVariant(st.units[i]) {
			continue
		}
		end := i
		for st.free(end) {
			text := st.units[end].Text()
			switch {
			case c.rules.IsMeasurement(text):
				end++
				// "500 milliliters": a bare number takes the unit that follows.
				if c.rules.IsNumber(text) && st.free(end) && c.rules.IsUnit(st.units[end].Text()) {
					end++
				}
			case c.every(st.units[end], c.rules.IsSideSizeQualifier):
				end++
			case c.rules.IsDimensionSeparator(text) && end > i &&
				st.free(end+1) && c.rules.IsMeasurement(st.units[end+1].Text()):
				end++
			default:
				st.claim(i, end, result.PrimaryVariant)
				return
			}
		}
		st.claim(i, end, result.PrimaryVariant)
		return
	}
}

func (c *Classifier) startsVariant(u Unit) bool {
	return c.rules.IsMeasurement(u.Text()) || c.every(u, c.rules.IsSideSizeQualifier)
}

// claimSecondaryVariant takes the first run of material, colour or
// sterility qualifiers.
func (c *Classifier) claimSecondaryVariant(st *state) {
	c.claimRun(st, result.SecondaryVariant, func(u Unit) bool {
		return c.every(u, c.rules.IsMaterialQualifier)
	})
}

// claimProductName prefers an all-caps brand run anywhere in the
// description; otherwise it takes the descriptive words directly after
// the product type.
func (c *Classifier) claimProductName(st *state, typeEnd int) {
	if c.claimRun(st, result.ProductName, func(u Unit) bool {
		return c.every(u, c.rules.IsBrand)
	}) {
		return
	}

	end := typeEnd
	for st.free(end) && c.isDescriptive(st.units[end]) {
		end++
	}
	st.claim(typeEnd, end, result.ProductName)
}

func (c *Classifier) isDescriptive(u Unit) bool {
	text := u.Text()
	if c.rules.IsPackaging(text) || c.rules.IsUnit(text) || c.rules.IsDimensionSeparator(text) {
		return false
	}
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// claimRun claims the first run of free units matching match.
func (c *Classifier) claimRun(st *state, p result.Position, match func(Unit) bool) bool {
	for i := range st.units {
		if !st.free(i) || !match(st.units[i]) {
			continue
		}
		end := i + 1
		for st.free(end) && match(st.units[end]) {
			end++
		}
		st.claim(i, end, p)
		return true
	}
	return false
}
