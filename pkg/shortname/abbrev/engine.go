package abbrev

import (
	"strings"
	"unicode"

	"github.com/cognicore/shortname/pkg/shortname/classify"
	"github.com/cognicore/shortname/pkg/shortname/result"
	"github.com/cognicore/shortname/pkg/shortname/ruleset"
)

// Lookup is the read side of the abbreviation dictionary.
type Lookup interface {
	Lookup(term string) (string, bool)
	Len() int
}

// Engine resolves classified slots into component values.
type Engine struct {
	rules *ruleset.Ruleset
	dict  Lookup
}

// NewEngine creates an abbreviation engine. dict may be empty but not nil.
func NewEngine(rules *ruleset.Ruleset, dict Lookup) *Engine {
	return &Engine{rules: rules, dict: dict}
}

// Resolve turns an assignment into five components, in position order,
// applying dictionary substitution, singularization, unit merging and
// finally cross-position deduplication.
func (e *Engine) Resolve(a *classify.Assignment) ([]result.Component, result.Messages) {
	var msgs result.Messages
	comps := make([]result.Component, result.NumPositions)

	for i, p := range result.Positions {
		slot := a.Slot(p)
		comp := result.NewComponent(p)
		comp.Original = slot.Text()
		if !slot.Empty() {
			if p == result.ProductType {
				e.resolveProductType(slot, &comp)
			} else {
				e.resolveSlot(slot, &comp, &msgs)
			}
		}
		comps[i] = comp
	}

	Deduplicate(comps, &msgs)
	return comps, msgs
}

// resolveProductType keeps the full spelling; only singularization
// applies, and never to a dictionary term.
func (e *Engine) resolveProductType(slot classify.Slot, comp *result.Component) {
	var words []string
	for _, u := range slot.Units {
		for _, w := range u.Words() {
			if _, known := e.dict.Lookup(w); known {
				words = append(words, w)
				continue
			}
			if s, ok := SingularizeAnyCase(w, e.rules); ok {
				w = s
				comp.RulesApplied.Add(result.RuleSingularization)
			}
			words = append(words, w)
		}
	}
	comp.Value = strings.Join(words, " ")
}

func (e *Engine) resolveSlot(slot classify.Slot, comp *result.Component, msgs *result.Messages) {
	// The whole slot may itself be a dictionary term.
	if len(slot.Units) > 1 {
		if abbr, ok := e.dict.Lookup(slot.Text()); ok {
			comp.Value = abbr
			comp.RulesApplied.Add(result.RuleDictionarySubstitution)
			return
		}
	}

	pieces := make([]string, 0, len(slot.Units))
	source := make([]string, 0, len(slot.Units))
	for _, u := range slot.Units {
		pieces = append(pieces, e.resolveUnit(u, comp, msgs))
		source = append(source, u.Text())
	}
	pieces = e.mergeUnits(pieces, source, comp)
	comp.Value = strings.Join(pieces, " ")
}

func (e *Engine) resolveUnit(u classify.Unit, comp *result.Component, msgs *result.Messages) string {
	text := u.Text()
	if abbr, ok := e.dict.Lookup(text); ok {
		comp.RulesApplied.Add(result.RuleDictionarySubstitution)
		return abbr
	}

	if singular, ok := Singularize(text, e.rules); ok {
		comp.RulesApplied.Add(result.RuleSingularization)
		if abbr, ok := e.dict.Lookup(singular); ok {
			comp.RulesApplied.Add(result.RuleDictionarySubstitution)
			return abbr
		}
		text = singular
	}

	if e.dict.Len() > 0 && e.reportMiss(text) {
		msgs.Infof("No abbreviation found for %q in %s; kept as written", text, comp.Position)
	}
	return text
}

// reportMiss limits miss notices to plain words: numbers, units and
// brand names are expected to pass through unchanged.
func (e *Engine) reportMiss(text string) bool {
	if e.rules.IsMeasurement(text) || e.rules.IsUnit(text) || e.rules.IsBrand(text) || e.rules.IsDimensionSeparator(text) {
		return false
	}
	for _, r := range text {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// mergeUnits joins "<number> <unit>" into "<number><unit>". The run is
// recognized on the source words, so a unit whose abbreviation is not
// itself a known unit still merges.
func (e *Engine) mergeUnits(pieces, source []string, comp *result.Component) []string {
	out := make([]string, 0, len(pieces))
	for i := 0; i < len(pieces); i++ {
		if i+1 < len(pieces) && e.rules.IsNumber(source[i]) && e.rules.IsUnit(source[i+1]) {
			out = append(out, pieces[i]+pieces[i+1])
			comp.RulesApplied.Add(result.RuleUnitMerge)
			i++
			continue
		}
		out = append(out, pieces[i])
	}
	return out
}
