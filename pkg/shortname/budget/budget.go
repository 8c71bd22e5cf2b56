package budget

import (
	"github.com/cognicore/shortname/pkg/shortname/result"
)

// DropOrder is the order optional positions are given up when the
// short name is too long. The product type is never dropped.
var DropOrder = []result.Position{
	result.AdditionalDescription,
	result.SecondaryVariant,
	result.PrimaryVariant,
	result.ProductName,
}

// Outcome is the component set after enforcing the length budget.
type Outcome struct {
	Components []result.Component
	Messages   result.Messages
	Dropped    []result.Position
	Length     int
	Fits       bool
}

// Enforce drops optional components, last position first, until the
// joined short name fits in limit characters or only the product type
// is left. The input slice is not modified. When the product type alone
// is too long the outcome does not fit and carries an error message; the
// product type is never truncated.
func Enforce(components []result.Component, limit int) Outcome {
	comps := make([]result.Component, len(components))
	for i, c := range components {
		c.RulesApplied = append(result.Rules{}, c.RulesApplied...)
		comps[i] = c
	}

	out := Outcome{Components: comps}
	out.Length = result.Length(result.Join(comps))
	if out.Length <= limit {
		out.Fits = true
		return out
	}

	for _, p := range DropOrder {
		i := p.Index()
		if i >= len(comps) || comps[i].Value == "" {
			continue
		}
		comps[i].Value = ""
		comps[i].RulesApplied.Add(result.RuleDropForBudget)
		out.Dropped = append(out.Dropped, p)
		out.Messages.Warnf("%s dropped to fit %d-character limit", p, limit)

		out.Length = result.Length(result.Join(comps))
		if out.Length <= limit {
			out.Fits = true
			return out
		}
	}

	out.Messages.Errorf("%s alone is %d characters, exceeding the %d-character limit; it was kept in full",
		result.ProductType, out.Length, limit)
	return out
}
