package result

// Rule identifies a normalization step that changed a component.
type Rule string

const (
	RuleDictionarySubstitution Rule = "dictionary-substitution"
	RuleSingularization        Rule = "singularization"
	RuleUnitMerge              Rule = "unit-merge"
	RuleDropForBudget          Rule = "drop-for-budget"
	RuleDeduplication          Rule = "deduplication"
)

// AllRules lists every rule in the order they can fire.
var AllRules = []Rule{
	RuleDictionarySubstitution,
	RuleSingularization,
	RuleUnitMerge,
	RuleDeduplication,
	RuleDropForBudget,
}

// Rules is an ordered set of rules: insertion order is kept and
// each rule appears at most once.
type Rules []Rule

// Has reports whether rule is in the set.
func (rs Rules) Has(rule Rule) bool {
	for _, r := range rs {
		if r == rule {
			return true
		}
	}
	return false
}

// Add appends rule unless it is already present.
func (rs *Rules) Add(rule Rule) {
	if rs.Has(rule) {
		return
	}
	*rs = append(*rs, rule)
}

// Merge adds every rule of other, keeping order.
func (rs *Rules) Merge(other Rules) {
	for _, r := range other {
		rs.Add(r)
	}
}
