package analytics

import (
	"sort"
	"sync"

	"github.com/cognicore/shortname/pkg/shortname/result"
)

// DefaultTopN is how many entries TopRules returns when asked for n <= 0.
const DefaultTopN = 5

// Analyzer aggregates per-result statistics over a run. It is safe for
// concurrent use so batch workers can feed it directly.
type Analyzer struct {
	mu sync.Mutex

	total       int64
	succeeded   int64
	totalLength int64
	rules       map[result.Rule]int64
	dropped     map[result.Position]int64
	levels      map[result.Level]int64
	filled      map[result.Position]int64
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		rules:   make(map[result.Rule]int64),
		dropped: make(map[result.Position]int64),
		levels:  make(map[result.Level]int64),
		filled:  make(map[result.Position]int64),
	}
}

// Process consumes one result.
func (a *Analyzer) Process(r result.ProcessingResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	if r.Success {
		a.succeeded++
		a.totalLength += int64(r.CharacterCount)
	}

	for _, c := range r.Components {
		for _, rule := range c.RulesApplied {
			a.rules[rule]++
			if rule == result.RuleDropForBudget {
				a.dropped[c.Position]++
			}
		}
		if c.Value != "" {
			a.filled[c.Position]++
		}
	}
	for _, m := range r.Messages {
		a.levels[m.Level]++
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	Total       int64                     `json:"total"`
	Succeeded   int64                     `json:"succeeded"`
	Failed      int64                     `json:"failed"`
	TotalLength int64                     `json:"total_length"`
	Rules       map[result.Rule]int64     `json:"rules"`
	Dropped     map[result.Position]int64 `json:"dropped"`
	Filled      map[result.Position]int64 `json:"filled"`
	Messages    map[result.Level]int64    `json:"messages"`
}

// AverageLength is the mean short-name length over successful results.
func (s Stats) AverageLength() float64 {
	if s.Succeeded == 0 {
		return 0
	}
	return float64(s.TotalLength) / float64(s.Succeeded)
}

// SuccessRate is the fraction of results that succeeded.
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total)
}

// RuleCount pairs a rule with how often it fired.
type RuleCount struct {
	Rule  result.Rule `json:"rule"`
	Count int64       `json:"count"`
}

// TopRules returns the n most applied rules, ties broken by name.
func (s Stats) TopRules(n int) []RuleCount {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]RuleCount, 0, len(s.Rules))
	for rule, count := range s.Rules {
		out = append(out, RuleCount{Rule: rule, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rule < out[j].Rule
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Stats{
		Total:       a.total,
		Succeeded:   a.succeeded,
		Failed:      a.total - a.succeeded,
		TotalLength: a.totalLength,
		Rules:       copyMap(a.rules),
		Dropped:     copyMap(a.dropped),
		Filled:      copyMap(a.filled),
		Messages:    copyMap(a.levels),
	}
}

// Reset clears all counts.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total, a.succeeded, a.totalLength = 0, 0, 0
	a.rules = make(map[result.Rule]int64)
	a.dropped = make(map[result.Position]int64)
	a.levels = make(map[result.Level]int64)
	a.filled = make(map[result.Position]int64)
}

func copyMap[K comparable](m map[K]int64) map[K]int64 {
	out := make(map[K]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
