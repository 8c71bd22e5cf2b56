package abbrev

import (
	"strings"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/result"
)

// Deduplicate removes repeated words across component values, compared
// case-insensitively. The first occurrence in position order wins. A
// component emptied this way stays in place with an empty value.
func Deduplicate(comps []result.Component, msgs *result.Messages) {
	seen := make(map[string]struct{})
	for i := range comps {
		c := &comps[i]
		if c.Value == "" {
			continue
		}

		words := strings.Fields(c.Value)
		kept := words[:0]
		var removed []string
		for _, w := range words {
			key := dictionary.Fold(w)
			if _, dup := seen[key]; dup {
				removed = append(removed, w)
				continue
			}
			seen[key] = struct{}{}
			kept = append(kept, w)
		}

		if len(removed) == 0 {
			continue
		}
		c.Value = strings.Join(kept, " ")
		c.RulesApplied.Add(result.RuleDeduplication)
		msgs.Infof("Removed duplicate word(s) %s from %s", quoteAll(removed), c.Position)
	}
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}
	return strings.Join(quoted, ", ")
}
