package ruleset

import (
	"strings"
	"unicode"
)

// IsNumber reports whether word is a bare number such as "500" or "1.25".
func (r *Ruleset) IsNumber(word string) bool {
	m := r.numberRe.FindString(word)
	return m != "" && len(m) == len(word)
}

// IsUnit reports whether word is a unit of measure ("ml", "%", "milliliters").
func (r *Ruleset) IsUnit(word string) bool {
	_, ok := r.units[strings.ToLower(word)]
	return ok
}

// IsMeasurement reports whether word is a number optionally followed
// directly by a unit: "5%", "500", "170mm", "1.25cm".
func (r *Ruleset) IsMeasurement(word string) bool {
	m := r.numberRe.FindString(word)
	if m == "" {
		return false
	}
	rest := word[len(m):]
	return rest == "" || r.IsUnit(rest)
}

// IsDimensionSeparator reports whether word joins two measurements ("x" in "1cm x 9m").
func (r *Ruleset) IsDimensionSeparator(word string) bool {
	_, ok := r.separators[strings.ToLower(word)]
	return ok
}

// IsBrand reports whether word looks like a brand name: an all-caps word
// with at least BrandMinLength letters.
func (r *Ruleset) IsBrand(word string) bool {
	if !r.brandRe.MatchString(word) {
		return false
	}
	letters := 0
	for _, c := range word {
		if unicode.IsLetter(c) {
			letters++
		}
	}
	return letters >= r.BrandMinLength
}

// IsPackaging reports whether word names a container or packaging unit.
func (r *Ruleset) IsPackaging(word string) bool {
	return r.inSet(r.packaging, word)
}

// IsSideSizeQualifier reports whether word is a left/right or size qualifier.
func (r *Ruleset) IsSideSizeQualifier(word string) bool {
	return r.inSet(r.sideSize, word)
}

// IsMaterialQualifier reports whether word is a material, colour or sterility qualifier.
func (r *Ruleset) IsMaterialQualifier(word string) bool {
	return r.inSet(r.material, word)
}

// IsSingularException reports whether word must never be singularized.
func (r *Ruleset) IsSingularException(word string) bool {
	_, ok := r.exceptions[strings.ToLower(word)]
	return ok
}

// MatchProductType returns how many leading words form a known product
// type, preferring the longest phrase. Zero means no match.
func (r *Ruleset) MatchProductType(words []string) int {
	limit := r.maxTypeLen
	if limit > len(words) {
		limit = len(words)
	}
	for n := limit; n >= 1; n-- {
		if r.isProductType(words[:n]) {
			return n
		}
	}
	return 0
}

func (r *Ruleset) isProductType(words []string) bool {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	if _, ok := r.productTypes[strings.Join(lower, " ")]; ok {
		return true
	}
	// "Scissors" matches "scissor": only the last word may be plural.
	last := len(lower) - 1
	for _, suffix := range []string{"es", "s"} {
		if stem, ok := strings.CutSuffix(lower[last], suffix); ok && stem != "" {
			lower[last] = stem
			if _, ok := r.productTypes[strings.Join(lower, " ")]; ok {
				return true
			}
			lower[last] = strings.ToLower(words[last])
		}
	}
	return false
}

// inSet matches word, or its singular if it ends in "s", against set.
func (r *Ruleset) inSet(set map[string]struct{}, word string) bool {
	w := strings.ToLower(word)
	if _, ok := set[w]; ok {
		return true
	}
	if stem, ok := strings.CutSuffix(w, "s"); ok && len(stem) > 1 {
		_, ok := set[stem]
		return ok
	}
	return false
}
