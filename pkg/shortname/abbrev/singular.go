package abbrev

import (
	"strings"
	"unicode"

	"github.com/cognicore/shortname/pkg/shortname/ruleset"
)

// Singularize strips an English plural ending from word, preserving the
// case of what remains. It returns false when word is left unchanged:
// too short, not purely alphabetic, all caps (acronyms, brands), a
// protected exception, or not plural-looking.
//
// Examples:
//   - "Scissors" -> "Scissor"
//   - "Pouches" -> "Pouch"
//   - "Batteries" -> "Battery"
//   - "Lens" -> "Lens" (exception)
func Singularize(word string, rules *ruleset.Ruleset) (string, bool) {
	return singularize(word, rules, false)
}

// SingularizeAnyCase is Singularize without the all-caps guard, for
// words known not to be brands or acronyms ("GLOVES" -> "GLOVE").
func SingularizeAnyCase(word string, rules *ruleset.Ruleset) (string, bool) {
	return singularize(word, rules, true)
}

func singularize(word string, rules *ruleset.Ruleset, anyCase bool) (string, bool) {
	if !eligible(word, rules, anyCase) {
		return word, false
	}

	lower := strings.ToLower(word)
	for _, keep := range []string{"ss", "us", "is"} {
		if strings.HasSuffix(lower, keep) {
			return word, false
		}
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return word[:len(word)-3] + matchCase("y", word[len(word)-1:]), true
	case hasAnySuffix(lower, "ches", "shes", "xes", "zes", "sses"):
		return word[:len(word)-2], true
	case strings.HasSuffix(lower, "s"):
		return word[:len(word)-1], true
	}
	return word, false
}

func eligible(word string, rules *ruleset.Ruleset, anyCase bool) bool {
	letters, upper := 0, 0
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		case r == '-':
		default:
			return false
		}
	}
	if letters < rules.MinSingularizeLength {
		return false
	}
	if upper == letters && !anyCase {
		return false
	}
	return !rules.IsSingularException(word)
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// matchCase returns s upper-cased when ref is upper case.
func matchCase(s, ref string) string {
	if ref != "" && strings.ToUpper(ref) == ref && strings.ToLower(ref) != ref {
		return strings.ToUpper(s)
	}
	return s
}
