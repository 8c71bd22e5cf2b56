package classify

import (
	"strings"
	"unicode"
)

// Token is one whitespace-separated word of a description.
type Token struct {
	Text  string
	Index int // position in the token sequence
}

// Tokenize splits a description on whitespace, keeping each word's
// original spelling and case. Stray punctuation (trailing commas,
// semicolons, surrounding parentheses) is trimmed; "%", "-", "/", "."
// inside a word are kept.
func Tokenize(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		word := cleanToken(f)
		if word == "" {
			continue
		}
		tokens = append(tokens, Token{Text: word, Index: len(tokens)})
	}
	return tokens
}

// cleanToken strips leading/trailing punctuation that is never part of a term
func cleanToken(token string) string {
	token = strings.TrimFunc(token, func(r rune) bool {
		switch r {
		case ',', ';', ':', '(', ')', '[', ']', '"', '\'':
			return true
		}
		return false
	})
	// A trailing period ends a sentence; "1.25" keeps its dot.
	token = strings.TrimRight(token, ".")

	// Normalize multiple consecutive hyphens to single hyphen
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	token = strings.Trim(token, "-")

	if !hasWordRune(token) {
		return ""
	}
	return token
}

// hasWordRune reports whether s contains a letter, digit or percent sign.
func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '%' {
			return true
		}
	}
	return false
}

// Words returns the text of each token.
func Words(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return words
}
