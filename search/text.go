package search

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token kept; anything of 2 runes or fewer is dropped.
const minTokenLen = 3

// Tokenize lowercases text, turns punctuation into whitespace and splits it.
// Word characters are letters, numbers and underscore. Combining marks
// split words like any other punctuation.
// The same function tokenizes documents and queries.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) >= minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
