package utils

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// NormalizeWord trims, NFKC-normalizes and lowercases a word so every
// dictionary key and every query share one form.
func NormalizeWord(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return lower.String(norm.NFKC.String(s))
}

// SortRunes returns the runes of s in ascending order.
// Two words are anagrams iff their sorted forms are equal.
func SortRunes(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}

// IsOnlyLetters checks if a string consists entirely of letters
func IsOnlyLetters(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
