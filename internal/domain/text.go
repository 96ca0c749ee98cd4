package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Capitalize upper-cases only the first rune, the casing the derivation
// rules use for brand and category names.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CapitalizeEachWord title-cases every space-separated word.
func CapitalizeEachWord(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Slug lower-cases and collapses whitespace runs into single dashes.
func Slug(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(s), "-")
}
