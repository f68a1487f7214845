package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes accented letters and drops the combining
// marks, so "café" and "cafe" compare equal.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and collapses whitespace.
// It is total and idempotent; an empty string comes back empty.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(accentStripper, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

// CorrectBrandTypos replaces known brand misspellings in normalized
// text with the canonical lowercased brand. Several brands may be
// corrected in the same input. Replacement is substring-based, not
// word-anchored, matching how customers mangle brand names mid-token.
func CorrectBrandTypos(text string) string {
	for _, c := range brandTypos {
		for _, variant := range c.variants {
			if strings.Contains(text, variant) {
				text = strings.ReplaceAll(text, variant, c.canonical)
			}
		}
	}
	return text
}

// MatchColloquialPattern resolves colloquial descriptions ("el samsung
// mas caro") to a reference phrase. The phrase is a hint to look up in
// the catalog, not a product name. Returns false when no pattern
// applies.
func MatchColloquialPattern(text string) (string, bool) {
	n := Normalize(text)
	if n == "" {
		return "", false
	}
	for _, p := range colloquialPatterns {
		if p.re.MatchString(n) {
			return p.phrase, true
		}
	}
	return "", false
}
