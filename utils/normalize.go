package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a free-text food name for matching: lowercase,
// diacritics stripped via NFD decomposition, every non-alphanumeric rune
// replaced by a space, whitespace collapsed. Total function; empty input
// yields the empty string (which later fails to match, not an error).
func NormalizeName(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stateSynonyms maps user-facing state words (the source data is pt-BR) to
// the canonical state constants used by the food tables.
var stateSynonyms = map[string]string{
	"raw":      "raw",
	"cru":      "raw",
	"crua":     "raw",
	"cooked":   "cooked",
	"cozido":   "cooked",
	"cozida":   "cooked",
	"grilled":  "grilled",
	"grelhado": "grilled",
	"grelhada": "grilled",
	"fried":    "fried",
	"frito":    "fried",
	"frita":    "fried",
}

// NormalizeState maps a declared preparation state to one of
// raw|cooked|grilled|fried, or "" when unrecognized.
func NormalizeState(s string) string {
	return stateSynonyms[NormalizeName(s)]
}
