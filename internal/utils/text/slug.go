// Package text provides utilities for text processing shared across the
// ingestion pipeline: slug derivation, word counting, and paragraph-to-HTML
// conversion. All functions are pure and deterministic.
package text

import (
	"strings"
	"unicode"
)

// turkishFold maps Turkish letters (both cases) to their ASCII equivalents.
// The dotted capital İ and the dotless ı both fold to plain "i" so that
// "İstanbul" slugs to "istanbul".
var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
	"â", "a", "Â", "a",
	"î", "i", "Î", "i",
	"û", "u", "Û", "u",
)

// Slugify derives a URL-safe slug from a title. The result contains only
// [a-z0-9-], with runs of other characters collapsed to single hyphens and
// no leading or trailing hyphen. The same title always yields the same slug.
func Slugify(title string) string {
	folded := turkishFold.Replace(title)
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Non-ASCII letters outside the Turkish set carry no ASCII
			// mapping; drop them rather than guessing a transliteration.
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
