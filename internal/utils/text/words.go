package text

import "strings"

// CountWords counts whitespace-separated words in s. This is the measure the
// quality gate uses; keep it a plain whitespace split so the 50-word
// threshold keeps its meaning.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Truncate shortens s to at most limit runes, appending an ellipsis when the
// text was cut. Used for metadata fallbacks (SEO title, meta description).
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
