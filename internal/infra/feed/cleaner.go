package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Boilerplate phrases that feeds append after the teaser text. Matched at
// the end of the content, case-insensitively, Turkish and English variants.
var boilerplatePattern = regexp.MustCompile(
	`(?i)(devamını oku|devamini oku|haberin devamı|read more|continue reading|the post .* appeared first on .*)[\s.…]*$`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanHTML strips markup from feed content and returns plain text with
// entities decoded, boilerplate trailers removed and whitespace collapsed.
func CleanHTML(content string) string {
	if content == "" {
		return ""
	}

	text := content
	if strings.ContainsAny(content, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}
	return CleanText(text)
}

// CleanText normalizes already-plain text: decodes entities, trims
// boilerplate and collapses runs of whitespace.
func CleanText(text string) string {
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = boilerplatePattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
