package text

import (
	"html"
	"strings"
)

// ParagraphsToHTML converts plain text into simple HTML by wrapping each
// blank-line-delimited paragraph in a <p> tag. Paragraph contents are
// HTML-escaped; single newlines inside a paragraph are flattened to spaces.
func ParagraphsToHTML(body string) string {
	paragraphs := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n")

	var b strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
