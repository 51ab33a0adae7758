package rewriter

import (
	"log/slog"
	"regexp"
	"strings"

	"betpress/internal/domain/entity"
	"betpress/internal/usecase/process"
	"betpress/internal/utils/text"
)

// Marker labels the model is instructed to emit. parser and prompt must
// agree on these literals.
const (
	markerTitle   = "BAŞLIK:"
	markerExcerpt = "KISA AÇIKLAMA:"
	markerBody    = "ANA İÇERİK:"

	markerMetaTitle = "SEO BAŞLIK:"
	markerMetaDesc  = "META AÇIKLAMA:"
	markerTags      = "ETİKETLER:"
)

const (
	maxMetaTitleLen = 60
	maxMetaDescLen  = 155
)

var defaultTags = []string{"casino", "bahis haberleri"}

var rewriteMarkers = []string{markerTitle, markerExcerpt, markerBody}
var metadataMarkers = []string{markerMetaTitle, markerMetaDesc, markerTags}

// extractSection returns the text between marker and the next known marker
// (or end of response). Empty string when the marker is absent.
func extractSection(response, marker string, allMarkers []string) string {
	var stops []string
	for _, m := range allMarkers {
		if m != marker {
			stops = append(stops, regexp.QuoteMeta(m))
		}
	}
	pattern := `(?s)` + regexp.QuoteMeta(marker) + `\s*(.*?)\s*(?:` + strings.Join(stops, "|") + `|$)`
	matches := regexp.MustCompile(pattern).FindStringSubmatch(response)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// ParseRewrite extracts the three labeled sections from a rewrite response.
// A missing section degrades to the corresponding source field rather than
// failing the item.
func ParseRewrite(response, sourceTitle, sourceContent string) *process.RewriteResult {
	result := &process.RewriteResult{
		Title:   extractSection(response, markerTitle, rewriteMarkers),
		Excerpt: extractSection(response, markerExcerpt, rewriteMarkers),
		Body:    extractSection(response, markerBody, rewriteMarkers),
	}

	if result.Title == "" {
		slog.Warn("rewrite response missing title marker, using source title")
		result.Title = sourceTitle
	}
	if result.Body == "" {
		slog.Warn("rewrite response missing body marker, using source content")
		result.Body = sourceContent
	}
	if result.Excerpt == "" {
		result.Excerpt = text.Truncate(result.Body, 160)
	}
	return result
}

// ParseMetadata extracts SEO fields from a metadata response. Missing fields
// fall back to truncations of the rewritten title and body, and to a default
// tag pair. Length caps apply to parsed values too.
func ParseMetadata(response, title, body string) *process.SEOMetadata {
	meta := &process.SEOMetadata{
		MetaTitle:       extractSection(response, markerMetaTitle, metadataMarkers),
		MetaDescription: extractSection(response, markerMetaDesc, metadataMarkers),
		Tags:            parseTags(extractSection(response, markerTags, metadataMarkers)),
	}

	if meta.MetaTitle == "" {
		meta.MetaTitle = title
	}
	if meta.MetaDescription == "" {
		meta.MetaDescription = body
	}
	if len(meta.Tags) == 0 {
		meta.Tags = append([]string(nil), defaultTags...)
	}

	meta.MetaTitle = text.Truncate(meta.MetaTitle, maxMetaTitleLen)
	meta.MetaDescription = text.Truncate(meta.MetaDescription, maxMetaDescLen)
	meta.Tags = entity.ClampTags(meta.Tags)
	return meta
}

func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(strings.ToLower(p))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
