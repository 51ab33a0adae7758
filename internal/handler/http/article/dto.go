// Package article exposes the published article read API.
package article

import (
	"time"

	"betpress/internal/common/pagination"
	"betpress/internal/domain/entity"
)

// DTO is the JSON shape for a single article.
type DTO struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt"`
	Body            string    `json:"body,omitempty"`
	BodyHTML        string    `json:"body_html,omitempty"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	SourceURL       string    `json:"source_url"`
	SourceFeed      string    `json:"source_feed"`
	PublishedAt     time.Time `json:"published_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListItemDTO is the trimmed shape used in list responses. The full body
// is only returned from the detail endpoints.
type ListItemDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

// ListResponse is one page of articles plus pagination metadata.
type ListResponse struct {
	Data       []ListItemDTO       `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:              a.ID,
		Title:           a.Title,
		Slug:            a.Slug,
		Excerpt:         a.Excerpt,
		Body:            a.Body,
		BodyHTML:        a.BodyHTML,
		Category:        string(a.Category),
		Tags:            tagsOrEmpty(a.Tags),
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		SourceURL:       a.SourceURL,
		SourceFeed:      a.SourceFeed,
		PublishedAt:     a.PublishedAt,
		CreatedAt:       a.CreatedAt,
	}
}

func toListItemDTO(a *entity.Article) ListItemDTO {
	return ListItemDTO{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Category:    string(a.Category),
		Tags:        tagsOrEmpty(a.Tags),
		PublishedAt: a.PublishedAt,
	}
}

// tagsOrEmpty keeps the JSON field an array instead of null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
