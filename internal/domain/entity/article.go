// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Article and
// Feed, along with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a rewritten, publishable news article derived from a
// single feed item. SourceURL is the deduplication key: at most one Article
// exists per distinct source URL.
type Article struct {
	ID              int64
	Title           string
	Slug            string
	Excerpt         string
	Body            string
	BodyHTML        string
	Category        Category
	Tags            []string
	MetaTitle       string
	MetaDescription string
	SourceURL       string
	SourceFeed      string
	PublishedAt     time.Time
	IsPublished     bool
	CreatedAt       time.Time
}

// MaxTags is the maximum number of tags stored per article. Extra tags
// returned by the metadata generator are dropped in order.
const MaxTags = 6

// ClampTags returns the article's tags truncated to MaxTags.
func ClampTags(tags []string) []string {
	if len(tags) > MaxTags {
		return tags[:MaxTags]
	}
	return tags
}
