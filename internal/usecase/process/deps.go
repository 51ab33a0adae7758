package process

import (
	"context"

	"betpress/internal/domain/entity"
)

// FetchResult is the outcome of one feed fetch.
type FetchResult struct {
	Items []entity.FeedItem

	// ETag and LastModified are the validators the server returned, persisted
	// as the feed's next conditional-GET cursor.
	ETag         string
	LastModified string

	// NotModified is set when the server answered 304.
	NotModified bool
}

// FeedFetcher retrieves and parses one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feed *entity.Feed) (*FetchResult, error)
}

// RewriteResult is the outcome of the content rewrite model call.
type RewriteResult struct {
	// Title is the rewritten Turkish headline.
	Title string
	// Excerpt is the short description shown in listings.
	Excerpt string
	// Body is the main article text, plain text with blank-line paragraphs.
	Body string
}

// SEOMetadata is the outcome of the metadata model call.
type SEOMetadata struct {
	MetaTitle       string
	MetaDescription string
	Tags            []string
}

// ContentRewriter performs both model calls for one item.
type ContentRewriter interface {
	Rewrite(ctx context.Context, title, content string) (*RewriteResult, error)
	GenerateMetadata(ctx context.Context, title, body string) (*SEOMetadata, error)
}

// ContentFetcher pulls the full article page for entries whose RSS content
// is only a teaser. Optional; nil disables enhancement.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}
