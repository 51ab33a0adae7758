package entity

import (
	"fmt"
	"net/url"
	"time"
)

// Feed represents a configured RSS/Atom source polled by the ingestion
// pipeline. ETag and LastModified form an optional conditional-GET cursor;
// both may be empty, in which case the feed is fetched unconditionally.
// Deduplication by article source URL remains the correctness boundary
// regardless of the cursor.
type Feed struct {
	ID            int64
	Name          string
	URL           string
	Active        bool
	ETag          string
	LastModified  string
	LastCrawledAt *time.Time
}

// Validate checks the Feed fields required before persisting or crawling.
func (f *Feed) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFeed)
	}
	u, err := url.Parse(f.URL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: feed URL %q is not a valid URL", ErrInvalidFeed, f.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: feed URL scheme must be http or https, got %q", ErrInvalidFeed, u.Scheme)
	}
	return nil
}

// FeedItem is the ephemeral, in-memory representation of one <item> entry
// parsed out of a feed document. It is discarded once the pipeline has
// either persisted or skipped the corresponding article.
type FeedItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
	RawContent  string
	SourceFeed  string
}
