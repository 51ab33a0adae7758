package repository

import (
	"context"
	"time"

	"betpress/internal/domain/entity"
)

// FeedRepository manages the configured feed sources and their crawl cursors.
type FeedRepository interface {
	ListActive(ctx context.Context) ([]*entity.Feed, error)

	// Upsert inserts a feed or, when a feed with the same URL exists,
	// updates its name and active flag. Used to sync the feeds config file
	// into the database at startup.
	Upsert(ctx context.Context, feed *entity.Feed) error

	// TouchCrawledAt records the time the feed was last polled.
	TouchCrawledAt(ctx context.Context, id int64, crawledAt time.Time) error

	// UpdateCursor stores the conditional-GET cursor (ETag / Last-Modified)
	// returned by the feed server. Empty values clear the cursor.
	UpdateCursor(ctx context.Context, id int64, etag, lastModified string) error
}
