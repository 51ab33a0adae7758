package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"betpress/internal/domain/entity"
	"betpress/internal/repository"
)

type FeedRepo struct {
	db *sql.DB
}

func NewFeedRepo(db *sql.DB) repository.FeedRepository {
	return &FeedRepo{db: db}
}

func (repo *FeedRepo) ListActive(ctx context.Context) ([]*entity.Feed, error) {
	defer observeQuery("feed_list_active", time.Now())
	const query = `
SELECT id, name, url, active, etag, last_modified, last_crawled_at
FROM feeds
WHERE active = TRUE
ORDER BY id`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var feeds []*entity.Feed
	for rows.Next() {
		var feed entity.Feed
		var etag, lastModified sql.NullString
		var lastCrawledAt sql.NullTime
		if err := rows.Scan(&feed.ID, &feed.Name, &feed.URL, &feed.Active,
			&etag, &lastModified, &lastCrawledAt); err != nil {
			return nil, fmt.Errorf("ListActive: Scan: %w", err)
		}
		feed.ETag = etag.String
		feed.LastModified = lastModified.String
		if lastCrawledAt.Valid {
			t := lastCrawledAt.Time
			feed.LastCrawledAt = &t
		}
		feeds = append(feeds, &feed)
	}
	return feeds, rows.Err()
}

// Upsert registers a feed by URL, updating the name and active flag when the
// URL is already known. Conditional-GET cursors are preserved on conflict.
func (repo *FeedRepo) Upsert(ctx context.Context, feed *entity.Feed) error {
	defer observeQuery("feed_upsert", time.Now())
	if err := feed.Validate(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	const query = `
INSERT INTO feeds (name, url, active)
VALUES ($1, $2, $3)
ON CONFLICT (url) DO UPDATE SET name = EXCLUDED.name, active = EXCLUDED.active
RETURNING id`
	if err := repo.db.QueryRowContext(ctx, query, feed.Name, feed.URL, feed.Active).Scan(&feed.ID); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *FeedRepo) TouchCrawledAt(ctx context.Context, id int64, at time.Time) error {
	defer observeQuery("feed_touch_crawled_at", time.Now())
	const query = `UPDATE feeds SET last_crawled_at = $2 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("TouchCrawledAt: %w", err)
	}
	return nil
}

func (repo *FeedRepo) UpdateCursor(ctx context.Context, id int64, etag, lastModified string) error {
	defer observeQuery("feed_update_cursor", time.Now())
	const query = `UPDATE feeds SET etag = $2, last_modified = $3 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id, etag, lastModified); err != nil {
		return fmt.Errorf("UpdateCursor: %w", err)
	}
	return nil
}
