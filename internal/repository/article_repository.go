// Package repository defines the persistence interfaces implemented by the
// infra adapters. Use cases depend on these interfaces, never on a concrete
// database driver.
package repository

import (
	"context"

	"betpress/internal/domain/entity"
)

// ArticleRepository manages persisted articles. The ingestion pipeline only
// inserts; listing and lookup exist for the read API. Articles are never
// updated by the pipeline.
type ArticleRepository interface {
	// Create inserts a new article row. Returns entity.ErrDuplicateSourceURL
	// when the source URL uniqueness constraint is violated.
	Create(ctx context.Context, article *entity.Article) error

	// ExistsBySourceURL reports whether an article with the given source URL
	// already exists. This is the pipeline's dedup check.
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)

	// ExistsBySourceURLBatch checks many source URLs in one round trip and
	// returns a map keyed by URL with true for every URL already stored.
	ExistsBySourceURLBatch(ctx context.Context, sourceURLs []string) (map[string]bool, error)

	// ExistsBySlug reports whether the given slug is already taken. The
	// pipeline uses it to resolve slug collisions before insert.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	ListPublished(ctx context.Context, offset, limit int) ([]*entity.Article, error)
	CountPublished(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
}
