// Package postgres implements the repository interfaces on PostgreSQL using
// database/sql over the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"betpress/internal/domain/entity"
	"betpress/internal/observability/metrics"
	"betpress/internal/repository"
)

const articleColumns = `id, title, slug, excerpt, body, body_html, category, tags,
meta_title, meta_description, source_url, source_feed, published_at, is_published, created_at`

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// observeQuery feeds the per-operation query duration histogram.
func observeQuery(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	defer observeQuery("article_create", time.Now())
	const query = `
INSERT INTO articles
       (title, slug, excerpt, body, body_html, category, tags,
        meta_title, meta_description, source_url, source_feed, published_at, is_published, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Slug, article.Excerpt, article.Body, article.BodyHTML,
		string(article.Category), pq.Array(article.Tags),
		article.MetaTitle, article.MetaDescription,
		article.SourceURL, article.SourceFeed,
		article.PublishedAt, article.IsPublished, article.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "articles_source_url_key") {
			return fmt.Errorf("Create: %w", entity.ErrDuplicateSourceURL)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func (repo *ArticleRepo) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	defer observeQuery("article_exists_by_source_url", time.Now())
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE source_url = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, sourceURL).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsBySourceURL: %w", err)
	}
	return exists, nil
}

// ExistsBySourceURLBatch checks all URLs in a single query so the per-item
// dedup gate does not turn into an N+1 pattern.
func (repo *ArticleRepo) ExistsBySourceURLBatch(ctx context.Context, sourceURLs []string) (map[string]bool, error) {
	defer observeQuery("article_exists_batch", time.Now())
	result := make(map[string]bool, len(sourceURLs))
	if len(sourceURLs) == 0 {
		return result, nil
	}

	const query = `SELECT source_url FROM articles WHERE source_url = ANY($1)`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(sourceURLs))
	if err != nil {
		return nil, fmt.Errorf("ExistsBySourceURLBatch: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("ExistsBySourceURLBatch: Scan: %w", err)
		}
		result[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistsBySourceURLBatch: rows.Err: %w", err)
	}
	return result, nil
}

func (repo *ArticleRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	defer observeQuery("article_exists_by_slug", time.Now())
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return exists, nil
}

func (repo *ArticleRepo) ListPublished(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	defer observeQuery("article_list_published", time.Now())
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE is_published = TRUE
ORDER BY published_at DESC
LIMIT $1 OFFSET $2`, articleColumns)

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPublished: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPublished: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) CountPublished(ctx context.Context) (int64, error) {
	defer observeQuery("article_count_published", time.Now())
	const query = `SELECT COUNT(*) FROM articles WHERE is_published = TRUE`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountPublished: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	defer observeQuery("article_get", time.Now())
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE id = $1
LIMIT 1`, articleColumns)

	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	defer observeQuery("article_get_by_slug", time.Now())
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE slug = $1
LIMIT 1`, articleColumns)

	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return article, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*entity.Article, error) {
	var article entity.Article
	var category string
	var tags pq.StringArray
	if err := s.Scan(&article.ID, &article.Title, &article.Slug, &article.Excerpt,
		&article.Body, &article.BodyHTML, &category, &tags,
		&article.MetaTitle, &article.MetaDescription,
		&article.SourceURL, &article.SourceFeed,
		&article.PublishedAt, &article.IsPublished, &article.CreatedAt); err != nil {
		return nil, err
	}
	article.Category = entity.Category(category)
	article.Tags = tags
	return &article, nil
}
