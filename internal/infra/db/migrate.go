package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feeds (
    id              SERIAL PRIMARY KEY,
    name            TEXT NOT NULL,
    url             TEXT NOT NULL UNIQUE,
    active          BOOLEAN NOT NULL DEFAULT TRUE,
    etag            TEXT,
    last_modified   TEXT,
    last_crawled_at TIMESTAMPTZ
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id               SERIAL PRIMARY KEY,
    title            TEXT NOT NULL,
    slug             TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    body             TEXT NOT NULL,
    body_html        TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL,
    tags             TEXT[] NOT NULL DEFAULT '{}',
    meta_title       TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    source_url       TEXT NOT NULL,
    source_feed      TEXT NOT NULL DEFAULT '',
    published_at     TIMESTAMPTZ NOT NULL,
    is_published     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT articles_source_url_key UNIQUE (source_url),
    CONSTRAINT articles_slug_key UNIQUE (slug)
)`); err != nil {
		return err
	}

	indexes := []string{
		// the public listing orders by published_at DESC
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_is_published ON articles(is_published) WHERE is_published = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_feeds_active ON feeds(active) WHERE active = TRUE`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS articles CASCADE`,
		`DROP TABLE IF EXISTS feeds CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
