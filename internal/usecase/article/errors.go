// Package article provides the read-side use cases for published articles:
// paginated listing and lookup by ID or slug. Writing happens only through
// the ingestion pipeline.
package article

import "errors"

var (
	// ErrArticleNotFound is returned when no article matches the lookup.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID is returned for non-positive IDs.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrInvalidSlug is returned for empty slugs.
	ErrInvalidSlug = errors.New("invalid article slug")
)
