package entity

import "errors"

// Domain-level sentinel errors. Use errors.Is to test for them across
// package boundaries.
var (
	// ErrInvalidFeed indicates a feed definition that fails validation.
	ErrInvalidFeed = errors.New("invalid feed")

	// ErrInvalidArticle indicates an article that fails validation before insert.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrDuplicateSourceURL indicates an insert that would violate the
	// one-article-per-source-URL invariant.
	ErrDuplicateSourceURL = errors.New("article with this source URL already exists")
)
