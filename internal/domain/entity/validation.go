package entity

import (
	"fmt"
	"net/url"
	"regexp"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateArticle checks the invariants an Article must satisfy before it is
// handed to the persistence layer. Field derivation (slug, HTML body) is the
// pipeline's job; this only verifies the result.
func ValidateArticle(a *Article) error {
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArticle)
	}
	if !slugPattern.MatchString(a.Slug) {
		return fmt.Errorf("%w: slug %q must match [a-z0-9-] with no leading or trailing hyphens", ErrInvalidArticle, a.Slug)
	}
	if a.Body == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidArticle)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArticle, a.Category)
	}
	if len(a.Tags) > MaxTags {
		return fmt.Errorf("%w: at most %d tags allowed, got %d", ErrInvalidArticle, MaxTags, len(a.Tags))
	}
	if u, err := url.Parse(a.SourceURL); err != nil || u.Host == "" {
		return fmt.Errorf("%w: source URL %q is not a valid URL", ErrInvalidArticle, a.SourceURL)
	}
	return nil
}
