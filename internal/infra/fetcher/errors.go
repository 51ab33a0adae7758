// Package fetcher fetches full article pages and extracts the readable body,
// used to enrich feed entries whose RSS content is only a teaser.
package fetcher

import "errors"

var (
	ErrInvalidURL       = errors.New("fetcher: invalid URL")
	ErrPrivateIP        = errors.New("fetcher: URL resolves to private IP")
	ErrTooManyRedirects = errors.New("fetcher: too many redirects")
	ErrTimeout          = errors.New("fetcher: request timed out")
	ErrBodyTooLarge     = errors.New("fetcher: response body too large")
	ErrExtractionFailed = errors.New("fetcher: content extraction failed")
)
