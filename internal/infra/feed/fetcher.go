// Package feed fetches and parses RSS/Atom sources using the gofeed library,
// with conditional-GET cursors and a circuit breaker per run.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"betpress/internal/domain/entity"
	"betpress/internal/resilience/circuitbreaker"
	"betpress/internal/usecase/process"
)

// DefaultMaxItems caps how many entries of a feed are considered per run.
// Feeds list newest first, so the cap keeps runs bounded without losing
// fresh items.
const DefaultMaxItems = 5

const defaultUserAgent = "BetPressBot/1.0"

// ErrFeedStatus signals a non-2xx response from the feed endpoint.
var ErrFeedStatus = errors.New("feed: unexpected status")

// Fetcher retrieves feeds over HTTP.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	userAgent      string
	maxItems       int
}

// NewFetcher creates a Fetcher with the given HTTP client.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		userAgent:      defaultUserAgent,
		maxItems:       DefaultMaxItems,
	}
}

// Fetch retrieves and parses a feed. When the feed carries conditional-GET
// validators they are sent along, and a 304 answer yields an empty result
// with NotModified set.
func (f *Fetcher) Fetch(ctx context.Context, feed *entity.Feed) (*process.FetchResult, error) {
	cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, feed)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("service", "feed-fetch"),
				slog.String("url", feed.URL),
				slog.String("state", f.circuitBreaker.State().String()))
		}
		return nil, err
	}
	return cbResult.(*process.FetchResult), nil
}

func (f *Fetcher) doFetch(ctx context.Context, feed *entity.Feed) (*process.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if feed.ETag != "" {
		req.Header.Set("If-None-Match", feed.ETag)
	}
	if feed.LastModified != "" {
		req.Header.Set("If-Modified-Since", feed.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: get %s: %w", feed.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		return &process.FetchResult{
			ETag:         feed.ETag,
			LastModified: feed.LastModified,
			NotModified:  true,
		}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFeedStatus, feed.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: read body: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("feed: parse %s: %w", feed.URL, err)
	}

	items := parsed.Items
	if len(items) > f.maxItems {
		items = items[:f.maxItems]
	}

	result := &process.FetchResult{
		Items:        make([]entity.FeedItem, 0, len(items)),
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}
	for _, it := range items {
		if it.Link == "" {
			continue
		}

		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		content := it.Content
		if content == "" {
			content = it.Description
		}

		result.Items = append(result.Items, entity.FeedItem{
			Title:       CleanText(it.Title),
			Link:        it.Link,
			PublishedAt: pubAt,
			RawContent:  CleanHTML(content),
			SourceFeed:  feed.Name,
		})
	}
	return result, nil
}
