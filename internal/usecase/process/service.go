// Package process implements the news ingestion pipeline: fetch feeds,
// dedupe by source URL, gate on content quality, rewrite via the model,
// categorize and persist. Items move through the gates sequentially and
// nothing is retried within a run; the next scheduled run picks failures up
// again.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"betpress/internal/domain/entity"
	"betpress/internal/observability/metrics"
	"betpress/internal/repository"
	"betpress/internal/utils/text"
)

// MinWordCount is the quality gate: cleaned content shorter than this many
// whitespace-separated words is considered a teaser and skipped.
const MinWordCount = 50

// slugAttempts bounds the collision suffix search.
const slugAttempts = 50

// EnhancementConfig controls the optional full-article fetch.
type EnhancementConfig struct {
	// Threshold is the minimum RSS content length in characters before the
	// full page is fetched.
	Threshold int
}

// ArticleNotifier receives each article right after it is stored. Sends
// run in the background, so a slow channel never stalls the pipeline.
type ArticleNotifier interface {
	NotifyNewArticle(ctx context.Context, article *entity.Article) error
}

// Service orchestrates one ingestion run.
type Service struct {
	FeedRepo       repository.FeedRepository
	ArticleRepo    repository.ArticleRepository
	Fetcher        FeedFetcher
	Rewriter       ContentRewriter
	ContentFetcher ContentFetcher  // nil disables enhancement
	Notifier       ArticleNotifier // nil disables notifications
	Enhancement    EnhancementConfig
}

// NewService creates a process Service with the provided dependencies.
func NewService(
	feedRepo repository.FeedRepository,
	articleRepo repository.ArticleRepository,
	fetcher FeedFetcher,
	rewriter ContentRewriter,
	contentFetcher ContentFetcher,
	enhancement EnhancementConfig,
) *Service {
	return &Service{
		FeedRepo:       feedRepo,
		ArticleRepo:    articleRepo,
		Fetcher:        fetcher,
		Rewriter:       rewriter,
		ContentFetcher: contentFetcher,
		Enhancement:    enhancement,
	}
}

// ArticleRef identifies one article produced by a run.
type ArticleRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// RunSummary aggregates the outcome of one run. Each article insert is
// independent and final; there is no partial-success rollback.
type RunSummary struct {
	Processed int           `json:"processed"`
	Articles  []ArticleRef  `json:"articles"`
	Errors    []string      `json:"errors"`
	Duration  time.Duration `json:"-"`
}

// ProcessAll runs the pipeline over every active feed. Per-feed and per-item
// failures land in the summary's error list; only context cancellation and
// the inability to list feeds abort the run.
func (s *Service) ProcessAll(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{Articles: []ArticleRef{}, Errors: []string{}}

	feeds, err := s.FeedRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active feeds: %w", err)
	}
	metrics.UpdateFeedsTotal(len(feeds))

	for _, fd := range feeds {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		s.processFeed(ctx, fd, summary)
	}

	if total, err := s.ArticleRepo.CountPublished(ctx); err == nil {
		metrics.UpdateArticlesTotal(int(total))
	}

	summary.Duration = time.Since(start)
	slog.Info("run completed",
		slog.Int("feeds", len(feeds)),
		slog.Int("processed", summary.Processed),
		slog.Int("errors", len(summary.Errors)),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}

// processFeed handles one feed: fetch, dedupe in batch, then walk the items.
// All failures are recorded and the run moves on to the next feed.
func (s *Service) processFeed(ctx context.Context, fd *entity.Feed, summary *RunSummary) {
	feedStart := time.Now()

	result, err := s.Fetcher.Fetch(ctx, fd)
	if err != nil {
		slog.Warn("failed to fetch feed",
			slog.Int64("feed_id", fd.ID),
			slog.String("url", fd.URL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(fd.ID, "fetch_failed")
		summary.Errors = append(summary.Errors, fmt.Sprintf("feed %s: %v", fd.Name, err))
		return
	}

	if result.NotModified {
		slog.Info("feed not modified",
			slog.Int64("feed_id", fd.ID),
			slog.String("url", fd.URL))
		s.finishFeed(ctx, fd, result)
		return
	}

	metrics.RecordItemsFetched(fd.Name, fd.ID, len(result.Items))

	urls := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		urls = append(urls, item.Link)
	}
	existsMap, err := s.ArticleRepo.ExistsBySourceURLBatch(ctx, urls)
	if err != nil {
		slog.Warn("failed to batch check source URLs",
			slog.Int64("feed_id", fd.ID),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(fd.ID, "batch_check_failed")
		summary.Errors = append(summary.Errors, fmt.Sprintf("feed %s: dedup check: %v", fd.Name, err))
		return
	}

	for _, item := range result.Items {
		if err := ctx.Err(); err != nil {
			return
		}
		if existsMap[item.Link] {
			metrics.RecordItemSkipped(metrics.SkipDuplicate)
			continue
		}
		s.processItem(ctx, item, summary)
	}

	s.finishFeed(ctx, fd, result)
	metrics.RecordFeedCrawl(fd.ID, time.Since(feedStart))
}

// finishFeed persists the conditional-GET cursor and the crawl timestamp.
// Best effort; a failure here only costs one conditional GET next run.
func (s *Service) finishFeed(ctx context.Context, fd *entity.Feed, result *FetchResult) {
	safeCtx := context.WithoutCancel(ctx)
	if result.ETag != fd.ETag || result.LastModified != fd.LastModified {
		if err := s.FeedRepo.UpdateCursor(safeCtx, fd.ID, result.ETag, result.LastModified); err != nil {
			slog.Warn("failed to update feed cursor",
				slog.Int64("feed_id", fd.ID),
				slog.Any("error", err))
			metrics.RecordFeedCrawlError(fd.ID, "cursor_update_failed")
		}
	}
	if err := s.FeedRepo.TouchCrawledAt(safeCtx, fd.ID, time.Now()); err != nil {
		slog.Warn("failed to update feed crawl timestamp",
			slog.Int64("feed_id", fd.ID),
			slog.Any("error", err))
	}
}

// processItem walks one item through the remaining gates: quality check,
// rewrite, metadata, categorization, persistence.
func (s *Service) processItem(ctx context.Context, item entity.FeedItem, summary *RunSummary) {
	content := s.enhanceContent(ctx, item)

	if words := text.CountWords(content); words < MinWordCount {
		slog.Info("skipping item below word threshold",
			slog.String("url", item.Link),
			slog.Int("words", words))
		metrics.RecordItemSkipped(metrics.SkipTooShort)
		return
	}

	rewriteStart := time.Now()
	rewritten, err := s.Rewriter.Rewrite(ctx, item.Title, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		slog.Warn("rewrite failed, skipping item",
			slog.String("url", item.Link),
			slog.String("title", item.Title),
			slog.Any("error", err))
		metrics.RecordArticleRewritten(false)
		metrics.RecordItemSkipped(metrics.SkipRewriteFailed)
		summary.Errors = append(summary.Errors, fmt.Sprintf("rewrite %s: %v", item.Link, err))
		return
	}

	meta, err := s.Rewriter.GenerateMetadata(ctx, rewritten.Title, rewritten.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		// metadata is derivable, so this call failing does not cost the item
		slog.Warn("metadata call failed, deriving fallback metadata",
			slog.String("url", item.Link),
			slog.Any("error", err))
		meta = fallbackMetadata(rewritten)
	}
	metrics.RecordArticleRewritten(true)
	metrics.RecordRewriteDuration(time.Since(rewriteStart))

	category := Categorize(rewritten.Body)
	slug, err := s.uniqueSlug(ctx, rewritten.Title)
	if err != nil {
		slog.Warn("slug generation failed, skipping item",
			slog.String("url", item.Link),
			slog.Any("error", err))
		metrics.RecordItemSkipped(metrics.SkipPersistFailed)
		summary.Errors = append(summary.Errors, fmt.Sprintf("slug %s: %v", item.Link, err))
		return
	}

	article := &entity.Article{
		Title:           rewritten.Title,
		Slug:            slug,
		Excerpt:         rewritten.Excerpt,
		Body:            rewritten.Body,
		BodyHTML:        text.ParagraphsToHTML(rewritten.Body),
		Category:        category,
		Tags:            entity.ClampTags(meta.Tags),
		MetaTitle:       meta.MetaTitle,
		MetaDescription: meta.MetaDescription,
		SourceURL:       item.Link,
		SourceFeed:      item.SourceFeed,
		PublishedAt:     item.PublishedAt,
		IsPublished:     true,
		CreatedAt:       time.Now(),
	}
	if err := entity.ValidateArticle(article); err != nil {
		slog.Warn("assembled article failed validation, skipping",
			slog.String("url", item.Link),
			slog.Any("error", err))
		metrics.RecordItemSkipped(metrics.SkipPersistFailed)
		summary.Errors = append(summary.Errors, fmt.Sprintf("validate %s: %v", item.Link, err))
		return
	}

	if err := s.ArticleRepo.Create(ctx, article); err != nil {
		if errors.Is(err, entity.ErrDuplicateSourceURL) {
			// raced with a concurrent insert, treat as an ordinary duplicate
			metrics.RecordItemSkipped(metrics.SkipDuplicate)
			return
		}
		slog.Warn("article insert failed",
			slog.String("url", item.Link),
			slog.String("slug", slug),
			slog.Any("error", err))
		metrics.RecordItemSkipped(metrics.SkipPersistFailed)
		summary.Errors = append(summary.Errors, fmt.Sprintf("insert %s: %v", item.Link, err))
		return
	}

	metrics.RecordArticlePublished(string(category))
	summary.Processed++
	summary.Articles = append(summary.Articles, ArticleRef{Title: article.Title, Slug: article.Slug})

	if s.Notifier != nil {
		if err := s.Notifier.NotifyNewArticle(ctx, article); err != nil {
			slog.Warn("notify dispatch failed", slog.String("slug", slug), slog.Any("error", err))
		}
	}

	slog.Info("article published",
		slog.String("slug", slug),
		slog.String("category", string(category)),
		slog.String("source_url", item.Link))
}

// uniqueSlug derives the slug from the rewritten title and resolves
// collisions with a numeric suffix, the same scheme the admin editor uses.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := text.Slugify(title)
	if base == "" {
		return "", fmt.Errorf("title %q yields empty slug", title)
	}

	slug := base
	for i := 2; i <= slugAttempts+1; i++ {
		exists, err := s.ArticleRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("slug existence check: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, slugAttempts)
}

// fallbackMetadata derives SEO fields from the rewrite when the metadata
// call fails.
func fallbackMetadata(rw *RewriteResult) *SEOMetadata {
	return &SEOMetadata{
		MetaTitle:       text.Truncate(rw.Title, 60),
		MetaDescription: text.Truncate(rw.Excerpt, 155),
		Tags:            []string{"casino", "bahis haberleri"},
	}
}

// enhanceContent optionally replaces teaser RSS content with the full
// article text. Never fails; any problem falls back to the RSS content.
func (s *Service) enhanceContent(ctx context.Context, item entity.FeedItem) string {
	if s.ContentFetcher == nil {
		return item.RawContent
	}

	rssLength := len(item.RawContent)
	if rssLength >= s.Enhancement.Threshold {
		metrics.RecordContentFetchSkipped()
		return item.RawContent
	}

	fetchStart := time.Now()
	fullContent, err := s.ContentFetcher.FetchContent(ctx, item.Link)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		slog.Warn("content fetch failed, using RSS content",
			slog.String("url", item.Link),
			slog.Any("error", err),
			slog.Duration("fetch_duration", fetchDuration))
		metrics.RecordContentFetchFailed(fetchDuration)
		return item.RawContent
	}
	metrics.RecordContentFetchSuccess(fetchDuration)

	// a shorter extraction usually means the readability pass went wrong
	if len(fullContent) > rssLength {
		return fullContent
	}
	return item.RawContent
}
