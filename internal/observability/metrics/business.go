package metrics

import (
	"fmt"
	"time"
)

// Skip reasons used by the pipeline gates.
const (
	SkipDuplicate     = "duplicate"
	SkipTooShort      = "too_short"
	SkipRewriteFailed = "rewrite_failed"
	SkipPersistFailed = "persist_failed"
)

// RecordItemsFetched records how many items one feed produced in a run.
func RecordItemsFetched(feedName string, feedID int64, count int) {
	ItemsFetchedTotal.WithLabelValues(
		feedName,
		fmt.Sprintf("%d", feedID),
	).Add(float64(count))
}

// RecordItemSkipped records one item dropped by a pipeline gate.
func RecordItemSkipped(reason string) {
	ItemsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordArticleRewritten records the outcome of one rewrite attempt.
func RecordArticleRewritten(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ArticlesRewrittenTotal.WithLabelValues(status).Inc()
}

// RecordRewriteDuration records the full two-call rewrite time for one item.
func RecordRewriteDuration(duration time.Duration) {
	RewriteDuration.Observe(duration.Seconds())
}

// RecordArticlePublished records one persisted article.
func RecordArticlePublished(category string) {
	ArticlesPublishedTotal.WithLabelValues(category).Inc()
}

// RecordFeedCrawl records the duration of one feed's processing.
func RecordFeedCrawl(feedID int64, duration time.Duration) {
	FeedCrawlDuration.WithLabelValues(
		fmt.Sprintf("%d", feedID),
	).Observe(duration.Seconds())
}

// RecordFeedCrawlError records an error during feed processing.
func RecordFeedCrawlError(feedID int64, errorType string) {
	FeedCrawlErrors.WithLabelValues(
		fmt.Sprintf("%d", feedID),
		errorType,
	).Inc()
}

// UpdateArticlesTotal updates the published article count gauge.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// UpdateFeedsTotal updates the active feed count gauge.
func UpdateFeedsTotal(count int) {
	FeedsTotal.Set(float64(count))
}

// RecordContentFetchSuccess records a successful content enhancement fetch.
func RecordContentFetchSuccess(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchFailed records a failed content enhancement fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a fetch skipped because the RSS content
// was already long enough.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
