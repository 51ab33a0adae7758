// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track the ingestion pipeline
var (
	// ArticlesTotal tracks total number of published articles in the database
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of published articles in the database",
		},
	)

	// FeedsTotal tracks total number of active feeds
	FeedsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feeds_total",
			Help: "Total number of active feeds",
		},
	)

	// ItemsFetchedTotal counts feed items seen per feed
	ItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_fetched_total",
			Help: "Total number of feed items fetched",
		},
		[]string{"feed", "feed_id"},
	)

	// ItemsSkippedTotal counts items dropped by a pipeline gate
	ItemsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_skipped_total",
			Help: "Total number of feed items skipped by pipeline gates",
		},
		[]string{"reason"}, // reason: duplicate, too_short, rewrite_failed, persist_failed
	)

	// ArticlesRewrittenTotal counts rewrite outcomes
	ArticlesRewrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_rewritten_total",
			Help: "Total number of article rewrite attempts",
		},
		[]string{"status"},
	)

	// RewriteDuration measures the full two-call rewrite of one item
	RewriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_rewrite_duration_seconds",
			Help:    "Time taken to rewrite one article, both model calls included",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ArticlesPublishedTotal counts persisted articles per category
	ArticlesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles persisted",
		},
		[]string{"category"},
	)

	// FeedCrawlDuration measures time to process one feed
	FeedCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_crawl_duration_seconds",
			Help:    "Time taken to process a feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"feed_id"},
	)

	// FeedCrawlErrors counts errors during feed processing
	FeedCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_crawl_errors_total",
			Help: "Total number of feed crawl errors",
		},
		[]string{"feed_id", "error_type"},
	)

	// ContentFetchAttemptsTotal counts content enhancement attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
