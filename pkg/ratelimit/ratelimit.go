// Package ratelimit implements sliding-window rate limiting with pluggable
// storage (in-memory or Redis), timed-ban escalation for repeat offenders,
// and Prometheus metrics. It is transport-agnostic; the HTTP middleware in
// internal/handler/http/middleware adapts it to requests.
package ratelimit

import (
	"context"
	"time"
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Store holds request timestamps per key. All methods must be thread-safe.
type Store interface {
	// CheckAndAddRequest atomically counts requests after cutoff and, when
	// the count is below limit, records the new timestamp. Returns whether
	// the request was admitted and the count before admission.
	CheckAndAddRequest(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (allowed bool, count int, err error)

	// Cleanup drops timestamps older than cutoff across all keys.
	Cleanup(ctx context.Context, cutoff time.Time) error

	// KeyCount reports the number of tracked keys, for metrics.
	KeyCount(ctx context.Context) (int, error)
}

// Metrics receives rate limiting events. Implementations: PrometheusMetrics,
// NoOpMetrics.
type Metrics interface {
	RecordAllowed(limiterType, endpoint string)
	RecordDenied(limiterType, endpoint string)
	RecordCheckDuration(limiterType string, duration time.Duration)
	RecordBan(limiterType string)
	SetActiveKeys(limiterType string, count int)
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Key         string
	Allowed     bool
	Limit       int
	Remaining   int
	ResetAt     time.Time
	RetryAfter  time.Duration
	LimiterType string
}
