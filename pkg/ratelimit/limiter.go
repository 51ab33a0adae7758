package ratelimit

import (
	"context"
	"time"
)

// LimiterConfig assembles one limiter.
type LimiterConfig struct {
	// LimiterType labels this limiter in metrics, e.g. "ip".
	LimiterType string

	// Limit requests per Window.
	Limit  int
	Window time.Duration

	Store   Store
	Banlist *Banlist // optional
	Metrics Metrics  // nil means NoOpMetrics
	Clock   Clock    // nil means SystemClock
}

// Limiter ties the sliding window algorithm to a store, optional banlist,
// and metrics. One Limiter guards one class of subject (e.g. client IPs).
type Limiter struct {
	config    LimiterConfig
	algorithm *SlidingWindow
	clock     Clock
}

// NewLimiter creates a Limiter.
func NewLimiter(config LimiterConfig) *Limiter {
	if config.Metrics == nil {
		config.Metrics = NoOpMetrics{}
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	return &Limiter{
		config:    config,
		algorithm: NewSlidingWindow(config.Clock),
		clock:     config.Clock,
	}
}

// Check runs one rate limit decision for key. endpoint is a metrics label.
func (l *Limiter) Check(ctx context.Context, key, endpoint string) (*Decision, error) {
	start := l.clock.Now()
	defer func() {
		l.config.Metrics.RecordCheckDuration(l.config.LimiterType, l.clock.Now().Sub(start))
	}()

	if l.config.Banlist != nil {
		if banned, until := l.config.Banlist.IsBanned(key); banned {
			l.config.Metrics.RecordDenied(l.config.LimiterType, endpoint)
			return &Decision{
				Key:         key,
				Allowed:     false,
				Limit:       l.config.Limit,
				Remaining:   0,
				ResetAt:     until,
				RetryAfter:  until.Sub(l.clock.Now()),
				LimiterType: l.config.LimiterType,
			}, nil
		}
	}

	decision, err := l.algorithm.IsAllowed(ctx, key, l.config.Store, l.config.Limit, l.config.Window)
	if err != nil {
		return nil, err
	}
	decision.LimiterType = l.config.LimiterType

	if decision.Allowed {
		l.config.Metrics.RecordAllowed(l.config.LimiterType, endpoint)
		return decision, nil
	}

	l.config.Metrics.RecordDenied(l.config.LimiterType, endpoint)
	if l.config.Banlist != nil {
		if banned, until := l.config.Banlist.RecordViolation(key); banned {
			l.config.Metrics.RecordBan(l.config.LimiterType)
			decision.ResetAt = until
			decision.RetryAfter = until.Sub(l.clock.Now())
		}
	}
	return decision, nil
}

// Cleanup prunes every per-key structure the limiter owns: the store's
// timestamp sets, the algorithm's clock-skew marks, and stale ban entries.
// The owning server must call it periodically or each distinct key ever
// seen stays resident.
func (l *Limiter) Cleanup(ctx context.Context, cutoff time.Time) error {
	err := l.config.Store.Cleanup(ctx, cutoff)
	l.algorithm.Cleanup(cutoff)
	if l.config.Banlist != nil {
		l.config.Banlist.Cleanup()
	}
	return err
}

// UpdateKeyMetrics publishes the store's key count gauge. Intended to run
// periodically from the owning server.
func (l *Limiter) UpdateKeyMetrics(ctx context.Context) {
	if count, err := l.config.Store.KeyCount(ctx); err == nil {
		l.config.Metrics.SetActiveKeys(l.config.LimiterType, count)
	}
}
