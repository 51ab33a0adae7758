package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// SlidingWindow counts individual request timestamps inside a moving window,
// avoiding the boundary bursts of fixed windows. A per-key high-water mark
// guards against the system clock moving backwards.
type SlidingWindow struct {
	clock Clock

	mu             sync.Mutex
	lastTimestamps map[string]time.Time
}

// NewSlidingWindow creates the algorithm. A nil clock means SystemClock.
func NewSlidingWindow(clock Clock) *SlidingWindow {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SlidingWindow{
		clock:          clock,
		lastTimestamps: make(map[string]time.Time),
	}
}

// IsAllowed checks and records one request for key against limit/window.
func (a *SlidingWindow) IsAllowed(ctx context.Context, key string, store Store, limit int, window time.Duration) (*Decision, error) {
	now := a.validTimestamp(key)
	cutoff := now.Add(-window)
	resetAt := now.Add(window)

	allowed, count, err := store.CheckAndAddRequest(ctx, key, now, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("rate limit store: %w", err)
	}

	decision := &Decision{
		Key:     key,
		Allowed: allowed,
		Limit:   limit,
		ResetAt: resetAt,
	}
	if allowed {
		decision.Remaining = limit - count - 1
		if decision.Remaining < 0 {
			decision.Remaining = 0
		}
		return decision, nil
	}

	decision.Remaining = 0
	decision.RetryAfter = window
	return decision, nil
}

// validTimestamp returns the current time, clamped so it never runs
// backwards for a key even when the wall clock does.
func (a *SlidingWindow) validTimestamp(key string) time.Time {
	now := a.clock.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	if last, ok := a.lastTimestamps[key]; ok && now.Before(last) {
		slog.Warn("clock skew detected in rate limiter",
			slog.String("key", key),
			slog.Time("now", now),
			slog.Time("last_seen", last))
		return last
	}
	a.lastTimestamps[key] = now
	return now
}

// Cleanup drops high-water marks not touched since cutoff. The store
// prunes its timestamp sets the same way; without both, every distinct
// key ever seen would stay resident forever.
func (a *SlidingWindow) Cleanup(cutoff time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key, last := range a.lastTimestamps {
		if last.Before(cutoff) {
			delete(a.lastTimestamps, key)
		}
	}
}

// Len reports how many keys currently hold a high-water mark.
func (a *SlidingWindow) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.lastTimestamps)
}
