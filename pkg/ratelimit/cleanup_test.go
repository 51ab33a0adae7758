package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// manualClock is an in-package Clock for tests that need to reach the
// limiter's unexported state.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Every distinct key leaves state in three places: the store's timestamp
// sets, the algorithm's clock-skew marks, and the banlist. Cleanup must
// prune all of them, otherwise a server facing many distinct client IPs
// grows without bound.
func TestLimiter_CleanupPrunesAllKeyState(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(MemoryStoreConfig{})
	banlist := NewBanlist(BanlistConfig{
		ViolationThreshold: 5,
		ViolationWindow:    time.Minute,
		Clock:              clock,
	})
	limiter := NewLimiter(LimiterConfig{
		LimiterType: "ip",
		Limit:       1,
		Window:      time.Minute,
		Store:       store,
		Banlist:     banlist,
		Clock:       clock,
	})
	ctx := context.Background()

	const keys = 500
	for i := 0; i < keys; i++ {
		key := fmt.Sprintf("10.0.%d.%d", i/256, i%256)
		// Second request exceeds the limit and records a violation.
		for j := 0; j < 2; j++ {
			clock.Advance(time.Millisecond)
			if _, err := limiter.Check(ctx, key, "/api/articles"); err != nil {
				t.Fatalf("Check(%q) error = %v", key, err)
			}
		}
	}

	if count, _ := store.KeyCount(ctx); count != keys {
		t.Fatalf("store KeyCount = %d before cleanup, want %d", count, keys)
	}
	if got := limiter.algorithm.Len(); got != keys {
		t.Fatalf("algorithm marks = %d before cleanup, want %d", got, keys)
	}
	if got := banlist.Len(); got != keys {
		t.Fatalf("banlist entries = %d before cleanup, want %d", got, keys)
	}

	clock.Advance(3 * time.Minute)
	if err := limiter.Cleanup(ctx, clock.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if count, _ := store.KeyCount(ctx); count != 0 {
		t.Errorf("store KeyCount = %d after cleanup, want 0", count)
	}
	if got := limiter.algorithm.Len(); got != 0 {
		t.Errorf("algorithm marks = %d after cleanup, want 0", got)
	}
	if got := banlist.Len(); got != 0 {
		t.Errorf("banlist entries = %d after cleanup, want 0", got)
	}
}

func TestSlidingWindow_CleanupKeepsRecentMarks(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	algo := NewSlidingWindow(clock)
	store := NewMemoryStore(MemoryStoreConfig{})
	ctx := context.Background()

	if _, err := algo.IsAllowed(ctx, "stale", store, 5, time.Minute); err != nil {
		t.Fatalf("IsAllowed() error = %v", err)
	}
	clock.Advance(2 * time.Minute)
	if _, err := algo.IsAllowed(ctx, "fresh", store, 5, time.Minute); err != nil {
		t.Fatalf("IsAllowed() error = %v", err)
	}

	algo.Cleanup(clock.Now().Add(-time.Minute))

	if got := algo.Len(); got != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", got)
	}
	algo.mu.Lock()
	_, staleKept := algo.lastTimestamps["stale"]
	_, freshKept := algo.lastTimestamps["fresh"]
	algo.mu.Unlock()
	if staleKept {
		t.Error("stale mark survived cleanup")
	}
	if !freshKept {
		t.Error("fresh mark was dropped by cleanup")
	}
}
