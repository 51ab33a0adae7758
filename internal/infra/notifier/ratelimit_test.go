package notifier_test

import (
	"context"
	"testing"
	"time"

	"betpress/internal/infra/notifier"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	limiter := notifier.NewRateLimiter(100, 2)
	ctx := t.Context()

	for i := 0; i < 2; i++ {
		if err := limiter.Allow(ctx); err != nil {
			t.Fatalf("Allow() #%d error = %v", i, err)
		}
	}
}

func TestRateLimiter_RespectsContextCancellation(t *testing.T) {
	// rate so low that the second token cannot arrive within the deadline
	limiter := notifier.NewRateLimiter(0.001, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Allow(ctx); err != nil {
		t.Fatalf("first Allow() error = %v", err)
	}
	if err := limiter.Allow(ctx); err == nil {
		t.Fatal("second Allow() should fail when the context expires first")
	}
}
