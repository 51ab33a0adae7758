package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"betpress/internal/usecase/process"
)

type stubRunner struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{}
	summary *process.RunSummary
	err     error
}

func (s *stubRunner) ProcessAll(ctx context.Context) (*process.RunSummary, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.summary, s.err
}

func (s *stubRunner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceInvokesRunner(t *testing.T) {
	runner := &stubRunner{summary: &process.RunSummary{Processed: 3}}
	s, err := NewScheduler(DefaultConfig(), runner, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	s.RunOnce(context.Background())

	if runner.callCount() != 1 {
		t.Errorf("calls = %d, want 1", runner.callCount())
	}
}

func TestRunOnceSwallowsRunError(t *testing.T) {
	runner := &stubRunner{err: errors.New("list active feeds: down")}
	s, err := NewScheduler(DefaultConfig(), runner, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	// A failed run must not panic or abort the scheduler loop.
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	if runner.callCount() != 2 {
		t.Errorf("calls = %d, want 2", runner.callCount())
	}
}

func TestOverlappingRunsAreSkipped(t *testing.T) {
	runner := &stubRunner{
		block:   make(chan struct{}),
		summary: &process.RunSummary{},
	}
	s, err := NewScheduler(DefaultConfig(), runner, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()

	// Wait until the first run holds the slot.
	deadline := time.After(2 * time.Second)
	for runner.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first run never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.RunOnce(context.Background())
	if got := runner.callCount(); got != 1 {
		t.Errorf("calls = %d, want 1; overlapping run must be skipped", got)
	}

	close(runner.block)
	<-done
}

func TestRunOnceAppliesTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunTimeout = 20 * time.Millisecond
	runner := &stubRunner{block: make(chan struct{})}
	s, err := NewScheduler(cfg, runner, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	start := time.Now()
	s.RunOnce(context.Background())
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("RunOnce took %s, timeout not applied", elapsed)
	}
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Nowhere/Special"
	if _, err := NewScheduler(cfg, &stubRunner{}, testLogger()); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
