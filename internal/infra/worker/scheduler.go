package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"betpress/internal/usecase/process"
)

// Runner is the job the scheduler fires, normally the process service.
type Runner interface {
	ProcessAll(ctx context.Context) (*process.RunSummary, error)
}

// Scheduler fires pipeline runs on the configured cron schedule. Runs
// never overlap: a tick that lands while a run is in flight is skipped.
type Scheduler struct {
	cfg     Config
	runner  Runner
	logger  *slog.Logger
	cron    *cron.Cron
	running chan struct{}
}

func NewScheduler(cfg Config, runner Runner, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	return &Scheduler{
		cfg:     cfg,
		runner:  runner,
		logger:  logger,
		cron:    cron.New(cron.WithLocation(loc)),
		running: make(chan struct{}, 1),
	}, nil
}

// Start registers the cron entry and blocks until ctx ends. With
// RunOnStart set, one run fires before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("register cron schedule %q: %w", s.cfg.CronSchedule, err)
	}

	s.logger.Info("scheduler started",
		slog.String("schedule", s.cfg.CronSchedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Bool("run_on_start", s.cfg.RunOnStart))

	if s.cfg.RunOnStart {
		s.RunOnce(ctx)
	}

	s.cron.Start()
	<-ctx.Done()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.cfg.RunTimeout):
		s.logger.Warn("scheduler stop timed out with a run still in flight")
	}
	return ctx.Err()
}

// RunOnce executes a single bounded pipeline run, unless one is already
// in flight.
func (s *Scheduler) RunOnce(ctx context.Context) {
	select {
	case s.running <- struct{}{}:
		defer func() { <-s.running }()
	default:
		s.logger.Warn("previous run still in flight, skipping tick")
		recordRun("skipped", 0, 0)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	summary, err := s.runner.ProcessAll(runCtx)
	duration := time.Since(start)

	if err != nil {
		recordRun("failure", duration, 0)
		s.logger.Error("scheduled run failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}

	recordRun("success", duration, summary.Processed)
	s.logger.Info("scheduled run completed",
		slog.Int("processed", summary.Processed),
		slog.Int("errors", len(summary.Errors)),
		slog.Duration("duration", duration))
}
