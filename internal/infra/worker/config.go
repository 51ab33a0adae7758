// Package worker runs the ingestion pipeline on a cron schedule and
// exposes liveness endpoints for the scheduler process.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"betpress/pkg/config"
)

// Config controls the worker's schedule and runtime limits.
type Config struct {
	// CronSchedule is a standard 5-field cron expression.
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// RunOnStart triggers one run immediately at startup, before the
	// first scheduled tick.
	RunOnStart bool

	// RunTimeout caps a single pipeline run.
	RunTimeout time.Duration

	// HealthPort serves /health and /health/ready.
	HealthPort int
}

// DefaultConfig runs hourly in Istanbul time with a 20 minute cap.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "0 * * * *",
		Timezone:     "Europe/Istanbul",
		RunOnStart:   true,
		RunTimeout:   20 * time.Minute,
		HealthPort:   9091,
	}
}

// LoadConfigFromEnv reads WORKER_* variables over the defaults and
// validates the result.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		CronSchedule: config.GetEnvString("WORKER_CRON_SCHEDULE", def.CronSchedule),
		Timezone:     config.GetEnvString("WORKER_TIMEZONE", def.Timezone),
		RunOnStart:   config.GetEnvBool("WORKER_RUN_ON_START", def.RunOnStart),
		RunTimeout:   config.GetEnvDuration("WORKER_RUN_TIMEOUT", def.RunTimeout),
		HealthPort:   config.GetEnvInt("WORKER_HEALTH_PORT", def.HealthPort),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the schedule, timezone and limits.
func (c Config) Validate() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %s", c.RunTimeout)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be in 1024..65535, got %d", c.HealthPort)
	}
	return nil
}
