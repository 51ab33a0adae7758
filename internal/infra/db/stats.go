package db

import (
	"context"
	"database/sql"
	"time"

	"betpress/internal/observability/metrics"
)

// PollConnectionStats publishes the pool's in-use and idle connection gauges
// every interval until ctx is cancelled. Run it in its own goroutine.
func PollConnectionStats(ctx context.Context, database *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		}
	}
}
