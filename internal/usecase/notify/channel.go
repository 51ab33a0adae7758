// Package notify dispatches fire-and-forget notifications about published
// articles. Sends run in background goroutines behind a bounded worker pool,
// so a slow webhook never stalls the ingestion pipeline.
package notify

import (
	"context"

	"betpress/internal/domain/entity"
)

// Channel is one notification delivery target. Implementations must be safe
// for concurrent use and must respect context cancellation.
type Channel interface {
	// Name identifies the channel in logs, metrics, and health output.
	Name() string

	// IsEnabled reports whether the channel should receive notifications.
	IsEnabled() bool

	// Send announces one published article. A send is attempted once;
	// the service's health tracking reacts to repeated failures.
	Send(ctx context.Context, article *entity.Article) error
}
