package notifier

import (
	"context"

	"betpress/internal/domain/entity"
)

// NoOpNotifier satisfies Notifier while doing nothing. Used when the Slack
// channel is disabled so callers never need a nil check.
type NoOpNotifier struct{}

func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

func (n *NoOpNotifier) NotifyArticle(_ context.Context, _ *entity.Article) error {
	return nil
}
