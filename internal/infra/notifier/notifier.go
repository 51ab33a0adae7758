// Package notifier sends webhook notifications about published articles.
// The Slack implementation talks to an Incoming Webhook; a no-op
// implementation stands in when notifications are disabled.
package notifier

import (
	"context"

	"betpress/internal/domain/entity"
)

// Notifier announces one published article to an external channel.
// Implementations handle pacing and error classification internally. A send
// is attempted exactly once; failures surface to the caller and the next
// article gets a fresh attempt.
type Notifier interface {
	NotifyArticle(ctx context.Context, article *entity.Article) error
}
