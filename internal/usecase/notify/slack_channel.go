package notify

import (
	"context"

	"betpress/internal/domain/entity"
	"betpress/internal/infra/notifier"
)

// SlackChannel adapts the Slack webhook notifier to the Channel interface.
type SlackChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel creates the Slack channel. When disabled, a no-op notifier
// backs it so the Channel contract holds without nil checks.
func NewSlackChannel(config notifier.SlackConfig) *SlackChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}
	return &SlackChannel{notifier: n, enabled: config.Enabled}
}

func (c *SlackChannel) Name() string {
	return "slack"
}

func (c *SlackChannel) IsEnabled() bool {
	return c.enabled
}

func (c *SlackChannel) Send(ctx context.Context, article *entity.Article) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if article == nil {
		return ErrInvalidArticle
	}
	return c.notifier.NotifyArticle(ctx, article)
}
