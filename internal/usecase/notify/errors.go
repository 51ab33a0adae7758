package notify

import "errors"

var (
	// ErrChannelDisabled is returned by Send on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidArticle is returned when the article is nil or unusable.
	ErrInvalidArticle = errors.New("invalid article data")
)
