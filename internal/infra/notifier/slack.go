package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"betpress/internal/domain/entity"
	"betpress/pkg/config"
)

// SlackConfig configures the Slack Incoming Webhook notifier.
type SlackConfig struct {
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL. It embeds the
	// authentication token, so it must never appear in logs.
	WebhookURL string

	// PublicBaseURL is the public site root used to build article links,
	// e.g. "https://betpress.example.com".
	PublicBaseURL string

	// Timeout bounds one webhook request.
	Timeout time.Duration
}

// SlackNotifier posts one Block Kit message per published article. Slack's
// webhook limit is one message per second, so sends are paced accordingly.
type SlackNotifier struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewSlackNotifier creates a SlackNotifier from config.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
	}
}

// slackPayload is the webhook body in Block Kit form.
type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string            `json:"type"`
	Text     *slackTextObject  `json:"text,omitempty"`
	Elements []slackTextObject `json:"elements,omitempty"`
}

type slackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	maxSectionTextLength = 3000
	maxFallbackLength    = 150

	slackTruncationSuffix = "..."
)

// articleURL builds the public link for an article.
func (s *SlackNotifier) articleURL(article *entity.Article) string {
	base := strings.TrimRight(s.config.PublicBaseURL, "/")
	return fmt.Sprintf("%s/haber/%s", base, article.Slug)
}

// buildPayload renders the article as a section block (linked title plus
// excerpt) and a context block (category, source feed, publish time).
func (s *SlackNotifier) buildPayload(article *entity.Article) slackPayload {
	fallback := truncateText(
		fmt.Sprintf("%s - %s", article.Title, article.SourceFeed),
		maxFallbackLength, slackTruncationSuffix)

	sectionText := truncateText(
		fmt.Sprintf("*<%s|%s>*\n\n%s", s.articleURL(article), article.Title, article.Excerpt),
		maxSectionTextLength, slackTruncationSuffix)

	contextText := fmt.Sprintf("%s • %s • %s",
		article.Category, article.SourceFeed, article.PublishedAt.Format(time.RFC3339))

	return slackPayload{
		Text: fallback,
		Blocks: []slackBlock{
			{
				Type: "section",
				Text: &slackTextObject{Type: "mrkdwn", Text: sectionText},
			},
			{
				Type: "context",
				Elements: []slackTextObject{
					{Type: "mrkdwn", Text: contextText},
				},
			},
		},
	}
}

// NotifyArticle posts the article to the webhook. One attempt only; the
// error classifies the failure (RateLimitError, ClientError, ServerError)
// so the caller's channel health tracking can react.
func (s *SlackNotifier) NotifyArticle(ctx context.Context, article *entity.Article) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if err := s.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("slack rate limiter: %w", err)
	}

	if err := s.sendWebhookRequest(ctx, article); err != nil {
		slog.Warn("slack notification failed",
			slog.String("request_id", requestID),
			slog.Int64("article_id", article.ID),
			slog.String("slug", article.Slug),
			slog.Any("error", err))
		return err
	}

	slog.Info("slack notification sent",
		slog.String("request_id", requestID),
		slog.Int64("article_id", article.ID),
		slog.String("slug", article.Slug))
	return nil
}

func (s *SlackNotifier) sendWebhookRequest(ctx context.Context, article *entity.Article) error {
	jsonData, err := json.Marshal(s.buildPayload(article))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    "slack rate limit exceeded",
			RetryAfter: extractRetryAfter(resp),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("slack client error %d: %s", resp.StatusCode, string(body)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("slack server error %d: %s", resp.StatusCode, string(body)),
		}
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
}

// LoadSlackConfig reads SLACK_* settings. A missing or malformed webhook
// URL disables the channel instead of failing startup; a casino news site
// can ship articles without Slack, but not the other way around.
func LoadSlackConfig(logger *slog.Logger) SlackConfig {
	cfg := SlackConfig{
		Enabled:       config.GetEnvBool("SLACK_ENABLED", false),
		WebhookURL:    config.GetEnvString("SLACK_WEBHOOK_URL", ""),
		PublicBaseURL: strings.TrimRight(config.GetEnvString("PUBLIC_BASE_URL", ""), "/"),
		Timeout:       config.GetEnvDuration("SLACK_TIMEOUT", 10*time.Second),
	}
	if !cfg.Enabled {
		return SlackConfig{Enabled: false}
	}

	u, err := url.Parse(cfg.WebhookURL)
	if err != nil || u.Scheme != "https" || u.Host != "hooks.slack.com" {
		logger.Warn("invalid Slack webhook URL, disabling notifications")
		return SlackConfig{Enabled: false}
	}
	return cfg
}
