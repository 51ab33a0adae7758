package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"betpress/internal/resilience/circuitbreaker"
	"betpress/internal/usecase/process"
)

// Claude implements process.ContentRewriter on Anthropic's Claude API.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	limiter         *rate.Limiter
	config          Config
	metricsRecorder CallMetricsRecorder
}

// NewClaude creates a Claude rewriter with the given API key.
func NewClaude(apiKey string, cfg Config) *Claude {
	if cfg.Model == "" {
		cfg.Model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	slog.Info("initialized claude rewriter",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		limiter:         newLimiter(cfg.RequestsPerMinute),
		config:          cfg,
		metricsRecorder: NewPrometheusCallMetrics(),
	}
}

// Rewrite produces the Turkish rewrite of a source entry.
func (c *Claude) Rewrite(ctx context.Context, title, content string) (*process.RewriteResult, error) {
	response, err := c.complete(ctx, "rewrite", buildRewritePrompt(title, content))
	if err != nil {
		return nil, err
	}
	return ParseRewrite(response, title, content), nil
}

// GenerateMetadata produces SEO metadata for a rewritten article.
func (c *Claude) GenerateMetadata(ctx context.Context, title, body string) (*process.SEOMetadata, error) {
	response, err := c.complete(ctx, "metadata", buildMetadataPrompt(title, body))
	if err != nil {
		return nil, err
	}
	return ParseMetadata(response, title, body), nil
}

func (c *Claude) complete(ctx context.Context, call, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("claude %s: rate wait: %w", call, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	slog.InfoContext(ctx, "starting model call",
		slog.String("provider", "claude"),
		slog.String("call", call),
		slog.String("request_id", requestID),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()
	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doComplete(ctx, prompt)
	})
	duration := time.Since(start)
	c.metricsRecorder.RecordDuration("claude", call, duration)

	if err != nil {
		c.metricsRecorder.RecordCall("claude", call, "error")
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("request_id", requestID),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		slog.ErrorContext(ctx, "model call failed",
			slog.String("provider", "claude"),
			slog.String("call", call),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	c.metricsRecorder.RecordCall("claude", call, "ok")
	slog.InfoContext(ctx, "model call completed",
		slog.String("provider", "claude"),
		slog.String("call", call),
		slog.String("request_id", requestID),
		slog.Duration("duration", duration))
	return cbResult.(string), nil
}

func (c *Claude) doComplete(ctx context.Context, prompt string) (interface{}, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", ErrEmptyResponse
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	if textBlock.Text == "" {
		return "", ErrEmptyResponse
	}
	return textBlock.Text, nil
}

// newLimiter converts requests-per-minute to a limiter; zero means no pacing.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
}
