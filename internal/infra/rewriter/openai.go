package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"betpress/internal/resilience/circuitbreaker"
	"betpress/internal/usecase/process"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements process.ContentRewriter on OpenAI's chat completion API.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	limiter         *rate.Limiter
	config          Config
	metricsRecorder CallMetricsRecorder
}

// NewOpenAI creates an OpenAI rewriter with the given API key.
func NewOpenAI(apiKey string, cfg Config) *OpenAI {
	return newOpenAIWithClient(openai.NewClient(apiKey), cfg)
}

// NewOpenAIWithBaseURL points the client at a different endpoint. Used for
// OpenAI-compatible gateways and in tests.
func NewOpenAIWithBaseURL(apiKey, baseURL string, cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	return newOpenAIWithClient(openai.NewClientWithConfig(clientCfg), cfg)
}

func newOpenAIWithClient(client *openai.Client, cfg Config) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}

	slog.Info("initialized openai rewriter",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &OpenAI{
		client:          client,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		limiter:         newLimiter(cfg.RequestsPerMinute),
		config:          cfg,
		metricsRecorder: NewPrometheusCallMetrics(),
	}
}

// Rewrite produces the Turkish rewrite of a source entry.
func (o *OpenAI) Rewrite(ctx context.Context, title, content string) (*process.RewriteResult, error) {
	response, err := o.complete(ctx, "rewrite", buildRewritePrompt(title, content))
	if err != nil {
		return nil, err
	}
	return ParseRewrite(response, title, content), nil
}

// GenerateMetadata produces SEO metadata for a rewritten article.
func (o *OpenAI) GenerateMetadata(ctx context.Context, title, body string) (*process.SEOMetadata, error) {
	response, err := o.complete(ctx, "metadata", buildMetadataPrompt(title, body))
	if err != nil {
		return nil, err
	}
	return ParseMetadata(response, title, body), nil
}

func (o *OpenAI) complete(ctx context.Context, call, prompt string) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai %s: rate wait: %w", call, err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	slog.InfoContext(ctx, "starting model call",
		slog.String("provider", "openai"),
		slog.String("call", call),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()
	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doComplete(ctx, prompt)
	})
	duration := time.Since(start)
	o.metricsRecorder.RecordDuration("openai", call, duration)

	if err != nil {
		o.metricsRecorder.RecordCall("openai", call, "error")
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		slog.ErrorContext(ctx, "model call failed",
			slog.String("provider", "openai"),
			slog.String("call", call),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	o.metricsRecorder.RecordCall("openai", call, "ok")
	slog.InfoContext(ctx, "model call completed",
		slog.String("provider", "openai"),
		slog.String("call", call),
		slog.Duration("duration", duration))
	return cbResult.(string), nil
}

func (o *OpenAI) doComplete(ctx context.Context, prompt string) (interface{}, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
