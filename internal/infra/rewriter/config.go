package rewriter

import (
	"fmt"
	"time"

	"betpress/internal/usecase/process"
	"betpress/pkg/config"
)

// Provider identifies which model backend handles rewrite calls.
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Config holds the shared rewriter settings.
type Config struct {
	// Provider selects the backend (REWRITER_TYPE).
	Provider Provider

	// Model overrides the provider default model when non-empty.
	Model string

	// MaxTokens bounds the model response.
	MaxTokens int

	// Timeout bounds one model call.
	Timeout time.Duration

	// RequestsPerMinute paces calls to the provider. Zero disables pacing.
	RequestsPerMinute int
}

// LoadConfig reads REWRITER_* environment variables with defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Provider:          Provider(config.GetEnvString("REWRITER_TYPE", string(ProviderClaude))),
		Model:             config.GetEnvString("REWRITER_MODEL", ""),
		MaxTokens:         config.GetEnvInt("REWRITER_MAX_TOKENS", 4096),
		Timeout:           config.GetEnvDuration("REWRITER_TIMEOUT", 60*time.Second),
		RequestsPerMinute: config.GetEnvInt("REWRITER_REQUESTS_PER_MINUTE", 20),
	}

	switch cfg.Provider {
	case ProviderClaude, ProviderOpenAI:
	default:
		return cfg, fmt.Errorf("rewriter: unknown REWRITER_TYPE %q", cfg.Provider)
	}
	if cfg.MaxTokens <= 0 {
		return cfg, fmt.Errorf("rewriter: REWRITER_MAX_TOKENS must be positive")
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("rewriter: REWRITER_TIMEOUT must be positive")
	}
	return cfg, nil
}

// New builds the configured provider. apiKey is the key for that provider.
func New(cfg Config, apiKey string) (process.ContentRewriter, error) {
	switch cfg.Provider {
	case ProviderClaude:
		return NewClaude(apiKey, cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey, cfg), nil
	default:
		return nil, fmt.Errorf("rewriter: unknown provider %q", cfg.Provider)
	}
}
