package fetcher

import (
	"fmt"
	"time"

	"betpress/pkg/config"
)

// Config controls the content enhancement fetcher.
type Config struct {
	// Enabled toggles enhancement. When false the RSS content is used as is.
	Enabled bool

	// Threshold is the minimum RSS content length in characters. Entries at
	// or above it are considered complete and are not re-fetched.
	Threshold int

	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// MaxBodySize caps the response body in bytes.
	MaxBodySize int64

	// MaxRedirects caps redirect chains. Each hop is re-validated.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to private, loopback or
	// link-local addresses. Keep true in production.
	DenyPrivateIPs bool
}

func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		Threshold:      1500,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// LoadConfigFromEnv reads the CONTENT_FETCH_* environment variables,
// falling back to defaults, and validates the result.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)
	cfg.Threshold = config.GetEnvInt("CONTENT_FETCH_THRESHOLD", cfg.Threshold)
	cfg.Timeout = config.GetEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(config.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = config.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = config.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("content fetch config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 100MB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}
