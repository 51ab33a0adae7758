package config

import (
	"fmt"
	"net"
	"time"
)

// RateLimitConfig holds the HTTP rate limiting settings loaded from env.
type RateLimitConfig struct {
	// Enabled turns the middleware on.
	Enabled bool

	// RequestsPerWindow and Window define the per-IP sliding window limit.
	RequestsPerWindow int
	Window            time.Duration

	// Store selects the backend: "memory" or "redis".
	Store string

	// RedisAddr, RedisPassword, RedisDB configure the shared store when
	// Store is "redis".
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Ban escalation for repeat offenders.
	BanViolationThreshold int
	BanViolationWindow    time.Duration
	BanBaseDuration       time.Duration
	BanMaxDuration        time.Duration

	// CleanupInterval paces the background store/banlist sweep.
	CleanupInterval time.Duration

	// TrustedProxies lists CIDRs whose X-Forwarded-For is honored when
	// extracting the client IP.
	TrustedProxies []string
}

// LoadRateLimitConfig reads RATELIMIT_* settings with production defaults.
func LoadRateLimitConfig() (*RateLimitConfig, error) {
	cfg := &RateLimitConfig{
		Enabled:           GetEnvBool("RATELIMIT_ENABLED", true),
		RequestsPerWindow: GetEnvInt("RATELIMIT_REQUESTS", 60),
		Window:            GetEnvDuration("RATELIMIT_WINDOW", time.Minute),
		Store:             GetEnvString("RATELIMIT_STORE", "memory"),

		RedisAddr:     GetEnvString("RATELIMIT_REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnvString("RATELIMIT_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("RATELIMIT_REDIS_DB", 0),

		BanViolationThreshold: GetEnvInt("RATELIMIT_BAN_THRESHOLD", 10),
		BanViolationWindow:    GetEnvDuration("RATELIMIT_BAN_WINDOW", time.Minute),
		BanBaseDuration:       GetEnvDuration("RATELIMIT_BAN_BASE", 5*time.Minute),
		BanMaxDuration:        GetEnvDuration("RATELIMIT_BAN_MAX", time.Hour),

		CleanupInterval: GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		TrustedProxies: GetEnvStringList("TRUSTED_PROXIES", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field consistency.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerWindow <= 0 {
		return fmt.Errorf("rate limit requests must be positive, got %d", c.RequestsPerWindow)
	}
	if err := ValidatePositiveDuration(c.Window); err != nil {
		return fmt.Errorf("rate limit window: %w", err)
	}
	if c.Store != "memory" && c.Store != "redis" {
		return fmt.Errorf("rate limit store must be memory or redis, got %q", c.Store)
	}
	if err := ValidateTrustedProxies(c.TrustedProxies); err != nil {
		return err
	}
	return nil
}

// ValidateTrustedProxies checks that every entry is a valid CIDR.
func ValidateTrustedProxies(cidrs []string) error {
	for _, cidr := range cidrs {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid trusted proxy CIDR %q: %w", cidr, err)
		}
	}
	return nil
}
