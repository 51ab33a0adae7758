package config_test

import (
	"testing"

	"betpress/pkg/config"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadRateLimitConfig()
	if err != nil {
		t.Fatalf("LoadRateLimitConfig() error = %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled default = false, want true")
	}
	if cfg.Store != "memory" {
		t.Errorf("Store default = %q, want memory", cfg.Store)
	}
	if cfg.RequestsPerWindow != 60 {
		t.Errorf("RequestsPerWindow default = %d, want 60", cfg.RequestsPerWindow)
	}
}

func TestLoadRateLimitConfig_RejectsBadStore(t *testing.T) {
	t.Setenv("RATELIMIT_STORE", "cassandra")
	if _, err := config.LoadRateLimitConfig(); err == nil {
		t.Fatal("LoadRateLimitConfig() accepted an unknown store")
	}
}

func TestValidateTrustedProxies(t *testing.T) {
	if err := config.ValidateTrustedProxies([]string{"10.0.0.0/8", "192.168.0.0/16"}); err != nil {
		t.Errorf("ValidateTrustedProxies() error = %v for valid CIDRs", err)
	}
	if err := config.ValidateTrustedProxies([]string{"10.0.0.1"}); err == nil {
		t.Error("ValidateTrustedProxies() accepted a bare IP as CIDR")
	}
}
