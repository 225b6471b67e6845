package config

import (
	"testing"
)

func validConfig() *Config {
	cfg, _ := LoadFromEnv()
	cfg.Auth.Secret = "test-secret"
	return cfg
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %s, want 8000", cfg.Server.Port)
	}
	if cfg.Server.RateLimit != 10 || cfg.Server.RateBurst != 20 {
		t.Errorf("rate limit = (%d, %d), want (10, 20)", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	if cfg.Fetch.TimeoutSeconds != 12 {
		t.Errorf("TimeoutSeconds = %d, want 12", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.MaxResponseBytes != 3*1024*1024 {
		t.Errorf("MaxResponseBytes = %d, want 3MiB", cfg.Fetch.MaxResponseBytes)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
	}
	if cfg.Storage.DatabasePath != "readwell.db" {
		t.Errorf("DatabasePath = %s, want readwell.db", cfg.Storage.DatabasePath)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("MAX_RESPONSE_BYTES", "1048576")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6379")
	t.Setenv("AUTH_SECRET", "from-env")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Fetch.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.MaxResponseBytes != 1048576 {
		t.Errorf("MaxResponseBytes = %d, want 1048576", cfg.Fetch.MaxResponseBytes)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Address != "redis.internal:6379" {
		t.Errorf("cache = (%s, %s)", cfg.Cache.Type, cfg.Cache.Redis.Address)
	}
	if cfg.Auth.Secret != "from-env" {
		t.Errorf("Auth.Secret = %s, want from-env", cfg.Auth.Secret)
	}
}

func TestLoadFromEnv_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Fetch.TimeoutSeconds != 12 {
		t.Errorf("TimeoutSeconds = %d, want default 12", cfg.Fetch.TimeoutSeconds)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"zero max bytes", func(c *Config) { c.Fetch.MaxResponseBytes = 0 }},
		{"unknown cache type", func(c *Config) { c.Cache.Type = "memcached" }},
		{"redis without address", func(c *Config) {
			c.Cache.Type = "redis"
			c.Cache.Redis.Address = ""
		}},
		{"missing auth secret", func(c *Config) { c.Auth.Secret = "" }},
	}

	for _, c := range cases {
		cfg := validConfig()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", c.name)
		}
	}
}
