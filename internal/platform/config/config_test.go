package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets all LEARN_ environment variables for a clean test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"LEARN_SERVER_PORT",
		"LEARN_SERVER_HOST",
		"LEARN_DATABASE_URL",
		"LEARN_DATABASE_MAX_CONNS",
		"LEARN_DATABASE_MIN_CONNS",
		"LEARN_CACHE_URL",
		"LEARN_STORAGE_BACKEND",
		"LEARN_STORAGE_TTL",
		"LEARN_CONTENT_DIR",
		"LEARN_CONTENT_URL",
		"LEARN_CONTENT_TIMEOUT",
		"LEARN_SITE_TITLE",
		"LEARN_SITE_LOCALE",
		"LEARN_DONATION_WALLETS",
		"LEARN_EVENTS_ENABLED",
		"LEARN_LOG_LEVEL",
		"LEARN_LOG_FORMAT",
	}
	for _, v := range envVars {
		_ = os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("Database.MaxConns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Cache.URL != "redis://localhost:6379" {
		t.Errorf("Cache.URL = %q, want redis://localhost:6379", cfg.Cache.URL)
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Content.Timeout != 10*time.Second {
		t.Errorf("Content.Timeout = %v, want 10s", cfg.Content.Timeout)
	}
	if cfg.Site.Locale != "ko" {
		t.Errorf("Site.Locale = %q, want ko", cfg.Site.Locale)
	}
	if len(cfg.Site.DonationWallets) != 0 {
		t.Errorf("DonationWallets = %v, want none", cfg.Site.DonationWallets)
	}
	if cfg.NeedsDatabase() {
		t.Error("NeedsDatabase() = true for default config")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("LEARN_SERVER_PORT", "9090")
	t.Setenv("LEARN_STORAGE_BACKEND", "Redis")
	t.Setenv("LEARN_STORAGE_TTL", "720h")
	t.Setenv("LEARN_CONTENT_URL", "https://notes.example.com/content")
	t.Setenv("LEARN_CONTENT_TIMEOUT", "3s")
	t.Setenv("LEARN_DONATION_WALLETS", "BTC=bc1qexample, ETH=0xabc")
	t.Setenv("LEARN_EVENTS_ENABLED", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Backend != StorageRedis {
		t.Errorf("Storage.Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.TTL != 720*time.Hour {
		t.Errorf("Storage.TTL = %v, want 720h", cfg.Storage.TTL)
	}
	if cfg.Content.URL != "https://notes.example.com/content" {
		t.Errorf("Content.URL = %q", cfg.Content.URL)
	}
	if cfg.Content.Timeout != 3*time.Second {
		t.Errorf("Content.Timeout = %v, want 3s", cfg.Content.Timeout)
	}
	if len(cfg.Site.DonationWallets) != 2 {
		t.Fatalf("DonationWallets = %d, want 2", len(cfg.Site.DonationWallets))
	}
	if got := cfg.Site.DonationWallets[1]; got.Network != "ETH" || got.Address != "0xabc" {
		t.Errorf("DonationWallets[1] = %+v", got)
	}
	if !cfg.NeedsDatabase() {
		t.Error("NeedsDatabase() should be true when events are enabled")
	}
}

func TestLoad_MalformedWallets(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEARN_DONATION_WALLETS", "BTC")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a wallet entry without an address")
	}
}

func TestLoad_InvalidDurationUsesDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEARN_CONTENT_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Content.Timeout != 10*time.Second {
		t.Errorf("Content.Timeout = %v, want default 10s", cfg.Content.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"postgres backend", map[string]string{"LEARN_STORAGE_BACKEND": "postgres"}, false},
		{"unknown backend", map[string]string{"LEARN_STORAGE_BACKEND": "sqlite"}, true},
		{"bad port", map[string]string{"LEARN_SERVER_PORT": "70000"}, true},
		{"bad log format", map[string]string{"LEARN_LOG_FORMAT": "xml"}, true},
		{"text log format", map[string]string{"LEARN_LOG_FORMAT": "text"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventsEnabledParsing(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want bool
	}{
		{"true", "true", true},
		{"TRUE", "TRUE", true},
		{"false", "false", false},
		{"1", "1", true},
		{"0", "0", false},
		{"empty", "", false},
		{"invalid", "notabool", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.val != "" {
				t.Setenv("LEARN_EVENTS_ENABLED", tt.val)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Events.Enabled != tt.want {
				t.Errorf("Events.Enabled = %v, want %v", cfg.Events.Enabled, tt.want)
			}
		})
	}
}
