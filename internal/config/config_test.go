package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("expected default cache TTL, got %v", cfg.CacheTTL)
	}
	if cfg.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.RefreshSchedule != "0 * * * *" {
		t.Fatalf("expected hourly refresh, got %q", cfg.RefreshSchedule)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SW_LISTEN_ADDR", ":9999")
	t.Setenv("SW_CACHE_TTL_MIN", "5")
	t.Setenv("SW_WORKERS", "2")
	t.Setenv("SW_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}

	if cfg.ListenAddr != ":9999" {
		t.Fatalf("expected override, got %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m TTL, got %v", cfg.CacheTTL)
	}
	if cfg.Workers != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.LogLevel)
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("SW_CACHE_TTL_MIN", "soon")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for non-numeric TTL")
	}
}
