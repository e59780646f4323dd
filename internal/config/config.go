package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the sponsorwatch service.
type Config struct {
	ListenAddr      string
	SnapshotPath    string
	TaxonomyPath    string
	DBPath          string
	CacheTTL        time.Duration
	RefreshSchedule string
	LogLevel        string
	Workers         int
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:      getEnv("SW_LISTEN_ADDR", ":8080"),
		SnapshotPath:    getEnv("SW_SNAPSHOT_PATH", "data/sample_athletes.json"),
		TaxonomyPath:    getEnv("SW_TAXONOMY_PATH", ""),
		DBPath:          getEnv("SW_DB_PATH", "data/sponsorwatch.db"),
		CacheTTL:        30 * time.Minute,
		RefreshSchedule: getEnv("SW_REFRESH_SCHEDULE", "0 * * * *"),
		LogLevel:        getEnv("SW_LOG_LEVEL", "info"),
		Workers:         4,
	}

	if ttl := os.Getenv("SW_CACHE_TTL_MIN"); ttl != "" {
		var minutes int
		if _, err := fmt.Sscanf(ttl, "%d", &minutes); err != nil {
			return Config{}, fmt.Errorf("parse SW_CACHE_TTL_MIN: %w", err)
		}
		cfg.CacheTTL = time.Duration(minutes) * time.Minute
	}

	if workers := os.Getenv("SW_WORKERS"); workers != "" {
		if _, err := fmt.Sscanf(workers, "%d", &cfg.Workers); err != nil {
			return Config{}, fmt.Errorf("parse SW_WORKERS: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
