package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	LogLevel    string

	// SnapshotConcurrency caps parallel upstream fetches during a capture.
	SnapshotConcurrency int

	CSMarket struct {
		APIURL  string
		APIKey  string
		Timeout time.Duration
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		ServerPort:          getenv("SERVER_PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		SnapshotConcurrency: 4,
	}

	cfg.CSMarket.APIKey = os.Getenv("CSMARKET_API_KEY")
	if cfg.CSMarket.APIKey == "" {
		return nil, fmt.Errorf("CSMARKET_API_KEY must be set")
	}
	cfg.CSMarket.APIURL = getenv("CSMARKET_API_URL", "https://api.csmarketapi.com")
	if u, err := url.Parse(cfg.CSMarket.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("CSMARKET_API_URL must be an absolute http(s) URL, got %q", cfg.CSMarket.APIURL)
	}

	if v := os.Getenv("CSMARKET_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("CSMARKET_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.CSMarket.Timeout = d
	}

	if v := os.Getenv("SNAPSHOT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("SNAPSHOT_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.SnapshotConcurrency = n
	}

	return cfg, nil
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
