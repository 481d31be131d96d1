package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"SERVER_PORT", "DATABASE_URL", "LOG_LEVEL", "SNAPSHOT_CONCURRENCY",
		"CSMARKET_API_KEY", "CSMARKET_API_URL", "CSMARKET_TIMEOUT",
	} {
		t.Setenv(name, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CSMARKET_API_KEY", "secret")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.SnapshotConcurrency)
	assert.Equal(t, "secret", cfg.CSMarket.APIKey)
	assert.Equal(t, "https://api.csmarketapi.com", cfg.CSMarket.APIURL)
	assert.Zero(t, cfg.CSMarket.Timeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CSMARKET_API_KEY", "secret")
	t.Setenv("CSMARKET_API_URL", "http://localhost:9000")
	t.Setenv("CSMARKET_TIMEOUT", "15s")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/csmarket")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SNAPSHOT_CONCURRENCY", "8")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/csmarket", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.SnapshotConcurrency)
	assert.Equal(t, "http://localhost:9000", cfg.CSMarket.APIURL)
	assert.Equal(t, 15*time.Second, cfg.CSMarket.Timeout)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing api key",
			env:     map[string]string{},
			wantErr: "CSMARKET_API_KEY must be set",
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"CSMARKET_API_KEY": "k", "CSMARKET_TIMEOUT": "soon"},
			wantErr: "CSMARKET_TIMEOUT",
		},
		{
			name:    "api url without scheme",
			env:     map[string]string{"CSMARKET_API_KEY": "k", "CSMARKET_API_URL": "api.csmarketapi.com"},
			wantErr: "CSMARKET_API_URL must be an absolute http(s) URL",
		},
		{
			name:    "api url with other scheme",
			env:     map[string]string{"CSMARKET_API_KEY": "k", "CSMARKET_API_URL": "ftp://api.csmarketapi.com"},
			wantErr: "CSMARKET_API_URL",
		},
		{
			name:    "zero concurrency",
			env:     map[string]string{"CSMARKET_API_KEY": "k", "SNAPSHOT_CONCURRENCY": "0"},
			wantErr: "SNAPSHOT_CONCURRENCY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := fromEnv()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
