package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fsanano/csmarket/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, upstream http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	load := func() (*config.Config, error) {
		cfg := &config.Config{LogLevel: "error"}
		cfg.CSMarket.APIURL = ts.URL
		cfg.CSMarket.APIKey = "cli-key"
		return cfg, nil
	}

	var out, errOut bytes.Buffer
	root := newRootCmd(load)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListingsLatest(t *testing.T) {
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listings/latest/aggregate", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "cli-key", q.Get("key"))
		assert.Equal(t, "Chroma 2 Case", q.Get("market_hash_name"))
		assert.Equal(t, []string{"STEAMCOMMUNITY", "BUFF163"}, q["markets"])
		assert.Equal(t, "EUR", q.Get("currency"))
		assert.Equal(t, "1d", q.Get("max_age"))
		w.Write([]byte(`{"market_hash_name": "Chroma 2 Case", "listings": []}`))
	}, "listings", "latest", "Chroma 2 Case", "--markets", "steamcommunity,buff163", "--currency", "eur", "--max-age", "1d")

	require.NoError(t, err)
	assert.JSONEq(t, `{"market_hash_name": "Chroma 2 Case", "listings": []}`, out)
	assert.Contains(t, out, "\n  \"", "output is indented")
}

func TestSalesHistory_Range(t *testing.T) {
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-04-01", q.Get("start"))
		assert.Equal(t, "2024-04-30", q.Get("end"))
		assert.Equal(t, "USD", q.Get("currency"))
		w.Write([]byte(`[{"day": "2024-04-01", "sales": []}]`))
	}, "sales", "history", "Glove Case", "--markets", "CSFLOAT", "--start", "2024-04-01", "--end", "2024-04-30")

	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "2024-04-01", items[0]["day"])
}

func TestCatalogCommands(t *testing.T) {
	bodies := map[string]string{
		"items":          `[{"market_hash_name": "Glove Case", "hash_name": "Glove Case"}]`,
		"markets":        `[{"market": "BUFF163", "url": "https://buff.163.com"}]`,
		"currency-rates": `[{"currency_code": "EUR", "currency_name": "Euro", "currency_symbol": "€", "rate": 0.92, "timestamp": "2024-05-01T00:00:00Z"}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}, name)
			require.NoError(t, err)
			assert.JSONEq(t, body, out)
		})
	}
}

func TestPlayers(t *testing.T) {
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/player_counts/latest", r.URL.Path)
		w.Write([]byte(`{"timestamp": "2024-05-01T00:00:00Z", "count": 5}`))
	}, "players", "latest")
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp": "2024-05-01T00:00:00Z", "count": 5}`, out)

	_, err = runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-05-01T00:00:00Z", r.URL.Query().Get("start"))
		w.Write([]byte(`[]`))
	}, "players", "history", "--start", "2024-05-01T00:00:00Z")
	require.NoError(t, err)
}

func TestCLIErrors(t *testing.T) {
	noCall := func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	}

	_, err := runCLI(t, noCall, "listings", "latest", "Chroma 2 Case")
	assert.ErrorContains(t, err, "markets")

	_, err = runCLI(t, noCall, "sales", "latest", "Chroma 2 Case", "--markets", "NOWHERE")
	assert.ErrorContains(t, err, "unknown market")

	_, err = runCLI(t, noCall, "listings", "history", "--markets", "BUFF163")
	assert.Error(t, err, "market hash name argument is required")

	_, err = runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	}, "items")
	assert.ErrorContains(t, err, "401")
}

func TestConfigError(t *testing.T) {
	root := newRootCmd(func() (*config.Config, error) {
		return nil, errors.New("CSMARKET_API_KEY must be set")
	})
	root.SetArgs([]string{"markets"})
	root.SetOut(&bytes.Buffer{})

	err := root.ExecuteContext(context.Background())
	assert.EqualError(t, err, "CSMARKET_API_KEY must be set")
}
