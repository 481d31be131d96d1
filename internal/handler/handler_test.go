package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fsanano/csmarket/internal/handler"
	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateway struct {
	handler  *handler.Handler
	upstream *atomic.Int32
}

func newGateway(t *testing.T, upstream http.HandlerFunc, snapshots handler.SnapshotCapturer) gateway {
	t.Helper()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		upstream(w, r)
	}))
	t.Cleanup(ts.Close)

	logger, _ := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	client := csmarket.NewClient(csmarket.Config{APIURL: ts.URL, APIKey: "test-key"}, csmarket.WithLogger(entry))
	t.Cleanup(func() { client.Close() })

	var sh *handler.SnapshotHandler
	if snapshots != nil {
		sh = handler.NewSnapshotHandler(snapshots, entry)
	}
	return gateway{handler: handler.NewHandler(client, sh, entry), upstream: &calls}
}

func (g gateway) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	g.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	w := g.do(t, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestListingsLatest_ForwardsQuery(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listings/latest/aggregate", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "Chroma 2 Case", q.Get("market_hash_name"))
		assert.Equal(t, []string{"STEAMCOMMUNITY", "BUFF163", "CSFLOAT"}, q["markets"])
		assert.Equal(t, "EUR", q.Get("currency"))
		assert.Equal(t, "1h", q.Get("max_age"))
		w.Write([]byte(`{"market_hash_name": "Chroma 2 Case", "listings": [
			{"id": 1, "market": "STEAMCOMMUNITY", "market_link": "https://steamcommunity.com", "mean_price": null,
			 "min_price": 1.1, "max_price": null, "median_price": null, "listings": 3, "timestamp": "2024-05-01T12:00:00Z"}
		]}`))
	}, nil)

	w := g.do(t, http.MethodGet,
		"/v1/listings/latest/aggregate?market_hash_name=Chroma+2+Case&markets=steamcommunity,buff163&markets=CSFloat&currency=eur&max_age=1h", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeBody(t, w)
	assert.Equal(t, "Chroma 2 Case", body["market_hash_name"])
	listings := body["listings"].([]any)
	require.Len(t, listings, 1)
	assert.Nil(t, listings[0].(map[string]any)["mean_price"])
}

func TestAggregate_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing name", "/v1/sales/latest/aggregate?markets=BUFF163"},
		{"missing markets", "/v1/sales/latest/aggregate?market_hash_name=x"},
		{"unknown market", "/v1/listings/history/aggregate?market_hash_name=x&markets=NOWHERE"},
		{"unknown currency", "/v1/sales/history/aggregate?market_hash_name=x&markets=BUFF163&currency=DOGE"},
	}

	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called, got %s", r.URL)
	}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := g.do(t, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], "invalid argument")
		})
	}
	assert.Zero(t, g.upstream.Load())
}

func TestSalesHistory_ForwardsRange(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-04-01", q.Get("start"))
		assert.Equal(t, "USD", q.Get("currency"))
		_, hasEnd := q["end"]
		assert.False(t, hasEnd)
		w.Write([]byte(`[]`))
	}, nil)

	w := g.do(t, http.MethodGet, "/v1/sales/history/aggregate?market_hash_name=x&markets=BUFF163&start=2024-04-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCatalogEndpoints_ReturnArrays(t *testing.T) {
	bodies := map[string]string{
		"/v1/items":                 `[{"market_hash_name": "Chroma 2 Case", "hash_name": "Chroma 2 Case"}]`,
		"/v1/markets":               `[{"market": "CSFLOAT", "url": "https://csfloat.com", "fees": {"seller": 2}}]`,
		"/v1/currency_rates":        `[{"currency_code": "EUR", "currency_name": "Euro", "currency_symbol": "€", "rate": 0.92, "timestamp": "2024-05-01T00:00:00Z"}]`,
		"/v1/player_counts/history": `[{"timestamp": "2024-05-01T00:00:00Z", "count": 10}]`,
	}
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bodies[r.URL.Path]))
	}, nil)

	for path := range bodies {
		t.Run(path, func(t *testing.T) {
			w := g.do(t, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var arr []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &arr))
			assert.Len(t, arr, 1)
		})
	}
}

func TestPlayerCountsLatest(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timestamp": "2024-05-01T00:00:00Z", "count": 1234567}`))
	}, nil)

	w := g.do(t, http.MethodGet, "/v1/player_counts/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1234567), decodeBody(t, w)["count"])
}

func TestUpstreamErrors(t *testing.T) {
	t.Run("http error keeps status and body", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "item not found"}`))
		}, nil)

		w := g.do(t, http.MethodGet, "/v1/items", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(404), body["status"])
		assert.Equal(t, `{"detail": "item not found"}`, body["body"])
	})

	t.Run("decode error is bad gateway", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"timestamp": "2024-05-01T00:00:00Z"}`))
		}, nil)

		w := g.do(t, http.MethodGet, "/v1/player_counts/latest", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "count")
	})

	t.Run("transport error is bad gateway", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		entry := logrus.NewEntry(logger)
		client := csmarket.NewClient(csmarket.Config{APIURL: "http://127.0.0.1:1", APIKey: "k", Timeout: time.Second})
		defer client.Close()
		h := handler.NewHandler(client, nil, entry)

		req := httptest.NewRequest(http.MethodGet, "/v1/markets", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

type fakeCapturer struct {
	got      service.CaptureRequest
	err      error
	listings []model.ListingSnapshot
}

func (f *fakeCapturer) Capture(ctx context.Context, req service.CaptureRequest) (*service.CaptureResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &service.CaptureResult{
		CapturedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Listings:   len(req.MarketHashNames) * len(req.Markets),
		Sales:      len(req.MarketHashNames),
	}, nil
}

func (f *fakeCapturer) LatestListings(ctx context.Context, name string) ([]model.ListingSnapshot, error) {
	return f.listings, nil
}

func (f *fakeCapturer) LatestSales(ctx context.Context, name string) ([]model.SaleSnapshot, error) {
	return nil, nil
}

func TestSnapshots_Disabled(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	for _, target := range []string{"/v1/snapshots", "/v1/snapshots/listings?market_hash_name=x"} {
		w := g.do(t, http.MethodPost, target, []byte(`{}`))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}
}

func TestSnapshots_Capture(t *testing.T) {
	fc := &fakeCapturer{}
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, fc)

	reqBody, _ := json.Marshal(map[string]interface{}{
		"market_hash_names": []string{"Chroma 2 Case", "Glove Case"},
		"markets":           []string{"steamcommunity", "BUFF163"},
		"currency":          "eur",
	})
	w := g.do(t, http.MethodPost, "/v1/snapshots", reqBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(4), body["listings"])
	assert.Equal(t, float64(2), body["sales"])

	assert.Equal(t, []model.Market{model.MarketSteam, model.MarketBuff}, fc.got.Markets)
	assert.Equal(t, model.CurrencyEUR, fc.got.Currency)
}

func TestSnapshots_CaptureErrors(t *testing.T) {
	t.Run("invalid body", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCapturer{})
		w := g.do(t, http.MethodPost, "/v1/snapshots", []byte(`{not json`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown market", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCapturer{})
		w := g.do(t, http.MethodPost, "/v1/snapshots", []byte(`{"market_hash_names": ["x"], "markets": ["NOWHERE"]}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream failure keeps status", func(t *testing.T) {
		fc := &fakeCapturer{err: &csmarket.HTTPError{StatusCode: http.StatusTooManyRequests, Body: []byte("slow down")}}
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, fc)
		w := g.do(t, http.MethodPost, "/v1/snapshots", []byte(`{"market_hash_names": ["x"], "markets": ["BUFF163"]}`))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "slow down", decodeBody(t, w)["body"])
	})
}

func TestSnapshots_LatestListings(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCapturer{})

	w := g.do(t, http.MethodGet, "/v1/snapshots/listings?market_hash_name=Chroma+2+Case", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = g.do(t, http.MethodGet, "/v1/snapshots/sales?market_hash_name=Chroma+2+Case", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
