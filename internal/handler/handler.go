package handler

import (
	"context"
	"net/http"

	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// MarketClient is the upstream API as seen by the gateway.
type MarketClient interface {
	GetListingsLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.ListingsOptions) (*model.ListingsLatestAggregated, error)
	GetListingsHistoryAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.ListingsOptions) (*model.ListingsHistoryAggregated, error)
	GetSalesLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.SalesLatestOptions) (*model.SalesLatestAggregated, error)
	GetSalesHistoryAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.SalesHistoryOptions) (*model.SalesHistoryAggregated, error)
	GetItems(ctx context.Context) (*model.Items, error)
	GetMarkets(ctx context.Context) (*model.Markets, error)
	GetCurrencyRates(ctx context.Context) (*model.CurrencyRates, error)
	GetPlayerCountsLatest(ctx context.Context) (*model.PlayerCountsLatest, error)
	GetPlayerCountsHistory(ctx context.Context, opts csmarket.PlayerCountsHistoryOptions) (*model.PlayerCountsHistory, error)
}

type Handler struct {
	router    *chi.Mux
	client    MarketClient
	snapshots *SnapshotHandler
	logger    *logrus.Entry
}

// NewHandler builds the gateway. A nil snapshots handler disables the
// snapshot routes, which then answer 503.
func NewHandler(client MarketClient, snapshots *SnapshotHandler, logger *logrus.Entry) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	h := &Handler{
		router:    router,
		client:    client,
		snapshots: snapshots,
		logger:    logger.WithField("component", "gateway"),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		r.Get("/listings/latest/aggregate", h.GetListingsLatest)
		r.Get("/listings/history/aggregate", h.GetListingsHistory)
		r.Get("/sales/latest/aggregate", h.GetSalesLatest)
		r.Get("/sales/history/aggregate", h.GetSalesHistory)
		r.Get("/items", h.GetItems)
		r.Get("/markets", h.GetMarkets)
		r.Get("/currency_rates", h.GetCurrencyRates)
		r.Get("/player_counts/latest", h.GetPlayerCountsLatest)
		r.Get("/player_counts/history", h.GetPlayerCountsHistory)

		r.Route("/snapshots", func(r chi.Router) {
			if h.snapshots == nil {
				r.HandleFunc("/", snapshotsDisabled)
				r.HandleFunc("/*", snapshotsDisabled)
				return
			}
			r.Post("/", h.snapshots.Capture)
			r.Get("/listings", h.snapshots.LatestListings)
			r.Get("/sales", h.snapshots.LatestSales)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func snapshotsDisabled(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "snapshot storage is not configured"})
}
