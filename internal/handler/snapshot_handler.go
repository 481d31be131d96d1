package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/sirupsen/logrus"
)

// SnapshotCapturer is implemented by service.SnapshotService.
type SnapshotCapturer interface {
	Capture(ctx context.Context, req service.CaptureRequest) (*service.CaptureResult, error)
	LatestListings(ctx context.Context, marketHashName string) ([]model.ListingSnapshot, error)
	LatestSales(ctx context.Context, marketHashName string) ([]model.SaleSnapshot, error)
}

type SnapshotHandler struct {
	svc    SnapshotCapturer
	logger *logrus.Entry
}

func NewSnapshotHandler(svc SnapshotCapturer, logger *logrus.Entry) *SnapshotHandler {
	return &SnapshotHandler{svc: svc, logger: logger.WithField("component", "gateway")}
}

type CaptureRequest struct {
	MarketHashNames []string `json:"market_hash_names"`
	Markets         []string `json:"markets"`
	Currency        string   `json:"currency"` // Optional, defaults to USD
}

func (h *SnapshotHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	markets, err := parseMarkets(req.Markets)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	currency, err := model.ParseCurrency(req.Currency)
	if err != nil {
		writeError(h.logger, w, r, fmt.Errorf("%w: %v", csmarket.ErrInvalidArgument, err))
		return
	}

	res, err := h.svc.Capture(r.Context(), service.CaptureRequest{
		MarketHashNames: req.MarketHashNames,
		Markets:         markets,
		Currency:        currency,
	})
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *SnapshotHandler) LatestListings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.LatestListings(r.Context(), r.URL.Query().Get("market_hash_name"))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	if rows == nil {
		rows = []model.ListingSnapshot{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *SnapshotHandler) LatestSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.LatestSales(r.Context(), r.URL.Query().Get("market_hash_name"))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	if rows == nil {
		rows = []model.SaleSnapshot{}
	}
	writeJSON(w, http.StatusOK, rows)
}
