package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/sirupsen/logrus"
)

func (h *Handler) GetListingsLatest(w http.ResponseWriter, r *http.Request) {
	name, markets, currency, err := aggregateParams(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.client.GetListingsLatestAggregated(r.Context(), name, markets, csmarket.ListingsOptions{
		Currency: currency,
		MaxAge:   r.URL.Query().Get("max_age"),
	})
	h.respond(w, r, resp, err)
}

func (h *Handler) GetListingsHistory(w http.ResponseWriter, r *http.Request) {
	name, markets, currency, err := aggregateParams(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.client.GetListingsHistoryAggregated(r.Context(), name, markets, csmarket.ListingsOptions{
		Currency: currency,
		MaxAge:   r.URL.Query().Get("max_age"),
	})
	h.respond(w, r, resp, err)
}

func (h *Handler) GetSalesLatest(w http.ResponseWriter, r *http.Request) {
	name, markets, currency, err := aggregateParams(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.client.GetSalesLatestAggregated(r.Context(), name, markets, csmarket.SalesLatestOptions{Currency: currency})
	h.respond(w, r, resp, err)
}

func (h *Handler) GetSalesHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, markets, currency, err := aggregateParams(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.client.GetSalesHistoryAggregated(r.Context(), name, markets, csmarket.SalesHistoryOptions{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Currency: currency,
	})
	h.respond(w, r, resp, err)
}

func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.GetItems(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.GetMarkets(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) GetCurrencyRates(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.GetCurrencyRates(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) GetPlayerCountsLatest(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.GetPlayerCountsLatest(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) GetPlayerCountsHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.client.GetPlayerCountsHistory(r.Context(), csmarket.PlayerCountsHistoryOptions{
		Start: q.Get("start"),
		End:   q.Get("end"),
	})
	h.respond(w, r, resp, err)
}

// aggregateParams reads market_hash_name, markets and currency. Markets may
// be repeated or comma-separated and are matched case-insensitively.
func aggregateParams(q url.Values) (string, []model.Market, model.Currency, error) {
	name := strings.TrimSpace(q.Get("market_hash_name"))
	if name == "" {
		return "", nil, "", fmt.Errorf("%w: market_hash_name must be set", csmarket.ErrInvalidArgument)
	}

	markets, err := parseMarkets(q["markets"])
	if err != nil {
		return "", nil, "", err
	}
	if len(markets) == 0 {
		return "", nil, "", fmt.Errorf("%w: markets must be set", csmarket.ErrInvalidArgument)
	}

	currency, err := model.ParseCurrency(q.Get("currency"))
	if err != nil {
		return "", nil, "", fmt.Errorf("%w: %v", csmarket.ErrInvalidArgument, err)
	}
	return name, markets, currency, nil
}

func parseMarkets(values []string) ([]model.Market, error) {
	var markets []model.Market
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			m, err := model.ParseMarket(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", csmarket.ErrInvalidArgument, err)
			}
			markets = append(markets, m)
		}
	}
	return markets, nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(h.logger, w, r, err)
}

// writeError maps client errors to gateway statuses. Upstream HTTP errors
// keep their status and body.
func writeError(logger *logrus.Entry, w http.ResponseWriter, r *http.Request, err error) {
	var (
		httpErr   *csmarket.HTTPError
		decodeErr *model.DecodeError
		transErr  *csmarket.TransportError
	)

	status := http.StatusInternalServerError
	body := errorBody{Error: err.Error()}

	switch {
	case errors.Is(err, csmarket.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.As(err, &httpErr):
		status = httpErr.StatusCode
		body.Status = httpErr.StatusCode
		body.Body = string(httpErr.Body)
	case errors.As(err, &decodeErr), errors.As(err, &transErr):
		status = http.StatusBadGateway
	}

	entry := logger.WithError(err).WithField("path", r.URL.Path).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
