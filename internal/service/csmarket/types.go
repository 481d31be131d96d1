package csmarket

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fsanano/csmarket/internal/model"
)

var (
	ErrClientClosed    = errors.New("csmarket: client closed")
	ErrInvalidArgument = errors.New("csmarket: invalid argument")
)

// HTTPError is a non-2xx answer from the API. Body holds the raw response
// for diagnostics.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

const maxErrorBody = 256

func (e *HTTPError) Error() string {
	body := e.Body
	suffix := ""
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body, suffix = body[:cut], "..."
	}
	return fmt.Sprintf("csmarket api error %d: %s%s", e.StatusCode, body, suffix)
}

// TransportError means no response was received: connection, DNS, TLS,
// redirect limit, or a cancelled context.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("csmarket transport error on %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ListingsOptions configures the listings aggregate endpoints.
type ListingsOptions struct {
	// Currency defaults to USD.
	Currency model.Currency
	// MaxAge is passed verbatim; empty means not sent.
	MaxAge string
}

// SalesLatestOptions configures GetSalesLatestAggregated.
type SalesLatestOptions struct {
	Currency model.Currency
}

// SalesHistoryOptions configures GetSalesHistoryAggregated. Empty Start or
// End are not sent.
type SalesHistoryOptions struct {
	Start    string
	End      string
	Currency model.Currency
}

// PlayerCountsHistoryOptions configures GetPlayerCountsHistory.
type PlayerCountsHistoryOptions struct {
	Start string
	End   string
}
