package csmarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"fsanano/csmarket/internal/model"

	"github.com/sirupsen/logrus"
)

// do sends one GET and returns the body of a 2xx response. Non-2xx answers
// become *HTTPError before anything looks at the body.
func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(path)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Debug("request failed")
		return nil, &TransportError{Path: path, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"path":     path,
		"status":   resp.StatusCode(),
		"duration": time.Since(start),
	}).Debug("request done")

	if !resp.IsSuccess() {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
		}
	}
	return resp.Body(), nil
}

// get performs a GET and decodes the body into a new T.
func get[T any, PT interface {
	*T
	json.Unmarshaler
}](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	body, err := c.do(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return model.Decode[T, PT](body)
}

// aggregateQuery validates and encodes the parameters shared by the
// aggregate endpoints. Markets repeat in caller order.
func aggregateQuery(marketHashName string, markets []model.Market, currency model.Currency) (url.Values, error) {
	if len(markets) == 0 {
		return nil, fmt.Errorf("%w: markets must not be empty", ErrInvalidArgument)
	}
	if currency == "" {
		currency = model.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unknown currency %q", ErrInvalidArgument, currency)
	}

	query := url.Values{}
	query.Set("market_hash_name", marketHashName)
	for _, m := range markets {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: unknown market %q", ErrInvalidArgument, m)
		}
		query.Add("markets", m.String())
	}
	query.Set("currency", currency.String())
	return query, nil
}

// setOptional adds a parameter only when the caller provided a value.
func setOptional(query url.Values, name, value string) {
	if value != "" {
		query.Set(name, value)
	}
}
