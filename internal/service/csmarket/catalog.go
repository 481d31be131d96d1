package csmarket

import (
	"context"
	"fmt"

	"fsanano/csmarket/internal/model"
)

const (
	pathItems         = "/v1/items"
	pathMarkets       = "/v1/markets"
	pathCurrencyRates = "/v1/currency_rates"
)

// GetItems fetches the full item catalog.
func (c *Client) GetItems(ctx context.Context) (*model.Items, error) {
	resp, err := get[model.Items](ctx, c, pathItems, nil)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	return resp, nil
}

// GetMarkets fetches the venue catalog with fees and ratings.
func (c *Client) GetMarkets(ctx context.Context) (*model.Markets, error) {
	resp, err := get[model.Markets](ctx, c, pathMarkets, nil)
	if err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}
	return resp, nil
}

func (c *Client) GetCurrencyRates(ctx context.Context) (*model.CurrencyRates, error) {
	resp, err := get[model.CurrencyRates](ctx, c, pathCurrencyRates, nil)
	if err != nil {
		return nil, fmt.Errorf("get currency rates: %w", err)
	}
	return resp, nil
}
