package csmarket

import (
	"context"
	"fmt"

	"fsanano/csmarket/internal/model"
)

const (
	pathListingsLatest  = "/v1/listings/latest/aggregate"
	pathListingsHistory = "/v1/listings/history/aggregate"
)

// GetListingsLatestAggregated fetches the current listings of an item on
// each of the given markets.
func (c *Client) GetListingsLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts ListingsOptions) (*model.ListingsLatestAggregated, error) {
	query, err := aggregateQuery(marketHashName, markets, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("get listings latest aggregated: %w", err)
	}
	setOptional(query, "max_age", opts.MaxAge)

	resp, err := get[model.ListingsLatestAggregated](ctx, c, pathListingsLatest, query)
	if err != nil {
		return nil, fmt.Errorf("get listings latest aggregated: %w", err)
	}
	return resp, nil
}

// GetListingsHistoryAggregated fetches listing snapshots over time.
func (c *Client) GetListingsHistoryAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts ListingsOptions) (*model.ListingsHistoryAggregated, error) {
	query, err := aggregateQuery(marketHashName, markets, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("get listings history aggregated: %w", err)
	}
	setOptional(query, "max_age", opts.MaxAge)

	resp, err := get[model.ListingsHistoryAggregated](ctx, c, pathListingsHistory, query)
	if err != nil {
		return nil, fmt.Errorf("get listings history aggregated: %w", err)
	}
	return resp, nil
}
