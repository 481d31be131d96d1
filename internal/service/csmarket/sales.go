package csmarket

import (
	"context"
	"fmt"

	"fsanano/csmarket/internal/model"
)

const (
	pathSalesLatest  = "/v1/sales/latest/aggregate"
	pathSalesHistory = "/v1/sales/history/aggregate"
)

// GetSalesLatestAggregated fetches the latest daily sales rollup per market.
func (c *Client) GetSalesLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts SalesLatestOptions) (*model.SalesLatestAggregated, error) {
	query, err := aggregateQuery(marketHashName, markets, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("get sales latest aggregated: %w", err)
	}

	resp, err := get[model.SalesLatestAggregated](ctx, c, pathSalesLatest, query)
	if err != nil {
		return nil, fmt.Errorf("get sales latest aggregated: %w", err)
	}
	return resp, nil
}

// GetSalesHistoryAggregated fetches daily sales between Start and End.
func (c *Client) GetSalesHistoryAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts SalesHistoryOptions) (*model.SalesHistoryAggregated, error) {
	query, err := aggregateQuery(marketHashName, markets, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("get sales history aggregated: %w", err)
	}
	setOptional(query, "start", opts.Start)
	setOptional(query, "end", opts.End)

	resp, err := get[model.SalesHistoryAggregated](ctx, c, pathSalesHistory, query)
	if err != nil {
		return nil, fmt.Errorf("get sales history aggregated: %w", err)
	}
	return resp, nil
}
