package csmarket

import (
	"context"
	"fmt"
	"net/url"

	"fsanano/csmarket/internal/model"
)

const (
	pathPlayerCountsLatest  = "/v1/player_counts/latest"
	pathPlayerCountsHistory = "/v1/player_counts/history"
)

// GetPlayerCountsLatest fetches the current in-game player count.
func (c *Client) GetPlayerCountsLatest(ctx context.Context) (*model.PlayerCountsLatest, error) {
	resp, err := get[model.PlayerCountsLatest](ctx, c, pathPlayerCountsLatest, nil)
	if err != nil {
		return nil, fmt.Errorf("get player counts latest: %w", err)
	}
	return resp, nil
}

// GetPlayerCountsHistory fetches player counts between Start and End.
func (c *Client) GetPlayerCountsHistory(ctx context.Context, opts PlayerCountsHistoryOptions) (*model.PlayerCountsHistory, error) {
	query := url.Values{}
	setOptional(query, "start", opts.Start)
	setOptional(query, "end", opts.End)

	resp, err := get[model.PlayerCountsHistory](ctx, c, pathPlayerCountsHistory, query)
	if err != nil {
		return nil, fmt.Errorf("get player counts history: %w", err)
	}
	return resp, nil
}
