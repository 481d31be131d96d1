package model

import (
	"encoding/json"
	"time"
)

// ListingsLatestAggregated is the body of GET /v1/listings/latest/aggregate.
type ListingsLatestAggregated struct {
	MarketHashName string                            `json:"market_hash_name"`
	Listings       []ListingsLatestAggregatedListing `json:"listings"`
}

// ListingsLatestAggregatedListing is the current listing snapshot of one market.
type ListingsLatestAggregatedListing struct {
	ID          int64     `json:"id"`
	Market      Market    `json:"market"`
	MarketLink  string    `json:"market_link"`
	MeanPrice   *float64  `json:"mean_price"`
	MinPrice    *float64  `json:"min_price"`
	MaxPrice    *float64  `json:"max_price"`
	MedianPrice *float64  `json:"median_price"`
	Listings    int       `json:"listings"`
	Timestamp   time.Time `json:"timestamp"`
}

func (l *ListingsLatestAggregated) UnmarshalJSON(data []byte) error {
	o := newObject("ListingsLatestAggregated", data)
	field(o, "market_hash_name", &l.MarketHashName)
	list(o, "listings", &l.Listings)
	return o.Err()
}

func (l *ListingsLatestAggregatedListing) UnmarshalJSON(data []byte) error {
	o := newObject("ListingsLatestAggregatedListing", data)
	field(o, "id", &l.ID)
	field(o, "market", &l.Market)
	field(o, "market_link", &l.MarketLink)
	pointer(o, "mean_price", nullable, &l.MeanPrice)
	pointer(o, "min_price", nullable, &l.MinPrice)
	pointer(o, "max_price", nullable, &l.MaxPrice)
	pointer(o, "median_price", nullable, &l.MedianPrice)
	field(o, "listings", &l.Listings)
	timestamp(o, "timestamp", &l.Timestamp)
	return o.Err()
}

// ListingsHistoryAggregated is the body of GET /v1/listings/history/aggregate.
type ListingsHistoryAggregated struct {
	Items []ListingsHistoryAggregatedItem
}

// ListingsHistoryAggregatedItem groups the per-market listings of one point in time.
type ListingsHistoryAggregatedItem struct {
	Timestamp time.Time                          `json:"timestamp"`
	Listings  []ListingsHistoryAggregatedListing `json:"listings"`
}

// ListingsHistoryAggregatedListing carries no market link.
type ListingsHistoryAggregatedListing struct {
	ID          int64    `json:"id"`
	Market      Market   `json:"market"`
	MeanPrice   *float64 `json:"mean_price"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	MedianPrice *float64 `json:"median_price"`
	Listings    int      `json:"listings"`
}

func (h *ListingsHistoryAggregated) UnmarshalJSON(data []byte) error {
	return decodeArray("ListingsHistoryAggregated", data, &h.Items)
}

func (h ListingsHistoryAggregated) MarshalJSON() ([]byte, error) {
	return marshalItems(h.Items)
}

func (i *ListingsHistoryAggregatedItem) UnmarshalJSON(data []byte) error {
	o := newObject("ListingsHistoryAggregatedItem", data)
	timestamp(o, "timestamp", &i.Timestamp)
	list(o, "listings", &i.Listings)
	return o.Err()
}

func (l *ListingsHistoryAggregatedListing) UnmarshalJSON(data []byte) error {
	o := newObject("ListingsHistoryAggregatedListing", data)
	field(o, "id", &l.ID)
	field(o, "market", &l.Market)
	pointer(o, "mean_price", nullable, &l.MeanPrice)
	pointer(o, "min_price", nullable, &l.MinPrice)
	pointer(o, "max_price", nullable, &l.MaxPrice)
	pointer(o, "median_price", nullable, &l.MedianPrice)
	field(o, "listings", &l.Listings)
	return o.Err()
}

// marshalItems encodes a wrapper's items as the top-level array the API
// sends, using [] rather than null for an empty list.
func marshalItems[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
