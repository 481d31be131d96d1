package model

import "cloud.google.com/go/civil"

// SalesLatestAggregated is the body of GET /v1/sales/latest/aggregate.
type SalesLatestAggregated struct {
	MarketHashName string                      `json:"market_hash_name"`
	Sales          []SalesLatestAggregatedSale `json:"sales"`
}

// SalesLatestAggregatedSale is the most recent daily sales rollup of one market.
type SalesLatestAggregatedSale struct {
	ID          int64      `json:"id"`
	Market      Market     `json:"market"`
	MeanPrice   *float64   `json:"mean_price"`
	MinPrice    *float64   `json:"min_price"`
	MaxPrice    *float64   `json:"max_price"`
	MedianPrice *float64   `json:"median_price"`
	Volume      *int       `json:"volume"`
	Day         civil.Date `json:"day"`
}

func (s *SalesLatestAggregated) UnmarshalJSON(data []byte) error {
	o := newObject("SalesLatestAggregated", data)
	field(o, "market_hash_name", &s.MarketHashName)
	list(o, "sales", &s.Sales)
	return o.Err()
}

func (s *SalesLatestAggregatedSale) UnmarshalJSON(data []byte) error {
	o := newObject("SalesLatestAggregatedSale", data)
	field(o, "id", &s.ID)
	field(o, "market", &s.Market)
	pointer(o, "mean_price", nullable, &s.MeanPrice)
	pointer(o, "min_price", nullable, &s.MinPrice)
	pointer(o, "max_price", nullable, &s.MaxPrice)
	pointer(o, "median_price", nullable, &s.MedianPrice)
	pointer(o, "volume", nullable, &s.Volume)
	field(o, "day", &s.Day)
	return o.Err()
}

// SalesHistoryAggregated is the body of GET /v1/sales/history/aggregate.
type SalesHistoryAggregated struct {
	Items []SalesHistoryAggregatedItem
}

// SalesHistoryAggregatedItem groups the per-market sales of one day.
type SalesHistoryAggregatedItem struct {
	Day   civil.Date                   `json:"day"`
	Sales []SalesHistoryAggregatedSale `json:"sales"`
}

// SalesHistoryAggregatedSale has its day hoisted to the enclosing item.
type SalesHistoryAggregatedSale struct {
	ID          int64    `json:"id"`
	Market      Market   `json:"market"`
	MeanPrice   *float64 `json:"mean_price"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	MedianPrice *float64 `json:"median_price"`
	Volume      *int     `json:"volume"`
}

func (h *SalesHistoryAggregated) UnmarshalJSON(data []byte) error {
	return decodeArray("SalesHistoryAggregated", data, &h.Items)
}

func (h SalesHistoryAggregated) MarshalJSON() ([]byte, error) {
	return marshalItems(h.Items)
}

func (i *SalesHistoryAggregatedItem) UnmarshalJSON(data []byte) error {
	o := newObject("SalesHistoryAggregatedItem", data)
	field(o, "day", &i.Day)
	list(o, "sales", &i.Sales)
	return o.Err()
}

func (s *SalesHistoryAggregatedSale) UnmarshalJSON(data []byte) error {
	o := newObject("SalesHistoryAggregatedSale", data)
	field(o, "id", &s.ID)
	field(o, "market", &s.Market)
	pointer(o, "mean_price", nullable, &s.MeanPrice)
	pointer(o, "min_price", nullable, &s.MinPrice)
	pointer(o, "max_price", nullable, &s.MaxPrice)
	pointer(o, "median_price", nullable, &s.MedianPrice)
	pointer(o, "volume", nullable, &s.Volume)
	return o.Err()
}
