package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// ListingSnapshot is one stored row of a listings capture.
type ListingSnapshot struct {
	ID             int64     `json:"id"`
	CapturedAt     time.Time `json:"captured_at"`
	MarketHashName string    `json:"market_hash_name"`
	Market         Market    `json:"market"`
	Currency       Currency  `json:"currency"`
	MeanPrice      *float64  `json:"mean_price"`
	MinPrice       *float64  `json:"min_price"`
	MaxPrice       *float64  `json:"max_price"`
	MedianPrice    *float64  `json:"median_price"`
	Listings       int       `json:"listings"`
	ObservedAt     time.Time `json:"observed_at"`
}

type SaleSnapshot struct {
	ID             int64      `json:"id"`
	CapturedAt     time.Time  `json:"captured_at"`
	MarketHashName string     `json:"market_hash_name"`
	Market         Market     `json:"market"`
	Currency       Currency   `json:"currency"`
	MeanPrice      *float64   `json:"mean_price"`
	MinPrice       *float64   `json:"min_price"`
	MaxPrice       *float64   `json:"max_price"`
	MedianPrice    *float64   `json:"median_price"`
	Volume         *int       `json:"volume"`
	Day            civil.Date `json:"day"`
}
