package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MarketSource is the part of the csmarket client a capture needs.
type MarketSource interface {
	GetListingsLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.ListingsOptions) (*model.ListingsLatestAggregated, error)
	GetSalesLatestAggregated(ctx context.Context, marketHashName string, markets []model.Market, opts csmarket.SalesLatestOptions) (*model.SalesLatestAggregated, error)
}

// SnapshotStore persists captures.
type SnapshotStore interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
	InsertListingSnapshots(ctx context.Context, rows []model.ListingSnapshot) error
	InsertSaleSnapshots(ctx context.Context, rows []model.SaleSnapshot) error
	LatestListingSnapshots(ctx context.Context, marketHashName string) ([]model.ListingSnapshot, error)
	LatestSaleSnapshots(ctx context.Context, marketHashName string) ([]model.SaleSnapshot, error)
}

type CaptureRequest struct {
	MarketHashNames []string       `json:"market_hash_names"`
	Markets         []model.Market `json:"markets"`
	Currency        model.Currency `json:"currency"`
}

type CaptureResult struct {
	CapturedAt time.Time `json:"captured_at"`
	Listings   int       `json:"listings"`
	Sales      int       `json:"sales"`
}

type SnapshotService struct {
	source      MarketSource
	store       SnapshotStore
	concurrency int
	logger      *logrus.Entry
	now         func() time.Time
}

func NewSnapshotService(source MarketSource, store SnapshotStore, concurrency int, logger *logrus.Entry) *SnapshotService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SnapshotService{
		source:      source,
		store:       store,
		concurrency: concurrency,
		logger:      logger.WithField("component", "snapshots"),
		now:         time.Now,
	}
}

// Capture fetches the latest listings and sales of every requested item and
// stores them in one transaction. Nothing is written unless every fetch
// succeeds.
func (s *SnapshotService) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	names := uniqueNames(req.MarketHashNames)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: market_hash_names must not be empty", csmarket.ErrInvalidArgument)
	}
	if len(req.Markets) == 0 {
		return nil, fmt.Errorf("%w: markets must not be empty", csmarket.ErrInvalidArgument)
	}
	currency := req.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	capturedAt := s.now().UTC()
	listings := make([][]model.ListingSnapshot, len(names))
	sales := make([][]model.SaleSnapshot, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, name := range names {
		g.Go(func() error {
			resp, err := s.source.GetListingsLatestAggregated(gctx, name, req.Markets, csmarket.ListingsOptions{Currency: currency})
			if err != nil {
				return fmt.Errorf("capture listings of %q: %w", name, err)
			}
			listings[i] = listingRows(resp, currency, capturedAt)
			return nil
		})
		g.Go(func() error {
			resp, err := s.source.GetSalesLatestAggregated(gctx, name, req.Markets, csmarket.SalesLatestOptions{Currency: currency})
			if err != nil {
				return fmt.Errorf("capture sales of %q: %w", name, err)
			}
			sales[i] = saleRows(resp, currency, capturedAt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		allListings []model.ListingSnapshot
		allSales    []model.SaleSnapshot
	)
	for i := range names {
		allListings = append(allListings, listings[i]...)
		allSales = append(allSales, sales[i]...)
	}

	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.store.InsertListingSnapshots(ctx, allListings); err != nil {
			return err
		}
		return s.store.InsertSaleSnapshots(ctx, allSales)
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshots: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"items":    len(names),
		"listings": len(allListings),
		"sales":    len(allSales),
	}).Info("snapshot captured")

	return &CaptureResult{
		CapturedAt: capturedAt,
		Listings:   len(allListings),
		Sales:      len(allSales),
	}, nil
}

// LatestListings returns the most recent stored listings capture of an item.
func (s *SnapshotService) LatestListings(ctx context.Context, marketHashName string) ([]model.ListingSnapshot, error) {
	if strings.TrimSpace(marketHashName) == "" {
		return nil, fmt.Errorf("%w: market_hash_name must be set", csmarket.ErrInvalidArgument)
	}
	return s.store.LatestListingSnapshots(ctx, marketHashName)
}

func (s *SnapshotService) LatestSales(ctx context.Context, marketHashName string) ([]model.SaleSnapshot, error) {
	if strings.TrimSpace(marketHashName) == "" {
		return nil, fmt.Errorf("%w: market_hash_name must be set", csmarket.ErrInvalidArgument)
	}
	return s.store.LatestSaleSnapshots(ctx, marketHashName)
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func listingRows(resp *model.ListingsLatestAggregated, currency model.Currency, capturedAt time.Time) []model.ListingSnapshot {
	rows := make([]model.ListingSnapshot, 0, len(resp.Listings))
	for _, l := range resp.Listings {
		rows = append(rows, model.ListingSnapshot{
			CapturedAt:     capturedAt,
			MarketHashName: resp.MarketHashName,
			Market:         l.Market,
			Currency:       currency,
			MeanPrice:      l.MeanPrice,
			MinPrice:       l.MinPrice,
			MaxPrice:       l.MaxPrice,
			MedianPrice:    l.MedianPrice,
			Listings:       l.Listings,
			ObservedAt:     l.Timestamp,
		})
	}
	return rows
}

func saleRows(resp *model.SalesLatestAggregated, currency model.Currency, capturedAt time.Time) []model.SaleSnapshot {
	rows := make([]model.SaleSnapshot, 0, len(resp.Sales))
	for _, sale := range resp.Sales {
		rows = append(rows, model.SaleSnapshot{
			CapturedAt:     capturedAt,
			MarketHashName: resp.MarketHashName,
			Market:         sale.Market,
			Currency:       currency,
			MeanPrice:      sale.MeanPrice,
			MinPrice:       sale.MinPrice,
			MaxPrice:       sale.MaxPrice,
			MedianPrice:    sale.MedianPrice,
			Volume:         sale.Volume,
			Day:            sale.Day,
		})
	}
	return rows
}
