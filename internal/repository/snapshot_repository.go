package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fsanano/csmarket/internal/model"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS listing_snapshots (
		id               BIGSERIAL PRIMARY KEY,
		captured_at      TIMESTAMPTZ      NOT NULL,
		market_hash_name TEXT             NOT NULL,
		market           TEXT             NOT NULL,
		currency         TEXT             NOT NULL,
		mean_price       DOUBLE PRECISION,
		min_price        DOUBLE PRECISION,
		max_price        DOUBLE PRECISION,
		median_price     DOUBLE PRECISION,
		listings         INTEGER          NOT NULL,
		observed_at      TIMESTAMPTZ      NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS listing_snapshots_name_captured_idx
		ON listing_snapshots (market_hash_name, captured_at DESC)`,
	`CREATE TABLE IF NOT EXISTS sale_snapshots (
		id               BIGSERIAL PRIMARY KEY,
		captured_at      TIMESTAMPTZ      NOT NULL,
		market_hash_name TEXT             NOT NULL,
		market           TEXT             NOT NULL,
		currency         TEXT             NOT NULL,
		mean_price       DOUBLE PRECISION,
		min_price        DOUBLE PRECISION,
		max_price        DOUBLE PRECISION,
		median_price     DOUBLE PRECISION,
		volume           INTEGER,
		day              DATE             NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sale_snapshots_name_captured_idx
		ON sale_snapshots (market_hash_name, captured_at DESC)`,
}

// Schema is the DDL applied by EnsureSchema.
var Schema = strings.Join(schemaStatements, ";\n") + ";"

type SnapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	// Without arguments pgx uses the simple protocol, which accepts several statements.
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// RunAtomic executes fn within a transaction. Repository calls made with
// the ctx passed to fn join that transaction.
func (r *SnapshotRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op once committed.
	defer tx.Rollback(ctx)

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type txKey struct{}

func (r *SnapshotRepository) getExecutor(ctx context.Context) PgxExecutor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.db
}

// PgxExecutor is an interface that matches both *pgxpool.Pool and pgx.Tx
type PgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const insertListingSQL = `INSERT INTO listing_snapshots
	(captured_at, market_hash_name, market, currency, mean_price, min_price, max_price, median_price, listings, observed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// InsertListingSnapshots stores rows in one batch.
func (r *SnapshotRepository) InsertListingSnapshots(ctx context.Context, rows []model.ListingSnapshot) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range rows {
		batch.Queue(insertListingSQL,
			s.CapturedAt, s.MarketHashName, s.Market, s.Currency,
			s.MeanPrice, s.MinPrice, s.MaxPrice, s.MedianPrice,
			s.Listings, s.ObservedAt)
	}
	if err := execBatch(ctx, r.getExecutor(ctx), batch); err != nil {
		return fmt.Errorf("failed to insert listing snapshots: %w", err)
	}
	return nil
}

const insertSaleSQL = `INSERT INTO sale_snapshots
	(captured_at, market_hash_name, market, currency, mean_price, min_price, max_price, median_price, volume, day)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// InsertSaleSnapshots stores rows in one batch.
func (r *SnapshotRepository) InsertSaleSnapshots(ctx context.Context, rows []model.SaleSnapshot) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range rows {
		batch.Queue(insertSaleSQL,
			s.CapturedAt, s.MarketHashName, s.Market, s.Currency,
			s.MeanPrice, s.MinPrice, s.MaxPrice, s.MedianPrice,
			s.Volume, s.Day.In(time.UTC))
	}
	if err := execBatch(ctx, r.getExecutor(ctx), batch); err != nil {
		return fmt.Errorf("failed to insert sale snapshots: %w", err)
	}
	return nil
}

func execBatch(ctx context.Context, ex PgxExecutor, batch *pgx.Batch) error {
	br := ex.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}

// LatestListingSnapshots returns the rows of the most recent capture of
// marketHashName, ordered by market. No capture yet yields an empty slice.
func (r *SnapshotRepository) LatestListingSnapshots(ctx context.Context, marketHashName string) ([]model.ListingSnapshot, error) {
	rows, err := r.getExecutor(ctx).Query(ctx, `
		SELECT id, captured_at, market_hash_name, market, currency,
		       mean_price, min_price, max_price, median_price, listings, observed_at
		FROM listing_snapshots
		WHERE market_hash_name = $1
		  AND captured_at = (SELECT max(captured_at) FROM listing_snapshots WHERE market_hash_name = $1)
		ORDER BY market, id`, marketHashName)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing snapshots: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ListingSnapshot, error) {
		var s model.ListingSnapshot
		err := row.Scan(&s.ID, &s.CapturedAt, &s.MarketHashName, &s.Market, &s.Currency,
			&s.MeanPrice, &s.MinPrice, &s.MaxPrice, &s.MedianPrice, &s.Listings, &s.ObservedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing snapshots: %w", err)
	}
	return out, nil
}

// LatestSaleSnapshots is the sales counterpart of LatestListingSnapshots.
func (r *SnapshotRepository) LatestSaleSnapshots(ctx context.Context, marketHashName string) ([]model.SaleSnapshot, error) {
	rows, err := r.getExecutor(ctx).Query(ctx, `
		SELECT id, captured_at, market_hash_name, market, currency,
		       mean_price, min_price, max_price, median_price, volume, day
		FROM sale_snapshots
		WHERE market_hash_name = $1
		  AND captured_at = (SELECT max(captured_at) FROM sale_snapshots WHERE market_hash_name = $1)
		ORDER BY market, id`, marketHashName)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale snapshots: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SaleSnapshot, error) {
		var (
			s   model.SaleSnapshot
			day time.Time
		)
		err := row.Scan(&s.ID, &s.CapturedAt, &s.MarketHashName, &s.Market, &s.Currency,
			&s.MeanPrice, &s.MinPrice, &s.MaxPrice, &s.MedianPrice, &s.Volume, &day)
		s.Day = civil.DateOf(day)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale snapshots: %w", err)
	}
	return out, nil
}
