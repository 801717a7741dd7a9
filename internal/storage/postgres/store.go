package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapScope/internal/model"
)

// Store provides Postgres persistence for quotes and pool snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutSnapshotBatch inserts or updates pool reserve snapshots.
func (s *Store) PutSnapshotBatch(snapshots []model.PoolSnapshot) error {
	return s.UpsertSnapshots(context.Background(), snapshots)
}

// UpsertSnapshots inserts or updates pool reserve snapshots.
func (s *Store) UpsertSnapshots(ctx context.Context, snapshots []model.PoolSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		batch.Queue(`
			INSERT INTO pool_snapshots (
				chain_id, pair_address, token0, token1, reserve0, reserve1,
				block_number, block_timestamp, fetched_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (chain_id, pair_address, block_number)
			DO UPDATE SET
				reserve0 = EXCLUDED.reserve0,
				reserve1 = EXCLUDED.reserve1,
				block_timestamp = EXCLUDED.block_timestamp,
				fetched_at = EXCLUDED.fetched_at,
				updated_at = now()
		`,
			int64(snap.ChainID),
			snap.PairAddress,
			snap.Token0,
			snap.Token1,
			snap.Reserve0,
			snap.Reserve1,
			int64(snap.BlockNumber),
			int64(snap.Timestamp),
			snap.FetchedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range snapshots {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutQuoteBatch inserts quote records.
func (s *Store) PutQuoteBatch(quotes []model.QuoteRecord) error {
	return s.InsertQuotes(context.Background(), quotes)
}

// InsertQuotes appends quote records.
func (s *Store) InsertQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, quote := range quotes {
		batch.Queue(`
			INSERT INTO quotes (
				chain_id, input_token, output_token, trade_type, status,
				input_amount, output_amount, execution_price, mid_price,
				price_impact_pct, slippage_bps, guard_amount, route, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		`,
			int64(quote.ChainID),
			quote.InputToken,
			quote.OutputToken,
			quote.TradeType,
			quote.Status,
			quote.InputAmount,
			quote.OutputAmount,
			quote.ExecutionPrice,
			quote.MidPrice,
			quote.PriceImpactPct,
			int64(quote.SlippageBps),
			quote.GuardAmount,
			quote.Route,
			quote.CreatedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
