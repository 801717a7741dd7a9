package watcher

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/chain"
	"swapScope/internal/dex"
	"swapScope/internal/model"
	"swapScope/internal/quoter"
	"swapScope/internal/storage"
	"swapScope/pkg/swap"
)

// WatchedPair names one input/output token pair to re-quote every tick.
type WatchedPair struct {
	Input       common.Address
	Output      common.Address
	Amount      *big.Int
	TradeType   swap.TradeType
	SlippageBps uint64
}

// RunConfig holds runtime settings for the watcher.
type RunConfig struct {
	Interval time.Duration
	Pairs    []WatchedPair
	Factory  dex.Factory
	ChainID  uint64
}

// Runner re-quotes a fixed set of token pairs on an interval and writes the
// results and the pool reserves it observed to storage.
type Runner struct {
	cfg     RunConfig
	chain   *chain.Client
	service *quoter.Service
	storage storage.Storage
	logger  *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, service *quoter.Service, storageSink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	return &Runner{
		cfg:     cfg,
		chain:   chainClient,
		service: service,
		storage: storageSink,
		logger:  logger,
	}
}

// Run executes the polling loop until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.service == nil {
		return fmt.Errorf("quoter service is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if len(r.cfg.Pairs) == 0 {
		return fmt.Errorf("at least one watched pair is required")
	}

	r.logger.Info("watcher start",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("pairs", len(r.cfg.Pairs)))

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// First tick immediately rather than waiting a full interval.
	if err := r.tick(ctx); err != nil {
		r.logger.Warn("tick failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("watcher stop")
			return nil
		case <-ticker.C:
			if err := r.tick(ctx); err != nil {
				r.logger.Warn("tick failed", zap.Error(err))
			}
		}
	}
}

func (r *Runner) tick(ctx context.Context) error {
	blockNumber, err := r.chain.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}
	blockTime, err := r.chain.BlockTimestamp(ctx, blockNumber)
	if err != nil {
		return fmt.Errorf("block timestamp: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	var quotes []model.QuoteRecord
	var snapshots []model.PoolSnapshot
	seen := make(map[common.Address]struct{})

	for _, watched := range r.cfg.Pairs {
		input, err := r.service.ResolveToken(ctx, watched.Input)
		if err != nil {
			r.logger.Warn("resolve input failed", zap.String("token", watched.Input.Hex()), zap.Error(err))
			continue
		}
		output, err := r.service.ResolveToken(ctx, watched.Output)
		if err != nil {
			r.logger.Warn("resolve output failed", zap.String("token", watched.Output.Hex()), zap.Error(err))
			continue
		}

		book, err := r.service.BuildPairBook(ctx, input, output)
		if err != nil {
			r.logger.Warn("build pair book failed",
				zap.String("input", input.Symbol),
				zap.String("output", output.Symbol),
				zap.Error(err))
			continue
		}

		for _, pair := range book.Pairs() {
			addr := dex.PairAddress(r.cfg.Factory, pair.Token0().Address, pair.Token1().Address)
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			snapshots = append(snapshots, model.PoolSnapshot{
				ChainID:     r.cfg.ChainID,
				PairAddress: addr.Hex(),
				Token0:      pair.Token0().Address.Hex(),
				Token1:      pair.Token1().Address.Hex(),
				Reserve0:    pair.Reserve0().Raw().String(),
				Reserve1:    pair.Reserve1().Raw().String(),
				BlockNumber: blockNumber,
				Timestamp:   blockTime,
				FetchedAt:   now,
			})
		}

		result, err := r.service.Quote(book, swap.QuoteRequest{
			InputToken:  input,
			OutputToken: output,
			Amount:      watched.Amount,
			TradeType:   watched.TradeType,
			SlippageBps: watched.SlippageBps,
		})
		if err != nil {
			r.logger.Warn("quote failed",
				zap.String("input", input.Symbol),
				zap.String("output", output.Symbol),
				zap.Error(err))
			continue
		}

		quotes = append(quotes, quoteRecord(r.cfg.ChainID, input, output, watched, result, now))
	}

	if err := r.storage.PutSnapshotBatch(snapshots); err != nil {
		return fmt.Errorf("store snapshots: %w", err)
	}
	if err := r.storage.PutQuoteBatch(quotes); err != nil {
		return fmt.Errorf("store quotes: %w", err)
	}

	r.logger.Info("tick complete",
		zap.Uint64("block", blockNumber),
		zap.Int("quotes", len(quotes)),
		zap.Int("snapshots", len(snapshots)))
	return nil
}

func quoteRecord(chainID uint64, input, output swap.Token, watched WatchedPair, result swap.QuoteResult, now string) model.QuoteRecord {
	record := model.QuoteRecord{
		ChainID:     chainID,
		InputToken:  input.Address.Hex(),
		OutputToken: output.Address.Hex(),
		TradeType:   watched.TradeType.String(),
		Status:      result.Status.String(),
		SlippageBps: watched.SlippageBps,
		CreatedAt:   now,
	}
	if result.Trade == nil {
		return record
	}

	trade := result.Trade
	record.InputAmount = trade.InputAmount().Raw().String()
	record.OutputAmount = trade.OutputAmount().Raw().String()
	record.ExecutionPrice = trade.ExecutionPrice().ToSignificant(6)
	record.MidPrice = trade.Route().MidPrice().ToSignificant(6)
	record.PriceImpactPct = trade.PriceImpact().ToSignificant(4)
	record.GuardAmount = result.GuardAmount.Raw().String()
	for _, token := range trade.Route().Path() {
		record.Route = append(record.Route, token.Address.Hex())
	}
	return record
}
