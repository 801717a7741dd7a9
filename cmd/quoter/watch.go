package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/storage"
	"swapScope/internal/storage/postgres"
	"swapScope/internal/watcher"
	"swapScope/pkg/swap"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-quote token pairs on an interval and record the results",
		RunE:  runWatch,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringSlice("pair", nil, "watched pairs as input:output:amount (comma-separated)")
	cmd.Flags().Duration("interval", 30*time.Second, "poll interval")
	cmd.Flags().Uint64("slippage-bps", 50, "slippage tolerance in basis points")
	cmd.Flags().String("quotes-out", "./data/quotes.jsonl", "quotes output JSONL path")
	cmd.Flags().String("snapshots-out", "./data/snapshots.jsonl", "snapshots output JSONL path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN (overrides JSONL output)")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rawPairs, _ := cmd.Flags().GetStringSlice("pair")
	slippageBps, _ := cmd.Flags().GetUint64("slippage-bps")

	watched, err := parseWatchedPairs(rawPairs, slippageBps)
	if err != nil {
		return err
	}
	if len(watched) == 0 {
		return fmt.Errorf("at least one --pair is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, chainClient, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	var storageSink storage.Storage
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		storageSink = store
	} else {
		storageSink = storage.NewJsonlStorage(cfg.QuotesOut, cfg.SnapshotsOut)
	}

	factory, err := buildFactory(cfg)
	if err != nil {
		return err
	}

	runner := watcher.NewRunner(watcher.RunConfig{
		Interval: cfg.Interval,
		Pairs:    watched,
		Factory:  factory,
		ChainID:  cfg.ChainID,
	}, chainClient, service, storageSink, logger)

	logger.Info("watch start",
		zap.Duration("interval", cfg.Interval),
		zap.Int("pairs", len(watched)),
		zap.Bool("postgres", cfg.PGDSN != ""))

	return runner.Run(ctx)
}

// parseWatchedPairs expands "input:output:amount" specs. The amount is in
// atomic units of the input token; quotes are exact-input.
func parseWatchedPairs(raw []string, slippageBps uint64) ([]watcher.WatchedPair, error) {
	pairs := make([]watcher.WatchedPair, 0, len(raw))
	for _, spec := range raw {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("pair spec %q must be input:output:amount", spec)
		}
		if !common.IsHexAddress(parts[0]) {
			return nil, fmt.Errorf("invalid input address in pair spec %q", spec)
		}
		if !common.IsHexAddress(parts[1]) {
			return nil, fmt.Errorf("invalid output address in pair spec %q", spec)
		}
		amount, ok := new(big.Int).SetString(parts[2], 10)
		if !ok || amount.Sign() <= 0 {
			return nil, fmt.Errorf("invalid amount in pair spec %q", spec)
		}
		pairs = append(pairs, watcher.WatchedPair{
			Input:       common.HexToAddress(parts[0]),
			Output:      common.HexToAddress(parts[1]),
			Amount:      amount,
			TradeType:   swap.ExactInput,
			SlippageBps: slippageBps,
		})
	}
	return pairs, nil
}
