package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swapScope/internal/chain"
	"swapScope/internal/config"
	"swapScope/internal/dex"
	"swapScope/internal/quoter"
	"swapScope/internal/tokens"
	"swapScope/pkg/swap"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Uniswap V2 route quoter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(newQuoteCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newWatchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "Ethereum RPC URL")
	cmd.Flags().Uint64("chain-id", 1, "chain id")
	cmd.Flags().String("factory", "", "pair factory address (defaults to Uniswap V2 mainnet)")
	cmd.Flags().String("init-code-hash", "", "pair creation code hash (defaults to Uniswap V2 mainnet)")
	cmd.Flags().String("wrapped-native", "", "wrapped native token address (defaults to the chain catalog)")
	cmd.Flags().StringSlice("stable", nil, "stablecoin bridge addresses (comma-separated)")
	cmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile == "" {
		cfgFile, _ = cmd.InheritedFlags().GetString("config")
	}
	return config.Load(cfgFile, cmd.Flags())
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func buildFactory(cfg config.Config) (dex.Factory, error) {
	factory := dex.UniswapV2Mainnet
	if cfg.Factory != "" {
		if !common.IsHexAddress(cfg.Factory) {
			return dex.Factory{}, fmt.Errorf("invalid factory address: %s", cfg.Factory)
		}
		factory.Address = common.HexToAddress(cfg.Factory)
	}
	if cfg.InitCodeHash != "" {
		factory.InitCodeHash = common.HexToHash(cfg.InitCodeHash)
	}
	return factory, nil
}

// buildService connects to the chain and assembles the quoting service with
// its bridge token set resolved.
func buildService(ctx context.Context, cfg config.Config, logger *zap.Logger) (*quoter.Service, *chain.Client, error) {
	if cfg.RPCURL == "" {
		return nil, nil, fmt.Errorf("rpc url is required")
	}

	factory, err := buildFactory(cfg)
	if err != nil {
		return nil, nil, err
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}

	service := quoter.NewService(quoter.Config{
		ChainID:      cfg.ChainID,
		Factory:      factory,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, logger)

	bridges, err := resolveBridges(ctx, cfg, service)
	if err != nil {
		chainClient.Close()
		return nil, nil, err
	}
	service.SetBridges(bridges)

	return service, chainClient, nil
}

func resolveBridges(ctx context.Context, cfg config.Config, service *quoter.Service) (swap.Bridges, error) {
	if cfg.WrappedNative == "" && len(cfg.Stables) == 0 {
		bridges, ok := tokens.DefaultBridges(cfg.ChainID)
		if !ok {
			return swap.Bridges{}, fmt.Errorf("no bridge catalog for chain %d, set --wrapped-native and --stable", cfg.ChainID)
		}
		return bridges, nil
	}

	if cfg.WrappedNative == "" {
		return swap.Bridges{}, fmt.Errorf("wrapped-native is required when stables are set")
	}
	if !common.IsHexAddress(cfg.WrappedNative) {
		return swap.Bridges{}, fmt.Errorf("invalid wrapped-native address: %s", cfg.WrappedNative)
	}

	wrapped, err := service.ResolveToken(ctx, common.HexToAddress(cfg.WrappedNative))
	if err != nil {
		return swap.Bridges{}, err
	}

	bridges := swap.Bridges{WrappedNative: wrapped}
	for _, raw := range cfg.Stables {
		if !common.IsHexAddress(raw) {
			return swap.Bridges{}, fmt.Errorf("invalid stable address: %s", raw)
		}
		stable, err := service.ResolveToken(ctx, common.HexToAddress(raw))
		if err != nil {
			return swap.Bridges{}, err
		}
		bridges.Stables = append(bridges.Stables, stable)
	}
	return bridges, nil
}
