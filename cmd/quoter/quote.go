package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/pkg/swap"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute one quote and print it as JSON",
		RunE:  runQuote,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("input", "", "input token address")
	cmd.Flags().String("output", "", "output token address")
	cmd.Flags().String("amount", "", "amount in atomic units")
	cmd.Flags().String("side", "in", "fixed side: in (exact input) or out (exact output)")
	cmd.Flags().Uint64("slippage-bps", 50, "slippage tolerance in basis points")

	return cmd
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputRaw, _ := cmd.Flags().GetString("input")
	outputRaw, _ := cmd.Flags().GetString("output")
	amountRaw, _ := cmd.Flags().GetString("amount")
	side, _ := cmd.Flags().GetString("side")
	slippageBps, _ := cmd.Flags().GetUint64("slippage-bps")

	if !common.IsHexAddress(inputRaw) {
		return fmt.Errorf("invalid input address: %q", inputRaw)
	}
	if !common.IsHexAddress(outputRaw) {
		return fmt.Errorf("invalid output address: %q", outputRaw)
	}
	amount, ok := new(big.Int).SetString(amountRaw, 10)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("amount must be a positive base-10 integer, got %q", amountRaw)
	}
	tradeType := swap.ExactInput
	switch side {
	case "in":
	case "out":
		tradeType = swap.ExactOutput
	default:
		return fmt.Errorf("side must be \"in\" or \"out\", got %q", side)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, chainClient, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	result, err := service.QuoteByAddress(ctx, common.HexToAddress(inputRaw), common.HexToAddress(outputRaw), amount, tradeType, slippageBps)
	if err != nil {
		return err
	}

	out := map[string]any{
		"status":  result.Status.String(),
		"warning": result.Warning,
		"danger":  result.Danger,
	}
	if result.Trade != nil {
		trade := result.Trade
		path := make([]string, 0, len(trade.Route().Path()))
		for _, token := range trade.Route().Path() {
			path = append(path, token.Address.Hex())
		}
		out["input_amount"] = trade.InputAmount().Raw().String()
		out["output_amount"] = trade.OutputAmount().Raw().String()
		out["execution_price"] = trade.ExecutionPrice().ToSignificant(6)
		out["mid_price"] = trade.Route().MidPrice().ToSignificant(6)
		out["price_impact_pct"] = trade.PriceImpact().ToSignificant(4)
		out["guard_amount"] = result.GuardAmount.Raw().String()
		out["route"] = path
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	logger.Debug("quote done", zap.String("status", result.Status.String()))
	return nil
}
