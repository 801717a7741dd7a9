package server

import (
	"context"
	"errors"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"swapScope/internal/quoter"
	"swapScope/pkg/swap"
)

type QuoteHandler struct {
	BaseHandler
	service *quoter.Service
}

func NewQuoteHandler(logger *zap.Logger, svc *quoter.Service) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

type QuoteRequest struct {
	Input       string `query:"input" json:"input"`
	Output      string `query:"output" json:"output"`
	Amount      string `query:"amount" json:"amount"`
	Side        string `query:"side" json:"side"`
	SlippageBps string `query:"slippage_bps" json:"slippage_bps"`
}

// QuoteResponse is the JSON body for a successful quote. Amounts are decimal
// strings of atomic units. GuardAmount is the slippage-adjusted bound: a
// minimum output for exact-input trades, a maximum input for exact-output.
type QuoteResponse struct {
	Status         string   `json:"status"`
	InputToken     string   `json:"input_token"`
	OutputToken    string   `json:"output_token"`
	TradeType      string   `json:"trade_type"`
	InputAmount    string   `json:"input_amount,omitempty"`
	OutputAmount   string   `json:"output_amount,omitempty"`
	ExecutionPrice string   `json:"execution_price,omitempty"`
	MidPrice       string   `json:"mid_price,omitempty"`
	PriceImpactPct string   `json:"price_impact_pct,omitempty"`
	GuardAmount    string   `json:"guard_amount,omitempty"`
	Route          []string `json:"route,omitempty"`
	Warning        bool     `json:"warning"`
	Danger         bool     `json:"danger"`
}

func (h *QuoteHandler) Handle() fiber.Handler {
	return func(c fiber.Ctx) error {
		req, err := h.parseAndValidateRequest(c)
		if err != nil {
			return err
		}

		input := common.HexToAddress(req.Input)
		output := common.HexToAddress(req.Output)

		amount, err := parseAmount(req.Amount)
		if err != nil {
			return err
		}
		tradeType, err := parseSide(req.Side)
		if err != nil {
			return err
		}
		slippageBps, err := parseSlippage(req.SlippageBps)
		if err != nil {
			return err
		}

		result, err := h.service.QuoteByAddress(context.Background(), input, output, amount, tradeType, slippageBps)
		if err != nil {
			return h.handleServiceError(err)
		}

		resp := QuoteResponse{
			Status:      result.Status.String(),
			InputToken:  req.Input,
			OutputToken: req.Output,
			TradeType:   tradeType.String(),
			Warning:     result.Warning,
			Danger:      result.Danger,
		}

		switch result.Status {
		case swap.QuotePending:
			return c.Status(fiber.StatusAccepted).JSON(resp)
		case swap.QuoteNoRoute:
			return ErrNoRouteFound
		}

		trade := result.Trade
		resp.InputAmount = trade.InputAmount().Raw().String()
		resp.OutputAmount = trade.OutputAmount().Raw().String()
		resp.ExecutionPrice = trade.ExecutionPrice().ToSignificant(6)
		resp.MidPrice = trade.Route().MidPrice().ToSignificant(6)
		resp.PriceImpactPct = trade.PriceImpact().ToSignificant(4)
		resp.GuardAmount = result.GuardAmount.Raw().String()
		for _, token := range trade.Route().Path() {
			resp.Route = append(resp.Route, token.Address.Hex())
		}

		h.logger.Debug("quote served",
			zap.String("input", req.Input),
			zap.String("output", req.Output),
			zap.String("side", req.Side),
			zap.String("amount", req.Amount))
		return c.JSON(resp)
	}
}

func (h *QuoteHandler) parseAndValidateRequest(c fiber.Ctx) (*QuoteRequest, error) {
	var req QuoteRequest

	if err := c.Bind().Query(&req); err != nil {
		h.logger.Debug("failed to bind query parameters", zap.Error(err))
		return nil, ErrInvalidQueryParameters
	}

	addresses := map[string]string{
		"input":  req.Input,
		"output": req.Output,
	}
	for field, addr := range addresses {
		if addr == "" {
			return nil, NewAddressRequired(field)
		}
		if !common.IsHexAddress(addr) {
			return nil, NewInvalidAddress(field)
		}
	}
	if common.HexToAddress(req.Input) == common.HexToAddress(req.Output) {
		return nil, ErrSameAddresses
	}

	return &req, nil
}

func parseAmount(amountStr string) (*big.Int, error) {
	if amountStr == "" {
		return nil, ErrAmountRequired
	}
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		return nil, ErrInvalidAmountFormat
	}
	if amount.Sign() <= 0 {
		return nil, ErrAmountNonPositive
	}
	return amount, nil
}

func parseSide(side string) (swap.TradeType, error) {
	switch side {
	case "", "in":
		return swap.ExactInput, nil
	case "out":
		return swap.ExactOutput, nil
	default:
		return swap.ExactInput, ErrInvalidSide
	}
}

func parseSlippage(raw string) (uint64, error) {
	if raw == "" {
		return 50, nil
	}
	bps, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || bps > 10000 {
		return 0, ErrInvalidSlippage
	}
	return bps, nil
}

func (h *QuoteHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, swap.ErrSameToken):
		return ErrSameAddresses
	case errors.Is(err, swap.ErrZeroAmount):
		return ErrAmountNonPositive
	case errors.Is(err, swap.ErrInsufficientLiquidity):
		return ErrInsufficientLiquidityRequest
	default:
		h.logger.Error("quote failed", zap.Error(err))
		return ErrQuoteFailedInternal
	}
}
