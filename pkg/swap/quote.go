package swap

import (
	"errors"
	"fmt"
	"math/big"
)

// Price-impact thresholds surfaced to callers as non-fatal warnings.
var (
	warningImpact = NewPercent(5, 100)
	dangerImpact  = NewPercent(10, 100)
)

// QuoteStatus is the tri-state outcome of a quote.
type QuoteStatus int

const (
	// QuoteFound means a trade was resolved.
	QuoteFound QuoteStatus = iota
	// QuotePending means the pair book does not yet hold enough snapshots to
	// decide; the caller should requote when more data arrives.
	QuotePending
	// QuoteNoRoute means no path deterministically exists with the supplied
	// pool catalog.
	QuoteNoRoute
)

func (s QuoteStatus) String() string {
	switch s {
	case QuotePending:
		return "pending"
	case QuoteNoRoute:
		return "no_route"
	default:
		return "found"
	}
}

// QuoteRequest is one quote computation's input: two token identities, a
// fixed amount on one side, and the user's slippage tolerance in basis
// points.
type QuoteRequest struct {
	InputToken  Token
	OutputToken Token
	Amount      *big.Int
	TradeType   TradeType
	SlippageBps uint64
}

// QuoteResult is the outcome of a quote. Trade and the guard amount are set
// only when Status is QuoteFound. For exact-input trades GuardAmount is the
// minimum acceptable output under the slippage tolerance; for exact-output
// trades it is the maximum acceptable input.
type QuoteResult struct {
	Status      QuoteStatus
	Trade       *Trade
	GuardAmount Amount
	Warning     bool
	Danger      bool
}

// Quote runs the full quoting computation over the supplied pair book: route
// discovery with pending/no-route detection, a bounded best-price trade
// search across the whole candidate catalog, and slippage-protected guard
// amounts. The computation is pure; the book is the only market data it sees.
func Quote(book *PairBook, bridges Bridges, req QuoteRequest) (QuoteResult, error) {
	if req.InputToken.Equal(req.OutputToken) {
		return QuoteResult{}, ErrSameToken
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return QuoteResult{}, fmt.Errorf("%w: quote amount must be positive", ErrZeroAmount)
	}

	_, status := BestRoute(book, req.InputToken, req.OutputToken, bridges)
	switch status {
	case RoutePending:
		return QuoteResult{Status: QuotePending}, nil
	case RouteNone:
		return QuoteResult{Status: QuoteNoRoute}, nil
	}

	// A route exists; search the whole catalog for the best-priced trade
	// rather than settling for the priority route.
	var (
		trade *Trade
		err   error
	)
	if req.TradeType == ExactInput {
		amount := NewAmount(req.InputToken, req.Amount)
		trade, err = BestTradeExactIn(book.Pairs(), amount, req.OutputToken, MaxHops)
	} else {
		amount := NewAmount(req.OutputToken, req.Amount)
		trade, err = BestTradeExactOut(book.Pairs(), req.InputToken, amount, MaxHops)
	}
	if err != nil {
		if errors.Is(err, ErrNoRoute) {
			// The priority route resolved but the amount does not survive
			// simulation at any depth (e.g. it exceeds every reserve).
			return QuoteResult{}, fmt.Errorf("%w: no route supports the requested amount", ErrInsufficientLiquidity)
		}
		return QuoteResult{}, err
	}

	tolerance := NewPercentFromBps(req.SlippageBps)
	var guard Amount
	if req.TradeType == ExactInput {
		guard, err = trade.MinimumAmountOut(tolerance)
	} else {
		guard, err = trade.MaximumAmountIn(tolerance)
	}
	if err != nil {
		return QuoteResult{}, err
	}

	impact := trade.PriceImpact()
	return QuoteResult{
		Status:      QuoteFound,
		Trade:       trade,
		GuardAmount: guard,
		Warning:     !impact.LessThan(warningImpact.Fraction),
		Danger:      !impact.LessThan(dangerImpact.Fraction),
	}, nil
}
