package swap

import (
	"fmt"
	"math/big"
)

// TradeType distinguishes which side of a trade is fixed.
type TradeType int

const (
	// ExactInput fixes the input amount; the output is derived.
	ExactInput TradeType = iota
	// ExactOutput fixes the output amount; the input is derived.
	ExactOutput
)

func (t TradeType) String() string {
	if t == ExactOutput {
		return "exact_output"
	}
	return "exact_input"
}

// Trade is the result of simulating a swap of a fixed amount on one side of a
// route. It is derived, never stored: any change to amounts, token selection
// or pool reserves recomputes the whole trade from scratch.
type Trade struct {
	route          *Route
	tradeType      TradeType
	inputAmount    Amount
	outputAmount   Amount
	executionPrice Price
	nextMidPrice   Price
	priceImpact    Percent
}

// NewTrade simulates the trade along the route. For ExactInput the fixed
// amount must be denominated in the route's input token and the walk runs
// forward, chaining each hop's output into the next hop against progressively
// updated pair states. For ExactOutput the amount is denominated in the output
// token and the walk runs backward, deriving the required input at each hop.
func NewTrade(route *Route, amount Amount, tradeType TradeType) (*Trade, error) {
	pairs := route.Pairs()
	nextPairs := make([]*Pair, len(pairs))

	var inputAmount, outputAmount Amount

	switch tradeType {
	case ExactInput:
		if !amount.Token().Equal(route.Input()) {
			return nil, fmt.Errorf("%w: amount token does not match route input", ErrInvalidRoute)
		}
		running := amount
		for i, pair := range pairs {
			out, updated, err := pair.GetOutputAmount(running)
			if err != nil {
				return nil, err
			}
			nextPairs[i] = updated
			running = out
		}
		inputAmount = amount
		outputAmount = running

	case ExactOutput:
		if !amount.Token().Equal(route.Output()) {
			return nil, fmt.Errorf("%w: amount token does not match route output", ErrInvalidRoute)
		}
		running := amount
		for i := len(pairs) - 1; i >= 0; i-- {
			in, updated, err := pairs[i].GetInputAmount(running)
			if err != nil {
				return nil, err
			}
			nextPairs[i] = updated
			running = in
		}
		inputAmount = running
		outputAmount = amount

	default:
		return nil, fmt.Errorf("unknown trade type %d", tradeType)
	}

	if inputAmount.IsZero() || outputAmount.IsZero() {
		return nil, fmt.Errorf("%w: trade resolves to zero", ErrZeroAmount)
	}

	executionPrice := NewPrice(route.Input(), route.Output(),
		inputAmount.AsFraction(), outputAmount.AsFraction())

	nextRoute, err := NewRoute(nextPairs, route.Input())
	if err != nil {
		return nil, err
	}

	mid := route.MidPrice().Adjusted()
	impact := mid.Sub(executionPrice.Adjusted()).Div(mid).Abs()

	return &Trade{
		route:          route,
		tradeType:      tradeType,
		inputAmount:    inputAmount,
		outputAmount:   outputAmount,
		executionPrice: executionPrice,
		nextMidPrice:   nextRoute.MidPrice(),
		priceImpact:    newPercentFraction(impact),
	}, nil
}

// Route returns the traded route.
func (t *Trade) Route() *Route { return t.route }

// Type returns the trade type.
func (t *Trade) Type() TradeType { return t.tradeType }

// InputAmount returns the total input, fixed for ExactInput and derived for
// ExactOutput.
func (t *Trade) InputAmount() Amount { return t.inputAmount }

// OutputAmount returns the total output, derived for ExactInput and fixed for
// ExactOutput.
func (t *Trade) OutputAmount() Amount { return t.outputAmount }

// ExecutionPrice is the realized output-per-input price actually paid.
func (t *Trade) ExecutionPrice() Price { return t.executionPrice }

/// NextMidPrice is the route's mid price after the simulated reserve updates:
// the market price the trade leaves behind.
func (t *Trade) NextMidPrice() Price { return t.nextMidPrice }

// PriceImpact is the deviation of the execution price from the route's
// pre-trade mid price, |mid - execution| / mid, as a percent.
func (t *Trade) PriceImpact() Percent { return t.priceImpact }

// MinimumAmountOut is the least output acceptable under the slippage
// tolerance, outputAmount * (1 - tolerance) floor-rounded. Valid only for
// ExactInput trades.
func (t *Trade) MinimumAmountOut(tolerance Percent) (Amount, error) {
	if t.tradeType != ExactInput {
		return Amount{}, fmt.Errorf("minimum amount out requires an exact-input trade")
	}
	factor := NewFractionInt(1, 1).Sub(tolerance.Fraction)
	if factor.Sign() <= 0 {
		return NewAmount(t.outputAmount.Token(), big.NewInt(0)), nil
	}
	scaled := t.outputAmount.AsFraction().Mul(factor)
	return NewAmount(t.outputAmount.Token(), floorFraction(scaled)), nil
}

// MaximumAmountIn is the most input acceptable under the slippage tolerance,
// inputAmount * (1 + tolerance) ceiling-rounded. Valid only for ExactOutput
// trades.
func (t *Trade) MaximumAmountIn(tolerance Percent) (Amount, error) {
	if t.tradeType != ExactOutput {
		return Amount{}, fmt.Errorf("maximum amount in requires an exact-output trade")
	}
	factor := NewFractionInt(1, 1).Add(tolerance.Fraction)
	scaled := t.inputAmount.AsFraction().Mul(factor)
	return NewAmount(t.inputAmount.Token(), ceilFraction(scaled)), nil
}

func floorFraction(f Fraction) *big.Int {
	return new(big.Int).Quo(f.Num(), f.Den())
}

func ceilFraction(f Fraction) *big.Int {
	num := f.Num()
	den := f.Den()
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, bigOne)
	}
	return quo
}
