package swap

import "fmt"

// MaxHops bounds the best-trade search to routes with at most one
// intermediate bridge token.
const MaxHops = 2

// BestTradeExactIn searches the pool catalog for the trade that buys the most
// tokenOut for a fixed amountIn, considering routes of up to maxHops pairs.
// Ties on output are broken in favor of fewer hops. ErrNoRoute is returned
// when no path connects the tokens.
func BestTradeExactIn(pairs []*Pair, amountIn Amount, tokenOut Token, maxHops int) (*Trade, error) {
	if amountIn.Token().Equal(tokenOut) {
		return nil, ErrSameToken
	}
	if maxHops < 1 {
		return nil, fmt.Errorf("max hops must be at least one")
	}
	best := searchExactIn(pairs, nil, amountIn, amountIn, tokenOut, maxHops, nil)
	if best == nil {
		return nil, ErrNoRoute
	}
	return best, nil
}

func searchExactIn(pairs, used []*Pair, fixed, running Amount, tokenOut Token, hopsLeft int, best *Trade) *Trade {
	for i, pair := range pairs {
		if !pair.Involves(running.Token()) {
			continue
		}
		out, _, err := pair.GetOutputAmount(running)
		if err != nil {
			continue
		}

		chain := append(append([]*Pair{}, used...), pair)
		if out.Token().Equal(tokenOut) {
			best = betterExactIn(best, tradeFromChain(chain, fixed, ExactInput))
			continue
		}
		if hopsLeft > 1 {
			remaining := append(append([]*Pair{}, pairs[:i]...), pairs[i+1:]...)
			best = searchExactIn(remaining, chain, fixed, out, tokenOut, hopsLeft-1, best)
		}
	}
	return best
}

// BestTradeExactOut searches for the trade that pays the least tokenIn for a
// fixed amountOut, considering routes of up to maxHops pairs.
func BestTradeExactOut(pairs []*Pair, tokenIn Token, amountOut Amount, maxHops int) (*Trade, error) {
	if amountOut.Token().Equal(tokenIn) {
		return nil, ErrSameToken
	}
	if maxHops < 1 {
		return nil, fmt.Errorf("max hops must be at least one")
	}
	best := searchExactOut(pairs, nil, tokenIn, amountOut, amountOut, maxHops, nil)
	if best == nil {
		return nil, ErrNoRoute
	}
	return best, nil
}

func searchExactOut(pairs, used []*Pair, tokenIn Token, fixed, running Amount, hopsLeft int, best *Trade) *Trade {
	for i, pair := range pairs {
		if !pair.Involves(running.Token()) {
			continue
		}
		in, _, err := pair.GetInputAmount(running)
		if err != nil {
			continue
		}

		// Chains grow toward the input side, so prepend.
		chain := append([]*Pair{pair}, used...)
		if in.Token().Equal(tokenIn) {
			best = betterExactOut(best, tradeFromChain(chain, fixed, ExactOutput))
			continue
		}
		if hopsLeft > 1 {
			remaining := append(append([]*Pair{}, pairs[:i]...), pairs[i+1:]...)
			best = searchExactOut(remaining, chain, tokenIn, fixed, in, hopsLeft-1, best)
		}
	}
	return best
}

// tradeFromChain replays a discovered hop chain as a full route simulation.
// A nil result means the chain did not survive validation or the amounts
// collapsed to zero; the search just skips it.
func tradeFromChain(chain []*Pair, fixed Amount, tradeType TradeType) *Trade {
	input := fixed.Token()
	if tradeType == ExactOutput {
		// The fixed amount is on the output side; walk the chain backward to
		// recover the route's input token.
		current := fixed.Token()
		for i := len(chain) - 1; i >= 0; i-- {
			other, err := chain[i].Other(current)
			if err != nil {
				return nil
			}
			current = other
		}
		input = current
	}
	route, err := NewRoute(chain, input)
	if err != nil {
		return nil
	}
	trade, err := NewTrade(route, fixed, tradeType)
	if err != nil {
		return nil
	}
	return trade
}

func betterExactIn(best, candidate *Trade) *Trade {
	if candidate == nil {
		return best
	}
	if best == nil {
		return candidate
	}
	switch candidate.OutputAmount().Cmp(best.OutputAmount()) {
	case 1:
		return candidate
	case 0:
		if len(candidate.Route().Pairs()) < len(best.Route().Pairs()) {
			return candidate
		}
	}
	return best
}

func betterExactOut(best, candidate *Trade) *Trade {
	if candidate == nil {
		return best
	}
	if best == nil {
		return candidate
	}
	switch candidate.InputAmount().Cmp(best.InputAmount()) {
	case -1:
		return candidate
	case 0:
		if len(candidate.Route().Pairs()) < len(best.Route().Pairs()) {
			return candidate
		}
	}
	return best
}
