package swap

import (
	"fmt"
	"math/big"
)

var (
	feeNum = big.NewInt(997)
	feeDen = big.NewInt(1000)
)

// Pair is an immutable snapshot of a constant-product liquidity pool holding
// reserves of two distinct tokens, ordered canonically by address. Swap
// simulation never mutates a pair; it returns a new pair with updated
// reserves so multi-hop walks chain correctly.
type Pair struct {
	reserve0 Amount
	reserve1 Amount
}

// NewPair builds a pair from two reserve amounts, ordering them canonically.
// Identical tokens or a zero reserve yield ErrInvalidPair: a pool with an
// empty side is unusable and must not enter a route.
func NewPair(a, b Amount) (*Pair, error) {
	if a.Token().Equal(b.Token()) {
		return nil, fmt.Errorf("%w: identical tokens %s", ErrInvalidPair, a.Token().Address.Hex())
	}
	if a.IsZero() || b.IsZero() {
		return nil, fmt.Errorf("%w: zero reserve", ErrInvalidPair)
	}
	if b.Token().SortsBefore(a.Token()) {
		a, b = b, a
	}
	return &Pair{reserve0: a, reserve1: b}, nil
}

// Token0 returns the canonically first token.
func (p *Pair) Token0() Token { return p.reserve0.Token() }

// Token1 returns the canonically second token.
func (p *Pair) Token1() Token { return p.reserve1.Token() }

// Reserve0 returns the reserve of Token0.
func (p *Pair) Reserve0() Amount { return p.reserve0 }

// Reserve1 returns the reserve of Token1.
func (p *Pair) Reserve1() Amount { return p.reserve1 }

// Involves reports whether the token is one of the pair's two tokens.
func (p *Pair) Involves(token Token) bool {
	return token.Equal(p.Token0()) || token.Equal(p.Token1())
}

// Other returns the pair's token that is not the given one.
func (p *Pair) Other(token Token) (Token, error) {
	switch {
	case token.Equal(p.Token0()):
		return p.Token1(), nil
	case token.Equal(p.Token1()):
		return p.Token0(), nil
	default:
		return Token{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, token.Address.Hex())
	}
}

// ReserveOf returns the reserve amount of the given token.
func (p *Pair) ReserveOf(token Token) (Amount, error) {
	switch {
	case token.Equal(p.Token0()):
		return p.reserve0, nil
	case token.Equal(p.Token1()):
		return p.reserve1, nil
	default:
		return Amount{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, token.Address.Hex())
	}
}

// PriceOf returns the spot price of the given token in units of the pair's
// other token: other-reserve over this-reserve, decimal adjusted at render
// time.
func (p *Pair) PriceOf(token Token) (Price, error) {
	this, err := p.ReserveOf(token)
	if err != nil {
		return Price{}, err
	}
	other, err := p.Other(token)
	if err != nil {
		return Price{}, err
	}
	otherReserve, _ := p.ReserveOf(other)
	return NewPrice(token, other, this.AsFraction(), otherReserve.AsFraction()), nil
}

// GetOutputAmount simulates an exact-input swap against the pair with the
// 0.3% fee constant-product formula:
//
//	out = floor(in*997*reserveOut / (reserveIn*1000 + in*997))
//
// It returns the output amount and a new pair with post-swap reserves. A zero
// computed output yields ErrZeroAmount.
func (p *Pair) GetOutputAmount(input Amount) (Amount, *Pair, error) {
	reserveIn, err := p.ReserveOf(input.Token())
	if err != nil {
		return Amount{}, nil, err
	}
	outToken, _ := p.Other(input.Token())
	reserveOut, _ := p.ReserveOf(outToken)

	if input.IsZero() {
		return Amount{}, nil, fmt.Errorf("%w: zero input", ErrZeroAmount)
	}

	inWithFee := new(big.Int).Mul(input.Raw(), feeNum)
	numerator := new(big.Int).Mul(inWithFee, reserveOut.Raw())
	denominator := new(big.Int).Mul(reserveIn.Raw(), feeDen)
	denominator.Add(denominator, inWithFee)

	out := NewAmount(outToken, numerator.Quo(numerator, denominator))
	if out.IsZero() {
		return Amount{}, nil, fmt.Errorf("%w: output rounds to zero", ErrZeroAmount)
	}

	next, err := NewPair(reserveIn.Add(input), reserveOut.Sub(out))
	if err != nil {
		return Amount{}, nil, err
	}
	return out, next, nil
}

// GetInputAmount simulates an exact-output swap: the input required to draw
// the given output from the pair, rounded up so the pool is never
// under-compensated:
//
//	in = floor(reserveIn*out*1000 / ((reserveOut-out)*997)) + 1
//
// A requested output meeting or exceeding the reserve yields
// ErrInsufficientLiquidity.
func (p *Pair) GetInputAmount(output Amount) (Amount, *Pair, error) {
	reserveOut, err := p.ReserveOf(output.Token())
	if err != nil {
		return Amount{}, nil, err
	}
	inToken, _ := p.Other(output.Token())
	reserveIn, _ := p.ReserveOf(inToken)

	if output.IsZero() {
		return Amount{}, nil, fmt.Errorf("%w: zero output", ErrZeroAmount)
	}
	if output.Cmp(reserveOut) >= 0 {
		return Amount{}, nil, fmt.Errorf("%w: output %s >= reserve %s",
			ErrInsufficientLiquidity, output.Raw(), reserveOut.Raw())
	}

	numerator := new(big.Int).Mul(reserveIn.Raw(), output.Raw())
	numerator.Mul(numerator, feeDen)
	denominator := new(big.Int).Sub(reserveOut.Raw(), output.Raw())
	denominator.Mul(denominator, feeNum)

	raw := new(big.Int).Quo(numerator, denominator)
	raw.Add(raw, bigOne)
	in := NewAmount(inToken, raw)

	next, err := NewPair(reserveIn.Add(in), reserveOut.Sub(output))
	if err != nil {
		return Amount{}, nil, err
	}
	return in, next, nil
}
