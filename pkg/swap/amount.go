package swap

import "math/big"

// Amount is a non-negative integer quantity of a token in atomic units
// (e.g. wei). Arithmetic between amounts of different tokens is a programming
// error and panics.
type Amount struct {
	token Token
	raw   *big.Int
}

// NewAmount wraps a raw atomic value with its token. A nil or negative raw
// value panics: amounts are non-negative by construction.
func NewAmount(token Token, raw *big.Int) Amount {
	if raw == nil || raw.Sign() < 0 {
		panic("swap: amount must be non-negative")
	}
	return Amount{token: token, raw: new(big.Int).Set(raw)}
}

// NewAmountUint64 wraps a uint64 atomic value with its token.
func NewAmountUint64(token Token, raw uint64) Amount {
	return Amount{token: token, raw: new(big.Int).SetUint64(raw)}
}

// Token returns the token this amount is denominated in.
func (a Amount) Token() Token { return a.token }

// Raw returns a copy of the atomic integer value.
func (a Amount) Raw() *big.Int { return new(big.Int).Set(a.raw) }

func (a Amount) IsZero() bool { return a.raw.Sign() == 0 }

// Add returns a + b. Mismatched tokens panic.
func (a Amount) Add(b Amount) Amount {
	a.mustMatch(b)
	return Amount{token: a.token, raw: new(big.Int).Add(a.raw, b.raw)}
}

// Sub returns a - b. Mismatched tokens or a negative result panic.
func (a Amount) Sub(b Amount) Amount {
	a.mustMatch(b)
	diff := new(big.Int).Sub(a.raw, b.raw)
	if diff.Sign() < 0 {
		panic("swap: amount subtraction underflow")
	}
	return Amount{token: a.token, raw: diff}
}

// Cmp compares two amounts of the same token. Mismatched tokens panic.
func (a Amount) Cmp(b Amount) int {
	a.mustMatch(b)
	return a.raw.Cmp(b.raw)
}

// AsFraction returns the raw atomic value as a fraction over one.
func (a Amount) AsFraction() Fraction {
	return NewFraction(a.raw, bigOne)
}

// ToSignificant renders the amount in whole token units to sig significant
// digits, truncated.
func (a Amount) ToSignificant(sig int) string {
	return a.AsFraction().Div(a.token.decimalScale()).ToSignificant(sig)
}

// ToFixed renders the amount in whole token units with exactly decimals
// fractional digits, truncated.
func (a Amount) ToFixed(decimals int) string {
	return a.AsFraction().Div(a.token.decimalScale()).ToFixed(decimals)
}

func (a Amount) mustMatch(b Amount) {
	if !a.token.Equal(b.token) {
		panic("swap: amount arithmetic across different tokens")
	}
}
