package swap

import "math/big"

var oneHundred = NewFractionInt(100, 1)

// Percent is a fraction rendered as a percentage: the fraction 1/100 prints
// as "1".
type Percent struct {
	Fraction
}

// NewPercent builds a percent from numerator and denominator of the underlying
// fraction, so NewPercent(5, 100) is five percent.
func NewPercent(num, den int64) Percent {
	return Percent{NewFractionInt(num, den)}
}

// NewPercentFromBps builds a percent from integer basis points: 50 bps is
// 0.5%.
func NewPercentFromBps(bps uint64) Percent {
	return Percent{NewFraction(new(big.Int).SetUint64(bps), big.NewInt(10000))}
}

func newPercentFraction(f Fraction) Percent {
	return Percent{f}
}

// ToSignificant renders the percentage value to sig significant digits.
func (p Percent) ToSignificant(sig int) string {
	return p.Fraction.Mul(oneHundred).ToSignificant(sig)
}

// ToFixed renders the percentage value with exactly decimals fractional
// digits.
func (p Percent) ToFixed(decimals int) string {
	return p.Fraction.Mul(oneHundred).ToFixed(decimals)
}
