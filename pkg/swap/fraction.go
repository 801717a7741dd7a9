package swap

import (
	"math/big"
	"strings"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
)

// Fraction is an exact ratio of two arbitrary-precision integers. The
// denominator is always positive; the sign lives on the numerator. All token
// amount and price math goes through Fraction so that no conservation-critical
// value is ever rounded through floating point.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// NewFraction builds a fraction from a numerator and denominator. A zero
// denominator is a programming error and panics.
func NewFraction(num, den *big.Int) Fraction {
	if den.Sign() == 0 {
		panic("swap: fraction with zero denominator")
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Fraction{num: n, den: d}
}

// NewFractionInt builds a fraction from int64 parts.
func NewFractionInt(num, den int64) Fraction {
	return NewFraction(big.NewInt(num), big.NewInt(den))
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int { return new(big.Int).Set(f.num) }

// Den returns a copy of the denominator.
func (f Fraction) Den() *big.Int { return new(big.Int).Set(f.den) }

func (f Fraction) Add(other Fraction) Fraction {
	num := new(big.Int).Mul(f.num, other.den)
	num.Add(num, new(big.Int).Mul(other.num, f.den))
	return Fraction{num: num, den: new(big.Int).Mul(f.den, other.den)}
}

func (f Fraction) Sub(other Fraction) Fraction {
	num := new(big.Int).Mul(f.num, other.den)
	num.Sub(num, new(big.Int).Mul(other.num, f.den))
	return Fraction{num: num, den: new(big.Int).Mul(f.den, other.den)}
}

func (f Fraction) Mul(other Fraction) Fraction {
	return Fraction{
		num: new(big.Int).Mul(f.num, other.num),
		den: new(big.Int).Mul(f.den, other.den),
	}
}

// Div divides by another fraction. Dividing by zero panics.
func (f Fraction) Div(other Fraction) Fraction {
	return f.Mul(other.Invert())
}

// Invert swaps numerator and denominator. Inverting zero panics.
func (f Fraction) Invert() Fraction {
	return NewFraction(f.den, f.num)
}

// Abs returns the fraction with a non-negative numerator.
func (f Fraction) Abs() Fraction {
	if f.num.Sign() >= 0 {
		return f
	}
	return Fraction{num: new(big.Int).Neg(f.num), den: f.den}
}

// Cmp compares two fractions by cross-multiplication: -1 if f < other, 0 if
// equal, +1 if f > other.
func (f Fraction) Cmp(other Fraction) int {
	left := new(big.Int).Mul(f.num, other.den)
	right := new(big.Int).Mul(other.num, f.den)
	return left.Cmp(right)
}

func (f Fraction) LessThan(other Fraction) bool    { return f.Cmp(other) < 0 }
func (f Fraction) GreaterThan(other Fraction) bool { return f.Cmp(other) > 0 }
func (f Fraction) Equal(other Fraction) bool       { return f.Cmp(other) == 0 }

func (f Fraction) IsZero() bool { return f.num.Sign() == 0 }

func (f Fraction) Sign() int { return f.num.Sign() }

// ToFixed renders the fraction with exactly decimals digits after the decimal
// point. Rounding is truncation toward zero: 1/3 at two decimals is "0.33",
// 2/3 is "0.66".
func (f Fraction) ToFixed(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	scale := pow10(decimals)
	scaled := new(big.Int).Mul(f.num, scale)
	quo := new(big.Int).Quo(scaled, f.den)

	sign := ""
	if quo.Sign() < 0 {
		sign = "-"
		quo.Neg(quo)
	}

	digits := quo.String()
	if decimals == 0 {
		return sign + digits
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	split := len(digits) - decimals
	return sign + digits[:split] + "." + digits[split:]
}

// ToSignificant renders the fraction truncated to sig significant decimal
// digits, with trailing fractional zeros removed. sig below one is treated as
// one. The integer magnitude is never shortened: 12345 at three significant
// digits renders as "12300".
func (f Fraction) ToSignificant(sig int) string {
	if sig < 1 {
		sig = 1
	}
	if f.num.Sign() == 0 {
		return "0"
	}

	abs := f.Abs()
	sign := ""
	if f.num.Sign() < 0 {
		sign = "-"
	}

	intPart := new(big.Int).Quo(abs.num, abs.den)
	if intPart.Sign() > 0 {
		digits := intPart.String()
		if len(digits) >= sig {
			return sign + digits[:sig] + strings.Repeat("0", len(digits)-sig)
		}
		return sign + trimFractionZeros(abs.ToFixed(sig-len(digits)))
	}

	// Purely fractional: count the leading zeros after the decimal point so
	// the requested digits start at the first significant one.
	leading := 0
	probe := new(big.Int).Set(abs.num)
	for probe.Mul(probe, bigTen); probe.Cmp(abs.den) < 0; probe.Mul(probe, bigTen) {
		leading++
	}
	return sign + trimFractionZeros(abs.ToFixed(leading + sig))
}

func trimFractionZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
