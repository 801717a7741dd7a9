package swap

// Price expresses how many quote-token units one base-token unit buys. The
// stored ratio is in atomic units; Adjusted applies the decimal correction
// 10^(baseDecimals-quoteDecimals) so that rendered values are in whole token
// terms. Chained hop prices multiply on the raw ratio, since the intermediate
// token's decimal factors cancel.
type Price struct {
	base  Token
	quote Token
	raw   Fraction // atomic quote units per atomic base unit
}

// NewPrice builds a price from raw atomic reserve-style quantities: quoteRaw
// atomic units of quote per baseRaw atomic units of base.
func NewPrice(base, quote Token, baseRaw, quoteRaw Fraction) Price {
	return Price{base: base, quote: quote, raw: quoteRaw.Div(baseRaw)}
}

// Base returns the base token.
func (p Price) Base() Token { return p.base }

// Quote returns the quote token.
func (p Price) Quote() Token { return p.quote }

// Raw returns the unadjusted atomic-unit ratio.
func (p Price) Raw() Fraction { return p.raw }

// Invert swaps base and quote.
func (p Price) Invert() Price {
	return Price{base: p.quote, quote: p.base, raw: p.raw.Invert()}
}

// MulPrice composes two hop prices. The receiver's quote token must be the
// other price's base token; anything else is a programming error and panics.
func (p Price) MulPrice(other Price) Price {
	if !p.quote.Equal(other.base) {
		panic("swap: price composition token mismatch")
	}
	return Price{base: p.base, quote: other.quote, raw: p.raw.Mul(other.raw)}
}

// Adjusted returns the price in whole-token terms, applying both tokens'
// decimal precision.
func (p Price) Adjusted() Fraction {
	return p.raw.Mul(p.base.decimalScale()).Div(p.quote.decimalScale())
}

// ToSignificant renders the adjusted price to sig significant digits,
// truncated.
func (p Price) ToSignificant(sig int) string {
	return p.Adjusted().ToSignificant(sig)
}

// ToFixed renders the adjusted price with exactly decimals fractional digits,
// truncated.
func (p Price) ToFixed(decimals int) string {
	return p.Adjusted().ToFixed(decimals)
}
