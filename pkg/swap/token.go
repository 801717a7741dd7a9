package swap

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// Token identifies a fungible asset by chain and contract address. Decimals,
// symbol and name are display metadata and do not participate in equality.
// Tokens are immutable values: construct once, copy freely.
type Token struct {
	ChainID  uint64
	Address  common.Address
	Decimals uint8
	Symbol   string
	Name     string
}

// NewToken constructs a token value.
func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) Token {
	return Token{
		ChainID:  chainID,
		Address:  address,
		Decimals: decimals,
		Symbol:   symbol,
		Name:     name,
	}
}

// Equal reports whether two tokens identify the same asset: same chain and
// same address.
func (t Token) Equal(other Token) bool {
	return t.ChainID == other.ChainID && t.Address == other.Address
}

// SortsBefore reports whether t orders before other in canonical pair order
// (lower address first). Comparing a token with itself is a programming error
// and panics.
func (t Token) SortsBefore(other Token) bool {
	cmp := bytes.Compare(t.Address[:], other.Address[:])
	if cmp == 0 {
		panic("swap: sorting identical token addresses")
	}
	return cmp < 0
}

// decimalScale returns 10^decimals for converting atomic units to token
// units.
func (t Token) decimalScale() Fraction {
	return NewFraction(pow10(int(t.Decimals)), bigOne)
}
