package swap

import "errors"

var (
	// ErrInvalidPair is returned when a pair is constructed from identical
	// tokens or a zero reserve.
	ErrInvalidPair = errors.New("invalid pair")

	// ErrInvalidRoute is returned when route pools do not form a connected
	// chain from the input token.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrInsufficientLiquidity is returned when a requested output meets or
	// exceeds a pool reserve.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrZeroAmount is returned when a simulated trade would require or
	// produce a zero amount.
	ErrZeroAmount = errors.New("zero amount")

	// ErrTokenNotInPair is returned when a token is not one of a pair's two
	// tokens.
	ErrTokenNotInPair = errors.New("token not in pair")

	// ErrSameToken is returned when a quote is requested between a token and
	// itself.
	ErrSameToken = errors.New("input and output tokens are equal")

	// ErrNoRoute is returned by the best-trade search when no path connects
	// the two tokens through the supplied pools.
	ErrNoRoute = errors.New("no route")
)
