package server

import "github.com/gofiber/fiber/v3"

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrSameAddresses is returned when input and output addresses are identical.
var ErrSameAddresses = fiber.NewError(fiber.StatusBadRequest, "input and output addresses cannot be the same")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when the amount cannot be parsed as a
// base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when the amount is zero or negative.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrInvalidSide is returned when the side parameter is neither "in" nor "out".
var ErrInvalidSide = fiber.NewError(fiber.StatusBadRequest, "side must be \"in\" or \"out\"")

// ErrInvalidSlippage is returned when slippage_bps cannot be parsed or exceeds
// the valid range.
var ErrInvalidSlippage = fiber.NewError(fiber.StatusBadRequest, "slippage_bps must be an integer between 0 and 10000")

// ErrNoRouteFound maps an exhausted route search to a 404 error.
var ErrNoRouteFound = fiber.NewError(fiber.StatusNotFound, "no route between tokens")

// ErrInsufficientLiquidityRequest maps a trade larger than the available
// reserves to a 400 error.
var ErrInsufficientLiquidityRequest = fiber.NewError(fiber.StatusBadRequest, "insufficient liquidity for requested amount")

// ErrQuoteFailedInternal signals a generic server-side quoting error.
var ErrQuoteFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "quote failed")

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}
