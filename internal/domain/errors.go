package domain

import "errors"

// Domain errors
var (
	// Event errors
	ErrEventNotFound      = errors.New("event not found")
	ErrEventAlreadyExists = errors.New("event with this slug already exists")
	ErrInvalidEventStatus = errors.New("invalid event status transition")

	// Batch errors
	ErrBatchNotFound  = errors.New("batch not found")
	ErrBatchNotOnSale = errors.New("batch is not on sale")

	// Pricing errors
	ErrPriceNotConfigured = errors.New("no price configured for the requested combination")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrDateNotFound       = errors.New("event date not found")

	// Validation errors
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidPrice        = errors.New("price cannot be negative")
	ErrConflictingPricing  = errors.New("flat price and per-ticket-type prices are mutually exclusive")
	ErrDateOverrideInvalid = errors.New("date with specific price must define exactly one of flat price or per-type prices")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrTicketTypeNotFound) ||
		errors.Is(err, ErrDateNotFound)
}
