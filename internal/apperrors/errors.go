package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrManualPriceNotFound indicates that no manual price override exists
	// for the given ID or ticker.
	ErrManualPriceNotFound = errors.New("manual price not found")
)

// Boundary errors represent failures talking to external collaborators.
var (
	// ErrSourceUnavailable indicates the transaction source could not be
	// reached or read. This is distinct from a source that is legitimately
	// empty.
	ErrSourceUnavailable = errors.New("transaction source unavailable")
)

// Business logic errors represent validation failures or constraint
// violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyTicker indicates that a required ticker parameter is empty.
	ErrEmptyTicker = errors.New("ticker cannot be empty")

	// ErrNonPositivePrice indicates a manual price that is zero or negative.
	ErrNonPositivePrice = errors.New("price must be positive")

	// ErrUnsupportedCurrency indicates a currency outside the allowed set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrUnsupportedTransactionType indicates a cashflow query for a type
	// outside the canonical set.
	ErrUnsupportedTransactionType = errors.New("unsupported transaction type")
)
