package broker

import "errors"

// Order and ledger failures are detected by validation before any state
// is touched, so callers never see a partially applied mutation.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientPosition = errors.New("insufficient position")
	ErrPriceUnavailable     = errors.New("price unavailable")
	ErrInvalidSide          = errors.New("invalid side")
	ErrInvalidAmount        = errors.New("invalid amount")
)
