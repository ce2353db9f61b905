package ledger

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("ledger: amount must be positive")

	// ErrInsufficientBalance indicates the project balance cannot cover
	// the requested withdrawal or reserve movement.
	ErrInsufficientBalance = errors.New("ledger: insufficient project balance")

	// ErrInsufficientReserveForPayment indicates the reserve cannot cover
	// a scheduled investor payment.
	ErrInsufficientReserveForPayment = errors.New("ledger: insufficient reserve for payment")

	// ErrInvalidTierTable indicates a malformed commission tier table.
	ErrInvalidTierTable = errors.New("ledger: invalid commission tier table")

	// ErrRateTooHigh indicates the combined commission and reserve rates
	// would consume the entire contribution.
	ErrRateTooHigh = errors.New("ledger: combined rates too high")
)
