package claims

import "errors"

var (
	// ErrPaymentNotYetDue indicates no scheduled period has matured yet.
	ErrPaymentNotYetDue = errors.New("claims: payment not yet due")

	// ErrNotYetClaimable indicates the investment is still inside its
	// block window and no payment can be claimed at all.
	ErrNotYetClaimable = errors.New("claims: investment not yet claimable")

	// ErrInvalidPeriod indicates a non-positive period length.
	ErrInvalidPeriod = errors.New("claims: period length must be positive")

	// ErrScheduleMismatch indicates the pending installment list does not
	// match the remaining period count.
	ErrScheduleMismatch = errors.New("claims: pending installments do not match remaining periods")
)
