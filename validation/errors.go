package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConstructorParam is the root of every constructor
	// parameter violation; match it with errors.Is to catch them all.
	ErrInvalidConstructorParam = errors.New("validation: invalid constructor parameter")

	// ErrZeroInterestRate indicates a non-positive interest rate.
	ErrZeroInterestRate = fmt.Errorf("%w: interest rate must be positive", ErrInvalidConstructorParam)

	// ErrZeroGoal indicates a non-positive funding goal.
	ErrZeroGoal = fmt.Errorf("%w: funding goal must be positive", ErrInvalidConstructorParam)

	// ErrZeroMinimumInvestment indicates a non-positive minimum investment.
	ErrZeroMinimumInvestment = fmt.Errorf("%w: minimum investment must be positive", ErrInvalidConstructorParam)

	// ErrMinimumAboveGoal indicates a minimum investment larger than the goal.
	ErrMinimumAboveGoal = fmt.Errorf("%w: minimum investment exceeds the goal", ErrInvalidConstructorParam)

	// ErrZeroTerm indicates a non-positive term length.
	ErrZeroTerm = fmt.Errorf("%w: term must be positive", ErrInvalidConstructorParam)

	// ErrZeroPeriod indicates a non-positive period length.
	ErrZeroPeriod = fmt.Errorf("%w: period length must be positive", ErrInvalidConstructorParam)

	// ErrUnsupportedReturnType indicates an unrecognized return type.
	ErrUnsupportedReturnType = fmt.Errorf("%w: unsupported return type", ErrInvalidConstructorParam)

	// ErrInvalidAmount indicates a non-positive operation amount.
	ErrInvalidAmount = errors.New("validation: amount must be positive")

	// ErrBelowMinimumInvestment indicates a contribution below the
	// configured minimum.
	ErrBelowMinimumInvestment = errors.New("validation: amount below minimum investment")

	// ErrGoalExceeded indicates a contribution that would push cumulative
	// principal past the funding goal.
	ErrGoalExceeded = errors.New("validation: funding goal exceeded")

	// ErrContractPaused indicates the operation is blocked by the pause gate.
	ErrContractPaused = errors.New("validation: contract is paused")

	// ErrUnauthorized indicates the caller lacks the required capability.
	ErrUnauthorized = errors.New("validation: caller not authorized")

	// ErrInvalidTokenID indicates an unknown investment handle, or a
	// caller with no investment at all.
	ErrInvalidTokenID = errors.New("validation: invalid investment handle")
)
