package schedule

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive principal or term.
	ErrInvalidAmount = errors.New("schedule: principal and term must be positive")

	// ErrInvalidRate indicates a non-positive per-period rate.
	ErrInvalidRate = errors.New("schedule: rate per period must be positive")

	// ErrInvalidReturnType indicates an unrecognized return type.
	ErrInvalidReturnType = errors.New("schedule: invalid return type")
)
