package wad

import "errors"

var (
	// ErrDivisionByZero indicates a division or ratio with a zero divisor.
	ErrDivisionByZero = errors.New("wad: division by zero")
)
