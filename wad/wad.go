// Package wad implements fixed-point arithmetic with 18 fractional decimal
// digits, the precision used for all commission, interest, and schedule
// calculations in the engine.
//
// A Wad holds value × 10^18 as an arbitrary-precision integer, so products
// of large principals and rates never overflow. Multiplication and division
// truncate toward zero; callers that must conserve a total absorb the
// truncation remainder explicitly (see the ledger and schedule packages).
package wad

import (
	"math/big"
	"strings"
)

// Decimals is the number of fractional decimal digits in a Wad.
const Decimals = 18

// scale is 10^Decimals.
var scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Wad is an immutable fixed-point number with 18 fractional decimals.
// The zero value is 0.
type Wad struct {
	v *big.Int
}

// val returns the underlying integer, treating the zero value as 0.
func (w Wad) val() *big.Int {
	if w.v == nil {
		return new(big.Int)
	}
	return w.v
}

// Zero returns the Wad 0.
func Zero() Wad { return Wad{} }

// One returns the Wad 1.0 (10^18).
func One() Wad { return Wad{v: new(big.Int).Set(scale)} }

// FromUnits returns n as a Wad (n × 10^18).
func FromUnits(n int64) Wad {
	return Wad{v: new(big.Int).Mul(big.NewInt(n), scale)}
}

// FromRatio returns num/den as a Wad, truncated toward zero.
// Returns ErrDivisionByZero if den is zero.
func FromRatio(num, den int64) (Wad, error) {
	if den == 0 {
		return Wad{}, ErrDivisionByZero
	}
	v := new(big.Int).Mul(big.NewInt(num), scale)
	return Wad{v: v.Quo(v, big.NewInt(den))}, nil
}

// Add returns w + o.
func (w Wad) Add(o Wad) Wad {
	return Wad{v: new(big.Int).Add(w.val(), o.val())}
}

// Sub returns w − o.
func (w Wad) Sub(o Wad) Wad {
	return Wad{v: new(big.Int).Sub(w.val(), o.val())}
}

// Mul returns w × o, truncated toward zero.
func (w Wad) Mul(o Wad) Wad {
	v := new(big.Int).Mul(w.val(), o.val())
	return Wad{v: v.Quo(v, scale)}
}

// Div returns w / o, truncated toward zero.
// Returns ErrDivisionByZero if o is zero.
func (w Wad) Div(o Wad) (Wad, error) {
	if o.val().Sign() == 0 {
		return Wad{}, ErrDivisionByZero
	}
	v := new(big.Int).Mul(w.val(), scale)
	return Wad{v: v.Quo(v, o.val())}, nil
}

// Pow returns w raised to the integer power n, computed by
// square-and-multiply with truncating fixed-point multiplication.
// Pow(0) is 1.0.
func (w Wad) Pow(n uint32) Wad {
	result := One()
	base := Wad{v: new(big.Int).Set(w.val())}
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// Units returns the whole-unit part of w, truncated toward zero.
func (w Wad) Units() int64 {
	return new(big.Int).Quo(w.val(), scale).Int64()
}

// Sign returns -1, 0, or +1 depending on the sign of w.
func (w Wad) Sign() int { return w.val().Sign() }

// IsZero reports whether w is exactly zero.
func (w Wad) IsZero() bool { return w.val().Sign() == 0 }

// Cmp compares w and o, returning -1, 0, or +1.
func (w Wad) Cmp(o Wad) int { return w.val().Cmp(o.val()) }

// String renders w as a decimal string with trailing fractional zeros
// trimmed, e.g. "12.5" or "0.000000000000000001".
func (w Wad) String() string {
	v := w.val()
	neg := v.Sign() < 0
	abs := new(big.Int).Abs(v)
	whole, frac := new(big.Int).QuoRem(abs, scale, new(big.Int))

	s := whole.String()
	if frac.Sign() != 0 {
		digits := frac.String()
		for len(digits) < Decimals {
			digits = "0" + digits
		}
		s += "." + strings.TrimRight(digits, "0")
	}
	if neg {
		s = "-" + s
	}
	return s
}
