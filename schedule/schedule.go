// Package schedule generates deterministic per-period return schedules for
// an investment: an amortizing annuity (ReverseLoan) or interest-only
// payments with a final principal lump sum (Coupon).
//
// All arithmetic is 18-decimal fixed point with truncation toward zero.
// Truncation remainders are absorbed into the final installment so that the
// principal components across the whole schedule always sum to exactly the
// original principal.
package schedule

import (
	"github.com/fundlock/libinvest-go/wad"
)

// ReturnType selects the payout model for an investment.
type ReturnType uint32

const (
	// ReverseLoan amortizes principal and interest into equal periodic
	// installments.
	ReverseLoan ReturnType = 1

	// Coupon pays interest only each period and returns the whole
	// principal with the final payment.
	Coupon ReturnType = 2
)

// Valid reports whether rt is a recognized return type.
func (rt ReturnType) Valid() bool {
	return rt == ReverseLoan || rt == Coupon
}

// String returns the canonical name of the return type.
func (rt ReturnType) String() string {
	switch rt {
	case ReverseLoan:
		return "reverse_loan"
	case Coupon:
		return "coupon"
	}
	return "unknown"
}

// ParseReturnType converts a canonical name into a ReturnType.
func ParseReturnType(s string) (ReturnType, error) {
	switch s {
	case "reverse_loan":
		return ReverseLoan, nil
	case "coupon":
		return Coupon, nil
	}
	return 0, ErrInvalidReturnType
}

// Installment is one scheduled payment. Amount = Principal + Interest.
type Installment struct {
	Amount    int64
	Principal int64
	Interest  int64
}

// Totals sums the amount, principal, and interest columns of a schedule.
func Totals(installments []Installment) (amount, principal, interest int64) {
	for _, ins := range installments {
		amount += ins.Amount
		principal += ins.Principal
		interest += ins.Interest
	}
	return amount, principal, interest
}

// Build produces the ordered payment schedule for an investment. The result
// has exactly term entries and depends only on the inputs: identical inputs
// always yield an identical schedule.
//
// Returns ErrInvalidAmount if principal or term is not positive,
// ErrInvalidRate if ratePerPeriod is not positive, and ErrInvalidReturnType
// for an unrecognized return type.
func Build(principal int64, ratePerPeriod wad.Wad, term int, returnType ReturnType) ([]Installment, error) {
	if principal <= 0 || term <= 0 {
		return nil, ErrInvalidAmount
	}
	if ratePerPeriod.Sign() <= 0 {
		return nil, ErrInvalidRate
	}

	switch returnType {
	case ReverseLoan:
		return buildReverseLoan(principal, ratePerPeriod, term)
	case Coupon:
		return buildCoupon(principal, ratePerPeriod, term), nil
	}
	return nil, ErrInvalidReturnType
}

// buildReverseLoan computes the annuity schedule
//
//	installment = principal × rate / (1 − (1+rate)^−term)
//
// then decomposes each installment into principal and interest against the
// running balance. The final installment pays off the remaining balance
// exactly, absorbing every truncation remainder.
func buildReverseLoan(principal int64, rate wad.Wad, term int) ([]Installment, error) {
	onePlus := wad.One().Add(rate)
	factor, err := wad.One().Div(onePlus.Pow(uint32(term)))
	if err != nil {
		return nil, err
	}
	denominator := wad.One().Sub(factor)
	installmentW, err := wad.FromUnits(principal).Mul(rate).Div(denominator)
	if err != nil {
		return nil, err
	}
	installment := installmentW.Units()

	out := make([]Installment, term)
	balance := principal
	for k := range out {
		interest := wad.FromUnits(balance).Mul(rate).Units()
		if k == term-1 {
			out[k] = Installment{
				Amount:    balance + interest,
				Principal: balance,
				Interest:  interest,
			}
			balance = 0
			continue
		}
		repaid := installment - interest
		if repaid > balance {
			// Cannot amortize more than remains.
			repaid = balance
		}
		out[k] = Installment{
			Amount:    repaid + interest,
			Principal: repaid,
			Interest:  interest,
		}
		balance -= repaid
	}
	return out, nil
}

// buildCoupon pays floor(principal × rate) each period; the final payment
// adds the entire principal so the total returned is exact regardless of
// rounding in earlier periods.
func buildCoupon(principal int64, rate wad.Wad, term int) []Installment {
	interest := wad.FromUnits(principal).Mul(rate).Units()

	out := make([]Installment, term)
	for k := range out {
		out[k] = Installment{Amount: interest, Interest: interest}
	}
	out[term-1].Amount += principal
	out[term-1].Principal = principal
	return out
}
