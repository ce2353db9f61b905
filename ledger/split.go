package ledger

import (
	"github.com/fundlock/libinvest-go/wad"
)

// BpsDenominator converts basis points to a ratio (10000 bps = 100%).
const BpsDenominator = 10000

// Split is the exact three-way partition of one contribution.
// Commission + Reserve + Project always equals the original amount.
type Split struct {
	Commission int64
	Reserve    int64
	Project    int64
}

// Net returns the invested amount net of commission (reserve + project).
func (s Split) Net() int64 {
	return s.Reserve + s.Project
}

// ComputeSplit partitions amount into commission, reserve, and project
// credits. The commission rate comes from the progressive tier table, the
// reserve rate is fixed. Both products truncate toward zero in 18-decimal
// fixed point; the project credit takes the remainder, so the three parts
// sum to amount exactly.
func ComputeSplit(amount int64, tiers TierTable, reserveRateBps int64) (Split, error) {
	if amount <= 0 {
		return Split{}, ErrInvalidAmount
	}
	if reserveRateBps < 0 || reserveRateBps >= BpsDenominator {
		return Split{}, ErrRateTooHigh
	}

	commissionRate, err := tiers.RateFor(amount)
	if err != nil {
		return Split{}, err
	}
	reserveRate, err := wad.FromRatio(reserveRateBps, BpsDenominator)
	if err != nil {
		return Split{}, err
	}

	amountW := wad.FromUnits(amount)
	commission := amountW.Mul(commissionRate).Units()
	reserve := amountW.Mul(reserveRate).Units()
	project := amount - commission - reserve
	if project < 0 {
		return Split{}, ErrRateTooHigh
	}

	return Split{Commission: commission, Reserve: reserve, Project: project}, nil
}
