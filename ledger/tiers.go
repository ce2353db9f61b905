package ledger

import (
	"github.com/fundlock/libinvest-go/wad"
)

// Tier is one bracket of the progressive commission schedule: the rate
// applies to contributions of at least MinAmount.
type Tier struct {
	MinAmount int64 `toml:"min_amount"`
	RateBps   int64 `toml:"rate_bps"`
}

// TierTable is the ordered progressive commission schedule. The applicable
// rate for a contribution is the rate of the highest bracket whose
// MinAmount does not exceed the contribution. The policy is entirely
// table-driven; nothing about the brackets is hardcoded elsewhere.
type TierTable []Tier

// DefaultTierTable returns the standard commission schedule: larger
// contributions pay a lower rate, stepping down from 3% to 0.5%.
func DefaultTierTable() TierTable {
	return TierTable{
		{MinAmount: 0, RateBps: 300},
		{MinAmount: 10000, RateBps: 250},
		{MinAmount: 50000, RateBps: 200},
		{MinAmount: 100000, RateBps: 150},
		{MinAmount: 500000, RateBps: 100},
		{MinAmount: 1000000, RateBps: 50},
	}
}

// Validate checks that the table is non-empty, starts at MinAmount 0,
// has strictly ascending brackets, and keeps every rate below 100%.
func (t TierTable) Validate() error {
	if len(t) == 0 {
		return ErrInvalidTierTable
	}
	if t[0].MinAmount != 0 {
		return ErrInvalidTierTable
	}
	for i, tier := range t {
		if tier.RateBps < 0 || tier.RateBps >= BpsDenominator {
			return ErrInvalidTierTable
		}
		if i > 0 && tier.MinAmount <= t[i-1].MinAmount {
			return ErrInvalidTierTable
		}
	}
	return nil
}

// RateFor returns the commission rate for a contribution of the given
// amount as an 18-decimal fixed-point ratio.
func (t TierTable) RateFor(amount int64) (wad.Wad, error) {
	if err := t.Validate(); err != nil {
		return wad.Wad{}, err
	}
	rateBps := t[0].RateBps
	for _, tier := range t {
		if amount < tier.MinAmount {
			break
		}
		rateBps = tier.RateBps
	}
	return wad.FromRatio(rateBps, BpsDenominator)
}
