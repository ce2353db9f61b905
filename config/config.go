// Package config defines the immutable per-contract configuration: rates,
// funding goal, term, payout model, and the commission schedule. A Config
// is set once at contract creation and never recomputed.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fundlock/libinvest-go/ledger"
	"github.com/fundlock/libinvest-go/schedule"
	"github.com/fundlock/libinvest-go/validation"
	"github.com/fundlock/libinvest-go/wad"
)

// Config holds the fixed parameters of one contract instance.
// Amounts are integer base units of the configured asset; rates are basis
// points (10000 = 100%).
type Config struct {
	Owner          string `toml:"owner"`
	ProjectAddress string `toml:"project_address"`
	Asset          string `toml:"asset"`

	RateBps        int64  `toml:"rate_bps"` // interest per period
	Goal           int64  `toml:"goal"`
	MinInvestment  int64  `toml:"min_investment"`
	TermPeriods    int    `toml:"term_periods"`
	PeriodSeconds  int64  `toml:"period_seconds"`
	ClaimDelayDays int64  `toml:"claim_delay_days"`
	ReturnType     string `toml:"return_type"` // "reverse_loan" or "coupon"

	ReserveRateBps  int64            `toml:"reserve_rate_bps"`
	CommissionTiers ledger.TierTable `toml:"commission_tiers"`
}

// Default returns a configuration with the standard reserve rate,
// commission schedule, and a monthly period. Addresses and amounts must be
// filled in by the caller.
func Default() Config {
	return Config{
		RateBps:         100, // 1% per period
		TermPeriods:     12,
		PeriodSeconds:   int64((30 * 24 * time.Hour).Seconds()),
		ReturnType:      schedule.ReverseLoan.String(),
		ReserveRateBps:  500, // 5%
		CommissionTiers: ledger.DefaultTierTable(),
	}
}

// Period returns the period length as a duration.
func (c Config) Period() time.Duration {
	return time.Duration(c.PeriodSeconds) * time.Second
}

// ClaimDelay returns the window before the first period may be claimed.
func (c Config) ClaimDelay() time.Duration {
	return time.Duration(c.ClaimDelayDays) * 24 * time.Hour
}

// Rate returns the per-period interest rate as an 18-decimal fixed-point
// ratio.
func (c Config) Rate() (wad.Wad, error) {
	return wad.FromRatio(c.RateBps, ledger.BpsDenominator)
}

// ParsedReturnType parses the configured payout model.
func (c Config) ParsedReturnType() (schedule.ReturnType, error) {
	return schedule.ParseReturnType(c.ReturnType)
}

// Validate checks every constructor parameter and returns the first
// violation. Valid configurations are safe to hand to the engine.
func (c Config) Validate() error {
	if c.Owner == "" {
		return ErrEmptyOwner
	}
	if c.ProjectAddress == "" {
		return ErrEmptyProjectAddress
	}
	if c.Asset == "" {
		return ErrEmptyAsset
	}
	rt, err := c.ParsedReturnType()
	if err != nil {
		return validation.ErrUnsupportedReturnType
	}
	if err := validation.Constructor(c.RateBps, c.Goal, c.MinInvestment,
		c.TermPeriods, c.Period(), rt.Valid()); err != nil {
		return err
	}
	if c.ClaimDelayDays < 0 {
		return ErrNegativeClaimDelay
	}
	if c.ReserveRateBps < 0 || c.ReserveRateBps >= ledger.BpsDenominator {
		return ledger.ErrRateTooHigh
	}
	return c.CommissionTiers.Validate()
}

// Load reads a TOML configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, ErrConfigNotFound
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating or replacing the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
