package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlock/libinvest-go/ledger"
	"github.com/fundlock/libinvest-go/schedule"
	"github.com/fundlock/libinvest-go/validation"
)

// valid returns a fully populated configuration that passes Validate.
func valid() Config {
	cfg := Default()
	cfg.Owner = "GOWNER"
	cfg.ProjectAddress = "GPROJECT"
	cfg.Asset = "USDF"
	cfg.Goal = 100000
	cfg.MinInvestment = 1000
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"RateBps", cfg.RateBps, int64(100)},
		{"TermPeriods", cfg.TermPeriods, 12},
		{"ReturnType", cfg.ReturnType, "reverse_loan"},
		{"ReserveRateBps", cfg.ReserveRateBps, int64(500)},
		{"Period", cfg.Period(), 30 * 24 * time.Hour},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}

	assert.Equal(t, ledger.DefaultTierTable(), cfg.CommissionTiers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"no owner", func(c *Config) { c.Owner = "" }, ErrEmptyOwner},
		{"no project address", func(c *Config) { c.ProjectAddress = "" }, ErrEmptyProjectAddress},
		{"no asset", func(c *Config) { c.Asset = "" }, ErrEmptyAsset},
		{"zero rate", func(c *Config) { c.RateBps = 0 }, validation.ErrZeroInterestRate},
		{"zero goal", func(c *Config) { c.Goal = 0 }, validation.ErrZeroGoal},
		{"zero minimum", func(c *Config) { c.MinInvestment = 0 }, validation.ErrZeroMinimumInvestment},
		{"minimum above goal", func(c *Config) { c.MinInvestment = c.Goal + 1 }, validation.ErrMinimumAboveGoal},
		{"zero term", func(c *Config) { c.TermPeriods = 0 }, validation.ErrZeroTerm},
		{"zero period", func(c *Config) { c.PeriodSeconds = 0 }, validation.ErrZeroPeriod},
		{"bad return type", func(c *Config) { c.ReturnType = "balloon" }, validation.ErrUnsupportedReturnType},
		{"negative claim delay", func(c *Config) { c.ClaimDelayDays = -1 }, ErrNegativeClaimDelay},
		{"reserve rate at 100%", func(c *Config) { c.ReserveRateBps = 10000 }, ledger.ErrRateTooHigh},
		{"bad tier table", func(c *Config) { c.CommissionTiers = ledger.TierTable{} }, ledger.ErrInvalidTierTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.toml")

	original := valid()
	original.ReturnType = schedule.Coupon.String()
	original.ClaimDelayDays = 14
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	rt, err := loaded.ParsedReturnType()
	require.NoError(t, err)
	assert.Equal(t, schedule.Coupon, rt)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRate(t *testing.T) {
	cfg := valid()
	r, err := cfg.Rate()
	require.NoError(t, err)
	assert.Equal(t, "0.01", r.String())
}
