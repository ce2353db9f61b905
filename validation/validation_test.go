package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstructor(t *testing.T) {
	month := 30 * 24 * time.Hour

	tests := []struct {
		name    string
		rate    int64
		goal    int64
		min     int64
		term    int
		period  time.Duration
		rtValid bool
		wantErr error
	}{
		{"valid", 100, 100000, 1000, 12, month, true, nil},
		{"zero rate", 0, 100000, 1000, 12, month, true, ErrZeroInterestRate},
		{"negative rate", -1, 100000, 1000, 12, month, true, ErrZeroInterestRate},
		{"zero goal", 100, 0, 1000, 12, month, true, ErrZeroGoal},
		{"zero minimum", 100, 100000, 0, 12, month, true, ErrZeroMinimumInvestment},
		{"minimum above goal", 100, 1000, 1001, 12, month, true, ErrMinimumAboveGoal},
		{"zero term", 100, 100000, 1000, 0, month, true, ErrZeroTerm},
		{"zero period", 100, 100000, 1000, 12, 0, true, ErrZeroPeriod},
		{"bad return type", 100, 100000, 1000, 12, month, false, ErrUnsupportedReturnType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Constructor(tt.rate, tt.goal, tt.min, tt.term, tt.period, tt.rtValid)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidConstructorParam,
				"every variant must match the root kind")
		})
	}
}

func TestInvestAmount(t *testing.T) {
	assert.NoError(t, InvestAmount(1000, 1000))
	assert.NoError(t, InvestAmount(5000, 1000))
	assert.ErrorIs(t, InvestAmount(999, 1000), ErrBelowMinimumInvestment)
	assert.ErrorIs(t, InvestAmount(0, 1000), ErrInvalidAmount)
	assert.ErrorIs(t, InvestAmount(-50, 1000), ErrInvalidAmount)
}

func TestGoalNotExceeded(t *testing.T) {
	// Exactly reaching the goal is allowed; one unit more is not.
	assert.NoError(t, GoalNotExceeded(90000, 10000, 100000))
	assert.ErrorIs(t, GoalNotExceeded(90000, 10001, 100000), ErrGoalExceeded)
	assert.NoError(t, GoalNotExceeded(0, 100000, 100000))
}

func TestNotPaused(t *testing.T) {
	assert.NoError(t, NotPaused(false))
	assert.ErrorIs(t, NotPaused(true), ErrContractPaused)
}

func TestAuthorized(t *testing.T) {
	assert.NoError(t, Authorized("owner-1", "owner-1"))
	assert.ErrorIs(t, Authorized("someone-else", "owner-1"), ErrUnauthorized)
	assert.ErrorIs(t, Authorized("", ""), ErrUnauthorized)
}
