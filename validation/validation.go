// Package validation holds the pure predicate layer consulted before any
// mutation: every check is a total function of its inputs that returns nil
// or one specific error kind, with no side effects.
package validation

import "time"

// Constructor validates the fixed contract parameters at creation time.
// Each violation maps to a distinct error wrapping
// ErrInvalidConstructorParam.
func Constructor(rateBps, goal, minInvestment int64, term int, period time.Duration, returnTypeValid bool) error {
	if rateBps <= 0 {
		return ErrZeroInterestRate
	}
	if goal <= 0 {
		return ErrZeroGoal
	}
	if minInvestment <= 0 {
		return ErrZeroMinimumInvestment
	}
	if minInvestment > goal {
		return ErrMinimumAboveGoal
	}
	if term <= 0 {
		return ErrZeroTerm
	}
	if period <= 0 {
		return ErrZeroPeriod
	}
	if !returnTypeValid {
		return ErrUnsupportedReturnType
	}
	return nil
}

// InvestAmount validates a contribution against the configured minimum.
func InvestAmount(amount, minimum int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount < minimum {
		return ErrBelowMinimumInvestment
	}
	return nil
}

// GoalNotExceeded validates that crediting netAmount keeps cumulative
// principal within the funding goal. Hitting the goal exactly is allowed.
func GoalNotExceeded(receivedSoFar, netAmount, goal int64) error {
	if receivedSoFar+netAmount > goal {
		return ErrGoalExceeded
	}
	return nil
}

// NotPaused validates the pause gate.
func NotPaused(paused bool) error {
	if paused {
		return ErrContractPaused
	}
	return nil
}

// Authorized validates that caller holds the owner capability.
func Authorized(caller, owner string) error {
	if caller == "" || caller != owner {
		return ErrUnauthorized
	}
	return nil
}
