// Package claims tracks the payment-due state machine for one investment:
// when the next scheduled payment matures, how many periods remain, and how
// much is owed when a holder catches up after skipping claims.
package claims

import "time"

// State is the claim record for one investment.
//
// NextDue is the maturity of the next unpaid period. PeriodsRemaining
// counts unpaid periods and only ever decreases, reaching exactly zero once
// the full term has been claimed. PerPeriod caches the amount of the next
// due installment for reserve lookahead scans.
type State struct {
	NextDue          time.Time
	PeriodsRemaining int
	PerPeriod        int64
}

// NewState initializes the claim state for a fresh investment. The first
// period matures one period length after creation, pushed back by an
// optional claim delay window.
func NewState(createdAt time.Time, delay, period time.Duration, term int, firstAmount int64) State {
	return State{
		NextDue:          createdAt.Add(delay).Add(period),
		PeriodsRemaining: term,
		PerPeriod:        firstAmount,
	}
}

// Done reports whether every period has been claimed.
func (s *State) Done() bool {
	return s.PeriodsRemaining == 0
}

// DueWithin reports whether the next payment matures within the lookahead
// window starting at now. Terminal claims are never due.
func (s *State) DueWithin(now time.Time, lookahead time.Duration) bool {
	return s.PeriodsRemaining > 0 && !s.NextDue.After(now.Add(lookahead))
}

// Advance settles every period that has matured by now and returns the
// total amount owed along with the number of periods settled.
//
// pending must hold the amounts of the not-yet-paid installments, oldest
// first, one per remaining period; Advance sums the first elapsed of them
// so a Coupon's final lump or an adjusted last installment is owed exactly
// when its period is settled. A caller that is many periods overdue is
// capped at PeriodsRemaining. When nothing has matured — or the claim is
// terminal — Advance returns (0, 0) and leaves the state untouched, so
// repeated early calls are harmless.
func (s *State) Advance(now time.Time, period time.Duration, pending []int64) (due int64, elapsed int, err error) {
	if s.PeriodsRemaining == 0 || now.Before(s.NextDue) {
		return 0, 0, nil
	}
	if period <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	if len(pending) != s.PeriodsRemaining {
		return 0, 0, ErrScheduleMismatch
	}

	elapsed = int(now.Sub(s.NextDue)/period) + 1
	if elapsed > s.PeriodsRemaining {
		elapsed = s.PeriodsRemaining
	}
	for _, amount := range pending[:elapsed] {
		due += amount
	}

	s.NextDue = s.NextDue.Add(time.Duration(elapsed) * period)
	s.PeriodsRemaining -= elapsed
	if s.PeriodsRemaining > 0 {
		s.PerPeriod = pending[elapsed]
	} else {
		s.PerPeriod = 0
	}
	return due, elapsed, nil
}

// AdvanceOne settles exactly the next matured period and returns the
// amount it owes. Unlike Advance it never catches up: a holder that is
// several periods behind needs one call per period. Returns elapsed == 0
// and leaves the state untouched when nothing has matured or the claim is
// terminal.
func (s *State) AdvanceOne(now time.Time, period time.Duration, pending []int64) (due int64, elapsed int, err error) {
	if s.PeriodsRemaining == 0 || now.Before(s.NextDue) {
		return 0, 0, nil
	}
	if period <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	if len(pending) != s.PeriodsRemaining {
		return 0, 0, ErrScheduleMismatch
	}

	due = pending[0]
	s.NextDue = s.NextDue.Add(period)
	s.PeriodsRemaining--
	if s.PeriodsRemaining > 0 {
		s.PerPeriod = pending[1]
	} else {
		s.PerPeriod = 0
	}
	return due, 1, nil
}
