package contract

import (
	"time"

	"github.com/google/uuid"

	"github.com/fundlock/libinvest-go/config"
	"github.com/fundlock/libinvest-go/schedule"
)

// State is the funding state of the contract instance. FundsReached is
// terminal for new investments; payment processing continues.
type State uint32

const (
	// Active accepts new investments.
	Active State = iota + 1

	// FundsReached means cumulative principal has met the funding goal.
	FundsReached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case FundsReached:
		return "funds_reached"
	}
	return "unknown"
}

// ContractData is the persisted contract singleton: the immutable
// configuration plus the funding state and the pause gate. The pause flag
// is orthogonal to State.
type ContractData struct {
	Config config.Config
	State  State
	Paused bool
}

// Status tracks the lifecycle of one investment.
type Status uint32

const (
	// Blocked means the claim delay window has not passed yet.
	Blocked Status = iota + 1

	// Claimable means the investment is waiting for its first payment.
	Claimable

	// CashFlowing means at least one scheduled payment has been made.
	CashFlowing

	// Finished means every scheduled payment has been made. Finished
	// investments are kept as history, never deleted.
	Finished
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Blocked:
		return "blocked"
	case Claimable:
		return "claimable"
	case CashFlowing:
		return "cash_flowing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Investment is the persisted record of one contribution, identified by an
// opaque handle minted at creation. Deposited is the net principal credited
// to the contract (the contribution minus commission); the schedule is
// generated once from it and never recomputed.
type Investment struct {
	Handle   uuid.UUID
	Investor string

	Deposited  int64
	Commission int64
	Interest   int64
	Total      int64

	Schedule           []schedule.Installment
	PeriodsPaid        int
	Paid               int64
	RemainingPrincipal int64

	Status    Status
	CreatedAt time.Time
}

// PendingAmounts returns the amounts of the not-yet-paid installments,
// oldest first, in the shape claims.State.Advance expects.
func (inv *Investment) PendingAmounts() []int64 {
	pending := inv.Schedule[inv.PeriodsPaid:]
	amounts := make([]int64, len(pending))
	for i, ins := range pending {
		amounts[i] = ins.Amount
	}
	return amounts
}

// applyPayment records elapsed settled periods paying amount in total.
func (inv *Investment) applyPayment(amount int64, elapsed int) {
	for _, ins := range inv.Schedule[inv.PeriodsPaid : inv.PeriodsPaid+elapsed] {
		inv.RemainingPrincipal -= ins.Principal
	}
	inv.PeriodsPaid += elapsed
	inv.Paid += amount
	if inv.PeriodsPaid >= len(inv.Schedule) {
		inv.Status = Finished
	} else {
		inv.Status = CashFlowing
	}
}

// clone returns an independent copy of the investment, including its
// schedule.
func (inv *Investment) clone() *Investment {
	cp := *inv
	cp.Schedule = append([]schedule.Installment(nil), inv.Schedule...)
	return &cp
}
