// Package ledger owns the engine's three-way balance partition: reserve
// funds earmarked for investor payments, project funds available for
// company withdrawal, and accrued commission. Every mutation conserves
// value: nothing is created or destroyed except at the deposit/withdrawal
// boundary, and each contribution splits exactly with no fixed-point
// leakage.
package ledger

// Balance is the singleton balance record for a contract instance.
//
// The first three fields are the live buckets. The remaining fields are
// lifetime counters: ReceivedSoFar drives the funding-goal check, the
// others track boundary flows for reconciliation.
type Balance struct {
	Reserve    int64
	Project    int64
	Commission int64

	ReceivedSoFar        int64
	Payments             int64
	ReserveContributions int64
	ProjectWithdrawals   int64
	MovedToReserve       int64
}

// Sum returns reserve + project + commission.
func (b *Balance) Sum() int64 {
	return b.Reserve + b.Project + b.Commission
}

// ApplyInvest credits a contribution split into the three buckets.
// The net invested amount (reserve + project credit) counts toward the
// funding goal via ReceivedSoFar; commission does not.
func (b *Balance) ApplyInvest(s Split) {
	b.Commission += s.Commission
	b.Reserve += s.Reserve
	b.Project += s.Project
	b.ReceivedSoFar += s.Net()
}

// ApplyCompanyTransfer credits an external deposit to the reserve.
func (b *Balance) ApplyCompanyTransfer(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b.Reserve += amount
	b.ReserveContributions += amount
	return nil
}

// ApplyWithdrawal debits the project balance for a payout to the project
// address. Returns ErrInsufficientBalance if the project balance is short.
func (b *Balance) ApplyWithdrawal(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if b.Project < amount {
		return ErrInsufficientBalance
	}
	b.Project -= amount
	b.ProjectWithdrawals += amount
	return nil
}

// ApplyMoveToReserve moves funds from the project balance to the reserve.
// Returns ErrInsufficientBalance if the project balance is short.
func (b *Balance) ApplyMoveToReserve(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if b.Project < amount {
		return ErrInsufficientBalance
	}
	b.Project -= amount
	b.Reserve += amount
	b.MovedToReserve += amount
	return nil
}

// ApplyPaymentToInvestor debits the reserve for a scheduled payment.
// Returns ErrInsufficientReserveForPayment if the reserve is short; the
// caller must abort the whole payment operation in that case.
func (b *Balance) ApplyPaymentToInvestor(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if b.Reserve < amount {
		return ErrInsufficientReserveForPayment
	}
	b.Reserve -= amount
	b.Payments += amount
	return nil
}
