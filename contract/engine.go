// Package contract is the top-level coordinator of the investment engine.
// It composes the validation, ledger, schedule, and claims components into
// the public operations — invest, claim, payment processing, balance
// movements, pause control — and enforces all-or-nothing semantics per
// call: state is read at call start, mutated on copies, and persisted in a
// single atomic commit only after every check and external transfer has
// succeeded.
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/config"
	"github.com/fundlock/libinvest-go/ledger"
	"github.com/fundlock/libinvest-go/schedule"
	"github.com/fundlock/libinvest-go/validation"
)

// DefaultLookahead is the convenience window for reserve shortfall checks.
const DefaultLookahead = 7 * 24 * time.Hour

// DefaultEscrowAddress is the account name used for the contract's own
// asset holdings when none is configured.
const DefaultEscrowAddress = "contract"

// Deps are the external collaborators the engine consumes. Store, Assets,
// and Handles are required; Auth defaults to an OwnerAuthorizer for the
// configured owner, Clock to the system clock, and EscrowAddress to
// DefaultEscrowAddress.
type Deps struct {
	Store         Store
	Assets        AssetTransferer
	Handles       HandleRegistry
	Auth          Authorizer
	Clock         Clock
	EscrowAddress string
}

// Engine is the contract orchestrator. All methods are safe for the
// run-to-completion execution model the host provides: one call at a time
// against the same store.
type Engine struct {
	store   Store
	assets  AssetTransferer
	handles HandleRegistry
	auth    Authorizer
	clock   Clock
	escrow  string
}

// New creates or reopens a contract instance. On first use the
// configuration is validated and persisted; on reopen the stored
// configuration wins, since contract parameters are immutable after
// creation.
func New(cfg config.Config, deps Deps) (*Engine, error) {
	if deps.Store == nil || deps.Assets == nil || deps.Handles == nil {
		return nil, ErrNilDependency
	}

	e := &Engine{
		store:   deps.Store,
		assets:  deps.Assets,
		handles: deps.Handles,
		auth:    deps.Auth,
		clock:   deps.Clock,
		escrow:  deps.EscrowAddress,
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.escrow == "" {
		e.escrow = DefaultEscrowAddress
	}

	existing, err := deps.Store.ContractData()
	switch {
	case err == nil:
		if e.auth == nil {
			e.auth = OwnerAuthorizer{Owner: existing.Config.Owner}
		}
		return e, nil
	case errors.Is(err, ErrNotInitialized):
		// First use: create the singletons.
	default:
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if e.auth == nil {
		e.auth = OwnerAuthorizer{Owner: cfg.Owner}
	}

	ws := NewWriteSet()
	ws.Contract = &ContractData{Config: cfg, State: Active}
	ws.Balance = &ledger.Balance{}
	if err := deps.Store.Commit(ws); err != nil {
		return nil, err
	}
	return e, nil
}

// requireOwner runs the owner-capability check guarding admin operations.
func (e *Engine) requireOwner(caller string) error {
	if !e.auth.IsOwner(caller) {
		return validation.ErrUnauthorized
	}
	return nil
}

// transfer calls the asset collaborator and wraps failures so a caller can
// match ErrTransferFailed.
func (e *Engine) transfer(ctx context.Context, from, to string, amount int64) error {
	if err := e.assets.Transfer(ctx, from, to, amount); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return nil
}

// Invest accepts a contribution from investor, splits it across the
// commission, reserve, and project buckets, generates the return schedule,
// and persists the new investment with its claim state. Returns the created
// investment record, whose handle identifies it from then on.
//
// When the cumulative net principal reaches the funding goal the contract
// transitions to FundsReached and further investments fail with
// ErrGoalExceeded.
func (e *Engine) Invest(ctx context.Context, investor string, amount int64) (*Investment, error) {
	cd, err := e.store.ContractData()
	if err != nil {
		return nil, err
	}
	cfg := cd.Config

	if err := validation.NotPaused(cd.Paused); err != nil {
		return nil, err
	}
	if err := validation.InvestAmount(amount, cfg.MinInvestment); err != nil {
		return nil, err
	}
	if cd.State == FundsReached {
		return nil, validation.ErrGoalExceeded
	}

	split, err := ledger.ComputeSplit(amount, cfg.CommissionTiers, cfg.ReserveRateBps)
	if err != nil {
		return nil, err
	}
	bal, err := e.store.Balance()
	if err != nil {
		return nil, err
	}
	if err := validation.GoalNotExceeded(bal.ReceivedSoFar, split.Net(), cfg.Goal); err != nil {
		return nil, err
	}

	rate, err := cfg.Rate()
	if err != nil {
		return nil, err
	}
	returnType, err := cfg.ParsedReturnType()
	if err != nil {
		return nil, err
	}
	sched, err := schedule.Build(split.Net(), rate, cfg.TermPeriods, returnType)
	if err != nil {
		return nil, err
	}

	if err := e.transfer(ctx, investor, e.escrow, amount); err != nil {
		return nil, err
	}
	handle, err := e.handles.Mint(ctx, investor)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	status := Claimable
	if cfg.ClaimDelay() > 0 {
		status = Blocked
	}
	_, _, interest := schedule.Totals(sched)
	inv := &Investment{
		Handle:             handle,
		Investor:           investor,
		Deposited:          split.Net(),
		Commission:         split.Commission,
		Interest:           interest,
		Total:              split.Net() + interest,
		Schedule:           sched,
		RemainingPrincipal: split.Net(),
		Status:             status,
		CreatedAt:          now,
	}
	claim := claims.NewState(now, cfg.ClaimDelay(), cfg.Period(), cfg.TermPeriods, sched[0].Amount)

	bal.ApplyInvest(split)

	ws := NewWriteSet()
	ws.Balance = bal
	ws.PutInvestment(inv, claim)
	if bal.ReceivedSoFar >= cfg.Goal {
		cd.State = FundsReached
		ws.Contract = cd
	}
	if err := e.store.Commit(ws); err != nil {
		return nil, err
	}
	return inv.clone(), nil
}

// Claim pays investor every period that has matured across all investments
// they currently own, with catch-up semantics for periods skipped since the
// last claim. Returns the total amount paid out. Matured periods whose
// installment is zero are still settled, so the schedule keeps moving even
// when nothing changes hands.
//
// Fails validation.ErrInvalidTokenID when the caller owns no investment,
// claims.ErrNotYetClaimable when every owned investment is still inside its
// block window, and claims.ErrPaymentNotYetDue when nothing has matured
// yet.
func (e *Engine) Claim(ctx context.Context, investor string) (int64, error) {
	cd, err := e.store.ContractData()
	if err != nil {
		return 0, err
	}
	if err := validation.NotPaused(cd.Paused); err != nil {
		return 0, err
	}

	invs, err := e.store.Investments()
	if err != nil {
		return 0, err
	}
	now := e.clock.Now()
	period := cd.Config.Period()
	delay := cd.Config.ClaimDelay()

	ws := NewWriteSet()
	var total int64
	var owned, settled, blocked int
	for _, inv := range invs {
		owner, err := e.handles.OwnerOf(ctx, inv.Handle)
		if err != nil {
			return 0, err
		}
		if owner != investor {
			continue
		}
		owned++

		if inv.Status == Blocked && now.Before(inv.CreatedAt.Add(delay)) {
			blocked++
			continue
		}
		claim, err := e.store.Claim(inv.Handle)
		if err != nil {
			return 0, err
		}
		due, elapsed, err := claim.Advance(now, period, inv.PendingAmounts())
		if err != nil {
			return 0, err
		}
		if elapsed == 0 {
			continue
		}
		settled += elapsed
		inv.applyPayment(due, elapsed)
		ws.PutInvestment(inv, claim)
		total += due
	}
	if owned == 0 {
		return 0, validation.ErrInvalidTokenID
	}
	if settled == 0 {
		if blocked > 0 {
			return 0, claims.ErrNotYetClaimable
		}
		return 0, claims.ErrPaymentNotYetDue
	}

	if total > 0 {
		bal, err := e.store.Balance()
		if err != nil {
			return 0, err
		}
		if err := bal.ApplyPaymentToInvestor(total); err != nil {
			return 0, err
		}
		if err := e.transfer(ctx, e.escrow, investor, total); err != nil {
			return 0, err
		}
		ws.Balance = bal
	}
	if err := e.store.Commit(ws); err != nil {
		return 0, err
	}
	return total, nil
}

// ProcessInvestorPayment settles exactly one matured period of one
// investment and pays the current handle owner. Admin-authorized: the
// original investor need not be the caller. Unlike Claim it never catches
// up: an investment several periods behind takes one call per period.
// Fails claims.ErrNotYetClaimable inside the block window and
// claims.ErrPaymentNotYetDue when no period has matured.
func (e *Engine) ProcessInvestorPayment(ctx context.Context, caller string, handle uuid.UUID) (*Investment, error) {
	cd, err := e.store.ContractData()
	if err != nil {
		return nil, err
	}
	if err := e.requireOwner(caller); err != nil {
		return nil, err
	}
	if err := validation.NotPaused(cd.Paused); err != nil {
		return nil, err
	}

	inv, err := e.store.Investment(handle)
	if errors.Is(err, ErrNotFound) {
		return nil, validation.ErrInvalidTokenID
	}
	if err != nil {
		return nil, err
	}
	recipient, err := e.handles.OwnerOf(ctx, handle)
	if errors.Is(err, ErrNotFound) {
		return nil, validation.ErrInvalidTokenID
	}
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if inv.Status == Blocked && now.Before(inv.CreatedAt.Add(cd.Config.ClaimDelay())) {
		return nil, claims.ErrNotYetClaimable
	}

	claim, err := e.store.Claim(handle)
	if err != nil {
		return nil, err
	}
	due, elapsed, err := claim.AdvanceOne(now, cd.Config.Period(), inv.PendingAmounts())
	if err != nil {
		return nil, err
	}
	if elapsed == 0 {
		return nil, claims.ErrPaymentNotYetDue
	}

	ws := NewWriteSet()
	if due > 0 {
		bal, err := e.store.Balance()
		if err != nil {
			return nil, err
		}
		if err := bal.ApplyPaymentToInvestor(due); err != nil {
			return nil, err
		}
		if err := e.transfer(ctx, e.escrow, recipient, due); err != nil {
			return nil, err
		}
		ws.Balance = bal
	}

	inv.applyPayment(due, elapsed)
	ws.PutInvestment(inv, claim)
	if err := e.store.Commit(ws); err != nil {
		return nil, err
	}
	return inv.clone(), nil
}

// SingleWithdraw pays amount from the project balance to the configured
// project address. Admin-authorized and pause-gated.
func (e *Engine) SingleWithdraw(ctx context.Context, caller string, amount int64) error {
	cd, err := e.store.ContractData()
	if err != nil {
		return err
	}
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if err := validation.NotPaused(cd.Paused); err != nil {
		return err
	}

	bal, err := e.store.Balance()
	if err != nil {
		return err
	}
	if err := bal.ApplyWithdrawal(amount); err != nil {
		return err
	}
	if err := e.transfer(ctx, e.escrow, cd.Config.ProjectAddress, amount); err != nil {
		return err
	}

	ws := NewWriteSet()
	ws.Balance = bal
	return e.store.Commit(ws)
}

// AddCompanyTransfer deposits external funds from the caller into the
// reserve. Admin-authorized.
func (e *Engine) AddCompanyTransfer(ctx context.Context, caller string, amount int64) error {
	if _, err := e.store.ContractData(); err != nil {
		return err
	}
	if err := e.requireOwner(caller); err != nil {
		return err
	}

	bal, err := e.store.Balance()
	if err != nil {
		return err
	}
	if err := bal.ApplyCompanyTransfer(amount); err != nil {
		return err
	}
	if err := e.transfer(ctx, caller, e.escrow, amount); err != nil {
		return err
	}

	ws := NewWriteSet()
	ws.Balance = bal
	return e.store.Commit(ws)
}

// MoveFundsToReserve moves amount from the project balance to the reserve.
// Admin-authorized; purely internal, no external transfer.
func (e *Engine) MoveFundsToReserve(caller string, amount int64) error {
	if _, err := e.store.ContractData(); err != nil {
		return err
	}
	if err := e.requireOwner(caller); err != nil {
		return err
	}

	bal, err := e.store.Balance()
	if err != nil {
		return err
	}
	if err := bal.ApplyMoveToReserve(amount); err != nil {
		return err
	}

	ws := NewWriteSet()
	ws.Balance = bal
	return e.store.Commit(ws)
}

// ContractBalance returns the current balance record. Admin-authorized,
// read-only, and available while paused.
func (e *Engine) ContractBalance(caller string) (*ledger.Balance, error) {
	if _, err := e.store.ContractData(); err != nil {
		return nil, err
	}
	if err := e.requireOwner(caller); err != nil {
		return nil, err
	}
	return e.store.Balance()
}

// CheckReserveBalance reports how much the reserve is short of covering
// every claim maturing within the lookahead window. A non-positive
// lookahead selects DefaultLookahead. Read-only and available while
// paused.
func (e *Engine) CheckReserveBalance(caller string, lookahead time.Duration) (int64, error) {
	if _, err := e.store.ContractData(); err != nil {
		return 0, err
	}
	if err := e.requireOwner(caller); err != nil {
		return 0, err
	}
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}

	claimMap, err := e.store.Claims()
	if err != nil {
		return 0, err
	}
	bal, err := e.store.Balance()
	if err != nil {
		return 0, err
	}

	now := e.clock.Now()
	var dueSoon int64
	for _, claim := range claimMap {
		if claim.DueWithin(now, lookahead) {
			dueSoon += claim.PerPeriod
		}
	}
	if shortfall := dueSoon - bal.Reserve; dueSoon > 0 && shortfall > 0 {
		return shortfall, nil
	}
	return 0, nil
}

// Investment returns one investment record by handle.
func (e *Engine) Investment(handle uuid.UUID) (*Investment, error) {
	inv, err := e.store.Investment(handle)
	if errors.Is(err, ErrNotFound) {
		return nil, validation.ErrInvalidTokenID
	}
	return inv, err
}

// Pause closes the gate for Invest, Claim, ProcessInvestorPayment, and
// SingleWithdraw. Admin-authorized.
func (e *Engine) Pause(caller string) error {
	cd, err := e.store.ContractData()
	if err != nil {
		return err
	}
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if cd.Paused {
		return ErrAlreadyPaused
	}
	cd.Paused = true

	ws := NewWriteSet()
	ws.Contract = cd
	return e.store.Commit(ws)
}

// Unpause reopens the gate. Admin-authorized.
func (e *Engine) Unpause(caller string) error {
	cd, err := e.store.ContractData()
	if err != nil {
		return err
	}
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if !cd.Paused {
		return ErrNotPaused
	}
	cd.Paused = false

	ws := NewWriteSet()
	ws.Contract = cd
	return e.store.Commit(ws)
}
