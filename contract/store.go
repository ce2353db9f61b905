package contract

import (
	"github.com/google/uuid"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/ledger"
)

// Store is the persistence surface for one contract instance: the
// ContractData and Balance singletons plus the two parallel maps keyed by
// investment handle.
//
// Readers must receive independent copies — the engine mutates what it
// reads and persists only through Commit. Commit applies the whole write
// set atomically: either every staged record lands or none does.
type Store interface {
	// ContractData returns the contract singleton, or ErrNotInitialized
	// if the contract has not been created yet.
	ContractData() (*ContractData, error)

	// Balance returns the balance singleton. A contract that has seen no
	// balance activity yet reports a zero balance.
	Balance() (*ledger.Balance, error)

	// Investment returns one investment by handle, or ErrNotFound.
	Investment(handle uuid.UUID) (*Investment, error)

	// Investments returns every investment record, in no particular order.
	Investments() ([]*Investment, error)

	// Claim returns the claim state for a handle, or ErrNotFound.
	Claim(handle uuid.UUID) (claims.State, error)

	// Claims returns the claim state of every investment.
	Claims() (map[uuid.UUID]claims.State, error)

	// Commit atomically persists every record staged in the write set.
	Commit(ws *WriteSet) error
}

// WriteSet stages the records one public operation intends to persist.
// Nil singletons are left untouched by Commit.
type WriteSet struct {
	Contract    *ContractData
	Balance     *ledger.Balance
	Investments map[uuid.UUID]*Investment
	Claims      map[uuid.UUID]claims.State
}

// NewWriteSet returns an empty write set.
func NewWriteSet() *WriteSet {
	return &WriteSet{
		Investments: make(map[uuid.UUID]*Investment),
		Claims:      make(map[uuid.UUID]claims.State),
	}
}

// PutInvestment stages an investment record and its claim state.
func (ws *WriteSet) PutInvestment(inv *Investment, claim claims.State) {
	ws.Investments[inv.Handle] = inv
	ws.Claims[inv.Handle] = claim
}
