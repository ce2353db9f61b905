package contract

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/ledger"
)

// MemStore is the in-memory reference implementation of Store. It is the
// default backend for tests and short-lived embeddings; the storage package
// provides durable backends with the same contract.
type MemStore struct {
	mu          sync.Mutex
	contract    *ContractData
	balance     *ledger.Balance
	investments map[uuid.UUID]*Investment
	claims      map[uuid.UUID]claims.State
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		investments: make(map[uuid.UUID]*Investment),
		claims:      make(map[uuid.UUID]claims.State),
	}
}

// ContractData returns a copy of the contract singleton.
func (s *MemStore) ContractData() (*ContractData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contract == nil {
		return nil, ErrNotInitialized
	}
	return cloneContractData(s.contract), nil
}

// Balance returns a copy of the balance singleton, zero if never written.
func (s *MemStore) Balance() (*ledger.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance == nil {
		return &ledger.Balance{}, nil
	}
	cp := *s.balance
	return &cp, nil
}

// Investment returns a copy of one investment record.
func (s *MemStore) Investment(handle uuid.UUID) (*Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[handle]
	if !ok {
		return nil, ErrNotFound
	}
	return inv.clone(), nil
}

// Investments returns copies of every investment record.
func (s *MemStore) Investments() ([]*Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Investment, 0, len(s.investments))
	for _, inv := range s.investments {
		out = append(out, inv.clone())
	}
	return out, nil
}

// Claim returns the claim state for one handle.
func (s *MemStore) Claim(handle uuid.UUID) (claims.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[handle]
	if !ok {
		return claims.State{}, ErrNotFound
	}
	return c, nil
}

// Claims returns a copy of the claim map.
func (s *MemStore) Claims() (map[uuid.UUID]claims.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]claims.State, len(s.claims))
	for h, c := range s.claims {
		out[h] = c
	}
	return out, nil
}

// Commit applies the write set under the store lock.
func (s *MemStore) Commit(ws *WriteSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws.Contract != nil {
		s.contract = cloneContractData(ws.Contract)
	}
	if ws.Balance != nil {
		cp := *ws.Balance
		s.balance = &cp
	}
	for h, inv := range ws.Investments {
		s.investments[h] = inv.clone()
	}
	for h, c := range ws.Claims {
		s.claims[h] = c
	}
	return nil
}

// cloneContractData copies the singleton including its tier table.
func cloneContractData(cd *ContractData) *ContractData {
	cp := *cd
	cp.Config.CommissionTiers = append(ledger.TierTable(nil), cd.Config.CommissionTiers...)
	return &cp
}
