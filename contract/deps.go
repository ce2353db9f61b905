package contract

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fundlock/libinvest-go/validation"
)

// AssetTransferer moves the configured fungible asset between accounts.
// Implementations report an error when the payer's balance is insufficient;
// the engine aborts the enclosing operation on any transfer failure.
type AssetTransferer interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// HandleRegistry issues one opaque handle per investment and tracks its
// current owner. Ownership may change hands outside the engine; OwnerOf is
// the authority consulted for payouts and self-service claims.
type HandleRegistry interface {
	Mint(ctx context.Context, owner string) (uuid.UUID, error)
	OwnerOf(ctx context.Context, handle uuid.UUID) (string, error)
}

// Authorizer answers the owner-capability check guarding admin operations.
type Authorizer interface {
	IsOwner(caller string) bool
}

// Clock supplies the single timestamp read per public operation.
type Clock interface {
	Now() time.Time
}

// OwnerAuthorizer authorizes exactly one fixed owner address.
type OwnerAuthorizer struct {
	Owner string
}

// IsOwner reports whether caller is the configured owner.
func (a OwnerAuthorizer) IsOwner(caller string) bool {
	return validation.Authorized(caller, a.Owner) == nil
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// MemoryRegistry is an in-process HandleRegistry issuing random UUID
// handles. Suitable for tests and single-process embeddings.
type MemoryRegistry struct {
	mu     sync.Mutex
	owners map[uuid.UUID]string
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{owners: make(map[uuid.UUID]string)}
}

// Mint issues a fresh handle owned by owner.
func (r *MemoryRegistry) Mint(_ context.Context, owner string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle := uuid.New()
	r.owners[handle] = owner
	return handle, nil
}

// OwnerOf returns the current owner of handle.
func (r *MemoryRegistry) OwnerOf(_ context.Context, handle uuid.UUID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[handle]
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

// SetOwner reassigns a handle, mirroring an external ownership transfer.
func (r *MemoryRegistry) SetOwner(handle uuid.UUID, owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[handle] = owner
}
