package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockAssets is a test double for AssetTransferer.
type MockAssets struct {
	TransferFn func(ctx context.Context, from, to string, amount int64) error
}

func (m *MockAssets) Transfer(ctx context.Context, from, to string, amount int64) error {
	return m.TransferFn(ctx, from, to, amount)
}

// MockHandles is a test double for HandleRegistry.
type MockHandles struct {
	MintFn    func(ctx context.Context, owner string) (uuid.UUID, error)
	OwnerOfFn func(ctx context.Context, handle uuid.UUID) (string, error)
}

func (m *MockHandles) Mint(ctx context.Context, owner string) (uuid.UUID, error) {
	return m.MintFn(ctx, owner)
}

func (m *MockHandles) OwnerOf(ctx context.Context, handle uuid.UUID) (string, error) {
	return m.OwnerOfFn(ctx, handle)
}

// ManualClock is a Clock whose time only moves when the test moves it.
type ManualClock struct {
	Current time.Time
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.Current }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }
