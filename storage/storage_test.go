package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/config"
	"github.com/fundlock/libinvest-go/contract"
	"github.com/fundlock/libinvest-go/ledger"
	"github.com/fundlock/libinvest-go/schedule"
)

// closableStore is what both durable backends provide.
type closableStore interface {
	contract.Store
	Close() error
}

// backends opens each durable implementation against a fresh path, so the
// same conformance checks run over both.
var backends = []struct {
	name string
	open func(t *testing.T, path string) closableStore
}{
	{
		name: "bolt",
		open: func(t *testing.T, path string) closableStore {
			s, err := OpenBoltStore(path)
			require.NoError(t, err)
			return s
		},
	},
	{
		name: "sqlite",
		open: func(t *testing.T, path string) closableStore {
			s, err := OpenSQLiteStore(path)
			require.NoError(t, err)
			return s
		},
	},
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Owner = "GOWNER"
	cfg.ProjectAddress = "GPROJECT"
	cfg.Asset = "USDF"
	cfg.Goal = 100000
	cfg.MinInvestment = 1000
	return cfg
}

func sampleInvestment(t *testing.T, investor string, deposited int64) (*contract.Investment, claims.State) {
	t.Helper()
	rate, err := testConfig().Rate()
	require.NoError(t, err)
	sched, err := schedule.Build(deposited, rate, 12, schedule.ReverseLoan)
	require.NoError(t, err)
	_, _, interest := schedule.Totals(sched)

	createdAt := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inv := &contract.Investment{
		Handle:             uuid.New(),
		Investor:           investor,
		Deposited:          deposited,
		Commission:         deposited / 40,
		Interest:           interest,
		Total:              deposited + interest,
		Schedule:           sched,
		RemainingPrincipal: deposited,
		Status:             contract.Claimable,
		CreatedAt:          createdAt,
	}
	claim := claims.NewState(createdAt, 0, 30*24*time.Hour, len(sched), sched[0].Amount)
	return inv, claim
}

func TestStore_EmptyState(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t, filepath.Join(t.TempDir(), "contract.db"))
			defer s.Close()

			_, err := s.ContractData()
			assert.ErrorIs(t, err, contract.ErrNotInitialized)

			bal, err := s.Balance()
			require.NoError(t, err)
			assert.Zero(t, bal.Sum())

			_, err = s.Investment(uuid.New())
			assert.ErrorIs(t, err, contract.ErrNotFound)
			_, err = s.Claim(uuid.New())
			assert.ErrorIs(t, err, contract.ErrNotFound)

			invs, err := s.Investments()
			require.NoError(t, err)
			assert.Empty(t, invs)

			cls, err := s.Claims()
			require.NoError(t, err)
			assert.Empty(t, cls)
		})
	}
}

func TestStore_CommitAndReopen(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "contract.db")
			s := backend.open(t, path)

			first, firstClaim := sampleInvestment(t, "GALICE", 9750)
			second, secondClaim := sampleInvestment(t, "GBOB", 4850)

			ws := contract.NewWriteSet()
			ws.Contract = &contract.ContractData{Config: testConfig(), State: contract.Active}
			ws.Balance = &ledger.Balance{Reserve: 500, Project: 9250, Commission: 250, ReceivedSoFar: 9750}
			ws.PutInvestment(first, firstClaim)
			ws.PutInvestment(second, secondClaim)
			require.NoError(t, s.Commit(ws))
			require.NoError(t, s.Close())

			// Everything staged must survive a close and reopen.
			s = backend.open(t, path)
			defer s.Close()

			cd, err := s.ContractData()
			require.NoError(t, err)
			assert.Equal(t, contract.Active, cd.State)
			assert.Equal(t, testConfig(), cd.Config)
			assert.False(t, cd.Paused)

			bal, err := s.Balance()
			require.NoError(t, err)
			assert.Equal(t, *ws.Balance, *bal)

			got, err := s.Investment(first.Handle)
			require.NoError(t, err)
			assert.Equal(t, first, got)

			claim, err := s.Claim(first.Handle)
			require.NoError(t, err)
			assert.Equal(t, firstClaim, claim)

			invs, err := s.Investments()
			require.NoError(t, err)
			assert.Len(t, invs, 2)

			cls, err := s.Claims()
			require.NoError(t, err)
			assert.Len(t, cls, 2)
			assert.Equal(t, secondClaim, cls[second.Handle])
		})
	}
}

func TestStore_CommitOverwrites(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t, filepath.Join(t.TempDir(), "contract.db"))
			defer s.Close()

			inv, claim := sampleInvestment(t, "GALICE", 9750)
			ws := contract.NewWriteSet()
			ws.Contract = &contract.ContractData{Config: testConfig(), State: contract.Active}
			ws.Balance = &ledger.Balance{Reserve: 500}
			ws.PutInvestment(inv, claim)
			require.NoError(t, s.Commit(ws))

			// A later operation advances the claim and drains reserve.
			claim.PeriodsRemaining--
			claim.NextDue = claim.NextDue.Add(30 * 24 * time.Hour)
			inv.PeriodsPaid = 1
			inv.Paid = inv.Schedule[0].Amount
			inv.Status = contract.CashFlowing

			update := contract.NewWriteSet()
			update.Balance = &ledger.Balance{Reserve: 100, Payments: 400}
			update.PutInvestment(inv, claim)
			require.NoError(t, s.Commit(update))

			bal, err := s.Balance()
			require.NoError(t, err)
			assert.Equal(t, int64(100), bal.Reserve)
			assert.Equal(t, int64(400), bal.Payments)

			got, err := s.Investment(inv.Handle)
			require.NoError(t, err)
			assert.Equal(t, 1, got.PeriodsPaid)
			assert.Equal(t, contract.CashFlowing, got.Status)

			gotClaim, err := s.Claim(inv.Handle)
			require.NoError(t, err)
			assert.Equal(t, claim.PeriodsRemaining, gotClaim.PeriodsRemaining)
			assert.True(t, claim.NextDue.Equal(gotClaim.NextDue))

			// Untouched singletons stay put.
			cd, err := s.ContractData()
			require.NoError(t, err)
			assert.Equal(t, contract.Active, cd.State)
		})
	}
}

// TestStore_EngineRestart drives the engine against a durable backend,
// restarts it, and claims against the reloaded state.
func TestStore_EngineRestart(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "contract.db")
			ctx := context.Background()
			clock := &contract.ManualClock{
				Current: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			}
			registry := contract.NewMemoryRegistry()
			balances := map[string]int64{"GALICE": 100000, "GOWNER": 100000}
			assets := &contract.MockAssets{
				TransferFn: func(_ context.Context, from, to string, amount int64) error {
					balances[from] -= amount
					balances[to] += amount
					return nil
				},
			}
			deps := contract.Deps{
				Store: backend.open(t, path), Assets: assets,
				Handles: registry, Clock: clock,
			}

			engine, err := contract.New(testConfig(), deps)
			require.NoError(t, err)
			inv, err := engine.Invest(ctx, "GALICE", 10000)
			require.NoError(t, err)
			require.NoError(t, engine.AddCompanyTransfer(ctx, "GOWNER", 20000))
			require.NoError(t, deps.Store.(closableStore).Close())

			// Restart: a new engine over the same file sees the investment.
			deps.Store = backend.open(t, path)
			defer deps.Store.(closableStore).Close()
			engine, err = contract.New(config.Config{}, deps)
			require.NoError(t, err)

			clock.Advance(30 * 24 * time.Hour)
			paid, err := engine.Claim(ctx, "GALICE")
			require.NoError(t, err)
			assert.Equal(t, inv.Schedule[0].Amount, paid)

			got, err := engine.Investment(inv.Handle)
			require.NoError(t, err)
			assert.Equal(t, 1, got.PeriodsPaid)
		})
	}
}
