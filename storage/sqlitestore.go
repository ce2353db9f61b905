package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/contract"
	"github.com/fundlock/libinvest-go/ledger"
)

// schema creates the record tables. The singletons are single-row tables;
// the check constraint keeps them that way.
const schema = `
CREATE TABLE IF NOT EXISTS contract_records (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS balance_records (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS investments (
	handle TEXT PRIMARY KEY,
	data   BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS claim_records (
	handle TEXT PRIMARY KEY,
	data   BLOB NOT NULL
);
`

// SQLiteStore persists contract state in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface check.
var _ contract.Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens or creates the SQLite database at dbPath and
// applies the schema.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// ContractData returns the contract singleton.
func (s *SQLiteStore) ContractData() (*contract.ContractData, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM contract_records WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read contract record: %w", err)
	}
	cd := &contract.ContractData{}
	if err := decodeGob(data, cd); err != nil {
		return nil, fmt.Errorf("storage: decode contract record: %w", err)
	}
	return cd, nil
}

// Balance returns the balance singleton, zero when none has been written.
func (s *SQLiteStore) Balance() (*ledger.Balance, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM balance_records WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return &ledger.Balance{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read balance record: %w", err)
	}
	bal := &ledger.Balance{}
	if err := decodeGob(data, bal); err != nil {
		return nil, fmt.Errorf("storage: decode balance record: %w", err)
	}
	return bal, nil
}

// Investment returns one investment by handle.
func (s *SQLiteStore) Investment(handle uuid.UUID) (*contract.Investment, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM investments WHERE handle = ?`, handle.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read investment %s: %w", handle, err)
	}
	inv := &contract.Investment{}
	if err := decodeGob(data, inv); err != nil {
		return nil, fmt.Errorf("storage: decode investment %s: %w", handle, err)
	}
	return inv, nil
}

// Investments returns every investment record.
func (s *SQLiteStore) Investments() ([]*contract.Investment, error) {
	rows, err := s.db.Query(`SELECT data FROM investments`)
	if err != nil {
		return nil, fmt.Errorf("storage: list investments: %w", err)
	}
	defer rows.Close()

	var out []*contract.Investment
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("storage: scan investment: %w", err)
		}
		inv := &contract.Investment{}
		if err := decodeGob(data, inv); err != nil {
			return nil, fmt.Errorf("storage: decode investment: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list investments: %w", err)
	}
	return out, nil
}

// Claim returns the claim state for a handle.
func (s *SQLiteStore) Claim(handle uuid.UUID) (claims.State, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM claim_records WHERE handle = ?`, handle.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return claims.State{}, contract.ErrNotFound
	}
	if err != nil {
		return claims.State{}, fmt.Errorf("storage: read claim %s: %w", handle, err)
	}
	var st claims.State
	if err := decodeGob(data, &st); err != nil {
		return claims.State{}, fmt.Errorf("storage: decode claim %s: %w", handle, err)
	}
	return st, nil
}

// Claims returns the claim state of every investment.
func (s *SQLiteStore) Claims() (map[uuid.UUID]claims.State, error) {
	rows, err := s.db.Query(`SELECT handle, data FROM claim_records`)
	if err != nil {
		return nil, fmt.Errorf("storage: list claims: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]claims.State)
	for rows.Next() {
		var (
			raw  string
			data []byte
		)
		if err := rows.Scan(&raw, &data); err != nil {
			return nil, fmt.Errorf("storage: scan claim: %w", err)
		}
		handle, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("storage: claim key %q: %w", raw, err)
		}
		var st claims.State
		if err := decodeGob(data, &st); err != nil {
			return nil, fmt.Errorf("storage: decode claim %s: %w", handle, err)
		}
		out[handle] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list claims: %w", err)
	}
	return out, nil
}

// Commit writes the staged records in one SQL transaction.
func (s *SQLiteStore) Commit(ws *contract.WriteSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin commit: %w", err)
	}
	defer tx.Rollback()

	upsertSingleton := func(table string, v interface{}) error {
		data, err := encodeGob(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", table, err)
		}
		_, err = tx.Exec(`INSERT INTO `+table+` (id, data) VALUES (1, ?)
			ON CONFLICT (id) DO UPDATE SET data = excluded.data`, data)
		if err != nil {
			return fmt.Errorf("put %s: %w", table, err)
		}
		return nil
	}

	if ws.Contract != nil {
		if err := upsertSingleton("contract_records", ws.Contract); err != nil {
			return err
		}
	}
	if ws.Balance != nil {
		if err := upsertSingleton("balance_records", ws.Balance); err != nil {
			return err
		}
	}
	for handle, inv := range ws.Investments {
		data, err := encodeGob(inv)
		if err != nil {
			return fmt.Errorf("storage: encode investment %s: %w", handle, err)
		}
		_, err = tx.Exec(`INSERT INTO investments (handle, data) VALUES (?, ?)
			ON CONFLICT (handle) DO UPDATE SET data = excluded.data`, handle.String(), data)
		if err != nil {
			return fmt.Errorf("storage: put investment %s: %w", handle, err)
		}
	}
	for handle, st := range ws.Claims {
		data, err := encodeGob(&st)
		if err != nil {
			return fmt.Errorf("storage: encode claim %s: %w", handle, err)
		}
		_, err = tx.Exec(`INSERT INTO claim_records (handle, data) VALUES (?, ?)
			ON CONFLICT (handle) DO UPDATE SET data = excluded.data`, handle.String(), data)
		if err != nil {
			return fmt.Errorf("storage: put claim %s: %w", handle, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}
