// Package storage provides durable backends for the contract store: a
// bbolt single-file database and a SQLite database. Both encode records
// with gob and commit each write set in one transaction.
package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/fundlock/libinvest-go/claims"
	"github.com/fundlock/libinvest-go/contract"
	"github.com/fundlock/libinvest-go/ledger"
)

var (
	bucketContract    = []byte("contract")
	bucketBalance     = []byte("balance")
	bucketInvestments = []byte("investments")
	bucketClaims      = []byte("claims")
)

// singletonKey keys the one-row buckets.
var singletonKey = []byte("v")

// BoltStore persists contract state in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ contract.Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketContract, bucketBalance, bucketInvestments, bucketClaims} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// ContractData returns the contract singleton.
func (s *BoltStore) ContractData() (*contract.ContractData, error) {
	var cd *contract.ContractData
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketContract).Get(singletonKey)
		if data == nil {
			return contract.ErrNotInitialized
		}
		cd = &contract.ContractData{}
		if err := decodeGob(data, cd); err != nil {
			return fmt.Errorf("decode contract record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cd, nil
}

// Balance returns the balance singleton, zero when none has been written.
func (s *BoltStore) Balance() (*ledger.Balance, error) {
	bal := &ledger.Balance{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBalance).Get(singletonKey)
		if data == nil {
			return nil
		}
		if err := decodeGob(data, bal); err != nil {
			return fmt.Errorf("decode balance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

// Investment returns one investment by handle.
func (s *BoltStore) Investment(handle uuid.UUID) (*contract.Investment, error) {
	var inv *contract.Investment
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketInvestments).Get(handle[:])
		if data == nil {
			return contract.ErrNotFound
		}
		inv = &contract.Investment{}
		if err := decodeGob(data, inv); err != nil {
			return fmt.Errorf("decode investment %s: %w", handle, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Investments returns every investment record.
func (s *BoltStore) Investments() ([]*contract.Investment, error) {
	var out []*contract.Investment
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketInvestments).ForEach(func(k, v []byte) error {
			inv := &contract.Investment{}
			if err := decodeGob(v, inv); err != nil {
				return fmt.Errorf("decode investment %x: %w", k, err)
			}
			out = append(out, inv)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Claim returns the claim state for a handle.
func (s *BoltStore) Claim(handle uuid.UUID) (claims.State, error) {
	var st claims.State
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketClaims).Get(handle[:])
		if data == nil {
			return contract.ErrNotFound
		}
		if err := decodeGob(data, &st); err != nil {
			return fmt.Errorf("decode claim %s: %w", handle, err)
		}
		return nil
	})
	if err != nil {
		return claims.State{}, err
	}
	return st, nil
}

// Claims returns the claim state of every investment.
func (s *BoltStore) Claims() (map[uuid.UUID]claims.State, error) {
	out := make(map[uuid.UUID]claims.State)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketClaims).ForEach(func(k, v []byte) error {
			handle, err := uuid.FromBytes(k)
			if err != nil {
				return fmt.Errorf("claim key %x: %w", k, err)
			}
			var st claims.State
			if err := decodeGob(v, &st); err != nil {
				return fmt.Errorf("decode claim %s: %w", handle, err)
			}
			out[handle] = st
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Commit writes the staged records in one bbolt transaction.
func (s *BoltStore) Commit(ws *contract.WriteSet) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if ws.Contract != nil {
			data, err := encodeGob(ws.Contract)
			if err != nil {
				return fmt.Errorf("encode contract record: %w", err)
			}
			if err := tx.Bucket(bucketContract).Put(singletonKey, data); err != nil {
				return fmt.Errorf("put contract record: %w", err)
			}
		}
		if ws.Balance != nil {
			data, err := encodeGob(ws.Balance)
			if err != nil {
				return fmt.Errorf("encode balance record: %w", err)
			}
			if err := tx.Bucket(bucketBalance).Put(singletonKey, data); err != nil {
				return fmt.Errorf("put balance record: %w", err)
			}
		}
		for handle, inv := range ws.Investments {
			data, err := encodeGob(inv)
			if err != nil {
				return fmt.Errorf("encode investment %s: %w", handle, err)
			}
			if err := tx.Bucket(bucketInvestments).Put(handle[:], data); err != nil {
				return fmt.Errorf("put investment %s: %w", handle, err)
			}
		}
		for handle, st := range ws.Claims {
			data, err := encodeGob(&st)
			if err != nil {
				return fmt.Errorf("encode claim %s: %w", handle, err)
			}
			if err := tx.Bucket(bucketClaims).Put(handle[:], data); err != nil {
				return fmt.Errorf("put claim %s: %w", handle, err)
			}
		}
		return nil
	})
}
