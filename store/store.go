// Package store keeps the wallet session snapshot in a small BadgerDB, the
// CLI's counterpart of browser session storage.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger"

	"github.com/oderahub/stackpledge/identity"
)

var addressesKey = []byte("session:addresses")

type Store struct {
	db *badger.DB
}

var _ identity.SnapshotStore = (*Store)(nil)

func openBadger(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithTruncate(true))
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	db, err := openBadger(path)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveAddresses(entries []identity.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(addressesKey, data)
	})
}

func (s *Store) LoadAddresses() ([]identity.Entry, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(addressesKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []identity.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("corrupted session record: %w", err)
	}
	return entries, true, nil
}

func (s *Store) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(addressesKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}
