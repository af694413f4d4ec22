// Package store persists found vanity addresses in a local leveldb
// database. The search engine never writes here itself; the web and CLI
// layers store exactly one record per found result.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goleveldb "github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const recordPrefix = "vanity:"

// ErrNotFound is returned when no record exists for an address.
var ErrNotFound = errors.New("record not found")

// Record is one persisted vanity address result.
type Record struct {
	Address    string    `json:"address"`
	PrivateKey string    `json:"private_key"`
	WIF        string    `json:"wif,omitempty"`
	Prefix     string    `json:"prefix,omitempty"`
	Suffix     string    `json:"suffix,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Created    time.Time `json:"created"`
}

// Store is a leveldb-backed record store.
type Store struct {
	path  string
	lvldb *goleveldb.DB
}

// Open opens (or creates) the database at path, recovering a corrupted
// database instead of failing outright.
func Open(path string) (*Store, error) {
	db, err := goleveldb.OpenFile(path, &opt.Options{})
	if dberrors.IsCorrupted(err) {
		db, err = goleveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open record store %q: %w", path, err)
	}
	return &Store{path: path, lvldb: db}, nil
}

// Close flushes pending data and closes the database.
func (s *Store) Close() error {
	return s.lvldb.Close()
}

// Put writes a record, keyed by its address. Overwriting an existing
// address is harmless: the derivation is deterministic, so the record
// content would be identical.
func (s *Store) Put(rec *Record) error {
	if rec.Created.IsZero() {
		rec.Created = time.Now().UTC()
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.lvldb.Put(recordKey(rec.Address), value, nil)
}

// Get retrieves the record stored for an address.
func (s *Store) Get(address string) (*Record, error) {
	value, err := s.lvldb.Get(recordKey(address), nil)
	if errors.Is(err, dberrors.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all persisted records in key order.
func (s *Store) List() ([]*Record, error) {
	var records []*Record

	iter := s.lvldb.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

func recordKey(address string) []byte {
	return []byte(recordPrefix + address)
}
