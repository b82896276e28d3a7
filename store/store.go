// Package store demonstrates storekey's purpose: keys built with
// storekey.Append sort the same way under plain byte comparison as the
// values they were built from, so a sorted key-value store can use them
// directly, with no comparator of its own.
//
// It wraps github.com/cockroachdb/pebble, the same ordered key-value engine
// the examples this codec was grounded on use internally.
package store

import (
	"github.com/cockroachdb/pebble"

	"github.com/ordbytes/storekey/internal/errors"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("store: key not found")

// OrderedStore is a minimal ordered key-value store backed by pebble. Keys
// are expected to be storekey-encoded, so that iteration order and logical
// value order coincide; OrderedStore itself has no opinion on how keys are
// built.
type OrderedStore struct {
	db *pebble.DB
}

// Open opens (creating if necessary) a pebble database at dir and wraps it
// in an OrderedStore.
func Open(dir string) (*OrderedStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "store: open pebble database")
	}
	return &OrderedStore{db: db}, nil
}

// Close closes the underlying pebble database.
func (s *OrderedStore) Close() error {
	return s.db.Close()
}

// Set writes value under key, overwriting any existing value.
func (s *OrderedStore) Set(key, value []byte) error {
	return s.db.Set(key, value, pebble.Sync)
}

// Get returns the value stored under key, or ErrKeyNotFound if it does not
// exist.
func (s *OrderedStore) Get(key []byte) ([]byte, error) {
	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return cp, nil
}

// Delete removes key. It is not an error if key does not exist.
func (s *OrderedStore) Delete(key []byte) error {
	return s.db.Delete(key, pebble.Sync)
}

// Entry is one key-value pair visited by Scan.
type Entry struct {
	Key   []byte
	Value []byte
}

// Scan calls fn once for every key in [start, end), in ascending byte order
// — which, for storekey-encoded keys, is ascending logical order. It stops
// and returns fn's error if fn returns a non-nil error. A nil end scans to
// the end of the keyspace.
func (s *OrderedStore) Scan(start, end []byte, fn func(Entry) error) error {
	iter := s.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	defer iter.Close()

	for valid := iter.First(); valid; valid = iter.Next() {
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)
		if err := fn(Entry{Key: key, Value: value}); err != nil {
			return err
		}
	}
	return iter.Error()
}
