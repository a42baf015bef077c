// Package store persists the committed table state of each source in a bbolt
// database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

const bucketState = "state"

var ErrNotFound = errors.New("no saved state")

// Store holds only the database path. Every call opens the database, runs
// one transaction and closes it again, so several windows and -print runs
// can share one file without waiting on each other's lock.
type Store struct {
	path    string
	timeout time.Duration
}

// DefaultPath is the database location under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabfilter", "state.db"), nil
}

// Open creates the database and its bucket if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	s := &Store{path: path, timeout: time.Second}
	err := s.update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return s, nil
}

// Close is kept for callers that pair it with Open; the database is never
// left open between calls.
func (s *Store) Close() error {
	return nil
}

func (s *Store) open(readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(s.path, 0o644, &bolt.Options{Timeout: s.timeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", s.path, err)
	}
	return db, nil
}

func (s *Store) update(fn func(*bolt.Tx) error) (err error) {
	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, db.Close()) }()
	return db.Update(fn)
}

func (s *Store) view(fn func(*bolt.Tx) error) (err error) {
	db, err := s.open(true)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, db.Close()) }()
	return db.View(fn)
}

func bucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(bucketState))
	if b == nil {
		return nil, fmt.Errorf("bucket %q missing", bucketState)
	}
	return b, nil
}

// Save replaces the state stored under key.
func (s *Store) Save(key string, st table.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Load returns the state stored under key, or ErrNotFound.
func (s *Store) Load(key string) (table.State, error) {
	var st table.State
	err := s.view(func(tx *bolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction
		return json.Unmarshal(v, &st)
	})
	return st, err
}

func (s *Store) Delete(key string) error {
	return s.update(func(tx *bolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists every stored key in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.view(func(tx *bolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
