// Package bolt implements core.Store on a single-file bbolt database.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	bolt "go.etcd.io/bbolt"

	"github.com/aretw0/atcdesk/pkg/core"
)

// DefaultFile is the database file name under the data path.
const DefaultFile = "atcdesk.db"

var bucketKV = []byte("kv")

// Config holds the configuration for the bbolt store.
type Config struct {
	Path     string // database file
	ReadOnly bool
	Timeout  time.Duration // how long to wait for the file lock
}

// Store implements core.Store on bbolt. bbolt locks the file, so one process
// owns it at a time; this store is therefore not watchable.
type Store struct {
	db       *bolt.DB
	path     string
	readOnly bool
}

// Open opens (or creates) the database and its bucket.
func Open(cfg Config) (*Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("bolt store path is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	if !cfg.ReadOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: cfg.Timeout, ReadOnly: cfg.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !cfg.ReadOnly {
		if err := db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketKV)
			return err
		}); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &Store{db: db, path: path, readOnly: cfg.ReadOnly}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		// Seek instead of Get so an empty value still counts as present.
		k, raw := b.Cursor().Seek([]byte(key))
		if k == nil || !bytes.Equal(k, []byte(key)) {
			return nil
		}
		// raw is only valid inside the transaction.
		value, ok = string(raw), true
		return nil
	})
	return value, ok, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if key == "" {
		return errors.New("key cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKV).Put([]byte(key), []byte(value))
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKV).Delete([]byte(key))
	})
}

// Keys returns keys in byte order, which bbolt keeps sorted.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Keys     int    `json:"keys"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	n := 0
	_ = s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketKV); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return StoreState{Path: s.path, ReadOnly: s.readOnly, Keys: n}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "bolt-store"
}

var (
	_ core.Store                   = (*Store)(nil)
	_ core.Closer                  = (*Store)(nil)
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
)
