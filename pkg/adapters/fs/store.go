// Package fs implements core.Store with one file per key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/atcdesk/pkg/core"
)

// DefaultStoreDir is the directory under the data path that holds key files.
const DefaultStoreDir = "store"

// Store implements core.Store on the local filesystem.
type Store struct {
	Path   string
	dir    string
	cache  *cache
	config Config

	mu            sync.RWMutex
	readOnly      bool
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	StoreDir     string // e.g. "store"
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // watcher runtime errors
}

// NewStore creates a new filesystem-backed store. Call Initialize before use.
func NewStore(config Config) *Store {
	if config.StoreDir == "" {
		config.StoreDir = DefaultStoreDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Store{
		Path:     config.Path,
		dir:      filepath.Join(config.Path, config.StoreDir),
		cache:    newCache(),
		config:   config,
		readOnly: config.ReadOnly,
	}
}

// Initialize ensures the data directory exists.
// In read-only mode nothing is created.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.readOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			if s.readOnly && !s.config.MustExist {
				return nil
			}
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		if s.readOnly {
			return nil
		}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

func (s *Store) fileFor(key string) string {
	return filepath.Join(s.dir, encodeKey(key))
}

// Get reads the value for key, serving it from cache while the file is unchanged.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key cannot be empty")
	}
	path := s.fileFor(key)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		s.cache.Delete(key)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if v, ok := s.cache.Get(key, info.ModTime()); ok {
		return v, true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	value := string(data)
	s.cache.Set(key, cacheEntry{Value: value, LastModified: info.ModTime()})
	return value, true, nil
}

// Set writes value atomically.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.isReadOnly() {
		return core.ErrReadOnly
	}
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	path := s.fileFor(key)
	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		s.cache.Set(key, cacheEntry{Value: value, LastModified: info.ModTime()})
	} else {
		s.cache.Delete(key)
	}
	s.config.Logger.Debug("store write", "key", key, "bytes", len(value))
	return nil
}

// Delete removes the file for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.isReadOnly() {
		return core.ErrReadOnly
	}
	s.cache.Delete(key)
	err := os.Remove(s.fileFor(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys, skipping temp files and names that do not decode.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || s.ignoreName(e.Name()) {
			continue
		}
		key, err := decodeKey(e.Name())
		if err != nil {
			s.config.Logger.Warn("skipping unreadable key file", "name", e.Name(), "error", err)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements core.Closer. The filesystem store holds no handles
// outside running watchers, which stop with their context.
func (s *Store) Close() error {
	return nil
}

func (s *Store) ignoreName(name string) bool {
	return strings.HasPrefix(name, TempFilePrefix) || strings.HasPrefix(name, ".")
}

func (s *Store) isReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readOnly
}

var (
	_ core.Store     = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
	_ core.Closer    = (*Store)(nil)
)
