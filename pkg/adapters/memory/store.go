// Package memory implements core.Store in process memory. It backs
// tab-local desks and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/atcdesk/pkg/core"
)

type watcher struct {
	pattern string
	ch      chan core.Event
}

// Store is a concurrency-safe map store that notifies watchers in-process.
type Store struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[*watcher]struct{}
	readOnly bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data:     make(map[string]string),
		watchers: make(map[*watcher]struct{}),
	}
}

// NewReadOnly creates a store seeded with data that rejects writes.
func NewReadOnly(data map[string]string) *Store {
	s := New()
	for k, v := range data {
		s.data[k] = v
	}
	s.readOnly = true
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.mu.Lock()
	_, existed := s.data[key]
	s.data[key] = value
	s.mu.Unlock()

	typ := core.EventCreate
	if existed {
		typ = core.EventModify
	}
	s.notify(ctx, core.Event{Type: typ, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.notify(ctx, core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Watch implements core.Watchable. Events are dropped for a watcher whose
// buffer is full rather than blocking writers.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	w := &watcher{pattern: pattern, ch: make(chan core.Event, 64)}

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		close(w.ch)
		s.mu.Unlock()
	}()
	return w.ch, nil
}

func (s *Store) notify(ctx context.Context, e core.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for w := range s.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.Key); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Keys     int  `json:"keys"`
	Watchers int  `json:"watchers"`
	ReadOnly bool `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{Keys: len(s.data), Watchers: len(s.watchers), ReadOnly: s.readOnly}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var (
	_ core.Store                   = (*Store)(nil)
	_ core.Watchable               = (*Store)(nil)
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
)
