// Package typed provides type-safe JSON views over raw store keys.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/atcdesk/pkg/core"
)

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("stored value is corrupt")

// Key is a typed handle on one store key holding the JSON form of T.
type Key[T any] struct {
	store core.Store
	name  string
}

// NewKey creates a typed handle for name.
func NewKey[T any](store core.Store, name string) Key[T] {
	return Key[T]{store: store, name: name}
}

// Name returns the underlying store key.
func (k Key[T]) Name() string { return k.name }

// Load returns the decoded value, or the zero value when the key is absent.
//
// A value that fails to decode also yields the zero value; the returned error
// then wraps ErrCorrupt so callers can log it and carry on with "empty".
// Store errors are returned as-is.
func (k Key[T]) Load(ctx context.Context) (T, error) {
	var zero T
	raw, ok, err := k.store.Get(ctx, k.name)
	if err != nil {
		return zero, err
	}
	if !ok || raw == "" {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, fmt.Errorf("%w: key %s: %v", ErrCorrupt, k.name, err)
	}
	return v, nil
}

// Store encodes v and writes it under the key.
func (k Key[T]) Store(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", k.name, err)
	}
	return k.store.Set(ctx, k.name, string(data))
}

// Update loads the current value (empty when missing or corrupt), applies fn
// and stores the result. It is not atomic across processes.
func (k Key[T]) Update(ctx context.Context, fn func(T) T) (T, error) {
	cur, err := k.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return cur, err
	}
	next := fn(cur)
	return next, k.Store(ctx, next)
}

// Delete removes the key.
func (k Key[T]) Delete(ctx context.Context) error {
	return k.store.Delete(ctx, k.name)
}
