package core

import "context"

// Store defines the contract for the desk's key/value persistence.
// Values are opaque to the store; callers own serialization.
// There are no transactions and no atomicity across keys.
type Store interface {
	// Get returns the raw value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// Watchable is implemented by stores that can report changes, including
// changes made by other processes sharing the same backing storage.
type Watchable interface {
	// Watch emits events for keys matching pattern (doublestar syntax) until
	// ctx is cancelled, then closes the channel.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by stores holding OS resources.
type Closer interface {
	Close() error
}
