package core

import "errors"

// Common errors.
var (
	ErrReadOnly         = errors.New("store is in read-only mode")
	ErrUnknownList      = errors.New("unknown note list")
	ErrUnauthenticated  = errors.New("session is not authenticated")
	ErrInvalidSquawk    = errors.New("invalid squawk code")
	ErrWatchUnsupported = errors.New("store does not support watching")
	ErrNotConfigured    = errors.New("not configured")
)
