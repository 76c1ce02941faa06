package atcdesk

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/atcdesk/internal/platform"
	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
	"github.com/aretw0/atcdesk/pkg/typed"
)

// --- Types ---

// Desk is the desk aggregate.
type Desk = desk.Desk

// Bindings are the host handles a desk renders on.
type Bindings = core.Bindings

// Key is a typed JSON view over one store key.
type Key[T any] = typed.Key[T]

// --- Configuration ---

// Option configures Open and New.
type Option = platform.Option

// WithLogger sets the logger for the store and the desk.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a ready store.
func WithStore(s core.Store) Option {
	return platform.WithStore(s)
}

// WithAdapter selects the store backend by name ("fs", "bolt", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithReadOnly opens the store read-only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails instead of creating a missing data directory.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the data directory into the temp dir.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
//
// CAUTION: disabling it lets development builds write to real data.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler receives runtime errors from store watchers.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock replaces time.Now for flight plan timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithPresets sets the strings the clipboard helpers copy.
func WithPresets(p core.Presets) Option {
	return platform.WithPresets(p)
}

// WithNews sets the news panel.
func WithNews(item core.NewsItem) Option {
	return platform.WithNews(item)
}

// WithRemoteURL enables the remote flight plan endpoint.
func WithRemoteURL(url string) Option {
	return platform.WithRemoteURL(url)
}

// WithRemoteCacheTTL caches a successful remote fetch for ttl.
func WithRemoteCacheTTL(ttl time.Duration) Option {
	return platform.WithRemoteCacheTTL(ttl)
}

// WithHTTPClient sets the client used for remote calls.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithPublisher broadcasts saved flight plans.
func WithPublisher(p core.PlanPublisher) Option {
	return platform.WithPublisher(p)
}

// WithAuth enables the session guard.
func WithAuth(authURL, loginURL string) Option {
	return platform.WithAuth(authURL, loginURL)
}

// --- Factory ---

// New opens the store at path and builds a desk bound to bindings.
func New(path string, bindings Bindings, opts ...Option) (*Desk, error) {
	return platform.New(path, bindings, opts...)
}

// Open returns the store at path without building a desk.
func Open(path string, opts ...Option) (core.Store, error) {
	return platform.Open(path, opts...)
}

// NewKey returns a typed handle on key.
func NewKey[T any](s core.Store, key string) Key[T] {
	return typed.NewKey[T](s, key)
}

// --- Utilities ---

// IsDevRun reports whether the process runs under `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// ResolveDataPath applies the dev sandbox to path.
func ResolveDataPath(path string, sandbox bool) string {
	return platform.ResolveDataPath(path, sandbox)
}

// FindRoot walks up from startDir to the nearest desk root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
