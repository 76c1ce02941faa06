package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/atcdesk/pkg/core"
)

// options holds the internal configuration for a desk and its store.
type options struct {
	store        core.Store
	logger       *slog.Logger
	adapter      string
	readOnly     bool
	mustExist    bool
	forceTemp    bool
	devSafety    bool
	errorHandler func(error)

	clock      func() time.Time
	presets    *core.Presets
	news       *core.NewsItem
	remoteURL  string
	cacheTTL   time.Duration
	httpClient *http.Client
	publisher  core.PlanPublisher
	authURL    string
	loginURL   string
}

// Option configures Open and New.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		devSafety: true,
	}
}

// WithLogger sets the logger for the store and the desk.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore injects a ready store; the adapter options are then ignored.
func WithStore(s core.Store) Option {
	return func(o *options) { o.store = s }
}

// WithAdapter selects the store backend by name: "fs" (default), "bolt" or
// "memory".
func WithAdapter(name string) Option {
	return func(o *options) { o.adapter = name }
}

// WithReadOnly opens the store read-only. Writes return core.ErrReadOnly and
// the dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) { o.readOnly = enabled }
}

// WithMustExist fails instead of creating a missing data directory.
func WithMustExist(must bool) Option {
	return func(o *options) { o.mustExist = must }
}

// WithForceTemp re-roots the data directory into the temp dir.
func WithForceTemp(force bool) Option {
	return func(o *options) { o.forceTemp = force }
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
// Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) { o.devSafety = enabled }
}

// WithWatcherErrorHandler receives runtime errors from store watchers.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) { o.errorHandler = fn }
}

// WithClock replaces time.Now for flight plan timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithPresets sets the strings the clipboard helpers copy.
func WithPresets(p core.Presets) Option {
	return func(o *options) { o.presets = &p }
}

// WithNews sets the news panel.
func WithNews(item core.NewsItem) Option {
	return func(o *options) { o.news = &item }
}

// WithRemoteURL enables the remote flight plan endpoint.
func WithRemoteURL(url string) Option {
	return func(o *options) { o.remoteURL = url }
}

// WithRemoteCacheTTL caches a successful remote fetch for ttl.
func WithRemoteCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// WithHTTPClient sets the client used for remote calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithPublisher broadcasts saved plans.
func WithPublisher(p core.PlanPublisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithAuth enables the session guard against authURL, sending rejected
// users to loginURL.
func WithAuth(authURL, loginURL string) Option {
	return func(o *options) {
		o.authURL = authURL
		o.loginURL = loginURL
	}
}
