package desk

import (
	"log/slog"
	"time"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Config carries the optional collaborators of a Desk.
type Config struct {
	Logger    *slog.Logger
	Now       func() time.Time
	Presets   core.Presets
	News      core.NewsItem
	Fetcher   core.PlanFetcher
	Publisher core.PlanPublisher
	Validator core.TokenValidator
	LoginURL  string
}

// Option configures a Desk.
type Option func(*Config)

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithClock replaces time.Now for plan timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

// WithPresets sets the strings the copier hands out.
func WithPresets(p core.Presets) Option {
	return func(c *Config) { c.Presets = p }
}

// WithNews sets the news panel.
func WithNews(item core.NewsItem) Option {
	return func(c *Config) { c.News = item }
}

// WithFetcher enables the remote flight plan path.
func WithFetcher(f core.PlanFetcher) Option {
	return func(c *Config) { c.Fetcher = f }
}

// WithPublisher broadcasts every saved plan.
func WithPublisher(p core.PlanPublisher) Option {
	return func(c *Config) { c.Publisher = p }
}

// WithSession enables the session guard.
func WithSession(v core.TokenValidator, loginURL string) Option {
	return func(c *Config) {
		c.Validator = v
		c.LoginURL = loginURL
	}
}

func defaultConfig() Config {
	return Config{
		Logger:  slog.Default(),
		Now:     time.Now,
		Presets: core.DefaultPresets(),
		News:    core.DefaultNews(),
	}
}
