// Package desk implements the ATC information desk: note lists, flight
// plans, the ground chart viewer, the frequency selector and the clipboard
// helpers. A Desk is bound to a store and to the host surfaces it renders on.
//
// Every component shares the desk mutex, so a host may call in from several
// goroutines and still observe one operation at a time.
package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Desk owns one of each component.
type Desk struct {
	mu     sync.Mutex
	store  core.Store
	logger *slog.Logger

	Notes     *Notes
	Plans     *Plans
	Chart     *Chart
	Frequency *Frequency
	Copier    *Copier
	Session   *Session
	News      *News

	loadedAt time.Time
	watching bool
}

// New builds a desk over store. Nil bindings render nowhere.
func New(store core.Store, bindings core.Bindings, opts ...Option) (*Desk, error) {
	if store == nil {
		return nil, errors.New("desk: store is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	b := withDefaults(bindings)

	d := &Desk{store: store, logger: cfg.Logger}
	d.Notes = newNotes(&d.mu, store, b.Notes, cfg.Logger)
	d.Plans = newPlans(&d.mu, store, b.Plans, cfg)
	d.Chart = newChart(&d.mu, store, b.Chart, b.Frames, cfg.Logger)
	d.Frequency = newFrequency(&d.mu, store, b.Frequency)
	d.Copier = &Copier{presets: cfg.Presets, clipboard: b.Clipboard, notifier: b.Notifier, logger: cfg.Logger}
	d.Session = &Session{
		mu:        &d.mu,
		store:     store,
		validator: cfg.Validator,
		navigator: b.Navigator,
		loginURL:  cfg.LoginURL,
		logger:    cfg.Logger,
	}
	d.News = &News{item: cfg.News, surface: b.News}
	return d, nil
}

// Store returns the underlying store.
func (d *Desk) Store() core.Store { return d.store }

// Load runs the page-load sequence: chart, flight plans, notes, frequency,
// news. Every step runs even if an earlier one failed.
func (d *Desk) Load(ctx context.Context) error {
	errs := []error{
		wrap("chart", d.Chart.Load(ctx)),
		wrap("flight plans", d.Plans.RenderLocal(ctx)),
		wrap("notes", d.Notes.RenderAll(ctx)),
		wrap("frequency", d.Frequency.Load(ctx)),
	}
	d.News.Render()

	d.mu.Lock()
	d.loadedAt = time.Now()
	d.mu.Unlock()
	return errors.Join(errs...)
}

func wrap(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", step, err)
}

// Refresh re-renders whatever depends on key. Hosts call it when another
// writer changed the store. Refresh only reads, so the desk's own writes
// coming back through Watch settle after one round.
func (d *Desk) Refresh(ctx context.Context, key string) error {
	switch key {
	case core.KeyGroundChart:
		return d.Chart.refresh(ctx)
	case core.KeyFrequency:
		return d.Frequency.refresh(ctx)
	case core.KeyFlightPlans:
		return d.Plans.refresh(ctx)
	}
	if id := core.ListID(key); slices.Contains(core.NoteLists, id) {
		return d.Notes.Render(ctx, id)
	}
	return nil
}

// Watch follows store changes made by other writers and refreshes the
// affected components. Each handled event is forwarded on the returned
// channel, which closes when ctx ends. Stores that cannot be watched yield
// core.ErrWatchUnsupported.
func (d *Desk) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := d.store.(core.Watchable)
	if !ok {
		return nil, core.ErrWatchUnsupported
	}
	events, err := w.Watch(ctx, "*")
	if err != nil {
		return nil, err
	}

	out := make(chan core.Event, 16)
	d.setWatching(true)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer d.setWatching(false)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if err := d.Refresh(ctx, e.Key); err != nil {
					d.logger.Warn("refresh after store change failed", "event", e.String(), "error", err)
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		d.logger.Error("desk watcher panic", "error", err)
	}))
	return out, nil
}

func (d *Desk) setWatching(on bool) {
	d.mu.Lock()
	d.watching = on
	d.mu.Unlock()
}

// State is the introspection snapshot of a desk.
type State struct {
	Store         any       `json:"store,omitempty"`
	View          string    `json:"view"`
	Editing       int       `json:"editing"`
	ShowingRemote bool      `json:"showing_remote"`
	RemotePlans   int       `json:"remote_plans"`
	FetchedAt     time.Time `json:"fetched_at,omitzero"`
	LoadedAt      time.Time `json:"loaded_at,omitzero"`
	Watching      bool      `json:"watching"`
}

// State implements introspection.Introspectable.
func (d *Desk) State() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := State{
		View:          d.Chart.view.String(),
		Editing:       d.Notes.editingCount(),
		ShowingRemote: d.Plans.showingRemote,
		RemotePlans:   len(d.Plans.remote),
		FetchedAt:     d.Plans.fetchedAt,
		LoadedAt:      d.loadedAt,
		Watching:      d.watching,
	}
	if in, ok := d.store.(introspection.Introspectable); ok {
		s.Store = in.State()
	}
	return s
}

// ComponentType implements introspection.Component.
func (d *Desk) ComponentType() string {
	return "desk"
}

var (
	_ introspection.Introspectable = (*Desk)(nil)
	_ introspection.Component      = (*Desk)(nil)
)
