package desk

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Frequency keeps the selected frequency and its display in sync.
type Frequency struct {
	mu      *sync.Mutex
	store   core.Store
	surface core.FrequencySurface
	shown   string
}

func newFrequency(mu *sync.Mutex, store core.Store, surface core.FrequencySurface) *Frequency {
	return &Frequency{mu: mu, store: store, surface: surface}
}

// Select displays value and persists it.
func (f *Frequency) Select(ctx context.Context, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectLocked(ctx, value)
}

func (f *Frequency) selectLocked(ctx context.Context, value string) error {
	f.surface.SetFrequencyDisplay(value)
	f.shown = value
	if err := f.store.Set(ctx, core.KeyFrequency, value); err != nil {
		return fmt.Errorf("persist frequency: %w", err)
	}
	return nil
}

// Current returns the persisted frequency, empty when none was chosen.
func (f *Frequency) Current(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, _, err := f.store.Get(ctx, core.KeyFrequency)
	return value, err
}

// Load restores the persisted frequency into the dropdown and display.
// Nothing happens when no frequency was saved.
func (f *Frequency) Load(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok, err := f.store.Get(ctx, core.KeyFrequency)
	if err != nil || !ok || value == "" {
		return err
	}
	f.restoreLocked(value)
	return nil
}

// refresh follows a change of the persisted frequency without writing.
func (f *Frequency) refresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok, err := f.store.Get(ctx, core.KeyFrequency)
	if err != nil || !ok || value == "" || value == f.shown {
		return err
	}
	f.restoreLocked(value)
	return nil
}

func (f *Frequency) restoreLocked(value string) {
	f.surface.SetSelectedFrequency(value)
	f.surface.SetFrequencyDisplay(value)
	f.shown = value
}
