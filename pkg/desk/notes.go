package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/typed"
)

// NoNotesPlaceholder is rendered for an empty note list.
const NoNotesPlaceholder = "No notes added yet."

// InputKind tells which input a key event came from.
type InputKind int

const (
	AddInput InputKind = iota
	EditInput
)

// KeyEvent is a keystroke delivered by the host.
type KeyEvent struct {
	Key      string
	Input    InputKind
	List     core.ListID
	Position int    // EditInput only
	Value    string // current input text
}

// Notes manages the three note lists.
type Notes struct {
	mu      *sync.Mutex
	store   core.Store
	surface core.NoteSurface
	logger  *slog.Logger
	editing map[core.ListID]map[int]bool
}

func newNotes(mu *sync.Mutex, store core.Store, surface core.NoteSurface, logger *slog.Logger) *Notes {
	return &Notes{
		mu:      mu,
		store:   store,
		surface: surface,
		logger:  logger,
		editing: make(map[core.ListID]map[int]bool),
	}
}

func (n *Notes) key(id core.ListID) (typed.Key[[]string], error) {
	if !slices.Contains(core.NoteLists, id) {
		return typed.Key[[]string]{}, fmt.Errorf("%w: %q", core.ErrUnknownList, id)
	}
	return typed.NewKey[[]string](n.store, string(id)), nil
}

// load never fails on bad data: a corrupt list reads as empty.
func (n *Notes) load(ctx context.Context, id core.ListID) ([]string, error) {
	key, err := n.key(id)
	if err != nil {
		return nil, err
	}
	notes, err := key.Load(ctx)
	if errors.Is(err, typed.ErrCorrupt) {
		n.logger.Warn("treating corrupt note list as empty", "list", id, "error", err)
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []string{}
	}
	return notes, nil
}

func (n *Notes) save(ctx context.Context, id core.ListID, notes []string) error {
	key, err := n.key(id)
	if err != nil {
		return err
	}
	return key.Store(ctx, notes)
}

// List returns the notes of a list, empty when missing or unreadable.
func (n *Notes) List(ctx context.Context, id core.ListID) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.load(ctx, id)
}

// Add appends text to a list. Whitespace-only text is ignored and reported
// as added == false.
func (n *Notes) Add(ctx context.Context, id core.ListID, text string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	notes, err := n.load(ctx, id)
	if err != nil {
		return false, err
	}
	notes = append(notes, text)
	if err := n.save(ctx, id, notes); err != nil {
		return false, err
	}
	n.surface.ClearInput(id)
	n.rerender(id, notes)
	return true, nil
}

// Remove deletes the note at pos. A position outside the current list is a
// no-op, since the caller may be acting on a stale render.
func (n *Notes) Remove(ctx context.Context, id core.ListID, pos int) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.remove(ctx, id, pos)
}

func (n *Notes) remove(ctx context.Context, id core.ListID, pos int) (bool, error) {
	notes, err := n.load(ctx, id)
	if err != nil {
		return false, err
	}
	if pos < 0 || pos >= len(notes) {
		n.logger.Debug("ignoring stale note position", "list", id, "position", pos, "len", len(notes))
		return false, nil
	}
	notes = slices.Delete(notes, pos, pos+1)
	if err := n.save(ctx, id, notes); err != nil {
		return false, err
	}
	n.rerender(id, notes)
	return true, nil
}

// BeginEdit puts the note at pos into edit state. Edit state is view-only.
func (n *Notes) BeginEdit(ctx context.Context, id core.ListID, pos int) (bool, error) {
	return n.setEditing(ctx, id, pos, true)
}

// CancelEdit leaves edit state without touching the stored note.
func (n *Notes) CancelEdit(ctx context.Context, id core.ListID, pos int) (bool, error) {
	return n.setEditing(ctx, id, pos, false)
}

func (n *Notes) setEditing(ctx context.Context, id core.ListID, pos int, on bool) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notes, err := n.load(ctx, id)
	if err != nil {
		return false, err
	}
	if pos < 0 || pos >= len(notes) {
		return false, nil
	}
	if on {
		if n.editing[id] == nil {
			n.editing[id] = make(map[int]bool)
		}
		n.editing[id][pos] = true
	} else {
		delete(n.editing[id], pos)
	}
	n.render(id, notes)
	return true, nil
}

// CommitEdit replaces the note at pos with text and leaves edit state.
// Empty text removes the note instead.
func (n *Notes) CommitEdit(ctx context.Context, id core.ListID, pos int, text string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return n.remove(ctx, id, pos)
	}
	notes, err := n.load(ctx, id)
	if err != nil {
		return false, err
	}
	if pos < 0 || pos >= len(notes) {
		n.logger.Debug("ignoring stale note position", "list", id, "position", pos, "len", len(notes))
		return false, nil
	}
	notes[pos] = text
	if err := n.save(ctx, id, notes); err != nil {
		return false, err
	}
	delete(n.editing[id], pos)
	n.render(id, notes)
	return true, nil
}

// Editing reports whether the note at pos is in edit state.
func (n *Notes) Editing(id core.ListID, pos int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.editing[id][pos]
}

// HandleKey routes Enter from an add-input to Add and from an edit-input to
// CommitEdit. preventDefault is true whenever the key was consumed.
func (n *Notes) HandleKey(ctx context.Context, ev KeyEvent) (preventDefault bool, err error) {
	if ev.Key != "Enter" {
		return false, nil
	}
	switch ev.Input {
	case AddInput:
		_, err = n.Add(ctx, ev.List, ev.Value)
	case EditInput:
		_, err = n.CommitEdit(ctx, ev.List, ev.Position, ev.Value)
	default:
		return false, nil
	}
	return true, err
}

// Render redraws one list from the store.
func (n *Notes) Render(ctx context.Context, id core.ListID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	notes, err := n.load(ctx, id)
	if err != nil {
		return err
	}
	n.render(id, notes)
	return nil
}

// RenderAll redraws every list.
func (n *Notes) RenderAll(ctx context.Context) error {
	var errs []error
	for _, id := range core.NoteLists {
		if err := n.Render(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// rerender follows a structural change: positions may have shifted, so any
// edit state on the list is dropped.
func (n *Notes) rerender(id core.ListID, notes []string) {
	delete(n.editing, id)
	n.render(id, notes)
}

func (n *Notes) render(id core.ListID, notes []string) {
	view := core.NoteListView{}
	if len(notes) == 0 {
		view.Placeholder = NoNotesPlaceholder
	} else {
		view.Items = make([]core.NoteItem, len(notes))
		for i, text := range notes {
			view.Items[i] = core.NoteItem{Position: i, Text: text, Editing: n.editing[id][i]}
		}
	}
	n.surface.RenderNotes(id, view)
}

func (n *Notes) editingCount() int {
	c := 0
	for _, m := range n.editing {
		c += len(m)
	}
	return c
}
