package desk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
)

func TestNotes_AddPersistsAndRenders(t *testing.T) {
	ctx := context.Background()
	d, store, rec := newDesk(t)

	added, err := d.Notes.Add(ctx, core.NotesList1, "  EZY12 pushback approved  ")
	require.NoError(t, err)
	assert.True(t, added)

	raw, ok, err := store.Get(ctx, "notesList1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["EZY12 pushback approved"]`, raw)

	view := rec.Notes[core.NotesList1]
	assert.Empty(t, view.Placeholder)
	require.Len(t, view.Items, 1)
	assert.Equal(t, core.NoteItem{Position: 0, Text: "EZY12 pushback approved"}, view.Items[0])
	assert.Equal(t, 1, rec.Cleared[core.NotesList1])
}

func TestNotes_WhitespaceIsIgnored(t *testing.T) {
	ctx := context.Background()
	d, store, rec := newDesk(t)

	added, err := d.Notes.Add(ctx, core.NotesList2, " \t\n ")
	require.NoError(t, err)
	assert.False(t, added)

	_, ok, err := store.Get(ctx, "notesList2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, rec.NoteRenders[core.NotesList2])
}

func TestNotes_ListsAreIndependent(t *testing.T) {
	ctx := context.Background()
	d, _, _ := newDesk(t)

	_, err := d.Notes.Add(ctx, core.NotesList1, "one")
	require.NoError(t, err)
	_, err = d.Notes.Add(ctx, core.NotesList3, "three")
	require.NoError(t, err)

	for id, want := range map[core.ListID][]string{
		core.NotesList1: {"one"},
		core.NotesList2: {},
		core.NotesList3: {"three"},
	} {
		got, err := d.Notes.List(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestNotes_UnknownList(t *testing.T) {
	d, _, _ := newDesk(t)
	_, err := d.Notes.Add(context.Background(), core.ListID("notesList4"), "x")
	assert.ErrorIs(t, err, core.ErrUnknownList)
}

func TestNotes_RemoveShiftsLaterEntries(t *testing.T) {
	ctx := context.Background()
	d, _, rec := newDesk(t)
	for _, n := range []string{"a", "b", "c"} {
		_, err := d.Notes.Add(ctx, core.NotesList1, n)
		require.NoError(t, err)
	}

	removed, err := d.Notes.Remove(ctx, core.NotesList1, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := d.Notes.List(ctx, core.NotesList1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)

	view := rec.Notes[core.NotesList1]
	require.Len(t, view.Items, 2)
	assert.Equal(t, 1, view.Items[1].Position)
	assert.Equal(t, "c", view.Items[1].Text)
}

func TestNotes_StalePositionIsNoop(t *testing.T) {
	ctx := context.Background()
	d, _, rec := newDesk(t)
	_, err := d.Notes.Add(ctx, core.NotesList1, "only")
	require.NoError(t, err)
	renders := rec.NoteRenders[core.NotesList1]

	for _, pos := range []int{-1, 1, 5} {
		removed, err := d.Notes.Remove(ctx, core.NotesList1, pos)
		require.NoError(t, err)
		assert.False(t, removed)

		changed, err := d.Notes.CommitEdit(ctx, core.NotesList1, pos, "new")
		require.NoError(t, err)
		assert.False(t, changed)
	}

	got, err := d.Notes.List(ctx, core.NotesList1)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
	assert.Equal(t, renders, rec.NoteRenders[core.NotesList1])
}

func TestNotes_PlaceholderWhenEmpty(t *testing.T) {
	ctx := context.Background()
	d, _, rec := newDesk(t)
	_, err := d.Notes.Add(ctx, core.NotesList2, "x")
	require.NoError(t, err)
	_, err = d.Notes.Remove(ctx, core.NotesList2, 0)
	require.NoError(t, err)

	view := rec.Notes[core.NotesList2]
	assert.Empty(t, view.Items)
	assert.Equal(t, desk.NoNotesPlaceholder, view.Placeholder)
}

func TestNotes_EditLifecycle(t *testing.T) {
	ctx := context.Background()
	d, _, rec := newDesk(t)
	_, err := d.Notes.Add(ctx, core.NotesList1, "RYR1 taxi B")
	require.NoError(t, err)

	ok, err := d.Notes.BeginEdit(ctx, core.NotesList1, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d.Notes.Editing(core.NotesList1, 0))
	assert.True(t, rec.Notes[core.NotesList1].Items[0].Editing)

	ok, err = d.Notes.CancelEdit(ctx, core.NotesList1, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, d.Notes.Editing(core.NotesList1, 0))

	_, err = d.Notes.BeginEdit(ctx, core.NotesList1, 0)
	require.NoError(t, err)
	ok, err = d.Notes.CommitEdit(ctx, core.NotesList1, 0, " RYR1 taxi C ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, d.Notes.Editing(core.NotesList1, 0))

	got, err := d.Notes.List(ctx, core.NotesList1)
	require.NoError(t, err)
	assert.Equal(t, []string{"RYR1 taxi C"}, got)
	assert.Equal(t, core.NoteItem{Position: 0, Text: "RYR1 taxi C"}, rec.Notes[core.NotesList1].Items[0])
}

func TestNotes_CommitEmptyRemoves(t *testing.T) {
	ctx := context.Background()
	d, _, _ := newDesk(t)
	for _, n := range []string{"a", "b"} {
		_, err := d.Notes.Add(ctx, core.NotesList1, n)
		require.NoError(t, err)
	}

	ok, err := d.Notes.CommitEdit(ctx, core.NotesList1, 0, "   ")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := d.Notes.List(ctx, core.NotesList1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got)
}

func TestNotes_MutationDropsEditState(t *testing.T) {
	ctx := context.Background()
	d, _, _ := newDesk(t)
	for _, n := range []string{"a", "b"} {
		_, err := d.Notes.Add(ctx, core.NotesList1, n)
		require.NoError(t, err)
	}
	_, err := d.Notes.BeginEdit(ctx, core.NotesList1, 1)
	require.NoError(t, err)

	_, err = d.Notes.Remove(ctx, core.NotesList1, 0)
	require.NoError(t, err)
	assert.False(t, d.Notes.Editing(core.NotesList1, 0))
	assert.False(t, d.Notes.Editing(core.NotesList1, 1))
}

func TestNotes_HandleKey(t *testing.T) {
	ctx := context.Background()
	d, _, _ := newDesk(t)

	prevent, err := d.Notes.HandleKey(ctx, desk.KeyEvent{Key: "a", Input: desk.AddInput, List: core.NotesList1, Value: "x"})
	require.NoError(t, err)
	assert.False(t, prevent)

	prevent, err = d.Notes.HandleKey(ctx, desk.KeyEvent{Key: "Enter", Input: desk.AddInput, List: core.NotesList1, Value: "hold short"})
	require.NoError(t, err)
	assert.True(t, prevent)

	prevent, err = d.Notes.HandleKey(ctx, desk.KeyEvent{Key: "Enter", Input: desk.EditInput, List: core.NotesList1, Position: 0, Value: "line up"})
	require.NoError(t, err)
	assert.True(t, prevent)

	got, err := d.Notes.List(ctx, core.NotesList1)
	require.NoError(t, err)
	assert.Equal(t, []string{"line up"}, got)
}

func TestNotes_CorruptListReadsEmpty(t *testing.T) {
	ctx := context.Background()
	d, store, rec := newDesk(t)
	require.NoError(t, store.Set(ctx, "notesList3", "{not json"))

	got, err := d.Notes.List(ctx, core.NotesList3)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, d.Notes.RenderAll(ctx))
	assert.Equal(t, desk.NoNotesPlaceholder, rec.Notes[core.NotesList3].Placeholder)

	added, err := d.Notes.Add(ctx, core.NotesList3, "fresh")
	require.NoError(t, err)
	assert.True(t, added)
	raw, _, _ := store.Get(ctx, "notesList3")
	assert.JSONEq(t, `["fresh"]`, raw)
}
