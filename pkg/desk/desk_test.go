package desk_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/adapters/fs"
	"github.com/aretw0/atcdesk/pkg/adapters/memory"
	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
	"github.com/aretw0/atcdesk/pkg/desk/desktest"
)

func TestFrequency_SelectAndLoad(t *testing.T) {
	ctx := context.Background()
	d, store, rec := newDesk(t)

	require.NoError(t, d.Frequency.Load(ctx))
	assert.Empty(t, rec.FreqDisplay, "nothing persisted yet")

	require.NoError(t, d.Frequency.Select(ctx, "121.300"))
	assert.Equal(t, "121.300", rec.FreqDisplay)

	rec2 := desktest.New()
	d2, err := desk.New(store, rec2.Bindings())
	require.NoError(t, err)
	require.NoError(t, d2.Frequency.Load(ctx))
	assert.Equal(t, "121.300", rec2.Frequency)
	assert.Equal(t, "121.300", rec2.FreqDisplay)

	cur, err := d.Frequency.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "121.300", cur)
}

func TestFrequency_EmptyStoredValueIsIgnored(t *testing.T) {
	ctx := context.Background()
	d, store, rec := newDesk(t)
	require.NoError(t, store.Set(ctx, core.KeyFrequency, ""))
	rec.Frequency, rec.FreqDisplay = "118.100", "118.100"

	require.NoError(t, d.Frequency.Load(ctx))
	assert.Equal(t, "118.100", rec.Frequency)
	assert.Equal(t, "118.100", rec.FreqDisplay)
}

func TestCopier_Alerts(t *testing.T) {
	d, _, rec := newDesk(t)

	require.NoError(t, d.Copier.CopyServer())
	assert.Equal(t, "31xxRy8Zpy", rec.Clipboard)
	assert.Equal(t, "Server code copied to clipboard: 31xxRy8Zpy", rec.LastAlert())

	require.NoError(t, d.Copier.CopyPassword())
	assert.Equal(t, "PUBLICATC", rec.Clipboard)
	assert.Equal(t, "Password copied to clipboard: PUBLICATC", rec.LastAlert())

	require.NoError(t, d.Copier.CopyATIS())
	assert.Equal(t, "Gran Canaria (GCLP)\n\nGCLP_APP [121.300]: @xaie9\n\n", rec.Clipboard)
	assert.Equal(t, "ATIS copied to clipboard.", rec.LastAlert())
}

func TestCopier_Failure(t *testing.T) {
	d, _, rec := newDesk(t)
	rec.ClipboardErr = desktest.ErrDenied

	err := d.Copier.CopyServer()
	assert.ErrorIs(t, err, desktest.ErrDenied)
	assert.Equal(t, "Copy failed: denied by host", rec.LastAlert())
	assert.Empty(t, rec.Clipboard)
}

func TestCopier_CustomPresets(t *testing.T) {
	d, _, rec := newDesk(t, desk.WithPresets(core.Presets{ServerCode: "abc"}))
	require.NoError(t, d.Copier.CopyServer())
	assert.Equal(t, "abc", rec.Clipboard)
}

type fakeValidator struct{ err error }

func (v fakeValidator) Validate(ctx context.Context, token string) error { return v.err }

func TestSession_Check(t *testing.T) {
	ctx := context.Background()
	const login = "https://example.org/login"

	t.Run("Valid", func(t *testing.T) {
		d, store, rec := newDesk(t, desk.WithSession(fakeValidator{}, login))
		require.NoError(t, d.Session.SetToken(ctx, "tok"))
		require.NoError(t, d.Session.Check(ctx))
		assert.Empty(t, rec.Redirects)
		_, ok, _ := store.Get(ctx, core.KeyAuthToken)
		assert.True(t, ok)
	})

	t.Run("Rejected", func(t *testing.T) {
		d, store, rec := newDesk(t, desk.WithSession(fakeValidator{err: errors.New("status 401")}, login))
		require.NoError(t, d.Session.SetToken(ctx, "tok"))

		err := d.Session.Check(ctx)
		assert.ErrorIs(t, err, core.ErrUnauthenticated)
		assert.Equal(t, []string{login}, rec.Redirects)
		_, ok, _ := store.Get(ctx, core.KeyAuthToken)
		assert.False(t, ok)
	})

	t.Run("Missing Token", func(t *testing.T) {
		d, _, rec := newDesk(t, desk.WithSession(fakeValidator{}, login))
		assert.ErrorIs(t, d.Session.Check(ctx), core.ErrUnauthenticated)
		assert.Equal(t, []string{login}, rec.Redirects)
	})

	t.Run("Not Configured", func(t *testing.T) {
		d, _, _ := newDesk(t)
		assert.ErrorIs(t, d.Session.Check(ctx), core.ErrNotConfigured)
	})
}

func TestDesk_Load(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, core.KeyGroundChart, gclp))
	require.NoError(t, store.Set(ctx, core.KeyFrequency, "118.300"))
	require.NoError(t, store.Set(ctx, "notesList2", `["cleared to land"]`))

	rec := desktest.New()
	d, err := desk.New(store, rec.Bindings())
	require.NoError(t, err)
	require.NoError(t, d.Load(ctx))

	assert.Equal(t, gclp, rec.Image)
	assert.Equal(t, "118.300", rec.FreqDisplay)
	assert.Equal(t, desk.NoPlansPlaceholder, rec.Plans.Placeholder)
	assert.Equal(t, desk.NoNotesPlaceholder, rec.Notes[core.NotesList1].Placeholder)
	assert.Equal(t, "cleared to land", rec.Notes[core.NotesList2].Items[0].Text)
	require.NotNil(t, rec.News)
	assert.Equal(t, core.DefaultNews(), *rec.News)

	st, ok := d.State().(desk.State)
	require.True(t, ok)
	assert.False(t, st.LoadedAt.IsZero())
	assert.NotNil(t, st.Store)
}

func TestDesk_NilBindings(t *testing.T) {
	d, err := desk.New(memory.New(), core.Bindings{})
	require.NoError(t, err)
	require.NoError(t, d.Load(context.Background()))
	assert.ErrorIs(t, d.Copier.CopyATIS(), core.ErrNotConfigured)

	_, err = desk.New(nil, core.Bindings{})
	assert.Error(t, err)
}

func TestDesk_WatchRefreshesOnOutsideWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, store, rec := newDesk(t)

	events, err := d.Watch(ctx)
	require.NoError(t, err)

	// Another writer sharing the store.
	require.NoError(t, store.Set(ctx, "notesList1", `["from elsewhere"]`))

	select {
	case e := <-events:
		assert.Equal(t, "notesList1", e.Key)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh")
	}
	require.Len(t, rec.Notes[core.NotesList1].Items, 1)
	assert.Equal(t, "from elsewhere", rec.Notes[core.NotesList1].Items[0].Text)
}

func TestDesk_WatchFollowsChartAndFrequency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, store, rec := newDesk(t)
	require.NoError(t, d.Chart.Select(ctx, gclp))
	d.Chart.ZoomIn()

	events, err := d.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, core.KeyFrequency, "118.100"))
	waitFor(t, events, core.KeyFrequency)
	assert.Equal(t, "118.100", rec.Frequency)
	assert.Equal(t, "118.100", rec.FreqDisplay)

	// Same chart written again: the view is left alone.
	require.NoError(t, store.Set(ctx, core.KeyGroundChart, gclp))
	waitFor(t, events, core.KeyGroundChart)
	assert.InDelta(t, 1.2, d.Chart.View().Zoom(), 1e-9)

	require.NoError(t, store.Set(ctx, core.KeyGroundChart, "charts/LEMD_ground.png"))
	waitFor(t, events, core.KeyGroundChart)
	assert.Equal(t, "charts/LEMD_ground.png", rec.Image)
	assert.Equal(t, "charts/LEMD_ground.png", rec.Chart)
	assert.Equal(t, 1.0, d.Chart.View().Zoom())
}

// TestDesk_WatchSettlesAfterOwnWrites selects a chart and a frequency on a
// watched fs store: each write comes back once and the desk must not answer
// with writes of its own.
func TestDesk_WatchSettlesAfterOwnWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping fsnotify test in short mode")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := fs.NewStore(fs.Config{Path: t.TempDir()})
	require.NoError(t, store.Initialize(ctx))
	rec := desktest.New()
	d, err := desk.New(store, rec.Bindings())
	require.NoError(t, err)

	events, err := d.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, d.Chart.Select(ctx, gclp))
	require.NoError(t, d.Frequency.Select(ctx, "121.300"))
	d.Chart.ZoomIn()
	d.Chart.ZoomIn()

	n := countUntilQuiet(events, 500*time.Millisecond, 3*time.Second)
	assert.LessOrEqual(t, n, 4, "store events keep coming")
	assert.InDelta(t, 1.4, d.Chart.View().Zoom(), 1e-9)
	assert.Equal(t, gclp, rec.Image)
	assert.Equal(t, "121.300", rec.FreqDisplay)
}

func waitFor(t *testing.T, events <-chan core.Event, key string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Key == key {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", key)
		}
	}
}

// countUntilQuiet counts events until none arrives for quiet, or limit passes.
func countUntilQuiet(events <-chan core.Event, quiet, limit time.Duration) int {
	n := 0
	deadline := time.After(limit)
	for {
		select {
		case <-events:
			n++
		case <-time.After(quiet):
			return n
		case <-deadline:
			return n
		}
	}
}

type plainStore struct{ core.Store }

func TestDesk_WatchUnsupported(t *testing.T) {
	d, err := desk.New(plainStore{memory.New()}, core.Bindings{})
	require.NoError(t, err)
	_, err = d.Watch(context.Background())
	assert.ErrorIs(t, err, core.ErrWatchUnsupported)
}
