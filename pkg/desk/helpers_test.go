package desk_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/adapters/memory"
	"github.com/aretw0/atcdesk/pkg/desk"
	"github.com/aretw0/atcdesk/pkg/desk/desktest"
)

var fixedNow = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func newDesk(t *testing.T, opts ...desk.Option) (*desk.Desk, *memory.Store, *desktest.Recorder) {
	t.Helper()
	store := memory.New()
	rec := desktest.New()
	opts = append([]desk.Option{desk.WithClock(func() time.Time { return fixedNow })}, opts...)
	d, err := desk.New(store, rec.Bindings(), opts...)
	require.NoError(t, err)
	return d, store, rec
}
