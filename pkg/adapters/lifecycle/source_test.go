package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	source "github.com/aretw0/atcdesk/pkg/adapters/lifecycle"
	"github.com/aretw0/atcdesk/pkg/core"
)

func TestSource_RelaysInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventCreate, Key: "notesList1"}
	in <- core.Event{Type: core.EventModify, Key: "selectedFrequency"}
	close(in)

	s := source.NewSource(in)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))

	var got []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-s.Events():
			if !ok {
				assert.Equal(t, []string{"CREATE notesList1", "MODIFY selectedFrequency"}, got)
				assert.Equal(t, int64(2), s.Delivered())
				return
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("timed out")
		}
	}
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := source.NewSource(make(chan core.Event))
	require.NoError(t, s.Start(ctx))
	cancel()

	select {
	case _, ok := <-s.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}
