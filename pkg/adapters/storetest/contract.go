// Package storetest holds the behaviour every core.Store adapter must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Run exercises the core.Store contract against stores built by open.
func Run(t *testing.T, open func(t *testing.T) core.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		s := open(t)
		v, ok, err := s.Get(ctx, "selectedFrequency")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Set Get Overwrite", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "selectedFrequency", "121.300"))
		v, ok, err := s.Get(ctx, "selectedFrequency")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "121.300", v)

		require.NoError(t, s.Set(ctx, "selectedFrequency", "118.300"))
		v, _, err = s.Get(ctx, "selectedFrequency")
		require.NoError(t, err)
		assert.Equal(t, "118.300", v)
	})

	t.Run("Opaque Values", func(t *testing.T) {
		s := open(t)
		raw := "[\"line one\\nline two\", \"ünïcødé\"]\n  "
		require.NoError(t, s.Set(ctx, "notesList1", raw))
		v, ok, err := s.Get(ctx, "notesList1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, raw, v)

		require.NoError(t, s.Set(ctx, "empty", ""))
		v, ok, err = s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "authToken", "abc"))
		require.NoError(t, s.Delete(ctx, "authToken"))
		_, ok, err := s.Get(ctx, "authToken")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, s.Delete(ctx, "never-set"))
	})

	t.Run("Keys Sorted", func(t *testing.T) {
		s := open(t)
		for _, k := range []string{"notesList2", "flightPlans", "notesList1"} {
			require.NoError(t, s.Set(ctx, k, "[]"))
		}
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"flightPlans", "notesList1", "notesList2"}, keys)
	})
}
