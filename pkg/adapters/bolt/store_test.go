package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/adapters/bolt"
	"github.com/aretw0/atcdesk/pkg/adapters/storetest"
	"github.com/aretw0/atcdesk/pkg/core"
)

func open(t *testing.T, cfg bolt.Config) *bolt.Store {
	t.Helper()
	s, err := bolt.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Store {
		return open(t, bolt.Config{Path: filepath.Join(t.TempDir(), bolt.DefaultFile)})
	})
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := bolt.Open(bolt.Config{Path: "  "})
	assert.Error(t, err)
}

func TestReadOnlyReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", bolt.DefaultFile)

	rw, err := bolt.Open(bolt.Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, rw.Set(ctx, "selectedFrequency", "121.300"))
	require.NoError(t, rw.Close())

	ro := open(t, bolt.Config{Path: path, ReadOnly: true})
	v, ok, err := ro.Get(ctx, "selectedFrequency")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "121.300", v)
	assert.ErrorIs(t, ro.Set(ctx, "selectedFrequency", "x"), core.ErrReadOnly)

	state := ro.State().(bolt.StoreState)
	assert.Equal(t, 1, state.Keys)
	assert.True(t, state.ReadOnly)
}
