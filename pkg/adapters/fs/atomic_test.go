package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Replaces Value In Place", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "flightPlans")

		require.NoError(t, writeFileAtomic(filename, []byte(`[]`), 0644))
		require.NoError(t, writeFileAtomic(filename, []byte(`[{"callsign":"IBE123"}]`), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `[{"callsign":"IBE123"}]`, string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "notesList1"), []byte(`["a"]`), 0600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
		}
		assert.Len(t, entries, 1)
	})

	t.Run("Temp File Names Its Key", func(t *testing.T) {
		pattern := tempPattern(filepath.Join("store", "selectedGroundChart"))
		assert.True(t, strings.HasPrefix(pattern, TempFilePrefix+"selectedGroundChart-"))
		assert.True(t, strings.HasSuffix(pattern, "*"))

		dir := t.TempDir()
		f, err := os.CreateTemp(dir, pattern)
		require.NoError(t, err)
		defer f.Close()
		s := NewStore(Config{Path: filepath.Dir(dir), StoreDir: filepath.Base(dir)})
		assert.True(t, s.ignoreName(filepath.Base(f.Name())), "in-flight writes are not keys")
	})

	t.Run("Applies Permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		filename := filepath.Join(t.TempDir(), "notesList2")
		require.NoError(t, writeFileAtomic(filename, []byte(`[]`), 0600))
		info, err := os.Stat(filename)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		dir := t.TempDir()
		err := writeFileAtomic(filepath.Join(dir, "missing", "notesList1"), []byte("x"), 0644)
		assert.Error(t, err)
	})
}

func TestKeyEncoding(t *testing.T) {
	cases := []string{
		"notesList1",
		"selectedGroundChart",
		"../escape",
		".hidden",
		"a/b c%d",
		"ünï",
	}
	for _, key := range cases {
		name := encodeKey(key)
		assert.NotContains(t, name, "/", key)
		assert.False(t, strings.HasPrefix(name, "."), key)

		back, err := decodeKey(name)
		require.NoError(t, err, key)
		assert.Equal(t, key, back)
	}

	_, err := decodeKey("bad%4")
	assert.Error(t, err)
	_, err = decodeKey("bad%ZZ")
	assert.Error(t, err)
}
