package desk_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/adapters/fs"
	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
	"github.com/aretw0/atcdesk/pkg/desk/desktest"
)

// TestConcurrency_NoLostUpdates drives one desk from many goroutines, the
// way HTTP handlers do, while another process scribbles on unrelated key
// files. Every add and save must survive.
func TestConcurrency_NoLostUpdates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := t.TempDir()
	store := fs.NewStore(fs.Config{Path: dir})
	require.NoError(t, store.Initialize(context.Background()))
	d, err := desk.New(store, desktest.New().Bindings())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// External actor writing files the desk does not own.
	var noise sync.WaitGroup
	noise.Add(1)
	go func() {
		defer noise.Done()
		for ctx.Err() == nil {
			path := filepath.Join(dir, fs.DefaultStoreDir, fmt.Sprintf("noise-%d", rand.Intn(10)))
			_ = os.WriteFile(path, []byte(fmt.Sprintf(`"%d"`, time.Now().UnixNano())), 0644)
			time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		}
	}()

	const workers, perWorker = 8, 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			list := core.NoteLists[w%len(core.NoteLists)]
			for i := 0; i < perWorker; i++ {
				_, err := d.Notes.Add(ctx, list, fmt.Sprintf("w%d-%d", w, i))
				assert.NoError(t, err)
				_, err = d.Plans.Save(ctx, core.FlightPlan{Callsign: fmt.Sprintf("TST%d%d", w, i)})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()
	cancel()
	noise.Wait()

	total := 0
	for _, id := range core.NoteLists {
		notes, err := d.Notes.List(context.Background(), id)
		require.NoError(t, err)
		total += len(notes)
	}
	assert.Equal(t, workers*perWorker, total)

	plans, err := d.Plans.Local(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, workers*perWorker)
}
