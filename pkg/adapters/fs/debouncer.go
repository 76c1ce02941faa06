package fs

import (
	"sync"
	"time"

	"github.com/aretw0/atcdesk/pkg/core"
)

// debouncer coalesces bursts of events per key. An atomic write shows up as
// several fsnotify events; only the last one within the window is emitted.
type debouncer struct {
	mu       sync.Mutex
	wait     time.Duration
	timers   map[string]*time.Timer
	inflight sync.WaitGroup
	stopped  bool
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[e.Key]; ok && t.Stop() {
		d.inflight.Done()
	}
	d.inflight.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.wait, func() {
		defer d.inflight.Done()
		d.mu.Lock()
		if d.timers[e.Key] == t {
			delete(d.timers, e.Key)
		}
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			emit(e)
		}
	})
	d.timers[e.Key] = t
}

// stopAndWait drops pending events and waits for running emitters.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.inflight.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
