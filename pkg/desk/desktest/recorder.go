// Package desktest provides recording host bindings for exercising a desk
// without a browser or terminal.
package desktest

import (
	"errors"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Recorder implements every host binding and keeps what it was told.
type Recorder struct {
	mu sync.Mutex

	Notes         map[core.ListID]core.NoteListView
	NoteRenders   map[core.ListID]int
	Cleared       map[core.ListID]int
	Plans         *core.PlanListView
	PlanRenders   int
	Chart         string // selector value
	Image         string
	Transforms    []string
	Cursor        string
	Captured      map[int]bool
	Fullscreen    bool
	FullscreenErr error
	Frequency     string
	FreqDisplay   string
	News          *core.NewsItem
	Clipboard     string
	ClipboardErr  error
	Alerts        []string
	Redirects     []string
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		Notes:       make(map[core.ListID]core.NoteListView),
		NoteRenders: make(map[core.ListID]int),
		Cleared:     make(map[core.ListID]int),
		Captured:    make(map[int]bool),
	}
}

// Bindings returns the recorder wired into every slot except Frames.
func (r *Recorder) Bindings() core.Bindings {
	return core.Bindings{
		Notes:     r,
		Plans:     r,
		Chart:     r,
		Frequency: r,
		News:      r,
		Clipboard: r,
		Notifier:  r,
		Navigator: r,
	}
}

func (r *Recorder) RenderNotes(id core.ListID, view core.NoteListView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notes[id] = view
	r.NoteRenders[id]++
}

func (r *Recorder) ClearInput(id core.ListID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cleared[id]++
}

func (r *Recorder) RenderPlans(view core.PlanListView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Plans = &view
	r.PlanRenders++
}

func (r *Recorder) SelectedChart() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Chart
}

func (r *Recorder) SetSelectedChart(src string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Chart = src
}

func (r *Recorder) SetImageSource(src string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Image = src
}

func (r *Recorder) SetTransform(t string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transforms = append(r.Transforms, t)
}

// Transform returns the last transform applied, empty if none.
func (r *Recorder) Transform() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Transforms) == 0 {
		return ""
	}
	return r.Transforms[len(r.Transforms)-1]
}

func (r *Recorder) SetCursor(c string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cursor = c
}

func (r *Recorder) CapturePointer(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Captured[id] = true
}

func (r *Recorder) ReleasePointer(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Captured, id)
}

func (r *Recorder) IsFullscreen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Fullscreen
}

func (r *Recorder) RequestFullscreen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FullscreenErr != nil {
		return r.FullscreenErr
	}
	r.Fullscreen = true
	return nil
}

func (r *Recorder) ExitFullscreen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fullscreen = false
	return nil
}

func (r *Recorder) SetSelectedFrequency(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frequency = v
}

func (r *Recorder) SetFrequencyDisplay(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FreqDisplay = v
}

func (r *Recorder) RenderNews(item core.NewsItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.News = &item
}

func (r *Recorder) WriteText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ClipboardErr != nil {
		return r.ClipboardErr
	}
	r.Clipboard = text
	return nil
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Alerts = append(r.Alerts, msg)
}

// LastAlert returns the most recent alert, empty if none.
func (r *Recorder) LastAlert() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Alerts) == 0 {
		return ""
	}
	return r.Alerts[len(r.Alerts)-1]
}

func (r *Recorder) Redirect(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Redirects = append(r.Redirects, url)
	return nil
}

// ErrDenied is a stand-in rejection for clipboard and fullscreen requests.
var ErrDenied = errors.New("denied by host")

// Frames queues scheduled callbacks until Flush.
type Frames struct {
	mu      sync.Mutex
	pending []func()
}

func (f *Frames) ScheduleFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fn)
}

// Pending returns how many callbacks wait for the next frame.
func (f *Frames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Flush runs the queued callbacks, as a browser does before painting.
func (f *Frames) Flush() {
	f.mu.Lock()
	fns := f.pending
	f.pending = nil
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

var _ core.FrameScheduler = (*Frames)(nil)
