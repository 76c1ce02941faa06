package web

import (
	"errors"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
)

// ErrNoFullscreen is returned when the page is asked to leave fullscreen
// while not in it.
var ErrNoFullscreen = errors.New("page is not in fullscreen mode")

// Page is the server-side model of the desk page. It implements every host
// binding a desk renders on; handlers render it into HTML or JSON.
type Page struct {
	mu sync.Mutex

	notes       map[core.ListID]core.NoteListView
	plans       core.PlanListView
	chart       string
	image       string
	transform   string
	cursor      string
	fullscreen  bool
	frequency   string
	freqDisplay string
	news        core.NewsItem
	clipboard   string
	flash       []string
	redirect    string
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{
		notes:     make(map[core.ListID]core.NoteListView),
		transform: "translate(-50%, -50%) scale(1)",
		cursor:    "grab",
	}
}

// Bindings returns the page in every binding slot. The page has no frame
// clock, so chart transforms apply immediately.
func (p *Page) Bindings() core.Bindings {
	return core.Bindings{
		Notes:     p,
		Plans:     p,
		Chart:     p,
		Frequency: p,
		News:      p,
		Clipboard: p,
		Notifier:  p,
		Navigator: p,
	}
}

func (p *Page) RenderNotes(id core.ListID, view core.NoteListView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes[id] = view
}

// ClearInput is a no-op: a form post always reloads an empty input.
func (p *Page) ClearInput(core.ListID) {}

func (p *Page) RenderPlans(view core.PlanListView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans = view
}

func (p *Page) SelectedChart() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chart
}

func (p *Page) SetSelectedChart(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chart = src
}

func (p *Page) SetImageSource(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = src
	p.chart = src
}

func (p *Page) SetTransform(t string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transform = t
}

func (p *Page) SetCursor(c string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = c
}

// Pointer capture happens in the browser.
func (p *Page) CapturePointer(int) {}
func (p *Page) ReleasePointer(int) {}

func (p *Page) IsFullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreen
}

func (p *Page) RequestFullscreen() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullscreen = true
	return nil
}

func (p *Page) ExitFullscreen() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fullscreen {
		return ErrNoFullscreen
	}
	p.fullscreen = false
	return nil
}

func (p *Page) SetSelectedFrequency(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frequency = v
}

func (p *Page) SetFrequencyDisplay(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.freqDisplay = v
	p.frequency = v
}

func (p *Page) RenderNews(item core.NewsItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.news = item
}

// WriteText hands the text to the browser, which copies it on the next
// render through the Clipboard API.
func (p *Page) WriteText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clipboard = text
	return nil
}

func (p *Page) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flash = append(p.flash, msg)
}

func (p *Page) Redirect(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redirect = url
	return nil
}

// takeRedirect returns and clears a pending redirect.
func (p *Page) takeRedirect() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	url := p.redirect
	p.redirect = ""
	return url
}

// View is the render snapshot of a page.
type View struct {
	Notes       []NoteListView    `json:"notes"`
	Plans       core.PlanListView `json:"plans"`
	Chart       string            `json:"chart"`
	Image       string            `json:"image"`
	Transform   string            `json:"transform"`
	Cursor      string            `json:"cursor"`
	Fullscreen  bool              `json:"fullscreen"`
	Frequency   string            `json:"frequency"`
	FreqDisplay string            `json:"frequency_display"`
	News        core.NewsItem     `json:"news"`
	Clipboard   string            `json:"clipboard,omitempty"`
	Flash       []string          `json:"flash,omitempty"`
}

// NoteListView pairs a list with its element ids.
type NoteListView struct {
	ID      core.ListID `json:"id"`
	InputID string      `json:"input_id"`
	core.NoteListView
}

// snapshot copies the page. Flash messages and the clipboard payload are
// consumed.
func (p *Page) snapshot(consume bool) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := View{
		Plans:       p.plans,
		Chart:       p.chart,
		Image:       p.image,
		Transform:   p.transform,
		Cursor:      p.cursor,
		Fullscreen:  p.fullscreen,
		Frequency:   p.frequency,
		FreqDisplay: p.freqDisplay,
		News:        p.news,
		Clipboard:   p.clipboard,
		Flash:       append([]string(nil), p.flash...),
	}
	for i, id := range core.NoteLists {
		v.Notes = append(v.Notes, NoteListView{
			ID:           id,
			InputID:      inputID(i),
			NoteListView: p.notes[id],
		})
	}
	if consume {
		p.flash = nil
		p.clipboard = ""
	}
	return v
}

func inputID(i int) string {
	return "newNote" + string(rune('1'+i))
}
