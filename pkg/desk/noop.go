package desk

import "github.com/aretw0/atcdesk/pkg/core"

// nopSurface stands in for any binding a host leaves nil.
type nopSurface struct{}

func (nopSurface) RenderNotes(core.ListID, core.NoteListView) {}
func (nopSurface) ClearInput(core.ListID) {}
func (nopSurface) RenderPlans(core.PlanListView) {}
func (nopSurface) SelectedChart() string { return "" }
func (nopSurface) SetSelectedChart(string) {}
func (nopSurface) SetImageSource(string) {}
func (nopSurface) SetTransform(string) {}
func (nopSurface) SetCursor(string) {}
func (nopSurface) CapturePointer(int) {}
func (nopSurface) ReleasePointer(int) {}
func (nopSurface) IsFullscreen() bool { return false }
func (nopSurface) RequestFullscreen() error { return nil }
func (nopSurface) ExitFullscreen() error { return nil }
func (nopSurface) SetSelectedFrequency(string) {}
func (nopSurface) SetFrequencyDisplay(string) {}
func (nopSurface) RenderNews(core.NewsItem) {}
func (nopSurface) Alert(string) {}
func (nopSurface) Redirect(string) error { return nil }

// nopClipboard fails every write so a desk without a clipboard says so.
type nopClipboard struct{}

func (nopClipboard) WriteText(string) error {
	return core.ErrNotConfigured
}

func withDefaults(b core.Bindings) core.Bindings {
	if b.Notes == nil {
		b.Notes = nopSurface{}
	}
	if b.Plans == nil {
		b.Plans = nopSurface{}
	}
	if b.Chart == nil {
		b.Chart = nopSurface{}
	}
	if b.Frequency == nil {
		b.Frequency = nopSurface{}
	}
	if b.News == nil {
		b.News = nopSurface{}
	}
	if b.Clipboard == nil {
		b.Clipboard = nopClipboard{}
	}
	if b.Notifier == nil {
		b.Notifier = nopSurface{}
	}
	if b.Navigator == nil {
		b.Navigator = nopSurface{}
	}
	// Frames stays nil: transforms then apply synchronously.
	return b
}
