package core

// The interfaces below are the host bindings: the named element handles the
// desk is constructed with. A host (web page, terminal, test recorder)
// implements them; the desk never touches markup directly.

// NoteItem is one rendered note. Position is the index at render time only.
type NoteItem struct {
	Position int
	Text     string
	Editing  bool
}

// NoteListView is what a note list container shows. Placeholder is set
// exactly when Items is empty.
type NoteListView struct {
	Items       []NoteItem
	Placeholder string
}

// NoteSurface renders note lists and owns their add-inputs.
type NoteSurface interface {
	RenderNotes(id ListID, view NoteListView)
	ClearInput(id ListID)
}

// PlanField is one labelled line of a flight plan card.
type PlanField struct {
	Label string
	Value string
}

// PlanCard is one rendered flight plan.
type PlanCard struct {
	Title  string
	Fields []PlanField
}

// PlanListView is what the flight plan container shows.
type PlanListView struct {
	Cards       []PlanCard
	Placeholder string
}

// PlanSurface renders the flight plan list.
type PlanSurface interface {
	RenderPlans(view PlanListView)
}

// ChartSurface is the chart image, its selector and the fullscreen target.
type ChartSurface interface {
	SelectedChart() string
	SetSelectedChart(src string)
	SetImageSource(src string)
	SetTransform(transform string)
	SetCursor(cursor string)
	CapturePointer(pointerID int)
	ReleasePointer(pointerID int)
	IsFullscreen() bool
	RequestFullscreen() error
	ExitFullscreen() error
}

// FrameScheduler runs fn before the next rendered frame. fn must run on
// another goroutine after ScheduleFrame returns: it takes the desk lock that
// the caller of ScheduleFrame still holds.
type FrameScheduler interface {
	ScheduleFrame(fn func())
}

// FrequencySurface is the frequency dropdown and its display span.
type FrequencySurface interface {
	SetSelectedFrequency(value string)
	SetFrequencyDisplay(value string)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Notifier shows a message to the user.
type Notifier interface {
	Alert(msg string)
}

// Navigator leaves the desk for an external page.
type Navigator interface {
	Redirect(url string) error
}

// NewsItem is the single embedded news panel.
type NewsItem struct {
	EmbedURL     string
	CompassImage string
}

// NewsSurface renders the news panel.
type NewsSurface interface {
	RenderNews(item NewsItem)
}

// Bindings groups every handle a desk is built with. Nil handles are
// replaced with no-op implementations.
type Bindings struct {
	Notes     NoteSurface
	Plans     PlanSurface
	Chart     ChartSurface
	Frames    FrameScheduler
	Frequency FrequencySurface
	News      NewsSurface
	Clipboard Clipboard
	Notifier  Notifier
	Navigator Navigator
}

// Presets are the fixed strings the clipboard utilities copy.
type Presets struct {
	ServerCode string `yaml:"server_code" toml:"server_code" json:"server_code"`
	Password   string `yaml:"password" toml:"password" json:"password"`
	ATIS       string `yaml:"atis" toml:"atis" json:"atis"`
}

// DefaultPresets returns the strings published for the GCLP event.
func DefaultPresets() Presets {
	return Presets{
		ServerCode: "31xxRy8Zpy",
		Password:   "PUBLICATC",
		ATIS:       "Gran Canaria (GCLP)\n\nGCLP_APP [121.300]: @xaie9\n\n",
	}
}

// DefaultNews returns the news panel shown when none is configured.
func DefaultNews() NewsItem {
	return NewsItem{
		EmbedURL:     "https://dev.project-flight.com/",
		CompassImage: "https://lh5.googleusercontent.com/5SWZemJiwH05gTUEqE4PcTC1OYhPZB38mOmrux7prgoSJ4SXG3t6ei1hqqV8DD2FDYME-j86EsqSFCRjrln4WwwJj1MtpDSbZL4DLruUZchaH7DTQ4JZdKVCtOVqpSWBsA=w739",
	}
}
