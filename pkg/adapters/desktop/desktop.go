// Package desktop provides the host bindings a CLI has: printed or dialog
// alerts and the system browser.
package desktop

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ncruces/zenity"
	"github.com/pkg/browser"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Printer writes each alert as one line.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a notifier writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, msg)
}

// Dialog shows alerts in a native message box. When no dialog can be shown
// the alert goes to Fallback.
type Dialog struct {
	Title    string
	Fallback core.Notifier
	Logger   *slog.Logger
}

func (d *Dialog) Alert(msg string) {
	title := d.Title
	if title == "" {
		title = "atcdesk"
	}
	err := zenity.Info(msg, zenity.Title(title), zenity.InfoIcon)
	if err == nil || errors.Is(err, zenity.ErrCanceled) {
		return
	}
	if d.Logger != nil {
		d.Logger.Debug("dialog unavailable", "error", err)
	}
	if d.Fallback != nil {
		d.Fallback.Alert(msg)
	}
}

// Browser opens redirect targets in the default browser.
type Browser struct {
	open func(string) error
}

// NewBrowser returns a navigator using the system browser.
func NewBrowser() *Browser {
	return &Browser{open: browser.OpenURL}
}

func (b *Browser) Redirect(url string) error {
	if err := b.open(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

var (
	_ core.Notifier  = (*Printer)(nil)
	_ core.Notifier  = (*Dialog)(nil)
	_ core.Navigator = (*Browser)(nil)
)
