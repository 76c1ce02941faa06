// Package clipboard writes to the system clipboard, falling back to an OSC52
// escape sequence so copies still work over SSH and inside tmux.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Method reports which path a copy went through.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	if m == MethodOSC52 {
		return "osc52"
	}
	return "system"
}

// DisableOSC52Env turns the terminal fallback off when set to a true value.
const DisableOSC52Env = "ATCDESK_DISABLE_OSC52"

// System is a core.Clipboard backed by the host OS.
type System struct {
	writeAll func(string) error
	openTTY  func() (io.WriteCloser, error)
	getenv   func(string) string
	last     Method
}

// New returns a clipboard using the OS helper and /dev/tty.
func New() *System {
	return &System{
		writeAll: clipboard.WriteAll,
		openTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		getenv: os.Getenv,
	}
}

// LastMethod returns the path used by the last successful write.
func (s *System) LastMethod() Method { return s.last }

// WriteText implements core.Clipboard.
func (s *System) WriteText(text string) error {
	err := s.writeAll(text)
	if err == nil {
		s.last = MethodSystem
		return nil
	}
	oscErr := s.writeOSC52(text)
	if oscErr == nil {
		s.last = MethodOSC52
		return nil
	}
	return s.combine(err, oscErr)
}

func (s *System) writeOSC52(text string) error {
	if !s.osc52Enabled() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := s.openTTY()
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return s.writeSequence(tty, text)
}

func (s *System) writeSequence(w io.Writer, text string) error {
	term := strings.ToLower(strings.TrimSpace(s.getenv("TERM")))
	switch {
	case s.getenv("TMUX") != "":
		// tmux may or may not pass plain sequences through; send both.
		if _, err := osc52.New(text).WriteTo(w); err != nil {
			return err
		}
		_, err := osc52.New(text).Tmux().WriteTo(w)
		return err
	case strings.HasPrefix(term, "screen"):
		_, err := osc52.New(text).Screen().WriteTo(w)
		return err
	}
	_, err := osc52.New(text).WriteTo(w)
	return err
}

func (s *System) osc52Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(s.getenv(DisableOSC52Env))) {
	case "1", "true", "yes", "on":
		return false
	}
	term := strings.TrimSpace(s.getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}

func (s *System) combine(systemErr, oscErr error) error {
	if s.missingDisplay() {
		return fmt.Errorf("no GUI clipboard available (DISPLAY/WAYLAND_DISPLAY unset); OSC52 fallback failed: %s", humanize(oscErr))
	}
	return fmt.Errorf("system clipboard failed: %s; OSC52 fallback failed: %s", humanize(systemErr), humanize(oscErr))
}

func (s *System) missingDisplay() bool {
	return strings.TrimSpace(s.getenv("DISPLAY")) == "" && strings.TrimSpace(s.getenv("WAYLAND_DISPLAY")) == ""
}

func humanize(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "exit status 1" {
		return "clipboard helper exited with status 1"
	}
	return msg
}

var _ core.Clipboard = (*System)(nil)
