package desk

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Copier copies the preset strings to the clipboard and tells the user.
type Copier struct {
	presets   core.Presets
	clipboard core.Clipboard
	notifier  core.Notifier
	logger    *slog.Logger
}

// Presets returns the strings this copier hands out.
func (c *Copier) Presets() core.Presets { return c.presets }

// CopyServer copies the server code.
func (c *Copier) CopyServer() error {
	return c.copy(c.presets.ServerCode, "Server code copied to clipboard: "+c.presets.ServerCode)
}

// CopyPassword copies the server password.
func (c *Copier) CopyPassword() error {
	return c.copy(c.presets.Password, "Password copied to clipboard: "+c.presets.Password)
}

// CopyATIS copies the ATIS text.
func (c *Copier) CopyATIS() error {
	return c.copy(c.presets.ATIS, "ATIS copied to clipboard.")
}

func (c *Copier) copy(text, success string) error {
	if err := c.clipboard.WriteText(text); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
		c.notifier.Alert(fmt.Sprintf("Copy failed: %v", err))
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	c.notifier.Alert(success)
	return nil
}
