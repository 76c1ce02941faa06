package desk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Cursors set on the chart image.
const (
	CursorGrab     = "grab"
	CursorGrabbing = "grabbing"
)

// Chart drives the chart image from a ViewState.
type Chart struct {
	mu      *sync.Mutex
	store   core.Store
	surface core.ChartSurface
	frames  core.FrameScheduler
	logger  *slog.Logger

	shown        string
	view         ViewState
	framePending bool
}

func newChart(mu *sync.Mutex, store core.Store, surface core.ChartSurface, frames core.FrameScheduler, logger *slog.Logger) *Chart {
	return &Chart{mu: mu, store: store, surface: surface, frames: frames, logger: logger}
}

// View returns the current view state.
func (c *Chart) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Selected returns the persisted chart, empty when none was chosen.
func (c *Chart) Selected(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src, _, err := c.store.Get(ctx, core.KeyGroundChart)
	return src, err
}

// Select shows src, persists it and recenters the view.
func (c *Chart) Select(ctx context.Context, src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(ctx, src)
}

func (c *Chart) selectLocked(ctx context.Context, src string) error {
	c.surface.SetImageSource(src)
	c.shown = src
	if err := c.store.Set(ctx, core.KeyGroundChart, src); err != nil {
		return fmt.Errorf("persist chart selection: %w", err)
	}
	c.setView(c.view.Reset())
	return nil
}

// Load restores the persisted selection, falling back to whatever the
// selector currently shows. Only the fallback is written to the store.
func (c *Chart) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok, err := c.store.Get(ctx, core.KeyGroundChart)
	if err != nil {
		return err
	}
	if ok && src != "" {
		c.restoreLocked(src)
		return nil
	}
	src = c.surface.SelectedChart()
	if src == "" {
		c.setView(c.view.Reset())
		return nil
	}
	return c.selectLocked(ctx, src)
}

// refresh follows a change of the persisted chart. It never writes, and the
// view is kept while the chart stays the same.
func (c *Chart) refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok, err := c.store.Get(ctx, core.KeyGroundChart)
	if err != nil || !ok || src == "" || src == c.shown {
		return err
	}
	c.restoreLocked(src)
	return nil
}

// restoreLocked shows a stored chart without persisting it again.
func (c *Chart) restoreLocked(src string) {
	c.surface.SetSelectedChart(src)
	c.surface.SetImageSource(src)
	c.shown = src
	c.setView(c.view.Reset())
}

// ZoomIn raises the zoom by one step.
func (c *Chart) ZoomIn() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setView(c.view.ZoomIn())
	return c.view
}

// ZoomOut lowers the zoom by one step.
func (c *Chart) ZoomOut() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setView(c.view.ZoomOut())
	return c.view
}

// Reset recenters the chart at zoom 1.
func (c *Chart) Reset() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setView(c.view.Reset())
	return c.view
}

// PointerDown starts a drag when zoomed in.
func (c *Chart) PointerDown(p Pointer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, started := c.view.PointerDown(p)
	if !started {
		return false
	}
	c.view = next
	c.surface.CapturePointer(p.ID)
	c.surface.SetCursor(CursorGrabbing)
	return true
}

// PointerMove pans while dragging. With a frame scheduler, transforms are
// applied at most once per frame.
func (c *Chart) PointerMove(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Dragging() {
		return
	}
	c.view = c.view.PointerMove(p)
	if c.frames == nil {
		c.surface.SetTransform(c.view.Transform())
		return
	}
	if c.framePending {
		return
	}
	c.framePending = true
	c.frames.ScheduleFrame(c.flushFrame)
}

// flushFrame runs on the scheduler and must not be called with mu held.
func (c *Chart) flushFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.framePending = false
	c.surface.SetTransform(c.view.Transform())
}

// PointerUp ends a drag.
func (c *Chart) PointerUp(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Dragging() {
		return
	}
	c.view = c.view.PointerUp()
	c.surface.ReleasePointer(p.ID)
	c.surface.SetCursor(CursorGrab)
}

// DragStart reports that the native image drag must be suppressed.
func (c *Chart) DragStart() bool {
	return true
}

// ToggleFullscreen enters fullscreen, or leaves it when already there. A
// rejected request is logged and returned.
func (c *Chart) ToggleFullscreen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.surface.IsFullscreen() {
		if err := c.surface.RequestFullscreen(); err != nil {
			c.logger.Error("error attempting to enable fullscreen mode", "error", err)
			return fmt.Errorf("enable fullscreen: %w", err)
		}
		return nil
	}
	if err := c.surface.ExitFullscreen(); err != nil {
		c.logger.Error("error attempting to exit fullscreen mode", "error", err)
		return fmt.Errorf("exit fullscreen: %w", err)
	}
	return nil
}

func (c *Chart) setView(v ViewState) {
	c.view = v
	c.surface.SetTransform(v.Transform())
}
