package desk

import (
	"fmt"
	"strconv"
)

// Zoom limits. The zoom factor moves in fixed steps between MinZoom and
// MaxZoom.
const (
	MinZoom  = 1.0
	MaxZoom  = 3.0
	ZoomStep = 0.2

	stepsPerUnit = 5 // 1 / ZoomStep
	maxZoomSteps = 10
)

// CenteredTransform is the chart transform at zoom 1.
const CenteredTransform = "translate(-50%, -50%) scale(1)"

// Pointer is a pointer position in page pixels.
type Pointer struct {
	ID int
	X  float64
	Y  float64
}

// ViewState is the pan/zoom state of the chart. It is a value: every
// handler returns the next state and leaves the receiver unchanged.
//
// Zoom is held as a count of steps so repeated zooming never accumulates
// float error.
type ViewState struct {
	steps    int
	offsetX  float64
	offsetY  float64
	dragging bool
	startX   float64
	startY   float64
}

// Zoom returns the zoom factor in [MinZoom, MaxZoom]. The single division
// yields the float64 nearest to the decimal value, so three steps compare
// equal to 1.6.
func (v ViewState) Zoom() float64 {
	return float64(stepsPerUnit+v.steps) / stepsPerUnit
}

// Offset returns the pan offset in pixels.
func (v ViewState) Offset() (x, y float64) {
	return v.offsetX, v.offsetY
}

// Dragging reports whether a drag is in progress.
func (v ViewState) Dragging() bool {
	return v.dragging
}

// ZoomIn raises the zoom by one step, up to MaxZoom.
func (v ViewState) ZoomIn() ViewState {
	if v.steps < maxZoomSteps {
		v.steps++
	}
	return v
}

// ZoomOut lowers the zoom by one step. Reaching MinZoom recenters the chart
// and ends any drag.
func (v ViewState) ZoomOut() ViewState {
	if v.steps > 0 {
		v.steps--
	}
	if v.steps == 0 {
		v.offsetX, v.offsetY = 0, 0
		v.dragging = false
	}
	return v
}

// Reset returns to zoom 1, centered, not dragging.
func (v ViewState) Reset() ViewState {
	return ViewState{}
}

// PointerDown starts a drag when zoomed in. started is false at zoom 1.
func (v ViewState) PointerDown(p Pointer) (next ViewState, started bool) {
	if v.steps == 0 {
		return v, false
	}
	v.dragging = true
	v.startX = p.X - v.offsetX
	v.startY = p.Y - v.offsetY
	return v, true
}

// PointerMove pans by the pointer delta while dragging.
func (v ViewState) PointerMove(p Pointer) ViewState {
	if !v.dragging {
		return v
	}
	v.offsetX = p.X - v.startX
	v.offsetY = p.Y - v.startY
	return v
}

// PointerUp ends a drag.
func (v ViewState) PointerUp() ViewState {
	v.dragging = false
	return v
}

// Transform renders the state as a CSS transform.
func (v ViewState) Transform() string {
	if v.steps == 0 {
		return CenteredTransform
	}
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", num(v.offsetX), num(v.offsetY), num(v.Zoom()))
}

func (v ViewState) String() string {
	return fmt.Sprintf("zoom=%s offset=(%s,%s) dragging=%t", num(v.Zoom()), num(v.offsetX), num(v.offsetY), v.dragging)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
