package desk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/atcdesk/pkg/desk"
)

func TestViewState_ZoomSteps(t *testing.T) {
	var v desk.ViewState
	assert.Equal(t, 1.0, v.Zoom())
	assert.Equal(t, desk.CenteredTransform, v.Transform())

	v = v.ZoomIn().ZoomIn().ZoomIn()
	assert.Equal(t, 1.6, v.Zoom())
	assert.Equal(t, "translate(0px, 0px) scale(1.6)", v.Transform())

	v = v.ZoomIn().ZoomIn().ZoomIn().ZoomIn()
	assert.Equal(t, 2.4, v.Zoom())
}

func TestViewState_Clamped(t *testing.T) {
	var v desk.ViewState
	for range 20 {
		v = v.ZoomIn()
	}
	assert.Equal(t, desk.MaxZoom, v.Zoom())

	for range 20 {
		v = v.ZoomOut()
	}
	assert.Equal(t, desk.MinZoom, v.Zoom())
	assert.Equal(t, desk.CenteredTransform, v.Transform())
}

func TestViewState_DragRequiresZoom(t *testing.T) {
	var v desk.ViewState
	next, started := v.PointerDown(desk.Pointer{X: 10, Y: 10})
	assert.False(t, started)
	assert.False(t, next.Dragging())

	v = v.ZoomIn()
	v, started = v.PointerDown(desk.Pointer{X: 10, Y: 10})
	assert.True(t, started)
	assert.True(t, v.Dragging())

	v = v.PointerMove(desk.Pointer{X: 40, Y: -5})
	x, y := v.Offset()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, -15.0, y)
	assert.Equal(t, "translate(30px, -15px) scale(1.2)", v.Transform())

	v = v.PointerUp()
	assert.False(t, v.Dragging())

	// A second drag continues from the current offset.
	v, _ = v.PointerDown(desk.Pointer{X: 0, Y: 0})
	v = v.PointerMove(desk.Pointer{X: 5, Y: 5}).PointerUp()
	x, y = v.Offset()
	assert.Equal(t, 35.0, x)
	assert.Equal(t, -10.0, y)
}

func TestViewState_MoveWithoutDragIsIgnored(t *testing.T) {
	v := desk.ViewState{}.ZoomIn()
	v = v.PointerMove(desk.Pointer{X: 100, Y: 100})
	x, y := v.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestViewState_ZoomOutToOneRecenters(t *testing.T) {
	v := desk.ViewState{}.ZoomIn()
	v, _ = v.PointerDown(desk.Pointer{})
	v = v.PointerMove(desk.Pointer{X: 50, Y: 50}).PointerUp()

	v = v.ZoomIn().ZoomOut()
	x, _ := v.Offset()
	assert.Equal(t, 50.0, x, "offset kept while still zoomed")

	v = v.ZoomOut()
	x, y := v.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Equal(t, desk.CenteredTransform, v.Transform())
}

func TestViewState_ZoomOutToOneEndsDrag(t *testing.T) {
	v := desk.ViewState{}.ZoomIn()
	v, _ = v.PointerDown(desk.Pointer{})
	v = v.ZoomOut()
	assert.False(t, v.Dragging())

	v = v.PointerMove(desk.Pointer{X: 80, Y: 40}).ZoomIn()
	x, y := v.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Equal(t, "translate(0px, 0px) scale(1.2)", v.Transform())
}

func TestViewState_IsValue(t *testing.T) {
	v := desk.ViewState{}
	_ = v.ZoomIn()
	assert.Equal(t, 1.0, v.Zoom())
}
