package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

func TestDragPansOnlyOnCanvas(t *testing.T) {
	tests := []struct {
		hit  HitKind
		pans bool
	}{
		{HitCanvas, true},
		{HitNode, false},
		{HitHandle, false},
		{HitEdge, false},
		{HitControl, false},
		{HitLink, false},
		{HitEditable, false},
	}
	for _, tc := range tests {
		v := New(Config{})
		g := NewGestures(v, geom.Sz(800, 600))
		started := g.PointerDown(geom.Pt(10, 10), tc.hit)
		g.PointerMove(geom.Pt(30, 5))
		g.PointerUp()

		assert.Equal(t, tc.pans, started, "hit %d", tc.hit)
		if tc.pans {
			assert.Equal(t, geom.Pt(20, -5), v.Offset)
		} else {
			assert.Equal(t, geom.Point{}, v.Offset)
		}
	}
}

func TestPointerMoveAfterUpDoesNothing(t *testing.T) {
	v := New(Config{})
	g := NewGestures(v, geom.Sz(800, 600))
	g.PointerDown(geom.Pt(0, 0), HitCanvas)
	g.PointerUp()
	assert.False(t, g.PointerMove(geom.Pt(50, 50)))
	assert.False(t, g.Panning())
}

func TestWheelPans(t *testing.T) {
	v := New(Config{})
	g := NewGestures(v, geom.Sz(800, 600))
	g.Wheel(geom.Pt(0, 30), 0)
	assert.Equal(t, geom.Pt(0, -30), v.Offset)
	assert.Equal(t, 1.0, v.Zoom)
}

func TestWheelWithModifierZooms(t *testing.T) {
	v := New(Config{})
	g := NewGestures(v, geom.Sz(800, 600))

	g.Wheel(geom.Pt(0, -1), ModCtrl)
	assert.InDelta(t, 1.1, v.Zoom, 1e-9)

	g.Wheel(geom.Pt(0, 1), ModMeta)
	assert.InDelta(t, 1.0, v.Zoom, 1e-9)

	// the screen center stays put while zooming
	center := geom.Pt(400, 300)
	before := v.ScreenToVirtual(center)
	g.Wheel(geom.Pt(0, -3), ModCtrl|ModShift)
	after := v.ScreenToVirtual(center)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestWheelZoomStaysClamped(t *testing.T) {
	v := New(Config{})
	g := NewGestures(v, geom.Sz(800, 600))
	for range 100 {
		g.Wheel(geom.Pt(0, -1), ModCtrl)
	}
	assert.Equal(t, DefaultMaxZoom, v.Zoom)
}
