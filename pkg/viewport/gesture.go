package viewport

import (
	"math"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

// HitKind says what lies under the pointer when a gesture starts. The host
// renderer answers this from its own hit testing.
type HitKind int

const (
	HitCanvas HitKind = iota
	HitNode
	HitHandle
	HitEdge
	HitControl  // buttons, menu entries
	HitLink     // hyperlinks
	HitEditable // text inputs and other editable regions
)

// Pannable reports whether a drag starting on k should pan the canvas.
// Only empty canvas pans; everything else owns its own drag.
func (k HitKind) Pannable() bool { return k == HitCanvas }

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits in m2 are set.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

const (
	DefaultWheelZoomStep = 1.1
	DefaultWheelPanScale = 1.0
)

// Gestures turns pointer and wheel events into viewport changes.
type Gestures struct {
	View          *Viewport
	Screen        geom.Size // current screen size, for center-anchored zoom
	WheelZoomStep float64
	WheelPanScale float64

	panning bool
	last    geom.Point
}

// NewGestures binds a gesture handler to v.
func NewGestures(v *Viewport, screen geom.Size) *Gestures {
	return &Gestures{
		View:          v,
		Screen:        screen,
		WheelZoomStep: DefaultWheelZoomStep,
		WheelPanScale: DefaultWheelPanScale,
	}
}

// Panning reports whether a drag-to-pan is in progress.
func (g *Gestures) Panning() bool { return g.panning }

// PointerDown starts a pan when the pointer went down on empty canvas and
// reports whether it did.
func (g *Gestures) PointerDown(p geom.Point, hit HitKind) bool {
	if !hit.Pannable() {
		g.panning = false
		return false
	}
	g.panning = true
	g.last = p
	return true
}

// PointerMove pans by the delta since the last pointer position. It
// reports whether the viewport changed.
func (g *Gestures) PointerMove(p geom.Point) bool {
	if !g.panning {
		return false
	}
	d := p.Sub(g.last)
	g.last = p
	if d.X == 0 && d.Y == 0 {
		return false
	}
	g.View.PanBy(d.X, d.Y)
	return true
}

// PointerUp ends any pan in progress.
func (g *Gestures) PointerUp() { g.panning = false }

// Wheel pans by the scroll delta, or zooms when ctrl/meta is held. Zoom is
// anchored at the screen center rather than the cursor.
func (g *Gestures) Wheel(delta geom.Point, mods Modifiers) {
	if mods.Has(ModCtrl) || mods.Has(ModMeta) {
		if delta.Y == 0 {
			return
		}
		step := g.WheelZoomStep
		if step <= 1 {
			step = DefaultWheelZoomStep
		}
		// scrolling up (negative dy) zooms in
		factor := math.Pow(step, -sign(delta.Y))
		g.View.ZoomAround(factor, geom.Pt(g.Screen.W/2, g.Screen.H/2))
		return
	}
	scale := g.WheelPanScale
	if scale == 0 {
		scale = DefaultWheelPanScale
	}
	g.View.PanBy(-delta.X*scale, -delta.Y*scale)
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}
