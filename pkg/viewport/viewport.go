// Package viewport maps between screen space and the fixed virtual canvas
// that node positions live in, and turns pointer and wheel gestures into
// pan/zoom changes.
//
// The transform is screen = virtual*zoom + offset.
package viewport

import (
	"math"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

const (
	DefaultMinZoom = 0.25
	DefaultMaxZoom = 3.0
)

// DefaultCanvas is the size of the virtual canvas nodes are laid out on.
var DefaultCanvas = geom.Sz(2000, 1400)

// Config holds the zoom bounds and the state Reset returns to.
type Config struct {
	MinZoom       float64
	MaxZoom       float64
	InitialZoom   float64
	InitialOffset geom.Point
}

// Viewport is the transient pan/zoom state of one editing session.
type Viewport struct {
	Zoom   float64
	Offset geom.Point
	cfg    Config
}

// New creates a viewport. Zero or inconsistent bounds fall back to the
// defaults, and the initial zoom is clamped into range.
func New(cfg Config) *Viewport {
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultMinZoom
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = DefaultMaxZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MinZoom, cfg.MaxZoom = cfg.MaxZoom, cfg.MinZoom
	}
	if cfg.InitialZoom <= 0 {
		cfg.InitialZoom = 1
	}
	cfg.InitialZoom = geom.Clamp(cfg.InitialZoom, cfg.MinZoom, cfg.MaxZoom)

	v := &Viewport{cfg: cfg}
	v.Reset()
	return v
}

// Config returns the bounds the viewport was created with.
func (v *Viewport) Config() Config { return v.cfg }

// ZoomBy multiplies the zoom by factor and clamps it. Non-positive, NaN and
// infinite factors are ignored. The offset is left alone.
func (v *Viewport) ZoomBy(factor float64) {
	if !validFactor(factor) {
		return
	}
	v.Zoom = geom.Clamp(v.Zoom*factor, v.cfg.MinZoom, v.cfg.MaxZoom)
}

// ZoomAround zooms by factor while keeping the virtual point under the
// screen-space anchor fixed on screen.
func (v *Viewport) ZoomAround(factor float64, anchor geom.Point) {
	if !validFactor(factor) {
		return
	}
	pinned := v.ScreenToVirtual(anchor)
	v.ZoomBy(factor)
	v.Offset = anchor.Sub(pinned.Scale(v.Zoom))
}

// PanBy moves the offset by a screen-space delta. Panning is unbounded.
func (v *Viewport) PanBy(dx, dy float64) {
	v.Offset = v.Offset.Add(geom.Pt(dx, dy))
}

// Reset restores the initial zoom and offset.
func (v *Viewport) Reset() {
	v.Zoom = v.cfg.InitialZoom
	v.Offset = v.cfg.InitialOffset
}

// ScreenToVirtual maps a screen point onto the virtual canvas.
func (v *Viewport) ScreenToVirtual(p geom.Point) geom.Point {
	return p.Sub(v.Offset).Scale(1 / v.Zoom)
}

// VirtualToScreen maps a virtual canvas point onto the screen.
func (v *Viewport) VirtualToScreen(p geom.Point) geom.Point {
	return p.Scale(v.Zoom).Add(v.Offset)
}

// RectToScreen maps a virtual rectangle onto the screen.
func (v *Viewport) RectToScreen(r geom.Rect) geom.Rect {
	return geom.Rect{Min: v.VirtualToScreen(r.Min), Max: v.VirtualToScreen(r.Max)}
}

// Center returns the virtual point under the middle of a screen of the
// given size.
func (v *Viewport) Center(screen geom.Size) geom.Point {
	return v.ScreenToVirtual(geom.Pt(screen.W/2, screen.H/2))
}

// Visible returns the part of the virtual canvas shown on a screen of the
// given size.
func (v *Viewport) Visible(screen geom.Size) geom.Rect {
	return geom.Rect{
		Min: v.ScreenToVirtual(geom.Pt(0, 0)),
		Max: v.ScreenToVirtual(geom.Pt(screen.W, screen.H)),
	}
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
