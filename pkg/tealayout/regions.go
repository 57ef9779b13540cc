// Package tealayout splits the terminal into named regions and builds the
// chrome layers (bars, panels, overlays) for a bubbletea v2 + lipgloss v2
// view.
package tealayout

import "image"

// Region is a named rectangle of terminal cells.
type Region struct {
	Name string
	Rect image.Rectangle
}

// Contains reports whether cell p lies inside the region.
func (r Region) Contains(p image.Point) bool { return p.In(r.Rect) }

// Local converts a terminal cell to region-relative coordinates.
func (r Region) Local(p image.Point) image.Point { return p.Sub(r.Rect.Min) }

// Empty reports whether the region has no cells.
func (r Region) Empty() bool { return r.Rect.Empty() }

// Layout is the set of regions computed for one terminal size.
type Layout struct {
	TermW, TermH int
	Regions      map[string]Region
	order        []string
}

// Get returns the named region, or the zero Region.
func (l Layout) Get(name string) Region {
	return l.Regions[name]
}

// Locate returns the first region, in declaration order, containing p.
func (l Layout) Locate(p image.Point) (Region, bool) {
	for _, name := range l.order {
		if r := l.Regions[name]; r.Contains(p) {
			return r, true
		}
	}
	return Region{}, false
}

// LayoutBuilder carves fixed strips off the terminal edges and hands the
// rest to Remaining.
type LayoutBuilder struct {
	termW, termH int
	top, bottom  int
	right        int
	regions      []Region
}

// NewLayoutBuilder starts a layout for a termW×termH terminal.
func NewLayoutBuilder(termW, termH int) *LayoutBuilder {
	return &LayoutBuilder{termW: termW, termH: termH}
}

// TopFixed takes height rows below any earlier top strips.
func (b *LayoutBuilder) TopFixed(name string, height int) *LayoutBuilder {
	b.add(name, image.Rect(0, b.top, b.termW, b.top+height))
	b.top += height
	return b
}

// BottomFixed takes height rows above any earlier bottom strips.
func (b *LayoutBuilder) BottomFixed(name string, height int) *LayoutBuilder {
	y := b.termH - b.bottom - height
	b.add(name, image.Rect(0, y, b.termW, y+height))
	b.bottom += height
	return b
}

// RightFixed takes width columns between the top and bottom strips.
func (b *LayoutBuilder) RightFixed(name string, width int) *LayoutBuilder {
	x := b.termW - b.right - width
	b.add(name, image.Rect(x, b.top, x+width, b.termH-b.bottom))
	b.right += width
	return b
}

// Remaining takes what is left, or nothing if the strips used it all.
func (b *LayoutBuilder) Remaining(name string) *LayoutBuilder {
	var rect image.Rectangle
	if x1, y1 := b.termW-b.right, b.termH-b.bottom; x1 > 0 && y1 > b.top {
		rect = image.Rect(0, b.top, x1, y1)
	}
	b.add(name, rect)
	return b
}

func (b *LayoutBuilder) add(name string, r image.Rectangle) {
	b.regions = append(b.regions, Region{Name: name, Rect: r})
}

// Build returns the layout. Inverted rectangles become empty.
func (b *LayoutBuilder) Build() Layout {
	l := Layout{
		TermW:   b.termW,
		TermH:   b.termH,
		Regions: make(map[string]Region, len(b.regions)),
	}
	for _, r := range b.regions {
		if r.Rect.Min.X >= r.Rect.Max.X || r.Rect.Min.Y >= r.Rect.Max.Y {
			r.Rect = image.Rectangle{}
		}
		l.Regions[r.Name] = r
		l.order = append(l.order, r.Name)
	}
	return l
}
