package drawutil

import (
	"image"

	"github.com/softpython2884/StudyVerse-sub000/pkg/cellbuf"
)

// Dash is a stroke pattern.
type Dash int

const (
	DashSolid Dash = iota
	DashDashed
	DashDotted
)

// Stroke controls how a path is drawn. Phase shifts the dash pattern
// along the path; advancing it each frame makes the dashes march.
type Stroke struct {
	Dash  Dash
	Phase int
	Arrow bool
}

// on reports whether cell i of a path is inked.
func (s Stroke) on(i int) bool {
	k := i + s.Phase
	switch s.Dash {
	case DashDashed:
		return mod(k, 4) < 3
	case DashDotted:
		return mod(k, 2) == 0
	default:
		return true
	}
}

// DrawPath rasterises the polyline through vertices into buf. Orthogonal
// turns get corner runes. With Arrow set, the last cell is an arrowhead
// in arrowStyle.
func DrawPath(buf *cellbuf.Buffer, vertices []image.Point, s Stroke, style, arrowStyle cellbuf.StyleKey) {
	DrawCells(buf, Polyline(vertices), s, style, arrowStyle)
}

// DrawCells draws an already rasterised path of adjacent cells.
func DrawCells(buf *cellbuf.Buffer, pts []image.Point, s Stroke, style, arrowStyle cellbuf.StyleKey) {
	if len(pts) == 0 {
		return
	}
	last := len(pts) - 1
	if s.Arrow {
		last--
	}
	for i := 0; i <= last; i++ {
		if !s.on(i) {
			continue
		}
		ch := cornerAt(pts, i)
		if ch == 0 {
			ch = LineChar(stepAt(pts, i))
		}
		buf.Set(pts[i].X, pts[i].Y, ch, style)
	}
	if s.Arrow {
		end := pts[len(pts)-1]
		buf.Set(end.X, end.Y, ArrowChar(stepAt(pts, len(pts)-1)), arrowStyle)
	}
}

// Trim drops the leading cells inside from and the trailing cells inside
// to, so a path between two boxes starts and ends on their borders. A path
// that never leaves the boxes trims to nothing.
func Trim(pts []image.Point, from, to image.Rectangle) []image.Point {
	start := 0
	for start < len(pts) && pts[start].In(from) {
		start++
	}
	end := len(pts)
	for end > start && pts[end-1].In(to) {
		end--
	}
	return pts[start:end]
}

// DrawLine draws a single segment.
func DrawLine(buf *cellbuf.Buffer, x0, y0, x1, y1 int, s Stroke, style cellbuf.StyleKey) {
	DrawPath(buf, []image.Point{image.Pt(x0, y0), image.Pt(x1, y1)}, s, style, style)
}

// DrawSelfLoop draws a small loop leaving the right side of box and
// coming back into its top.
func DrawSelfLoop(buf *cellbuf.Buffer, box image.Rectangle, s Stroke, style, arrowStyle cellbuf.StyleKey) {
	midY := (box.Min.Y + box.Max.Y) / 2
	reach := box.Max.X + 2
	top := box.Min.Y - 2
	entry := box.Max.X - 2
	DrawPath(buf, []image.Point{
		image.Pt(box.Max.X, midY),
		image.Pt(reach, midY),
		image.Pt(reach, top),
		image.Pt(entry, top),
		image.Pt(entry, box.Min.Y-1),
	}, s, style, arrowStyle)
}
