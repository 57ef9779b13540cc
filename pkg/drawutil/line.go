// Package drawutil rasterises diagram geometry into a cellbuf.Buffer:
// Bresenham lines and polylines, dash patterns, arrowheads, border exit
// points and the background dot grid.
package drawutil

import "image"

// Bresenham returns the cells on the line from (x0,y0) to (x1,y1),
// both endpoints included.
func Bresenham(x0, y0, x1, y1 int) []image.Point {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	x, y := x0, y0

	pts := make([]image.Point, 0, max(dx, dy)+1)
	for range dx + dy + 2 {
		pts = append(pts, image.Pt(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// Polyline joins consecutive vertices with Bresenham segments. Shared
// vertices appear once.
func Polyline(vertices []image.Point) []image.Point {
	if len(vertices) == 0 {
		return nil
	}
	out := []image.Point{vertices[0]}
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		seg := Bresenham(a.X, a.Y, b.X, b.Y)
		out = append(out, seg[1:]...)
	}
	return out
}

// LineChar is the box-drawing rune for a step of (dx, dy).
func LineChar(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return '·'
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// ArrowChar is the arrowhead for the dominant direction of (dx, dy).
func ArrowChar(dx, dy int) rune {
	if abs(dy) > abs(dx) {
		if dy > 0 {
			return '▼'
		}
		return '▲'
	}
	if dx < 0 {
		return '◀'
	}
	return '▶'
}

// stepAt is the direction of travel at index i of a rasterised path.
func stepAt(pts []image.Point, i int) (dx, dy int) {
	switch {
	case i < len(pts)-1:
		return pts[i+1].X - pts[i].X, pts[i+1].Y - pts[i].Y
	case i > 0:
		return pts[i].X - pts[i-1].X, pts[i].Y - pts[i-1].Y
	}
	return 0, 0
}

// cornerAt picks a corner rune where a path turns between horizontal and
// vertical travel, or 0 when it does not turn.
func cornerAt(pts []image.Point, i int) rune {
	if i == 0 || i >= len(pts)-1 {
		return 0
	}
	in := pts[i].Sub(pts[i-1])
	out := pts[i+1].Sub(pts[i])
	switch {
	case in.Y == 0 && out.X == 0 && in.X != 0 && out.Y != 0:
		// horizontal then vertical
		return corner(-in.X, out.Y)
	case in.X == 0 && out.Y == 0 && in.Y != 0 && out.X != 0:
		// vertical then horizontal
		return corner(out.X, -in.Y)
	}
	return 0
}

// corner returns the rune joining an arm towards sx (±1 horizontally) and
// an arm towards sy (±1 vertically).
func corner(sx, sy int) rune {
	switch {
	case sx > 0 && sy > 0:
		return '┌'
	case sx < 0 && sy > 0:
		return '┐'
	case sx > 0 && sy < 0:
		return '└'
	default:
		return '┘'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
