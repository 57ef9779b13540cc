package drawutil

import "image"

// EdgeExit returns the cell on the border of rect facing target: the
// middle of the left, right, top or bottom side, whichever the direction
// to target crosses first. A degenerate rect, or a target at its center,
// yields the center.
func EdgeExit(rect image.Rectangle, target image.Point) image.Point {
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	hw := float64(rect.Dx()) / 2
	hh := float64(rect.Dy()) / 2
	dx := float64(target.X - cx)
	dy := float64(target.Y - cy)

	if (dx == 0 && dy == 0) || (hw == 0 && hh == 0) {
		return image.Pt(cx, cy)
	}
	var nx, ny float64
	if hw > 0 {
		nx = dx / hw
	}
	if hh > 0 {
		ny = dy / hh
	}
	if abs(int(nx*1000)) > abs(int(ny*1000)) {
		if dx > 0 {
			return image.Pt(rect.Max.X-1, cy)
		}
		return image.Pt(rect.Min.X, cy)
	}
	if dy > 0 {
		return image.Pt(cx, rect.Max.Y-1)
	}
	return image.Pt(cx, rect.Min.Y)
}

// Outside steps p one cell out of rect in the direction it lies on the
// border, so an arrowhead drawn there does not overwrite the frame.
func Outside(rect image.Rectangle, p image.Point) image.Point {
	switch {
	case p.X == rect.Min.X:
		return image.Pt(p.X-1, p.Y)
	case p.X == rect.Max.X-1:
		return image.Pt(p.X+1, p.Y)
	case p.Y == rect.Min.Y:
		return image.Pt(p.X, p.Y-1)
	case p.Y == rect.Max.Y-1:
		return image.Pt(p.X, p.Y+1)
	}
	return p
}
