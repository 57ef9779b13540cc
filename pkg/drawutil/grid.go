package drawutil

import (
	"image"

	"github.com/softpython2884/StudyVerse-sub000/pkg/cellbuf"
)

// DrawGrid dots every cell whose canvas coordinate is a multiple of
// spacing. origin is the canvas coordinate of the buffer's top-left cell,
// so the grid scrolls with the view.
func DrawGrid(buf *cellbuf.Buffer, origin image.Point, spacing image.Point, style cellbuf.StyleKey) {
	if spacing.X <= 0 || spacing.Y <= 0 {
		return
	}
	for r := range buf.H {
		if mod(r+origin.Y, spacing.Y) != 0 {
			continue
		}
		for c := range buf.W {
			if mod(c+origin.X, spacing.X) == 0 {
				buf.Set(c, r, '·', style)
			}
		}
	}
}

// mod is a modulus that is never negative.
func mod(a, m int) int {
	if m == 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
