package studyui

import (
	"image"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// One terminal cell covers CellW×CellH screen units at zoom 1, so a
// default 150×40 node is 15×3 cells.
const (
	CellW = 10
	CellH = 14
)

// cellToScreen returns the screen point at the center of canvas cell p.
func cellToScreen(p image.Point) geom.Point {
	return geom.Pt((float64(p.X)+0.5)*CellW, (float64(p.Y)+0.5)*CellH)
}

// screenToCell returns the canvas cell containing screen point p.
func screenToCell(p geom.Point) image.Point {
	return image.Pt(int(math.Floor(p.X/CellW)), int(math.Floor(p.Y/CellH)))
}

// screenRectToCells snaps a screen rectangle to whole cells. Boxes keep a
// minimum of 4×3 cells so a label row always fits.
func screenRectToCells(r geom.Rect) image.Rectangle {
	x0 := int(math.Round(r.Min.X / CellW))
	y0 := int(math.Round(r.Min.Y / CellH))
	x1 := max(int(math.Round(r.Max.X/CellW)), x0+4)
	y1 := max(int(math.Round(r.Max.Y/CellH)), y0+3)
	return image.Rect(x0, y0, x1, y1)
}

// cellsToScreenRect is the screen rectangle covered by canvas cells r.
func cellsToScreenRect(r image.Rectangle) geom.Rect {
	return geom.Rect{
		Min: geom.Pt(float64(r.Min.X)*CellW, float64(r.Min.Y)*CellH),
		Max: geom.Pt(float64(r.Max.X)*CellW, float64(r.Max.Y)*CellH),
	}
}

// measureNode is the size a node renders at in the terminal: its text
// plus a border and a space of padding each side, three rows tall, or four
// with a description. Nodes never measure narrower than the default.
func measureNode(n graphmodel.Node) geom.Size {
	cols := max(lipgloss.Width(n.Label), lipgloss.Width(n.Description))
	rows := 3
	if n.Description != "" {
		rows = 4
	}
	w := math.Max(float64((cols+4)*CellW), graphmodel.DefaultNodeSize.W)
	return geom.Sz(w, float64(rows*CellH))
}

// truncate cuts s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	rs := []rune(s)
	for len(rs) > 0 && lipgloss.Width(string(rs))+1 > n {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "…"
}
