package studyui

import (
	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

// previewMargin is the gap, in cells, left above and beside the diagram.
var previewMargin = geom.Pt(2*CellW, CellH)

// Preview renders the controller's graph into a cols x rows block of
// text without starting the event loop. Nodes are measured and the view
// is panned so the diagram starts near the top-left corner. Styled output
// carries ANSI colors; plain output is bare runes.
func Preview(ctl *editor.Controller, cols, rows int, styled bool) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	ctl.Resize(geom.Sz(float64(cols*CellW), float64(rows*CellH)))
	m := New(Options{Controller: ctl})
	m.settle()

	g := ctl.Graph()
	var extent geom.Rect
	for _, n := range g.Nodes() {
		if n.ParentID != "" {
			continue
		}
		if r, ok := g.Bounds(n.ID); ok {
			extent = extent.Union(r)
		}
	}
	if !extent.Empty() {
		v := ctl.Viewport()
		at := v.VirtualToScreen(extent.Min)
		ctl.PanBy(previewMargin.X-at.X, previewMargin.Y-at.Y)
	}

	buf, pal := m.renderCanvas(cols, rows)
	if !styled {
		return buf.String()
	}
	return buf.Render(pal.styles)
}
