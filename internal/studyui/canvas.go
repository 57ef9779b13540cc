package studyui

import (
	"image"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/cellbuf"
	"github.com/softpython2884/StudyVerse-sub000/pkg/drawutil"
	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/tealayout"
)

// gridSpacing is the dot grid pitch in cells.
var gridSpacing = image.Pt(6, 3)

// bezierSteps is how finely curved edges are sampled before rasterising.
const bezierSteps = 32

// nodeCells returns the cell rectangle of every node on the canvas.
func (m Model) nodeCells() map[string]image.Rectangle {
	g := m.ctl.Graph()
	v := m.ctl.Viewport()
	out := make(map[string]image.Rectangle, g.Len())
	for _, n := range g.Nodes() {
		if b, ok := g.Bounds(n.ID); ok {
			out[n.ID] = screenRectToCells(v.RectToScreen(b))
		}
	}
	return out
}

// renderCanvas draws grid, groups, edges and nodes into a cell buffer of
// the canvas size, back to front.
func (m Model) renderCanvas(w, h int) (*cellbuf.Buffer, *palette) {
	buf := cellbuf.New(w, h, styleBG)
	pal := newPalette()
	g := m.ctl.Graph()
	v := m.ctl.Viewport()
	sel := m.ctl.Selection()
	rects := m.nodeCells()

	origin := screenToCell(v.Offset)
	drawutil.DrawGrid(buf, image.Pt(-origin.X, -origin.Y), gridSpacing, styleGrid)

	for _, n := range g.Nodes() {
		if n.IsGroup() {
			drawGroup(buf, n, rects[n.ID], sel.HasNode(n.ID))
		}
	}

	for _, p := range m.ctl.LastPaths() {
		e, ok := g.Edge(p.EdgeID)
		if !ok {
			continue
		}
		from, okFrom := rects[e.From]
		to, okTo := rects[e.To]
		if !okFrom || !okTo {
			continue
		}
		style, arrow := styleEdge, styleArrow
		if sel.HasEdge(e.ID) {
			style, arrow = styleEdgeSel, styleArrowSel
		}
		stroke := strokeFor(p, m.frame)
		if e.From == e.To {
			drawutil.DrawSelfLoop(buf, from, stroke, style, arrow)
			continue
		}
		pts := drawutil.Trim(drawutil.Polyline(m.pathCells(p)), from, to)
		drawutil.DrawCells(buf, pts, stroke, style, arrow)
	}

	for _, n := range g.Nodes() {
		if !n.IsGroup() {
			drawNode(buf, pal, n, rects[n.ID], sel.HasNode(n.ID))
		}
	}

	if m.connectFrom != "" {
		if r, ok := rects[m.connectFrom]; ok {
			target := m.canvasMouse()
			if !target.In(r) {
				from := drawutil.Outside(r, drawutil.EdgeExit(r, target))
				drawutil.DrawLine(buf, from.X, from.Y, target.X, target.Y,
					drawutil.Stroke{Dash: drawutil.DashDashed, Arrow: true}, stylePreview)
			}
		}
	}

	if m.banding {
		r := image.Rectangle{Min: m.bandFrom, Max: m.bandTo}.Canon()
		buf.Frame(r.Min.X, r.Min.Y, r.Dx()+1, r.Dy()+1, cellbuf.FrameDashed, styleBand)
	}
	return buf, pal
}

// pathCells maps a routed path's vertices onto canvas cells.
func (m Model) pathCells(p edgeroute.Path) []image.Point {
	pts := p.Points
	if p.Kind == edgeroute.PathBezier {
		pts = edgeroute.Sample(p, bezierSteps)
	}
	v := m.ctl.Viewport()
	out := make([]image.Point, 0, len(pts))
	for _, pt := range pts {
		out = append(out, screenToCell(v.VirtualToScreen(pt)))
	}
	return out
}

// strokeFor maps an edge's style onto a terminal stroke. Animated edges
// march one cell per frame towards their target.
func strokeFor(p edgeroute.Path, frame int) drawutil.Stroke {
	s := drawutil.Stroke{Arrow: p.Arrow == graphmodel.ArrowClosed}
	switch p.Dash {
	case graphmodel.DashDashed:
		s.Dash = drawutil.DashDashed
	case graphmodel.DashDotted:
		s.Dash = drawutil.DashDotted
	}
	if p.Animated {
		if s.Dash == drawutil.DashSolid {
			s.Dash = drawutil.DashDashed
		}
		s.Phase = -frame
	}
	return s
}

func drawGroup(buf *cellbuf.Buffer, n graphmodel.Node, r image.Rectangle, selected bool) {
	border := styleGroupBorder
	if selected {
		border = styleGroupSel
	}
	buf.Box(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), cellbuf.FrameDashed, border, styleGroupFill)
	if label := truncate(n.Label, r.Dx()-4); label != "" {
		buf.SetString(r.Min.X+2, r.Min.Y, label, styleGroupLabel)
	}
}

func drawNode(buf *cellbuf.Buffer, pal *palette, n graphmodel.Node, r image.Rectangle, selected bool) {
	border, fill, text := pal.nodeKeys(n, selected)
	frame := cellbuf.FrameRounded
	switch {
	case selected:
		frame = cellbuf.FrameHeavy
	case n.Kind == graphmodel.KindInput || n.Kind == graphmodel.KindOutput:
		frame = cellbuf.FrameDouble
	}
	buf.Box(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), frame, border, fill)

	inner := r.Dx() - 2
	row := r.Min.Y + r.Dy()/2
	if n.Description != "" && r.Dy() >= 4 {
		row = r.Min.Y + 1
		desc := truncate(n.Description, inner-2)
		buf.SetString(centered(r, desc), row+1, desc, text)
	}
	label := truncate(n.Label, inner-2)
	buf.SetString(centered(r, label), row, label, text)
}

// centered returns the column where s starts when centered in r.
func centered(r image.Rectangle, s string) int {
	return r.Min.X + int(math.Max(0, float64(r.Dx()-lipgloss.Width(s))/2))
}

// buildCanvasLayer renders the canvas region as a single background layer.
func buildCanvasLayer(m Model, region tealayout.Region) *lipgloss.Layer {
	w, h := region.Rect.Dx(), region.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(region.Rect.Min.X).Y(region.Rect.Min.Y).Z(tealayout.ZBackground)
	}
	buf, pal := m.renderCanvas(w, h)
	rendered := buf.Render(pal.styles)
	return lipgloss.NewLayer(rendered).X(region.Rect.Min.X).Y(region.Rect.Min.Y).Z(tealayout.ZBackground).ID("canvas")
}
