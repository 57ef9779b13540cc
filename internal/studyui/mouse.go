package studyui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/viewport"
)

// wheelCells is how many cells one wheel notch pans.
const wheelCells = 3

// edgeTolerance is the edge hit distance in screen units, wide enough to
// cover the cell a rasterised edge is drawn in.
const edgeTolerance = editor.EdgeHitTolerance + CellH/2

// canvasMouse returns the mouse position in canvas cells.
func (m Model) canvasMouse() image.Point {
	return m.layout().Get(regionCanvas).Local(image.Pt(m.MouseX, m.MouseY))
}

func modifiers(mod tea.KeyMod) viewport.Modifiers {
	var out viewport.Modifiers
	if mod.Contains(tea.ModShift) {
		out |= viewport.ModShift
	}
	if mod.Contains(tea.ModCtrl) {
		out |= viewport.ModCtrl
	}
	if mod.Contains(tea.ModAlt) {
		out |= viewport.ModAlt
	}
	if mod.Contains(tea.ModMeta) {
		out |= viewport.ModMeta
	}
	return out
}

// handleMouse processes mouse events and returns updated model + command.
func handleMouse(m Model, msg tea.MouseMsg) (Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y
	if m.prompt != promptNone {
		return m, nil
	}

	pt := image.Pt(mouse.X, mouse.Y)
	canvas := m.layout().Get(regionCanvas)
	local := canvas.Local(pt)
	sp := cellToScreen(local)
	mods := modifiers(mouse.Mod)

	switch msg.(type) {
	case tea.MouseWheelMsg:
		if canvas.Contains(pt) {
			m.wheel(mouse.Button, mods)
		}

	case tea.MouseClickMsg:
		if _, open := m.ctl.Menu(); open {
			if item, inside := m.menuItemAt(pt); inside {
				return m.runMenuItem(item)
			}
			m.ctl.CloseMenu()
		}
		if !canvas.Contains(pt) {
			return m, nil
		}
		switch mouse.Button {
		case tea.MouseLeft:
			return m.leftDown(sp, local, mods)
		case tea.MouseRight:
			m.rightClick(sp)
		}

	case tea.MouseMotionMsg:
		switch {
		case m.dragging:
			abs := m.ctl.Viewport().ScreenToVirtual(sp).Sub(m.dragOff)
			if err := m.ctl.DragNode(m.dragID, abs); err != nil {
				m.dragging = false
			}
		case m.banding:
			m.bandTo = local
		default:
			m.gestures.PointerMove(sp)
		}

	case tea.MouseReleaseMsg:
		if m.banding {
			r := image.Rectangle{Min: m.bandFrom, Max: m.bandTo}.Canon()
			r.Max = r.Max.Add(image.Pt(1, 1))
			m.ctl.SelectRect(cellsToScreenRect(r), m.bandAdd)
		}
		m.dragging = false
		m.banding = false
		m.gestures.PointerUp()
	}

	return m, nil
}

// wheel pans by a few cells per notch, or zooms with ctrl held.
func (m *Model) wheel(button tea.MouseButton, mods viewport.Modifiers) {
	var d geom.Point
	switch button {
	case tea.MouseWheelUp:
		d = geom.Pt(0, -wheelCells*CellH)
	case tea.MouseWheelDown:
		d = geom.Pt(0, wheelCells*CellH)
	case tea.MouseWheelLeft:
		d = geom.Pt(-wheelCells*CellW, 0)
	case tea.MouseWheelRight:
		d = geom.Pt(wheelCells*CellW, 0)
	default:
		return
	}
	if mods.Has(viewport.ModShift) && d.X == 0 {
		d = geom.Pt(d.Y/CellH*CellW, 0)
	}
	m.gestures.Wheel(d, mods)
}

// leftDown dispatches a left press on the canvas by tool and hit target.
func (m Model) leftDown(sp geom.Point, local image.Point, mods viewport.Modifiers) (Model, tea.Cmd) {
	node, onNode := m.ctl.NodeAt(sp)

	if m.tool == ToolConnect {
		switch {
		case !onNode:
			m.connectFrom = ""
		case m.connectFrom == "":
			m.connectFrom = node.ID
		default:
			if _, err := m.ctl.Connect(m.connectFrom, node.ID); err != nil {
				m.ctl.Report(err)
			}
			m.connectFrom = ""
			m.tool = ToolSelect
		}
		return m, nil
	}

	if onNode {
		now := m.now()
		if node.ID == m.lastClickID && now.Sub(m.lastClickAt) < DoubleClickInterval {
			m.lastClickID = ""
			return m.openRename(node.ID)
		}
		m.lastClickID, m.lastClickAt = node.ID, now

		sel := m.ctl.Selection()
		switch {
		case mods.Has(viewport.ModShift):
			m.ctl.ToggleSelect(node.ID)
		case !sel.HasNode(node.ID):
			m.ctl.Select(node.ID)
		}
		if abs, ok := m.ctl.Graph().AbsolutePosition(node.ID); ok {
			m.dragging = true
			m.dragID = node.ID
			m.dragOff = m.ctl.Viewport().ScreenToVirtual(sp).Sub(abs)
		}
		return m, nil
	}
	m.lastClickID = ""

	if e, ok := m.ctl.EdgeAt(sp, edgeTolerance); ok {
		m.ctl.SelectEdge(e.ID, mods.Has(viewport.ModShift))
		return m, nil
	}

	if mods.Has(viewport.ModShift) {
		m.banding = true
		m.bandFrom, m.bandTo = local, local
		m.bandAdd = mods.Has(viewport.ModCtrl)
		return m, nil
	}
	m.ctl.ClickCanvas()
	m.gestures.PointerDown(sp, viewport.HitCanvas)
	return m, nil
}

// rightClick opens the context menu for whatever is under the pointer.
func (m *Model) rightClick(sp geom.Point) {
	m.cancelInteraction()
	m.menuCursor = 0
	if node, ok := m.ctl.NodeAt(sp); ok {
		if !m.ctl.Selection().HasNode(node.ID) {
			m.ctl.Select(node.ID)
		}
		m.ctl.RightClickNode(node.ID, sp)
		return
	}
	if e, ok := m.ctl.EdgeAt(sp, edgeTolerance); ok {
		m.ctl.SelectEdge(e.ID, false)
		m.ctl.RightClickEdge(e.ID, m.edgeMenuPoint(e.ID, sp))
		return
	}
	m.ctl.CloseMenu()
}

// edgeMenuPoint is the screen midpoint of the edge's routed path, or
// fallback when the edge has not been routed yet.
func (m *Model) edgeMenuPoint(id string, fallback geom.Point) geom.Point {
	for _, p := range m.ctl.LastPaths() {
		if p.EdgeID == id {
			return m.ctl.Viewport().VirtualToScreen(edgeroute.Midpoint(p))
		}
	}
	return fallback
}
