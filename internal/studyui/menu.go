package studyui

import (
	"image"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/tealayout"
)

// MenuReserve is the screen room a context menu needs; pass it as
// editor.Options.MenuReserve so menus near the edges flip inward.
var MenuReserve = geom.Sz(26*CellW, 18*CellH)

// menuLine is one row of the rendered menu. item is -1 for headings.
type menuLine struct {
	text string
	item int
}

// menuLines flattens the menu items into rows, with a heading before each
// submenu group.
func menuLines(items []editor.MenuItem) []menuLine {
	var lines []menuLine
	group := ""
	for i, it := range items {
		if it.Group != group {
			group = it.Group
			if group != "" {
				lines = append(lines, menuLine{text: group, item: -1})
			}
		}
		text := it.Label
		switch {
		case it.Group != "" && it.Checked:
			text = "  ● " + text
		case it.Group != "":
			text = "  ○ " + text
		case it.Prompt:
			text += "…"
		}
		lines = append(lines, menuLine{text: text, item: i})
	}
	return lines
}

// menuBox lays out the open menu in terminal coordinates. The rectangle
// includes the border.
func (m Model) menuBox() (image.Rectangle, []menuLine, bool) {
	menu, open := m.ctl.Menu()
	if !open {
		return image.Rectangle{}, nil, false
	}
	lines := menuLines(m.ctl.MenuItems())
	if len(lines) == 0 {
		return image.Rectangle{}, nil, false
	}
	inner := 0
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l.text)+2)
	}
	w, h := inner+2, len(lines)+2

	canvas := m.layout().Get(regionCanvas).Rect
	origin := menu.Origin(geom.Sz(float64(w*CellW), float64(h*CellH)), m.ctl.Screen())
	p := screenToCell(origin).Add(canvas.Min)
	x := max(min(p.X, canvas.Max.X-w), canvas.Min.X)
	y := max(min(p.Y, canvas.Max.Y-h), canvas.Min.Y)
	return image.Rect(x, y, x+w, y+h), lines, true
}

// menuItemAt returns the item index under terminal point p.
func (m Model) menuItemAt(p image.Point) (item int, inside bool) {
	box, lines, ok := m.menuBox()
	if !ok || !p.In(box) {
		return -1, false
	}
	row := p.Y - box.Min.Y - 1
	if row < 0 || row >= len(lines) {
		return -1, true
	}
	return lines[row].item, true
}

// moveMenuCursor steps the cursor over selectable rows.
func (m *Model) moveMenuCursor(delta int) {
	items := m.ctl.MenuItems()
	if len(items) == 0 {
		return
	}
	m.menuCursor = (m.menuCursor + delta + len(items)) % len(items)
}

// runMenuItem runs item i of the open menu. Entries that need text open
// the rename prompt instead.
func (m Model) runMenuItem(i int) (Model, tea.Cmd) {
	items := m.ctl.MenuItems()
	menu, open := m.ctl.Menu()
	if !open || i < 0 || i >= len(items) {
		return m, nil
	}
	it := items[i]
	if it.Prompt {
		m.ctl.CloseMenu()
		return m.openRename(menu.TargetID)
	}
	if err := it.Run(m.ctl); err != nil {
		m.ctl.Report(err)
	}
	m.ctl.CloseMenu()
	m.menuCursor = 0
	return m, nil
}

// handleMenuKeys processes keys while the context menu is open.
func (m Model) handleMenuKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveMenuCursor(-1)
	case "down", "j", "tab":
		m.moveMenuCursor(1)
	case "enter", "space", " ":
		return m.runMenuItem(m.menuCursor)
	case "esc", "escape", "q":
		m.ctl.CloseMenu()
	}
	return m, nil
}

// buildMenuLayer renders the open context menu as an overlay on the
// canvas.
func buildMenuLayer(m Model) *lipgloss.Layer {
	box, lines, ok := m.menuBox()
	if !ok {
		return nil
	}
	inner := box.Dx() - 2
	rows := make([]string, len(lines))
	for i, l := range lines {
		text := " " + l.text + strings.Repeat(" ", max(inner-lipgloss.Width(l.text)-1, 0))
		switch {
		case l.item < 0:
			rows[i] = menuHeadStyle.Render(text)
		case l.item == m.menuCursor:
			rows[i] = menuCursorStyle.Render(text)
		default:
			rows[i] = menuItemStyle.Render(text)
		}
	}
	rendered := menuStyle.Render(strings.Join(rows, "\n"))
	return tealayout.OverlayLayer("context-menu", rendered, box.Min, m.layout().Get(regionCanvas).Rect)
}
