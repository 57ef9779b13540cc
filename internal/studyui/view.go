package studyui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/tealayout"
)

// Region names.
const (
	regionToolbar = "toolbar"
	regionFooter  = "footer"
	regionPanel   = "panel"
	regionCanvas  = "canvas"
)

// layout splits the terminal: toolbar(1) + footer(1) + panel + canvas.
func (m Model) layout() tealayout.Layout {
	return tealayout.NewLayoutBuilder(m.Width, m.Height).
		TopFixed(regionToolbar, 1).
		BottomFixed(regionFooter, 1).
		RightFixed(regionPanel, panelWidth).
		Remaining(regionCanvas).
		Build()
}

func (m Model) toolbarText() string {
	tool := m.tool.String()
	if m.connectFrom != "" {
		if n, ok := m.ctl.Graph().Node(m.connectFrom); ok {
			tool = fmt.Sprintf("CONNECT from %s → click target", truncate(n.Label, 20))
		}
	}
	return fmt.Sprintf(" StudyVerse  │  %s  │  %s  │  [s]elect [c]onnect [n]ew [i] AI  │  [q]uit",
		m.ctl.PageID(), tool)
}

func (m Model) footerText() string {
	v := m.ctl.Viewport()
	return fmt.Sprintf(" Mouse: (%d,%d)  Offset: (%.0f,%.0f)  Zoom: %d%%  Selected: %d",
		m.MouseX, m.MouseY, v.Offset.X, v.Offset.Y, m.ctl.ZoomPercent(), m.ctl.Selection().Len())
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	lay := m.layout()
	canvas := lay.Get(regionCanvas)
	panel := lay.Get(regionPanel)

	layers := []*lipgloss.Layer{
		tealayout.BarLayer("toolbar", m.toolbarText(), m.Width, 0, barStyle),
		tealayout.BarLayer("footer", m.footerText(), m.Width, m.Height-1, footerStyle),
		tealayout.FillLayer(canvas, canvasStyle, "canvas-bg", tealayout.ZBackground),
		buildCanvasLayer(m, canvas),
	}

	if !panel.Empty() {
		layers = append(layers,
			tealayout.FillLayer(panel, panelLineStyle, "panel-bg", tealayout.ZBackground),
			tealayout.VerticalSeparator(panel.Rect.Min.X, panel.Rect.Min.Y, panel.Rect.Dy(), panelSepStyle),
		)
		if l := buildPanelLayer(m, panel); l != nil {
			layers = append(layers, l)
		}
	}

	if l := buildMenuLayer(m); l != nil {
		layers = append(layers, l)
	}
	if l := buildPromptLayer(m, m.Width, m.Height); l != nil {
		layers = append(layers, l)
	}

	comp := lipgloss.NewCompositor(layers...)
	cv := lipgloss.NewCanvas(m.Width, m.Height)
	cv.Compose(comp)

	v := tea.NewView(cv.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
