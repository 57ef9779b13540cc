package studyui

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// panStep is how far the arrow keys pan, in cells.
const panStep = 3

// zoomStep is the factor applied by the zoom keys.
const zoomStep = 1.2

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()

	case tea.KeyMsg:
		m, cmd = m.handleKeys(msg)

	case tea.MouseMsg:
		m, cmd = handleMouse(m, msg)

	case settleMsg:
		m.settleQueued = false
		m.settle()

	case animMsg:
		m.animQueued = false
		m.frame++

	case noticeMsg:
		m.noticeQueued = false
		m.ctl.ExpireNotice(m.noticeTTL)

	case saveDoneMsg:
		m.finishSave(msg.outcome)

	case generateDoneMsg:
		m.finishGenerate(msg.outcome)

	case loadDoneMsg:
		m.finishLoad(msg.outcome)

	default:
		if m.prompt != promptNone {
			m.input, cmd = m.input.Update(msg)
		}
	}

	follow := m.schedule()
	return m, tea.Batch(cmd, follow)
}

// handleKeys processes keyboard input.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKeys(msg)
	}
	if _, open := m.ctl.Menu(); open {
		return m.handleMenuKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	// Camera panning
	case "up":
		m.ctl.PanBy(0, panStep*CellH)
	case "down":
		m.ctl.PanBy(0, -panStep*CellH)
	case "left":
		m.ctl.PanBy(panStep*CellW, 0)
	case "right":
		m.ctl.PanBy(-panStep*CellW, 0)

	// Zoom
	case "+", "=":
		m.ctl.ZoomBy(zoomStep)
	case "-", "_":
		m.ctl.ZoomBy(1 / zoomStep)
	case "0":
		m.ctl.ResetView()

	// Tools
	case "s":
		m.tool = ToolSelect
		m.connectFrom = ""
	case "c":
		m.tool = ToolConnect
		m.connectFrom = ""
		if ids := m.ctl.Selection().NodeIDs(m.ctl.Graph()); len(ids) == 1 {
			m.connectFrom = ids[0]
		}

	// Editing
	case "n":
		if _, err := m.ctl.AddNode(); err != nil {
			m.ctl.Report(err)
		}
	case "e", "enter":
		if ids := m.ctl.Selection().NodeIDs(m.ctl.Graph()); len(ids) == 1 {
			return m.openRename(ids[0])
		}
	case "g":
		_ = m.ctl.GroupSelection()
	case "d", "delete", "backspace":
		m.ctl.DeleteSelection()
	case "l":
		if err := m.ctl.ApplyLayout(m.diagram); err != nil {
			m.ctl.Report(err)
		}
	case "t":
		m.nextDiagram()

	// Persistence and generation
	case "ctrl+s":
		t, err := m.ctl.BeginSave()
		if err != nil {
			m.ctl.Report(err)
			return m, nil
		}
		return m, saveCmd(t, m.saveTimeout)
	case "i":
		return m.openPrompt(promptGenerate, "", "")
	case "o":
		return m.openPrompt(promptOpen, "", m.ctl.PageID())

	// Output
	case "p":
		_, _ = m.ctl.ExportPNG("")
	case "P":
		ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
		_ = m.ctl.ExportPDF(ctx)
		cancel()
	case "y":
		_ = m.ctl.CopyJSON()

	case "esc", "escape":
		m.cancelInteraction()
		m.tool = ToolSelect
		m.ctl.ClickCanvas()
	}

	return m, nil
}
