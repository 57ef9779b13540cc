package studyui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/tealayout"
)

// promptKind says what the open text prompt is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptRename
	promptGenerate
	promptOpen
)

var promptTitles = map[promptKind]string{
	promptRename:   "RENAME NODE",
	promptGenerate: "GENERATE WITH AI",
	promptOpen:     "OPEN PAGE",
}

// openPrompt shows the modal with initial text and focuses it.
func (m Model) openPrompt(kind promptKind, target, initial string) (Model, tea.Cmd) {
	m.cancelInteraction()
	m.prompt = kind
	m.promptTarget = target

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 200
	if kind == promptRename {
		m.input.CharLimit = 80
	}
	m.input.SetValue(initial)
	cmd := m.input.Focus()
	return m, cmd
}

// openRename opens the rename prompt for id, if it exists.
func (m Model) openRename(id string) (Model, tea.Cmd) {
	current, ok := m.ctl.BeginRename(id)
	if !ok {
		return m, nil
	}
	return m.openPrompt(promptRename, id, current)
}

// handlePromptKeys processes keys while the prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.prompt = promptNone
		return m, nil

	case "enter":
		kind, target, text := m.prompt, m.promptTarget, m.input.Value()
		m.prompt = promptNone
		return m.submitPrompt(kind, target, text)

	case "tab":
		if m.prompt == promptGenerate {
			m.nextDiagram()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, target, text string) (Model, tea.Cmd) {
	switch kind {
	case promptRename:
		m.ctl.CommitRename(target, text)

	case promptGenerate:
		t, err := m.ctl.BeginGenerate(text, m.diagram)
		if err != nil {
			m.ctl.Report(err)
			return m, nil
		}
		m.logger.Info("generation started", "page", m.ctl.PageID(), "type", m.diagram)
		return m, generateCmd(t, m.generateTimeout)

	case promptOpen:
		page := strings.TrimSpace(text)
		if page == "" || page == m.ctl.PageID() {
			return m, nil
		}
		m.ctl.Navigate(page)
		m.logger.Info("opening page", "page", page, "session", m.ctl.Session())
		return m, loadCmd(m.ctl.BeginLoad(), m.saveTimeout)
	}
	return m, nil
}

// buildPromptLayer renders the open prompt as a centered modal.
func buildPromptLayer(m Model, termW, termH int) *lipgloss.Layer {
	if m.prompt == promptNone {
		return nil
	}
	lines := []string{
		modalTitleStyle.Render("  " + promptTitles[m.prompt]),
		"",
	}
	hint := "  [enter] ok  [esc] cancel"
	switch m.prompt {
	case promptGenerate:
		lines = append(lines, modalHintStyle.Render(fmt.Sprintf("  Diagram type: %s", m.diagram)), "")
		if n := m.ctl.Graph().Len(); n > 0 {
			lines = append(lines, modalHintStyle.Render(fmt.Sprintf("  The current %d nodes are sent as context and replaced.", n)), "")
		}
		hint = "  [tab] diagram type  [enter] generate  [esc] cancel"
	case promptOpen:
		lines = append(lines, modalHintStyle.Render("  Current page: "+m.ctl.PageID()), "")
	}
	lines = append(lines, "  "+m.input.View(), "", modalHintStyle.Render(hint))
	return tealayout.ModalLayer("prompt", strings.Join(lines, "\n"), termW, termH, modalStyle)
}
