package studyui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
)

// ── Messages ──

type settleMsg struct{}

type animMsg struct{}

type noticeMsg struct{}

type saveDoneMsg struct{ outcome editor.SaveOutcome }

type generateDoneMsg struct{ outcome editor.GenerateOutcome }

type loadDoneMsg struct{ outcome editor.LoadOutcome }

// ── Commands ──

func settleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return settleMsg{} })
}

func animTick() tea.Cmd {
	return tea.Tick(AnimationInterval, func(time.Time) tea.Msg { return animMsg{} })
}

func noticeTick(ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg { return noticeMsg{} })
}

func saveCmd(t editor.SaveTicket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return saveDoneMsg{outcome: t.Run(ctx)}
	}
}

func generateCmd(t editor.GenerateTicket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return generateDoneMsg{outcome: t.Run(ctx)}
	}
}

// loadCmd reads the ticket's page off the event loop.
func loadCmd(t editor.LoadTicket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadDoneMsg{outcome: t.Run(ctx)}
	}
}

// ── Scheduling ──

// schedule queues the ticks the current state needs: a settle pass after
// geometry changes, animation frames while an edge is animated, and the
// expiry of the current notice.
func (m *Model) schedule() tea.Cmd {
	var cmds []tea.Cmd
	if !m.settleQueued && m.ctl.RecomputePending() {
		m.settleQueued = true
		cmds = append(cmds, settleTick(m.ctl.SettleDelay()))
	}
	if !m.animQueued && m.hasAnimatedEdges() {
		m.animQueued = true
		cmds = append(cmds, animTick())
	}
	if _, ok := m.ctl.Notice(); ok && !m.noticeQueued {
		m.noticeQueued = true
		cmds = append(cmds, noticeTick(m.noticeTTL))
	}
	return tea.Batch(cmds...)
}

func (m Model) hasAnimatedEdges() bool {
	for _, e := range m.ctl.Graph().Edges() {
		if e.Animated {
			return true
		}
	}
	return false
}

// settle measures every node at its rendered size and reroutes edges.
// Sizes are only written when they change, so a settled graph stays
// settled.
func (m *Model) settle() {
	g := m.ctl.Graph()
	for _, n := range g.Nodes() {
		if n.IsGroup() {
			continue
		}
		size := measureNode(n)
		if n.Size == size {
			continue
		}
		if err := m.ctl.MeasureNode(n.ID, size); err != nil {
			m.logger.Debug("measure failed", "node", n.ID, "error", err)
		}
	}
	m.ctl.Paths()
}

// ── Completions ──

// Stale completions are dropped by the controller; failures have already
// become notices.
func (m *Model) finishSave(o editor.SaveOutcome) {
	_ = m.ctl.FinishSave(o)
}

func (m *Model) finishGenerate(o editor.GenerateOutcome) {
	if err := m.ctl.FinishGenerate(o); err == nil {
		m.cancelInteraction()
	}
}

func (m *Model) finishLoad(o editor.LoadOutcome) {
	if err := m.ctl.FinishLoad(o); err == nil {
		m.cancelInteraction()
	}
}
