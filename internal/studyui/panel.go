package studyui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/tealayout"
)

const panelWidth = 34

var panelBG = c("#111c30")

// Panel styles, all on the panel background.
var (
	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(panelBG).
			Bold(true)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(panelBG)

	panelTextStyle = lipgloss.NewStyle().
			Foreground(c("#e2e8f0")).
			Background(panelBG)

	panelKeyStyle = lipgloss.NewStyle().
			Foreground(c("#fbbf24")).
			Background(panelBG)

	panelSepStyle = lipgloss.NewStyle().
			Foreground(c("#334155")).
			Background(panelBG)

	panelLineStyle = lipgloss.NewStyle().
			Background(panelBG)
)

// section renders a titled block of exactly height rows.
func section(title string, body []string, width, height int) string {
	lines := append([]string{
		panelTitleStyle.Render(title),
		panelDimStyle.Render(strings.Repeat("─", max(width-2, 0))),
	}, body...)
	if len(lines) > height {
		lines = lines[:height]
	}
	return tealayout.Block(lines, width, height, panelLineStyle)
}

// pageLines describes the open page.
func (m Model) pageLines(width int) []string {
	g := m.ctl.Graph()
	status := "idle"
	switch {
	case m.ctl.Generating():
		status = "generating…"
	case m.ctl.Saving():
		status = "saving…"
	}
	return []string{
		panelTextStyle.Render("  page   " + truncate(m.ctl.PageID(), width-10)),
		panelTextStyle.Render(fmt.Sprintf("  type   %s", m.diagram)),
		panelTextStyle.Render(fmt.Sprintf("  nodes  %d   edges %d", g.Len(), len(g.Edges()))),
		panelTextStyle.Render(fmt.Sprintf("  zoom   %d%%", m.ctl.ZoomPercent())),
		panelDimStyle.Render("  " + status),
	}
}

// selectionLines describes the selection, one node in detail.
func (m Model) selectionLines(width int) []string {
	g := m.ctl.Graph()
	sel := m.ctl.Selection()
	if sel.Empty() {
		return []string{panelDimStyle.Render("  (none)")}
	}
	nodes := sel.NodeIDs(g)
	edges := sel.EdgeIDs(g)
	if len(nodes) == 1 && len(edges) == 0 {
		n, _ := g.Node(nodes[0])
		lines := []string{
			panelTextStyle.Render("  " + truncate(n.Label, width-4)),
			panelDimStyle.Render(fmt.Sprintf("  %s at (%.0f, %.0f)", n.Kind, n.Position.X, n.Position.Y)),
			panelDimStyle.Render(fmt.Sprintf("  %d out  %d in", len(g.OutEdges(n.ID)), len(g.InEdges(n.ID)))),
		}
		if n.ParentID != "" {
			if p, ok := g.Node(n.ParentID); ok {
				lines = append(lines, panelDimStyle.Render("  in "+truncate(p.Label, width-7)))
			}
		}
		if n.Description != "" {
			lines = append(lines, panelDimStyle.Render("  "+truncate(n.Description, width-4)))
		}
		return lines
	}
	if len(edges) == 1 && len(nodes) == 0 {
		e, _ := g.Edge(edges[0])
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		return []string{
			panelTextStyle.Render("  " + truncate(from.Label+" → "+to.Label, width-4)),
			panelDimStyle.Render(fmt.Sprintf("  %s %s", e.Routing, e.Dash)),
		}
	}
	return []string{panelTextStyle.Render(fmt.Sprintf("  %d nodes, %d edges", len(nodes), len(edges)))}
}

// noticeLines shows the current notice, wrapped to the panel.
func (m Model) noticeLines(width int) []string {
	n, ok := m.ctl.Notice()
	if !ok {
		return nil
	}
	style := panelTextStyle.Foreground(noticeColors[n.Level.String()])
	wrapped := lipgloss.NewStyle().Width(max(width-4, 1)).Render(n.Text)
	var out []string
	for _, l := range strings.Split(wrapped, "\n") {
		out = append(out, style.Render("  "+strings.TrimRight(l, " ")))
	}
	return out
}

var helpKeys = [][2]string{
	{"click", "select  drag move"},
	{"shift", "drag box / add"},
	{"dbl", "rename  right menu"},
	{"s c", "select / connect"},
	{"n e", "new node / rename"},
	{"g d", "group / delete"},
	{"i t l", "AI / type / layout"},
	{"^s o", "save / open page"},
	{"p P y", "png / print / json"},
	{"+ - 0", "zoom / reset"},
}

func helpLines() []string {
	out := make([]string, 0, len(helpKeys))
	for _, k := range helpKeys {
		out = append(out, panelKeyStyle.Render(fmt.Sprintf("  %-6s", k[0]))+panelTextStyle.Render(k[1]))
	}
	return out
}

// buildPanelLayer renders the side panel.
func buildPanelLayer(m Model, region tealayout.Region) *lipgloss.Layer {
	r := region.Rect
	w, h := r.Dx()-2, r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	pageH := 7
	helpH := len(helpKeys) + 2
	noticeH := 6
	selH := max(h-pageH-helpH-noticeH, 3)

	blocks := []string{
		section("PAGE", m.pageLines(w), w, pageH),
		section("SELECTION", m.selectionLines(w), w, selH),
		section("STATUS", m.noticeLines(w), w, noticeH),
		section("KEYS", helpLines(), w, helpH),
	}
	content := tealayout.Block(strings.Split(strings.Join(blocks, "\n"), "\n"), w, h, panelLineStyle)
	return lipgloss.NewLayer(content).X(r.Min.X + 1).Y(r.Min.Y).Z(tealayout.ZPanel).ID("panel")
}
