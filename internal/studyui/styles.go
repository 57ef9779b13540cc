package studyui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/pkg/cellbuf"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Color palette: slate canvas, paper nodes.
var (
	colorBG      = c("#0f172a")
	colorGroupBG = c("#162033")
	colorInk     = c("#0f172a")
	colorPaper   = c("#f8fafc")
	colorEdge    = c("#94a3b8")
	colorAccent  = c("#f59e0b")
	colorMuted   = c("#64748b")

	kindBorders = map[graphmodel.NodeKind]color.Color{
		graphmodel.KindDefault: c("#cbd5e1"),
		graphmodel.KindInput:   c("#60a5fa"),
		graphmodel.KindOutput:  c("#f87171"),
		graphmodel.KindGroup:   c("#64748b"),
	}

	noticeColors = map[string]color.Color{
		"info":    c("#93c5fd"),
		"success": c("#86efac"),
		"error":   c("#fca5a5"),
	}
)

// Fixed cellbuf style keys. Node colors are allocated per frame above
// styleDynamic.
const (
	styleBG cellbuf.StyleKey = iota
	styleGrid
	styleEdge
	styleEdgeSel
	styleArrow
	styleArrowSel
	stylePreview
	styleBand
	styleGroupBorder
	styleGroupSel
	styleGroupFill
	styleGroupLabel
	styleDynamic
)

func baseStyles() map[cellbuf.StyleKey]lipgloss.Style {
	on := lipgloss.NewStyle().Background(colorBG)
	return map[cellbuf.StyleKey]lipgloss.Style{
		styleBG:          on.Foreground(colorMuted),
		styleGrid:        on.Foreground(c("#1e293b")),
		styleEdge:        on.Foreground(colorEdge),
		styleEdgeSel:     on.Foreground(colorAccent).Bold(true),
		styleArrow:       on.Foreground(c("#e2e8f0")),
		styleArrowSel:    on.Foreground(colorAccent).Bold(true),
		stylePreview:     on.Foreground(c("#38bdf8")),
		styleBand:        on.Foreground(c("#38bdf8")),
		styleGroupBorder: lipgloss.NewStyle().Foreground(kindBorders[graphmodel.KindGroup]).Background(colorGroupBG),
		styleGroupSel:    lipgloss.NewStyle().Foreground(colorAccent).Background(colorGroupBG).Bold(true),
		styleGroupFill:   lipgloss.NewStyle().Background(colorGroupBG),
		styleGroupLabel:  lipgloss.NewStyle().Foreground(c("#cbd5e1")).Background(colorGroupBG).Bold(true),
	}
}

// palette hands out style keys for node colors, one per distinct look,
// so arbitrary backgrounds from loaded documents still render.
type palette struct {
	styles map[cellbuf.StyleKey]lipgloss.Style
	keys   map[string]cellbuf.StyleKey
	next   cellbuf.StyleKey
}

func newPalette() *palette {
	return &palette{styles: baseStyles(), keys: map[string]cellbuf.StyleKey{}, next: styleDynamic}
}

func (p *palette) key(name string, build func() lipgloss.Style) cellbuf.StyleKey {
	if k, ok := p.keys[name]; ok {
		return k
	}
	k := p.next
	p.next++
	p.keys[name] = k
	p.styles[k] = build()
	return k
}

// nodeKeys returns the border, fill and text style keys for a node.
func (p *palette) nodeKeys(n graphmodel.Node, selected bool) (border, fill, text cellbuf.StyleKey) {
	bg := colorPaper
	hex := n.Color
	if hex != "" {
		bg = c(hex)
	} else {
		hex = "paper"
	}
	fg, ok := kindBorders[n.Kind]
	name := string(n.Kind)
	if !ok {
		fg = kindBorders[graphmodel.KindDefault]
	}
	if selected {
		fg, name = colorAccent, "selected"
	}
	border = p.key("border:"+name, func() lipgloss.Style {
		return lipgloss.NewStyle().Foreground(fg).Background(colorBG).Bold(selected)
	})
	fill = p.key("fill:"+hex, func() lipgloss.Style {
		return lipgloss.NewStyle().Background(bg)
	})
	text = p.key("text:"+hex, func() lipgloss.Style {
		return lipgloss.NewStyle().Foreground(colorInk).Background(bg).Bold(true)
	})
	return border, fill, text
}

// Chrome styles.
var (
	barStyle = lipgloss.NewStyle().
			Background(c("#1e293b")).
			Foreground(c("#e2e8f0")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Background(colorBG).
			Foreground(colorMuted)

	canvasStyle = lipgloss.NewStyle().Background(colorBG)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorEdge).
			Background(c("#1e293b"))

	menuItemStyle   = lipgloss.NewStyle().Foreground(c("#e2e8f0")).Background(c("#1e293b"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(colorInk).Background(colorAccent).Bold(true)
	menuHeadStyle   = lipgloss.NewStyle().Foreground(colorMuted).Background(c("#1e293b")).Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorAccent).
			Background(c("#1e293b")).
			Width(56).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Background(c("#1e293b")).Bold(true)
	modalHintStyle  = lipgloss.NewStyle().Foreground(colorMuted).Background(c("#1e293b")).Italic(true)
)
