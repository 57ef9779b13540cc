package editor

import (
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// TargetKind says what a context menu was opened on.
type TargetKind int

const (
	TargetNode TargetKind = iota
	TargetEdge
)

// String returns the string representation of TargetKind.
func (k TargetKind) String() string {
	if k == TargetEdge {
		return "edge"
	}
	return "node"
}

// Anchor places a menu relative to the canvas edges. A menu opened near
// the right or bottom edge hangs from that edge so it stays on screen.
type Anchor struct {
	Left, Top     float64
	Right, Bottom float64
	FromRight     bool
	FromBottom    bool
}

func anchorAt(p geom.Point, screen, reserve geom.Size) Anchor {
	var a Anchor
	if p.X >= screen.W-reserve.W {
		a.FromRight = true
		a.Right = screen.W - p.X
	} else {
		a.Left = p.X
	}
	if p.Y >= screen.H-reserve.H {
		a.FromBottom = true
		a.Bottom = screen.H - p.Y
	} else {
		a.Top = p.Y
	}
	return a
}

// ContextMenu is the open menu. At most one exists at a time.
type ContextMenu struct {
	TargetID string
	Kind     TargetKind
	Screen   geom.Point
	Anchor   Anchor
}

// Origin returns the top-left corner for drawing a menu of the given size
// on a canvas of the given size.
func (m ContextMenu) Origin(menu, screen geom.Size) geom.Point {
	x, y := m.Anchor.Left, m.Anchor.Top
	if m.Anchor.FromRight {
		x = screen.W - m.Anchor.Right - menu.W
	}
	if m.Anchor.FromBottom {
		y = screen.H - m.Anchor.Bottom - menu.H
	}
	return geom.Pt(max(x, 0), max(y, 0))
}

// Swatch is a named node background color.
type Swatch struct {
	Name  string
	Value string
}

// Palette lists the colors offered in the node menu. The empty value
// restores the default style.
var Palette = []Swatch{
	{"Default", ""},
	{"Red", "#fecaca"},
	{"Orange", "#fed7aa"},
	{"Yellow", "#fde68a"},
	{"Green", "#bbf7d0"},
	{"Blue", "#bfdbfe"},
	{"Purple", "#e9d5ff"},
	{"Gray", "#e5e7eb"},
}

// Shapes are the node kinds a user may pick.
var Shapes = []graphmodel.NodeKind{graphmodel.KindDefault, graphmodel.KindInput, graphmodel.KindOutput}

// Routings are the edge routing types a user may pick.
var Routings = []graphmodel.RoutingType{
	graphmodel.RoutingBezier,
	graphmodel.RoutingSmoothstep,
	graphmodel.RoutingStep,
	graphmodel.RoutingStraight,
}

// Dashes are the edge dash styles a user may pick.
var Dashes = []graphmodel.DashStyle{graphmodel.DashSolid, graphmodel.DashDashed, graphmodel.DashDotted}

// MenuItem is one entry of the open context menu.
type MenuItem struct {
	Group   string // submenu heading, empty for top-level entries
	Label   string
	Checked bool
	// Prompt marks entries that need text from the user before running;
	// hosts collect it and call CommitRename.
	Prompt bool
	Run    func(c *Controller) error
}

// MenuItems lists the entries of the open menu, or nil if none is open.
func (c *Controller) MenuItems() []MenuItem {
	if c.menu == nil {
		return nil
	}
	switch c.menu.Kind {
	case TargetNode:
		n, ok := c.graph.Node(c.menu.TargetID)
		if !ok {
			return nil
		}
		return c.nodeMenu(n)
	default:
		e, ok := c.graph.Edge(c.menu.TargetID)
		if !ok {
			return nil
		}
		return edgeMenu(e)
	}
}

func (c *Controller) nodeMenu(n graphmodel.Node) []MenuItem {
	items := []MenuItem{{Label: "Rename", Prompt: true}}
	if !n.IsGroup() {
		for _, sw := range Palette {
			items = append(items, MenuItem{
				Group:   "Color",
				Label:   sw.Name,
				Checked: n.Color == sw.Value,
				Run:     func(c *Controller) error { return c.SetNodeColor(sw.Value) },
			})
		}
		for _, k := range Shapes {
			items = append(items, MenuItem{
				Group:   "Shape",
				Label:   string(k),
				Checked: n.Kind == k,
				Run:     func(c *Controller) error { return c.SetNodeShape(k) },
			})
		}
	}
	if c.sel.NodeCount() > 1 {
		items = append(items, MenuItem{Label: "Group Selection", Run: (*Controller).GroupSelection})
	}
	if n.ParentID != "" {
		items = append(items, MenuItem{Label: "Ungroup", Run: (*Controller).Ungroup})
	}
	return append(items, MenuItem{Label: "Delete", Run: (*Controller).DeleteTarget})
}

func edgeMenu(e graphmodel.Edge) []MenuItem {
	var items []MenuItem
	for _, r := range Routings {
		items = append(items, MenuItem{
			Group:   "Routing",
			Label:   string(r),
			Checked: e.Routing == r,
			Run:     func(c *Controller) error { return c.SetEdgeRouting(r) },
		})
	}
	for _, d := range Dashes {
		items = append(items, MenuItem{
			Group:   "Dash",
			Label:   string(d),
			Checked: e.Dash == d || (d == graphmodel.DashSolid && e.Dash == graphmodel.DashNone),
			Run:     func(c *Controller) error { return c.SetEdgeDash(d) },
		})
	}
	toggle := "Animate"
	if e.Animated {
		toggle = "Stop animation"
	}
	return append(items,
		MenuItem{Label: toggle, Run: (*Controller).ToggleEdgeAnimation},
		MenuItem{Label: "Delete", Run: (*Controller).DeleteTarget},
	)
}
