package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/layout"
)

// EdgeHitTolerance is how far from a routed edge, in screen units, a
// pointer still counts as on it.
const EdgeHitTolerance = 6.0

// edgeSamples is the number of segments a bezier is split into for hit
// testing.
const edgeSamples = 24

// ── Hit testing ──

// NodeAt returns the topmost node under the screen point p.
func (c *Controller) NodeAt(p geom.Point) (graphmodel.Node, bool) {
	return c.graph.HitTest(c.view.ScreenToVirtual(p))
}

// EdgeAt returns the edge whose routed path passes within tol screen
// units of p. Later edges win, matching draw order.
func (c *Controller) EdgeAt(p geom.Point, tol float64) (graphmodel.Edge, bool) {
	paths := c.Paths()
	for i := len(paths) - 1; i >= 0; i-- {
		pts := edgeroute.Sample(paths[i], edgeSamples)
		for j := 1; j < len(pts); j++ {
			a := c.view.VirtualToScreen(pts[j-1])
			b := c.view.VirtualToScreen(pts[j])
			if segmentDist(p, a, b) <= tol {
				return c.graph.Edge(paths[i].EdgeID)
			}
		}
	}
	return graphmodel.Edge{}, false
}

func segmentDist(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := geom.Clamp(((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/l2, 0, 1)
	return p.Sub(a.Add(ab.Scale(t))).Len()
}

// ── Canvas gestures ──

// ClickCanvas handles a click on empty canvas: it closes any open menu
// and clears the selection.
func (c *Controller) ClickCanvas() {
	c.menu = nil
	c.sel.Clear()
}

// CloseMenu closes the context menu without touching the selection.
func (c *Controller) CloseMenu() { c.menu = nil }

// DoubleClickNode asks p for a new label and applies it. It reports
// whether the label changed.
func (c *Controller) DoubleClickNode(id string, p Prompter) bool {
	current, ok := c.BeginRename(id)
	if !ok {
		return false
	}
	text, ok := p.Prompt("Rename node", current)
	if !ok {
		return false
	}
	return c.CommitRename(id, text)
}

// BeginRename returns the label to prefill a rename prompt with.
func (c *Controller) BeginRename(id string) (string, bool) {
	n, ok := c.graph.Node(id)
	if !ok {
		return "", false
	}
	return n.Label, true
}

// CommitRename sets the label of id to text. Text that is empty after
// trimming leaves the label unchanged.
func (c *Controller) CommitRename(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if err := c.graph.UpdateNodeData(id, graphmodel.NodeDataPatch{Label: &text}); err != nil {
		c.logger.Debug("rename rejected", "node", id, "error", err)
		return false
	}
	c.menu = nil
	c.RequestRecompute()
	return true
}

// RightClickNode opens the node menu at screen point p.
func (c *Controller) RightClickNode(id string, p geom.Point) bool {
	if !c.graph.Has(id) {
		return false
	}
	c.openMenu(id, TargetNode, p)
	return true
}

// RightClickEdge opens the edge menu at screen point p.
func (c *Controller) RightClickEdge(id string, p geom.Point) bool {
	if _, ok := c.graph.Edge(id); !ok {
		return false
	}
	c.openMenu(id, TargetEdge, p)
	return true
}

func (c *Controller) openMenu(id string, kind TargetKind, p geom.Point) {
	c.menu = &ContextMenu{
		TargetID: id,
		Kind:     kind,
		Screen:   p,
		Anchor:   anchorAt(p, c.screen, c.reserve),
	}
}

func (c *Controller) menuTarget(kind TargetKind) (string, error) {
	if c.menu == nil || c.menu.Kind != kind {
		return "", diagerr.Validation("editor."+kind.String()+"Menu", ErrNoTarget)
	}
	return c.menu.TargetID, nil
}

// ── Nodes ──

// Connect creates an edge between two distinct nodes with smoothstep
// routing and a closed arrow.
func (c *Controller) Connect(from, to string) (graphmodel.Edge, error) {
	if from == to {
		return graphmodel.Edge{}, diagerr.Validation("editor.Connect", ErrSelfConnection)
	}
	e := graphmodel.Edge{
		ID:      c.newID(),
		From:    from,
		To:      to,
		Routing: graphmodel.RoutingSmoothstep,
		Arrow:   graphmodel.ArrowClosed,
	}
	if err := c.graph.AddEdge(e); err != nil {
		return graphmodel.Edge{}, err
	}
	c.RequestRecompute()
	e, _ = c.graph.Edge(e.ID)
	return e, nil
}

// AddNode creates a node centered in the visible canvas and selects it.
func (c *Controller) AddNode() (graphmodel.Node, error) {
	center := c.view.Center(c.screen)
	size := graphmodel.DefaultNodeSize
	c.added++
	n := graphmodel.Node{
		ID:       c.newID(),
		Label:    fmt.Sprintf("New Node %d", c.added),
		Position: geom.Pt(center.X-size.W/2, center.Y-size.H/2),
	}
	if err := c.graph.AddNode(n); err != nil {
		return graphmodel.Node{}, err
	}
	c.sel.Clear()
	c.sel.addNode(n.ID)
	c.RequestRecompute()
	n, _ = c.graph.Node(n.ID)
	return n, nil
}

// SetNodeColor sets the background of the menu's node.
func (c *Controller) SetNodeColor(color string) error {
	id, err := c.menuTarget(TargetNode)
	if err != nil {
		return err
	}
	if err := c.graph.UpdateNodeStyle(id, graphmodel.NodeStylePatch{Color: &color}); err != nil {
		return err
	}
	c.menu = nil
	return nil
}

// SetNodeShape sets the kind of the menu's node. Only default, input and
// output may be picked.
func (c *Controller) SetNodeShape(kind graphmodel.NodeKind) error {
	id, err := c.menuTarget(TargetNode)
	if err != nil {
		return err
	}
	if kind == graphmodel.KindGroup || !kind.Valid() {
		return diagerr.Validation("editor.SetNodeShape", fmt.Errorf("%w: %q", diagerr.ErrInvalidKind, kind))
	}
	if err := c.graph.UpdateNodeStyle(id, graphmodel.NodeStylePatch{Kind: &kind}); err != nil {
		return err
	}
	c.menu = nil
	return nil
}

// GroupSelection wraps the selected nodes in a new group. With fewer than
// two nodes selected it only posts an info notice.
func (c *Controller) GroupSelection() error {
	ids := c.sel.NodeIDs(c.graph)
	if len(ids) <= 1 {
		c.notify(NoticeInfo, "Select at least two nodes to group")
		return nil
	}
	group, err := c.graph.GroupNodes(c.newID(), ids)
	if err != nil {
		c.notify(NoticeError, diagerr.UserMessage(err))
		return err
	}
	c.menu = nil
	c.sel.Clear()
	c.sel.addNode(group.ID)
	c.RequestRecompute()
	return nil
}

// Ungroup detaches the menu's node from its group.
func (c *Controller) Ungroup() error {
	id, err := c.menuTarget(TargetNode)
	if err != nil {
		return err
	}
	if err := c.graph.UngroupNode(id); err != nil {
		return err
	}
	c.menu = nil
	c.RequestRecompute()
	return nil
}

// DragNode moves id so its top-left corner sits at the absolute virtual
// point abs.
func (c *Controller) DragNode(id string, abs geom.Point) error {
	if err := c.graph.MoveNode(id, abs); err != nil {
		return err
	}
	c.RequestRecompute()
	return nil
}

// ── Edges ──

func (c *Controller) patchMenuEdge(p graphmodel.EdgeStylePatch) error {
	id, err := c.menuTarget(TargetEdge)
	if err != nil {
		return err
	}
	if err := c.graph.UpdateEdgeStyle(id, p); err != nil {
		return err
	}
	c.menu = nil
	c.RequestRecompute()
	return nil
}

// SetEdgeRouting sets the routing of the menu's edge.
func (c *Controller) SetEdgeRouting(r graphmodel.RoutingType) error {
	return c.patchMenuEdge(graphmodel.EdgeStylePatch{Routing: &r})
}

// SetEdgeDash sets the dash style of the menu's edge.
func (c *Controller) SetEdgeDash(d graphmodel.DashStyle) error {
	return c.patchMenuEdge(graphmodel.EdgeStylePatch{Dash: &d})
}

// ToggleEdgeAnimation flips the animated flag of the menu's edge.
func (c *Controller) ToggleEdgeAnimation() error {
	id, err := c.menuTarget(TargetEdge)
	if err != nil {
		return err
	}
	e, _ := c.graph.Edge(id)
	return c.patchMenuEdge(graphmodel.EdgeStylePatch{Animated: graphmodel.Ptr(!e.Animated)})
}

// ── Selection ──

// Select replaces the selection with node id.
func (c *Controller) Select(id string) {
	c.sel.Clear()
	if c.graph.Has(id) {
		c.sel.addNode(id)
	}
}

// ToggleSelect adds or removes node id from the selection.
func (c *Controller) ToggleSelect(id string) {
	switch {
	case c.sel.HasNode(id):
		c.sel.removeNode(id)
	case c.graph.Has(id):
		c.sel.addNode(id)
	}
}

// SelectEdge replaces the selection with edge id, or toggles it when
// additive.
func (c *Controller) SelectEdge(id string, additive bool) {
	if !additive {
		c.sel.Clear()
	}
	if _, ok := c.graph.Edge(id); !ok {
		return
	}
	if additive && c.sel.HasEdge(id) {
		c.sel.removeEdge(id)
		return
	}
	c.sel.addEdge(id)
}

// SelectRect selects every node overlapping the screen rectangle r. It
// returns the number of nodes selected.
func (c *Controller) SelectRect(r geom.Rect, additive bool) int {
	r = r.Canon()
	vr := geom.Rect{Min: c.view.ScreenToVirtual(r.Min), Max: c.view.ScreenToVirtual(r.Max)}
	if !additive {
		c.sel.Clear()
	}
	nodes := c.graph.NodesInRect(vr)
	for _, n := range nodes {
		c.sel.addNode(n.ID)
	}
	return len(nodes)
}

// ── Deletion ──

// DeleteSelection removes the selected edges, then the selected nodes
// with their touching edges. It returns how many items were removed.
func (c *Controller) DeleteSelection() int {
	removed := 0
	for _, id := range c.sel.EdgeIDs(c.graph) {
		if c.graph.RemoveEdge(id) == nil {
			removed++
		}
	}
	for _, id := range c.sel.NodeIDs(c.graph) {
		if c.graph.RemoveNode(id) == nil {
			removed++
		}
	}
	c.sel.Clear()
	if c.menu != nil && !c.menuTargetExists() {
		c.menu = nil
	}
	if removed > 0 {
		c.RequestRecompute()
	}
	return removed
}

// DeleteTarget removes the menu's node or edge.
func (c *Controller) DeleteTarget() error {
	if c.menu == nil {
		return diagerr.Validation("editor.DeleteTarget", ErrNoTarget)
	}
	var err error
	if c.menu.Kind == TargetNode {
		err = c.graph.RemoveNode(c.menu.TargetID)
	} else {
		err = c.graph.RemoveEdge(c.menu.TargetID)
	}
	if err != nil {
		return err
	}
	c.menu = nil
	c.sel.prune(c.graph)
	c.RequestRecompute()
	return nil
}

func (c *Controller) menuTargetExists() bool {
	if c.menu.Kind == TargetNode {
		return c.graph.Has(c.menu.TargetID)
	}
	_, ok := c.graph.Edge(c.menu.TargetID)
	return ok
}

// ── Layout ──

// ApplyLayout repositions every top-level node with the layout for kind.
// Tree layouts take the first incoming edge as the parent link.
func (c *Controller) ApplyLayout(kind graphmodel.DiagramType) error {
	if !kind.Valid() {
		return diagerr.Validation("editor.ApplyLayout", fmt.Errorf("unknown diagram type %q", kind))
	}
	var items []layout.Item
	for _, n := range c.graph.Nodes() {
		if n.ParentID != "" {
			continue
		}
		item := layout.Item{ID: n.ID}
		for _, e := range c.graph.InEdges(n.ID) {
			if !e.IsSelfLoop() {
				item.Parent = e.From
				break
			}
		}
		items = append(items, item)
	}
	for _, it := range layout.ForDiagram(kind, items) {
		if err := c.graph.MoveNode(it.ID, *it.Pos); err != nil {
			return err
		}
	}
	c.RequestRecompute()
	c.notify(NoticeInfo, fmt.Sprintf("Applied %s layout", kind))
	return nil
}

// ── Viewport ──

// ZoomBy zooms around the canvas center.
func (c *Controller) ZoomBy(factor float64) {
	c.view.ZoomAround(factor, geom.Pt(c.screen.W/2, c.screen.H/2))
}

// PanBy pans by a screen-space delta.
func (c *Controller) PanBy(dx, dy float64) { c.view.PanBy(dx, dy) }

// ResetView restores the initial zoom and offset.
func (c *Controller) ResetView() { c.view.Reset() }

// ZoomPercent is the zoom level for display.
func (c *Controller) ZoomPercent() int { return int(math.Round(c.view.Zoom * 100)) }
