package graphmodel

import (
	"fmt"
	"slices"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

// Group padding: 20 on the left/right, 40 on top to leave room for the
// group label, 20 at the bottom.
const (
	groupPadX      = 20
	groupPadTop    = 40
	groupExtraW    = 40
	groupExtraH    = 60
	groupLabelText = "Group"
)

// Graph is the diagram owned by one editing session. Accessors return
// copies; all changes go through the mutation methods so the invariants
// hold after every call. Failed mutations leave the graph untouched.
type Graph struct {
	nodes   map[string]*Node
	order   []string // insertion order for deterministic iteration
	edges   []*Edge
	version uint64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Version increases on every successful mutation. Renderers compare it to
// decide whether derived geometry must be recomputed.
func (g *Graph) Version() uint64 { return g.version }

func (g *Graph) touch() { g.version++ }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:   make(map[string]*Node, len(g.nodes)),
		order:   slices.Clone(g.order),
		edges:   make([]*Edge, len(g.edges)),
		version: g.version,
	}
	for id, n := range g.nodes {
		cp := *n
		c.nodes[id] = &cp
	}
	for i, e := range g.edges {
		cp := *e
		c.edges[i] = &cp
	}
	return c
}

// ── Node operations ──

// AddNode inserts n. An empty kind becomes KindDefault. The parent, if
// set, must already exist and be a group.
func (g *Graph) AddNode(n Node) error {
	const op = "graphmodel.AddNode"
	if n.ID == "" {
		return diagerr.Validation(op, diagerr.ErrEmptyID)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return diagerr.Validation(op, fmt.Errorf("%w: node %q", diagerr.ErrDuplicateID, n.ID))
	}
	if n.Kind == "" {
		n.Kind = KindDefault
	}
	if !n.Kind.Valid() {
		return diagerr.Validation(op, fmt.Errorf("%w: %q", diagerr.ErrInvalidKind, n.Kind))
	}
	if n.ParentID != "" {
		if err := g.checkParent(n.ID, n.ParentID); err != nil {
			return diagerr.Validation(op, err)
		}
	} else {
		n.Extent = ExtentNone
	}

	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	g.touch()
	return nil
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	result := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok {
			result = append(result, *n)
		}
	}
	return result
}

// Children returns the direct members of a group in insertion order.
func (g *Graph) Children(groupID string) []Node {
	var result []Node
	for _, id := range g.order {
		if n := g.nodes[id]; n != nil && n.ParentID == groupID {
			result = append(result, *n)
		}
	}
	return result
}

// RemoveNode deletes the node and every edge touching it. Removing a
// group un-parents its members, which keep their absolute positions.
func (g *Graph) RemoveNode(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation("graphmodel.RemoveNode", fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}

	if n.IsGroup() {
		origin := g.absolute(id)
		for _, child := range g.nodes {
			if child.ParentID == id {
				child.Position = child.Position.Add(origin)
				child.ParentID = ""
				child.Extent = ExtentNone
			}
		}
	}

	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(oid string) bool { return oid == id })
	g.edges = slices.DeleteFunc(g.edges, func(e *Edge) bool { return e.Touches(id) })
	g.touch()
	return nil
}

// MoveNode places a node at an absolute canvas position. Members with a
// parent extent are clamped inside their group.
func (g *Graph) MoveNode(id string, abs geom.Point) error {
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation("graphmodel.MoveNode", fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if n.ParentID == "" {
		n.Position = abs
		g.touch()
		return nil
	}

	parent := g.nodes[n.ParentID]
	local := abs.Sub(g.absolute(n.ParentID))
	if n.Extent == ExtentParent && parent != nil {
		ps, cs := parent.Dims(), n.Dims()
		local.X = geom.Clamp(local.X, 0, ps.W-cs.W)
		local.Y = geom.Clamp(local.Y, 0, ps.H-cs.H)
	}
	n.Position = local
	g.touch()
	return nil
}

// SetNodeSize records the rendered size of a node.
func (g *Graph) SetNodeSize(id string, size geom.Size) error {
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation("graphmodel.SetNodeSize", fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if n.Size == size {
		return nil
	}
	n.Size = size
	g.touch()
	return nil
}

// SetParent attaches a node to a group without touching its position,
// which is then read as group-local. An empty parentID detaches it and
// ignores extent.
func (g *Graph) SetParent(id, parentID string, extent Extent) error {
	const op = "graphmodel.SetParent"
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation(op, fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if parentID == "" {
		n.ParentID = ""
		n.Extent = ExtentNone
		g.touch()
		return nil
	}
	if err := g.checkParent(id, parentID); err != nil {
		return diagerr.Validation(op, err)
	}
	n.ParentID = parentID
	n.Extent = extent
	g.touch()
	return nil
}

// checkParent verifies that parentID can own id: it exists, is a group and
// is not id or one of id's descendants.
func (g *Graph) checkParent(id, parentID string) error {
	p, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("%w: parent %q", diagerr.ErrDanglingReference, parentID)
	}
	if !p.IsGroup() {
		return fmt.Errorf("%w: %q", diagerr.ErrInvalidParent, parentID)
	}
	for cur, steps := parentID, 0; cur != ""; steps++ {
		if cur == id || steps > len(g.nodes) {
			return fmt.Errorf("%w: %q under %q", diagerr.ErrCycle, id, parentID)
		}
		next := g.nodes[cur]
		if next == nil {
			break
		}
		cur = next.ParentID
	}
	return nil
}

// AbsolutePosition returns the canvas position of a node, resolving group
// offsets.
func (g *Graph) AbsolutePosition(id string) (geom.Point, bool) {
	if _, ok := g.nodes[id]; !ok {
		return geom.Point{}, false
	}
	return g.absolute(id), true
}

func (g *Graph) absolute(id string) geom.Point {
	var p geom.Point
	// bounded walk; checkParent keeps the chain acyclic
	for cur, steps := id, 0; cur != "" && steps <= len(g.nodes); steps++ {
		n := g.nodes[cur]
		if n == nil {
			break
		}
		p = p.Add(n.Position)
		cur = n.ParentID
	}
	return p
}

// Bounds returns the absolute bounding rectangle of a node.
func (g *Graph) Bounds(id string) (geom.Rect, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return geom.Rect{}, false
	}
	return geom.RectAt(g.absolute(id), n.Dims()), true
}

// ── Patches ──

// UpdateNodeData merges content fields into a node.
func (g *Graph) UpdateNodeData(id string, p NodeDataPatch) error {
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation("graphmodel.UpdateNodeData", fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	g.touch()
	return nil
}

// UpdateNodeStyle merges presentation fields into a node. A group that
// still has members cannot change kind, and a member cannot become a group.
func (g *Graph) UpdateNodeStyle(id string, p NodeStylePatch) error {
	const op = "graphmodel.UpdateNodeStyle"
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation(op, fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if p.Kind != nil {
		k := *p.Kind
		if !k.Valid() {
			return diagerr.Validation(op, fmt.Errorf("%w: %q", diagerr.ErrInvalidKind, k))
		}
		if n.IsGroup() && k != KindGroup && len(g.Children(id)) > 0 {
			return diagerr.Validation(op, fmt.Errorf("%w: group %q still has members", diagerr.ErrInvalidKind, id))
		}
		if k == KindGroup && n.ParentID != "" {
			return diagerr.Validation(op, fmt.Errorf("%w: %q", diagerr.ErrNestedGroup, id))
		}
	}

	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Kind != nil {
		n.Kind = *p.Kind
	}
	if p.Size != nil {
		n.Size = *p.Size
	}
	g.touch()
	return nil
}

// ── Grouping ──

// GroupNodes wraps the given nodes in a new group node with id groupID.
// The group is sized to the members' bounds plus padding, and members are
// re-expressed in the group's local frame with a parent extent. Members
// must be top-level, non-group nodes.
func (g *Graph) GroupNodes(groupID string, memberIDs []string) (Node, error) {
	const op = "graphmodel.GroupNodes"

	ids := uniq(memberIDs)
	if len(ids) <= 1 {
		return Node{}, diagerr.Validation(op, diagerr.ErrTooFewNodes)
	}
	if groupID == "" {
		return Node{}, diagerr.Validation(op, diagerr.ErrEmptyID)
	}
	if _, ok := g.nodes[groupID]; ok {
		return Node{}, diagerr.Validation(op, fmt.Errorf("%w: node %q", diagerr.ErrDuplicateID, groupID))
	}

	var bounds geom.Rect
	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok {
			return Node{}, diagerr.Validation(op, fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
		}
		if n.ParentID != "" {
			return Node{}, diagerr.Validation(op, fmt.Errorf("%w: %q", diagerr.ErrAlreadyGrouped, id))
		}
		if n.IsGroup() {
			return Node{}, diagerr.Validation(op, fmt.Errorf("%w: %q", diagerr.ErrNestedGroup, id))
		}
		bounds = bounds.Union(BoundsOf(n))
	}

	group := &Node{
		ID:       groupID,
		Label:    groupLabelText,
		Kind:     KindGroup,
		Position: geom.Pt(bounds.Min.X-groupPadX, bounds.Min.Y-groupPadTop),
		Size:     geom.Sz(bounds.Dx()+groupExtraW, bounds.Dy()+groupExtraH),
	}
	for _, id := range ids {
		n := g.nodes[id]
		n.ParentID = groupID
		n.Extent = ExtentParent
		n.Position = n.Position.Sub(group.Position)
	}

	// Insert the group ahead of its first member so it is drawn and hit
	// tested beneath them.
	at := len(g.order)
	for i, oid := range g.order {
		if slices.Contains(ids, oid) {
			at = i
			break
		}
	}
	g.nodes[groupID] = group
	g.order = slices.Insert(g.order, at, groupID)
	g.touch()
	return *group, nil
}

// UngroupNode detaches a node from its group, converting its position back
// to absolute. It is a no-op for nodes without a parent.
func (g *Graph) UngroupNode(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return diagerr.Validation("graphmodel.UngroupNode", fmt.Errorf("%w: node %q", diagerr.ErrNotFound, id))
	}
	if n.ParentID == "" {
		return nil
	}
	n.Position = n.Position.Add(g.absolute(n.ParentID))
	n.ParentID = ""
	n.Extent = ExtentNone
	g.touch()
	return nil
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ── Edge operations ──

// AddEdge inserts e. Both endpoints must exist. Empty routing becomes
// bezier and an empty arrow becomes none.
func (g *Graph) AddEdge(e Edge) error {
	const op = "graphmodel.AddEdge"
	if e.ID == "" {
		return diagerr.Validation(op, diagerr.ErrEmptyID)
	}
	if _, _, ok := g.edge(e.ID); ok {
		return diagerr.Validation(op, fmt.Errorf("%w: edge %q", diagerr.ErrDuplicateID, e.ID))
	}
	for _, end := range []string{e.From, e.To} {
		if _, ok := g.nodes[end]; !ok {
			return diagerr.Validation(op, fmt.Errorf("%w: edge %q endpoint %q", diagerr.ErrDanglingReference, e.ID, end))
		}
	}
	if e.Routing == "" {
		e.Routing = RoutingBezier
	}
	if e.Arrow == "" {
		e.Arrow = ArrowNone
	}
	g.edges = append(g.edges, &e)
	g.touch()
	return nil
}

// Edge returns a copy of the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	e, _, ok := g.edge(id)
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

func (g *Graph) edge(id string) (*Edge, int, bool) {
	for i, e := range g.edges {
		if e.ID == id {
			return e, i, true
		}
	}
	return nil, -1, false
}

// RemoveEdge deletes the edge with the given id.
func (g *Graph) RemoveEdge(id string) error {
	_, i, ok := g.edge(id)
	if !ok {
		return diagerr.Validation("graphmodel.RemoveEdge", fmt.Errorf("%w: edge %q", diagerr.ErrNotFound, id))
	}
	g.edges = slices.Delete(g.edges, i, i+1)
	g.touch()
	return nil
}

// UpdateEdgeStyle merges presentation fields into an edge.
func (g *Graph) UpdateEdgeStyle(id string, p EdgeStylePatch) error {
	const op = "graphmodel.UpdateEdgeStyle"
	e, _, ok := g.edge(id)
	if !ok {
		return diagerr.Validation(op, fmt.Errorf("%w: edge %q", diagerr.ErrNotFound, id))
	}
	if p.Routing != nil && !p.Routing.Valid() {
		return diagerr.Validation(op, fmt.Errorf("unknown routing %q", *p.Routing))
	}
	if p.Dash != nil && !p.Dash.Valid() {
		return diagerr.Validation(op, fmt.Errorf("unknown dash style %q", *p.Dash))
	}
	if p.Arrow != nil && !p.Arrow.Valid() {
		return diagerr.Validation(op, fmt.Errorf("unknown arrow %q", *p.Arrow))
	}

	if p.Routing != nil {
		e.Routing = *p.Routing
	}
	if p.Animated != nil {
		e.Animated = *p.Animated
	}
	if p.Dash != nil {
		e.Dash = *p.Dash
	}
	if p.Arrow != nil {
		e.Arrow = *p.Arrow
	}
	g.touch()
	return nil
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	result := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		result[i] = *e
	}
	return result
}

// OutEdges returns edges originating from the given node.
func (g *Graph) OutEdges(fromID string) []Edge {
	var result []Edge
	for _, e := range g.edges {
		if e.From == fromID {
			result = append(result, *e)
		}
	}
	return result
}

// InEdges returns edges terminating at the given node.
func (g *Graph) InEdges(toID string) []Edge {
	var result []Edge
	for _, e := range g.edges {
		if e.To == toID {
			result = append(result, *e)
		}
	}
	return result
}

// ── Spatial queries ──

// HitTest returns the topmost node containing the absolute point. Regular
// nodes win over groups so members stay clickable inside their group.
func (g *Graph) HitTest(pt geom.Point) (Node, bool) {
	var group *Node
	for i := len(g.order) - 1; i >= 0; i-- {
		id := g.order[i]
		n := g.nodes[id]
		if n == nil {
			continue
		}
		r, _ := g.Bounds(id)
		if !r.Contains(pt) {
			continue
		}
		if !n.IsGroup() {
			return *n, true
		}
		if group == nil {
			group = n
		}
	}
	if group != nil {
		return *group, true
	}
	return Node{}, false
}

// NodesInRect returns all nodes whose absolute bounds intersect r, in
// insertion order.
func (g *Graph) NodesInRect(r geom.Rect) []Node {
	r = r.Canon()
	var result []Node
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		if b, _ := g.Bounds(id); b.Overlaps(r) {
			result = append(result, *n)
		}
	}
	return result
}
