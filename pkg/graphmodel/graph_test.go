package graphmodel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
)

func node(id string, x, y float64) Node {
	return Node{ID: id, Label: id, Position: geom.Pt(x, y), Size: geom.Sz(100, 40)}
}

func mustAdd(t *testing.T, g *Graph, nodes ...Node) {
	t.Helper()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
}

func mustEdge(t *testing.T, g *Graph, id, from, to string) {
	t.Helper()
	if err := g.AddEdge(Edge{ID: id, From: from, To: to}); err != nil {
		t.Fatalf("AddEdge(%s): %v", id, err)
	}
}

// ── Spatial helpers ──

func TestBoundsOf(t *testing.T) {
	n := Node{Position: geom.Pt(10, 20), Size: geom.Sz(8, 4)}
	if b := BoundsOf(n); b != geom.RectAt(geom.Pt(10, 20), geom.Sz(8, 4)) {
		t.Errorf("BoundsOf: got %v", b)
	}
	if c := BoundsOf(n).Center(); c != geom.Pt(14, 22) {
		t.Errorf("center: expected (14,22), got %v", c)
	}
}

func TestDimsDefaultsWhenUnmeasured(t *testing.T) {
	n := Node{ID: "a"}
	if n.Dims() != DefaultNodeSize {
		t.Errorf("expected default size, got %v", n.Dims())
	}
}

// ── AddNode ──

func TestAddNodeDuplicate(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	err := g.AddNode(node("a", 5, 5))
	if !errors.Is(err, diagerr.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if !diagerr.IsKind(err, diagerr.KindValidation) {
		t.Errorf("expected validation kind, got %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 node, got %d", g.Len())
	}
}

func TestAddNodeEmptyID(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, diagerr.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestAddNodeDefaultsKind(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	n, _ := g.Node("a")
	if n.Kind != KindDefault {
		t.Errorf("expected default kind, got %q", n.Kind)
	}
}

func TestAddNodeParentMustBeGroup(t *testing.T) {
	g := New()
	mustAdd(t, g, node("plain", 0, 0))

	child := node("c", 0, 0)
	child.ParentID = "plain"
	if err := g.AddNode(child); !errors.Is(err, diagerr.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
	child.ParentID = "missing"
	if err := g.AddNode(child); !errors.Is(err, diagerr.ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	mustAdd(t, g, node("z", 30, 0), node("a", 10, 0), node("m", 20, 0))

	nodes := g.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].ID != "z" || nodes[1].ID != "a" || nodes[2].ID != "m" {
		t.Error("Nodes() not in insertion order")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	n, _ := g.Node("a")
	n.Label = "mutated"
	again, _ := g.Node("a")
	if again.Label != "a" {
		t.Error("Node() must return a copy")
	}
}

// ── RemoveNode ──

func TestRemoveNodeCleansEdges(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 10, 0), node("c", 20, 0))
	mustEdge(t, g, "ab", "a", "b")
	mustEdge(t, g, "bc", "b", "c")
	mustEdge(t, g, "ac", "a", "c")

	if err := g.RemoveNode("b"); err != nil {
		t.Fatal(err)
	}
	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge remaining, got %d", len(edges))
	}
	if edges[0].ID != "ac" {
		t.Errorf("expected edge ac, got %s", edges[0].ID)
	}
}

// For every node in a small dense graph, removing it drops exactly the
// edges touching it.
func TestRemoveNodeRemovesExactlyTouchingEdges(t *testing.T) {
	ids := []string{"n0", "n1", "n2", "n3"}
	for _, victim := range ids {
		g := New()
		for i, id := range ids {
			mustAdd(t, g, node(id, float64(i*200), 0))
		}
		for _, from := range ids {
			for _, to := range ids {
				mustEdge(t, g, from+">"+to, from, to)
			}
		}
		before := g.Edges()
		if err := g.RemoveNode(victim); err != nil {
			t.Fatal(err)
		}
		after := map[string]bool{}
		for _, e := range g.Edges() {
			after[e.ID] = true
		}
		for _, e := range before {
			if e.Touches(victim) == after[e.ID] {
				t.Errorf("remove %s: edge %s touches=%v kept=%v", victim, e.ID, e.Touches(victim), after[e.ID])
			}
		}
	}
}

func TestRemoveNonExistentNode(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	v := g.Version()
	if err := g.RemoveNode("nope"); !errors.Is(err, diagerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if g.Len() != 1 || g.Version() != v {
		t.Error("failed RemoveNode must not change the graph")
	}
}

func TestRemoveGroupUnparentsMembers(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 100, 100), node("b", 300, 100))
	if _, err := g.GroupNodes("grp", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveNode("grp"); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"a", "b"} {
		n, ok := g.Node(id)
		if !ok {
			t.Fatalf("member %s should survive group removal", id)
		}
		if n.ParentID != "" || n.Extent != ExtentNone {
			t.Errorf("member %s still parented", id)
		}
	}
	a, _ := g.Node("a")
	if a.Position != geom.Pt(100, 100) {
		t.Errorf("member should keep absolute position, got %v", a.Position)
	}
}

// ── Edges ──

func TestAddEdgeDangling(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	err := g.AddEdge(Edge{ID: "e", From: "a", To: "ghost"})
	if !errors.Is(err, diagerr.ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if len(g.Edges()) != 0 {
		t.Error("dangling edge must not be added")
	}
}

func TestAddEdgeDuplicateID(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 0, 0))
	mustEdge(t, g, "e", "a", "b")
	if err := g.AddEdge(Edge{ID: "e", From: "b", To: "a"}); !errors.Is(err, diagerr.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddEdgeDefaultsAndSelfLoop(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	mustEdge(t, g, "loop", "a", "a")
	e, _ := g.Edge("loop")
	if e.Routing != RoutingBezier || e.Arrow != ArrowNone {
		t.Errorf("unexpected defaults: %+v", e)
	}
	if !e.IsSelfLoop() {
		t.Error("expected self loop")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 0, 0))
	mustEdge(t, g, "e", "a", "b")
	if err := g.RemoveEdge("e"); err != nil {
		t.Fatal(err)
	}
	if len(g.Edges()) != 0 {
		t.Error("edge should be removed")
	}
	if err := g.RemoveEdge("e"); !errors.Is(err, diagerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOutAndInEdges(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 0, 0), node("c", 0, 0))
	mustEdge(t, g, "ab", "a", "b")
	mustEdge(t, g, "ac", "a", "c")
	mustEdge(t, g, "bc", "b", "c")

	if out := g.OutEdges("a"); len(out) != 2 {
		t.Errorf("expected 2 out-edges from a, got %d", len(out))
	}
	if in := g.InEdges("c"); len(in) != 2 {
		t.Errorf("expected 2 in-edges to c, got %d", len(in))
	}
}

// ── Patches ──

func TestUpdateNodeDataMerges(t *testing.T) {
	g := New()
	n := node("a", 0, 0)
	n.Description = "keep me"
	mustAdd(t, g, n)

	if err := g.UpdateNodeData("a", NodeDataPatch{Label: Ptr("renamed")}); err != nil {
		t.Fatal(err)
	}
	got, _ := g.Node("a")
	if got.Label != "renamed" || got.Description != "keep me" {
		t.Errorf("merge patch failed: %+v", got)
	}
}

func TestUpdateNodeStyle(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0))
	if err := g.UpdateNodeStyle("a", NodeStylePatch{Color: Ptr("#ffcc00")}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateNodeStyle("a", NodeStylePatch{Kind: Ptr(KindOutput)}); err != nil {
		t.Fatal(err)
	}
	got, _ := g.Node("a")
	if got.Color != "#ffcc00" || got.Kind != KindOutput {
		t.Errorf("style patch failed: %+v", got)
	}
	if err := g.UpdateNodeStyle("a", NodeStylePatch{Kind: Ptr(NodeKind("hexagon"))}); !errors.Is(err, diagerr.ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
}

func TestUpdateNodeStyleProtectsGroups(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 200, 0))
	if _, err := g.GroupNodes("grp", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateNodeStyle("grp", NodeStylePatch{Kind: Ptr(KindDefault)}); !errors.Is(err, diagerr.ErrInvalidKind) {
		t.Errorf("populated group must keep its kind, got %v", err)
	}
	if err := g.UpdateNodeStyle("a", NodeStylePatch{Kind: Ptr(KindGroup)}); !errors.Is(err, diagerr.ErrNestedGroup) {
		t.Errorf("member must not become a group, got %v", err)
	}
}

func TestUpdateEdgeStyleMerges(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 0, 0))
	if err := g.AddEdge(Edge{ID: "e", From: "a", To: "b", Routing: RoutingStep, Arrow: ArrowClosed}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateEdgeStyle("e", EdgeStylePatch{Dash: Ptr(DashDotted), Animated: Ptr(true)}); err != nil {
		t.Fatal(err)
	}
	e, _ := g.Edge("e")
	if e.Routing != RoutingStep || e.Arrow != ArrowClosed || e.Dash != DashDotted || !e.Animated {
		t.Errorf("edge merge patch failed: %+v", e)
	}
	if err := g.UpdateEdgeStyle("e", EdgeStylePatch{Routing: Ptr(RoutingType("zigzag"))}); err == nil {
		t.Error("expected unknown routing to be rejected")
	}
	if err := g.UpdateEdgeStyle("e", EdgeStylePatch{Arrow: Ptr(ArrowKind("diamond"))}); err == nil {
		t.Error("expected unknown arrow to be rejected")
	}
	if e, _ := g.Edge("e"); e.Arrow != ArrowClosed {
		t.Errorf("rejected patch changed the arrow: %q", e.Arrow)
	}
}

// ── Grouping ──

func TestGroupNodesBounds(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 100, 100), node("b", 300, 200))

	grp, err := g.GroupNodes("grp", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	// members span (100,100)-(400,240)
	if grp.Position != geom.Pt(80, 60) {
		t.Errorf("group position: got %v", grp.Position)
	}
	if grp.Size != geom.Sz(340, 200) {
		t.Errorf("group size: got %v", grp.Size)
	}
	if grp.Kind != KindGroup {
		t.Errorf("group kind: got %q", grp.Kind)
	}

	a, _ := g.Node("a")
	if a.ParentID != "grp" || a.Extent != ExtentParent {
		t.Errorf("member not parented: %+v", a)
	}
	if a.Position != geom.Pt(20, 40) {
		t.Errorf("member local position: got %v", a.Position)
	}
	if abs, _ := g.AbsolutePosition("a"); abs != geom.Pt(100, 100) {
		t.Errorf("member absolute position changed: %v", abs)
	}

	// group sits beneath its members
	if nodes := g.Nodes(); nodes[0].ID != "grp" {
		t.Errorf("group should precede members, order %v", nodes)
	}
}

func TestGroupNodesRejects(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		want    error
	}{
		{"single", []string{"a"}, diagerr.ErrTooFewNodes},
		{"duplicate single", []string{"a", "a"}, diagerr.ErrTooFewNodes},
		{"empty", nil, diagerr.ErrTooFewNodes},
		{"missing", []string{"a", "ghost"}, diagerr.ErrNotFound},
		{"already grouped", []string{"a", "m1"}, diagerr.ErrAlreadyGrouped},
		{"nested", []string{"a", "existing"}, diagerr.ErrNestedGroup},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			mustAdd(t, g, node("a", 0, 0), node("m1", 500, 0), node("m2", 700, 0))
			if _, err := g.GroupNodes("existing", []string{"m1", "m2"}); err != nil {
				t.Fatal(err)
			}
			v := g.Version()
			_, err := g.GroupNodes("new", tc.members)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if g.Version() != v || g.Has("new") {
				t.Error("rejected grouping must not change the graph")
			}
		})
	}
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	for size := 2; size <= 5; size++ {
		g := New()
		var ids []string
		for i := range size {
			id := fmt.Sprintf("n%d", i)
			ids = append(ids, id)
			mustAdd(t, g, node(id, float64(i*170), float64(i*35)))
		}
		if _, err := g.GroupNodes("grp", ids); err != nil {
			t.Fatal(err)
		}
		for _, id := range ids {
			if err := g.UngroupNode(id); err != nil {
				t.Fatal(err)
			}
		}
		for _, id := range ids {
			n, _ := g.Node(id)
			if n.ParentID != "" || n.Extent != ExtentNone {
				t.Errorf("size %d: %s still grouped", size, id)
			}
		}
	}
}

func TestUngroupNotGroupedIsNoop(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 5, 5))
	v := g.Version()
	if err := g.UngroupNode("a"); err != nil {
		t.Fatal(err)
	}
	if g.Version() != v {
		t.Error("ungrouping a free node should not mutate")
	}
}

func TestUngroupKeepsAbsolutePosition(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 100, 100), node("b", 300, 200))
	if _, err := g.GroupNodes("grp", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := g.MoveNode("grp", geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := g.UngroupNode("a"); err != nil {
		t.Fatal(err)
	}
	a, _ := g.Node("a")
	if a.Position != geom.Pt(20, 40) {
		t.Errorf("expected last absolute position (20,40), got %v", a.Position)
	}
}

// ── SetParent ──

func TestSetParentRejectsCycle(t *testing.T) {
	g := New()
	mustAdd(t, g, Node{ID: "g1", Kind: KindGroup}, Node{ID: "g2", Kind: KindGroup})
	if err := g.SetParent("g2", "g1", ExtentNone); err != nil {
		t.Fatal(err)
	}
	if err := g.SetParent("g1", "g2", ExtentNone); !errors.Is(err, diagerr.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if err := g.SetParent("g1", "g1", ExtentNone); !errors.Is(err, diagerr.ErrCycle) {
		t.Fatalf("expected ErrCycle for self parent, got %v", err)
	}
}

// ── MoveNode ──

func TestMoveNodeClampsToParentExtent(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 100, 100), node("b", 300, 100))
	if _, err := g.GroupNodes("grp", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	// group at (80,60) size (340,100); member size (100,40)
	if err := g.MoveNode("a", geom.Pt(-500, 9999)); err != nil {
		t.Fatal(err)
	}
	a, _ := g.Node("a")
	if a.Position != geom.Pt(0, 60) {
		t.Errorf("expected clamped local (0,60), got %v", a.Position)
	}
}

// ── HitTest ──

func TestHitTestTopmost(t *testing.T) {
	g := New()
	mustAdd(t, g, node("bottom", 10, 10), node("top", 20, 20))
	hit, ok := g.HitTest(geom.Pt(50, 35))
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.ID != "top" {
		t.Errorf("expected topmost, got %s", hit.ID)
	}
}

func TestHitTestPrefersMembersOverGroup(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 100, 100), node("b", 300, 100))
	if _, err := g.GroupNodes("grp", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if hit, _ := g.HitTest(geom.Pt(110, 110)); hit.ID != "a" {
		t.Errorf("expected member a, got %s", hit.ID)
	}
	if hit, _ := g.HitTest(geom.Pt(85, 65)); hit.ID != "grp" {
		t.Errorf("expected group padding hit, got %s", hit.ID)
	}
	if _, ok := g.HitTest(geom.Pt(0, 0)); ok {
		t.Error("expected miss")
	}
}

func TestNodesInRect(t *testing.T) {
	g := New()
	mustAdd(t, g, node("in", 0, 0), node("out", 500, 500), node("edge", 90, 0))
	nodes := g.NodesInRect(geom.Rect{Min: geom.Pt(95, 50), Max: geom.Pt(0, 0)})
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes in rect, got %d", len(nodes))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a", 0, 0), node("b", 0, 0))
	mustEdge(t, g, "e", "a", "b")
	c := g.Clone()
	if err := c.RemoveNode("a"); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 || len(g.Edges()) != 1 {
		t.Error("clone mutation leaked into original")
	}
}
