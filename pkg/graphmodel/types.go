package graphmodel

import "github.com/softpython2884/StudyVerse-sub000/pkg/geom"

// NodeKind is the shape/type of a node.
type NodeKind string

const (
	KindDefault NodeKind = "default"
	KindInput   NodeKind = "input"
	KindOutput  NodeKind = "output"
	KindGroup   NodeKind = "group"
)

// Valid reports whether k is one of the known kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindDefault, KindInput, KindOutput, KindGroup:
		return true
	}
	return false
}

// Extent constrains where a node may be dragged.
type Extent string

const (
	ExtentNone   Extent = ""
	ExtentParent Extent = "parent" // stays inside its group's bounds
)

// RoutingType is the geometric style used to draw an edge.
type RoutingType string

const (
	RoutingBezier     RoutingType = "bezier"
	RoutingSmoothstep RoutingType = "smoothstep"
	RoutingStep       RoutingType = "step"
	RoutingStraight   RoutingType = "straight"
)

// Valid reports whether r is one of the known routing types.
func (r RoutingType) Valid() bool {
	switch r {
	case RoutingBezier, RoutingSmoothstep, RoutingStep, RoutingStraight:
		return true
	}
	return false
}

// DashStyle is the stroke pattern of an edge. The zero value means the
// renderer default, which is solid.
type DashStyle string

const (
	DashNone   DashStyle = ""
	DashSolid  DashStyle = "solid"
	DashDashed DashStyle = "dashed"
	DashDotted DashStyle = "dotted"
)

// Valid reports whether d is one of the known dash styles.
func (d DashStyle) Valid() bool {
	switch d {
	case DashNone, DashSolid, DashDashed, DashDotted:
		return true
	}
	return false
}

// ArrowKind is the marker drawn at an edge's target end.
type ArrowKind string

const (
	ArrowNone   ArrowKind = "none"
	ArrowClosed ArrowKind = "closed"
)

// Valid reports whether a is a known arrow kind.
func (a ArrowKind) Valid() bool {
	return a == ArrowNone || a == ArrowClosed
}

// DiagramType selects layout fallback and AI generation flavor.
type DiagramType string

const (
	DiagramMindMap   DiagramType = "MindMap"
	DiagramFlowchart DiagramType = "Flowchart"
	DiagramOrgChart  DiagramType = "OrgChart"
)

// Valid reports whether t is one of the known diagram types.
func (t DiagramType) Valid() bool {
	switch t {
	case DiagramMindMap, DiagramFlowchart, DiagramOrgChart:
		return true
	}
	return false
}

// DefaultNodeSize is used for bounds math until the renderer has measured
// a node.
var DefaultNodeSize = geom.Sz(150, 40)

// Node is a diagram vertex. Position is relative to the parent group when
// ParentID is set, absolute otherwise.
type Node struct {
	ID          string
	Position    geom.Point
	Label       string
	Description string
	Color       string // background style token, empty for default
	Kind        NodeKind
	ParentID    string
	Extent      Extent
	Size        geom.Size // measured by the renderer; zero until measured
}

// Pos implements Spatial. It is the local position for grouped nodes.
func (n Node) Pos() geom.Point { return n.Position }

// Dims implements Spatial, substituting DefaultNodeSize for unmeasured nodes.
func (n Node) Dims() geom.Size {
	if n.Size.W <= 0 || n.Size.H <= 0 {
		return DefaultNodeSize
	}
	return n.Size
}

// IsGroup reports whether n is a group node.
func (n Node) IsGroup() bool { return n.Kind == KindGroup }

// Edge is a directed connection between two nodes.
type Edge struct {
	ID       string
	From     string
	To       string
	Routing  RoutingType
	Animated bool
	Dash     DashStyle
	Arrow    ArrowKind
}

// IsSelfLoop reports whether e starts and ends on the same node.
func (e Edge) IsSelfLoop() bool { return e.From == e.To }

// Touches reports whether e has id as either endpoint.
func (e Edge) Touches(id string) bool { return e.From == id || e.To == id }

// NodeDataPatch is a merge patch for node content. Nil fields are left
// unchanged.
type NodeDataPatch struct {
	Label       *string
	Description *string
}

// NodeStylePatch is a merge patch for node presentation.
type NodeStylePatch struct {
	Color *string
	Kind  *NodeKind
	Size  *geom.Size
}

// EdgeStylePatch is a merge patch for edge presentation.
type EdgeStylePatch struct {
	Routing  *RoutingType
	Animated *bool
	Dash     *DashStyle
	Arrow    *ArrowKind
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T { return &v }
