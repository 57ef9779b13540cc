// Package docjson converts between the graph model and the JSON document
// stored as page content and returned by AI generation.
//
// Wire shape:
//
//	{"nodes":[{"id","position":{"x","y"},"data":{"label","description"},
//	           "type","parentNode","extent","style":{"backgroundColor","width","height"}}],
//	 "edges":[{"id","from","to","type","animated","style":{"strokeDasharray"},
//	           "markerEnd":{"type":"arrowclosed"}}]}
//
// Edge type "default" is bezier routing. Nodes may omit position, in which
// case the document must be laid out before it becomes a graph.
package docjson

// Document is the decoded wire form.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one entry of Document.Nodes.
type Node struct {
	ID         string     `json:"id"`
	Position   *Position  `json:"position,omitempty"`
	Data       NodeData   `json:"data"`
	Type       string     `json:"type,omitempty"`
	ParentNode string     `json:"parentNode,omitempty"`
	Extent     string     `json:"extent,omitempty"`
	Style      *NodeStyle `json:"style,omitempty"`

	// Parent is a hierarchy hint sent by generators for tree layouts. It is
	// not group membership and is not kept in the graph.
	Parent string `json:"parent,omitempty"`
}

// Position is a node's top-left corner on the virtual canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the node's text content.
type NodeData struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// NodeStyle carries the narrow set of presentation fields we persist.
type NodeStyle struct {
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
}

// Edge is one entry of Document.Edges.
type Edge struct {
	ID        string     `json:"id"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Type      string     `json:"type,omitempty"`
	Animated  bool       `json:"animated,omitempty"`
	Style     *EdgeStyle `json:"style,omitempty"`
	MarkerEnd *Marker    `json:"markerEnd,omitempty"`
}

// EdgeStyle holds the stroke pattern.
type EdgeStyle struct {
	StrokeDasharray string `json:"strokeDasharray,omitempty"`
}

// Marker is an edge end decoration.
type Marker struct {
	Type string `json:"type"`
}

// MarkerArrowClosed is the only marker type the editor produces.
const MarkerArrowClosed = "arrowclosed"

// Wire edge type for bezier routing.
const edgeTypeDefault = "default"

// Dash arrays written for each dash style.
const (
	dashArraySolid  = "0"
	dashArrayDashed = "5 5"
	dashArrayDotted = "1 4"
)

// Positioned reports whether every node carries coordinates.
func (d *Document) Positioned() bool {
	for _, n := range d.Nodes {
		if n.Position == nil {
			return false
		}
	}
	return true
}
