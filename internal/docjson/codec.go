package docjson

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/layout"
)

//go:embed document.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Schema returns the JSON schema documents are validated against.
func Schema() []byte { return schemaJSON }

// ── Parsing ──

// Parse validates data against the document schema and decodes it. It does
// not check graph invariants; Graph does.
func Parse(data []byte) (*Document, error) {
	const op = "docjson.Parse"
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, diagerr.Parse(op, fmt.Errorf("%w: empty input", diagerr.ErrMalformedDocument))
	}
	s, err := compiledSchema()
	if err != nil {
		return nil, diagerr.Parse(op, fmt.Errorf("compile schema: %w", err))
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// not JSON at all
		return nil, diagerr.Parse(op, fmt.Errorf("%w: %v", diagerr.ErrMalformedDocument, err))
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, diagerr.Parse(op, fmt.Errorf("%w: %s", diagerr.ErrMalformedDocument, strings.Join(msgs, "; ")))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, diagerr.Parse(op, fmt.Errorf("%w: %v", diagerr.ErrMalformedDocument, err))
	}
	return &doc, nil
}

// Decode parses data into a graph. Nodes without coordinates are placed on
// the flowchart grid.
func Decode(data []byte) (*graphmodel.Graph, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if !doc.Positioned() {
		doc.ApplyLayout(graphmodel.DiagramFlowchart)
	}
	return doc.Graph()
}

// Encode serializes g in the document format.
func Encode(g *graphmodel.Graph) ([]byte, error) {
	data, err := json.Marshal(FromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// ── Layout ──

// ApplyLayout fills in positions for a document with unpositioned nodes
// using the fallback for kind. Tree layouts follow the Parent hint, or the
// source of the first incoming edge when no hint is given.
func (d *Document) ApplyLayout(kind graphmodel.DiagramType) {
	if d.Positioned() {
		return
	}
	firstIn := make(map[string]string, len(d.Edges))
	for _, e := range d.Edges {
		if _, ok := firstIn[e.To]; !ok && e.From != e.To {
			firstIn[e.To] = e.From
		}
	}
	items := make([]layout.Item, len(d.Nodes))
	for i, n := range d.Nodes {
		parent := n.Parent
		if parent == "" {
			parent = firstIn[n.ID]
		}
		items[i] = layout.Item{ID: n.ID, Parent: parent}
		if n.Position != nil {
			p := geom.Pt(n.Position.X, n.Position.Y)
			items[i].Pos = &p
		}
	}
	for i, it := range layout.ForDiagram(kind, items) {
		d.Nodes[i].Position = &Position{X: it.Pos.X, Y: it.Pos.Y}
	}
}

// ── Conversion ──

// Graph builds a graph model from the document. Parents are attached in a
// second pass so members may precede their group. Any invariant violation
// is reported as a parse error and no graph is returned.
func (d *Document) Graph() (*graphmodel.Graph, error) {
	const op = "docjson.Graph"
	g := graphmodel.New()

	for _, n := range d.Nodes {
		if n.Position == nil {
			return nil, diagerr.Parse(op, fmt.Errorf("%w: node %q has no position", diagerr.ErrMalformedDocument, n.ID))
		}
		node := graphmodel.Node{
			ID:          n.ID,
			Position:    geom.Pt(n.Position.X, n.Position.Y),
			Label:       n.Data.Label,
			Description: n.Data.Description,
			Kind:        graphmodel.NodeKind(n.Type),
		}
		if n.Style != nil {
			node.Color = n.Style.BackgroundColor
			node.Size = geom.Sz(n.Style.Width, n.Style.Height)
		}
		if err := g.AddNode(node); err != nil {
			return nil, diagerr.Parse(op, err)
		}
	}
	for _, n := range d.Nodes {
		if n.ParentNode == "" {
			continue
		}
		if err := g.SetParent(n.ID, n.ParentNode, graphmodel.Extent(n.Extent)); err != nil {
			return nil, diagerr.Parse(op, err)
		}
	}

	for _, e := range d.Edges {
		edge := graphmodel.Edge{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			Routing:  routingFromWire(e.Type),
			Animated: e.Animated,
			Arrow:    graphmodel.ArrowNone,
		}
		if e.Style != nil {
			edge.Dash = dashFromWire(e.Style.StrokeDasharray)
		}
		if e.MarkerEnd != nil && strings.EqualFold(e.MarkerEnd.Type, MarkerArrowClosed) {
			edge.Arrow = graphmodel.ArrowClosed
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, diagerr.Parse(op, err)
		}
	}
	return g, nil
}

// FromGraph converts g to its wire form.
func FromGraph(g *graphmodel.Graph) *Document {
	nodes := g.Nodes()
	edges := g.Edges()
	doc := &Document{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		out := Node{
			ID:         n.ID,
			Position:   &Position{X: n.Position.X, Y: n.Position.Y},
			Data:       NodeData{Label: n.Label, Description: n.Description},
			Type:       string(n.Kind),
			ParentNode: n.ParentID,
			Extent:     string(n.Extent),
		}
		if n.Color != "" || !n.Size.IsZero() {
			out.Style = &NodeStyle{BackgroundColor: n.Color, Width: n.Size.W, Height: n.Size.H}
		}
		doc.Nodes = append(doc.Nodes, out)
	}
	for _, e := range edges {
		out := Edge{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			Type:     routingToWire(e.Routing),
			Animated: e.Animated,
		}
		if e.Dash != graphmodel.DashNone {
			out.Style = &EdgeStyle{StrokeDasharray: dashToWire(e.Dash)}
		}
		if e.Arrow == graphmodel.ArrowClosed {
			out.MarkerEnd = &Marker{Type: MarkerArrowClosed}
		}
		doc.Edges = append(doc.Edges, out)
	}
	return doc
}

func routingFromWire(t string) graphmodel.RoutingType {
	switch r := graphmodel.RoutingType(t); r {
	case graphmodel.RoutingSmoothstep, graphmodel.RoutingStep, graphmodel.RoutingStraight:
		return r
	default:
		return graphmodel.RoutingBezier
	}
}

func routingToWire(r graphmodel.RoutingType) string {
	if r == graphmodel.RoutingBezier || r == "" {
		return edgeTypeDefault
	}
	return string(r)
}

func dashToWire(d graphmodel.DashStyle) string {
	switch d {
	case graphmodel.DashDashed:
		return dashArrayDashed
	case graphmodel.DashDotted:
		return dashArrayDotted
	default:
		return dashArraySolid
	}
}

// dashFromWire maps an SVG dash array back onto a dash style. Arrays whose
// first dash is at most 2 units read as dotted.
func dashFromWire(s string) graphmodel.DashStyle {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return graphmodel.DashNone
	}
	first, err := strconv.ParseFloat(fields[0], 64)
	switch {
	case err != nil || first <= 0:
		return graphmodel.DashSolid
	case first <= 2:
		return graphmodel.DashDotted
	default:
		return graphmodel.DashDashed
	}
}
