package editor

import "github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"

// Selection is the current multi-select: node ids plus edge ids.
type Selection struct {
	nodes map[string]struct{}
	edges map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{nodes: map[string]struct{}{}, edges: map[string]struct{}{}}
}

// HasNode reports whether node id is selected.
func (s *Selection) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// HasEdge reports whether edge id is selected.
func (s *Selection) HasEdge(id string) bool {
	_, ok := s.edges[id]
	return ok
}

// Len is the number of selected nodes and edges.
func (s *Selection) Len() int { return len(s.nodes) + len(s.edges) }

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return s.Len() == 0 }

// NodeCount is the number of selected nodes.
func (s *Selection) NodeCount() int { return len(s.nodes) }

// Clear deselects everything.
func (s *Selection) Clear() {
	clear(s.nodes)
	clear(s.edges)
}

func (s *Selection) addNode(id string)    { s.nodes[id] = struct{}{} }
func (s *Selection) addEdge(id string)    { s.edges[id] = struct{}{} }
func (s *Selection) removeNode(id string) { delete(s.nodes, id) }
func (s *Selection) removeEdge(id string) { delete(s.edges, id) }

// NodeIDs returns the selected nodes in graph order.
func (s *Selection) NodeIDs(g *graphmodel.Graph) []string {
	var ids []string
	for _, n := range g.Nodes() {
		if s.HasNode(n.ID) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// EdgeIDs returns the selected edges in graph order.
func (s *Selection) EdgeIDs(g *graphmodel.Graph) []string {
	var ids []string
	for _, e := range g.Edges() {
		if s.HasEdge(e.ID) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// prune drops ids that no longer exist in g.
func (s *Selection) prune(g *graphmodel.Graph) {
	for id := range s.nodes {
		if !g.Has(id) {
			delete(s.nodes, id)
		}
	}
	for id := range s.edges {
		if _, ok := g.Edge(id); !ok {
			delete(s.edges, id)
		}
	}
}
