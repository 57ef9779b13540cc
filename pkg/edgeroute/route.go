// Package edgeroute computes the visual path of every edge from the
// rendered bounding boxes of its endpoints. Routing is a pure function of
// geometry: the renderer hands in a BoundsArena and gets paths back, so it
// is safe to recompute as often as the host likes.
package edgeroute

import (
	"math"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// bezierPull is the share of the horizontal delta used to offset the
// control points of a mind-map curve.
const bezierPull = 0.4

// selfLoopMin is the smallest reach of a self loop, in canvas units.
const selfLoopMin = 30.0

// PathKind says how Points should be read.
type PathKind int

const (
	// PathPolyline is a sequence of straight segments.
	PathPolyline PathKind = iota
	// PathBezier is a single cubic curve: start, control 1, control 2, end.
	PathBezier
)

// Path is the routed geometry of one edge plus the style the renderer needs.
type Path struct {
	EdgeID   string
	Kind     PathKind
	Points   []geom.Point
	Dash     graphmodel.DashStyle
	Arrow    graphmodel.ArrowKind
	Animated bool
}

// BoundsArena maps node ids to their rendered absolute bounding boxes.
type BoundsArena map[string]geom.Rect

// ArenaFromGraph builds an arena from the graph's own positions and sizes.
// Hosts that measure rendered content should overwrite entries with the
// measured rectangles.
func ArenaFromGraph(g *graphmodel.Graph) BoundsArena {
	arena := make(BoundsArena, g.Len())
	for _, n := range g.Nodes() {
		if r, ok := g.Bounds(n.ID); ok {
			arena[n.ID] = r
		}
	}
	return arena
}

// Route connects the centers of two boxes. Unknown routing types are drawn
// as bezier, which is what the document's "default" edge type means.
func Route(from, to geom.Rect, routing graphmodel.RoutingType) Path {
	a, b := from.Center(), to.Center()

	switch routing {
	case graphmodel.RoutingStraight:
		return Path{Kind: PathPolyline, Points: []geom.Point{a, b}}

	case graphmodel.RoutingSmoothstep, graphmodel.RoutingStep:
		midX := (a.X + b.X) / 2
		pts := []geom.Point{a, geom.Pt(midX, a.Y), geom.Pt(midX, b.Y), b}
		return Path{Kind: PathPolyline, Points: compact(pts)}

	default:
		dx := (b.X - a.X) * bezierPull
		return Path{Kind: PathBezier, Points: []geom.Point{
			a,
			geom.Pt(a.X+dx, a.Y),
			geom.Pt(b.X-dx, b.Y),
			b,
		}}
	}
}

// SelfLoop draws a loop that leaves the right side of the box above its
// center and comes back in below it.
func SelfLoop(r geom.Rect) Path {
	c := r.Center()
	h := r.Dy()
	reach := math.Max(selfLoopMin, h)
	start := geom.Pt(r.Max.X, c.Y-h/4)
	end := geom.Pt(r.Max.X, c.Y+h/4)
	return Path{Kind: PathBezier, Points: []geom.Point{
		start,
		geom.Pt(r.Max.X+reach, c.Y-reach),
		geom.Pt(r.Max.X+reach, c.Y+reach),
		end,
	}}
}

// RouteEdge routes e against arena. It reports false when either endpoint
// has no bounds, in which case the edge is simply not drawn.
func RouteEdge(e graphmodel.Edge, arena BoundsArena) (Path, bool) {
	from, ok := arena[e.From]
	if !ok {
		return Path{}, false
	}
	to, ok := arena[e.To]
	if !ok {
		return Path{}, false
	}

	var p Path
	if e.IsSelfLoop() {
		p = SelfLoop(from)
	} else {
		p = Route(from, to, e.Routing)
	}
	p.EdgeID = e.ID
	p.Dash = e.Dash
	p.Arrow = e.Arrow
	p.Animated = e.Animated
	return p, true
}

// RouteAll routes every edge, dropping those with a missing endpoint.
func RouteAll(edges []graphmodel.Edge, arena BoundsArena) []Path {
	paths := make([]Path, 0, len(edges))
	for _, e := range edges {
		if p, ok := RouteEdge(e, arena); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// compact removes consecutive duplicate points.
func compact(pts []geom.Point) []geom.Point {
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
