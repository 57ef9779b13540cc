package edgeroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

func TestSampleBezierEndpoints(t *testing.T) {
	p := Route(boxA, boxB, graphmodel.RoutingBezier)
	pts := Sample(p, 10)
	require.Len(t, pts, 11)
	assert.Equal(t, geom.Pt(50, 20), pts[0])
	assert.InDelta(t, 250, pts[10].X, 1e-9)
	assert.InDelta(t, 120, pts[10].Y, 1e-9)
	// symmetric S curve passes through the midpoint
	assert.InDelta(t, 150, pts[5].X, 1e-9)
	assert.InDelta(t, 70, pts[5].Y, 1e-9)
}

func TestSamplePolylineCopies(t *testing.T) {
	p := Route(boxA, boxB, graphmodel.RoutingStraight)
	pts := Sample(p, 10)
	pts[0] = geom.Pt(-1, -1)
	assert.Equal(t, geom.Pt(50, 20), p.Points[0])
}

func TestEndSegment(t *testing.T) {
	p := Path{Kind: PathPolyline, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(5, 0)}}
	from, to, ok := EndSegment(p)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 0), from)
	assert.Equal(t, geom.Pt(5, 0), to)

	_, _, ok = EndSegment(Path{Points: []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1)}})
	assert.False(t, ok)
}

func TestMidpointStraight(t *testing.T) {
	p := Path{Kind: PathPolyline, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}}
	m := Midpoint(p)
	assert.InDelta(t, 10, m.X, 1e-9)
	assert.InDelta(t, 0, m.Y, 1e-9)
}

func TestSchedulerStaleness(t *testing.T) {
	g := graphmodel.New()
	require.NoError(t, g.AddNode(graphmodel.Node{ID: "a"}))
	require.NoError(t, g.AddNode(graphmodel.Node{ID: "b", Position: geom.Pt(300, 0)}))
	require.NoError(t, g.AddEdge(graphmodel.Edge{ID: "e", From: "a", To: "b"}))

	s := NewScheduler()
	assert.True(t, s.Stale(g.Version()), "never routed")

	paths := s.Recompute(g, ArenaFromGraph(g))
	assert.Len(t, paths, 1)
	assert.False(t, s.Stale(g.Version()))

	s.Request()
	assert.True(t, s.Stale(g.Version()), "requested")
	s.Recompute(g, ArenaFromGraph(g))

	require.NoError(t, g.MoveNode("b", geom.Pt(400, 0)))
	assert.True(t, s.Stale(g.Version()), "graph changed")
	assert.Equal(t, paths, s.Paths()[:1])
}
