package edgeroute

import (
	"time"

	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// DefaultSettle is how long the host waits after a geometry change before
// measuring rendered boxes and recomputing paths.
const DefaultSettle = 30 * time.Millisecond

// Scheduler holds the "recompute requested" flag and the last routed
// paths. The host calls Request after geometry-affecting changes and
// Recompute on its next tick; redundant calls are harmless.
type Scheduler struct {
	Settle time.Duration

	requested bool
	version   uint64
	routed    bool
	paths     []Path
}

// NewScheduler creates a scheduler with the default settle delay.
func NewScheduler() *Scheduler {
	return &Scheduler{Settle: DefaultSettle}
}

// Request marks the paths stale.
func (s *Scheduler) Request() { s.requested = true }

// Stale reports whether the paths need recomputing for graph version v,
// either because one was requested or the graph changed since.
func (s *Scheduler) Stale(v uint64) bool {
	return s.requested || !s.routed || s.version != v
}

// Recompute routes all edges of g against arena, clears the request flag
// and returns the new paths.
func (s *Scheduler) Recompute(g *graphmodel.Graph, arena BoundsArena) []Path {
	s.paths = RouteAll(g.Edges(), arena)
	s.version = g.Version()
	s.routed = true
	s.requested = false
	return s.paths
}

// Paths returns the most recently computed paths.
func (s *Scheduler) Paths() []Path { return s.paths }
