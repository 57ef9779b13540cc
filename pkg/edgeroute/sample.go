package edgeroute

import "github.com/softpython2884/StudyVerse-sub000/pkg/geom"

// Sample flattens p into a polyline. Bezier paths are evaluated at steps+1
// evenly spaced parameters; polylines are returned as a copy.
func Sample(p Path, steps int) []geom.Point {
	if p.Kind != PathBezier || len(p.Points) != 4 {
		out := make([]geom.Point, len(p.Points))
		copy(out, p.Points)
		return out
	}
	if steps < 1 {
		steps = 1
	}
	out := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, Cubic(p.Points[0], p.Points[1], p.Points[2], p.Points[3], float64(i)/float64(steps)))
	}
	return out
}

// Cubic evaluates a cubic bezier at t in [0,1].
func Cubic(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return geom.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// EndSegment returns the last two distinct points of the path, which
// give the arrowhead direction. ok is false for degenerate paths.
func EndSegment(p Path) (from, to geom.Point, ok bool) {
	pts := p.Points
	if len(pts) < 2 {
		return geom.Point{}, geom.Point{}, false
	}
	to = pts[len(pts)-1]
	for i := len(pts) - 2; i >= 0; i-- {
		if pts[i] != to {
			return pts[i], to, true
		}
	}
	return geom.Point{}, geom.Point{}, false
}

// Midpoint returns the point halfway along the sampled path. Edge context
// menus open there.
func Midpoint(p Path) geom.Point {
	pts := Sample(p, 16)
	if len(pts) == 0 {
		return geom.Point{}
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Len()
	}
	half := total / 2
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Sub(pts[i-1])
		l := seg.Len()
		if half <= l && l > 0 {
			return pts[i-1].Add(seg.Scale(half / l))
		}
		half -= l
	}
	return pts[len(pts)-1]
}
