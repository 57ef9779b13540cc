// Package graphmodel is the in-memory diagram: string-keyed nodes and edges
// with stable insertion-order iteration, group/parent relationships, style
// records, hit testing and the referential-integrity rules every mutation
// has to respect.
package graphmodel

import "github.com/softpython2884/StudyVerse-sub000/pkg/geom"

// Spatial is the minimal interface for a positioned, sized element.
type Spatial interface {
	Pos() geom.Point
	Dims() geom.Size
}

// BoundsOf returns the bounding rectangle of a Spatial element.
func BoundsOf(s Spatial) geom.Rect {
	return geom.RectAt(s.Pos(), s.Dims())
}
