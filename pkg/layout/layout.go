// Package layout assigns deterministic positions to nodes that arrive
// without coordinates, typically from AI generation.
//
// All functions are pure: they take the nodes in input order and return a
// new slice in the same order with Pos filled in. Input order is the only
// tiebreaker, so identical input always yields identical output.
package layout

import (
	"math"

	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// Flowchart grid parameters.
const (
	GridColumns = 4
	GridGapX    = 200
	GridGapY    = 140
	GridOriginX = 150
	GridOriginY = 80
)

// Org chart tree parameters.
const (
	TreeOriginX = 120
	TreeOriginY = 80
	TreeGapX    = 200
	TreeGapY    = 140
)

// RingRadius is the distance between mind map rings.
const RingRadius = 220

// CanvasCenter is the middle of the 2000x1400 virtual canvas.
var CanvasCenter = geom.Pt(1000, 700)

// Item is one node as seen by the layout functions. Parent is only read
// by the tree layouts.
type Item struct {
	ID     string
	Parent string
	Pos    *geom.Point
}

// Positioned reports whether the item already has coordinates.
func (it Item) Positioned() bool { return it.Pos != nil }

func at(x, y float64) *geom.Point {
	p := geom.Pt(x, y)
	return &p
}

func allPositioned(items []Item) bool {
	for _, it := range items {
		if !it.Positioned() {
			return false
		}
	}
	return true
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.Pos != nil {
			out[i].Pos = at(it.Pos.X, it.Pos.Y)
		}
	}
	return out
}

// Flowchart returns items unchanged when every one is positioned;
// otherwise it lays all of them out on a row-major grid of GridColumns
// columns in input order.
func Flowchart(items []Item) []Item {
	out := clone(items)
	if allPositioned(items) {
		return out
	}
	for i := range out {
		col, row := i%GridColumns, i/GridColumns
		out[i].Pos = at(GridOriginX+float64(col*GridGapX), GridOriginY+float64(row*GridGapY))
	}
	return out
}

// ForDiagram applies the fallback matching the diagram type. Only items
// without coordinates trigger it: a fully positioned set is returned as is.
func ForDiagram(kind graphmodel.DiagramType, items []Item) []Item {
	if allPositioned(items) {
		return clone(items)
	}
	switch kind {
	case graphmodel.DiagramOrgChart:
		return OrgChart(items)
	case graphmodel.DiagramMindMap:
		return MindMap(items, CanvasCenter)
	default:
		return Flowchart(items)
	}
}

// ── Trees ──

// forest indexes items by id and groups children under their parent in
// input order. Items whose parent does not resolve, or is themselves, are
// roots.
type forest struct {
	index    map[string]int
	children map[int][]int
	roots    []int
}

func buildForest(items []Item) forest {
	f := forest{
		index:    make(map[string]int, len(items)),
		children: make(map[int][]int),
	}
	for i, it := range items {
		if _, dup := f.index[it.ID]; !dup {
			f.index[it.ID] = i
		}
	}
	for i, it := range items {
		p, ok := f.index[it.Parent]
		if it.Parent == "" || !ok || p == i {
			f.roots = append(f.roots, i)
			continue
		}
		f.children[p] = append(f.children[p], i)
	}
	return f
}

// walk visits every item once, depth first, children in input order.
// Items stranded in a parent cycle are picked up afterwards as extra
// roots, in input order.
func (f forest) walk(n int, visit func(i, parent, depth int)) {
	seen := make([]bool, n)
	var dfs func(i, parent, depth int)
	dfs = func(i, parent, depth int) {
		seen[i] = true
		visit(i, parent, depth)
		for _, c := range f.children[i] {
			if !seen[c] {
				dfs(c, i, depth+1)
			}
		}
	}
	for _, r := range f.roots {
		if !seen[r] {
			dfs(r, -1, 0)
		}
	}
	for i := range n {
		if !seen[i] {
			dfs(i, -1, 0)
		}
	}
}

// OrgChart lays out a forest top-down. Depth picks the row. The column
// counter advances for every visited node except a first child below the
// top level, which continues its parent's column so reporting chains stack
// vertically: a(b(d), c) puts a, b, c on columns 0, 1, 2 and d under b.
func OrgChart(items []Item) []Item {
	out := clone(items)
	f := buildForest(items)

	column := make([]int, len(items))
	next := 0
	f.walk(len(items), func(i, parent, depth int) {
		switch {
		case parent >= 0 && depth > 1 && f.children[parent][0] == i:
			column[i] = column[parent]
		default:
			column[i] = next
			next++
		}
		out[i].Pos = at(TreeOriginX+float64(column[i]*TreeGapX), TreeOriginY+float64(depth*TreeGapY))
	})
	return out
}

// MindMap places roots around center and fans children out on concentric
// rings, each child taking an equal share of its parent's angular sector.
func MindMap(items []Item, center geom.Point) []Item {
	out := clone(items)
	if len(items) == 0 {
		return out
	}
	f := buildForest(items)

	type sector struct{ from, to float64 }
	sectors := make([]sector, len(items))

	rootSpan := 2 * math.Pi / float64(len(f.roots))
	for k, r := range f.roots {
		sectors[r] = sector{float64(k) * rootSpan, float64(k+1) * rootSpan}
	}

	f.walk(len(items), func(i, parent, depth int) {
		if parent >= 0 {
			ps := sectors[parent]
			siblings := f.children[parent]
			span := (ps.to - ps.from) / float64(len(siblings))
			for k, s := range siblings {
				if s == i {
					sectors[i] = sector{ps.from + float64(k)*span, ps.from + float64(k+1)*span}
					break
				}
			}
		} else if sectors[i] == (sector{}) {
			// cycle member promoted to root
			sectors[i] = sector{0, 2 * math.Pi}
		}
		if depth == 0 && len(f.roots) == 1 {
			out[i].Pos = at(center.X, center.Y)
			return
		}
		mid := (sectors[i].from + sectors[i].to) / 2
		r := float64(depth) * RingRadius
		if len(f.roots) > 1 {
			r += RingRadius / 2
		}
		out[i].Pos = at(
			math.Round(center.X+r*math.Cos(mid)),
			math.Round(center.Y+r*math.Sin(mid)),
		)
	})
	return out
}
