// Package export renders diagrams outside the terminal: PNG images, the
// platform print command and the system clipboard.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// PNGOptions controls rasterisation.
type PNGOptions struct {
	// Region is the virtual-canvas rectangle to render. Empty means the
	// bounds of all nodes plus Margin.
	Region geom.Rect
	// Scale is output pixels per virtual unit. Zero means 1.
	Scale    float64
	Margin   float64
	FontSize float64
	// MaxPixels caps either output dimension.
	MaxPixels int
}

// Defaults for PNGOptions zero values.
const (
	DefaultMargin    = 40
	DefaultFontSize  = 13
	DefaultMaxPixels = 8000
)

var (
	inkColor   = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	edgeColor  = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	groupFill  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	groupLine  = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	inputLine  = color.RGBA{0x25, 0x63, 0xeb, 0xff}
	outputLine = color.RGBA{0xdc, 0x26, 0x26, 0xff}
)

func (o PNGOptions) withDefaults() PNGOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}

// RenderPNG draws g. paths are the routed edges; nil routes them from the
// graph's own bounds.
func RenderPNG(g *graphmodel.Graph, paths []edgeroute.Path, opts PNGOptions) (image.Image, error) {
	opts = opts.withDefaults()
	if paths == nil {
		paths = edgeroute.RouteAll(g.Edges(), edgeroute.ArenaFromGraph(g))
	}

	region := opts.Region
	if region.Empty() {
		for _, n := range g.Nodes() {
			if b, ok := g.Bounds(n.ID); ok {
				region = region.Union(b)
			}
		}
		if region.Empty() {
			region = geom.RectAt(geom.Point{}, geom.Sz(200, 100))
		}
		m := geom.Pt(opts.Margin, opts.Margin)
		region = geom.Rect{Min: region.Min.Sub(m), Max: region.Max.Add(m)}
	}

	scale := opts.Scale
	if longest := math.Max(region.Dx(), region.Dy()) * scale; longest > float64(opts.MaxPixels) {
		scale *= float64(opts.MaxPixels) / longest
	}
	w := max(1, int(math.Ceil(region.Dx()*scale)))
	h := max(1, int(math.Ceil(region.Dy()*scale)))

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	toPx := func(p geom.Point) (float64, float64) {
		q := p.Sub(region.Min).Scale(scale)
		return q.X, q.Y
	}

	nodes := g.Nodes()
	// groups underneath everything else
	for _, n := range nodes {
		if n.IsGroup() {
			drawNode(dc, g, n, toPx, scale)
		}
	}
	for _, p := range paths {
		var target geom.Rect
		if e, ok := g.Edge(p.EdgeID); ok {
			target, _ = g.Bounds(e.To)
		}
		drawPath(dc, p, target, toPx, scale)
	}
	for _, n := range nodes {
		if !n.IsGroup() {
			drawNode(dc, g, n, toPx, scale)
		}
	}
	return dc.Image(), nil
}

// WritePNG renders g and encodes it to w.
func WritePNG(w io.Writer, g *graphmodel.Graph, paths []edgeroute.Path, opts PNGOptions) error {
	img, err := RenderPNG(g, paths, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

// EncodePNG renders g into memory.
func EncodePNG(g *graphmodel.Graph, paths []edgeroute.Path, opts PNGOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, g, paths, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG renders g into the file at path.
func SavePNG(path string, g *graphmodel.Graph, paths []edgeroute.Path, opts PNGOptions) error {
	data, err := EncodePNG(g, paths, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ── Drawing ──

func drawNode(dc *gg.Context, g *graphmodel.Graph, n graphmodel.Node, toPx func(geom.Point) (float64, float64), scale float64) {
	b, ok := g.Bounds(n.ID)
	if !ok {
		return
	}
	x, y := toPx(b.Min)
	w, h := b.Dx()*scale, b.Dy()*scale

	fill := ParseColor(n.Color, color.White)
	line := color.Color(inkColor)
	switch n.Kind {
	case graphmodel.KindGroup:
		fill = ParseColor(n.Color, groupFill)
		line = groupLine
	case graphmodel.KindInput:
		line = inputLine
	case graphmodel.KindOutput:
		line = outputLine
	}

	dc.DrawRoundedRectangle(x, y, w, h, 6*scale)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(line)
	dc.SetLineWidth(1.5 * scale)
	if n.IsGroup() {
		dc.SetDash(6*scale, 4*scale)
	}
	dc.Stroke()
	dc.SetDash()

	dc.SetColor(inkColor)
	if n.IsGroup() {
		dc.DrawStringAnchored(n.Label, x+8*scale, y+14*scale, 0, 0.5)
		return
	}
	dc.DrawStringWrapped(n.Label, x+w/2, y+h/2, 0.5, 0.5, w-8*scale, 1.2, gg.AlignCenter)
}

func drawPath(dc *gg.Context, p edgeroute.Path, target geom.Rect, toPx func(geom.Point) (float64, float64), scale float64) {
	pts := edgeroute.Sample(p, 24)
	if len(pts) < 2 {
		return
	}
	dc.SetColor(edgeColor)
	dc.SetLineWidth(1.5 * scale)
	switch p.Dash {
	case graphmodel.DashDashed:
		dc.SetDash(5*scale, 5*scale)
	case graphmodel.DashDotted:
		dc.SetDash(1*scale, 4*scale)
	}
	x, y := toPx(pts[0])
	dc.MoveTo(x, y)
	for _, q := range pts[1:] {
		x, y = toPx(q)
		dc.LineTo(x, y)
	}
	dc.Stroke()
	dc.SetDash()

	if p.Arrow != graphmodel.ArrowClosed {
		return
	}
	from, to, ok := edgeroute.EndSegment(p)
	if !ok {
		return
	}
	fx, fy := toPx(from)
	tx, ty := toPx(clipToRect(from, to, target))
	drawArrow(dc, fx, fy, tx, ty, 10*scale)
}

// clipToRect moves to back along the segment from→to until it sits on the
// border of r, so arrowheads are not hidden under the target node.
func clipToRect(from, to geom.Point, r geom.Rect) geom.Point {
	if r.Empty() || !r.Contains(to) || r.Contains(from) {
		return to
	}
	lo, hi := 0.0, 1.0 // from is outside, to is inside
	d := to.Sub(from)
	for range 24 {
		mid := (lo + hi) / 2
		if r.Contains(from.Add(d.Scale(mid))) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return from.Add(d.Scale(lo))
}

func drawArrow(dc *gg.Context, fx, fy, tx, ty, size float64) {
	angle := math.Atan2(ty-fy, tx-fx)
	const spread = math.Pi / 7
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*math.Cos(angle-spread), ty-size*math.Sin(angle-spread))
	dc.LineTo(tx-size*math.Cos(angle+spread), ty-size*math.Sin(angle+spread))
	dc.ClosePath()
	dc.Fill()
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa. Anything else yields def.
func ParseColor(s string, def color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
