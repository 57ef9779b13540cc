package tealayout

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

// Z levels for chrome layers.
const (
	ZBackground = 0
	ZPanel      = 1
	ZOverlay    = 50
	ZModal      = 100
)

// BarLayer renders a one-line bar across the full width at row y.
func BarLayer(id, content string, width, y int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Width(width).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(0).Y(y).Z(ZBackground).ID(id)
}

// VerticalSeparator draws a column of │ at x.
func VerticalSeparator(x, y, height int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Render(strings.TrimSuffix(strings.Repeat("│\n", max(height, 0)), "\n"))
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(ZPanel).ID("separator")
}

// ModalLayer centers content, rendered in boxStyle, on the terminal.
func ModalLayer(id, content string, termW, termH int, boxStyle lipgloss.Style) *lipgloss.Layer {
	rendered := boxStyle.Render(content)
	cx := max((termW-lipgloss.Width(rendered))/2, 0)
	cy := max((termH-lipgloss.Height(rendered))/2, 0)
	return lipgloss.NewLayer(rendered).X(cx).Y(cy).Z(ZModal).ID(id)
}

// OverlayLayer places rendered content with its top-left at p, shifted
// back inside bounds when it would spill over the right or bottom edge.
func OverlayLayer(id, rendered string, p image.Point, bounds image.Rectangle) *lipgloss.Layer {
	w, h := lipgloss.Width(rendered), lipgloss.Height(rendered)
	x := max(min(p.X, bounds.Max.X-w), bounds.Min.X)
	y := max(min(p.Y, bounds.Max.Y-h), bounds.Min.Y)
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(ZOverlay).ID(id)
}

// FillLayer paints a region with style, for backgrounds.
func FillLayer(r Region, style lipgloss.Style, id string, z int) *lipgloss.Layer {
	w, h := r.Rect.Dx(), r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
	}
	rendered := Block(nil, w, h, style)
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}

// Block pads or cuts pre-styled lines to exactly width×height, filling
// the padding with pad so backgrounds stay solid.
func Block(lines []string, width, height int, pad lipgloss.Style) string {
	out := make([]string, height)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		if gap := width - lipgloss.Width(l); gap > 0 {
			l += pad.Render(strings.Repeat(" ", gap))
		}
		out[i] = l
	}
	return strings.Join(out, "\n")
}
