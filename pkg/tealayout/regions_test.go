package tealayout

import (
	"image"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestLayoutBasic(t *testing.T) {
	l := NewLayoutBuilder(80, 24).
		TopFixed("toolbar", 3).
		BottomFixed("footer", 1).
		RightFixed("panel", 34).
		Remaining("canvas").
		Build()

	if l.TermW != 80 || l.TermH != 24 {
		t.Fatalf("term size: expected 80x24, got %dx%d", l.TermW, l.TermH)
	}

	tb := l.Get("toolbar")
	if tb.Rect != image.Rect(0, 0, 80, 3) {
		t.Errorf("toolbar: expected (0,0)-(80,3), got %v", tb.Rect)
	}

	ft := l.Get("footer")
	if ft.Rect != image.Rect(0, 23, 80, 24) {
		t.Errorf("footer: expected (0,23)-(80,24), got %v", ft.Rect)
	}

	pn := l.Get("panel")
	if pn.Rect != image.Rect(46, 3, 80, 23) {
		t.Errorf("panel: expected (46,3)-(80,23), got %v", pn.Rect)
	}

	cv := l.Get("canvas")
	if cv.Rect != image.Rect(0, 3, 46, 23) {
		t.Errorf("canvas: expected (0,3)-(46,23), got %v", cv.Rect)
	}
}

func TestLayoutRemainingOnly(t *testing.T) {
	l := NewLayoutBuilder(80, 24).
		Remaining("full").
		Build()

	r := l.Get("full")
	if r.Rect != image.Rect(0, 0, 80, 24) {
		t.Errorf("full: expected (0,0)-(80,24), got %v", r.Rect)
	}
}

func TestLayoutZeroSize(t *testing.T) {
	l := NewLayoutBuilder(0, 0).
		TopFixed("toolbar", 3).
		Remaining("canvas").
		Build()

	cv := l.Get("canvas")
	// With 0-height terminal and 3 rows consumed from top, remaining is negative → clamped to zero
	if cv.Rect.Dx() != 0 || cv.Rect.Dy() != 0 {
		t.Errorf("zero term canvas: expected empty rect, got %v", cv.Rect)
	}
}

func TestLayoutNoOverlap(t *testing.T) {
	l := NewLayoutBuilder(80, 24).
		TopFixed("toolbar", 3).
		BottomFixed("footer", 1).
		RightFixed("panel", 34).
		Remaining("canvas").
		Build()

	regions := []Region{
		l.Get("toolbar"),
		l.Get("footer"),
		l.Get("panel"),
		l.Get("canvas"),
	}

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			ri, rj := regions[i], regions[j]
			if ri.Rect.Overlaps(rj.Rect) {
				t.Errorf("overlap: %s %v and %s %v",
					ri.Name, ri.Rect, rj.Name, rj.Rect)
			}
		}
	}
}

func TestLayoutCanvasDimensions(t *testing.T) {
	l := NewLayoutBuilder(80, 24).
		TopFixed("toolbar", 3).
		BottomFixed("footer", 1).
		RightFixed("panel", 34).
		Remaining("canvas").
		Build()

	cv := l.Get("canvas")
	// 80 - 34 = 46 wide, 24 - 3 - 1 = 20 tall
	if cv.Rect.Dx() != 46 || cv.Rect.Dy() != 20 {
		t.Errorf("canvas dims: expected 46x20, got %dx%d", cv.Rect.Dx(), cv.Rect.Dy())
	}
}

func TestGetNonExistent(t *testing.T) {
	l := NewLayoutBuilder(80, 24).Build()
	r := l.Get("missing")
	if r.Name != "" {
		t.Errorf("non-existent: expected empty, got %v", r)
	}
}

func TestLocate(t *testing.T) {
	l := NewLayoutBuilder(80, 24).
		TopFixed("toolbar", 1).
		BottomFixed("status", 1).
		RightFixed("panel", 30).
		Remaining("canvas").
		Build()

	tests := []struct {
		p    image.Point
		want string
	}{
		{image.Pt(5, 0), "toolbar"},
		{image.Pt(79, 23), "status"},
		{image.Pt(60, 10), "panel"},
		{image.Pt(0, 1), "canvas"},
		{image.Pt(49, 22), "canvas"},
	}
	for _, tc := range tests {
		r, ok := l.Locate(tc.p)
		if !ok || r.Name != tc.want {
			t.Errorf("Locate(%v) = %q %v, want %q", tc.p, r.Name, ok, tc.want)
		}
	}
	if _, ok := l.Locate(image.Pt(80, 5)); ok {
		t.Error("point outside the terminal was located")
	}

	cv := l.Get("canvas")
	if got := cv.Local(image.Pt(3, 4)); got != image.Pt(3, 3) {
		t.Errorf("Local = %v, want (3,3)", got)
	}
}

func TestModalLayer(t *testing.T) {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Width(20).
		Padding(1, 2)

	layer := ModalLayer("prompt", "test content", 80, 24, style)
	if layer.GetID() != "prompt" {
		t.Errorf("modal ID: expected 'prompt', got %q", layer.GetID())
	}
	if layer.GetZ() != ZModal {
		t.Errorf("modal Z: expected %d, got %d", ZModal, layer.GetZ())
	}
	x, y := layer.GetX(), layer.GetY()
	if x < 20 || x > 40 {
		t.Errorf("modal X not centered: %d", x)
	}
	if y < 5 || y > 15 {
		t.Errorf("modal Y not centered: %d", y)
	}
}

func TestOverlayLayerStaysInBounds(t *testing.T) {
	bounds := image.Rect(0, 1, 40, 20)
	menu := "abcdefghij\nabcdefghij\nabcdefghij"

	layer := OverlayLayer("menu", menu, image.Pt(5, 5), bounds)
	if layer.GetX() != 5 || layer.GetY() != 5 || layer.GetZ() != ZOverlay {
		t.Errorf("in-bounds overlay moved: (%d,%d) z=%d", layer.GetX(), layer.GetY(), layer.GetZ())
	}

	layer = OverlayLayer("menu", menu, image.Pt(38, 19), bounds)
	if layer.GetX() != 30 || layer.GetY() != 17 {
		t.Errorf("overlay not pulled back: (%d,%d), want (30,17)", layer.GetX(), layer.GetY())
	}

	layer = OverlayLayer("menu", menu, image.Pt(-4, -4), bounds)
	if layer.GetX() != 0 || layer.GetY() != 1 {
		t.Errorf("overlay not clamped to origin: (%d,%d)", layer.GetX(), layer.GetY())
	}
}

func TestBlockPadsAndCuts(t *testing.T) {
	out := Block([]string{"ab", "abcd", "x", "dropped"}, 4, 3, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if lipgloss.Width(l) != 4 {
			t.Errorf("line %d width %d, want 4: %q", i, lipgloss.Width(l), l)
		}
	}
	if lines[0] != "ab  " {
		t.Errorf("line 0 = %q", lines[0])
	}
}

func TestFillLayer(t *testing.T) {
	r := Region{Name: "canvas", Rect: image.Rect(10, 5, 30, 15)}
	style := lipgloss.NewStyle().Background(lipgloss.Color("#f9fafb"))
	layer := FillLayer(r, style, "bg", 0)

	if layer.GetID() != "bg" {
		t.Errorf("fill ID: expected 'bg', got %q", layer.GetID())
	}
	if layer.GetX() != 10 || layer.GetY() != 5 {
		t.Errorf("fill pos: expected (10,5), got (%d,%d)", layer.GetX(), layer.GetY())
	}
	if h := lipgloss.Height(layer.GetContent()); h != 10 {
		t.Errorf("fill height %d, want 10", h)
	}
}

func TestFillLayerEmpty(t *testing.T) {
	layer := FillLayer(Region{Name: "empty"}, lipgloss.NewStyle(), "bg", 0)
	if layer.GetContent() != "" {
		t.Error("empty fill should have no content")
	}
}

func TestBarLayer(t *testing.T) {
	layer := BarLayer("status", "ready", 30, 23, lipgloss.NewStyle())
	if layer.GetY() != 23 || layer.GetID() != "status" {
		t.Errorf("bar at y=%d id=%q", layer.GetY(), layer.GetID())
	}
	if w := lipgloss.Width(layer.GetContent()); w != 30 {
		t.Errorf("bar width %d, want 30", w)
	}
}
