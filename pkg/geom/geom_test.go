package geom

import "testing"

func TestRectCenter(t *testing.T) {
	r := RectAt(Pt(10, 20), Sz(8, 4))
	if c := r.Center(); c != Pt(14, 22) {
		t.Errorf("Center: expected (14,22), got %v", c)
	}
}

func TestRectContains(t *testing.T) {
	r := RectAt(Pt(0, 0), Sz(10, 10))
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(9.9, 9.9), true},
		{Pt(10, 5), false},
		{Pt(-1, 5), false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	a := RectAt(Pt(0, 0), Sz(10, 10))
	if !a.Overlaps(RectAt(Pt(5, 5), Sz(10, 10))) {
		t.Error("expected overlap")
	}
	if a.Overlaps(RectAt(Pt(10, 0), Sz(5, 5))) {
		t.Error("touching edges should not overlap")
	}
	if a.Overlaps(Rect{}) {
		t.Error("empty rect should not overlap")
	}
}

func TestRectUnion(t *testing.T) {
	a := RectAt(Pt(0, 0), Sz(10, 10))
	b := RectAt(Pt(20, -5), Sz(5, 5))
	u := a.Union(b)
	if u.Min != Pt(0, -5) || u.Max != Pt(25, 10) {
		t.Errorf("Union: got %v", u)
	}
	if a.Union(Rect{}) != a {
		t.Error("union with empty should be identity")
	}
}

func TestRectCanon(t *testing.T) {
	r := Rect{Min: Pt(10, 10), Max: Pt(0, 5)}.Canon()
	if r.Min != Pt(0, 5) || r.Max != Pt(10, 10) {
		t.Errorf("Canon: got %v", r)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp out of range")
	}
	if Clamp(5, 4, 2) != 4 {
		t.Error("inverted range should clamp to lo")
	}
}
