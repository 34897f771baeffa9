package grid

import "testing"

func TestSnapRoundTrip(t *testing.T) {
	// grid_up(grid_down(x)) == x when x is already grid-aligned (spec.md §8).
	origin, spacing := 0, 8
	for _, x := range []int{0, 8, 16, -8, -16, 800} {
		down := SnapDown(x, origin, spacing)
		if down != x {
			t.Fatalf("SnapDown(%d) = %d, want %d (already aligned)", x, down, x)
		}
		up := SnapUp(down, origin, spacing)
		if up != x {
			t.Fatalf("SnapUp(SnapDown(%d)) = %d, want %d", x, up, x)
		}
	}
}

func TestSnapUnaligned(t *testing.T) {
	origin, spacing := 0, 8
	if got := SnapDown(10, origin, spacing); got != 8 {
		t.Errorf("SnapDown(10) = %d, want 8", got)
	}
	if got := SnapUp(10, origin, spacing); got != 16 {
		t.Errorf("SnapUp(10) = %d, want 16", got)
	}
	if got := SnapDown(-3, origin, spacing); got != -8 {
		t.Errorf("SnapDown(-3) = %d, want -8", got)
	}
}

func TestRoundRectInward(t *testing.T) {
	r := Rect{XLo: 1, YLo: 1, XHi: 31, YHi: 31}
	got := RoundRectInward(r, Point{}, 8)
	want := Rect{XLo: 8, YLo: 8, XHi: 24, YHi: 24}
	if got != want {
		t.Fatalf("RoundRectInward = %+v, want %+v", got, want)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{XLo: 0, YLo: 0, XHi: 10, YHi: 10}
	b := Rect{XLo: 5, YLo: 5, XHi: 15, YHi: 15}
	c := Rect{XLo: 10, YLo: 10, XHi: 20, YHi: 20}

	if !a.Overlaps(b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected a and c (touching only at a corner) not to overlap")
	}
}

func TestOppositeSide(t *testing.T) {
	cases := []struct {
		s, want Side
	}{
		{Bottom, Top},
		{Top, Bottom},
		{Left, Right},
		{Right, Left},
	}
	for _, c := range cases {
		if got := c.s.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.s, got, c.want)
		}
		if c.s.Opposite().Opposite() != c.s {
			t.Errorf("Opposite is not involutive for %v", c.s)
		}
	}
}

func TestContactLineStaysInSpan(t *testing.T) {
	// A terminal spanning [3, 13) with contact width 4 on a grid of
	// spacing 8 starting at 0: centre is 8, which is already a grid
	// line, and leaves room for the contact.
	line := ContactLine(3, 13, 0, 8, 4)
	if line < 3+2 || line > 13-2 {
		t.Fatalf("ContactLine = %d, want a line leaving room for the contact inside [3,13)", line)
	}
}
