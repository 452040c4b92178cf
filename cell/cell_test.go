package cell

import "testing"

func TestBlankIsEmpty(t *testing.T) {
	if !Blank.Empty() {
		t.Fatalf("Blank should be Empty()")
	}
}

func TestCellEqualIgnoresDirty(t *testing.T) {
	a := Cell{Rune: 'x', Width: WidthNarrow, Dirty: true}
	b := Cell{Rune: 'x', Width: WidthNarrow, Dirty: false}
	if !a.Equal(b) {
		t.Fatalf("cells differing only in Dirty should be Equal")
	}
}

func TestCellEqualDetectsDifference(t *testing.T) {
	a := Cell{Rune: 'x', Width: WidthNarrow}
	b := Cell{Rune: 'y', Width: WidthNarrow}
	if a.Equal(b) {
		t.Fatalf("cells with different runes should not be Equal")
	}
}

func TestIsContinuation(t *testing.T) {
	c := Cell{Width: WidthContinuation}
	if !c.IsContinuation() {
		t.Fatalf("expected a WidthContinuation cell to report IsContinuation")
	}
	if Blank.IsContinuation() {
		t.Fatalf("Blank should not be a continuation cell")
	}
}

func TestColorResolveAdaptive(t *testing.T) {
	c := Adaptive([3]uint8{200, 200, 200}, [3]uint8{10, 10, 10})
	dark := c.Resolve(true)
	if dark.Mode != ColorRGB24 || dark.R != 200 {
		t.Fatalf("Resolve(true) should pick the light triple, got %+v", dark)
	}
	light := c.Resolve(false)
	if light.Mode != ColorRGB24 || light.R != 10 {
		t.Fatalf("Resolve(false) should pick the dark triple, got %+v", light)
	}
}

func TestColorResolveNonAdaptivePassesThrough(t *testing.T) {
	c := RGB(1, 2, 3)
	if got := c.Resolve(true); got != c {
		t.Fatalf("Resolve on a non-adaptive color should be a no-op, got %+v", got)
	}
}

func TestColorString(t *testing.T) {
	if got := Default.String(); got != "default" {
		t.Fatalf("Default.String() = %q, want %q", got, "default")
	}
	if got := RGB(0xff, 0, 0).String(); got != "#ff0000" {
		t.Fatalf("RGB(255,0,0).String() = %q, want %q", got, "#ff0000")
	}
	if got := Named16(20).String(); got != "named16(4)" {
		t.Fatalf("Named16(20).String() = %q, want masked to 4 bits", got)
	}
}

func TestNamed16MasksToFourBits(t *testing.T) {
	if got := Named16(0x1f); got.Index != 0x0f {
		t.Fatalf("Named16(0x1f).Index = %d, want masked to 0x0f", got.Index)
	}
}

func TestStyleMergeOverridesNonDefaultFields(t *testing.T) {
	base := Style{FG: RGB(1, 1, 1), BG: RGB(2, 2, 2), Attr: AttrBold}
	over := Style{FG: RGB(9, 9, 9), Attr: AttrItalic}
	merged := base.Merge(over)
	if merged.FG != over.FG {
		t.Fatalf("expected FG overridden to %+v, got %+v", over.FG, merged.FG)
	}
	if merged.BG != base.BG {
		t.Fatalf("expected BG to remain the base's %+v (over.BG is default), got %+v", base.BG, merged.BG)
	}
	if !merged.Attr.Has(AttrBold) || !merged.Attr.Has(AttrItalic) {
		t.Fatalf("expected Attr to be the union of both styles, got %v", merged.Attr)
	}
}

func TestAttributeHas(t *testing.T) {
	a := AttrBold | AttrUnderline
	if !a.Has(AttrBold) {
		t.Fatalf("expected Has(AttrBold) to be true")
	}
	if a.Has(AttrItalic) {
		t.Fatalf("expected Has(AttrItalic) to be false")
	}
	if !a.Has(AttrBold | AttrUnderline) {
		t.Fatalf("expected Has to match the full combined mask")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 3, H: 2}
	if !r.Contains(Point{X: 1, Y: 1}) {
		t.Fatalf("expected the top-left corner to be contained")
	}
	if !r.Contains(Point{X: 3, Y: 2}) {
		t.Fatalf("expected the bottom-right-most cell to be contained")
	}
	if r.Contains(Point{X: 4, Y: 1}) {
		t.Fatalf("expected the column just past the right edge to be excluded")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}
}

func TestRectIntersectDisjointIsEmpty(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}
	b := Rect{X: 5, Y: 5, W: 1, H: 1}
	if got := a.Intersect(b); !got.Empty() {
		t.Fatalf("expected disjoint rects to intersect to empty, got %+v", got)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	got := r.Inset(2)
	want := Rect{X: 2, Y: 2, W: 6, H: 6}
	if got != want {
		t.Fatalf("Inset(2) = %+v, want %+v", got, want)
	}
}

func TestRectRightBottom(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}
	if r.Right() != 6 {
		t.Fatalf("Right() = %d, want 6", r.Right())
	}
	if r.Bottom() != 8 {
		t.Fatalf("Bottom() = %d, want 8", r.Bottom())
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{W: 0, H: 5}).Empty() {
		t.Fatalf("expected zero-width rect to be Empty")
	}
	if (Rect{W: 1, H: 1}).Empty() {
		t.Fatalf("expected a 1x1 rect to not be Empty")
	}
}
