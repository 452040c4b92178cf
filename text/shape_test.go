package text

import "testing"

func fixedWidth(w uint8) WidthFunc {
	return func(cluster []byte) uint8 { return w }
}

func TestTerminalShaperOneGlyphPerGrapheme(t *testing.T) {
	run := Run{Text: "abc", ByteStart: 0, Direction: LTR}
	glyphs := TerminalShaper{}.Shape(run, Features{}, fixedWidth(1))
	if len(glyphs) != 3 {
		t.Fatalf("expected 3 glyphs, got %d", len(glyphs))
	}
	for i, g := range glyphs {
		if g.ByteStart != i || g.ByteEnd != i+1 {
			t.Fatalf("glyph %d: unexpected byte range [%d,%d)", i, g.ByteStart, g.ByteEnd)
		}
		if g.CellWidth != 1 {
			t.Fatalf("glyph %d: expected width 1, got %d", i, g.CellWidth)
		}
	}
}

func TestTerminalShaperWideGrapheme(t *testing.T) {
	run := Run{Text: "中", ByteStart: 5, Direction: LTR}
	glyphs := TerminalShaper{}.Shape(run, Features{}, fixedWidth(2))
	if len(glyphs) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(glyphs))
	}
	if glyphs[0].CellWidth != 2 || glyphs[0].ByteStart != 5 {
		t.Fatalf("unexpected glyph %+v", glyphs[0])
	}
}

func TestNoOpShaperSpansWholeRun(t *testing.T) {
	run := Run{Text: "whatever", ByteStart: 2, Direction: LTR}
	glyphs := NoOpShaper{}.Shape(run, Features{}, fixedWidth(1))
	if len(glyphs) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(glyphs))
	}
	if glyphs[0].Cluster != "whatever" || glyphs[0].ByteStart != 2 || glyphs[0].ByteEnd != 10 {
		t.Fatalf("unexpected glyph %+v", glyphs[0])
	}
}

func TestNoOpShaperEmptyRun(t *testing.T) {
	if glyphs := (NoOpShaper{}).Shape(Run{}, Features{}, fixedWidth(1)); glyphs != nil {
		t.Fatalf("expected nil for an empty run, got %+v", glyphs)
	}
}
