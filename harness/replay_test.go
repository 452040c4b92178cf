package harness

import (
	"bytes"
	"testing"

	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/cell"
	"github.com/kungfusheep/frankentui/diff"
	"github.com/kungfusheep/frankentui/grapheme"
	"github.com/kungfusheep/frankentui/present"
)

var testWidths = grapheme.NewWidthCache().Width

func renderFullFrame(t *testing.T, b *buffer.Buffer, gp *grapheme.Pool) []byte {
	t.Helper()
	var out bytes.Buffer
	p := present.New(&out, present.Capabilities{}, present.ScreenDisabled)
	p.SetGraphemeResolver(gp.Lookup)
	blank := buffer.New(b.Width(), b.Height())
	d := diff.Compute(blank, b, diff.StrategyFull)
	if err := p.Present(d, b); err != nil {
		t.Fatalf("Present: %v", err)
	}
	return out.Bytes()
}

func TestReplayMatchesPlainText(t *testing.T) {
	gp := grapheme.NewPool()
	b := buffer.New(6, 2)
	b.WriteString(0, 0, "hello!", cell.Style{}, gp, testWidths)

	stream := renderFullFrame(t, b, gp)
	grid, err := Replay(stream, 6, 2)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	ok, msg := grid.MatchesBuffer(b, gp.Lookup, nil)
	if !ok {
		t.Fatalf("replay mismatch: %s", msg)
	}
}

func TestReplayMatchesStyledText(t *testing.T) {
	gp := grapheme.NewPool()
	b := buffer.New(4, 1)
	st := cell.Style{FG: cell.RGB(200, 10, 10), Attr: cell.AttrBold}
	b.WriteString(0, 0, "hey", st, gp, testWidths)

	stream := renderFullFrame(t, b, gp)
	grid, err := Replay(stream, 4, 1)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	ok, msg := grid.MatchesBuffer(b, gp.Lookup, nil)
	if !ok {
		t.Fatalf("replay mismatch: %s", msg)
	}
}

func TestReplayMatchesWideGrapheme(t *testing.T) {
	gp := grapheme.NewPool()
	b := buffer.New(4, 1)
	b.WriteString(0, 0, "中A", cell.Style{}, gp, testWidths)

	stream := renderFullFrame(t, b, gp)
	grid, err := Replay(stream, 4, 1)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	ok, msg := grid.MatchesBuffer(b, gp.Lookup, nil)
	if !ok {
		t.Fatalf("replay mismatch: %s", msg)
	}
	if grid.Cells[0].Width != 2 {
		t.Fatalf("expected a wide cell at (0,0), got width %d", grid.Cells[0].Width)
	}
	if grid.Cells[1].Text != "" {
		t.Fatalf("expected the continuation cell to carry no text, got %q", grid.Cells[1].Text)
	}
}

func TestReplayRejectsTruncatedCSI(t *testing.T) {
	if _, err := Replay([]byte("\x1b[1;1"), 4, 1); err == nil {
		t.Fatalf("expected an error for an unterminated CSI sequence")
	}
}

func TestReplayDetectsMismatch(t *testing.T) {
	gp := grapheme.NewPool()
	b := buffer.New(4, 1)
	b.WriteString(0, 0, "abcd", cell.Style{}, gp, testWidths)
	stream := renderFullFrame(t, b, gp)

	other := buffer.New(4, 1)
	other.WriteString(0, 0, "abXd", cell.Style{}, gp, testWidths)

	grid, err := Replay(stream, 4, 1)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	ok, _ := grid.MatchesBuffer(other, gp.Lookup, nil)
	if ok {
		t.Fatalf("expected a mismatch against a differing buffer")
	}
}
