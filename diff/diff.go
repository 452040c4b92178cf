// Package diff computes the minimal cell-level delta between two buffers
// and chooses between a full-grid scan and a dirty-region scan using an
// adaptive predictor (spec §4.3).
package diff

import (
	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/cell"
)

// CellSpan is one coalesced run of changed cells on a single row.
type CellSpan struct {
	Row    int
	Col    int
	Cells  []cell.Cell
}

// Diff is the result of comparing two buffers: the spans that changed and
// whether the presenter should instead perform a full repaint.
type Diff struct {
	Spans      []CellSpan
	FullRepaint bool
}

// Strategy names which scan Compute used, recorded for the evidence ledger.
type Strategy uint8

const (
	StrategyFull Strategy = iota
	StrategyDirtyRegion
)

func (s Strategy) String() string {
	if s == StrategyFull {
		return "full"
	}
	return "dirty-region"
}

// maxCoalesceGap is the largest run of unchanged cells that still gets
// folded into an adjacent span: re-emitting a few unchanged cells is
// cheaper than the bytes of a cursor-reposition escape.
const maxCoalesceGap = 4

// Compute returns the diff between old and next, using strategy to decide
// how to scan. The returned spans are identical regardless of which
// strategy produced them for the same inputs — strategy only affects CPU
// cost (spec §4.3).
func Compute(old, next *buffer.Buffer, strategy Strategy) Diff {
	if next.AllDirty() || old.Width() != next.Width() || old.Height() != next.Height() {
		return Diff{FullRepaint: true}
	}

	var spans []CellSpan
	switch strategy {
	case StrategyFull:
		spans = fullScan(old, next)
	default:
		spans = dirtyRegionScan(old, next)
	}
	return Diff{Spans: spans}
}

func fullScan(old, next *buffer.Buffer) []CellSpan {
	var spans []CellSpan
	w := next.Width()
	for y := 0; y < next.Height(); y++ {
		spans = append(spans, rowSpans(old, next, y, 0, w)...)
	}
	return spans
}

func dirtyRegionScan(old, next *buffer.Buffer) []CellSpan {
	var spans []CellSpan
	for y := 0; y < next.Height(); y++ {
		if !next.RowDirty(y) {
			continue
		}
		span := next.DirtySpan(y)
		if span.End <= span.Start {
			continue
		}
		spans = append(spans, rowSpans(old, next, y, span.Start, span.End)...)
	}
	return spans
}

// rowSpans walks columns [from,to) of row y, comparing old and next, and
// coalesces changed runs separated by small gaps into single spans.
func rowSpans(old, next *buffer.Buffer, y, from, to int) []CellSpan {
	var spans []CellSpan
	col := from
	for col < to {
		if next.Get(col, y).Equal(old.Get(col, y)) {
			col++
			continue
		}
		start := col
		gap := 0
		var cells []cell.Cell
		for col < to {
			c := next.Get(col, y)
			if c.Equal(old.Get(col, y)) {
				gap++
				if gap > maxCoalesceGap {
					break
				}
			} else {
				gap = 0
			}
			cells = append(cells, c)
			col++
		}
		// Trim trailing unchanged cells that didn't end up bridging to
		// another change (the loop above may have over-extended by up to
		// maxCoalesceGap).
		for len(cells) > 0 && cells[len(cells)-1].Equal(old.Get(start+len(cells)-1, y)) {
			cells = cells[:len(cells)-1]
		}
		if len(cells) > 0 {
			spans = append(spans, CellSpan{Row: y, Col: start, Cells: cells})
		}
	}
	return spans
}
