package layout

import "github.com/kungfusheep/frankentui/cell"

// GridTemplate is a sequence of track constraints for one axis, resolved
// with the same solver as flex (spec §4.6 Grid).
type GridTemplate struct {
	Rows    []Constraint
	Cols    []Constraint
	RowGap  int
	ColGap  int
}

// GridPlacement addresses one child's cell span.
type GridPlacement struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// ResolveGrid resolves row and column track sizes for the given container
// rect, independently per axis, then returns the rectangle each placement
// occupies by summing spanned tracks plus the gaps between them.
func ResolveGrid(area cell.Rect, tmpl GridTemplate, placements []GridPlacement, cache *Cache) []cell.Rect {
	rowSizes := ResolveFlex(FlexParams{Total: area.H, Gap: tmpl.RowGap, Constraints: tmpl.Rows}, cache)
	colSizes := ResolveFlex(FlexParams{Total: area.W, Gap: tmpl.ColGap, Constraints: tmpl.Cols}, cache)
	rowPos := Positions(rowSizes, tmpl.RowGap, area.H, AlignStart)
	colPos := Positions(colSizes, tmpl.ColGap, area.W, AlignStart)

	out := make([]cell.Rect, len(placements))
	for i, pl := range placements {
		if pl.Row < 0 || pl.Row >= len(rowSizes) || pl.Col < 0 || pl.Col >= len(colSizes) {
			continue
		}
		rowSpan := max1(pl.RowSpan)
		colSpan := max1(pl.ColSpan)

		h := spanExtent(rowSizes, rowPos, tmpl.RowGap, pl.Row, rowSpan)
		w := spanExtent(colSizes, colPos, tmpl.ColGap, pl.Col, colSpan)

		out[i] = cell.Rect{
			X: area.X + colPos[pl.Col],
			Y: area.Y + rowPos[pl.Row],
			W: w,
			H: h,
		}
	}
	return out
}

func spanExtent(sizes, pos []int, gap, start, span int) int {
	end := start + span - 1
	if end >= len(sizes) {
		end = len(sizes) - 1
	}
	if end < start {
		return 0
	}
	return pos[end] + sizes[end] - pos[start]
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
