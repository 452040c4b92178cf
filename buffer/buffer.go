// Package buffer implements the cell grid with dirty-row/span tracking
// and the wide-character continuation invariant (spec §3, §4.1), grounded
// on the teacher's buffer.go Buffer type.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/kungfusheep/frankentui/cell"
	"github.com/kungfusheep/frankentui/grapheme"
)

// Span is a half-open run of changed columns on one row: [Start, End).
type Span struct {
	Start, End int
}

// Buffer is a width x height grid of cells with per-row dirty tracking.
// The zero value is not usable; construct with New.
type Buffer struct {
	w, h  int
	cells []cell.Cell

	dirtyRows []bool
	dirtySpan []Span // valid only where dirtyRows[row] is true
	allDirty  bool
}

// New returns a cleared buffer of the given size. Width and height must be
// non-negative; a zero-area buffer is valid and holds no cells.
func New(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{w: w, h: h}
	b.cells = make([]cell.Cell, w*h)
	b.dirtyRows = make([]bool, h)
	b.dirtySpan = make([]Span, h)
	for i := range b.cells {
		b.cells[i] = cell.Blank
	}
	b.MarkAllDirty()
	return b
}

// Width reports the buffer's column count.
func (b *Buffer) Width() int { return b.w }

// Height reports the buffer's row count.
func (b *Buffer) Height() int { return b.h }

func (b *Buffer) index(x, y int) int { return y*b.w + x }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

// Get returns the cell at (x,y). Out-of-bounds coordinates return Blank.
func (b *Buffer) Get(x, y int) cell.Cell {
	if !b.inBounds(x, y) {
		return cell.Blank
	}
	return b.cells[b.index(x, y)]
}

// Set writes c at (x,y), enforcing the wide-character continuation
// invariant (spec §4.1):
//
//   - A wide write (c.Width == WidthWide) at the rightmost column is
//     rejected atomically: the buffer is left unchanged and Set returns
//     false.
//   - Any write that lands on the head of an existing wide pair first
//     clears that pair, and a wide write whose right half would land on
//     the head of another wide pair clears that pair too.
//   - Writing into a cell that is the right half of a wide pair first
//     clears the pair's head.
//
// Set returns true if the write was applied.
func (b *Buffer) Set(x, y int, c cell.Cell) bool {
	if !b.inBounds(x, y) {
		return false
	}
	if c.Width == cell.WidthWide && x+1 >= b.w {
		return false
	}

	b.clearContinuationOwner(x, y)
	b.clearWideAt(x, y)
	if c.Width == cell.WidthWide {
		b.clearWideAt(x+1, y)
	}

	idx := b.index(x, y)
	c.Dirty = true
	b.cells[idx] = c
	b.markDirty(y, x, x+1)

	if c.Width == cell.WidthWide {
		contIdx := b.index(x+1, y)
		b.cells[contIdx] = cell.Cell{Width: cell.WidthContinuation, Style: c.Style, Link: c.Link, Dirty: true}
		b.markDirty(y, x+1, x+2)
	}
	return true
}

// clearContinuationOwner clears the wide head at x-1 if (x,y) is currently
// its continuation cell.
func (b *Buffer) clearContinuationOwner(x, y int) {
	if x <= 0 {
		return
	}
	idx := b.index(x, y)
	if b.cells[idx].IsContinuation() {
		b.clearWideAt(x-1, y)
	}
}

// clearWideAt blanks the wide pair whose head is at (x,y), if any.
func (b *Buffer) clearWideAt(x, y int) {
	if !b.inBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	if b.cells[idx].Width != cell.WidthWide {
		return
	}
	b.cells[idx] = cell.Blank
	b.cells[idx].Dirty = true
	b.markDirty(y, x, x+1)
	if x+1 < b.w {
		cidx := b.index(x+1, y)
		if b.cells[cidx].IsContinuation() {
			b.cells[cidx] = cell.Blank
			b.cells[cidx].Dirty = true
			b.markDirty(y, x+1, x+2)
		}
	}
}

func (b *Buffer) markDirty(row, start, end int) {
	if row < 0 || row >= b.h {
		return
	}
	if !b.dirtyRows[row] {
		b.dirtyRows[row] = true
		b.dirtySpan[row] = Span{Start: start, End: end}
		return
	}
	s := &b.dirtySpan[row]
	if start < s.Start {
		s.Start = start
	}
	if end > s.End {
		s.End = end
	}
}

// RowDirty reports whether row has any pending changes.
func (b *Buffer) RowDirty(row int) bool {
	if row < 0 || row >= b.h {
		return false
	}
	return b.allDirty || b.dirtyRows[row]
}

// DirtySpan returns the dirty column range for row. If AllDirty is set the
// span covers the whole row regardless of dirtyRows bookkeeping.
func (b *Buffer) DirtySpan(row int) Span {
	if b.allDirty {
		return Span{Start: 0, End: b.w}
	}
	if row < 0 || row >= b.h {
		return Span{}
	}
	return b.dirtySpan[row]
}

// AllDirty reports whether the whole buffer should be treated as changed
// (set after construction, any resize, Clear, or an explicit MarkAllDirty).
func (b *Buffer) AllDirty() bool { return b.allDirty }

// MarkAllDirty forces every row to be treated as fully dirty, used before
// a full repaint (spec §4.4 full-repaint hint).
func (b *Buffer) MarkAllDirty() {
	b.allDirty = true
	for i := range b.dirtyRows {
		b.dirtyRows[i] = true
		b.dirtySpan[i] = Span{Start: 0, End: b.w}
	}
}

// ClearDirty resets all dirty tracking after a successful present.
func (b *Buffer) ClearDirty() {
	b.allDirty = false
	for i := range b.dirtyRows {
		b.dirtyRows[i] = false
		b.dirtySpan[i] = Span{}
	}
}

// DirtyRowCoverage returns the fraction of rows currently marked dirty,
// used by the diff engine's strategy predictor (spec §4.3).
func (b *Buffer) DirtyRowCoverage() float64 {
	if b.h == 0 {
		return 0
	}
	if b.allDirty {
		return 1
	}
	n := 0
	for _, d := range b.dirtyRows {
		if d {
			n++
		}
	}
	return float64(n) / float64(b.h)
}

// Clear resets every cell to Blank and marks the whole buffer dirty.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = cell.Blank
	}
	b.MarkAllDirty()
}

// Fill sets every cell in rect to c, respecting the wide-char invariant
// cell by cell (wide fills advance two columns per write).
func (b *Buffer) Fill(r cell.Rect, c cell.Cell) {
	x := r.X
	for x < r.Right() {
		for y := r.Y; y < r.Bottom(); y++ {
			b.Set(x, y, c)
		}
		if c.Width == cell.WidthWide {
			x += 2
		} else {
			x++
		}
	}
}

// Resize changes the buffer's dimensions in place, preserving the overlap
// with the previous content and blanking any newly exposed cells. Every
// resize, grow or shrink, marks the whole buffer dirty (spec §4.3
// full-scan trigger).
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	old := b.cells
	oldW, oldH := b.w, b.h

	b.w, b.h = w, h
	b.cells = make([]cell.Cell, w*h)
	for i := range b.cells {
		b.cells[i] = cell.Blank
	}
	b.dirtyRows = make([]bool, h)
	b.dirtySpan = make([]Span, h)

	copyW := min(oldW, w)
	copyH := min(oldH, h)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			srcIdx := y*oldW + x
			c := old[srcIdx]
			if c.Width == cell.WidthWide && x == copyW-1 {
				// The continuation of this wide head fell outside the new
				// width; blank rather than leave a dangling half.
				c = cell.Blank
			}
			b.cells[b.index(x, y)] = c
		}
	}

	// Reallocation invalidates every prior dirty-span reference; any
	// resize (grow or shrink) forces a full repaint next frame.
	b.MarkAllDirty()
}

// CopyFrom blits srcRect from src into this buffer at (dx,dy), atomically:
// if the source rectangle would split a wide pair at either edge, the
// affected destination cells are blanked instead of left partial (spec
// §4.1).
func (b *Buffer) CopyFrom(src *Buffer, srcRect cell.Rect, dx, dy int) {
	for sy := 0; sy < srcRect.H; sy++ {
		for sx := 0; sx < srcRect.W; sx++ {
			sX, sY := srcRect.X+sx, srcRect.Y+sy
			c := src.Get(sX, sY)
			tX, tY := dx+sx, dy+sy

			if c.IsContinuation() && sx == 0 {
				// Left edge of source rect cuts a wide pair in half.
				b.Set(tX, tY, cell.Blank)
				continue
			}
			if c.Width == cell.WidthWide && sx == srcRect.W-1 {
				// Right edge of source rect cuts a wide pair in half.
				b.Set(tX, tY, cell.Blank)
				continue
			}
			b.Set(tX, tY, c)
		}
	}
}

// WriteString writes s starting at (x,y) using style st, segmenting s into
// grapheme clusters via pool and advancing by each cluster's display
// width. It stops at the buffer's right edge (no wrapping). Returns the
// column just past the last cell written.
func (b *Buffer) WriteString(x, y int, s string, st cell.Style, pool *grapheme.Pool, widths WidthFunc) int {
	col := x
	for _, cl := range grapheme.Segment(s) {
		if col >= b.w {
			break
		}
		w := widths(cl)
		c := clusterCell(cl, pool, w, st)
		if !b.Set(col, y, c) {
			break
		}
		if w == 0 {
			w = 1
		}
		col += int(w)
	}
	return col
}

// WidthFunc measures the display width of a grapheme cluster. Satisfied
// by (*grapheme.WidthCache).Width.
type WidthFunc func([]byte) uint8

func clusterCell(cl []byte, pool *grapheme.Pool, w uint8, st cell.Style) cell.Cell {
	width := cell.WidthNarrow
	if w == 2 {
		width = cell.WidthWide
	} else if w == 0 {
		width = cell.WidthNarrow
	}
	if len(cl) == 1 && cl[0] < 0x80 {
		return cell.Cell{Rune: rune(cl[0]), Width: width, Style: st}
	}
	r, size := utf8.DecodeRune(cl)
	if size == len(cl) {
		return cell.Cell{Rune: r, Width: width, Style: st}
	}
	return cell.Cell{GraphemeHandle: pool.Intern(cl), Width: width, Style: st}
}

// String renders the buffer as plain text rows joined by newlines,
// ignoring style, for debugging and golden-text tests.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := b.Get(x, y)
			if c.IsContinuation() {
				continue
			}
			if c.GraphemeHandle != 0 {
				sb.WriteByte('?')
				continue
			}
			if c.Rune == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(c.Rune)
		}
		if y < b.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
