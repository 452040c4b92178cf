package cell

// Width is the terminal display width of a cell's content: 0 for a
// continuation cell, 1 for a narrow rune/grapheme, 2 for a wide one.
type Width uint8

const (
	WidthContinuation Width = 0
	WidthNarrow       Width = 1
	WidthWide         Width = 2
)

// Cell is the fixed-size grid element (spec §3). Content is either a
// single rune (GraphemeHandle == 0) or an interned multi-codepoint
// grapheme cluster (GraphemeHandle != 0, Rune ignored). A continuation
// cell (Width == WidthContinuation) carries no content of its own; it
// exists only to occupy the second column of the wide cell at its left,
// and shares that head cell's Style and Link by convention (callers must
// keep them in sync; Buffer.Set enforces this).
type Cell struct {
	Rune           rune
	GraphemeHandle uint32
	Width          Width
	Style          Style
	Link           uint32 // 0 = no hyperlink; else an index into a link registry
	Dirty          bool
}

// Blank is the empty cell: a single narrow space, default style, no link.
// It is not the Go zero value of Cell, whose Width marks a continuation.
var Blank = Cell{Rune: ' ', Width: WidthNarrow}

// IsContinuation reports whether c is the right half of a wide cell.
func (c Cell) IsContinuation() bool { return c.Width == WidthContinuation }

// Empty reports whether c is indistinguishable from Blank for diffing
// purposes (same rune/handle, width, style, and link).
func (c Cell) Empty() bool {
	return c.Rune == Blank.Rune && c.GraphemeHandle == 0 && c.Width == Blank.Width &&
		c.Style == Style{} && c.Link == 0
}

// Equal reports whether two cells are identical apart from the Dirty bit,
// which is bookkeeping and never part of content equality.
func (a Cell) Equal(b Cell) bool {
	return a.Rune == b.Rune && a.GraphemeHandle == b.GraphemeHandle &&
		a.Width == b.Width && a.Style == b.Style && a.Link == b.Link
}
