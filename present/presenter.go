// Package present implements the Presenter: a stateful ANSI emitter that
// converts a buffer diff into the shortest byte sequence for the current
// terminal capability profile (spec §4.4), grounded on the teacher's
// screen.go Flush/writeCell/writeStyle/writeColor.
package present

import (
	"io"

	"github.com/charmbracelet/colorprofile"
	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/cell"
	"github.com/kungfusheep/frankentui/diff"
)

// ScreenMode selects the presenter's screen management strategy (spec
// §4.12 state machine).
type ScreenMode uint8

const (
	ScreenDisabled ScreenMode = iota
	ScreenInline
	ScreenAlt
)

type cursorKnowledge uint8

const (
	cursorUnknown cursorKnowledge = iota
	cursorKnown
)

// Presenter owns cursor and SGR state across frames and writes to a single
// Writer sink (spec §6 Writer contract). Not safe for concurrent use; the
// runtime calls Present from its single loop goroutine only.
type Presenter struct {
	w    io.Writer
	caps Capabilities

	mode       ScreenMode
	inlineBand int // rows reserved for inline mode, 0 = auto

	knowledge   cursorKnowledge
	curRow      int
	curCol      int
	wrapPending bool

	lastCodes []int // last-emitted SGR codes, for minimal deltas
	depth     colorDepth

	resolveGrapheme func(uint32) []byte
	resolveLink     func(uint32) string

	buf []byte // reusable emission buffer
}

// New returns a Presenter writing to w with the given capabilities and
// screen mode.
func New(w io.Writer, caps Capabilities, mode ScreenMode) *Presenter {
	p := &Presenter{w: w, caps: caps, mode: mode}
	p.depth = depthFromCaps(caps)
	return p
}

func depthFromCaps(caps Capabilities) colorDepth {
	switch {
	case caps.ExtendedUnderline:
		return depthExtended
	case caps.Profile == colorprofile.TrueColor:
		return depthTrue
	default:
		return depth256
	}
}

// Enter performs the screen-mode entry sequence: alt-screen enable or
// inline-mode anchor save.
func (p *Presenter) Enter() error {
	p.buf = p.buf[:0]
	switch p.mode {
	case ScreenAlt:
		p.buf = append(p.buf, esc, '[', '?', '1', '0', '4', '9', 'h')
		p.buf = append(p.buf, esc, '[', '2', 'J')
		p.knowledge = cursorUnknown
	case ScreenInline:
		p.buf = append(p.buf, esc, '7') // DECSC save cursor
	}
	if p.caps.Hyperlinks {
		// no-op placeholder hook point: hyperlink support needs no entry
		// sequence, only per-cell OSC 8 emission.
	}
	return p.flushBuf()
}

// Exit restores the terminal: leaves alt-screen or restores the saved
// inline cursor, disabling any enabled input features. Always attempts a
// best-effort write even if an earlier frame failed (spec §7).
func (p *Presenter) Exit() error {
	p.buf = p.buf[:0]
	p.buf = append(p.buf, esc, '[', '0', 'm')
	p.buf = append(p.buf, esc, '[', '?', '2', '5', 'h') // show cursor
	switch p.mode {
	case ScreenAlt:
		p.buf = append(p.buf, esc, '[', '?', '1', '0', '4', '9', 'l')
	case ScreenInline:
		p.buf = append(p.buf, esc, '8') // DECRC restore cursor
	}
	return p.flushBuf()
}

// Present applies d against next, writing the minimal ANSI byte sequence
// to the underlying writer. next supplies cell content for full
// repaints.
func (p *Presenter) Present(d diff.Diff, next *buffer.Buffer) error {
	p.buf = p.buf[:0]

	sync := p.caps.SynchronizedOutput
	if sync {
		p.buf = append(p.buf, esc, '[', '?', '2', '0', '2', '6', 'h')
	}

	if d.FullRepaint {
		p.fullRepaint(next)
	} else {
		for _, span := range d.Spans {
			p.writeSpan(span, next)
		}
	}

	if sync {
		p.buf = append(p.buf, esc, '[', '?', '2', '0', '2', '6', 'l')
	}

	return p.flushBuf()
}

func (p *Presenter) fullRepaint(next *buffer.Buffer) {
	p.buf = append(p.buf, esc, '[', '2', 'J')
	p.knowledge = cursorUnknown
	p.lastCodes = nil
	for y := 0; y < next.Height(); y++ {
		p.writeSpan(diff.CellSpan{Row: y, Col: 0, Cells: rowCells(next, y)}, next)
	}
}

func rowCells(b *buffer.Buffer, y int) []cell.Cell {
	cells := make([]cell.Cell, b.Width())
	for x := range cells {
		cells[x] = b.Get(x, y)
	}
	return cells
}

func (p *Presenter) writeSpan(span diff.CellSpan, next *buffer.Buffer) {
	p.moveTo(span.Col, span.Row)
	col := span.Col
	covered := false // previous cell was a wide head whose advance already includes this column
	for _, c := range span.Cells {
		if c.IsContinuation() {
			if !covered {
				col++
				p.curCol = col
			}
			covered = false
			continue
		}
		p.writeCell(c)
		advance := 1
		covered = false
		if c.Width == cell.WidthWide {
			advance = 2
			covered = true
		}
		col += advance
	}
	p.curCol = col
	if p.curCol >= next.Width() {
		p.wrapPending = true
	}
}

func (p *Presenter) moveTo(col, row int) {
	if p.knowledge == cursorKnown && row == p.curRow {
		if col == p.curCol {
			return
		}
		if col > p.curCol && col-p.curCol <= 4 {
			p.buf = cursorRight(p.buf, col-p.curCol)
			p.curCol = col
			p.wrapPending = false
			return
		}
	}
	p.buf = cursorTo(p.buf, col, row)
	p.curCol, p.curRow = col, row
	p.knowledge = cursorKnown
	p.wrapPending = false
}

func (p *Presenter) writeCell(c cell.Cell) {
	if p.wrapPending {
		p.buf = append(p.buf, '\r', '\n')
		p.wrapPending = false
		p.knowledge = cursorUnknown
	}

	codes := sgrCodes(c.Style, p.depth)
	if !sameCodes(codes, p.lastCodes) {
		p.buf = sgrReset(p.buf)
		p.buf = sgrSequence(p.buf, codes)
		p.lastCodes = codes
	}

	hadLink := c.Link != 0 && p.caps.Hyperlinks
	if hadLink {
		target := ""
		if p.resolveLink != nil {
			target = p.resolveLink(c.Link)
		}
		p.buf = hyperlinkOpen(p.buf, target)
	}
	if c.GraphemeHandle != 0 {
		if p.resolveGrapheme != nil {
			p.buf = append(p.buf, p.resolveGrapheme(c.GraphemeHandle)...)
		} else {
			p.buf = append(p.buf, '?')
		}
	} else if c.Rune != 0 {
		p.buf = appendRune(p.buf, c.Rune)
	} else {
		p.buf = append(p.buf, ' ')
	}
	if hadLink {
		p.buf = hyperlinkClose(p.buf)
	}
}

// SetLinkResolver installs the function used to resolve a Cell's Link
// handle to a URL when emitting OSC 8 hyperlinks. The presenter itself
// only knows handles, not URLs (spec §4.5 Frame surface owns the
// registry); an unset resolver emits hyperlinks with an empty target.
func (p *Presenter) SetLinkResolver(resolve func(uint32) string) {
	p.resolveLink = resolve
}

// SetGraphemeResolver installs the function used to resolve a Cell's
// GraphemeHandle to its raw cluster bytes, typically (*grapheme.Pool).Lookup.
func (p *Presenter) SetGraphemeResolver(resolve func(uint32) []byte) {
	p.resolveGrapheme = resolve
}

func appendRune(buf []byte, r rune) []byte {
	return append(buf, []byte(string(r))...)
}

func sameCodes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *Presenter) flushBuf() error {
	out := p.buf
	if p.caps.MuxPassthrough != MuxNone {
		out = Passthrough(p.caps.MuxPassthrough, out)
	}
	if len(out) == 0 {
		return nil
	}
	_, err := p.w.Write(out)
	return err
}

// WriteLog writes msg straight to the terminal, adding a trailing newline
// if it lacks one, and marks the cursor position unknown so the next
// Present moves the cursor absolutely. It sets no scroll region and does
// not force a full repaint: the next Present redraws only its diff spans.
func (p *Presenter) WriteLog(msg []byte) error {
	p.buf = p.buf[:0]
	p.buf = append(p.buf, msg...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		p.buf = append(p.buf, '\n')
	}
	p.knowledge = cursorUnknown
	return p.flushBuf()
}
