// Package harness implements the deterministic headless program simulator
// (injected clock, scripted event queue, frame-checksum capture) and an
// ANSI-replay verifier scoped to present.Presenter's own emission grammar
// (spec §2 "Deterministic harness", §8 golden-replay scenarios). The pack's
// danielgatis-go-headless-term repo wires a full VTE state machine for this
// same concern; DESIGN.md records why that dependency is dropped in favor
// of this narrower, closed-grammar parser.
package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/cell"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const esc = 0x1b

// ReplayCell is one replayed grid cell: resolved text/width/style/link
// rather than the interned handles a live buffer.Cell carries, since the
// ANSI byte stream only ever carries resolved bytes.
type ReplayCell struct {
	Text    string
	Width   int
	Style   cell.Style
	LinkURL string
}

// ReplayGrid is the result of replaying a presenter's byte stream against
// a blank width x height grid.
type ReplayGrid struct {
	Width, Height int
	Cells         []ReplayCell
}

func newReplayGrid(w, h int) *ReplayGrid {
	g := &ReplayGrid{Width: w, Height: h, Cells: make([]ReplayCell, w*h)}
	g.clear()
	return g
}

func (g *ReplayGrid) clear() {
	for i := range g.Cells {
		g.Cells[i] = ReplayCell{Text: " ", Width: 1}
	}
}

func (g *ReplayGrid) at(x, y int) *ReplayCell { return &g.Cells[y*g.Width+x] }

// Replay parses stream — the bytes a present.Presenter wrote across one or
// more frames — and reconstructs the resulting grid, starting blank.
func Replay(stream []byte, width, height int) (*ReplayGrid, error) {
	p := &replayer{buf: stream, grid: newReplayGrid(width, height)}
	for p.pos < len(p.buf) {
		if err := p.step(); err != nil {
			return nil, err
		}
	}
	return p.grid, nil
}

type replayer struct {
	buf []byte
	pos int

	grid *ReplayGrid

	row, col int
	style    cell.Style
	linkURL  string
}

func (p *replayer) step() error {
	switch b := p.buf[p.pos]; {
	case b == esc:
		return p.escape()
	case b == '\r':
		p.pos++
		if p.pos < len(p.buf) && p.buf[p.pos] == '\n' {
			p.pos++
		}
		p.col = 0
		p.row++
		return nil
	case b == '\n':
		p.pos++
		p.row++
		return nil
	default:
		return p.text()
	}
}

func (p *replayer) text() error {
	start := p.pos
	for p.pos < len(p.buf) && p.buf[p.pos] != esc && p.buf[p.pos] != '\r' && p.buf[p.pos] != '\n' {
		p.pos++
	}
	chunk := string(p.buf[start:p.pos])
	if chunk == "" {
		return nil
	}
	gr := uniseg.NewGraphemes(chunk)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w < 1 {
			w = 1
		}
		if p.row >= 0 && p.row < p.grid.Height && p.col >= 0 && p.col < p.grid.Width {
			c := p.grid.at(p.col, p.row)
			c.Text, c.Width, c.Style, c.LinkURL = cluster, w, p.style, p.linkURL
			if w == 2 && p.col+1 < p.grid.Width {
				cont := p.grid.at(p.col+1, p.row)
				*cont = ReplayCell{Text: "", Width: 0, Style: p.style, LinkURL: p.linkURL}
			}
		}
		p.col += w
	}
	return nil
}

func (p *replayer) escape() error {
	if p.pos+1 >= len(p.buf) {
		return fmt.Errorf("harness: truncated escape sequence at byte %d", p.pos)
	}
	switch p.buf[p.pos+1] {
	case '[':
		return p.csi()
	case ']':
		return p.osc()
	default:
		p.pos += 2 // DECSC/DECRC and similar single-char escapes: no cell content
		return nil
	}
}

// csi consumes one ECMA-48 Control Sequence: ESC '[' parameter-bytes
// (0x30-0x3f) intermediate-bytes (0x20-0x2f) final-byte (0x40-0x7e).
func (p *replayer) csi() error {
	start := p.pos
	i := p.pos + 2
	for i < len(p.buf) && p.buf[i] >= 0x30 && p.buf[i] <= 0x3f {
		i++
	}
	for i < len(p.buf) && p.buf[i] >= 0x20 && p.buf[i] <= 0x2f {
		i++
	}
	if i >= len(p.buf) {
		return fmt.Errorf("harness: unterminated CSI sequence at byte %d", start)
	}
	final := p.buf[i]
	params := string(p.buf[p.pos+2 : i])
	p.pos = i + 1
	params = strings.TrimPrefix(params, "?") // private-mode marker, irrelevant to grid content

	switch final {
	case 'H':
		row, col := parseCSIPair(params)
		p.row, p.col = row-1, col-1
	case 'C':
		p.col += parseCSIInt(params, 1)
	case 'm':
		codes := parseCSIInts(params)
		if len(codes) == 0 {
			codes = []int{0}
		}
		p.style = applySGR(p.style, codes)
	case 'J':
		if params == "2" {
			p.grid.clear()
		}
	default:
		// Private-mode toggles (alt screen, synchronized output, cursor
		// visibility) and anything else carry no cell content.
	}
	return nil
}

func (p *replayer) osc() error {
	start := p.pos
	i := p.pos + 2
	for i < len(p.buf) && p.buf[i] != 0x07 && !(p.buf[i] == esc && i+1 < len(p.buf) && p.buf[i+1] == '\\') {
		i++
	}
	if i >= len(p.buf) {
		return fmt.Errorf("harness: unterminated OSC sequence at byte %d", start)
	}
	payload := string(p.buf[p.pos+2 : i])
	if p.buf[i] == esc {
		p.pos = i + 2
	} else {
		p.pos = i + 1
	}
	parts := strings.SplitN(payload, ";", 3)
	if len(parts) == 3 && parts[0] == "8" {
		p.linkURL = parts[2]
	}
	return nil
}

func parseCSIInts(params string) []int {
	if params == "" {
		return nil
	}
	fields := strings.Split(params, ";")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, _ := strconv.Atoi(f)
		out = append(out, n)
	}
	return out
}

func parseCSIInt(params string, def int) int {
	if params == "" {
		return def
	}
	n, err := strconv.Atoi(params)
	if err != nil {
		return def
	}
	return n
}

func parseCSIPair(params string) (a, b int) {
	a, b = 1, 1
	parts := strings.SplitN(params, ";", 2)
	if len(parts) >= 1 && parts[0] != "" {
		a, _ = strconv.Atoi(parts[0])
	}
	if len(parts) == 2 && parts[1] != "" {
		b, _ = strconv.Atoi(parts[1])
	}
	return a, b
}

// applySGR folds a sequence of SGR parameter codes onto style, matching
// the code set present/ansi.go's sgrCodes/appendColorCodes emits.
func applySGR(style cell.Style, codes []int) cell.Style {
	for i := 0; i < len(codes); i++ {
		switch c := codes[i]; c {
		case 0:
			style = cell.Style{}
		case 1:
			style.Attr |= cell.AttrBold
		case 2:
			style.Attr |= cell.AttrDim
		case 3:
			style.Attr |= cell.AttrItalic
		case 4:
			if i+1 < len(codes) && codes[i+1] == 3 {
				style.Attr |= cell.AttrUnderlineCurly
				i++
			} else {
				style.Attr |= cell.AttrUnderline
			}
		case 5:
			style.Attr |= cell.AttrBlink
		case 7:
			style.Attr |= cell.AttrReverse
		case 9:
			style.Attr |= cell.AttrStrikethrough
		case 21:
			style.Attr |= cell.AttrUnderlineDouble
		case 39:
			style.FG = cell.Default
		case 49:
			style.BG = cell.Default
		case 38, 48:
			fg := c == 38
			if i+1 >= len(codes) {
				continue
			}
			switch codes[i+1] {
			case 5:
				if i+2 < len(codes) {
					col := cell.Indexed256(uint8(codes[i+2]))
					if fg {
						style.FG = col
					} else {
						style.BG = col
					}
					i += 2
				}
			case 2:
				if i+4 < len(codes) {
					col := cell.RGB(uint8(codes[i+2]), uint8(codes[i+3]), uint8(codes[i+4]))
					if fg {
						style.FG = col
					} else {
						style.BG = col
					}
					i += 4
				}
			}
		default:
			switch {
			case c >= 30 && c <= 37:
				style.FG = cell.Named16(uint8(c - 30))
			case c >= 40 && c <= 47:
				style.BG = cell.Named16(uint8(c - 40))
			case c >= 90 && c <= 97:
				style.FG = cell.Named16(uint8(c - 90 + 8))
			case c >= 100 && c <= 107:
				style.BG = cell.Named16(uint8(c - 100 + 8))
			}
		}
	}
	return style
}

// MatchesBuffer reports whether g's replayed content is cell-for-cell
// equivalent to src, resolving src's interned grapheme/link handles through
// the same functions the Presenter used to emit them. On mismatch it
// returns a description of the first differing cell.
func (g *ReplayGrid) MatchesBuffer(src *buffer.Buffer, resolveGrapheme func(uint32) []byte, resolveLink func(uint32) string) (bool, string) {
	if g.Width != src.Width() || g.Height != src.Height() {
		return false, fmt.Sprintf("size mismatch: replay %dx%d vs buffer %dx%d", g.Width, g.Height, src.Width(), src.Height())
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			want := src.Get(x, y)
			got := *g.at(x, y)
			wantText := cellText(want, resolveGrapheme)
			wantLink := ""
			if want.Link != 0 && resolveLink != nil {
				wantLink = resolveLink(want.Link)
			}
			if got.Text != wantText || got.Style != want.Style || got.LinkURL != wantLink {
				return false, fmt.Sprintf("cell (%d,%d): replay {%q style=%+v link=%q} vs buffer {%q style=%+v link=%q}",
					x, y, got.Text, got.Style, got.LinkURL, wantText, want.Style, wantLink)
			}
		}
	}
	return true, ""
}

func cellText(c cell.Cell, resolveGrapheme func(uint32) []byte) string {
	if c.IsContinuation() {
		return ""
	}
	if c.GraphemeHandle != 0 {
		if resolveGrapheme != nil {
			return string(resolveGrapheme(c.GraphemeHandle))
		}
		return "?"
	}
	if c.Rune == 0 {
		return " "
	}
	return string(c.Rune)
}
