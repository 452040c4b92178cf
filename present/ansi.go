package present

import (
	"github.com/kungfusheep/frankentui/cell"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// appendInt appends the decimal digits of n to buf without allocating,
// mirroring the teacher's screen.go writeIntToBuf/appendInt helpers.
func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	if n < 0 {
		buf = append(buf, '-')
		n = -n
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// digits were appended least-significant first; reverse in place
	end := len(buf) - 1
	for start < end {
		buf[start], buf[end] = buf[end], buf[start]
		start++
		end--
	}
	return buf
}

// cursorTo appends an absolute cursor-position sequence (1-indexed, as
// ANSI requires) for (col,row) 0-indexed inputs.
func cursorTo(buf []byte, col, row int) []byte {
	buf = append(buf, esc, '[')
	buf = appendInt(buf, row+1)
	buf = append(buf, ';')
	buf = appendInt(buf, col+1)
	buf = append(buf, 'H')
	return buf
}

// cursorRight appends a relative cursor-forward sequence.
func cursorRight(buf []byte, n int) []byte {
	if n <= 0 {
		return buf
	}
	buf = append(buf, esc, '[')
	buf = appendInt(buf, n)
	buf = append(buf, 'C')
	return buf
}

// sgrReset appends the "reset all attributes" sequence.
func sgrReset(buf []byte) []byte {
	return append(buf, esc, '[', '0', 'm')
}

// sgrCodes returns the list of SGR parameter codes for st, degraded to
// profile's color depth.
func sgrCodes(st cell.Style, profile colorDepth) []int {
	var codes []int
	if st.Attr.Has(cell.AttrBold) {
		codes = append(codes, 1)
	}
	if st.Attr.Has(cell.AttrDim) {
		codes = append(codes, 2)
	}
	if st.Attr.Has(cell.AttrItalic) {
		codes = append(codes, 3)
	}
	if st.Attr.Has(cell.AttrUnderlineCurly) && profile == depthExtended {
		codes = append(codes, 4, 3) // SGR 4:3 (curly) encoded as two params
	} else if st.Attr.Has(cell.AttrUnderlineDouble) && profile == depthExtended {
		codes = append(codes, 21)
	} else if st.Attr.Has(cell.AttrUnderline) {
		codes = append(codes, 4)
	}
	if st.Attr.Has(cell.AttrBlink) {
		codes = append(codes, 5)
	}
	if st.Attr.Has(cell.AttrReverse) {
		codes = append(codes, 7)
	}
	if st.Attr.Has(cell.AttrStrikethrough) {
		codes = append(codes, 9)
	}
	codes = appendColorCodes(codes, st.FG, true, profile)
	codes = appendColorCodes(codes, st.BG, false, profile)
	return codes
}

type colorDepth uint8

const (
	depthBasic colorDepth = iota
	depth256
	depthTrue
	depthExtended // true color plus extended underline styles
)

func appendColorCodes(codes []int, c cell.Color, fg bool, profile colorDepth) []int {
	base := 30
	if !fg {
		base = 40
	}
	switch c.Mode {
	case cell.ColorDefault:
		return append(codes, base+9)
	case cell.ColorNamed16:
		idx := int(c.Index)
		if idx < 8 {
			return append(codes, base+idx)
		}
		brightBase := 90
		if !fg {
			brightBase = 100
		}
		return append(codes, brightBase+(idx-8))
	case cell.ColorIndexed256:
		ext := 38
		if !fg {
			ext = 48
		}
		if profile == depthBasic {
			return append(codes, base+nearestBasicFromIndexed(c.Index))
		}
		return append(codes, ext, 5, int(c.Index))
	case cell.ColorRGB24, cell.ColorAdaptive:
		resolved := c.Resolve(true)
		if profile == depthTrue || profile == depthExtended {
			ext := 38
			if !fg {
				ext = 48
			}
			return append(codes, ext, 2, int(resolved.R), int(resolved.G), int(resolved.B))
		}
		ext := 38
		if !fg {
			ext = 48
		}
		return append(codes, ext, 5, nearest256(resolved))
	}
	return codes
}

func nearestBasicFromIndexed(idx uint8) int {
	if idx < 16 {
		return int(idx % 8)
	}
	return 7
}

// nearest256 finds the closest 256-color palette index to an RGB24 color
// using perceptual (Lab) distance, for terminals that can't do true color.
func nearest256(c cell.Color) int {
	best, bestDist := 16, -1.0
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	for i := 16; i < 256; i++ {
		r, g, b := ansi256RGB(i)
		cand := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		d := target.DistanceLab(cand)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ansi256RGB computes the RGB value of 256-color palette index i using the
// standard 6x6x6 cube + 24-step grayscale ramp layout.
func ansi256RGB(i int) (r, g, b uint8) {
	if i < 16 {
		return 0, 0, 0
	}
	if i >= 232 {
		v := uint8(8 + (i-232)*10)
		return v, v, v
	}
	i -= 16
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	r = levels[(i/36)%6]
	g = levels[(i/6)%6]
	b = levels[i%6]
	return r, g, b
}

func sgrSequence(buf []byte, codes []int) []byte {
	if len(codes) == 0 {
		return buf
	}
	buf = append(buf, esc, '[')
	for i, c := range codes {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = appendInt(buf, c)
	}
	buf = append(buf, 'm')
	return buf
}

// hyperlinkOpen / hyperlinkClose build OSC 8 sequences.
func hyperlinkOpen(buf []byte, url string) []byte {
	buf = append(buf, esc, ']', '8', ';', ';')
	buf = append(buf, url...)
	buf = append(buf, 0x07)
	return buf
}

func hyperlinkClose(buf []byte) []byte {
	buf = append(buf, esc, ']', '8', ';', ';', 0x07)
	return buf
}
