// Package wire implements the cell wire format used to ship diffs across
// a process boundary, e.g. to a web renderer (spec §6 "Cell wire format"),
// grounded on the teacher's own in-memory Cell/Buffer layout (buffer.go)
// reduced to a fixed-width little-endian encoding.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/kungfusheep/frankentui/cell"
	"github.com/kungfusheep/frankentui/diff"
)

// SpanFlags are bit flags carried in a span header's fourth word.
type SpanFlags uint32

const (
	FlagFullRepaint SpanFlags = 1 << iota
)

const (
	spanHeaderSize = 16 // 4 x uint32
	cellPayloadSize = 24
)

// EncodeSpans writes each diff.CellSpan as a span header followed by its
// cells' 24-byte payloads, little-endian throughout (spec §6). resolveGrapheme
// resolves a GraphemeHandle to its UTF-8 bytes for codepoint-or-handle
// encoding; nil cells (handle 0) encode their Rune directly.
func EncodeSpans(spans []diff.CellSpan, resolveGrapheme func(uint32) []byte) []byte {
	total := 0
	for _, s := range spans {
		total += spanHeaderSize + len(s.Cells)*cellPayloadSize
	}
	out := make([]byte, 0, total)
	for _, s := range spans {
		out = appendUint32(out, uint32(s.Row))
		out = appendUint32(out, uint32(s.Col))
		out = appendUint32(out, uint32(len(s.Cells)))
		out = appendUint32(out, 0) // flags: reserved for per-span metadata

		for _, c := range s.Cells {
			out = appendCell(out, c, resolveGrapheme)
		}
	}
	return out
}

func appendUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// appendCell packs one cell.Cell into 24 bytes:
//
//	bytes  0- 3: style attribute bits + width (packed u32)
//	bytes  4- 7: foreground color (packed u32: mode<<24 | r<<16 | g<<8 | b, or index)
//	bytes  8-11: background color, same packing
//	bytes 12-15: grapheme handle (0 = use codepoint instead)
//	bytes 16-19: codepoint (rune), valid only when grapheme handle is 0
//	bytes 20-23: reserved, zero
func appendCell(b []byte, c cell.Cell, resolveGrapheme func(uint32) []byte) []byte {
	styleWord := uint32(c.Style.Attr)<<8 | uint32(c.Width)
	b = appendUint32(b, styleWord)
	b = appendUint32(b, packColor(c.Style.FG))
	b = appendUint32(b, packColor(c.Style.BG))
	b = appendUint32(b, c.GraphemeHandle)
	if c.GraphemeHandle != 0 && resolveGrapheme != nil {
		// The first rune of the resolved cluster stands in for the full
		// grapheme on the wire; multi-rune clusters are reconstructed by
		// the receiver from the handle against a shared grapheme table
		// transmitted out-of-band. A receiver without that table still
		// gets a reasonable single-codepoint approximation.
		cluster := resolveGrapheme(c.GraphemeHandle)
		r := firstRune(cluster)
		b = appendUint32(b, uint32(r))
	} else {
		b = appendUint32(b, uint32(c.Rune))
	}
	b = appendUint32(b, 0) // reserved
	return b
}

func firstRune(cluster []byte) rune {
	for _, r := range string(cluster) {
		return r
	}
	return 0
}

func packColor(c cell.Color) uint32 {
	switch c.Mode {
	case cell.ColorIndexed256:
		return uint32(cell.ColorIndexed256)<<24 | uint32(c.Index)
	case cell.ColorRGB24:
		return uint32(cell.ColorRGB24)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	case cell.ColorNamed16:
		return uint32(cell.ColorNamed16)<<24 | uint32(c.Index)
	default:
		return uint32(cell.ColorDefault) << 24
	}
}

// DecodeSpans parses a byte slice produced by EncodeSpans back into
// CellSpans, reconstructing cells without grapheme cluster information
// (wide multi-rune clusters arrive as their first rune only).
func DecodeSpans(buf []byte) ([]diff.CellSpan, error) {
	var spans []diff.CellSpan
	for len(buf) > 0 {
		if len(buf) < spanHeaderSize {
			return nil, fmt.Errorf("wire: truncated span header (%d bytes left)", len(buf))
		}
		row := binary.LittleEndian.Uint32(buf[0:4])
		col := binary.LittleEndian.Uint32(buf[4:8])
		count := binary.LittleEndian.Uint32(buf[8:12])
		buf = buf[spanHeaderSize:]

		need := int(count) * cellPayloadSize
		if len(buf) < need {
			return nil, fmt.Errorf("wire: truncated span body, need %d have %d", need, len(buf))
		}
		cells := make([]cell.Cell, count)
		for i := range cells {
			c, rest, err := decodeCell(buf)
			if err != nil {
				return nil, err
			}
			cells[i] = c
			buf = rest
		}
		spans = append(spans, diff.CellSpan{Row: int(row), Col: int(col), Cells: cells})
	}
	return spans, nil
}

func decodeCell(buf []byte) (cell.Cell, []byte, error) {
	if len(buf) < cellPayloadSize {
		return cell.Cell{}, buf, fmt.Errorf("wire: truncated cell payload")
	}
	styleWord := binary.LittleEndian.Uint32(buf[0:4])
	fgWord := binary.LittleEndian.Uint32(buf[4:8])
	bgWord := binary.LittleEndian.Uint32(buf[8:12])
	handle := binary.LittleEndian.Uint32(buf[12:16])
	codepoint := binary.LittleEndian.Uint32(buf[16:20])

	c := cell.Cell{
		Rune:           rune(codepoint),
		GraphemeHandle: handle,
		Width:          cell.Width(styleWord & 0xFF),
		Style: cell.Style{
			Attr: cell.Attribute(styleWord >> 8),
			FG:   unpackColor(fgWord),
			BG:   unpackColor(bgWord),
		},
	}
	return c, buf[cellPayloadSize:], nil
}

func unpackColor(w uint32) cell.Color {
	mode := cell.ColorMode(w >> 24)
	switch mode {
	case cell.ColorIndexed256:
		return cell.Indexed256(uint8(w & 0xFF))
	case cell.ColorRGB24:
		return cell.RGB(uint8(w>>16), uint8(w>>8), uint8(w))
	case cell.ColorNamed16:
		return cell.Named16(uint8(w & 0xFF))
	default:
		return cell.Default
	}
}
