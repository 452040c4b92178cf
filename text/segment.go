// Package text implements paragraph segmentation, a shaping abstraction
// with a terminal fallback, a cluster map, and the Knuth-Plass line-break
// optimizer (spec §4.7), grounded on the teacher's textview.go wrapText
// (character-wise wrap loop, tab expansion) and rivo/uniseg for grapheme
// and script-adjacent boundary detection.
package text

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Direction is a run's writing direction.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

// Run is a maximal span of text sharing one script and direction.
type Run struct {
	Text      string
	ByteStart int
	Direction Direction
}

// strong RTL ranges: Hebrew, Arabic and Syriac blocks plus their
// presentation forms. Letters outside these are strong LTR; other runes
// (spaces, digits, punctuation, marks) keep the current direction (spec
// §4.7: "a simplified bidi pass, explicit marks and strong characters
// only").
func isStrongRTL(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x05FF: // Hebrew
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0700 && r <= 0x074F: // Syriac
		return true
	case r >= 0xFB1D && r <= 0xFDFF: // Hebrew/Arabic presentation forms
		return true
	}
	return false
}

const (
	lrm = 0x200E
	rlm = 0x200F
)

// Segment splits a paragraph into runs of uniform direction. Script
// segmentation beyond RTL/LTR is a non-goal (spec §4.7 simplified bidi).
// Strong-RTL runes start RTL runs and other letters LTR runs; neutral
// runes join the current run. An explicit LRM or RLM fixes the direction
// of everything after it, up to the next mark.
func Segment(paragraph string) []Run {
	if paragraph == "" {
		return nil
	}
	var runs []Run
	runStart := 0
	curDir := Direction(255)   // sentinel: unset
	override := Direction(255) // set by the latest LRM/RLM

	flush := func(end int) {
		if end > runStart {
			runs = append(runs, Run{Text: paragraph[runStart:end], ByteStart: runStart, Direction: curDir})
		}
	}

	byteIdx := 0
	for _, r := range paragraph {
		size := len(string(r))
		dir := curDir
		switch {
		case r == lrm:
			dir, override = LTR, LTR
		case r == rlm:
			dir, override = RTL, RTL
		case override != Direction(255):
			dir = override
		case isStrongRTL(r):
			dir = RTL
		case unicode.IsLetter(r):
			dir = LTR
		case curDir == Direction(255):
			dir = LTR
		}
		if dir != curDir && curDir != Direction(255) {
			flush(byteIdx)
			runStart = byteIdx
		}
		curDir = dir
		byteIdx += size
	}
	flush(len(paragraph))
	return runs
}

// Graphemes splits s into its grapheme clusters (extended grapheme
// cluster boundaries per UAX #29, via uniseg).
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
