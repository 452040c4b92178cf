package text

// Glyph is one shaped placement: a grapheme cluster plus its cell width
// and the byte range it was produced from.
type Glyph struct {
	Cluster    string
	ByteStart  int
	ByteEnd    int
	CellWidth  uint8
}

// Features toggles shaping behavior a richer shaper might apply; the
// terminal fallback shaper ignores all of them except as documented.
type Features struct {
	Kerning      bool
	Ligatures    bool
	Hyphenation  bool
}

// WidthFunc resolves a grapheme cluster's terminal cell width (spec §4.2
// width cache), shared with buffer.WidthFunc's contract.
type WidthFunc func(cluster []byte) uint8

// Shaper takes (text, script run direction, features) and returns glyph
// placements (spec §4.7 Shaping).
type Shaper interface {
	Shape(run Run, features Features, width WidthFunc) []Glyph
}

// TerminalShaper is the terminal fallback: every grapheme becomes one
// glyph with width 1 or 2 from the width cache (spec §4.7: "A terminal
// fallback implementation treats each grapheme as one glyph with width 1
// or 2 from the width cache").
type TerminalShaper struct{}

func (TerminalShaper) Shape(run Run, _ Features, width WidthFunc) []Glyph {
	clusters := Graphemes(run.Text)
	glyphs := make([]Glyph, 0, len(clusters))
	byteOff := run.ByteStart
	for _, c := range clusters {
		w := width([]byte(c))
		glyphs = append(glyphs, Glyph{
			Cluster:   c,
			ByteStart: byteOff,
			ByteEnd:   byteOff + len(c),
			CellWidth: w,
		})
		byteOff += len(c)
	}
	return glyphs
}

// NoOpShaper returns one zero-width glyph spanning the whole run; used
// where no shaping information is available at all (spec §4.7: "A no-op
// shaper is used where richer shaping is unavailable").
type NoOpShaper struct{}

func (NoOpShaper) Shape(run Run, _ Features, _ WidthFunc) []Glyph {
	if run.Text == "" {
		return nil
	}
	return []Glyph{{Cluster: run.Text, ByteStart: run.ByteStart, ByteEnd: run.ByteStart + len(run.Text)}}
}
