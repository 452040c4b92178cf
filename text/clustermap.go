package text

// ClusterMap maps byte offsets to cell offsets and back, built from a
// shaper's glyph output (spec §4.7 Cluster map). entries[i] covers byte
// range [ByteStart, ByteEnd) at cell offset CellStart for CellWidth cells.
type ClusterMap struct {
	entries   []mapEntry
	textLen   int
}

type mapEntry struct {
	byteStart, byteEnd int
	cellStart          int
	cellWidth          uint8
}

// BuildClusterMap produces a ClusterMap from glyphs in byte order. Callers
// must pass glyphs already sorted by ByteStart (shapers emit them so).
func BuildClusterMap(glyphs []Glyph, textLen int) ClusterMap {
	cm := ClusterMap{textLen: textLen}
	cell := 0
	for _, g := range glyphs {
		w := g.CellWidth
		if w == 0 {
			w = 1
		}
		cm.entries = append(cm.entries, mapEntry{
			byteStart: g.ByteStart,
			byteEnd:   g.ByteEnd,
			cellStart: cell,
			cellWidth: w,
		})
		cell += int(w)
	}
	return cm
}

// ByteToCell returns the cell offset that byte offset b falls within. A
// byte inside a wide cluster maps to that cluster's starting cell (the
// invariant is symmetric with CellToByte below).
func (cm ClusterMap) ByteToCell(b int) int {
	if b <= 0 {
		return 0
	}
	for _, e := range cm.entries {
		if b >= e.byteStart && b < e.byteEnd {
			return e.cellStart
		}
	}
	if len(cm.entries) > 0 {
		last := cm.entries[len(cm.entries)-1]
		if b >= last.byteEnd {
			return last.cellStart + int(last.cellWidth)
		}
	}
	return 0
}

// CellToByte returns the byte offset of the cluster occupying cell c. A
// cell inside a wide cluster returns the cluster's start byte (spec §4.7
// invariant).
func (cm ClusterMap) CellToByte(c int) int {
	if c <= 0 {
		return 0
	}
	for _, e := range cm.entries {
		if c >= e.cellStart && c < e.cellStart+int(e.cellWidth) {
			return e.byteStart
		}
	}
	if len(cm.entries) > 0 {
		return cm.entries[len(cm.entries)-1].byteEnd
	}
	return cm.textLen
}

// CellWidth returns the total cell width spanned by the mapped glyphs.
func (cm ClusterMap) CellWidth() int {
	if len(cm.entries) == 0 {
		return 0
	}
	last := cm.entries[len(cm.entries)-1]
	return last.cellStart + int(last.cellWidth)
}
