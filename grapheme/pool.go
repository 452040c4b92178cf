// Package grapheme provides the interned grapheme-cluster pool and the
// admission-controlled display-width cache described in spec §4.2.
package grapheme

import "github.com/rivo/uniseg"

// Pool interns multi-codepoint grapheme clusters to small integer handles
// so a Cell can reference one in 4 bytes instead of carrying a string.
// Insertion is idempotent: interning the same byte sequence twice returns
// the same handle. A Pool is not safe for concurrent use; the runtime
// hands frame-scoped exclusive access to one widget tree at a time.
type Pool struct {
	byBytes map[string]uint32
	entries [][]byte
}

// NewPool returns an empty pool. Handle 0 is reserved and never assigned,
// so a Cell's zero-value GraphemeHandle unambiguously means "no cluster".
func NewPool() *Pool {
	return &Pool{byBytes: make(map[string]uint32), entries: [][]byte{nil}}
}

// Intern returns the handle for cluster, allocating a new one if this is
// the first time these bytes have been seen since the last Reset.
func (p *Pool) Intern(cluster []byte) uint32 {
	if h, ok := p.byBytes[string(cluster)]; ok {
		return h
	}
	h := uint32(len(p.entries))
	buf := make([]byte, len(cluster))
	copy(buf, cluster)
	p.entries = append(p.entries, buf)
	p.byBytes[string(buf)] = h
	return h
}

// Lookup returns the bytes for a previously interned handle. Handle 0 (no
// grapheme) returns nil. It panics on an out-of-range handle, which
// indicates a programming error (a Cell referencing a handle from a
// different pool generation).
func (p *Pool) Lookup(handle uint32) []byte {
	return p.entries[handle]
}

// Reset clears all interned clusters and invalidates every handle issued
// since the last reset. The runtime calls this between frames when it
// chooses not to carry the pool forward (spec §3 GraphemePool).
func (p *Pool) Reset() {
	clear(p.byBytes)
	p.entries = p.entries[:1]
}

// Len reports the number of interned clusters (excluding the reserved
// zero handle).
func (p *Pool) Len() int { return len(p.entries) - 1 }

// Segment splits s into grapheme clusters using Unicode text segmentation,
// returning each cluster's bytes in order. This is the entry point widgets
// use before writing multi-codepoint content (emoji with ZWJ sequences,
// combining marks, regional indicators) into a Buffer.
func Segment(s string) [][]byte {
	var out [][]byte
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, []byte(cluster))
	}
	return out
}
