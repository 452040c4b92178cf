package buffer

import "sync/atomic"

// Pool is a double-buffered front/back Buffer pair. The runtime writes the
// back buffer during view(), diffs it against the front, presents, then
// swaps — at which point the new back buffer (the old front) is cleared
// lazily, off the critical path of the frame that just presented (spec
// §12, grounded on the teacher's BufferPool in buffer.go).
type Pool struct {
	buffers   [2]*Buffer
	frontIdx  atomic.Int32
	needClear [2]bool
}

// NewPool returns a pool of two equally sized buffers.
func NewPool(w, h int) *Pool {
	p := &Pool{buffers: [2]*Buffer{New(w, h), New(w, h)}}
	return p
}

// Front returns the buffer most recently presented.
func (p *Pool) Front() *Buffer {
	return p.buffers[p.frontIdx.Load()]
}

// Back returns the buffer the next frame should write into, clearing it
// first if it was left dirty by a prior swap.
func (p *Pool) Back() *Buffer {
	idx := 1 - p.frontIdx.Load()
	b := p.buffers[idx]
	if p.needClear[idx] {
		b.Clear()
		p.needClear[idx] = false
	}
	return b
}

// Swap promotes the back buffer to front and marks the old front for lazy
// clearing on its next use as a back buffer.
func (p *Pool) Swap() {
	old := p.frontIdx.Load()
	p.needClear[old] = true
	p.frontIdx.Store(1 - old)
}

// Resize resizes both buffers to (w,h). Call only between frames.
func (p *Pool) Resize(w, h int) {
	p.buffers[0].Resize(w, h)
	p.buffers[1].Resize(w, h)
}
