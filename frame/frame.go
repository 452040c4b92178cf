// Package frame implements the Frame surface handed to widgets during
// view(): the target buffer, grapheme pool, hit-region grid, and link
// registry (spec §4.5), plus jump-label assignment over hit regions
// (spec §12, grounded on the teacher's jump.go/EnterJumpMode).
package frame

import (
	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/cell"
	"github.com/kungfusheep/frankentui/grapheme"
)

// HitRegion is one entry in the hit grid: an identifier and the layer
// depth that placed it (higher depth wins hit-testing).
type HitRegion struct {
	ID    uint32
	Depth uint16
}

// Frame bundles everything a widget's render call may touch for one
// view() invocation. A Frame is reused across frames; Reset clears its
// transient per-frame state without reallocating the hit grid when the
// size hasn't changed.
type Frame struct {
	Buffer *buffer.Buffer
	Pool   *grapheme.Pool

	hits      []HitRegion
	w, h      int
	links     []string
	linkByURL map[string]uint32

	scissor []cell.Rect // scissor stack; top is the active clip rect
}

// New returns a Frame sized to match buf's dimensions.
func New(buf *buffer.Buffer, pool *grapheme.Pool) *Frame {
	f := &Frame{Buffer: buf, Pool: pool}
	f.resizeHitGrid(buf.Width(), buf.Height())
	return f
}

func (f *Frame) resizeHitGrid(w, h int) {
	f.w, f.h = w, h
	f.hits = make([]HitRegion, w*h)
}

// Reset clears hit regions and the link registry for a new frame, resizing
// the hit grid if the buffer's dimensions changed.
func (f *Frame) Reset() {
	if f.Buffer.Width() != f.w || f.Buffer.Height() != f.h {
		f.resizeHitGrid(f.Buffer.Width(), f.Buffer.Height())
	} else {
		clear(f.hits)
	}
	f.links = f.links[:0]
	clear(f.linkByURL)
	f.scissor = f.scissor[:0]
	f.PushScissor(cell.Rect{X: 0, Y: 0, W: f.w, H: f.h})
}

// PushScissor intersects rect with the current clip and pushes it as the
// new active clip region; widgets may only write inside it.
func (f *Frame) PushScissor(rect cell.Rect) {
	if len(f.scissor) > 0 {
		rect = f.scissor[len(f.scissor)-1].Intersect(rect)
	}
	f.scissor = append(f.scissor, rect)
}

// PopScissor restores the previous clip region.
func (f *Frame) PopScissor() {
	if len(f.scissor) > 1 {
		f.scissor = f.scissor[:len(f.scissor)-1]
	}
}

// ActiveScissor returns the current clip rectangle.
func (f *Frame) ActiveScissor() cell.Rect {
	if len(f.scissor) == 0 {
		return cell.Rect{X: 0, Y: 0, W: f.w, H: f.h}
	}
	return f.scissor[len(f.scissor)-1]
}

// SetCell writes c at (x,y) if it falls within the active scissor rect,
// the widget contract's enforcement point (spec §6 widget contract).
func (f *Frame) SetCell(x, y int, c cell.Cell) bool {
	if !f.ActiveScissor().Contains(cell.Point{X: x, Y: y}) {
		return false
	}
	return f.Buffer.Set(x, y, c)
}

// SetHitRegion marks (x,y) with id at depth, overwriting any existing
// region at a shallower (lower) or equal depth. If wide is set, the
// continuation column x+1 shares the same region (spec §4.5 invariant).
func (f *Frame) SetHitRegion(x, y int, id uint32, depth uint16, wide bool) {
	f.setHit(x, y, id, depth)
	if wide {
		f.setHit(x+1, y, id, depth)
	}
}

func (f *Frame) setHit(x, y int, id uint32, depth uint16) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	idx := y*f.w + x
	if f.hits[idx].ID == 0 || depth >= f.hits[idx].Depth {
		f.hits[idx] = HitRegion{ID: id, Depth: depth}
	}
}

// HitTest returns the topmost hit region at (x,y), or the zero HitRegion
// (ID 0) if none.
func (f *Frame) HitTest(x, y int) HitRegion {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return HitRegion{}
	}
	return f.hits[y*f.w+x]
}

// InternLink registers url and returns its handle, reusing an existing
// handle if url was already interned this frame.
func (f *Frame) InternLink(url string) uint32 {
	if f.linkByURL == nil {
		f.linkByURL = make(map[string]uint32)
	}
	if h, ok := f.linkByURL[url]; ok {
		return h
	}
	f.links = append(f.links, url)
	h := uint32(len(f.links))
	f.linkByURL[url] = h
	return h
}

// ResolveLink returns the URL for a handle returned by InternLink, or ""
// for handle 0 or an unknown handle.
func (f *Frame) ResolveLink(handle uint32) string {
	if handle == 0 || int(handle) > len(f.links) {
		return ""
	}
	return f.links[handle-1]
}

// HitRegions iterates every distinct non-zero hit region present in the
// grid, in row-major order, each with its topmost (x,y) occurrence — the
// entry point the jump-label assigner uses (spec §12).
func (f *Frame) HitRegions(yield func(id uint32, x, y int) bool) {
	seen := make(map[uint32]bool)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			hr := f.hits[y*f.w+x]
			if hr.ID == 0 || seen[hr.ID] {
				continue
			}
			seen[hr.ID] = true
			if !yield(hr.ID, x, y) {
				return
			}
		}
	}
}
