package layout

import "github.com/kungfusheep/frankentui/cell"

// nodeIndex is an arena index; -1 means "no node" (spec §9 cyclic
// reference design note: indices, not pointers, so the tree can be
// copied/reset cheaply and has no reference cycles to leak).
type nodeIndex int32

const noNode nodeIndex = -1

// Node is one element of the incremental layout tree (spec §3 LayoutNode).
// Arena-indexed parent/child/sibling links mirror the teacher's arena.go
// Node, generalized from a flat arena.go `Frame` into a standalone
// layout-only tree that the runtime's widget tree feeds into.
type Node struct {
	Parent, FirstChild, LastChild, NextSibling nodeIndex

	Axis        Axis
	Gap         int
	Align       Alignment
	Constraint  Constraint // this node's own sizing rule as a child of Parent

	// Grid-only fields; ignored when Template.Rows/Cols are both nil.
	Template   GridTemplate
	Placement  GridPlacement

	constraintHash uint64
	contentHash    uint64
	styleHash      uint64
	dirty          bool

	result cell.Rect
}

// Tree is an arena of Nodes plus the dirty-propagation bookkeeping for
// incremental re-solves (spec §4.6 incremental mode).
type Tree struct {
	nodes []Node
	cache *Cache
	root  nodeIndex
}

// NewTree returns an empty tree with one root node covering the whole
// container; callers add children under root via AddChild.
func NewTree() *Tree {
	t := &Tree{cache: NewCache()}
	t.nodes = append(t.nodes, Node{Parent: noNode, FirstChild: noNode, LastChild: noNode, NextSibling: noNode, dirty: true})
	t.root = 0
	return t
}

// Root returns the root node's index.
func (t *Tree) Root() int { return int(t.root) }

// AddChild appends a new child of parent, returning its index.
func (t *Tree) AddChild(parent int, n Node) int {
	n.Parent = nodeIndex(parent)
	n.FirstChild, n.LastChild, n.NextSibling = noNode, noNode, noNode
	n.dirty = true
	idx := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, n)

	p := &t.nodes[parent]
	if p.FirstChild == noNode {
		p.FirstChild = idx
	} else {
		t.nodes[p.LastChild].NextSibling = idx
	}
	p.LastChild = idx
	return int(idx)
}

// Reset clears the tree back to a single dirty root, for rebuilding a
// widget tree from scratch (e.g. a hot-reloaded view function).
func (t *Tree) Reset() {
	t.nodes = t.nodes[:0]
	t.nodes = append(t.nodes, Node{Parent: noNode, FirstChild: noNode, LastChild: noNode, NextSibling: noNode, dirty: true})
	t.root = 0
}

// MarkDirty flags node idx and propagates dirtiness to every sibling under
// the same flex parent, since a flex parent redistributes remaining space
// across all children when any one of them changes (spec §4.6 "siblings
// of a dirty child are dirty").
func (t *Tree) MarkDirty(idx int) {
	t.nodes[idx].dirty = true
	parent := t.nodes[idx].Parent
	if parent == noNode {
		return
	}
	if t.nodes[parent].Template.Rows != nil || t.nodes[parent].Template.Cols != nil {
		// Grid tracks are independent per-axis; a grid parent doesn't need
		// every sibling marked, only re-propagation upward.
		t.MarkDirty(int(parent))
		return
	}
	for c := t.nodes[parent].FirstChild; c != noNode; c = t.nodes[c].NextSibling {
		t.nodes[c].dirty = true
	}
	t.MarkDirty(int(parent))
}

// SetContentHash updates idx's content fingerprint (from text measurement
// or a widget's declared intrinsic size) and marks it dirty if changed.
func (t *Tree) SetContentHash(idx int, h uint64) {
	n := &t.nodes[idx]
	if n.contentHash != h {
		n.contentHash = h
		t.MarkDirty(idx)
	}
}

// Solve resolves every dirty node's rectangle within area, starting from
// root, reusing cached results for clean subtrees. forceFull bypasses the
// cache entirely (spec §4.6: "A forced-full flag bypasses the cache"): it
// marks every node dirty, not just the root, since solveNode's cache
// check below only re-solves a node when the node itself is dirty.
func (t *Tree) Solve(area cell.Rect, forceFull bool) {
	if forceFull {
		for i := range t.nodes {
			t.nodes[i].dirty = true
		}
	}
	t.solveNode(int(t.root), area)
}

func (t *Tree) solveNode(idx int, area cell.Rect) {
	n := &t.nodes[idx]
	if !n.dirty && n.result == area {
		return // clean node, cached result already correct for this area
	}
	n.result = area
	n.dirty = false

	children := t.children(idx)
	if len(children) == 0 {
		return
	}

	if n.Template.Rows != nil || n.Template.Cols != nil {
		t.solveGridChildren(idx, area, children)
		return
	}
	t.solveFlexChildren(idx, area, children)
}

func (t *Tree) solveFlexChildren(idx int, area cell.Rect, children []int) {
	n := &t.nodes[idx]
	total := area.W
	if n.Axis == Vertical {
		total = area.H
	}

	constraints := make([]Constraint, len(children))
	for i, c := range children {
		constraints[i] = t.nodes[c].Constraint
	}
	sizes := ResolveFlex(FlexParams{Total: total, Gap: n.Gap, Align: n.Align, Constraints: constraints}, t.cache)
	positions := Positions(sizes, n.Gap, total, n.Align)

	for i, c := range children {
		var childArea cell.Rect
		if n.Axis == Horizontal {
			childArea = cell.Rect{X: area.X + positions[i], Y: area.Y, W: sizes[i], H: area.H}
		} else {
			childArea = cell.Rect{X: area.X, Y: area.Y + positions[i], W: area.W, H: sizes[i]}
		}
		t.solveNode(c, childArea)
	}
}

func (t *Tree) solveGridChildren(idx int, area cell.Rect, children []int) {
	n := &t.nodes[idx]
	placements := make([]GridPlacement, len(children))
	for i, c := range children {
		placements[i] = t.nodes[c].Placement
	}
	rects := ResolveGrid(area, n.Template, placements, t.cache)
	for i, c := range children {
		t.solveNode(c, rects[i])
	}
}

func (t *Tree) children(idx int) []int {
	var out []int
	for c := t.nodes[idx].FirstChild; c != noNode; c = t.nodes[c].NextSibling {
		out = append(out, int(c))
	}
	return out
}

// Result returns the last-solved rectangle for idx.
func (t *Tree) Result(idx int) cell.Rect { return t.nodes[idx].result }
