package layout

import (
	"testing"

	"github.com/kungfusheep/frankentui/cell"
)

func TestTreeSolveFlexChildren(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	tr.nodes[root].Axis = Horizontal
	left := tr.AddChild(root, Node{Constraint: FixedSize(10)})
	right := tr.AddChild(root, Node{Constraint: FillSpace()})

	tr.Solve(cell.Rect{X: 0, Y: 0, W: 30, H: 5}, true)

	if tr.Result(left).W != 10 {
		t.Fatalf("fixed child should resolve to width 10, got %+v", tr.Result(left))
	}
	if tr.Result(right).W != 20 {
		t.Fatalf("fill child should take remaining width, got %+v", tr.Result(right))
	}
	if tr.Result(right).X != 10 {
		t.Fatalf("fill child should start after the fixed child, got %+v", tr.Result(right))
	}
}

func TestTreeCleanNodeSkipsResolveOnUnchangedArea(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	child := tr.AddChild(root, Node{Constraint: FillSpace()})

	area := cell.Rect{X: 0, Y: 0, W: 20, H: 5}
	tr.Solve(area, true)
	firstResult := tr.Result(child)

	// Re-solving the same area without marking anything dirty should be a
	// no-op; the cached rectangle should still be returned.
	tr.Solve(area, false)
	if tr.Result(child) != firstResult {
		t.Fatalf("clean subtree should keep its cached result, got %+v want %+v", tr.Result(child), firstResult)
	}
}

func TestTreeMarkDirtyPropagatesToFlexSiblings(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := tr.AddChild(root, Node{Constraint: FillSpace()})
	b := tr.AddChild(root, Node{Constraint: FillSpace()})

	tr.Solve(cell.Rect{X: 0, Y: 0, W: 20, H: 5}, true)

	tr.MarkDirty(a)
	if !tr.nodes[b].dirty {
		t.Fatalf("marking one flex child dirty should mark its siblings dirty too")
	}
}

func TestTreeSolveGridChildren(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	tr.nodes[root].Template = GridTemplate{
		Rows: []Constraint{FillSpace(), FillSpace()},
		Cols: []Constraint{FillSpace(), FillSpace()},
	}
	c0 := tr.AddChild(root, Node{Placement: GridPlacement{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1}})
	c1 := tr.AddChild(root, Node{Placement: GridPlacement{Row: 1, Col: 1, RowSpan: 1, ColSpan: 1}})

	tr.Solve(cell.Rect{X: 0, Y: 0, W: 20, H: 10}, true)

	if tr.Result(c0).X != 0 || tr.Result(c0).Y != 0 {
		t.Fatalf("first grid cell should sit at origin, got %+v", tr.Result(c0))
	}
	if tr.Result(c1).X != 10 || tr.Result(c1).Y != 5 {
		t.Fatalf("second grid cell should sit at (10,5), got %+v", tr.Result(c1))
	}
}

func TestTreeResetClearsNodes(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	tr.AddChild(root, Node{Constraint: FillSpace()})
	tr.Reset()
	if len(tr.nodes) != 1 {
		t.Fatalf("Reset should leave only the root node, got %d nodes", len(tr.nodes))
	}
}
