// Package cell defines the grid-addressable value types shared by every
// other package: points, rectangles, colors, styles, and the Cell itself.
package cell

// Point is an integer cell coordinate, column (X) then row (Y).
type Point struct {
	X, Y int
}

// Rect is an axis-aligned cell rectangle. W and H are never negative;
// zero-area rectangles are valid and carry no cells.
type Rect struct {
	X, Y, W, H int
}

// Area reports the rectangle's cell count.
func (r Rect) Area() int { return r.W * r.H }

// Empty reports whether the rectangle has zero width or height.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect returns the overlapping rectangle of r and other, which is
// empty (zero W/H) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.W, other.X+other.W)
	y1 := min(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks the rectangle by n on every side; a negative n grows it.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Right returns r.X + r.W, the column just past the rectangle's right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns r.Y + r.H, the row just past the rectangle's bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }
