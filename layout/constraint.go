// Package layout implements the flex and grid constraint solvers and the
// incremental re-solve dependency graph (spec §4.6), grounded on the
// teacher's flexlayout.go (FlexTree, three-phase Update/Layout/Draw) and
// arena.go's index-based tree representation.
package layout

// ConstraintKind tags a child's sizing rule along the container's main
// axis (spec §4.6).
type ConstraintKind uint8

const (
	Fixed ConstraintKind = iota
	Min
	Max
	Percentage
	Ratio
	Fill
)

// Constraint is one child's sizing rule. Value is the fixed/min/max cell
// count or the percentage (0-100); RatioNum/RatioDen apply only to Ratio.
type Constraint struct {
	Kind     ConstraintKind
	Value    int
	RatioNum int
	RatioDen int
}

func FixedSize(n int) Constraint    { return Constraint{Kind: Fixed, Value: n} }
func MinSize(n int) Constraint      { return Constraint{Kind: Min, Value: n} }
func MaxSize(n int) Constraint      { return Constraint{Kind: Max, Value: n} }
func Percent(p int) Constraint      { return Constraint{Kind: Percentage, Value: p} }
func RatioOf(num, den int) Constraint {
	return Constraint{Kind: Ratio, RatioNum: num, RatioDen: den}
}
func FillSpace() Constraint { return Constraint{Kind: Fill} }

func (c Constraint) weight() float64 {
	switch c.Kind {
	case Fill:
		return 1
	case Ratio:
		if c.RatioDen == 0 {
			return 0
		}
		return float64(c.RatioNum) / float64(c.RatioDen)
	case Min:
		return 1
	default:
		return 0
	}
}

func (c Constraint) isGrow() bool {
	return c.Kind == Fill || c.Kind == Ratio || c.Kind == Min
}

// Alignment controls how leftover space (after gaps) is distributed along
// the main axis when every child is Fixed/Max-clamped.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignSpaceBetween
	AlignSpaceAround
)
