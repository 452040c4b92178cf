package layout

import "sort"

// Axis selects which dimension a flex container lays its children along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// FlexParams configures one ResolveFlex call.
type FlexParams struct {
	Total       int
	Gap         int
	Align       Alignment
	Constraints []Constraint
}

// coherenceKey identifies a (constraint-set, available-space) pair for the
// largest-remainder tie-break cache (spec §4.6).
type coherenceKey struct {
	hash  uint64
	total int
}

// Cache records, per coherenceKey, which child indices received a ceiled
// (rounded up) allocation last time, so repeated frames with identical
// inputs keep the same items rounded up instead of flickering between
// neighbors on ties.
type Cache struct {
	entries map[coherenceKey][]bool
}

// NewCache returns an empty coherence cache.
func NewCache() *Cache { return &Cache{entries: make(map[coherenceKey][]bool)} }

func constraintSetHash(cs []Constraint) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	mix := func(v uint64) {
		h ^= v
		h *= 1099511628211
	}
	for _, c := range cs {
		mix(uint64(c.Kind))
		mix(uint64(int64(c.Value)))
		mix(uint64(int64(c.RatioNum)))
		mix(uint64(int64(c.RatioDen)))
	}
	return h
}

// ResolveFlex computes the resolved size of each constraint in p along
// the main axis, following spec §4.6's five-step algorithm: reserve
// fixed+percentage, distribute remaining to grow items by weight, clamp
// Max and redistribute overflow once, round via largest-remainder with a
// coherence tie-break, and finally is silent on alignment (callers using
// Align beyond Start call Positions separately). Returns 0 for a
// zero-area container, deterministically, never using floating point in
// the final integer widths it returns.
func ResolveFlex(p FlexParams, cache *Cache) []int {
	n := len(p.Constraints)
	sizes := make([]int, n)
	if n == 0 || p.Total <= 0 {
		return sizes
	}

	gapTotal := p.Gap * max0(n-1)
	reserved := 0
	base := make([]int, n)
	for i, c := range p.Constraints {
		switch c.Kind {
		case Fixed:
			base[i] = c.Value
			reserved += c.Value
		case Percentage:
			v := p.Total * c.Value / 100
			base[i] = v
			reserved += v
		case Min:
			base[i] = c.Value
			reserved += c.Value
		}
	}

	remaining := p.Total - reserved - gapTotal
	if remaining < 0 {
		remaining = 0
	}

	type growItem struct {
		idx    int
		weight float64
		cap    int // -1 = uncapped
	}
	var grow []growItem
	totalWeight := 0.0
	for i, c := range p.Constraints {
		if !c.isGrow() && c.Kind != Max {
			continue
		}
		cap := -1
		if c.Kind == Max {
			cap = c.Value
		}
		w := c.weight()
		if c.Kind == Max {
			w = 1
		}
		grow = append(grow, growItem{idx: i, weight: w, cap: cap})
		totalWeight += w
	}

	floatAlloc := make([]float64, n)
	if totalWeight > 0 && remaining > 0 {
		for _, g := range grow {
			floatAlloc[g.idx] = float64(remaining) * g.weight / totalWeight
		}
	}

	// Clamp Max items; redistribute the clamped overflow once among the
	// remaining non-clamped grow items, proportional to their weight.
	overflow := 0.0
	remainingWeight := totalWeight
	var clamped []int
	for _, g := range grow {
		if g.cap < 0 {
			continue
		}
		proposed := base[g.idx] + floatAlloc[g.idx]
		if proposed > float64(g.cap) {
			excess := proposed - float64(g.cap)
			overflow += excess
			floatAlloc[g.idx] = float64(g.cap) - float64(base[g.idx])
			remainingWeight -= g.weight
			clamped = append(clamped, g.idx)
		}
	}
	if overflow > 0 && remainingWeight > 0 {
		isClamped := make(map[int]bool, len(clamped))
		for _, i := range clamped {
			isClamped[i] = true
		}
		for _, g := range grow {
			if isClamped[g.idx] {
				continue
			}
			floatAlloc[g.idx] += overflow * g.weight / remainingWeight
		}
	}

	exact := make([]float64, n)
	for i := range sizes {
		exact[i] = float64(base[i]) + floatAlloc[i]
		sizes[i] = int(exact[i])
	}

	distributeRemainder(p.Constraints, exact, sizes, cache, p.Total)
	return sizes
}

// distributeRemainder applies the largest-remainder method to fix up
// rounding so the sizes sum to sum(exact) (up to the caller's reserved
// total), preferring the same items to round up that rounded up last
// frame for the same (constraint set, available space) pair.
func distributeRemainder(cs []Constraint, exact []float64, sizes []int, cache *Cache, total int) {
	n := len(sizes)
	wantTotal := 0.0
	haveTotal := 0
	for i := range exact {
		wantTotal += exact[i]
		haveTotal += sizes[i]
	}
	deficit := int(wantTotal+0.5) - haveTotal
	if deficit <= 0 {
		return
	}

	type remainder struct {
		idx       int
		frac      float64
		preferred bool
	}
	var prevUp []bool
	var key coherenceKey
	if cache != nil {
		key = coherenceKey{hash: constraintSetHash(cs), total: total}
		prevUp = cache.entries[key]
	}

	rem := make([]remainder, n)
	for i := range exact {
		pref := false
		if prevUp != nil && i < len(prevUp) {
			pref = prevUp[i]
		}
		rem[i] = remainder{idx: i, frac: exact[i] - float64(sizes[i]), preferred: pref}
	}
	sort.SliceStable(rem, func(a, b int) bool {
		if rem[a].preferred != rem[b].preferred {
			return rem[a].preferred // preferred sorts first on ties below
		}
		if rem[a].frac != rem[b].frac {
			return rem[a].frac > rem[b].frac
		}
		return rem[a].idx < rem[b].idx
	})

	nowUp := make([]bool, n)
	for i := 0; i < deficit && i < n; i++ {
		sizes[rem[i].idx]++
		nowUp[rem[i].idx] = true
	}
	if cache != nil {
		cache.entries[key] = nowUp
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Positions turns resolved sizes into start offsets along the main axis,
// applying gap and alignment. leftover is whatever space sizes didn't
// consume (always 0 once Fill/Ratio/Min participants exist, since they
// absorb all remaining space; nonzero only when every constraint is
// Fixed/Percentage/Max-capped).
func Positions(sizes []int, gap int, total int, align Alignment) []int {
	n := len(sizes)
	pos := make([]int, n)
	if n == 0 {
		return pos
	}
	used := 0
	for _, s := range sizes {
		used += s
	}
	used += gap * max0(n-1)
	leftover := total - used
	if leftover < 0 {
		leftover = 0
	}

	var start, between int
	switch align {
	case AlignCenter:
		start = leftover / 2
	case AlignEnd:
		start = leftover
	case AlignSpaceBetween:
		if n > 1 {
			between = leftover / (n - 1)
		}
	case AlignSpaceAround:
		if n > 0 {
			between = leftover / n
			start = between / 2
		}
	}

	cursor := start
	for i, s := range sizes {
		pos[i] = cursor
		cursor += s + gap + between
	}
	return pos
}
