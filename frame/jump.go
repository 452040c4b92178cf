package frame

// JumpLabel is one short keyboard label that AssignJumpLabels gives to a
// hit region registered in a Frame, in the order HitRegions visits them;
// labels are drawn from jumpAlphabet ("a", "s", "d", ..., then "aa", "as",
// ...). This is kernel plumbing over the hit-region grid the Frame
// surface already owns (spec §12), not a concrete widget: it reads what
// §4.5 defines and hands back a mapping the runtime's jump-mode overlay
// can render and dispatch from, grounded on the teacher's jump.go /
// app.go EnterJumpMode.
type JumpLabel struct {
	Label string
	ID    uint32
	X, Y  int
}

const jumpAlphabet = "asdfghjklqwertyuiopzxcvbnm"

// AssignJumpLabels returns one label per distinct hit region in f, using
// single letters of jumpAlphabet first, then two-letter codes once single
// letters are exhausted. The labels are not prefix-free: once two-letter
// codes are in use, a single-letter label such as "a" is a prefix of "aa".
func (f *Frame) AssignJumpLabels() []JumpLabel {
	var regions []JumpLabel
	f.HitRegions(func(id uint32, x, y int) bool {
		regions = append(regions, JumpLabel{ID: id, X: x, Y: y})
		return true
	})

	n := len(jumpAlphabet)
	for i := range regions {
		regions[i].Label = jumpLabelForIndex(i, n)
	}
	return regions
}

func jumpLabelForIndex(i, n int) string {
	if i < n {
		return string(jumpAlphabet[i])
	}
	// Two-letter codes: (i-n) maps into n*n space.
	i -= n
	first := i / n
	second := i % n
	return string(jumpAlphabet[first]) + string(jumpAlphabet[second])
}

// MatchJumpLabel finds the label in labels whose Label equals input
// exactly, returning its hit region id and true, or (0,false).
func MatchJumpLabel(labels []JumpLabel, input string) (uint32, bool) {
	for _, l := range labels {
		if l.Label == input {
			return l.ID, true
		}
	}
	return 0, false
}

// JumpLabelIsPrefix reports whether input is a proper or exact prefix of
// any assigned label (empty input always counts as a prefix), used by the
// runtime to decide whether to
// keep collecting jump-mode keystrokes or to bail out as "no match".
func JumpLabelIsPrefix(labels []JumpLabel, input string) bool {
	if input == "" {
		return true
	}
	for _, l := range labels {
		if len(l.Label) >= len(input) && l.Label[:len(input)] == input {
			return true
		}
	}
	return false
}
