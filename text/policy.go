package text

// Tier selects shaping features, justification, hyphenation dictionary
// use, and whether Knuth-Plass is permitted (spec §4.7 Layout policy
// tiers). The adaptive controller (budget package) degrades one tier at a
// time with hysteresis.
type Tier uint8

const (
	Quality Tier = iota
	Balanced
	Fast
)

func (t Tier) String() string {
	switch t {
	case Quality:
		return "quality"
	case Balanced:
		return "balanced"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}

// Degrade returns the next tier down, or the same tier if already at the
// floor (Fast). One step at a time, per spec §4.11 hysteresis design.
func (t Tier) Degrade() Tier {
	if t == Fast {
		return Fast
	}
	return t + 1
}

// Upgrade returns the next tier up, or the same tier if already at the
// ceiling (Quality).
func (t Tier) Upgrade() Tier {
	if t == Quality {
		return Quality
	}
	return t - 1
}

// Features returns the shaping feature set implied by the tier.
func (t Tier) Features() Features {
	switch t {
	case Quality:
		return Features{Kerning: true, Ligatures: true, Hyphenation: true}
	case Balanced:
		return Features{Kerning: true, Ligatures: false, Hyphenation: true}
	default: // Fast
		return Features{}
	}
}

// AllowsKnuthPlass reports whether the optimizer may run the full
// dynamic-programming pass at this tier (spec §4.7: "Fallback greedy
// first-fit is selected when the policy tier is fast").
func (t Tier) AllowsKnuthPlass() bool { return t != Fast }
