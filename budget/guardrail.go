// Package budget implements the per-frame guardrail facade and the
// five-step degradation ladder (spec §4.10), grounded on the teacher's
// adaptive rendering heuristics in flexlayout.go's three-phase
// Update/Layout/Draw split (skip phases whose inputs are unchanged)
// generalized into an explicit tiered controller with hysteresis.
package budget

import (
	"time"

	"github.com/kungfusheep/frankentui/evidence"
)

// Verdict is the guardrail's once-per-frame decision (spec §4.10).
type Verdict uint8

const (
	Proceed Verdict = iota
	Degrade
	Drop
)

func (v Verdict) String() string {
	switch v {
	case Proceed:
		return "proceed"
	case Degrade:
		return "degrade"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// Tier is one of the five reversible degradation steps (spec §4.10).
type Tier uint8

const (
	TierFull Tier = iota
	TierNoSubCellEffects
	TierBalancedText
	TierFastText
	TierCoalesceRepaints
	TierASCIIGlyphs
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierNoSubCellEffects:
		return "no_sub_cell_effects"
	case TierBalancedText:
		return "balanced_text"
	case TierFastText:
		return "fast_text"
	case TierCoalesceRepaints:
		return "coalesce_repaints"
	case TierASCIIGlyphs:
		return "ascii_glyphs"
	default:
		return "unknown"
	}
}

const maxTier = TierASCIIGlyphs

// Budget defines the soft/hard wall-clock ceilings and the memory ceiling
// consulted each frame (spec §4.10: "e.g. 16ms soft, 33ms hard").
type Budget struct {
	Soft       time.Duration
	Hard       time.Duration
	MaxMemory  uint64 // bytes; 0 disables the memory check
	MaxQueue   int    // pending event queue depth; 0 disables the check
}

// DefaultBudget matches spec §4.10's example figures.
var DefaultBudget = Budget{Soft: 16 * time.Millisecond, Hard: 33 * time.Millisecond}

// hysteresisFrames is how many consecutive good frames are required
// before the guardrail reverses a degradation step (spec §4.10:
// "reversible with hysteresis").
const hysteresisFrames = 10

// Guardrail is the per-frame consultation facade. It is not safe for
// concurrent use; the runtime calls it once per frame on its single
// cooperative loop goroutine.
type Guardrail struct {
	budget       Budget
	tier         Tier
	goodStreak   int
	ledger       *evidence.Ledger
}

// NewGuardrail returns a guardrail starting at TierFull, posting
// decisions to ledger (may be nil to disable evidence logging).
func NewGuardrail(b Budget, ledger *evidence.Ledger) *Guardrail {
	return &Guardrail{budget: b, ledger: ledger}
}

// Tier returns the currently active degradation tier.
func (g *Guardrail) Tier() Tier { return g.tier }

// Consult evaluates this frame's elapsed render time, memory usage, and
// queue depth, returning a verdict and updating the degradation tier
// (spec §4.10). elapsed is measured and supplied by the caller; Consult
// never reads the clock itself, so harness replay stays deterministic.
func (g *Guardrail) Consult(elapsed time.Duration, memUsed uint64, queueDepth int) Verdict {
	over := elapsed > g.budget.Hard ||
		(g.budget.MaxMemory > 0 && memUsed > g.budget.MaxMemory) ||
		(g.budget.MaxQueue > 0 && queueDepth > g.budget.MaxQueue)
	soft := elapsed > g.budget.Soft

	switch {
	case over:
		g.goodStreak = 0
		verdict := Drop
		g.post("drop", elapsed, memUsed, queueDepth)
		return verdict
	case soft:
		g.goodStreak = 0
		if g.tier < maxTier {
			g.tier++
			g.post("degrade:"+g.tier.String(), elapsed, memUsed, queueDepth)
		}
		return Degrade
	default:
		if g.tier > TierFull {
			g.goodStreak++
			if g.goodStreak >= hysteresisFrames {
				g.tier--
				g.goodStreak = 0
				g.post("upgrade:"+g.tier.String(), elapsed, memUsed, queueDepth)
			}
		}
		return Proceed
	}
}

func (g *Guardrail) post(action string, elapsed time.Duration, memUsed uint64, queueDepth int) {
	if g.ledger == nil {
		return
	}
	g.ledger.Post(evidence.Entry{
		Domain: "budget_tier",
		Action: action,
		Factors: []evidence.Factor{
			{Name: "elapsed_ms", BayesFactor: float64(elapsed.Microseconds()) / 1000},
			{Name: "mem_bytes", BayesFactor: float64(memUsed)},
			{Name: "queue_depth", BayesFactor: float64(queueDepth)},
		},
	})
}
