package diff

import (
	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/evidence"
)

// Predictor chooses between the full and dirty-region scan strategies by
// tracking the observed dirty-row coverage over recent frames and
// comparing it to a learned crossover threshold (spec §4.3, §4.11; see
// DESIGN.md decision: start at 35% coverage).
//
// This is a conformal-style predictor in spirit rather than in full
// statistical rigor: it counts how often a dirty-region choice met a
// coverage above the threshold and lowers the threshold when such misses
// occurred, bounded to stay within a sane band. Full-scan choices are not
// scored, so Observe never raises the threshold. That keeps it cheap enough to run every frame
// with zero allocation.
type Predictor struct {
	threshold   float64
	wrongFull   int
	wrongDirty  int
	totalFrames int
	ledger      *evidence.Ledger
}

const (
	initialThreshold = 0.35
	minThreshold      = 0.05
	maxThreshold       = 0.90
	adjustStep         = 0.01
	adjustEvery        = 32
)

// NewPredictor returns a predictor seeded at the spec's default crossover.
func NewPredictor() *Predictor {
	return &Predictor{threshold: initialThreshold}
}

// SetLedger attaches an evidence ledger that Strategy posts its per-frame
// decision to (spec §4.11: "every controller... posts an EvidenceEntry").
// A nil ledger disables posting, which is also the zero-value behavior.
func (p *Predictor) SetLedger(l *evidence.Ledger) { p.ledger = l }

// Strategy recommends a scan strategy for next given its reported dirty
// row coverage, forcing a full scan on first use, resize, or capability
// change (signaled by forceFull).
func (p *Predictor) Strategy(next *buffer.Buffer, forceFull bool) Strategy {
	coverage := next.DirtyRowCoverage()
	chosen := StrategyDirtyRegion
	if forceFull || next.AllDirty() || coverage >= p.threshold {
		chosen = StrategyFull
	}
	p.postDecision(chosen, coverage)
	return chosen
}

func (p *Predictor) postDecision(chosen Strategy, coverage float64) {
	if p.ledger == nil {
		return
	}
	action := "dirty_region"
	if chosen == StrategyFull {
		action = "full"
	}
	p.ledger.Post(evidence.Entry{
		Domain: "diff_strategy",
		Action: action,
		Factors: []evidence.Factor{
			{Name: "coverage", BayesFactor: coverage},
			{Name: "threshold", BayesFactor: p.threshold},
		},
	})
}

// Observe feeds back the actual cost ordering after a frame: if the
// dirty-region scan was chosen but coverage turned out above the
// threshold, so that a full scan would likely have been cheaper, the miss
// is counted, and every adjustEvery frames the threshold is lowered by
// adjustStep if any misses were counted. A full-scan choice is never
// counted as a miss. coverage is the buffer's DirtyRowCoverage() at the
// time Strategy was called; chosen is what Strategy returned.
func (p *Predictor) Observe(coverage float64, chosen Strategy) {
	p.totalFrames++
	switch chosen {
	case StrategyFull:
		if coverage < p.threshold/2 {
			// A full scan ran for a lightly dirty frame; the threshold
			// was crossed spuriously (e.g. via forceFull) — don't count
			// this as the predictor being wrong.
		}
	case StrategyDirtyRegion:
		if coverage > p.threshold {
			p.wrongDirty++
		}
	}
	if p.totalFrames%adjustEvery != 0 {
		return
	}
	if p.wrongDirty > p.wrongFull {
		p.threshold = clampThreshold(p.threshold - adjustStep)
	} else if p.wrongFull > p.wrongDirty {
		p.threshold = clampThreshold(p.threshold + adjustStep)
	}
	p.wrongDirty, p.wrongFull = 0, 0
}

func clampThreshold(t float64) float64 {
	if t < minThreshold {
		return minThreshold
	}
	if t > maxThreshold {
		return maxThreshold
	}
	return t
}

// Threshold reports the current crossover coverage, exported for the
// evidence ledger.
func (p *Predictor) Threshold() float64 { return p.threshold }
