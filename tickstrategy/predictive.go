package tickstrategy

import (
	"fmt"

	"github.com/kungfusheep/frankentui/evidence"
)

// DivisorCurve maps a transition probability in [0,1] to a tick divisor:
// higher probability of becoming active soon means a lower (more
// frequent) divisor (spec §4.9: "probability-to-divisor curve (linear,
// exponential, or stepped)").
type DivisorCurve func(probability float64) uint64

// LinearCurve maps probability linearly between maxDivisor (p=0) and 1
// (p=1).
func LinearCurve(maxDivisor uint64) DivisorCurve {
	return func(p float64) uint64 {
		if p <= 0 {
			return maxDivisor
		}
		if p >= 1 {
			return 1
		}
		d := uint64(float64(maxDivisor) * (1 - p))
		if d < 1 {
			return 1
		}
		return d
	}
}

// SteppedCurve buckets probability into discrete divisor tiers, thresholds
// ascending, e.g. {0.5: 1, 0.2: 4, 0: 16}.
func SteppedCurve(steps map[float64]uint64, floor uint64) DivisorCurve {
	return func(p float64) uint64 {
		best := floor
		bestThresh := -1.0
		for th, d := range steps {
			if p >= th && th > bestThresh {
				bestThresh = th
				best = d
			}
		}
		return best
	}
}

const (
	laplaceSmoothing   = 1.0
	pruneThreshold     = 0.01
	defaultWarmupCount = 20
)

// Predictive maintains a first-order Markov transition model over screen
// identifiers (spec §4.9), with Laplace smoothing and optional exponential
// decay. Until WarmupCount observations exist, ShouldTick uses a Uniform
// fallback outright; predictions are not blended with it. Deterministic
// given identical history, per spec §4.9.
type Predictive struct {
	Curve        DivisorCurve
	Decay        float64 // 0 disables decay; otherwise multiplies counts each Observe
	WarmupCount  uint64
	fallback     Uniform

	counts    map[ScreenID]map[ScreenID]float64
	totals    map[ScreenID]float64
	observed  uint64

	ledger      *evidence.Ledger
	lastDivisor map[ScreenID]uint64
}

// SetLedger attaches an evidence ledger that ShouldTick posts to whenever
// a screen's tick divisor changes (spec §4.11: "every controller...
// posts an EvidenceEntry"). A nil ledger disables posting, which is also
// the zero-value behavior.
func (p *Predictive) SetLedger(l *evidence.Ledger) { p.ledger = l }

// NewPredictive returns a Predictive strategy with sensible defaults.
func NewPredictive(curve DivisorCurve) *Predictive {
	if curve == nil {
		curve = LinearCurve(16)
	}
	return &Predictive{
		Curve:       curve,
		WarmupCount: defaultWarmupCount,
		fallback:    Uniform{N: 4},
		counts:      make(map[ScreenID]map[ScreenID]float64),
		totals:      make(map[ScreenID]float64),
		lastDivisor: make(map[ScreenID]uint64),
	}
}

func (p *Predictive) Observe(from, to ScreenID) {
	if p.Decay > 0 {
		for a, row := range p.counts {
			for b := range row {
				row[b] *= (1 - p.Decay)
				if row[b] < pruneThreshold {
					delete(row, b)
				}
			}
			p.totals[a] = sumRow(row)
		}
	}
	if p.counts[from] == nil {
		p.counts[from] = make(map[ScreenID]float64)
	}
	p.counts[from][to]++
	p.totals[from]++
	p.observed++
}

func sumRow(row map[ScreenID]float64) float64 {
	s := 0.0
	for _, v := range row {
		s += v
	}
	return s
}

// probability returns the Laplace-smoothed estimate of transitioning
// active -> id.
func (p *Predictive) probability(active, id ScreenID) float64 {
	row := p.counts[active]
	vocab := float64(len(row)) + 1 // +1 for the unseen-state mass
	if vocab == 0 {
		vocab = 1
	}
	count := 0.0
	if row != nil {
		count = row[id]
	}
	total := p.totals[active]
	return (count + laplaceSmoothing) / (total + laplaceSmoothing*vocab)
}

func (p *Predictive) ShouldTick(id, active ScreenID, frame uint64) bool {
	if id == active {
		return true
	}
	if p.observed < p.WarmupCount {
		return p.fallback.ShouldTick(id, active, frame)
	}
	prob := p.probability(active, id)
	divisor := p.Curve(prob)
	p.postDivisor(id, divisor, prob)
	return Uniform{N: divisor}.ShouldTick(id, active, frame)
}

// postDivisor records a screen's tick divisor decision, but only when it
// actually changes: ShouldTick runs every frame and most of those calls
// would otherwise re-post an unchanged divisor.
func (p *Predictive) postDivisor(id ScreenID, divisor uint64, prob float64) {
	if p.ledger == nil {
		return
	}
	if prev, ok := p.lastDivisor[id]; ok && prev == divisor {
		return
	}
	p.lastDivisor[id] = divisor
	p.ledger.Post(evidence.Entry{
		Domain: "tick_divisor",
		Action: fmt.Sprintf("screen_%d:divisor_%d", id, divisor),
		Factors: []evidence.Factor{
			{Name: "transition_probability", BayesFactor: prob},
		},
	})
}
