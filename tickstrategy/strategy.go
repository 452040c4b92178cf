// Package tickstrategy decides, per frame, which inactive screens receive
// the tick message (spec §4.9), grounded on the teacher's LogC/Layer
// follow-vs-paused distinction (log.go's "following" bool driving whether
// a screen is live-updated) generalized to N screens with per-screen
// divisors.
package tickstrategy

// ScreenID identifies one screen/tab in a multi-screen runtime.
type ScreenID uint32

// Strategy decides whether screen id should receive this frame's Tick,
// given the currently active screen and the frame counter.
type Strategy interface {
	ShouldTick(id, active ScreenID, frame uint64) bool
	// Observe records a screen transition, feeding strategies that learn
	// from history (Predictive). No-op for stateless strategies.
	Observe(from, to ScreenID)
}

// ActiveOnly skips every tick not destined for the active screen.
type ActiveOnly struct{}

func (ActiveOnly) ShouldTick(id, active ScreenID, _ uint64) bool { return id == active }
func (ActiveOnly) Observe(ScreenID, ScreenID)                    {}

// Uniform delivers ticks to inactive screens every N-th frame.
type Uniform struct{ N uint64 }

func (u Uniform) ShouldTick(id, active ScreenID, frame uint64) bool {
	if id == active {
		return true
	}
	if u.N == 0 {
		return false
	}
	return frame%u.N == 0
}
func (Uniform) Observe(ScreenID, ScreenID) {}

// ActivePlusAdjacent ticks the active screen and its declared neighbors
// every frame; everyone else follows Uniform(Divisor).
type ActivePlusAdjacent struct {
	Divisor   uint64
	Neighbors func(active ScreenID) []ScreenID
}

func (a ActivePlusAdjacent) ShouldTick(id, active ScreenID, frame uint64) bool {
	if id == active {
		return true
	}
	if a.Neighbors != nil {
		for _, n := range a.Neighbors(active) {
			if n == id {
				return true
			}
		}
	}
	return Uniform{N: a.Divisor}.ShouldTick(id, active, frame)
}
func (ActivePlusAdjacent) Observe(ScreenID, ScreenID) {}

// Custom wraps a user-provided decision function.
type Custom struct {
	Decide      func(id, active ScreenID, frame uint64) bool
	OnObserve   func(from, to ScreenID)
}

func (c Custom) ShouldTick(id, active ScreenID, frame uint64) bool {
	if c.Decide == nil {
		return id == active
	}
	return c.Decide(id, active, frame)
}
func (c Custom) Observe(from, to ScreenID) {
	if c.OnObserve != nil {
		c.OnObserve(from, to)
	}
}
