package tickstrategy

import "testing"

func TestActiveOnlySkipsInactive(t *testing.T) {
	s := ActiveOnly{}
	if !s.ShouldTick(1, 1, 5) {
		t.Fatalf("active screen should always tick")
	}
	if s.ShouldTick(2, 1, 5) {
		t.Fatalf("inactive screen should never tick under ActiveOnly")
	}
}

func TestUniformDeliversEveryNthFrame(t *testing.T) {
	s := Uniform{N: 4}
	for f := uint64(0); f < 8; f++ {
		got := s.ShouldTick(2, 1, f)
		want := f%4 == 0
		if got != want {
			t.Fatalf("frame %d: got %v want %v", f, got, want)
		}
	}
}

func TestActivePlusAdjacentTicksNeighborsEveryFrame(t *testing.T) {
	s := ActivePlusAdjacent{
		Divisor:   8,
		Neighbors: func(active ScreenID) []ScreenID { return []ScreenID{active + 1} },
	}
	if !s.ShouldTick(2, 1, 3) {
		t.Fatalf("declared neighbor should tick every frame regardless of divisor")
	}
}

func TestCustomFallsBackToActiveOnlyWithoutDecide(t *testing.T) {
	c := Custom{}
	if !c.ShouldTick(1, 1, 0) || c.ShouldTick(2, 1, 0) {
		t.Fatalf("Custom with nil Decide should behave like ActiveOnly")
	}
}

func TestPredictiveWarmupFallsBackToUniform(t *testing.T) {
	p := NewPredictive(LinearCurve(8))
	p.WarmupCount = 1000
	// With no observations yet, warm-up keeps using the fallback Uniform.
	got := p.ShouldTick(2, 1, 4)
	want := p.fallback.ShouldTick(2, 1, 4)
	if got != want {
		t.Fatalf("predictive during warm-up should match its fallback strategy")
	}
}

func TestPredictiveLearnsFrequentTransitions(t *testing.T) {
	p := NewPredictive(LinearCurve(16))
	p.WarmupCount = 5
	for i := 0; i < 50; i++ {
		p.Observe(1, 2)
	}
	prob := p.probability(1, 2)
	if prob < 0.8 {
		t.Fatalf("heavily observed transition should have high estimated probability, got %f", prob)
	}
}

func TestSteppedCurvePicksHighestMatchingThreshold(t *testing.T) {
	curve := SteppedCurve(map[float64]uint64{0.5: 1, 0.2: 4}, 16)
	if curve(0.6) != 1 {
		t.Fatalf("probability above 0.5 should map to divisor 1")
	}
	if curve(0.3) != 4 {
		t.Fatalf("probability between 0.2 and 0.5 should map to divisor 4")
	}
	if curve(0.05) != 16 {
		t.Fatalf("probability below every threshold should use the floor divisor")
	}
}
