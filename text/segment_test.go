package text

import "testing"

func TestSegmentAllLTR(t *testing.T) {
	runs := Segment("hello world")
	if len(runs) != 1 {
		t.Fatalf("expected a single run, got %d: %+v", len(runs), runs)
	}
	if runs[0].Direction != LTR {
		t.Fatalf("expected LTR, got %v", runs[0].Direction)
	}
	if runs[0].Text != "hello world" {
		t.Fatalf("unexpected run text %q", runs[0].Text)
	}
}

func TestSegmentSplitsOnStrongRTL(t *testing.T) {
	// "hi " (LTR) + Hebrew word (RTL) + " bye" (LTR).
	hebrew := string([]rune{0x05D0, 0x05D1})
	runs := Segment("hi " + hebrew + " bye")
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Direction != LTR || runs[1].Direction != RTL || runs[2].Direction != LTR {
		t.Fatalf("unexpected direction sequence: %v %v %v", runs[0].Direction, runs[1].Direction, runs[2].Direction)
	}
}

func TestSegmentEmptyString(t *testing.T) {
	if runs := Segment(""); runs != nil {
		t.Fatalf("expected nil for an empty paragraph, got %+v", runs)
	}
}

func TestSegmentExplicitMarksOverrideDirection(t *testing.T) {
	// An RLM forces an RTL run even over ASCII letters that would
	// otherwise resolve to LTR.
	s := "a" + string(rune(rlm)) + "b"
	runs := Segment(s)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs around the RLM, got %d: %+v", len(runs), runs)
	}
	if runs[0].Direction != LTR || runs[1].Direction != RTL {
		t.Fatalf("expected LTR then RTL, got %v then %v", runs[0].Direction, runs[1].Direction)
	}
}

func TestSegmentByteStartsAreCumulative(t *testing.T) {
	hebrew := string([]rune{0x05D0, 0x05D1})
	runs := Segment("hi " + hebrew + " bye")
	for i := 1; i < len(runs); i++ {
		if runs[i].ByteStart <= runs[i-1].ByteStart {
			t.Fatalf("expected strictly increasing ByteStart, got %d then %d", runs[i-1].ByteStart, runs[i].ByteStart)
		}
	}
}

func TestGraphemesSplitsCombiningSequenceAsOneCluster(t *testing.T) {
	// "e" + combining acute accent (U+0301) is one extended grapheme cluster.
	s := string([]rune{'e', 0x0301}) + "x"
	clusters := Graphemes(s)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %q", len(clusters), clusters)
	}
	if clusters[0] != string([]rune{'e', 0x0301}) {
		t.Fatalf("expected the first cluster to combine e+accent, got %q", clusters[0])
	}
}
