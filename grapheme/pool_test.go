package grapheme

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	p := NewPool()
	a := p.Intern([]byte("abc"))
	b := p.Intern([]byte("abc"))
	if a != b {
		t.Fatalf("expected interning the same bytes twice to return the same handle, got %d and %d", a, b)
	}
}

func TestInternDistinctBytesGetDistinctHandles(t *testing.T) {
	p := NewPool()
	a := p.Intern([]byte("abc"))
	b := p.Intern([]byte("xyz"))
	if a == b {
		t.Fatalf("expected distinct byte sequences to get distinct handles")
	}
}

func TestZeroHandleIsReserved(t *testing.T) {
	p := NewPool()
	if h := p.Intern([]byte("first")); h == 0 {
		t.Fatalf("expected the first interned cluster to get a non-zero handle, handle 0 is reserved")
	}
}

func TestLookupReturnsInternedBytes(t *testing.T) {
	p := NewPool()
	h := p.Intern([]byte("hello"))
	if got := string(p.Lookup(h)); got != "hello" {
		t.Fatalf("Lookup(%d) = %q, want %q", h, got, "hello")
	}
}

func TestPoolLen(t *testing.T) {
	p := NewPool()
	if p.Len() != 0 {
		t.Fatalf("expected an empty pool to have Len() == 0")
	}
	p.Intern([]byte("a"))
	p.Intern([]byte("b"))
	p.Intern([]byte("a")) // duplicate, should not grow Len
	if p.Len() != 2 {
		t.Fatalf("expected Len() == 2 after interning 2 distinct clusters, got %d", p.Len())
	}
}

func TestResetInvalidatesHandles(t *testing.T) {
	p := NewPool()
	p.Intern([]byte("a"))
	p.Intern([]byte("b"))
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("expected Len() == 0 after Reset, got %d", p.Len())
	}
	// Re-interning after reset should reassign handle 1 again.
	if h := p.Intern([]byte("a")); h != 1 {
		t.Fatalf("expected the first post-reset intern to get handle 1, got %d", h)
	}
}

func TestSegmentSplitsASCIIIntoSingleRuneClusters(t *testing.T) {
	clusters := Segment("abc")
	if len(clusters) != 3 {
		t.Fatalf("expected 3 clusters, got %d: %q", len(clusters), clusters)
	}
}

func TestSegmentCombinesEmojiZWJSequenceIntoOneCluster(t *testing.T) {
	// man + ZWJ + heart + ZWJ + man: a single extended grapheme cluster.
	zwj := string(rune(0x200D))
	s := string(rune(0x1F468)) + zwj + string(rune(0x2764)) + zwj + string(rune(0x1F468))
	clusters := Segment(s)
	if len(clusters) != 1 {
		t.Fatalf("expected the ZWJ sequence to segment as 1 cluster, got %d: %q", len(clusters), clusters)
	}
	if string(clusters[0]) != s {
		t.Fatalf("expected the single cluster to be the whole sequence")
	}
}

func TestSegmentEmptyString(t *testing.T) {
	if clusters := Segment(""); len(clusters) != 0 {
		t.Fatalf("expected no clusters for an empty string, got %d", len(clusters))
	}
}
