package grapheme

import "testing"

func TestWidthCacheASCIIIsNarrow(t *testing.T) {
	c := NewWidthCache()
	if w := c.Width([]byte("a")); w != 1 {
		t.Fatalf("Width('a') = %d, want 1", w)
	}
}

func TestWidthCacheEmptyClusterIsZero(t *testing.T) {
	c := NewWidthCache()
	if w := c.Width(nil); w != 0 {
		t.Fatalf("Width(nil) = %d, want 0", w)
	}
	if w := c.Width([]byte{}); w != 0 {
		t.Fatalf("Width([]byte{}) = %d, want 0", w)
	}
}

func TestWidthCacheWideCJKRune(t *testing.T) {
	c := NewWidthCache()
	cjk := string(rune(0x4E2D)) // 中
	if w := c.Width([]byte(cjk)); w != 2 {
		t.Fatalf("Width(%q) = %d, want 2", cjk, w)
	}
}

func TestWidthCacheRepeatedLookupIsStable(t *testing.T) {
	c := NewWidthCache()
	cluster := []byte("x")
	first := c.Width(cluster)
	// Trigger probation -> main promotion, then query again.
	second := c.Width(cluster)
	third := c.Width(cluster)
	if first != second || second != third {
		t.Fatalf("expected a stable width across repeated lookups, got %d, %d, %d", first, second, third)
	}
}

func TestWidthCacheCombiningMarkTakesBaseRuneWidth(t *testing.T) {
	c := NewWidthCache()
	cluster := []byte(string([]rune{'e', 0x0301})) // e + combining acute
	if w := c.Width(cluster); w != 1 {
		t.Fatalf("Width('e'+combining accent) = %d, want 1 (base rune width)", w)
	}
}

func TestWidthCacheLenGrowsWithDistinctClusters(t *testing.T) {
	c := NewWidthCache()
	if c.Len() != 0 {
		t.Fatalf("expected an empty cache to have Len() == 0")
	}
	c.Width([]byte("a"))
	c.Width([]byte("b"))
	if c.Len() != 2 {
		t.Fatalf("expected Len() == 2 after two distinct lookups, got %d", c.Len())
	}
	c.Width([]byte("a")) // repeat, should not grow Len
	if c.Len() != 2 {
		t.Fatalf("expected Len() unchanged on a repeated lookup, got %d", c.Len())
	}
}

func TestSetEastAsianAmbiguousWideClearsCache(t *testing.T) {
	c := NewWidthCache()
	c.Width([]byte("a"))
	if c.Len() == 0 {
		t.Fatalf("expected the cache to have an entry before toggling")
	}
	c.SetEastAsianAmbiguousWide(true)
	if c.Len() != 0 {
		t.Fatalf("expected toggling the ambiguous-width mode to clear the cache, got Len() == %d", c.Len())
	}
}
