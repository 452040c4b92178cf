package grapheme

import (
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// WidthCache maps grapheme cluster bytes to their terminal display width
// in {0,1,2} (spec §4.2). It is safe for concurrent use: the runtime and
// any background shaping workers may share one cache across frames.
//
// Admission follows a two-tier scheme modeled on S3-FIFO: a cluster is
// first admitted into a small probationary ring; only a cluster accessed
// a second time is promoted into the unbounded main table. This keeps a
// single burst of one-off clusters (a pasted block of rare CJK punctuation)
// from evicting or bloating the steady-state cache, while never changing
// the width returned for any input.
type WidthCache struct {
	mu          sync.RWMutex
	main        map[string]uint8
	probation   map[string]uint8
	probeOrder  []string
	probeCap    int
	eastAsianAmbiguousWide bool
}

const defaultProbationCap = 256

// NewWidthCache returns a cache with the default probation capacity.
func NewWidthCache() *WidthCache {
	return &WidthCache{
		main:      make(map[string]uint8, 1024),
		probation: make(map[string]uint8, defaultProbationCap),
		probeCap:  defaultProbationCap,
	}
}

// SetEastAsianAmbiguousWide toggles whether ambiguous-width runes (the
// Unicode "East Asian Ambiguous" class) are measured as width 2. This
// mirrors the FRANKENTUI_CJK_WIDTH environment override (§6, §10.3).
func (c *WidthCache) SetEastAsianAmbiguousWide(wide bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eastAsianAmbiguousWide != wide {
		c.eastAsianAmbiguousWide = wide
		clear(c.main)
		clear(c.probation)
		c.probeOrder = c.probeOrder[:0]
	}
}

// Width returns the display width of a single grapheme cluster's bytes.
// Empty input has width 0.
func (c *WidthCache) Width(cluster []byte) uint8 {
	if len(cluster) == 0 {
		return 0
	}
	key := string(cluster)

	c.mu.RLock()
	if w, ok := c.main[key]; ok {
		c.mu.RUnlock()
		return w
	}
	w, ok := c.probation[key]
	c.mu.RUnlock()
	if ok {
		c.promote(key, w)
		return w
	}

	computed := c.compute(key)
	c.admit(key, computed)
	return computed
}

func (c *WidthCache) compute(cluster string) uint8 {
	r, size := utf8.DecodeRuneInString(cluster)
	if size == len(cluster) {
		return singleRuneWidth(r, c.eastAsianAmbiguousWide)
	}
	// Multi-rune cluster (combining marks, ZWJ emoji sequence): width is
	// the width of the base rune; combining marks contribute zero.
	total := uint8(0)
	for _, r := range cluster {
		w := singleRuneWidth(r, c.eastAsianAmbiguousWide)
		if w > total {
			total = w
		}
	}
	if total == 0 {
		total = 1
	}
	return total
}

func singleRuneWidth(r rune, eastAsianAmbiguousWide bool) uint8 {
	if eastAsianAmbiguousWide {
		if p := width.LookupRune(r); p.Kind() == width.EastAsianAmbiguous {
			return 2
		}
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsianAmbiguousWide
	w := cond.RuneWidth(r)
	if w < 0 {
		w = 0
	}
	return uint8(w)
}

func (c *WidthCache) admit(key string, w uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.main[key]; ok {
		return
	}
	if _, ok := c.probation[key]; ok {
		return
	}
	if len(c.probeOrder) >= c.probeCap {
		oldest := c.probeOrder[0]
		c.probeOrder = c.probeOrder[1:]
		delete(c.probation, oldest)
	}
	c.probation[key] = w
	c.probeOrder = append(c.probeOrder, key)
}

func (c *WidthCache) promote(key string, w uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.probation, key)
	for i, k := range c.probeOrder {
		if k == key {
			c.probeOrder = append(c.probeOrder[:i], c.probeOrder[i+1:]...)
			break
		}
	}
	c.main[key] = w
}

// Len reports the total number of entries across both tiers.
func (c *WidthCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.main) + len(c.probation)
}
