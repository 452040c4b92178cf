package text

import (
	"sort"
	"strings"
	"time"
)

// Penalties holds the line-break optimizer's penalty weights. knuthPlass
// applies only Orphan, to a single-word line that ends right before a
// hard newline; Hyphenation, HyphenatedLast and Widow do not enter the
// cost, and no word is ever marked as hyphenatable.
type Penalties struct {
	Hyphenation       int
	HyphenatedLast    int
	Widow             int
	Orphan            int
}

// DefaultPenalties mirrors typical typesetting defaults, scaled down for
// terminal line lengths.
var DefaultPenalties = Penalties{
	Hyphenation:    50,
	HyphenatedLast: 200,
	Widow:          150,
	Orphan:         150,
}

// word is one break-optimizer input item: a run of non-space text plus
// the cell width it occupies and whether it may be hyphenated.
type word struct {
	text      string
	cellWidth int
	hyphen    bool // may break after this word with a hyphen
}

// Break is one resolved line-break result.
type Break struct {
	Line  string
	Width int
}

const optimizerBudget = 2 * time.Millisecond

// Clock abstracts the wall-clock read the Knuth-Plass optimizer uses to
// enforce its deadline, so the harness can inject a fake clock and keep
// the fallback-to-greedy path reproducible under replay (spec §8 harness
// determinism; mirrors runtime.Clock and budget.Guardrail's
// caller-supplied `elapsed` parameter).
type Clock func() time.Time

// BreakParagraph computes line breaks for paragraph at the given cell
// width under tier, using a cache keyed by (text, width, tier). Results
// are deterministic: identical inputs always converge to the same break
// set (spec §4.7). now is the clock the optimizer's deadline is measured
// against; a nil now defaults to time.Now.
func BreakParagraph(cache *BreakCache, paragraph string, width int, tier Tier, widthFn WidthFunc, now Clock) []Break {
	if width <= 0 {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	key := breakKey{hash: fnv1a(paragraph), width: width, tier: tier}
	if cache != nil {
		if cached, ok := cache.get(key); ok {
			return cached
		}
	}

	words := splitWords(paragraph, widthFn)
	var breaks []Break
	if tier.AllowsKnuthPlass() {
		breaks = knuthPlass(words, width, DefaultPenalties, optimizerBudget, now)
	} else {
		breaks = greedyFirstFit(words, width)
	}

	if cache != nil {
		cache.put(key, breaks)
	}
	return breaks
}

func splitWords(paragraph string, widthFn WidthFunc) []word {
	var words []word
	for _, line := range strings.Split(paragraph, "\n") {
		for _, tok := range strings.Fields(line) {
			words = append(words, word{text: tok, cellWidth: clusterWidth(tok, widthFn), hyphen: false})
		}
		words = append(words, word{text: "\n"}) // hard break marker
	}
	if len(words) > 0 && words[len(words)-1].text == "\n" {
		words = words[:len(words)-1]
	}
	return words
}

func clusterWidth(s string, widthFn WidthFunc) int {
	w := 0
	for _, g := range Graphemes(s) {
		if widthFn != nil {
			w += int(widthFn([]byte(g)))
		} else {
			w++
		}
	}
	return w
}

// greedyFirstFit packs words onto each line until the next word would
// overflow, the fallback used at Fast tier or on optimizer timeout (spec
// §4.7).
func greedyFirstFit(words []word, width int) []Break {
	var out []Break
	var cur []string
	curW := 0
	flush := func() {
		out = append(out, Break{Line: strings.Join(cur, " "), Width: curW})
		cur = cur[:0]
		curW = 0
	}
	for _, w := range words {
		if w.text == "\n" {
			flush()
			continue
		}
		addW := w.cellWidth
		if len(cur) > 0 {
			addW++ // space
		}
		if len(cur) > 0 && curW+addW > width {
			flush()
			addW = w.cellWidth
		}
		cur = append(cur, w.text)
		curW += addW
	}
	flush()
	return out
}

// knuthPlass computes the break set minimizing total squared line
// badness via dynamic programming over word boundaries (spec §4.7). It
// is a practical, monospace-oriented reduction of the classic algorithm:
// since terminal glue has no stretch/shrink, badness is the squared
// leftover slack, and feasible breakpoints are just word boundaries
// (plus forced breaks at explicit newlines).
func knuthPlass(words []word, width int, pen Penalties, budget time.Duration, now Clock) []Break {
	deadline := now().Add(budget)
	n := len(words)
	if n == 0 {
		return nil
	}

	const inf = 1 << 60
	cost := make([]int, n+1)
	prev := make([]int, n+1)
	for i := range cost {
		cost[i] = inf
	}
	cost[0] = 0

	for i := 1; i <= n; i++ {
		if !now().Before(deadline) {
			return greedyFirstFit(words, width)
		}
		lineW := 0
		for j := i; j >= 1; j-- {
			w := words[j-1]
			if w.text == "\n" {
				if j == i {
					// A hard break alone: zero-cost transition, empty line width unaffected.
					if cost[j-1] < inf && cost[j-1] < cost[i] {
						cost[i] = cost[j-1]
						prev[i] = j - 1
					}
				}
				break
			}
			add := w.cellWidth
			if j < i {
				add++ // inter-word space
			}
			lineW += add
			if lineW > width {
				break
			}
			if cost[j-1] == inf {
				continue
			}
			slack := width - lineW
			badness := slack * slack
			if j == i && i < n && isLastBeforeHardBreakOrEnd(words, i) {
				badness += widowOrphanPenalty(words, j-1, i, pen)
			}
			c := cost[j-1] + badness
			if c < cost[i] {
				cost[i] = c
				prev[i] = j - 1
			}
		}
	}

	// Reconstruct breakpoints.
	var idxs []int
	for i := n; i > 0; {
		idxs = append(idxs, i)
		if cost[i] >= inf {
			return greedyFirstFit(words, width)
		}
		i = prev[i]
	}
	sort.Ints(idxs)

	var out []Break
	start := 0
	for _, end := range idxs {
		var tokens []string
		w := 0
		for k := start; k < end; k++ {
			if words[k].text == "\n" {
				continue
			}
			if len(tokens) > 0 {
				w++
			}
			tokens = append(tokens, words[k].text)
			w += words[k].cellWidth
		}
		out = append(out, Break{Line: strings.Join(tokens, " "), Width: w})
		start = end
	}
	return out
}

func isLastBeforeHardBreakOrEnd(words []word, i int) bool {
	return i == len(words) || (i < len(words) && words[i].text == "\n")
}

func widowOrphanPenalty(words []word, start, end int, pen Penalties) int {
	lineLen := end - start
	if lineLen <= 1 {
		return pen.Orphan
	}
	return 0
}

// fnv1a hashes s deterministically for the break cache key.
func fnv1a(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

type breakKey struct {
	hash  uint64
	width int
	tier  Tier
}

// BreakCache caches BreakParagraph results by (text hash, width, policy
// tier), bounded to capacity entries with simple FIFO eviction (spec
// §3: "Bounded; evicted by...").
type BreakCache struct {
	cap     int
	order   []breakKey
	entries map[breakKey][]Break
}

func NewBreakCache(capacity int) *BreakCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &BreakCache{cap: capacity, entries: make(map[breakKey][]Break)}
}

func (c *BreakCache) get(k breakKey) ([]Break, bool) {
	v, ok := c.entries[k]
	return v, ok
}

func (c *BreakCache) put(k breakKey, v []Break) {
	if _, exists := c.entries[k]; !exists {
		c.order = append(c.order, k)
		if len(c.order) > c.cap {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, evict)
		}
	}
	c.entries[k] = v
}
