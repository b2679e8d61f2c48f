package heights

import "math"

// Estimator returns the estimated height of the row at a position.
type Estimator func(index int) float64

// Fixed returns an Estimator that gives every row the same height.
func Fixed(h float64) Estimator {
	return func(int) float64 { return h }
}

// Valid reports whether h is usable as a row height.
func Valid(h float64) bool {
	return h >= 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}

// Cache holds the height of every row in display order. Estimated heights are
// replaced by measured ones as they are reported. A Cache is not safe for
// concurrent use.
type Cache struct {
	estimate Estimator

	// keys is the row key at each display position.
	keys []string

	// position maps a row key to its display position.
	position map[string]int

	// measured holds heights reported for rendered rows, by row key.
	measured map[string]float64

	tree *Fenwick
}

// NewCache creates an empty cache using estimate for unmeasured rows.
// A nil estimate gives unmeasured rows zero height.
func NewCache(estimate Estimator) *Cache {
	if estimate == nil {
		estimate = Fixed(0)
	}
	return &Cache{
		estimate: estimate,
		position: make(map[string]int),
		measured: make(map[string]float64),
		tree:     NewFenwick(nil),
	}
}

// Reset loads a new row-key sequence. Measurements are kept only when keys is
// a permutation of the current set; otherwise they are discarded. It reports
// whether measurements were discarded.
func (c *Cache) Reset(keys []string) bool {
	cleared := false
	if !c.sameSet(keys) {
		if len(c.measured) > 0 {
			cleared = true
		}
		c.measured = make(map[string]float64)
	}
	c.load(keys)
	return cleared
}

// Clear discards every measurement and reports whether there were any.
func (c *Cache) Clear() bool {
	if len(c.measured) == 0 {
		return false
	}
	c.measured = make(map[string]float64)
	c.load(c.keys)
	return true
}

// SetEstimator swaps the estimator and recomputes every unmeasured row.
func (c *Cache) SetEstimator(estimate Estimator) {
	if estimate == nil {
		estimate = Fixed(0)
	}
	c.estimate = estimate
	c.load(c.keys)
}

func (c *Cache) sameSet(keys []string) bool {
	if len(keys) != len(c.keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := c.position[k]; !ok {
			return false
		}
	}
	return true
}

func (c *Cache) load(keys []string) {
	c.keys = append(c.keys[:0:0], keys...)
	c.position = make(map[string]int, len(keys))
	values := make([]float64, len(keys))
	for i, k := range keys {
		if _, dup := c.position[k]; !dup {
			c.position[k] = i
		}
		values[i] = c.heightFor(i, k)
	}
	c.tree = NewFenwick(values)
}

func (c *Cache) heightFor(i int, key string) float64 {
	if h, ok := c.measured[key]; ok {
		return h
	}
	h := c.estimate(i)
	if !Valid(h) {
		return 0
	}
	return h
}

// Measure records the rendered height of the row with the given key. It
// returns the row's position and whether its height changed. Unknown keys and
// invalid heights are ignored and reported as position -1.
func (c *Cache) Measure(key string, h float64) (int, bool) {
	if !Valid(h) {
		return -1, false
	}
	pos, ok := c.position[key]
	if !ok {
		return -1, false
	}
	c.measured[key] = h
	return pos, c.tree.Set(pos, h) != 0
}

// IsMeasured reports whether the row with the given key has a measured height.
func (c *Cache) IsMeasured(key string) bool {
	_, ok := c.measured[key]
	return ok
}

// Count returns the number of rows.
func (c *Cache) Count() int {
	return len(c.keys)
}

// Key returns the row key at position i.
func (c *Cache) Key(i int) string {
	return c.keys[i]
}

// HeightOf returns the current height of the row at position i.
func (c *Cache) HeightOf(i int) float64 {
	return c.tree.Get(i)
}

// Start returns the offset of the top of the row at position i.
func (c *Cache) Start(i int) float64 {
	return c.tree.Prefix(i)
}

// Total returns the sum of all row heights.
func (c *Cache) Total() float64 {
	return c.tree.Total()
}

// IndexAt returns the position of the row covering offset y, clamped to the
// last row. It returns 0 for an empty cache.
func (c *Cache) IndexAt(y float64) int {
	return c.clamp(c.tree.Search(y))
}

// IndexReaching returns the position of the first row whose bottom edge is at
// or below offset y, clamped to the last row.
func (c *Cache) IndexReaching(y float64) int {
	return c.clamp(c.tree.SearchReaching(y))
}

func (c *Cache) clamp(i int) int {
	if i >= len(c.keys) {
		i = len(c.keys) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
