package heights_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/heights"
)

func keys(ks ...string) []string { return ks }

// TestCache_TotalIsSumOfEstimatesAndMeasurements verifies totals for mixed rows.
func TestCache_TotalIsSumOfEstimatesAndMeasurements(t *testing.T) {
	c := heights.NewCache(heights.Fixed(54))
	c.Reset(keys("a", "b", "c", "d"))
	require.InDelta(t, 216.0, c.Total(), 1e-9)

	pos, changed := c.Measure("b", 80)
	assert.Equal(t, 1, pos)
	assert.True(t, changed)

	_, changed = c.Measure("d", 20)
	assert.True(t, changed)

	sum := 0.0
	for i := 0; i < c.Count(); i++ {
		sum += c.HeightOf(i)
	}
	assert.InDelta(t, sum, c.Total(), 1e-9)
	assert.InDelta(t, 54.0+80+54+20, c.Total(), 1e-9)
	assert.InDelta(t, 134.0, c.Start(2), 1e-9)
}

// TestCache_MeasureSameHeightIsNoChange verifies repeated measurements are idempotent.
func TestCache_MeasureSameHeightIsNoChange(t *testing.T) {
	c := heights.NewCache(heights.Fixed(1))
	c.Reset(keys("a"))

	_, changed := c.Measure("a", 1)
	assert.False(t, changed)
	assert.True(t, c.IsMeasured("a"))
}

// TestCache_InvalidMeasurementsIgnored verifies bad heights and unknown keys are dropped.
func TestCache_InvalidMeasurementsIgnored(t *testing.T) {
	c := heights.NewCache(heights.Fixed(10))
	c.Reset(keys("a", "b"))

	for _, h := range []float64{-1, math.NaN(), math.Inf(1)} {
		pos, changed := c.Measure("a", h)
		assert.Equal(t, -1, pos)
		assert.False(t, changed)
	}
	pos, _ := c.Measure("zzz", 5)
	assert.Equal(t, -1, pos)
	assert.InDelta(t, 20.0, c.Total(), 1e-9)
}

// TestCache_ReorderKeepsMeasurements verifies a permutation preserves measured heights.
func TestCache_ReorderKeepsMeasurements(t *testing.T) {
	c := heights.NewCache(heights.Fixed(10))
	c.Reset(keys("a", "b", "c"))
	c.Measure("a", 30)

	cleared := c.Reset(keys("c", "b", "a"))

	assert.False(t, cleared)
	assert.InDelta(t, 30.0, c.HeightOf(2), 1e-9)
	assert.InDelta(t, 10.0, c.HeightOf(0), 1e-9)
	assert.Equal(t, "a", c.Key(2))
}

// TestCache_NewRowSetClearsMeasurements verifies identity or length changes invalidate the cache.
func TestCache_NewRowSetClearsMeasurements(t *testing.T) {
	tests := []struct {
		name string
		next []string
	}{
		{name: "length changed", next: keys("a", "b")},
		{name: "identity changed", next: keys("a", "b", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := heights.NewCache(heights.Fixed(10))
			c.Reset(keys("a", "b", "c"))
			c.Measure("a", 30)

			assert.True(t, c.Reset(tt.next))
			assert.False(t, c.IsMeasured("a"))
			assert.InDelta(t, 10.0, c.HeightOf(0), 1e-9)
		})
	}
}

// TestCache_Clear verifies Clear drops measurements and keeps the key order.
func TestCache_Clear(t *testing.T) {
	c := heights.NewCache(heights.Fixed(10))
	c.Reset(keys("a", "b"))
	assert.False(t, c.Clear())

	c.Measure("b", 25)
	assert.True(t, c.Clear())
	assert.False(t, c.IsMeasured("b"))
	assert.InDelta(t, 20.0, c.Total(), 1e-9)
	assert.Equal(t, "b", c.Key(1))
}

// TestCache_IndexLookups verifies covering-row lookups and clamping.
func TestCache_IndexLookups(t *testing.T) {
	c := heights.NewCache(heights.Fixed(54))
	c.Reset(keys("a", "b", "c"))

	assert.Equal(t, 0, c.IndexAt(0))
	assert.Equal(t, 1, c.IndexAt(54))
	assert.Equal(t, 2, c.IndexAt(10_000))
	assert.Equal(t, 0, c.IndexReaching(54))
	assert.Equal(t, 2, c.IndexReaching(10_000))

	empty := heights.NewCache(nil)
	assert.Equal(t, 0, empty.IndexAt(5))
	assert.Zero(t, empty.Total())
}

// TestCache_SetEstimator verifies unmeasured rows pick up a new estimate.
func TestCache_SetEstimator(t *testing.T) {
	c := heights.NewCache(heights.Fixed(10))
	c.Reset(keys("a", "b"))
	c.Measure("a", 3)

	c.SetEstimator(func(i int) float64 { return float64(100 + i) })

	assert.InDelta(t, 3.0, c.HeightOf(0), 1e-9)
	assert.InDelta(t, 101.0, c.HeightOf(1), 1e-9)
}
