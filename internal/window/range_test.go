package window_test

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/heights"
	"github.com/rshade/vtable/internal/window"
)

func fixedCache(n int, h float64) *heights.Cache {
	c := heights.NewCache(heights.Fixed(h))
	ks := make([]string, n)
	for i := range ks {
		ks[i] = strconv.Itoa(i)
	}
	c.Reset(ks)
	return c
}

// TestCompute_Scenarios verifies the documented fixed-height scenarios.
func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		scroll      float64
		expectStart int
		expectEnd   int
		expectOff   float64
	}{
		{name: "top of list", scroll: 0, expectStart: 0, expectEnd: 25, expectOff: 0},
		{name: "row 100 at top", scroll: 5400, expectStart: 90, expectEnd: 125, expectOff: 4860},
		{name: "past the end", scroll: 1e9, expectStart: 9975, expectEnd: 10000, expectOff: 9975 * 54},
	}

	cache := fixedCache(10_000, 54)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := window.Params{ScrollOffset: tt.scroll, ViewportHeight: 800, Overscan: 10}

			r := window.Compute(p, cache)
			assert.Equal(t, tt.expectStart, r.Start)
			assert.Equal(t, tt.expectEnd, r.End)
			assert.InDelta(t, tt.expectOff, r.Offset, 1e-9)
			assert.InDelta(t, 540_000.0, r.Total, 1e-9)

			linear := window.ComputeRange(tt.scroll, 800, 10_000, func(int) float64 { return 54 }, 10)
			assert.Equal(t, r, linear)
		})
	}
}

// TestCompute_ScrollMargin verifies the list offset subtracts the page margin.
func TestCompute_ScrollMargin(t *testing.T) {
	cache := fixedCache(1000, 54)

	r := window.Compute(window.Params{
		ScrollOffset:   5400 + 120,
		ViewportHeight: 800,
		ScrollMargin:   120,
		Overscan:       10,
	}, cache)

	assert.Equal(t, 90, r.Start)
	assert.InDelta(t, 4860.0, r.Offset, 1e-9)

	above := window.Compute(window.Params{ScrollOffset: 50, ViewportHeight: 800, ScrollMargin: 120}, cache)
	assert.Equal(t, 0, above.Start)
	assert.Zero(t, above.Offset)
}

// TestCompute_Empty verifies zero rows yield an empty range.
func TestCompute_Empty(t *testing.T) {
	r := window.Compute(window.Params{ScrollOffset: 100, ViewportHeight: 800, Overscan: 10}, fixedCache(0, 54))

	assert.True(t, r.Empty())
	assert.Equal(t, window.Range{}, r)
	assert.Equal(t, window.Range{}, window.ComputeRange(0, 800, 0, nil, 10))
}

// TestCompute_InvalidInputsClamped verifies negative and NaN inputs degrade gracefully.
func TestCompute_InvalidInputsClamped(t *testing.T) {
	cache := fixedCache(100, 10)

	r := window.Compute(window.Params{
		ScrollOffset:   math.NaN(),
		ViewportHeight: -50,
		Overscan:       -3,
	}, cache)

	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 1, r.End)
}

// TestCompute_BoundsProperty verifies start/end bounds for many row counts and offsets.
func TestCompute_BoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n <= 60; n++ {
		hs := make([]float64, n)
		ks := make([]string, n)
		for i := range hs {
			hs[i] = float64(rng.Intn(40))
			ks[i] = strconv.Itoa(i)
		}
		cache := heights.NewCache(func(i int) float64 { return hs[i] })
		cache.Reset(ks)

		for trial := 0; trial < 20; trial++ {
			p := window.Params{
				ScrollOffset:   float64(rng.Intn(3000)) - 100,
				ViewportHeight: float64(rng.Intn(300)),
				Overscan:       rng.Intn(5),
			}
			r := window.Compute(p, cache)

			require.LessOrEqual(t, 0, r.Start)
			require.LessOrEqual(t, r.Start, r.End)
			require.LessOrEqual(t, r.End, n)
			if n > 0 {
				require.Less(t, r.Start, n)
				require.Less(t, r.Start, r.End)
			}

			linear := window.ComputeRange(p.ScrollOffset, p.ViewportHeight, n, func(i int) float64 { return hs[i] }, p.Overscan)
			require.Equal(t, linear.Start, r.Start, "n=%d params=%+v", n, p)
			require.Equal(t, linear.End, r.End, "n=%d params=%+v", n, p)
			require.InDelta(t, linear.Offset, r.Offset, 1e-9)
			require.InDelta(t, linear.Total, r.Total, 1e-9)
		}
	}
}

// TestRange_Helpers verifies Len and Contains.
func TestRange_Helpers(t *testing.T) {
	r := window.Range{Start: 3, End: 7}

	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.False(t, r.Empty())
}
