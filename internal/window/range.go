// Package window computes which rows of a virtualized list must be rendered
// for a given scroll position.
package window

import (
	"math"

	"github.com/rshade/vtable/internal/heights"
)

// Range describes the contiguous block of rows to render, as the half-open
// interval [Start, End). Offset is the distance from the top of the list to
// the top of row Start; Total is the height of the whole list.
type Range struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Offset float64 `json:"offset"`
	Total  float64 `json:"total"`
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range holds no rows.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether row i is in the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Params are the viewport inputs of a range computation.
type Params struct {
	// ScrollOffset is the viewport's scroll position over the whole page.
	ScrollOffset float64
	// ViewportHeight is the visible height of the viewport.
	ViewportHeight float64
	// ScrollMargin is the distance from the top of the page to the first row.
	ScrollMargin float64
	// Overscan is the number of extra rows rendered on each side.
	Overscan int
}

// Index is the cumulative-height view of the rows that Compute needs.
// heights.Cache satisfies it.
type Index interface {
	Count() int
	Start(i int) float64
	Total() float64
	IndexAt(y float64) int
	IndexReaching(y float64) int
}

var _ Index = (*heights.Cache)(nil)

// Compute returns the range to render using the index's O(log n) lookups.
func Compute(p Params, idx Index) Range {
	n := idx.Count()
	if n == 0 {
		return Range{}
	}

	total := idx.Total()
	viewport, overscan := sanitize(p.ViewportHeight), clampOverscan(p.Overscan)
	y := listOffset(p.ScrollOffset, p.ScrollMargin, viewport, total)

	first := idx.IndexAt(y)
	last := idx.IndexReaching(y + viewport)
	if last < first {
		last = first
	}

	start, end := expand(first, last, overscan, n)
	return Range{
		Start:  start,
		End:    end,
		Offset: idx.Start(start),
		Total:  total,
	}
}

// ComputeRange returns the range to render by walking heights from the first
// row. It is the O(n) reference for Compute and needs no index.
func ComputeRange(scrollOffset, viewportHeight float64, rowCount int, heightOf func(int) float64, overscan int) Range {
	if rowCount <= 0 {
		return Range{}
	}

	hs := make([]float64, rowCount)
	total := 0.0
	for i := range hs {
		if h := heightOf(i); heights.Valid(h) {
			hs[i] = h
		}
		total += hs[i]
	}

	viewport := sanitize(viewportHeight)
	y := listOffset(scrollOffset, 0, viewport, total)

	first, last := -1, -1
	cumulative := 0.0
	for i, h := range hs {
		end := cumulative + h
		if first < 0 && end > y {
			first = i
		}
		if first >= 0 && end >= y+viewport {
			last = i
			break
		}
		cumulative = end
	}
	if first < 0 {
		first = rowCount - 1
	}
	if last < 0 {
		last = rowCount - 1
	}

	start, end := expand(first, last, clampOverscan(overscan), rowCount)
	offset := 0.0
	for _, h := range hs[:start] {
		offset += h
	}
	return Range{Start: start, End: end, Offset: offset, Total: total}
}

// listOffset converts a page scroll offset to an offset within the list,
// clamped so that scrolling past the end shows the last full viewport.
func listOffset(scroll, margin, viewport, total float64) float64 {
	y := sanitize(scroll - sanitize(margin))
	limit := math.Max(0, total-viewport)
	return math.Min(y, limit)
}

func expand(first, last, overscan, n int) (int, int) {
	start := max(first-overscan, 0)
	end := min(last+1+overscan, n)
	return start, end
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

func clampOverscan(o int) int {
	if o < 0 {
		return 0
	}
	return o
}
