// Package sticky decides when a table header is pinned to the top of the viewport.
package sticky

import "math"

// IsSticky reports whether a header should be pinned given the top edge of its
// container relative to the viewport. The header pins once the container's
// natural top has scrolled above the viewport's top edge.
func IsSticky(containerTop float64) bool {
	return containerTop < 0
}

// Tracker re-evaluates IsSticky on every scroll or resize notification and
// remembers only the last result, so hosts can skip redundant re-renders.
// The zero value is ready to use and not sticky.
type Tracker struct {
	sticky bool
}

// Update evaluates the container geometry. When ok is false the geometry is
// not available yet (for example before the first layout pass) and the
// container is treated as sitting at offset zero. It returns the new state and
// whether it differs from the previous one.
func (t *Tracker) Update(containerTop float64, ok bool) (sticky, changed bool) {
	if !ok || math.IsNaN(containerTop) {
		containerTop = 0
	}
	next := IsSticky(containerTop)
	changed = next != t.sticky
	t.sticky = next
	return next, changed
}

// Sticky returns the last evaluated state.
func (t *Tracker) Sticky() bool {
	return t.sticky
}
