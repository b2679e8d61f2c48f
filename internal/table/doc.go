// Package table is the core of vtable: the row/column data model, the stable
// multi-key row sorter and the virtualizing Table renderer.
//
// A Table owns all transient UI state of one table instance (sort spec,
// scroll offset, viewport size, header stickiness and the row height cache)
// and changes it only through its notification methods:
//   - SetRows when the host replaces the data set
//   - Scroll, Resize, SetScrollMargin and SetContainerTop for geometry
//   - ToggleSort and SetSort for sort interaction
//   - MeasureRow when a rendered row's real height is known
//
// Every notification recomputes the sorted order and the visible window and
// returns a new Frame: the header cells, the visible rows and the spacer
// heights that keep the scrollable area the size of the full list. Committing
// the Frame to a screen is the host's job (see internal/tui).
//
// Table is single-threaded; callers must serialise notifications.
package table
