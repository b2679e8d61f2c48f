package table

import "github.com/rshade/vtable/internal/window"

// HeaderCell is one header of a Frame.
type HeaderCell struct {
	ColumnID  string
	Label     string
	Width     int
	Align     Alignment
	Sortable  bool
	Direction Direction
	// Priority is the 1-based position of the column in the sort spec, 0 when unsorted.
	Priority int
}

// Indicator returns the sort direction suffix for the header.
func (h HeaderCell) Indicator() string {
	return h.Direction.Indicator()
}

// Cell is one rendered value of a FrameRow.
type Cell struct {
	ColumnID string
	Value    any
	Text     string
	Align    Alignment
}

// FrameRow is a materialised row of a Frame.
type FrameRow struct {
	// Position is the row's index in sorted order.
	Position int
	// Index is the row's index in the data set as supplied by the host.
	Index int
	Key   string
	Cells []Cell
	// Start is the offset of the row's top edge within the list.
	Start    float64
	Height   float64
	Measured bool
}

// Frame is the display tree produced by every Table notification: the header,
// a leading spacer standing in for the rows above the window, the rows of the
// window and a trailing spacer for the rows below it.
type Frame struct {
	Header []HeaderCell
	Sticky bool
	// StickyChanged reports whether Sticky differs from the previous Frame.
	StickyChanged  bool
	LeadingSpacer  float64
	Rows           []FrameRow
	TrailingSpacer float64
	Range          window.Range
	RowCount       int
	Sort           SortSpec
}

// Total returns the height of the full list.
func (f Frame) Total() float64 {
	return f.Range.Total
}
