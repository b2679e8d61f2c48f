package table

import (
	"fmt"
	"strconv"
	"time"
)

// Row is one record of the data set. Key is its stable identity; Fields holds
// the named values. Rows belong to the caller and are never modified.
type Row struct {
	Key    string
	Fields map[string]any
}

// Alignment of cell text within a column.
type Alignment int

const (
	// AlignLeft is the default alignment.
	AlignLeft Alignment = iota
	// AlignRight is typically used for numeric columns.
	AlignRight
)

// Column describes one column of the table.
type Column struct {
	// ID names the field the column reads and identifies it in sort specs.
	ID string
	// Header is the display label; ID is used when empty.
	Header string
	// Accessor extracts the cell value; Fields[ID] is used when nil.
	Accessor func(Row) any
	// Width is a fixed width in host units; 0 lets the host size the column.
	Width int
	// Sortable enables the sort affordance for the column.
	Sortable bool
	// Compare overrides the default type-aware comparator.
	Compare Comparator
	// Format overrides the default cell text.
	Format func(any) string
	// Align controls cell text alignment.
	Align Alignment
}

// Label returns the header label of the column.
func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// Value returns the cell value of the column for row r.
func (c Column) Value(r Row) any {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	return r.Fields[c.ID]
}

// Text returns the display text of the column for row r.
func (c Column) Text(r Row) string {
	v := c.Value(r)
	if c.Format != nil {
		return c.Format(v)
	}
	return FormatValue(v)
}

// FormatValue renders a cell value with the default formatting.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
