package table

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

// Sort directions. The zero Direction means the column is unsorted.
const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Indicator returns the header suffix shown for the direction.
func (d Direction) Indicator() string {
	switch d {
	case Ascending:
		return " 🔼"
	case Descending:
		return " 🔽"
	default:
		return ""
	}
}

// SortKey is one entry of a SortSpec.
type SortKey struct {
	Column    string    `json:"column" yaml:"column"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// SortSpec is an ordered list of sort keys; earlier keys take precedence.
// An empty spec keeps rows in insertion order.
type SortSpec []SortKey

// ToggleCycle controls how repeated toggles on one column step through directions.
type ToggleCycle int

const (
	// CycleAscDescNone steps unsorted -> ascending -> descending -> unsorted.
	CycleAscDescNone ToggleCycle = iota
	// CycleAscDesc steps unsorted -> ascending -> descending -> ascending.
	CycleAscDesc
)

// sortPartsMax is the maximum number of colon-separated parts in a sort key.
const sortPartsMax = 2

// ParseToggleCycle parses "asc-desc-none" or "asc-desc".
func ParseToggleCycle(s string) (ToggleCycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc-desc-none":
		return CycleAscDescNone, nil
	case "asc-desc":
		return CycleAscDesc, nil
	default:
		return CycleAscDescNone, fmt.Errorf("invalid toggle cycle %q (must be asc-desc-none or asc-desc)", s)
	}
}

func (c ToggleCycle) String() string {
	if c == CycleAscDesc {
		return "asc-desc"
	}
	return "asc-desc-none"
}

func (c ToggleCycle) next(d Direction) Direction {
	switch d {
	case Ascending:
		return Descending
	case Descending:
		if c == CycleAscDesc {
			return Ascending
		}
		return Unsorted
	default:
		return Ascending
	}
}

// Direction returns the direction of column in the spec and its 1-based
// priority, or Unsorted and 0 when the column is not part of the spec.
func (s SortSpec) Direction(column string) (Direction, int) {
	for i, k := range s {
		if k.Column == column {
			return k.Direction, i + 1
		}
	}
	return Unsorted, 0
}

// Toggle returns the spec after a sort interaction on column. With multi false
// the result sorts by column alone; with multi true the other keys are kept
// and column is updated in place or appended. The receiver is not modified.
func (s SortSpec) Toggle(column string, cycle ToggleCycle, multi bool) SortSpec {
	current, _ := s.Direction(column)
	next := cycle.next(current)

	if !multi {
		if next == Unsorted {
			return SortSpec{}
		}
		return SortSpec{{Column: column, Direction: next}}
	}

	out := make(SortSpec, 0, len(s)+1)
	found := false
	for _, k := range s {
		if k.Column != column {
			out = append(out, k)
			continue
		}
		found = true
		if next != Unsorted {
			out = append(out, SortKey{Column: column, Direction: next})
		}
	}
	if !found && next != Unsorted {
		out = append(out, SortKey{Column: column, Direction: next})
	}
	return out
}

// Normalize returns a copy keeping only the first key per column and dropping
// keys with no direction. It also returns the dropped duplicates.
func (s SortSpec) Normalize() (SortSpec, []SortKey) {
	out := make(SortSpec, 0, len(s))
	var dropped []SortKey
	seen := make(map[string]bool, len(s))
	for _, k := range s {
		if k.Direction != Ascending && k.Direction != Descending {
			dropped = append(dropped, k)
			continue
		}
		if seen[k.Column] {
			dropped = append(dropped, k)
			continue
		}
		seen[k.Column] = true
		out = append(out, k)
	}
	return out, dropped
}

// Equal reports whether two specs hold the same keys in the same order.
func (s SortSpec) Equal(other SortSpec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the spec in the form accepted by ParseSortSpec.
func (s SortSpec) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.Column + ":" + string(k.Direction)
	}
	return strings.Join(parts, ",")
}

// ParseSortSpec parses a comma-separated list of "column[:asc|desc]" keys.
// The direction defaults to ascending. An empty expression yields an empty spec.
func ParseSortSpec(expr string) (SortSpec, error) {
	if strings.TrimSpace(expr) == "" {
		return SortSpec{}, nil
	}

	segments := strings.Split(expr, ",")
	spec := make(SortSpec, 0, len(segments))
	for _, seg := range segments {
		key, err := parseSortKey(seg)
		if err != nil {
			return nil, err
		}
		spec = append(spec, key)
	}
	return spec, nil
}

func parseSortKey(seg string) (SortKey, error) {
	parts := strings.Split(seg, ":")
	if len(parts) > sortPartsMax {
		return SortKey{}, fmt.Errorf("%w: too many colons in %q", ErrInvalidSortSpec, seg)
	}

	column := strings.TrimSpace(parts[0])
	if column == "" {
		return SortKey{}, fmt.Errorf("%w: empty column in %q", ErrInvalidSortSpec, seg)
	}

	dir := Ascending
	if len(parts) == sortPartsMax {
		dir = Direction(strings.ToLower(strings.TrimSpace(parts[1])))
	}
	if dir != Ascending && dir != Descending {
		return SortKey{}, fmt.Errorf("%w: direction %q (must be asc or desc)", ErrInvalidSortSpec, dir)
	}
	return SortKey{Column: column, Direction: dir}, nil
}
