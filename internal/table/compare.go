package table

import (
	"cmp"
	"math"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

// Comparator orders two cell values, returning a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
type Comparator func(a, b any) int

// Value classes in ascending sort order. Values of different classes order by
// class alone, so the comparator stays transitive on mixed columns.
const (
	classNil = iota
	classNumber
	classBool
	classTime
	classString
	classOther
)

// DefaultCompare is the type-aware comparator used when a column supplies none.
// Numbers compare numerically, strings lexicographically, times
// chronologically and booleans false before true. Values of different kinds
// order nil, numbers, booleans, times, strings, then anything else by its
// formatted text.
func DefaultCompare(a, b any) int {
	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return cmp.Compare(ca, cb)
	}

	switch ca {
	case classNil:
		return 0
	case classNumber:
		if x, ok := asInt(a); ok {
			if y, ok := asInt(b); ok {
				return cmp.Compare(x, y)
			}
		}
		x, _ := asFloat(a)
		y, _ := asFloat(b)
		return cmp.Compare(x, y)
	case classBool:
		return compareBool(a.(bool), b.(bool))
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	case classString:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(FormatValue(a), FormatValue(b))
	}
}

func classOf(v any) int {
	if v == nil {
		return classNil
	}
	if _, ok := asFloat(v); ok {
		return classNumber
	}
	switch v.(type) {
	case bool:
		return classBool
	case time.Time:
		return classTime
	case string:
		return classString
	default:
		return classOther
	}
}

// collatedCompare returns DefaultCompare with strings ordered by c.
func collatedCompare(c *collate.Collator) Comparator {
	return func(a, b any) int {
		if x, ok := a.(string); ok {
			if y, ok := b.(string); ok {
				return c.CompareString(x, y)
			}
		}
		return DefaultCompare(a, b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
