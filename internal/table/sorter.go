package table

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type sortOptions struct {
	collator *collate.Collator
	warn     func(error)
}

// SortOption configures Sort and Order.
type SortOption func(*sortOptions)

// WithCollation orders strings by the collation rules of tag instead of byte order.
func WithCollation(tag language.Tag) SortOption {
	return func(o *sortOptions) {
		o.collator = collate.New(tag)
	}
}

// WithWarnings reports sort keys that had to be dropped.
func WithWarnings(fn func(error)) SortOption {
	return func(o *sortOptions) {
		o.warn = fn
	}
}

type resolvedKey struct {
	column Column
	desc   bool
	cmp    Comparator
}

// Sort returns rows ordered by spec. It returns a new slice and leaves rows
// untouched; an empty spec returns the rows in insertion order.
func Sort(rows []Row, cols []Column, spec SortSpec, opts ...SortOption) []Row {
	order := Order(rows, cols, spec, opts...)
	sorted := make([]Row, len(order))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	return sorted
}

// Order returns the indices of rows in sorted order. The sort is stable: rows
// whose keys all compare equal keep their relative order. Keys are evaluated
// in spec order and the first non-equal key decides. Keys naming an unknown or
// unsortable column are dropped and reported through WithWarnings.
func Order(rows []Row, cols []Column, spec SortSpec, opts ...SortOption) []int {
	o := sortOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}

	keys := resolveKeys(cols, spec, &o)
	if len(keys) == 0 || len(rows) < 2 {
		return order
	}

	// Accessors run once per row and key rather than once per comparison.
	values := make([][]any, len(keys))
	for k, key := range keys {
		values[k] = make([]any, len(rows))
		for i := range rows {
			values[k][i] = key.column.Value(rows[i])
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		for k, key := range keys {
			c := key.cmp(values[k][a], values[k][b])
			if c == 0 {
				continue
			}
			if key.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return order
}

func resolveKeys(cols []Column, spec SortSpec, o *sortOptions) []resolvedKey {
	warn := func(err error) {
		if o.warn != nil {
			o.warn(err)
		}
	}

	byID := make(map[string]Column, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}

	normalized, dropped := spec.Normalize()
	for _, k := range dropped {
		warn(&ConfigError{Err: ErrDuplicateSortKey, Column: k.Column, Value: k.Direction})
	}

	keys := make([]resolvedKey, 0, len(normalized))
	for _, k := range normalized {
		col, ok := byID[k.Column]
		if !ok {
			warn(&ConfigError{Err: ErrUnknownColumn, Column: k.Column})
			continue
		}
		if !col.Sortable {
			warn(&ConfigError{Err: ErrNotSortable, Column: k.Column})
			continue
		}

		compare := col.Compare
		if compare == nil {
			compare = DefaultCompare
			if o.collator != nil {
				compare = collatedCompare(o.collator)
			}
		}
		keys = append(keys, resolvedKey{column: col, desc: k.Direction == Descending, cmp: compare})
	}
	return keys
}
