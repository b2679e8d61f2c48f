// Package heights tracks per-row heights for a virtualized table.
//
// Rows start with an estimated height (fixed or computed per position) and are
// refined with measured heights reported by whatever renders them. Measurements
// are keyed by the row's stable key, so they survive a re-sort of the rows and
// are discarded when the row set itself changes. Cumulative offsets are kept in
// a Fenwick tree, giving:
//   - O(log n) point updates when a single row is measured
//   - O(log n) prefix sums for the start offset of any row
//   - O(log n) lookups of the row covering a given scroll offset
package heights
