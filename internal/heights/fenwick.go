package heights

// Fenwick is a binary indexed tree over non-negative row heights.
// Index arguments are 0-based; the tree itself is stored 1-based.
type Fenwick struct {
	tree   []float64
	values []float64
}

// NewFenwick builds a tree over a copy of values in O(n).
func NewFenwick(values []float64) *Fenwick {
	n := len(values)
	f := &Fenwick{
		tree:   make([]float64, n+1),
		values: make([]float64, n),
	}
	copy(f.values, values)

	for i := 1; i <= n; i++ {
		f.tree[i] += values[i-1]
		if parent := i + (i & -i); parent <= n {
			f.tree[parent] += f.tree[i]
		}
	}
	return f
}

// Len returns the number of rows in the tree.
func (f *Fenwick) Len() int {
	return len(f.values)
}

// Get returns the height stored at index i.
func (f *Fenwick) Get(i int) float64 {
	return f.values[i]
}

// Set replaces the height at index i and returns the applied delta.
func (f *Fenwick) Set(i int, v float64) float64 {
	delta := v - f.values[i]
	if delta != 0 {
		f.add(i, delta)
		f.values[i] = v
	}
	return delta
}

func (f *Fenwick) add(i int, delta float64) {
	for pos := i + 1; pos < len(f.tree); pos += pos & -pos {
		f.tree[pos] += delta
	}
}

// Prefix returns the sum of heights in [0, i).
func (f *Fenwick) Prefix(i int) float64 {
	if i > len(f.values) {
		i = len(f.values)
	}
	sum := 0.0
	for pos := i; pos > 0; pos -= pos & -pos {
		sum += f.tree[pos]
	}
	return sum
}

// Total returns the sum of all heights.
func (f *Fenwick) Total() float64 {
	return f.Prefix(len(f.values))
}

// Search returns the first index whose end offset is strictly greater than y,
// i.e. the row covering offset y. It returns Len() when no row ends past y.
func (f *Fenwick) Search(y float64) int {
	return f.descend(y, func(node, rem float64) bool { return node <= rem })
}

// SearchReaching returns the first index whose end offset is at least y.
// It returns Len() when no row reaches y.
func (f *Fenwick) SearchReaching(y float64) int {
	return f.descend(y, func(node, rem float64) bool { return node < rem })
}

// descend walks the tree top-down, advancing while skip reports that the whole
// node still lies before the target. The result is the count of skipped rows.
func (f *Fenwick) descend(y float64, skip func(node, rem float64) bool) int {
	n := len(f.values)
	step := 1
	for step<<1 <= n {
		step <<= 1
	}

	pos := 0
	rem := y
	for ; step > 0; step >>= 1 {
		next := pos + step
		if next <= n && skip(f.tree[next], rem) {
			pos = next
			rem -= f.tree[next]
		}
	}
	return pos
}
