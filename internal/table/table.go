package table

import (
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/rshade/vtable/internal/heights"
	"github.com/rshade/vtable/internal/sticky"
	"github.com/rshade/vtable/internal/window"
)

// Defaults for a pixel-based host.
const (
	DefaultOverscan  = 10
	DefaultRowHeight = 54
)

// Options configures a Table.
type Options struct {
	// Overscan is the number of rows rendered beyond each end of the viewport.
	Overscan int
	// RowHeight is the fixed height estimate for every row; 0 selects DefaultRowHeight.
	RowHeight float64
	// Estimate, when set, estimates row heights per sorted position and takes
	// precedence over RowHeight.
	Estimate heights.Estimator
	// ScrollMargin is the distance from the top of the scrollable page to the first row.
	ScrollMargin float64
	// Cycle selects the toggle cycle of a column's sort direction.
	Cycle ToggleCycle
	// MultiSort allows additive sort toggles.
	MultiSort bool
	// Collation is a BCP 47 tag for locale-aware string sorting; empty uses byte order.
	Collation string

	Logger zerolog.Logger

	// OnSortChange is called with the new spec whenever it changes.
	OnSortChange func(SortSpec)
	// OnWarning receives recovered configuration problems as *ConfigError.
	OnWarning func(error)
}

// DefaultOptions returns pixel-based defaults: 54-pixel rows and an overscan of 10.
func DefaultOptions() Options {
	return Options{
		Overscan:  DefaultOverscan,
		RowHeight: DefaultRowHeight,
		Cycle:     CycleAscDescNone,
		Logger:    zerolog.Nop(),
	}
}

type geometry int

const (
	// geometryDerived computes the container top from scroll offset and margin.
	geometryDerived geometry = iota
	geometryMeasured
	geometryUnavailable
)

// Table is one virtualized, sortable table instance. See the package
// documentation for the notification model.
type Table struct {
	columns  []Column
	opts     Options
	log      zerolog.Logger
	sortOpts []SortOption

	rows  []Row
	keys  []string
	order []int
	spec  SortSpec
	cache *heights.Cache

	scroll   float64
	viewport float64
	margin   float64
	overscan int

	geometry     geometry
	containerTop float64
	tracker      sticky.Tracker

	frame Frame
}

// New creates a Table with no rows.
func New(columns []Column, opts Options) *Table {
	t := &Table{
		columns:  append([]Column(nil), columns...),
		opts:     opts,
		log:      opts.Logger.With().Str("component", "table").Logger(),
		margin:   opts.ScrollMargin,
		overscan: opts.Overscan,
		spec:     SortSpec{},
	}

	if t.overscan < 0 {
		t.warn(&ConfigError{Err: ErrInvalidOverscan, Value: opts.Overscan})
		t.overscan = 0
	}

	estimate := opts.Estimate
	if estimate == nil {
		h := opts.RowHeight
		if h == 0 {
			h = DefaultRowHeight
		} else if !heights.Valid(h) {
			t.warn(&ConfigError{Err: ErrInvalidHeight, Value: h})
			h = DefaultRowHeight
		}
		estimate = heights.Fixed(h)
	}
	t.cache = heights.NewCache(estimate)

	if opts.Collation != "" {
		tag, err := language.Parse(opts.Collation)
		if err != nil {
			t.warn(&ConfigError{Err: ErrInvalidCollation, Value: opts.Collation})
		} else {
			t.sortOpts = append(t.sortOpts, WithCollation(tag))
		}
	}

	t.recompute()
	return t
}

// SetRows replaces the data set. Measured heights are kept only if the new
// rows carry exactly the same keys in the same order. Rows without a Key are
// keyed by index.
func (t *Table) SetRows(rows []Row) Frame {
	prev := t.keys
	t.rows = rows
	t.keys = make([]string, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, r := range rows {
		k := r.Key
		if k == "" {
			k = strconv.Itoa(i)
		}
		if seen[k] {
			t.log.Debug().Str("key", k).Int("index", i).Msg("duplicate row key, suffixing with index")
			k += "#" + strconv.Itoa(i)
		}
		seen[k] = true
		t.keys[i] = k
	}

	if !slices.Equal(prev, t.keys) && t.cache.Clear() {
		t.log.Debug().Int("rows", len(rows)).Msg("row keys changed, measured heights cleared")
	}
	t.resort()
	return t.recompute()
}

// Scroll sets the viewport's scroll offset over the page.
func (t *Table) Scroll(offset float64) Frame {
	t.scroll = offset
	return t.recompute()
}

// Resize sets the viewport height.
func (t *Table) Resize(viewportHeight float64) Frame {
	t.viewport = viewportHeight
	return t.recompute()
}

// SetScrollMargin sets the distance from the top of the page to the first row.
func (t *Table) SetScrollMargin(margin float64) Frame {
	t.margin = margin
	return t.recompute()
}

// SetContainerTop reports the measured top edge of the table container
// relative to the viewport. ok false means the geometry is not available yet;
// the container is then treated as sitting at offset zero until the next
// report.
func (t *Table) SetContainerTop(top float64, ok bool) Frame {
	t.containerTop = top
	t.geometry = geometryMeasured
	if !ok {
		t.geometry = geometryUnavailable
	}
	return t.recompute()
}

// ToggleSort steps the sort direction of a column. multi requests an additive
// toggle and is honoured only when Options.MultiSort is set.
func (t *Table) ToggleSort(columnID string, multi bool) Frame {
	col, ok := t.column(columnID)
	if !ok {
		t.warn(&ConfigError{Err: ErrUnknownColumn, Column: columnID})
		return t.frame
	}
	if !col.Sortable {
		t.warn(&ConfigError{Err: ErrNotSortable, Column: columnID})
		return t.frame
	}
	return t.applySort(t.spec.Toggle(columnID, t.opts.Cycle, multi && t.opts.MultiSort))
}

// SetSort replaces the sort spec. Keys naming unknown or unsortable columns
// and repeated columns are dropped with a warning.
func (t *Table) SetSort(spec SortSpec) Frame {
	return t.applySort(t.cleanSpec(spec))
}

// MeasureRow reports the rendered height of the row with the given key.
// A height that differs from the cached one shifts every later row.
func (t *Table) MeasureRow(key string, height float64) Frame {
	if !heights.Valid(height) {
		t.warn(&ConfigError{Err: ErrInvalidHeight, Column: key, Value: height})
		return t.frame
	}
	pos, changed := t.cache.Measure(key, height)
	if pos < 0 {
		t.log.Debug().Str("key", key).Msg("measurement for unknown row ignored")
		return t.frame
	}
	if !changed {
		return t.frame
	}
	return t.recompute()
}

// Frame returns the most recent Frame.
func (t *Table) Frame() Frame {
	return t.frame
}

// SortSpec returns a copy of the current sort spec.
func (t *Table) SortSpec() SortSpec {
	return append(SortSpec{}, t.spec...)
}

// Columns returns the table's columns.
func (t *Table) Columns() []Column {
	return t.columns
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns the row at a sorted position.
func (t *Table) Row(position int) (Row, bool) {
	if position < 0 || position >= len(t.order) {
		return Row{}, false
	}
	return t.rows[t.order[position]], true
}

// RowStart returns the offset of the row at a sorted position within the list.
func (t *Table) RowStart(position int) float64 {
	if position <= 0 || t.cache.Count() == 0 {
		return 0
	}
	if position >= t.cache.Count() {
		return t.cache.Total()
	}
	return t.cache.Start(position)
}

// TotalHeight returns the height of the full list.
func (t *Table) TotalHeight() float64 {
	return t.cache.Total()
}

func (t *Table) column(id string) (Column, bool) {
	for _, c := range t.columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) cleanSpec(spec SortSpec) SortSpec {
	keys := resolveKeys(t.columns, spec, &sortOptions{warn: t.warn})
	out := make(SortSpec, len(keys))
	for i, k := range keys {
		dir := Ascending
		if k.desc {
			dir = Descending
		}
		out[i] = SortKey{Column: k.column.ID, Direction: dir}
	}
	return out
}

func (t *Table) applySort(next SortSpec) Frame {
	if next.Equal(t.spec) {
		return t.frame
	}
	t.spec = next
	t.log.Debug().Str("sort", next.String()).Msg("sort changed")
	t.resort()
	if t.opts.OnSortChange != nil {
		t.opts.OnSortChange(t.SortSpec())
	}
	return t.recompute()
}

func (t *Table) resort() {
	t.order = Order(t.rows, t.columns, t.spec, t.sortOpts...)
	sorted := make([]string, len(t.order))
	for pos, idx := range t.order {
		sorted[pos] = t.keys[idx]
	}
	t.cache.Reset(sorted)
}

func (t *Table) recompute() Frame {
	top := t.margin - t.scroll
	if t.geometry != geometryDerived {
		top = t.containerTop
	}
	isSticky, stickyChanged := t.tracker.Update(top, t.geometry != geometryUnavailable)

	rng := window.Compute(window.Params{
		ScrollOffset:   t.scroll,
		ViewportHeight: t.viewport,
		ScrollMargin:   t.margin,
		Overscan:       t.overscan,
	}, t.cache)

	rows := make([]FrameRow, 0, rng.Len())
	visible := 0.0
	for pos := rng.Start; pos < rng.End; pos++ {
		idx := t.order[pos]
		key := t.cache.Key(pos)
		h := t.cache.HeightOf(pos)
		rows = append(rows, FrameRow{
			Position: pos,
			Index:    idx,
			Key:      key,
			Cells:    t.cells(t.rows[idx]),
			Start:    t.cache.Start(pos),
			Height:   h,
			Measured: t.cache.IsMeasured(key),
		})
		visible += h
	}

	t.frame = Frame{
		Header:         t.header(),
		Sticky:         isSticky,
		StickyChanged:  stickyChanged,
		LeadingSpacer:  rng.Offset,
		Rows:           rows,
		TrailingSpacer: max(0, rng.Total-rng.Offset-visible),
		Range:          rng,
		RowCount:       len(t.rows),
		Sort:           t.SortSpec(),
	}

	first := -1.0
	if len(rows) > 0 {
		first = rows[0].Start
	}
	t.log.Debug().
		Float64("first_start", first).
		Float64("scroll", t.scroll).
		Float64("margin", t.margin).
		Int("start", rng.Start).
		Int("end", rng.End).
		Bool("sticky", isSticky).
		Msg("frame computed")

	return t.frame
}

func (t *Table) header() []HeaderCell {
	cells := make([]HeaderCell, len(t.columns))
	for i, c := range t.columns {
		dir, priority := t.spec.Direction(c.ID)
		cells[i] = HeaderCell{
			ColumnID:  c.ID,
			Label:     c.Label(),
			Width:     c.Width,
			Align:     c.Align,
			Sortable:  c.Sortable,
			Direction: dir,
			Priority:  priority,
		}
	}
	return cells
}

func (t *Table) cells(r Row) []Cell {
	cells := make([]Cell, len(t.columns))
	for i, c := range t.columns {
		v := c.Value(r)
		text := FormatValue(v)
		if c.Format != nil {
			text = c.Format(v)
		}
		cells[i] = Cell{ColumnID: c.ID, Value: v, Text: text, Align: c.Align}
	}
	return cells
}

func (t *Table) warn(err error) {
	t.log.Warn().Err(err).Msg("table configuration")
	if t.opts.OnWarning != nil {
		t.opts.OnWarning(err)
	}
}
