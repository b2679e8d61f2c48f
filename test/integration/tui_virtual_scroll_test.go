package integration_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/tui"
)

func newModel(t *testing.T, n int) (*tui.Model, *table.Table) {
	t.Helper()
	ds := dataset.Generate(n, 11)
	opts := table.DefaultOptions()
	opts.RowHeight = 1
	tbl := table.New(ds.Columns, opts)
	tbl.SetRows(ds.Rows)

	model := tui.New(tbl, tui.Options{Title: "people", MaxColumnWidth: 16})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(*tui.Model), tbl
}

// TestVirtualScrolling_LargeDataset verifies only the window around the
// viewport is rendered for a large data set.
func TestVirtualScrolling_LargeDataset(t *testing.T) {
	model, _ := newModel(t, 100_000)

	frame := model.Frame()
	assert.Equal(t, 100_000, frame.RowCount)
	assert.LessOrEqual(t, frame.Range.Len(), 40+2*table.DefaultOverscan)

	view := model.View()
	assert.Contains(t, view, "First Name")
	assert.Contains(t, view, "100,000 rows")
	assert.Less(t, len(view), 50000, "view must not render every row")
}

// TestVirtualScrolling_NavigationKeys drives every navigation key and checks
// the window always covers the scroll position.
func TestVirtualScrolling_NavigationKeys(t *testing.T) {
	model, _ := newModel(t, 1000)

	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "down arrow", key: tea.KeyMsg{Type: tea.KeyDown}},
		{name: "up arrow", key: tea.KeyMsg{Type: tea.KeyUp}},
		{name: "j key", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}},
		{name: "k key", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}},
		{name: "page down", key: tea.KeyMsg{Type: tea.KeyPgDown}},
		{name: "page up", key: tea.KeyMsg{Type: tea.KeyPgUp}},
		{name: "end", key: tea.KeyMsg{Type: tea.KeyEnd}},
		{name: "home", key: tea.KeyMsg{Type: tea.KeyHome}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := model.Update(tt.key)
			model = updated.(*tui.Model)
			assert.Nil(t, cmd)

			frame := model.Frame()
			require.NotEmpty(t, frame.Rows)
			assert.LessOrEqual(t, frame.LeadingSpacer, float64(max(0, model.ScrollOffset())))
			assert.InDelta(t, frame.Total(),
				frame.LeadingSpacer+frame.TrailingSpacer+float64(len(frame.Rows)), 1e-9)
			assert.NotEmpty(t, model.View())
		})
	}
}

// TestVirtualScrolling_SortWhileScrolled verifies sorting keeps the scroll
// position and reorders the rendered window.
func TestVirtualScrolling_SortWhileScrolled(t *testing.T) {
	model, tbl := newModel(t, 5000)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	model = updated.(*tui.Model)
	scroll := model.ScrollOffset()

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	model = updated.(*tui.Model)

	assert.Equal(t, scroll, model.ScrollOffset())
	assert.Equal(t, "age:asc", tbl.SortSpec().String())

	frame := model.Frame()
	for i := 1; i < len(frame.Rows); i++ {
		prev := frame.Rows[i-1].Cells[2].Value.(int)
		cur := frame.Rows[i].Cells[2].Value.(int)
		assert.LessOrEqual(t, prev, cur)
	}
}
