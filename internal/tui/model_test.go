package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/tui"
)

func newPeopleModel(t *testing.T, n int, wrap bool) (*tui.Model, *table.Table) {
	t.Helper()
	ds := dataset.Generate(n, 42)
	opts := table.DefaultOptions()
	opts.RowHeight = 1
	opts.Overscan = 5
	tbl := table.New(ds.Columns, opts)
	tbl.SetRows(ds.Rows)

	m := tui.New(tbl, tui.Options{Title: "People", Subtitle: "sample", Wrap: wrap, MaxColumnWidth: 12})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, tbl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitialFrame(t *testing.T) {
	m, _ := newPeopleModel(t, 1000, false)

	frame := m.Frame()
	assert.Equal(t, 0, frame.Range.Start)
	assert.False(t, frame.Sticky)
	assert.Equal(t, 1000, frame.RowCount)
	require.NotEmpty(t, frame.Rows)

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Contains(t, lines[0], "People")
	assert.Contains(t, view, "First Name")
	assert.Contains(t, view, "window 1-")
	assert.Contains(t, view, "1,000 rows")
	assert.Nil(t, m.Init())
}

func TestModel_ScrollPinsHeader(t *testing.T) {
	m, _ := newPeopleModel(t, 1000, false)

	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, 10, m.ScrollOffset())
	assert.True(t, m.Frame().Sticky)
	first := strings.Split(m.View(), "\n")[0]
	assert.Contains(t, first, "First Name", "header is pinned to the first line")

	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.ScrollOffset())
	assert.False(t, m.Frame().Sticky)
}

func TestModel_EndShowsLastRow(t *testing.T) {
	m, tbl := newPeopleModel(t, 500, false)

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})

	frame := m.Frame()
	assert.Equal(t, 500, frame.Range.End)
	last, ok := tbl.Row(499)
	require.True(t, ok)
	assert.Equal(t, last.Key, frame.Rows[len(frame.Rows)-1].Key)

	before := m.ScrollOffset()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, before, m.ScrollOffset(), "scroll is clamped at the bottom")
}

func TestModel_SortKeys(t *testing.T) {
	m, tbl := newPeopleModel(t, 200, false)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.SelectedColumn())

	m.Update(runes("s"))
	assert.Equal(t, "age:asc", tbl.SortSpec().String())
	assert.Contains(t, m.View(), "Age 🔼")

	m.Update(runes("s"))
	assert.Equal(t, "age:desc", tbl.SortSpec().String())

	m.Update(runes("4"))
	assert.Equal(t, "visits:asc", tbl.SortSpec().String())
	assert.Equal(t, 3, m.SelectedColumn())

	m.Update(runes("9"))
	assert.Equal(t, "visits:asc", tbl.SortSpec().String(), "no ninth column")
}

func TestModel_MouseWheelAndHeaderClick(t *testing.T) {
	m, tbl := newPeopleModel(t, 300, false)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.ScrollOffset())

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.ScrollOffset())

	// Header label line sits below the three title lines.
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, X: 1, Y: 3})
	assert.Equal(t, "firstName:asc", tbl.SortSpec().String())
}

func TestModel_WrapMeasuresTallRows(t *testing.T) {
	cols := []table.Column{
		{ID: "id", Header: "ID", Sortable: true},
		{ID: "text", Header: "Text", Width: 10},
	}
	opts := table.DefaultOptions()
	opts.RowHeight = 1
	tbl := table.New(cols, opts)
	tbl.SetRows([]table.Row{
		{Key: "a", Fields: map[string]any{"id": 1, "text": "short"}},
		{Key: "b", Fields: map[string]any{"id": 2, "text": "a much longer piece of text that wraps"}},
		{Key: "c", Fields: map[string]any{"id": 3, "text": "tiny"}},
	})

	m := tui.New(tbl, tui.Options{Title: "Wrap", Wrap: true})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	frame := m.Frame()
	require.Len(t, frame.Rows, 3)
	assert.True(t, frame.Rows[1].Measured)
	assert.Greater(t, frame.Rows[1].Height, 1.0)
	assert.InDelta(t, 1+frame.Rows[1].Height, frame.Rows[2].Start, 1e-9)
	assert.Greater(t, tbl.TotalHeight(), 3.0)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newPeopleModel(t, 10, false)

	short := m.View()
	m.Update(runes("?"))
	assert.Contains(t, m.View(), "page down")
	assert.NotContains(t, short, "page down")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_EmptyTable(t *testing.T) {
	tbl := table.New(dataset.PersonColumns(), table.DefaultOptions())
	m := tui.New(tbl, tui.Options{Title: "Empty"})

	assert.Empty(t, m.Frame().Rows)
	assert.Contains(t, m.View(), "no rows")
}
