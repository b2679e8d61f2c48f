package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/vtable/internal/table"
)

const (
	cellGap = "  "
	// widthSample bounds how many rows are scanned when sizing columns.
	widthSample = 500
	// indicatorWidth is the display width reserved for a sort indicator.
	indicatorWidth = 3
	ellipsis       = "…"
)

// ColumnWidths sizes each column from its configured width, or from its
// header and the first rows of tbl. maxWidth caps the result when positive.
func ColumnWidths(tbl *table.Table, maxWidth int) []int {
	cols := tbl.Columns()
	widths := make([]int, len(cols))
	n := min(tbl.RowCount(), widthSample)

	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = runewidth.StringWidth(c.Label())
			if c.Sortable {
				w += indicatorWidth
			}
			for pos := range n {
				r, _ := tbl.Row(pos)
				w = max(w, runewidth.StringWidth(c.Text(r)))
			}
		}
		if maxWidth > 0 && w > maxWidth {
			w = maxWidth
		}
		widths[i] = max(w, 1)
	}
	return widths
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int, align table.Alignment) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	if align == table.AlignRight {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

// wrapCell breaks s into lines no wider than width.
func wrapCell(s string, width int, align table.Alignment) []string {
	style := lipgloss.NewStyle().Width(width)
	if align == table.AlignRight {
		style = style.Align(lipgloss.Right)
	}
	lines := strings.Split(style.Render(s), "\n")
	for i, l := range lines {
		lines[i] = fit(l, width, align)
	}
	return lines
}

// rowLines renders a frame row into one or more text lines. In wrap mode
// a row is as tall as its tallest cell.
func rowLines(row table.FrameRow, widths []int, wrap bool) []string {
	if !wrap {
		parts := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			parts[i] = fit(c.Text, widths[i], c.Align)
		}
		return []string{strings.Join(parts, cellGap)}
	}

	cells := make([][]string, len(row.Cells))
	height := 1
	for i, c := range row.Cells {
		cells[i] = wrapCell(c.Text, widths[i], c.Align)
		height = max(height, len(cells[i]))
	}

	lines := make([]string, height)
	parts := make([]string, len(cells))
	for ln := range lines {
		for i, cell := range cells {
			if ln < len(cell) {
				parts[i] = cell[ln]
			} else {
				parts[i] = strings.Repeat(" ", widths[i])
			}
		}
		lines[ln] = strings.Join(parts, cellGap)
	}
	return lines
}

// headerLabels returns the fitted header label of each column, with sort
// indicators and multi-sort priorities.
func headerLabels(header []table.HeaderCell, widths []int, multi bool) []string {
	out := make([]string, len(header))
	for i, h := range header {
		label := h.Label + h.Indicator()
		if multi && h.Priority > 0 {
			label += string(rune('0' + min(h.Priority, 9)))
		}
		out[i] = fit(label, widths[i], h.Align)
	}
	return out
}

// clipCells joins fitted cells and stops at limit display cells. style,
// when non-nil, decorates each visible cell after clipping.
func clipCells(cells []string, limit int, style func(i int, s string) string) string {
	var sb strings.Builder
	used := 0
	for i, c := range cells {
		if i > 0 {
			if used+len(cellGap) >= limit {
				break
			}
			sb.WriteString(cellGap)
			used += len(cellGap)
		}
		w := runewidth.StringWidth(c)
		if used+w > limit {
			c = runewidth.Truncate(c, limit-used, "")
			w = runewidth.StringWidth(c)
		}
		if style != nil {
			c = style(i, c)
		}
		sb.WriteString(c)
		used += w
		if used >= limit {
			break
		}
	}
	return sb.String()
}

func clipLine(s string, limit int) string {
	if runewidth.StringWidth(s) > limit {
		return runewidth.Truncate(s, limit, "")
	}
	return s
}

// RenderFrame renders a frame as plain text: header, rule and the visible
// rows, without styling or spacers.
func RenderFrame(f table.Frame, widths []int, wrap bool) string {
	labels := headerLabels(f.Header, widths, len(f.Sort) > 1)
	head := strings.Join(labels, cellGap)

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(head, " "))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("─", runewidth.StringWidth(head)))
	sb.WriteByte('\n')
	for _, r := range f.Rows {
		for _, l := range rowLines(r, widths, wrap) {
			sb.WriteString(strings.TrimRight(l, " "))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
