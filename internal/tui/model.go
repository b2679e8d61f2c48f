package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vtable/internal/table"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// headerLines is the label line plus the rule below it.
	headerLines = 2
	// maxMeasurePasses bounds the measure/recompute loop per update.
	maxMeasurePasses = 3
	wheelStep        = 3
	minBodyHeight    = 1
)

// Options configures a Model.
type Options struct {
	// Title and Subtitle form the block above the table that scrolls away.
	Title    string
	Subtitle string
	// Wrap lets long cell text wrap onto several lines instead of truncating.
	Wrap           bool
	MaxColumnWidth int
	Logger         zerolog.Logger
}

// Model hosts a table.Table in a Bubble Tea program. The page is the title
// block, the table header and the table body; the terminal is the viewport
// scrolling over it. Once the title scrolls away the header is pinned.
//
//nolint:recvcheck // Bubble Tea calls Init/Update/View on the pointer.
type Model struct {
	tbl    *table.Table
	title  []string
	keys   keyMap
	help   help.Model
	widths []int

	wrap     bool
	showHelp bool
	quitting bool

	width    int
	height   int
	scroll   int
	selected int

	frame table.Frame
	lines map[string][]string

	printer *message.Printer
	logger  zerolog.Logger
}

// New creates a model around tbl. The table's scroll margin is set to the
// height of the title block and header.
func New(tbl *table.Table, opts Options) *Model {
	title := []string{opts.Title}
	if opts.Subtitle != "" {
		title = append(title, opts.Subtitle)
	}
	title = append(title, "")

	m := &Model{
		tbl:     tbl,
		title:   title,
		keys:    defaultKeys,
		help:    help.New(),
		widths:  ColumnWidths(tbl, opts.MaxColumnWidth),
		wrap:    opts.Wrap,
		width:   defaultWidth,
		height:  defaultHeight,
		lines:   make(map[string][]string),
		printer: message.NewPrinter(language.English),
		logger:  opts.Logger.With().Str("component", "tui").Logger(),
	}
	tbl.SetScrollMargin(float64(len(m.title) + headerLines))
	m.sync()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, mouse and resize messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug().Int("width", m.width).Int("height", m.height).Msg("resize")
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		return m, nil
	}
	m.sync()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scroll--
	case key.Matches(msg, m.keys.Down):
		m.scroll++
	case key.Matches(msg, m.keys.PageUp):
		m.scroll -= m.bodyHeight()
	case key.Matches(msg, m.keys.PageDown):
		m.scroll += m.bodyHeight()
	case key.Matches(msg, m.keys.Home):
		m.scroll = 0
	case key.Matches(msg, m.keys.End):
		m.scroll = m.maxScroll()
	case key.Matches(msg, m.keys.Left):
		m.selected = max(0, m.selected-1)
	case key.Matches(msg, m.keys.Right):
		m.selected = min(len(m.widths)-1, m.selected+1)
	case key.Matches(msg, m.keys.Sort):
		m.toggleSort(m.selected, false)
	case key.Matches(msg, m.keys.MultiSort):
		m.toggleSort(m.selected, true)
	case key.Matches(msg, m.keys.SortNth):
		m.toggleSort(int(msg.Runes[0]-'1'), false)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= wheelStep
	case tea.MouseButtonWheelDown:
		m.scroll += wheelStep
	case tea.MouseButtonLeft:
		if msg.Y == m.headerScreenTop() {
			if col := m.columnAt(msg.X); col >= 0 {
				m.selected = col
				m.toggleSort(col, msg.Shift)
			}
		}
	}
}

func (m *Model) toggleSort(col int, multi bool) {
	cols := m.tbl.Columns()
	if col < 0 || col >= len(cols) {
		return
	}
	m.selected = col
	m.tbl.ToggleSort(cols[col].ID, multi)
	m.logger.Debug().Str("column", cols[col].ID).Str("sort", m.tbl.SortSpec().String()).Msg("sort toggled")
}

// sync pushes the current geometry into the table, then measures the
// rendered rows and feeds their heights back until the layout settles.
func (m *Model) sync() {
	m.lines = make(map[string][]string, len(m.frame.Rows))
	m.tbl.Resize(float64(m.bodyHeight()))
	m.scroll = clampInt(m.scroll, 0, m.maxScroll())
	m.push()

	for range maxMeasurePasses {
		if !m.measure() {
			return
		}
		m.scroll = clampInt(m.scroll, 0, m.maxScroll())
		m.push()
	}
	for _, r := range m.frame.Rows {
		m.linesFor(r)
	}
}

func (m *Model) push() {
	m.tbl.Scroll(float64(m.scroll))
	m.frame = m.tbl.SetContainerTop(float64(len(m.title)-m.scroll), true)
}

// measure renders the frame rows and reports whether any height changed.
func (m *Model) measure() bool {
	changed := false
	for _, r := range m.frame.Rows {
		h := float64(len(m.linesFor(r)))
		if !r.Measured || h != r.Height {
			m.tbl.MeasureRow(r.Key, h)
			changed = changed || h != r.Height
		}
	}
	return changed
}

func (m *Model) linesFor(r table.FrameRow) []string {
	lines, ok := m.lines[r.Key]
	if !ok {
		lines = rowLines(r, m.widths, m.wrap)
		m.lines[r.Key] = lines
	}
	return lines
}

func (m *Model) footer() string {
	status := m.printer.Sprintf("window %d-%d of %d rows", m.frame.Range.Start+1, m.frame.Range.End, m.frame.RowCount)
	if m.frame.RowCount == 0 {
		status = "no rows"
	}
	if len(m.frame.Sort) > 0 {
		status += " · sort " + m.frame.Sort.String()
	}
	return statusStyle.Render(clipLine(status, m.width)) + "\n" + m.help.View(m.keys)
}

func (m *Model) bodyHeight() int {
	return max(minBodyHeight, m.height-strings.Count(m.footer(), "\n")-1)
}

func (m *Model) pageHeight() int {
	return len(m.title) + headerLines + int(math.Ceil(m.tbl.TotalHeight()))
}

func (m *Model) maxScroll() int {
	return max(0, m.pageHeight()-m.bodyHeight())
}

func (m *Model) headerScreenTop() int {
	if m.frame.Sticky {
		return 0
	}
	return len(m.title) - m.scroll
}

// columnAt maps a screen x coordinate to a column index, -1 for gaps.
func (m *Model) columnAt(x int) int {
	left := 0
	for i, w := range m.widths {
		if x >= left && x < left+w {
			return i
		}
		left += w + len(cellGap)
	}
	return -1
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.bodyHeight()
	limit := max(1, m.width-1)
	header := m.headerView(limit)
	bodyTop := len(m.title) + headerLines

	pageLines := make(map[int]string)
	for _, r := range m.frame.Rows {
		start := bodyTop + int(math.Round(r.Start))
		for j, l := range m.lines[r.Key] {
			pageLines[start+j] = l
		}
	}

	out := make([]string, body)
	for s := range out {
		p := m.scroll + s
		switch {
		case m.frame.Sticky && s < headerLines:
			out[s] = header[s]
		case p < len(m.title):
			out[s] = m.titleLine(p, limit)
		case p < bodyTop:
			out[s] = header[p-len(m.title)]
		default:
			out[s] = clipLine(pageLines[p], limit)
		}
		out[s] = padRight(out[s], limit) + m.scrollbar(s, body)
	}
	return strings.Join(out, "\n") + "\n" + m.footer()
}

func (m *Model) titleLine(i, limit int) string {
	text := clipLine(m.title[i], limit)
	switch {
	case text == "":
		return ""
	case i == 0:
		return titleStyle.Render(text)
	default:
		return subtitleStyle.Render(text)
	}
}

func (m *Model) headerView(limit int) []string {
	labels := headerLabels(m.frame.Header, m.widths, len(m.frame.Sort) > 1)
	line := clipCells(labels, limit, func(i int, s string) string {
		if i == m.selected {
			return selectedStyle.Render(s)
		}
		return headerStyle.Render(s)
	})
	width := min(limit, runewidth.StringWidth(strings.Join(labels, cellGap)))
	return []string{line, ruleStyle.Render(strings.Repeat("─", width))}
}

func (m *Model) scrollbar(line, body int) string {
	page := m.pageHeight()
	if page <= body {
		return " "
	}
	thumb := max(1, body*body/page)
	top := 0
	if ms := m.maxScroll(); ms > 0 {
		top = m.scroll * (body - thumb) / ms
	}
	if line >= top && line < top+thumb {
		return scrollbarStyle.Render("┃")
	}
	return scrollbarStyle.Render("│")
}

// Frame returns the frame currently displayed.
func (m *Model) Frame() table.Frame {
	return m.frame
}

// ScrollOffset returns the page scroll position in lines.
func (m *Model) ScrollOffset() int {
	return m.scroll
}

// SelectedColumn returns the index of the highlighted column.
func (m *Model) SelectedColumn() int {
	return m.selected
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
