package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorSelected  = lipgloss.Color("229")
	ColorSelectBg  = lipgloss.Color("57")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("240")
	ColorTitle     = lipgloss.Color("205")
	ColorScrollbar = lipgloss.Color("63")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	titleStyle     = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)
	subtitleStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	headerStyle    = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorSelectBg).Bold(true)
	ruleStyle      = lipgloss.NewStyle().Foreground(ColorBorder)
	statusStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	scrollbarStyle = lipgloss.NewStyle().Foreground(ColorScrollbar)
)
