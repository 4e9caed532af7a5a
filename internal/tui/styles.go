package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Work is hot, rest is cool.
var (
	colorPrimary   = lipgloss.Color("#F2A93B")
	colorSecondary = lipgloss.Color("#4FB3BF")
	colorWork      = lipgloss.Color("#F25C54")
	colorRest      = lipgloss.Color("#43AA8B")
	colorPaused    = lipgloss.Color("#F7B267")
	colorDone      = lipgloss.Color("#90BE6D")
	colorError     = lipgloss.Color("#D62828")
	colorFg        = lipgloss.Color("#E9E6DF")
	colorMuted     = lipgloss.Color("#7A7A7A")
	colorBorder    = lipgloss.Color("#3D405B")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	panelStyle       = boxStyle.BorderForeground(colorBorder)
	activePanelStyle = boxStyle.BorderForeground(colorPrimary)

	tabStyle         = lipgloss.NewStyle().Padding(0, 2)
	inactiveTabStyle = tabStyle.Foreground(colorMuted)
	activeTabStyle   = tabStyle.
				Bold(true).
				Foreground(colorPrimary).
				Border(lipgloss.ThickBorder(), false, false, true, false).
				BorderForeground(colorPrimary)

	// The clock text itself; each status only swaps the color.
	clockBaseStyle   = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	clockIdleStyle   = clockBaseStyle.Foreground(colorFg)
	clockWorkStyle   = clockBaseStyle.Foreground(colorWork)
	clockRestStyle   = clockBaseStyle.Foreground(colorRest)
	clockPausedStyle = clockBaseStyle.Foreground(colorPaused).Faint(true)
	clockDoneStyle   = clockBaseStyle.Foreground(colorDone)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)
	accentStyle    = lipgloss.NewStyle().Foreground(colorWork)
	successStyle   = lipgloss.NewStyle().Foreground(colorRest)
	warningStyle   = lipgloss.NewStyle().Foreground(colorPaused)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = mutedStyle.Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)
