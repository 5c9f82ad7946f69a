package tui

import "github.com/charmbracelet/lipgloss"

// palette is one theme's color set. Two palettes exist; the dark-mode
// flag in the tracker picks which one is active.
type palette struct {
	primary   lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errColor  lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	errColor:  lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
	highlight: lipgloss.Color("#7AA2F7"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#5548C8"),
	muted:     lipgloss.Color("#8A8A8A"),
	success:   lipgloss.Color("#1E8449"),
	warning:   lipgloss.Color("#B9770E"),
	errColor:  lipgloss.Color("#C0392B"),
	fg:        lipgloss.Color("#2C3E50"),
	subtle:    lipgloss.Color("#BDC3C7"),
	highlight: lipgloss.Color("#2E86C1"),
}

// Styles, rebuilt by applyTheme when dark mode toggles.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	timerStyle        lipgloss.Style
	timerRunningStyle lipgloss.Style
	titleStyle        lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
)

func init() {
	applyTheme(false)
}

func applyTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.primary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.success).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.fg)

	successStyle = lipgloss.NewStyle().
		Foreground(p.success)

	warningStyle = lipgloss.NewStyle().
		Foreground(p.warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.errColor)

	mutedStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(p.highlight)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(p.fg)
}
