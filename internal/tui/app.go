package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecagl/tempo/internal/export"
	"github.com/ecagl/tempo/internal/track"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *track.Tracker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	logview   logModel
	reports   reportsModel
	settings  settingsModel

	help    help.Model
	spin    spinner.Model
	status  string
	isError bool

	loadOnStart bool
}

// NewApp builds the root model. loadOnStart triggers the backend fetch
// on Init; it is false when a persisted snapshot was restored, so a
// reload never clobbers local entries unasked.
func NewApp(t *track.Tracker, loadOnStart bool) App {
	h := help.New()
	h.ShowAll = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	applyTheme(t.State().DarkMode)

	return App{
		tracker:     t,
		activeView:  viewDashboard,
		dashboard:   newDashboardModel(t),
		logview:     newLogModel(t),
		reports:     newReportsModel(t),
		settings:    newSettingsModel(t),
		help:        h,
		spin:        sp,
		loadOnStart: loadOnStart,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spin.Tick}
	if a.loadOnStart {
		cmds = append(cmds, a.loadInitialData())
	}
	// A timer restored mid-run needs its display tick immediately.
	if a.tracker.ActiveTimer() != nil {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

// tickCmd drives the elapsed-time display. The chain is re-armed only
// while a timer is running, so it ends when the timer stops.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) loadInitialData() tea.Cmd {
	tracker := a.tracker
	return func() tea.Msg {
		if err := tracker.LoadInitialData(context.Background()); err != nil {
			return statusMsg{text: tracker.LastErr(), isError: true}
		}
		return dataLoadedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.logview.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.reports.buildChart()
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Drawer):
			a.tracker.ToggleDrawer()
			return a, nil
		case key.Matches(msg, keys.Dark):
			a.tracker.ToggleDarkMode()
			applyTheme(a.tracker.State().DarkMode)
			return a, nil
		case key.Matches(msg, keys.Reload):
			return a, a.loadInitialData()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewLog
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			a.reports.buildChart()
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			if a.activeView == viewReports {
				a.reports.buildChart()
			}
			return a, nil
		}

	case tickMsg:
		if a.tracker.ActiveTimer() != nil {
			return a, tickCmd()
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case timerStartedMsg:
		a.status = "Timer started"
		a.isError = false
		return a, tickCmd()

	case timerStoppedMsg:
		a.status = "Timer stopped"
		a.isError = false
		a.reports.buildChart()
		return a, nil

	case entrySavedMsg:
		a.status = "Entry saved"
		a.isError = false
		a.reports.buildChart()
		return a, nil

	case dataLoadedMsg:
		a.status = "Data loaded"
		a.isError = false
		a.reports.buildChart()
		return a, nil

	case reloadRequestMsg:
		return a, a.loadInitialData()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLog:
		a.logview, cmd = a.logview.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
		a.reports.buildChart()
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewLog:
		return a.logview.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLog:
		content = a.logview.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := titleStyle.Render("tempo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.tracker.Loading() {
		status = mutedStyle.Render(" " + a.spin.View() + "loading")
	} else if a.status != "" {
		if a.isError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Timer indicator in footer
	timerInfo := ""
	if at := a.tracker.ActiveTimer(); at != nil {
		timerInfo = successStyle.Render(" ● " + formatClock(time.Since(at.StartTime)))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	tracker := a.tracker
	return func() tea.Msg {
		st := tracker.State()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("tempo-export-%s.csv", dateStr))
			if err := export.ToCSV(st.Entries, st.Projects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("tempo-export-%s.json", dateStr))
			if err := export.ToJSON(st.Entries, st.Projects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
