package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecagl/tempo/internal/report"
	"github.com/ecagl/tempo/internal/track"
)

type dashboardModel struct {
	tracker *track.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formProject *int64
	formTask    *string
	formTag     *string
}

func newDashboardModel(t *track.Tracker) dashboardModel {
	project, task, tag := int64(0), "", ""
	return dashboardModel{
		tracker:     t,
		formProject: &project,
		formTask:    &task,
		formTag:     &tag,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if d.tracker.ActiveTimer() != nil {
				return d, func() tea.Msg {
					return statusMsg{text: "A timer is already running. Press x to stop it first.", isError: true}
				}
			}
			return d.showStartForm()

		case key.Matches(msg, keys.Stop):
			entry := d.tracker.StopTimer()
			if entry == nil {
				return d, nil
			}
			return d, func() tea.Msg { return timerStoppedMsg{entry: entry} }
		}
	}
	return d, nil
}

func (d dashboardModel) showStartForm() (dashboardModel, tea.Cmd) {
	st := d.tracker.State()
	if len(st.Projects) == 0 {
		return d, func() tea.Msg {
			return statusMsg{text: "No projects yet. Press 4 to go to Settings and add one.", isError: true}
		}
	}

	*d.formProject = st.Projects[0].ID
	*d.formTask = ""
	*d.formTag = ""
	if len(st.Tags) > 0 {
		*d.formTag = st.Tags[0]
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(projectOptions(st.Projects)...).Value(d.formProject),
			huh.NewInput().Title("Task").Value(d.formTask),
			huh.NewSelect[string]().Title("Tag").Options(tagOptions(st.Tags)...).Value(d.formTag),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if strings.TrimSpace(*d.formTask) == "" {
			return d, nil
		}
		if err := d.tracker.StartTimer(*d.formProject, strings.TrimSpace(*d.formTask), *d.formTag); err != nil {
			return d, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return d, func() tea.Msg { return timerStartedMsg{} }
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	st := d.tracker.State()
	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Start Timer")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return panelStyle.Width(contentWidth).Render(content)
	}

	sidebarWidth := 0
	if st.DrawerOpen {
		sidebarWidth = 24
	}
	mainWidth := contentWidth - sidebarWidth

	timerPanel := d.renderTimerPanel(st, mainWidth)
	summaryPanel := d.renderTodayPanel(st, mainWidth)
	recentPanel := d.renderRecentPanel(st, mainWidth)

	main := lipgloss.JoinVertical(lipgloss.Left, timerPanel, summaryPanel, recentPanel)

	if !st.DrawerOpen {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, d.renderDrawer(st, sidebarWidth), main)
}

func (d dashboardModel) renderTimerPanel(st track.State, w int) string {
	if at := st.ActiveTimer; at != nil {
		elapsed := time.Since(at.StartTime)
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatClock(elapsed))
		indicator := successStyle.Render("●  RUNNING")

		taskLine := highlightStyle.Render(report.ProjectName(st.Projects, at.ProjectID)) +
			mutedStyle.Render(" / "+at.TaskName)
		if at.Tag != "" {
			taskLine += mutedStyle.Render("  #"+at.Tag)
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			taskLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start tracking")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(st track.State, w int) string {
	today := report.Filter(st.Entries, track.Filters{TimeRange: track.RangeToday}, time.Now())
	total := report.Hours(report.TotalMinutes(today))

	title := titleStyle.Render("Today")
	header := fmt.Sprintf("%s  %s", title, highlightStyle.Render(formatHours(total)))

	byProject := report.ByProject(today, st.Projects)
	if len(byProject) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No entries today"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	for _, p := range byProject {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-20s %s", colorDot, p.Label, formatHours(p.Hours)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(st track.State, w int) string {
	title := titleStyle.Render("Recent Entries")
	if len(st.Entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	limit := len(st.Entries)
	if limit > 5 {
		limit = 5
	}
	for _, e := range st.Entries[:limit] {
		pName := report.ProjectName(st.Projects, e.ProjectID)
		startStr := e.StartTime.Local().Format("Jan 02 15:04")
		dur := formatMinutes(report.Minutes(e))
		row := fmt.Sprintf("  ✓ %s  %-16s %-16s %s", startStr, pName, e.TaskName, dur)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderDrawer(st track.State, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Projects"))
	for _, p := range st.Projects {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		rows = append(rows, fmt.Sprintf(" %s %s", colorDot, p.Name))
	}
	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Tags"))
	for _, tag := range st.Tags {
		rows = append(rows, mutedStyle.Render(" #"+tag))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func projectOptions(projects []track.Project) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(projects))
	for i, p := range projects {
		opts[i] = huh.NewOption(p.Name, p.ID)
	}
	return opts
}

func tagOptions(tags []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(tags))
	for i, tag := range tags {
		opts[i] = huh.NewOption(tag, tag)
	}
	return opts
}
