package tui

import (
	"context"
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

const timeInputLayout = "2006-01-02 15:04"

// logModel renders the filtered entry log and owns the manual-entry
// and filter forms.
type logModel struct {
	tracker *track.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "entry", "filter"

	// Manual entry fields
	formProject *int64
	formTask    *string
	formTag     *string
	formStart   *string
	formEnd     *string

	// Filter fields; project 0 and tag "" mean no restriction
	filterProject *int64
	filterTag     *string
	filterRange   *string
}

func newLogModel(t *track.Tracker) logModel {
	project, task, tag, start, end := int64(0), "", "", "", ""
	fProject, fTag, fRange := int64(0), "", string(track.RangeToday)
	return logModel{
		tracker:       t,
		formProject:   &project,
		formTask:      &task,
		formTag:       &tag,
		formStart:     &start,
		formEnd:       &end,
		filterProject: &fProject,
		filterTag:     &fTag,
		filterRange:   &fRange,
	}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logModel) visibleEntries(st track.State) []track.TimeEntry {
	return report.Filter(st.Entries, st.Filters, time.Now())
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		st := l.tracker.State()
		entries := l.visibleEntries(st)

		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(entries)-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if l.cursor < len(entries) {
				l.tracker.DeleteEntry(entries[l.cursor].ID)
				if l.cursor > 0 {
					l.cursor--
				}
				return l, func() tea.Msg { return statusMsg{text: "Entry deleted"} }
			}
		case key.Matches(msg, keys.New):
			return l.showEntryForm(st)
		case key.Matches(msg, keys.Filter):
			return l.showFilterForm(st)
		}
	}
	return l, nil
}

func (l logModel) showEntryForm(st track.State) (logModel, tea.Cmd) {
	if len(st.Projects) == 0 {
		return l, func() tea.Msg {
			return statusMsg{text: "No projects yet. Press 4 to go to Settings and add one.", isError: true}
		}
	}

	now := time.Now()
	*l.formProject = st.Projects[0].ID
	*l.formTask = ""
	*l.formTag = ""
	if len(st.Tags) > 0 {
		*l.formTag = st.Tags[0]
	}
	*l.formStart = now.Add(-time.Hour).Format(timeInputLayout)
	*l.formEnd = now.Format(timeInputLayout)
	l.formType = "entry"

	validTime := func(s string) error {
		if _, err := time.ParseInLocation(timeInputLayout, s, time.Local); err != nil {
			return fmt.Errorf("use the format %s", timeInputLayout)
		}
		return nil
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(projectOptions(st.Projects)...).Value(l.formProject),
			huh.NewInput().Title("Task").Value(l.formTask),
			huh.NewSelect[string]().Title("Tag").Options(tagOptions(st.Tags)...).Value(l.formTag),
			huh.NewInput().Title("Start").Value(l.formStart).Validate(validTime),
			huh.NewInput().Title("End").Value(l.formEnd).Validate(validTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) showFilterForm(st track.State) (logModel, tea.Cmd) {
	*l.filterProject = 0
	if st.Filters.Project != nil {
		*l.filterProject = *st.Filters.Project
	}
	*l.filterTag = ""
	if st.Filters.Tag != nil {
		*l.filterTag = *st.Filters.Tag
	}
	*l.filterRange = string(st.Filters.TimeRange)
	l.formType = "filter"

	projectOpts := []huh.Option[int64]{huh.NewOption("All Projects", int64(0))}
	projectOpts = append(projectOpts, projectOptions(st.Projects)...)
	tagOpts := []huh.Option[string]{huh.NewOption("All Tags", "")}
	tagOpts = append(tagOpts, tagOptions(st.Tags)...)
	rangeOpts := []huh.Option[string]{
		huh.NewOption("Today", string(track.RangeToday)),
		huh.NewOption("This Week", string(track.RangeWeek)),
		huh.NewOption("This Month", string(track.RangeMonth)),
		huh.NewOption("All Time", string(track.RangeAll)),
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(projectOpts...).Value(l.filterProject),
			huh.NewSelect[string]().Title("Tag").Options(tagOpts...).Value(l.filterTag),
			huh.NewSelect[string]().Title("Time Range").Options(rangeOpts...).Value(l.filterRange),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		switch l.formType {
		case "entry":
			return l.submitEntry()
		case "filter":
			return l.submitFilters()
		}
	}

	return l, cmd
}

func (l logModel) submitEntry() (logModel, tea.Cmd) {
	task := strings.TrimSpace(*l.formTask)
	if task == "" {
		return l, nil
	}
	start, err := time.ParseInLocation(timeInputLayout, *l.formStart, time.Local)
	if err != nil {
		return l, nil
	}
	end, err := time.ParseInLocation(timeInputLayout, *l.formEnd, time.Local)
	if err != nil {
		return l, nil
	}

	draft := track.EntryDraft{
		ProjectID: *l.formProject,
		TaskName:  task,
		Tag:       *l.formTag,
		StartTime: start,
		EndTime:   end,
	}
	tracker := l.tracker
	return l, func() tea.Msg {
		entry, err := tracker.AddEntry(context.Background(), draft)
		if err != nil {
			return statusMsg{text: tracker.LastErr(), isError: true}
		}
		return entrySavedMsg{entry: entry}
	}
}

func (l logModel) submitFilters() (logModel, tea.Cmd) {
	patch := track.FilterPatch{TimeRange: track.TimeRange(*l.filterRange)}
	if *l.filterProject == 0 {
		patch.ClearProject = true
	} else {
		patch.Project = l.filterProject
	}
	if *l.filterTag == "" {
		patch.ClearTag = true
	} else {
		patch.Tag = l.filterTag
	}
	if err := l.tracker.UpdateFilters(patch); err != nil {
		return l, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	l.cursor = 0
	return l, func() tea.Msg { return statusMsg{text: "Filters updated"} }
}

func (l logModel) view() string {
	w := l.width - 4

	if l.formActive && l.form != nil {
		title := titleStyle.Render("Manual Entry")
		if l.formType == "filter" {
			title = titleStyle.Render("Filter Time Entries")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}

	st := l.tracker.State()
	entries := l.visibleEntries(st)

	title := titleStyle.Render("Time Entries")
	filterLabel := mutedStyle.Render(filterSummary(st))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", filterLabel)

	if l.tracker.Loading() {
		content := lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("  Loading..."))
		return panelStyle.Width(w).Render(content)
	}

	if len(entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("  No time entries found"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-16s %-18s %-20s %-12s %10s", "Start", "Project", "Task", "Tag", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", minInt(w-6, 78))))

	for i, e := range entries {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(report.ProjectColor(st.Projects, e.ProjectID))).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-16s %s %-16s %-20s %-12s %10s",
			cursor,
			e.StartTime.Local().Format("Jan 02 15:04"),
			colorDot,
			report.ProjectName(st.Projects, e.ProjectID),
			truncate(e.TaskName, 20),
			e.Tag,
			formatMinutes(report.Minutes(e)),
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: manual entry  f: filters  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func filterSummary(st track.State) string {
	parts := []string{string(st.Filters.TimeRange)}
	if st.Filters.Project != nil {
		parts = append(parts, report.ProjectName(st.Projects, *st.Filters.Project))
	}
	if st.Filters.Tag != nil {
		parts = append(parts, "#"+*st.Filters.Tag)
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
