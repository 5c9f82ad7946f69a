package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecagl/tempo/internal/track"
)

var projectColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#6C63FF", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6"}

type settingsAction int

const (
	actionDarkMode settingsAction = iota
	actionDrawer
	actionNewProject
	actionNewTag
	actionReload
)

var settingsActions = []string{
	"Toggle dark mode",
	"Toggle sidebar",
	"New project",
	"New tag",
	"Reload from backend",
}

type settingsModel struct {
	tracker *track.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "project", "tag"

	formName  *string
	formColor *string
	formTag   *string
}

func newSettingsModel(t *track.Tracker) settingsModel {
	name, color, tag := "", projectColors[0], ""
	return settingsModel{
		tracker:   t,
		formName:  &name,
		formColor: &color,
		formTag:   &tag,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(settingsActions)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return s.runAction(settingsAction(s.cursor))
		}
	}
	return s, nil
}

func (s settingsModel) runAction(a settingsAction) (settingsModel, tea.Cmd) {
	switch a {
	case actionDarkMode:
		s.tracker.ToggleDarkMode()
		applyTheme(s.tracker.State().DarkMode)
		return s, func() tea.Msg { return statusMsg{text: "Theme switched"} }
	case actionDrawer:
		s.tracker.ToggleDrawer()
		return s, nil
	case actionNewProject:
		return s.showProjectForm()
	case actionNewTag:
		return s.showTagForm()
	case actionReload:
		return s, func() tea.Msg { return reloadRequestMsg{} }
	}
	return s, nil
}

// reloadRequestMsg asks the app to re-fetch from the backend.
type reloadRequestMsg struct{}

func (s settingsModel) showProjectForm() (settingsModel, tea.Cmd) {
	*s.formName = ""
	*s.formColor = projectColors[0]
	s.formType = "project"

	colorOptions := make([]huh.Option[string], len(projectColors))
	for i, c := range projectColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(s.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(s.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showTagForm() (settingsModel, tea.Cmd) {
	*s.formTag = ""
	s.formType = "tag"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Tag").Value(s.formTag),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "project":
			if name := strings.TrimSpace(*s.formName); name != "" {
				p := s.tracker.AddProject(name, *s.formColor)
				return s, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Project %q added", p.Name)}
				}
			}
		case "tag":
			if tag := strings.TrimSpace(*s.formTag); tag != "" {
				s.tracker.AddTag(tag)
				return s, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Tag %q added", tag)}
				}
			}
		}
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("New Project")
		if s.formType == "tag" {
			title = titleStyle.Render("New Tag")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View())
		return panelStyle.Width(w).Render(content)
	}

	st := s.tracker.State()

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for i, name := range settingsActions {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := name
		switch settingsAction(i) {
		case actionDarkMode:
			label = fmt.Sprintf("%s  %s", name, onOff(st.DarkMode))
		case actionDrawer:
			label = fmt.Sprintf("%s  %s", name, onOff(st.DrawerOpen))
		}
		rows = append(rows, style.Render(cursor+label))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Projects"))
	var chips []string
	for _, p := range st.Projects {
		chip := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("● " + p.Name)
		chips = append(chips, chip)
	}
	rows = append(rows, "  "+strings.Join(chips, "  "))

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Tags"))
	rows = append(rows, mutedStyle.Render("  #"+strings.Join(st.Tags, "  #")))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func onOff(v bool) string {
	if v {
		return successStyle.Render("on")
	}
	return mutedStyle.Render("off")
}
