package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecagl/tempo/internal/report"
	"github.com/ecagl/tempo/internal/track"
)

type reportMode int

const (
	reportWeekly reportMode = iota
	reportByProject
	reportByTag
)

var reportModeNames = []string{"Weekly", "By Project", "By Tag"}

type reportsModel struct {
	tracker *track.Tracker
	width   int
	height  int

	mode   reportMode
	points []report.Point
	chart  barchart.Model
}

func newReportsModel(t *track.Tracker) reportsModel {
	return reportsModel{
		tracker: t,
		chart:   barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if r.mode > 0 {
				r.mode--
			} else {
				r.mode = reportByTag
			}
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Tab):
			r.mode = (r.mode + 1) % 3
		}
	}
	return r, nil
}

// dataset recomputes the active chart's points from current state.
// The weekly chart always spans the current Monday–Sunday week; the
// project/tag breakdowns honor the full filter set.
func (r reportsModel) dataset(st track.State, now time.Time) []report.Point {
	switch r.mode {
	case reportWeekly:
		f := st.Filters
		f.TimeRange = track.RangeAll
		return report.ByDay(report.Filter(st.Entries, f, now), now)
	case reportByProject:
		return report.ByProject(report.Filter(st.Entries, st.Filters, now), st.Projects)
	default:
		return report.ByTag(report.Filter(st.Entries, st.Filters, now), st.Tags)
	}
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	st := r.tracker.State()
	r.points = r.dataset(st, time.Now())

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, p := range r.points {
		color := p.Color
		if color == "" {
			color = "#6C63FF"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		bars = append(bars, barchart.BarData{
			Label: p.Label,
			Values: []barchart.BarValue{
				{Name: p.Label, Value: p.Hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	var tabs []string
	for i, name := range reportModeNames {
		if reportMode(i) == r.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs,
	)

	if len(r.points) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header, "", mutedStyle.Render("  No data for this selection"),
			),
		)
	}

	chartView := r.chart.View()
	tableView := r.renderTotals()
	nav := mutedStyle.Render("  ←/→: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderTotals() string {
	var rows []string
	total := 0.0
	for _, p := range r.points {
		total += p.Hours
		dot := ""
		if p.Color != "" {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●") + " "
		}
		rows = append(rows, fmt.Sprintf("  %s%-20s %s", dot, p.Label, formatHours(p.Hours)))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %s", "Total", formatHours(total))))
	return strings.Join(rows, "\n")
}
