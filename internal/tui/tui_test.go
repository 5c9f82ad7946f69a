package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecagl/tempo/internal/api"
	"github.com/ecagl/tempo/internal/track"
)

type nopSnap struct{}

func (nopSnap) SaveSnapshot(track.State) error { return nil }

func newTestTracker(t *testing.T) *track.Tracker {
	t.Helper()
	return track.New(api.NewMock(time.Millisecond), nopSnap{})
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Minute, "00:01:00"},
		{time.Hour + 23*time.Minute + 4*time.Second, "01:23:04"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.d); got != tc.want {
			t.Errorf("formatClock(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatMinutes(135); got != "2h 15m" {
		t.Errorf("formatMinutes = %q", got)
	}
	if got := formatHours(1.5); got != "1.5h" {
		t.Errorf("formatHours = %q", got)
	}
	if got := formatHours(0); got != "0.0h" {
		t.Errorf("formatHours zero = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate should pass short strings through, got %q", got)
	}
	got := truncate("a very long task name here", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q", got)
	}
}

func TestFilterSummary(t *testing.T) {
	project := int64(1)
	tag := "Design"
	st := track.State{
		Projects: []track.Project{{ID: 1, Name: "Website Redesign", Color: "#FF6B6B"}},
		Filters:  track.Filters{Project: &project, Tag: &tag, TimeRange: track.RangeWeek},
	}

	got := filterSummary(st)
	for _, want := range []string{"week", "Website Redesign", "#Design"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}

	// Unset filters show only the range.
	got = filterSummary(track.State{Filters: track.Filters{TimeRange: track.RangeToday}})
	if got != "today" {
		t.Errorf("bare summary = %q", got)
	}
}

// ============================================================
// Key map
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should not be empty")
	}
	for i, col := range keys.FullHelp() {
		if len(col) == 0 {
			t.Fatalf("full help column %d is empty", i)
		}
	}
}

// ============================================================
// Report datasets
// ============================================================

func TestReportsDataset(t *testing.T) {
	tracker := newTestTracker(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	project := int64(1)

	tracker.Restore(track.State{
		Entries: []track.TimeEntry{
			{ID: 1, ProjectID: 1, Tag: "Design", StartTime: monday, EndTime: monday.Add(2 * time.Hour), Date: track.DateOf(monday)},
			{ID: 2, ProjectID: 2, Tag: "Development", StartTime: now, EndTime: now.Add(time.Hour), Date: track.DateOf(now)},
		},
		Projects: []track.Project{
			{ID: 1, Name: "Alpha", Color: "#FF6B6B"},
			{ID: 2, Name: "Beta", Color: "#4ECDC4"},
		},
		Tags:    []string{"Design", "Development"},
		Filters: track.Filters{Project: &project, TimeRange: track.RangeToday},
	})

	r := newReportsModel(tracker)
	st := tracker.State()

	// Weekly mode spans the whole week regardless of the time-range
	// filter, but still honors the project filter.
	r.mode = reportWeekly
	points := r.dataset(st, now)
	if len(points) != 7 {
		t.Fatalf("weekly dataset should have 7 points, got %d", len(points))
	}
	if points[0].Hours != 2.0 {
		t.Fatalf("Monday = %v, want 2.0", points[0].Hours)
	}
	if points[5].Hours != 0 {
		t.Fatalf("Saturday entry belongs to a filtered-out project, got %v", points[5].Hours)
	}

	// Project mode honors the full filter set; only today's entry for
	// project 1 would survive, and there is none.
	r.mode = reportByProject
	if points := r.dataset(st, now); len(points) != 0 {
		t.Fatalf("expected no project points under filters, got %+v", points)
	}

	// Without filters both projects show up.
	tracker.ResetFilters()
	tracker.UpdateFilters(track.FilterPatch{TimeRange: track.RangeAll})
	st = tracker.State()
	points = r.dataset(st, now)
	if len(points) != 2 {
		t.Fatalf("expected 2 project points, got %+v", points)
	}

	r.mode = reportByTag
	points = r.dataset(st, now)
	if len(points) != 2 || points[0].Label != "Design" {
		t.Fatalf("tag dataset wrong: %+v", points)
	}
}

// ============================================================
// Root model
// ============================================================

func TestAppViewBeforeSize(t *testing.T) {
	app := NewApp(newTestTracker(t), false)
	if app.View() != "Loading..." {
		t.Fatal("zero-width view should render the loading placeholder")
	}
}

func TestAppRendersAfterResize(t *testing.T) {
	app := NewApp(newTestTracker(t), false)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(App)

	out := app.View()
	if !strings.Contains(out, "tempo") {
		t.Fatal("header should carry the app title")
	}
	for _, name := range viewNames {
		if !strings.Contains(out, name) {
			t.Fatalf("header should list the %s tab", name)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app := NewApp(newTestTracker(t), false)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	app = model.(App)
	if app.activeView != viewLog {
		t.Fatalf("activeView = %v, want log", app.activeView)
	}

	// Tab cycles and wraps.
	for i := 0; i < 3; i++ {
		model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
		app = model.(App)
	}
	if app.activeView != viewDashboard {
		t.Fatalf("tab should wrap back to the dashboard, got %v", app.activeView)
	}
}

func TestAppTimerTickChain(t *testing.T) {
	tracker := newTestTracker(t)
	app := NewApp(tracker, false)

	// Idle: a stray tick must not re-arm the chain.
	if _, cmd := app.Update(tickMsg(time.Now())); cmd != nil {
		t.Fatal("tick with no active timer should not re-arm")
	}

	if err := tracker.StartTimer(1, "task", "Design"); err != nil {
		t.Fatal(err)
	}
	if _, cmd := app.Update(tickMsg(time.Now())); cmd == nil {
		t.Fatal("tick with a running timer should re-arm")
	}
}

func TestAppInitArmsRestoredTimer(t *testing.T) {
	tracker := newTestTracker(t)
	tracker.Restore(track.State{
		ActiveTimer: &track.ActiveTimer{ProjectID: 1, TaskName: "carried", StartTime: time.Now()},
		Filters:     track.Filters{TimeRange: track.RangeToday},
	})

	app := NewApp(tracker, false)
	if app.Init() == nil {
		t.Fatal("init with a restored timer should schedule commands")
	}
}

func TestAppStatusMessages(t *testing.T) {
	app := NewApp(newTestTracker(t), false)

	model, _ := app.Update(statusMsg{text: "Something failed", isError: true})
	app = model.(App)
	if app.status != "Something failed" || !app.isError {
		t.Fatalf("status not recorded: %q isError=%v", app.status, app.isError)
	}

	model, cmd := app.Update(timerStartedMsg{})
	app = model.(App)
	if app.status != "Timer started" || app.isError {
		t.Fatalf("status = %q isError=%v", app.status, app.isError)
	}
	if cmd == nil {
		t.Fatal("timer start should arm the display tick")
	}
}
