package report

import (
	"testing"
	"time"

	"github.com/ecagl/tempo/internal/track"
)

// Saturday, mid-June. Fixed so the range predicates are deterministic.
var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func entry(id, projectID int64, tag string, start time.Time, minutes int) track.TimeEntry {
	return track.TimeEntry{
		ID:        id,
		ProjectID: projectID,
		TaskName:  "task",
		Tag:       tag,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Date:      track.DateOf(start),
	}
}

// ============================================================
// Range predicates
// ============================================================

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(now); !got.Equal(monday) {
		t.Fatalf("WeekStart = %v, want %v", got, monday)
	}

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC)
	if got := WeekStart(sunday); !got.Equal(monday) {
		t.Fatalf("WeekStart on Sunday = %v, want %v", got, monday)
	}

	// A Monday is its own week start.
	if got := WeekStart(monday.Add(5 * time.Hour)); !got.Equal(monday) {
		t.Fatalf("WeekStart on Monday = %v, want %v", got, monday)
	}
}

func TestInRange(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		r     track.TimeRange
		want  bool
	}{
		{"today morning", time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), track.RangeToday, true},
		{"yesterday late", time.Date(2024, 6, 14, 23, 0, 0, 0, time.UTC), track.RangeToday, false},
		{"monday this week", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), track.RangeWeek, true},
		{"sunday last week", time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), track.RangeWeek, false},
		{"first of month", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), track.RangeMonth, true},
		{"previous month", time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC), track.RangeMonth, false},
		{"same month last year", time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC), track.RangeMonth, false},
		{"ancient entry all", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), track.RangeAll, true},
		{"unknown range", now, track.TimeRange("fortnight"), false},
	}
	for _, tc := range cases {
		if got := InRange(tc.start, tc.r, now); got != tc.want {
			t.Errorf("%s: InRange = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilter(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	entries := []track.TimeEntry{
		entry(1, 1, "Design", today, 60),
		entry(2, 2, "Development", today, 30),
		entry(3, 1, "Development", yesterday, 45),
	}

	project := int64(1)
	tag := "Development"

	got := Filter(entries, track.Filters{Project: &project, TimeRange: track.RangeAll}, now)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("project filter: got %+v", got)
	}

	got = Filter(entries, track.Filters{Tag: &tag, TimeRange: track.RangeToday}, now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("tag+today filter: got %+v", got)
	}

	got = Filter(entries, track.Filters{Project: &project, Tag: &tag, TimeRange: track.RangeToday}, now)
	if len(got) != 0 {
		t.Fatalf("conjunction should match nothing, got %+v", got)
	}
}

// ============================================================
// Totals and grouping
// ============================================================

func TestHoursRounding(t *testing.T) {
	cases := []struct {
		minutes int
		want    float64
	}{
		{0, 0},
		{60, 1.0},
		{90, 1.5},
		{100, 1.7},
		{125, 2.1},
		{33, 0.6},
	}
	for _, tc := range cases {
		if got := Hours(tc.minutes); got != tc.want {
			t.Errorf("Hours(%d) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestByProject(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	entries := []track.TimeEntry{
		entry(1, 1, "Design", today, 60),
		entry(2, 1, "Design", today.Add(2*time.Hour), 60),
		entry(3, 2, "Development", today, 60),
	}
	projects := []track.Project{
		{ID: 1, Name: "Alpha", Color: "#FF6B6B"},
		{ID: 2, Name: "Beta", Color: "#4ECDC4"},
		{ID: 3, Name: "Gamma", Color: "#45B7D1"},
	}

	points := ByProject(entries, projects)
	if len(points) != 2 {
		t.Fatalf("expected 2 points (zero project dropped), got %d", len(points))
	}
	if points[0].Label != "Alpha" || points[0].Hours != 2.0 {
		t.Fatalf("Alpha point wrong: %+v", points[0])
	}
	if points[1].Label != "Beta" || points[1].Hours != 1.0 {
		t.Fatalf("Beta point wrong: %+v", points[1])
	}
	if points[0].Color != "#FF6B6B" {
		t.Fatalf("point should carry the project color, got %q", points[0].Color)
	}
}

func TestByTag(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	entries := []track.TimeEntry{
		entry(1, 1, "Design", today, 90),
		entry(2, 2, "Design", today, 30),
		entry(3, 1, "Meeting", today, 15),
	}
	tags := []string{"Design", "Development", "Meeting"}

	points := ByTag(entries, tags)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Label != "Design" || points[0].Hours != 2.0 {
		t.Fatalf("Design point wrong: %+v", points[0])
	}
	if points[1].Label != "Meeting" || points[1].Hours != 0.3 {
		t.Fatalf("Meeting point wrong: %+v", points[1])
	}
}

func TestByDaySevenBars(t *testing.T) {
	monday := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	entries := []track.TimeEntry{
		entry(1, 1, "Design", monday, 120),
		entry(2, 1, "Design", saturday, 30),
		entry(3, 1, "Design", lastWeek, 60),
	}

	points := ByDay(entries, now)
	if len(points) != 7 {
		t.Fatalf("weekly chart must always have 7 bars, got %d", len(points))
	}
	if points[0].Label != "Mon" || points[6].Label != "Sun" {
		t.Fatalf("labels should run Mon..Sun, got %q..%q", points[0].Label, points[6].Label)
	}
	if points[0].Hours != 2.0 {
		t.Fatalf("Monday = %v, want 2.0", points[0].Hours)
	}
	if points[5].Hours != 0.5 {
		t.Fatalf("Saturday = %v, want 0.5", points[5].Hours)
	}
	// Days without entries stay in the series as zeros.
	if points[1].Hours != 0 || points[6].Hours != 0 {
		t.Fatalf("empty days should be zero bars: %+v", points)
	}
}

func TestTotalMinutes(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	entries := []track.TimeEntry{
		entry(1, 1, "Design", today, 25),
		entry(2, 1, "Design", today, 35),
	}
	if got := TotalMinutes(entries); got != 60 {
		t.Fatalf("TotalMinutes = %d, want 60", got)
	}
}

// ============================================================
// Lookups
// ============================================================

func TestProjectLookups(t *testing.T) {
	projects := []track.Project{{ID: 1, Name: "Alpha", Color: "#FF6B6B"}}

	if got := ProjectName(projects, 1); got != "Alpha" {
		t.Fatalf("ProjectName = %q", got)
	}
	if got := ProjectName(projects, 42); got != "Unknown" {
		t.Fatalf("missing project should read %q, got %q", "Unknown", got)
	}
	if got := ProjectColor(projects, 42); got != "#cccccc" {
		t.Fatalf("missing project color fallback, got %q", got)
	}
}
