// Package report contains the pure read-only views over tracker
// entries: time-range predicates, filtering and chart-ready grouping.
// Everything here is recomputed on demand; nothing is cached.
package report

import (
	"math"
	"time"

	"github.com/ecagl/tempo/internal/track"
)

// Point is one chart datum: a labeled hour total with an optional
// display color.
type Point struct {
	Label string
	Hours float64
	Color string
}

// WeekStart returns the most recent Monday 00:00 relative to now
// (ISO week, Monday-start).
func WeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// InRange reports whether an entry starting at start falls inside the
// named range relative to now.
func InRange(start time.Time, r track.TimeRange, now time.Time) bool {
	switch r {
	case track.RangeToday:
		return start.Year() == now.Year() && start.YearDay() == now.YearDay()
	case track.RangeWeek:
		return !start.Before(WeekStart(now))
	case track.RangeMonth:
		return start.Year() == now.Year() && start.Month() == now.Month()
	case track.RangeAll:
		return true
	}
	return false
}

// Filter applies the project, tag and time-range predicates.
func Filter(entries []track.TimeEntry, f track.Filters, now time.Time) []track.TimeEntry {
	var out []track.TimeEntry
	for _, e := range entries {
		if f.Project != nil && e.ProjectID != *f.Project {
			continue
		}
		if f.Tag != nil && e.Tag != *f.Tag {
			continue
		}
		if !InRange(e.StartTime, f.TimeRange, now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Minutes is the whole-minute duration of a single entry.
func Minutes(e track.TimeEntry) int {
	return int(e.EndTime.Sub(e.StartTime).Minutes())
}

// TotalMinutes sums entry durations in minutes.
func TotalMinutes(entries []track.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += Minutes(e)
	}
	return total
}

// Hours converts minutes to hours rounded to one decimal for display.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

// ByDay groups entries into the current Monday–Sunday week, one point
// per day regardless of filter. Days without entries yield zero points
// so the weekly chart always has seven bars.
func ByDay(entries []track.TimeEntry, now time.Time) []Point {
	start := WeekStart(now)
	points := make([]Point, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		dayStr := track.DateOf(day)
		minutes := 0
		for _, e := range entries {
			if track.DateOf(e.StartTime) == dayStr {
				minutes += Minutes(e)
			}
		}
		points = append(points, Point{
			Label: day.Format("Mon"),
			Hours: Hours(minutes),
		})
	}
	return points
}

// ByProject totals hours per project. Projects with no time are dropped
// from the result, not shown as zero slices.
func ByProject(entries []track.TimeEntry, projects []track.Project) []Point {
	var points []Point
	for _, p := range projects {
		minutes := 0
		for _, e := range entries {
			if e.ProjectID == p.ID {
				minutes += Minutes(e)
			}
		}
		if h := Hours(minutes); h > 0 {
			points = append(points, Point{Label: p.Name, Hours: h, Color: p.Color})
		}
	}
	return points
}

// ByTag totals hours per tag, dropping zero-valued tags.
func ByTag(entries []track.TimeEntry, tags []string) []Point {
	var points []Point
	for _, tag := range tags {
		minutes := 0
		for _, e := range entries {
			if e.Tag == tag {
				minutes += Minutes(e)
			}
		}
		if h := Hours(minutes); h > 0 {
			points = append(points, Point{Label: tag, Hours: h})
		}
	}
	return points
}

// ProjectName resolves an id for the log table; entries referencing an
// unknown project display as "Unknown".
func ProjectName(projects []track.Project, id int64) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	return "Unknown"
}

// ProjectColor resolves a chart/chip color with a neutral fallback.
func ProjectColor(projects []track.Project, id int64) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Color
		}
	}
	return "#cccccc"
}
