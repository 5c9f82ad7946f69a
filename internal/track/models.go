package track

import "time"

// TimeRange names a predicate restricting which entries are considered.
type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeAll   TimeRange = "all"
)

// Valid reports whether r is one of the recognized ranges.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return true
	}
	return false
}

// TimeEntry is a single recorded span of work. Entries are immutable
// once created; the only lifecycle operation is delete.
type TimeEntry struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	TaskName  string    `json:"task_name"`
	Tag       string    `json:"tag"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Date      string    `json:"date,omitempty"` // calendar day of StartTime, "2006-01-02"
}

type Project struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ActiveTimer is the at-most-one in-progress, not-yet-finalized entry.
type ActiveTimer struct {
	ProjectID int64     `json:"project_id"`
	TaskName  string    `json:"task_name"`
	Tag       string    `json:"tag"`
	StartTime time.Time `json:"start_time"`
}

// Filters restricts which entries the log and charts consider.
// Nil Project/Tag means no restriction on that dimension.
type Filters struct {
	Project   *int64    `json:"project"`
	Tag       *string   `json:"tag"`
	TimeRange TimeRange `json:"time_range"`
}

// EntryDraft is a TimeEntry before the backend has assigned its id.
type EntryDraft struct {
	ProjectID int64     `json:"project_id"`
	TaskName  string    `json:"task_name"`
	Tag       string    `json:"tag"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// State is the full tracker snapshot written to local storage on every
// mutation and rehydrated verbatim on startup.
type State struct {
	Entries     []TimeEntry  `json:"entries"`
	Projects    []Project    `json:"projects"`
	Tags        []string     `json:"tags"`
	ActiveTimer *ActiveTimer `json:"active_timer"`
	Filters     Filters      `json:"filters"`
	DarkMode    bool         `json:"dark_mode"`
	DrawerOpen  bool         `json:"drawer_open"`
}

// DateOf formats t as the snapshot's calendar-day string.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
