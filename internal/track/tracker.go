package track

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrTimerRunning is returned by StartTimer while a timer is active.
// Starting never silently overwrites a running timer.
var ErrTimerRunning = errors.New("a timer is already running")

// Repository is the backend the tracker loads from and saves to.
type Repository interface {
	FetchEntries(ctx context.Context) ([]TimeEntry, error)
	FetchProjects(ctx context.Context) ([]Project, error)
	SaveEntry(ctx context.Context, draft EntryDraft) (TimeEntry, error)
}

// Snapshotter receives the full tracker state after each mutation.
type Snapshotter interface {
	SaveSnapshot(State) error
}

// Tracker is the process-wide state container: entries, projects, tags,
// the active timer, filters and UI flags. It is constructed explicitly
// and passed by reference; there is no package-level instance.
//
// The mutex is needed because bubbletea runs commands (backend calls)
// off the update goroutine.
type Tracker struct {
	mu   sync.Mutex
	st   State
	repo Repository
	snap Snapshotter

	loading bool
	lastErr string
}

// DefaultProjects seeds a fresh tracker; the backend replaces them on
// the first load.
var DefaultProjects = []Project{
	{ID: 1, Name: "Website Redesign", Color: "#FF6B6B"},
	{ID: 2, Name: "Mobile App", Color: "#4ECDC4"},
	{ID: 3, Name: "Marketing Campaign", Color: "#45B7D1"},
}

var DefaultTags = []string{"Meeting", "Development", "Design", "Research", "Break"}

// New returns a tracker seeded with the default projects, tags and
// filters. snap may be nil (no persistence, used in tests).
func New(repo Repository, snap Snapshotter) *Tracker {
	return &Tracker{
		repo: repo,
		snap: snap,
		st: State{
			Projects: append([]Project(nil), DefaultProjects...),
			Tags:     append([]string(nil), DefaultTags...),
			Filters:  Filters{TimeRange: RangeToday},
		},
	}
}

// Restore replaces the tracker state with a previously persisted
// snapshot. A timer left running in the snapshot resumes as-is; elapsed
// time is always recomputed from now − StartTime, so no expiry is
// needed.
func (t *Tracker) Restore(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !s.Filters.TimeRange.Valid() {
		s.Filters.TimeRange = RangeToday
	}
	t.st = s
}

// State returns a copy of the current snapshot for reading.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.st
	s.Entries = append([]TimeEntry(nil), t.st.Entries...)
	s.Projects = append([]Project(nil), t.st.Projects...)
	s.Tags = append([]string(nil), t.st.Tags...)
	if t.st.ActiveTimer != nil {
		at := *t.st.ActiveTimer
		s.ActiveTimer = &at
	}
	return s
}

func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// LastErr is the descriptive error string from the most recent failed
// backend operation, empty when the last operation succeeded.
func (t *Tracker) LastErr() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// ActiveTimer returns the running timer, or nil when idle.
func (t *Tracker) ActiveTimer() *ActiveTimer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.st.ActiveTimer == nil {
		return nil
	}
	at := *t.st.ActiveTimer
	return &at
}

// StartTimer begins tracking against a project. It fails with
// ErrTimerRunning if a timer is already active.
func (t *Tracker) StartTimer(projectID int64, taskName, tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.st.ActiveTimer != nil {
		return ErrTimerRunning
	}
	t.st.ActiveTimer = &ActiveTimer{
		ProjectID: projectID,
		TaskName:  taskName,
		Tag:       tag,
		StartTime: time.Now(),
	}
	t.save()
	return nil
}

// StopTimer finalizes the active timer into a TimeEntry and clears it.
// It is a no-op returning nil when no timer is running. The new entry's
// id is the millisecond timestamp of the stop instant.
func (t *Tracker) StopTimer() *TimeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	at := t.st.ActiveTimer
	if at == nil {
		return nil
	}
	now := time.Now()
	entry := TimeEntry{
		ID:        now.UnixMilli(),
		ProjectID: at.ProjectID,
		TaskName:  at.TaskName,
		Tag:       at.Tag,
		StartTime: at.StartTime,
		EndTime:   now,
		Date:      DateOf(at.StartTime),
	}
	t.st.Entries = append([]TimeEntry{entry}, t.st.Entries...)
	t.st.ActiveTimer = nil
	t.save()
	return &entry
}

// AddEntry saves a manual entry through the backend and prepends the
// returned record on success. The backend assigns the id.
func (t *Tracker) AddEntry(ctx context.Context, draft EntryDraft) (*TimeEntry, error) {
	t.setLoading(true)
	entry, err := t.repo.SaveEntry(ctx, draft)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.lastErr = "Failed to save entry"
		return nil, fmt.Errorf("save entry: %w", err)
	}
	t.lastErr = ""
	t.st.Entries = append([]TimeEntry{entry}, t.st.Entries...)
	t.save()
	return &entry, nil
}

// DeleteEntry removes the entry with the given id, preserving the order
// of the rest. Deleting an unknown id is a no-op.
func (t *Tracker) DeleteEntry(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.st.Entries {
		if e.ID == id {
			t.st.Entries = append(t.st.Entries[:i], t.st.Entries[i+1:]...)
			t.save()
			return
		}
	}
}

// FilterPatch is a partial filter update. Zero fields leave the current
// value unchanged; the Clear flags reset a dimension to "all".
type FilterPatch struct {
	Project      *int64
	ClearProject bool
	Tag          *string
	ClearTag     bool
	TimeRange    TimeRange
}

// UpdateFilters shallow-merges the patch into the current filters.
// Unknown time ranges are rejected rather than silently matching
// nothing.
func (t *Tracker) UpdateFilters(p FilterPatch) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p.TimeRange != "" && !p.TimeRange.Valid() {
		return fmt.Errorf("unknown time range %q", p.TimeRange)
	}
	if p.ClearProject {
		t.st.Filters.Project = nil
	} else if p.Project != nil {
		id := *p.Project
		t.st.Filters.Project = &id
	}
	if p.ClearTag {
		t.st.Filters.Tag = nil
	} else if p.Tag != nil {
		tag := *p.Tag
		t.st.Filters.Tag = &tag
	}
	if p.TimeRange != "" {
		t.st.Filters.TimeRange = p.TimeRange
	}
	t.save()
	return nil
}

// ResetFilters restores the default filters (no project, no tag, today).
func (t *Tracker) ResetFilters() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.st.Filters = Filters{TimeRange: RangeToday}
	t.save()
}

// AddProject appends a project with id = current count + 1. Projects
// are never deleted, which is what keeps this assignment collision-free.
func (t *Tracker) AddProject(name, color string) Project {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := Project{
		ID:    int64(len(t.st.Projects)) + 1,
		Name:  name,
		Color: color,
	}
	t.st.Projects = append(t.st.Projects, p)
	t.save()
	return p
}

// AddTag inserts a tag with set semantics: adding an existing tag is a
// no-op.
func (t *Tracker) AddTag(tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.st.Tags {
		if existing == tag {
			return
		}
	}
	t.st.Tags = append(t.st.Tags, tag)
	t.save()
}

func (t *Tracker) ToggleDarkMode() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.st.DarkMode = !t.st.DarkMode
	t.save()
}

func (t *Tracker) ToggleDrawer() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.st.DrawerOpen = !t.st.DrawerOpen
	t.save()
}

// LoadInitialData fetches entries and projects in parallel and replaces
// both wholesale on success. On any failure nothing is applied, the
// error string is recorded and no retry is attempted.
func (t *Tracker) LoadInitialData(ctx context.Context) error {
	t.setLoading(true)

	var (
		wg       sync.WaitGroup
		entries  []TimeEntry
		projects []Project
		entErr   error
		projErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, entErr = t.repo.FetchEntries(ctx)
	}()
	go func() {
		defer wg.Done()
		projects, projErr = t.repo.FetchProjects(ctx)
	}()
	wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if entErr != nil || projErr != nil {
		t.lastErr = "Failed to load data"
		return fmt.Errorf("load initial data: %w", errors.Join(entErr, projErr))
	}
	t.lastErr = ""
	t.st.Entries = entries
	t.st.Projects = projects
	t.save()
	return nil
}

func (t *Tracker) setLoading(v bool) {
	t.mu.Lock()
	t.loading = v
	t.mu.Unlock()
}

// save persists the full snapshot. Called with t.mu held.
func (t *Tracker) save() {
	if t.snap == nil {
		return
	}
	if err := t.snap.SaveSnapshot(t.st); err != nil {
		t.lastErr = "Failed to persist state"
	}
}
