// Package api is a stand-in for a real time-tracking backend. Calls
// resolve after a simulated network delay and operate on in-process
// seed data that lives only for the lifetime of the process.
package api

import (
	"context"
	"sync"
	"time"

	"github.com/ecagl/tempo/internal/track"
)

// DefaultDelay is the simulated network latency.
const DefaultDelay = 500 * time.Millisecond

// Mock owns the seed projects and entries. Saved entries are retained
// in the backing list, so a fetch after a save reflects it.
type Mock struct {
	mu       sync.Mutex
	delay    time.Duration
	entries  []track.TimeEntry
	projects []track.Project
	nextErr  error
}

// NewMock seeds three projects and one entry from yesterday.
func NewMock(delay time.Duration) *Mock {
	if delay < 0 {
		delay = DefaultDelay
	}
	start := time.Now().Add(-24 * time.Hour)
	end := start.Add(2 * time.Hour)
	return &Mock{
		delay: delay,
		projects: []track.Project{
			{ID: 1, Name: "Website Redesign", Color: "#FF6B6B"},
			{ID: 2, Name: "Mobile App", Color: "#4ECDC4"},
			{ID: 3, Name: "Marketing Campaign", Color: "#45B7D1"},
		},
		entries: []track.TimeEntry{
			{
				ID:        1,
				ProjectID: 1,
				TaskName:  "Homepage layout",
				Tag:       "Design",
				StartTime: start,
				EndTime:   end,
				Date:      track.DateOf(start),
			},
		},
	}
}

// FailNext makes the next call return err instead of data. Used to
// exercise the load/save failure paths.
func (m *Mock) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

func (m *Mock) takeErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.nextErr
	m.nextErr = nil
	return err
}

// sleep blocks for the simulated delay, or until ctx is cancelled.
func (m *Mock) sleep(ctx context.Context) error {
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mock) FetchEntries(ctx context.Context) ([]track.TimeEntry, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]track.TimeEntry(nil), m.entries...), nil
}

func (m *Mock) FetchProjects(ctx context.Context) ([]track.Project, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]track.Project(nil), m.projects...), nil
}

// SaveEntry assigns max(existing ids)+1, prepends the entry to the
// backing list and returns the stamped record.
func (m *Mock) SaveEntry(ctx context.Context, draft track.EntryDraft) (track.TimeEntry, error) {
	if err := m.sleep(ctx); err != nil {
		return track.TimeEntry{}, err
	}
	if err := m.takeErr(); err != nil {
		return track.TimeEntry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var maxID int64
	for _, e := range m.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	entry := track.TimeEntry{
		ID:        maxID + 1,
		ProjectID: draft.ProjectID,
		TaskName:  draft.TaskName,
		Tag:       draft.Tag,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Date:      track.DateOf(draft.StartTime),
	}
	m.entries = append([]track.TimeEntry{entry}, m.entries...)
	return entry, nil
}
