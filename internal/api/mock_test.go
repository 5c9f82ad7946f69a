package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecagl/tempo/internal/track"
)

func newFastMock() *Mock {
	return NewMock(time.Millisecond)
}

func TestFetchSeeds(t *testing.T) {
	m := newFastMock()
	ctx := context.Background()

	projects, err := m.FetchProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 seed projects, got %d", len(projects))
	}

	entries, err := m.FetchEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 seed entry, got %d", len(entries))
	}
	if entries[0].Date != track.DateOf(entries[0].StartTime) {
		t.Fatal("seed entry Date should match its start day")
	}
}

func TestSaveEntryAssignsNextID(t *testing.T) {
	m := newFastMock()
	ctx := context.Background()

	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	saved, err := m.SaveEntry(ctx, track.EntryDraft{
		ProjectID: 2,
		TaskName:  "sync",
		Tag:       "Meeting",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != 2 {
		t.Fatalf("first save after seed should get id 2, got %d", saved.ID)
	}
	if saved.Date != "2024-06-15" {
		t.Fatalf("Date = %q", saved.Date)
	}

	// A fetch after a save reflects the retained entry.
	entries, err := m.FetchEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].ID != saved.ID {
		t.Fatalf("save not retained: %+v", entries)
	}

	second, err := m.SaveEntry(ctx, track.EntryDraft{ProjectID: 1, StartTime: start, EndTime: start})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != 3 {
		t.Fatalf("ids should keep increasing, got %d", second.ID)
	}
}

func TestFailNext(t *testing.T) {
	m := newFastMock()
	ctx := context.Background()
	want := errors.New("backend down")

	m.FailNext(want)
	if _, err := m.FetchEntries(ctx); !errors.Is(err, want) {
		t.Fatalf("expected scripted error, got %v", err)
	}

	// The failure is one-shot.
	if _, err := m.FetchEntries(ctx); err != nil {
		t.Fatalf("second call should succeed, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	m := NewMock(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.FetchProjects(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNegativeDelayFallsBack(t *testing.T) {
	m := NewMock(-1)
	if m.delay != DefaultDelay {
		t.Fatalf("delay = %v, want %v", m.delay, DefaultDelay)
	}
}
