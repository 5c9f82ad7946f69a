package tui

import (
	"fmt"
	"time"

	"github.com/ecagl/tempo/internal/track"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLog
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Log", "Reports", "Settings"}

// --- Messages ---

type timerStartedMsg struct{}

type timerStoppedMsg struct {
	entry *track.TimeEntry
}

type dataLoadedMsg struct{}

type entrySavedMsg struct {
	entry *track.TimeEntry
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}
