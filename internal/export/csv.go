package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/ecagl/tempo/internal/report"
	"github.com/ecagl/tempo/internal/track"
)

func ToCSV(entries []track.TimeEntry, projects []track.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Project", "Task", "Tag", "Start", "End", "Minutes", "Duration", "Date"}); err != nil {
		return err
	}

	for _, e := range entries {
		minutes := report.Minutes(e)
		row := []string{
			fmt.Sprintf("%d", e.ID),
			report.ProjectName(projects, e.ProjectID),
			e.TaskName,
			e.Tag,
			e.StartTime.Local().Format(time.RFC3339),
			e.EndTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", minutes),
			formatMinutes(minutes),
			e.Date,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
