package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ecagl/tempo/internal/report"
	"github.com/ecagl/tempo/internal/track"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        int64   `json:"id"`
	Project   string  `json:"project"`
	ProjectID int64   `json:"project_id"`
	Task      string  `json:"task"`
	Tag       string  `json:"tag"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Minutes   int     `json:"minutes"`
	Hours     float64 `json:"hours"`
	Date      string  `json:"date,omitempty"`
}

func ToJSON(entries []track.TimeEntry, projects []track.Project, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		minutes := report.Minutes(e)
		out.Entries = append(out.Entries, jsonEntry{
			ID:        e.ID,
			Project:   report.ProjectName(projects, e.ProjectID),
			ProjectID: e.ProjectID,
			Task:      e.TaskName,
			Tag:       e.Tag,
			StartTime: e.StartTime.Local().Format(time.RFC3339),
			EndTime:   e.EndTime.Local().Format(time.RFC3339),
			Minutes:   minutes,
			Hours:     report.Hours(minutes),
			Date:      e.Date,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
