package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/wodtimer/internal/workout"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Workouts   []jsonWorkout `json:"workouts"`
}

type jsonWorkout struct {
	ID              string         `json:"id"`
	Date            string         `json:"date"`
	Mode            workout.Mode   `json:"mode"`
	Config          workout.Config `json:"config"`
	DurationSec     int            `json:"duration_seconds"`
	Duration        string         `json:"duration"`
	RoundsCompleted int            `json:"rounds_completed"`
	Notes           string         `json:"notes,omitempty"`
}

func ToJSON(records []workout.Record, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
		Workouts:   []jsonWorkout{},
	}

	for _, r := range records {
		export.Workouts = append(export.Workouts, jsonWorkout{
			ID:              r.ID,
			Date:            r.Date.UTC().Format(time.RFC3339),
			Mode:            r.Mode,
			Config:          r.Config,
			DurationSec:     r.Duration,
			Duration:        workout.FormatHHMMSS(r.Duration),
			RoundsCompleted: r.RoundsCompleted,
			Notes:           r.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
