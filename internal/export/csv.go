package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/wodtimer/internal/workout"
)

func ToCSV(records []workout.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Mode", "Config", "Duration (s)", "Duration", "Rounds", "Notes"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Date.Local().Format(time.RFC3339),
			workout.Info(r.Mode).Title,
			r.Config.Summary(),
			strconv.Itoa(r.Duration),
			workout.FormatHHMMSS(r.Duration),
			strconv.Itoa(r.RoundsCompleted),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
