package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sadopc/wodtimer/internal/workout"
)

// ToPDF writes a printable workout log, newest first, with a totals line.
func ToPDF(records []workout.Record, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Workout Log: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	if len(records) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, "No workouts recorded.")
		pdf.Ln(8)
		return pdf.OutputFileAndClose(path)
	}

	total := 0
	for _, r := range records {
		total += r.Duration

		pdf.SetFont("Arial", "B", 12)
		header := fmt.Sprintf("%s  %s", r.Date.Local().Format("2006-01-02 15:04"), workout.Info(r.Mode).Title)
		pdf.Cell(0, 8, header)
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("    %s", r.Config.Summary()))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("    Time %s    Rounds %d", workout.FormatMMSS(r.Duration), r.RoundsCompleted))
		pdf.Ln(6)
		if r.Notes != "" {
			pdf.MultiCell(0, 6, "    "+r.Notes, "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Workouts: %d    Total time: %s", len(records), workout.FormatReadable(total)))
	pdf.Ln(10)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}
