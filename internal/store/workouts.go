package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/wodtimer/internal/workout"
)

const workoutColumns = `id, date, mode, config, duration, rounds_completed, notes`

// AppendWorkout stores r as the newest workout and trims history to the
// retention limit.
func (s *Store) AppendWorkout(r workout.Record) error {
	cfg, err := json.Marshal(r.Config)
	if err != nil {
		return fmt.Errorf("encode workout config: %w", err)
	}
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin append workout: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO workouts (`+workoutColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, date.UTC().Format(time.RFC3339), string(r.Mode), string(cfg), r.Duration, r.RoundsCompleted, r.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	_, err = tx.Exec(
		`DELETE FROM workouts WHERE seq NOT IN (SELECT seq FROM workouts ORDER BY seq DESC LIMIT ?)`,
		s.historyLimit,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return tx.Commit()
}

func (s *Store) GetWorkout(id string) (*workout.Record, error) {
	row := s.db.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	r, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", id, err)
	}
	return r, nil
}

// ListWorkouts returns workouts newest first.
func (s *Store) ListWorkouts(f WorkoutFilter) ([]workout.Record, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE 1=1`
	var args []any

	if f.Mode != "" {
		mode := f.Mode
		if m, ok := workout.ParseMode(mode); ok {
			mode = string(m)
		}
		query += ` AND mode = ?`
		args = append(args, mode)
	}
	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND date < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY seq DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var records []workout.Record
	for rows.Next() {
		r, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (s *Store) UpdateWorkoutNotes(id, notes string) error {
	res, err := s.db.Exec(`UPDATE workouts SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		return fmt.Errorf("update workout notes: %w", err)
	}
	return requireRow(res, "workout", id)
}

func (s *Store) DeleteWorkout(id string) error {
	_, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	return nil
}

func (s *Store) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM workouts`)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// GetDailySummary totals workout time per day in [from, to).
func (s *Store) GetDailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT date(date) AS day, COALESCE(SUM(duration), 0), COUNT(*)
		FROM workouts
		WHERE date >= ? AND date < ?
		GROUP BY day
		ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.TotalSeconds, &ds.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*workout.Record, error) {
	r := &workout.Record{}
	var date, mode, cfg string
	if err := row.Scan(&r.ID, &date, &mode, &cfg, &r.Duration, &r.RoundsCompleted, &r.Notes); err != nil {
		return nil, err
	}
	r.Date, _ = time.Parse(time.RFC3339, date)
	r.Mode = workout.Mode(mode)
	if m, ok := workout.ParseMode(mode); ok {
		r.Mode = m
	}
	if err := json.Unmarshal([]byte(cfg), &r.Config); err != nil {
		return nil, fmt.Errorf("decode workout %s config: %w", r.ID, err)
	}
	return r, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
