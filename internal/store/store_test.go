package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sadopc/wodtimer/internal/workout"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// appendRecord is a test helper that stores a finished workout.
func appendRecord(t *testing.T, s *Store, id string, mode workout.Mode, date time.Time, duration int) workout.Record {
	t.Helper()
	r := workout.Record{
		ID:              id,
		Date:            date,
		Mode:            mode,
		Config:          workout.DefaultConfig(mode),
		Duration:        duration,
		RoundsCompleted: 3,
	}
	if err := s.AppendWorkout(r); err != nil {
		t.Fatalf("append workout %s: %v", id, err)
	}
	return r
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/wodtimer.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	appendRecord(t, s, "w1", workout.ModeEMOM, time.Now(), 600)
	s.Close()

	// Reopen; data survives and migration is skipped.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if _, err := s2.GetWorkout("w1"); err != nil {
		t.Fatalf("workout lost after reopen: %v", err)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestAppendAndGetWorkout(t *testing.T) {
	s := newTestStore(t)
	capMin := 20
	r := workout.Record{
		ID:              "abc",
		Date:            time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC),
		Mode:            workout.ModeForTime,
		Config:          workout.Config{Mode: workout.ModeForTime, ForTime: &workout.ForTimeConfig{CapMinutes: &capMin}},
		Duration:        754,
		RoundsCompleted: 1,
		Notes:           "Fran",
	}
	if err := s.AppendWorkout(r); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetWorkout("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Date.Equal(r.Date) {
		t.Fatalf("expected date %v, got %v", r.Date, got.Date)
	}
	if got.Mode != workout.ModeForTime || got.Duration != 754 || got.Notes != "Fran" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Config.ForTime == nil || got.Config.ForTime.CapMinutes == nil || *got.Config.ForTime.CapMinutes != 20 {
		t.Fatalf("config not round-tripped: %+v", got.Config)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetWorkout("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendWorkoutDuplicateID(t *testing.T) {
	s := newTestStore(t)
	appendRecord(t, s, "dup", workout.ModeAMRAP, time.Now(), 60)
	err := s.AppendWorkout(workout.Record{ID: "dup", Mode: workout.ModeAMRAP})
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestListWorkoutsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().UTC().Add(-time.Hour)
	appendRecord(t, s, "first", workout.ModeEMOM, base, 60)
	appendRecord(t, s, "second", workout.ModeAMRAP, base.Add(time.Minute), 60)
	appendRecord(t, s, "third", workout.ModeTabata, base.Add(2*time.Minute), 60)

	records, err := s.ListWorkouts(WorkoutFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []string{"third", "second", "first"}
	for i, id := range want {
		if records[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, records[i].ID)
		}
	}
}

func TestListWorkoutsEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.ListWorkouts(WorkoutFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

func TestListWorkoutsModeFilterAcceptsAnySpelling(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	appendRecord(t, s, "a", workout.ModeForTime, now, 60)
	appendRecord(t, s, "b", workout.ModeTabata, now, 240)

	records, err := s.ListWorkouts(WorkoutFilter{Mode: "for-time"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Fatalf("expected only the for-time record, got %+v", records)
	}
}

func TestScanWorkoutNormalizesMode(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(
		`INSERT INTO workouts (id, date, mode, config, duration) VALUES (?, ?, ?, ?, ?)`,
		"legacy", "2026-05-04T07:00:00Z", "custom_interval", `{"mode":"CUSTOM_INTERVAL"}`, 90,
	)
	if err != nil {
		t.Fatal(err)
	}
	r, err := s.GetWorkout("legacy")
	if err != nil {
		t.Fatal(err)
	}
	if r.Mode != workout.ModeCustomInterval {
		t.Fatalf("mode = %q, want %q", r.Mode, workout.ModeCustomInterval)
	}
}

func TestListWorkoutsWithModeFilter(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	appendRecord(t, s, "a", workout.ModeEMOM, now, 60)
	appendRecord(t, s, "b", workout.ModeTabata, now, 240)
	appendRecord(t, s, "c", workout.ModeEMOM, now, 60)

	records, err := s.ListWorkouts(WorkoutFilter{Mode: string(workout.ModeEMOM)})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 EMOM records, got %d", len(records))
	}
}

func TestListWorkoutsWithDateFilter(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	appendRecord(t, s, "old", workout.ModeAMRAP, now.Add(-72*time.Hour), 60)
	appendRecord(t, s, "new", workout.ModeAMRAP, now, 60)

	from := now.Add(-time.Hour)
	records, err := s.ListWorkouts(WorkoutFilter{From: &from})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "new" {
		t.Fatalf("expected only the recent workout, got %+v", records)
	}
}

func TestListWorkoutsWithLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		appendRecord(t, s, fmt.Sprintf("w%d", i), workout.ModeEMOM, time.Now(), 60)
	}
	records, err := s.ListWorkouts(WorkoutFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "w4" {
		t.Fatalf("expected newest w4, got %s", records[0].ID)
	}
}

func TestHistoryCappedAtLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		appendRecord(t, s, fmt.Sprintf("w%03d", i), workout.ModeEMOM, time.Now(), 60)
	}
	records, err := s.ListWorkouts(WorkoutFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != DefaultHistoryLimit {
		t.Fatalf("expected %d records, got %d", DefaultHistoryLimit, len(records))
	}
	if records[0].ID != "w104" {
		t.Fatalf("expected newest w104, got %s", records[0].ID)
	}
	if records[len(records)-1].ID != "w005" {
		t.Fatalf("expected oldest kept w005, got %s", records[len(records)-1].ID)
	}
	if _, err := s.GetWorkout("w000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected w000 trimmed, got %v", err)
	}
}

func TestSetHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	s.SetHistoryLimit(2)
	for i := 0; i < 4; i++ {
		appendRecord(t, s, fmt.Sprintf("w%d", i), workout.ModeEMOM, time.Now(), 60)
	}
	records, _ := s.ListWorkouts(WorkoutFilter{})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	s.SetHistoryLimit(0)
	if s.historyLimit != DefaultHistoryLimit {
		t.Fatalf("expected default limit restored, got %d", s.historyLimit)
	}
}

func TestUpdateWorkoutNotes(t *testing.T) {
	s := newTestStore(t)
	appendRecord(t, s, "w1", workout.ModeTabata, time.Now(), 240)

	if err := s.UpdateWorkoutNotes("w1", "felt strong"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetWorkout("w1")
	if got.Notes != "felt strong" {
		t.Fatalf("expected notes updated, got %q", got.Notes)
	}

	if err := s.UpdateWorkoutNotes("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWorkout(t *testing.T) {
	s := newTestStore(t)
	appendRecord(t, s, "w1", workout.ModeEMOM, time.Now(), 60)
	appendRecord(t, s, "w2", workout.ModeEMOM, time.Now(), 60)

	if err := s.DeleteWorkout("w1"); err != nil {
		t.Fatal(err)
	}
	records, _ := s.ListWorkouts(WorkoutFilter{})
	if len(records) != 1 || records[0].ID != "w2" {
		t.Fatalf("expected only w2 left, got %+v", records)
	}
}

func TestClearHistory(t *testing.T) {
	s := newTestStore(t)
	appendRecord(t, s, "w1", workout.ModeEMOM, time.Now(), 60)
	appendRecord(t, s, "w2", workout.ModeAMRAP, time.Now(), 60)

	if err := s.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	records, _ := s.ListWorkouts(WorkoutFilter{})
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
}

// ============================================================
// Daily summary
// ============================================================

func TestGetDailySummary(t *testing.T) {
	s := newTestStore(t)
	day1 := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 5, 18, 0, 0, 0, time.UTC)
	appendRecord(t, s, "a", workout.ModeEMOM, day1, 600)
	appendRecord(t, s, "b", workout.ModeAMRAP, day1.Add(time.Hour), 900)
	appendRecord(t, s, "c", workout.ModeTabata, day2, 240)

	summaries, err := s.GetDailySummary(day1.Add(-24*time.Hour), day2.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 days, got %d", len(summaries))
	}
	if summaries[0].Date != "2026-05-04" || summaries[0].TotalSeconds != 1500 || summaries[0].Count != 2 {
		t.Fatalf("unexpected first day: %+v", summaries[0])
	}
	if summaries[1].Date != "2026-05-05" || summaries[1].TotalSeconds != 240 {
		t.Fatalf("unexpected second day: %+v", summaries[1])
	}
}

func TestGetDailySummaryEmpty(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	summaries, err := s.GetDailySummary(now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(summaries))
	}
}

// ============================================================
// Presets
// ============================================================

func TestSaveAndGetPreset(t *testing.T) {
	s := newTestStore(t)
	cfg := workout.Config{Mode: workout.ModeTabata, Tabata: &workout.TabataConfig{Rounds: 10, WorkSeconds: 30, RestSeconds: 0}}

	p, err := s.SavePreset("  Long Tabata ", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Name != "Long Tabata" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}

	got, err := s.GetPreset(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Config.Tabata == nil || got.Config.Tabata.Rounds != 10 || got.Config.Tabata.RestSeconds != 0 {
		t.Fatalf("config not round-tripped: %+v", got.Config.Tabata)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at set")
	}
}

func TestSavePresetEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SavePreset("   ", workout.DefaultConfig(workout.ModeEMOM)); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetPreset("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPresetsCreationOrder(t *testing.T) {
	s := newTestStore(t)
	s.SavePreset("B", workout.DefaultConfig(workout.ModeEMOM))
	s.SavePreset("A", workout.DefaultConfig(workout.ModeAMRAP))

	presets, err := s.ListPresets()
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
	if presets[0].Name != "B" || presets[1].Name != "A" {
		t.Fatalf("expected creation order B, A; got %s, %s", presets[0].Name, presets[1].Name)
	}
}

func TestUpdatePreset(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.SavePreset("Old", workout.DefaultConfig(workout.ModeEMOM))

	cfg := workout.Config{Mode: workout.ModeEMOM, EMOM: &workout.EMOMConfig{Minutes: 20, IntervalSeconds: 90}}
	if err := s.UpdatePreset(p.ID, "New", cfg); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetPreset(p.ID)
	if got.Name != "New" || got.Config.EMOM.Minutes != 20 {
		t.Fatalf("preset not updated: %+v", got)
	}

	if err := s.UpdatePreset("missing", "X", cfg); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePreset(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.SavePreset("Gone", workout.DefaultConfig(workout.ModeAMRAP))
	if err := s.DeletePreset(p.ID); err != nil {
		t.Fatal(err)
	}
	presets, _ := s.ListPresets()
	if len(presets) != 0 {
		t.Fatalf("expected no presets, got %d", len(presets))
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	if !s.GetBool(SettingSound, false) {
		t.Fatal("expected sound enabled by default")
	}
	if !s.GetBool(SettingVibration, false) {
		t.Fatal("expected vibration enabled by default")
	}
}

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("theme")
	if err != nil {
		t.Fatal(err)
	}
	if v != "dark" {
		t.Fatalf("expected dark, got %s", v)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing setting")
	}
	if s.GetBool("nope", true) != true {
		t.Fatal("expected fallback for missing bool")
	}
}

func TestToggleSetting(t *testing.T) {
	s := newTestStore(t)
	v, err := s.Toggle(SettingSound)
	if err != nil {
		t.Fatal(err)
	}
	if v {
		t.Fatal("expected sound disabled after toggle")
	}
	if s.GetBool(SettingSound, true) {
		t.Fatal("expected persisted false")
	}
	v, _ = s.Toggle(SettingSound)
	if !v {
		t.Fatal("expected sound enabled after second toggle")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 default settings, got %d", len(settings))
	}
}
