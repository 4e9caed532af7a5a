package store

import "time"

type Setting struct {
	Key   string
	Value string
}

// Setting keys.
const (
	SettingSound     = "sound_enabled"
	SettingVibration = "vibration_enabled"
)

// WorkoutFilter is used to filter workouts in queries.
//
// Mode takes any spelling workout.ParseMode accepts ("tabata", "for-time").
type WorkoutFilter struct {
	Mode  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// DailySummary is the workout total for one day.
type DailySummary struct {
	Date         string
	TotalSeconds int64
	Count        int
}
