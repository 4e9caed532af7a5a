package workout

import "time"

// Mode identifies a timer mode.
type Mode string

const (
	ModeEMOM           Mode = "EMOM"
	ModeAMRAP          Mode = "AMRAP"
	ModeTabata         Mode = "TABATA"
	ModeForTime        Mode = "FOR_TIME"
	ModeCustomInterval Mode = "CUSTOM_INTERVAL"
)

// Status is the lifecycle state of a timer session.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

type EMOMConfig struct {
	Minutes         int `json:"minutes"`
	IntervalSeconds int `json:"interval_seconds"`
}

type AMRAPConfig struct {
	Minutes int `json:"minutes"`
}

type TabataConfig struct {
	Rounds      int `json:"rounds"`
	WorkSeconds int `json:"work_seconds"`
	RestSeconds int `json:"rest_seconds"`
}

// ForTimeConfig counts up; a nil or zero cap means unlimited.
type ForTimeConfig struct {
	CapMinutes *int `json:"cap_minutes,omitempty"`
}

type CustomIntervalConfig struct {
	Rounds      int `json:"rounds"`
	WorkMinutes int `json:"work_minutes"`
	WorkSeconds int `json:"work_seconds"`
	RestMinutes int `json:"rest_minutes"`
	RestSeconds int `json:"rest_seconds"`
}

// Config is a tagged union keyed by Mode. Only the variant matching Mode
// is read; a nil variant resolves to the mode defaults.
type Config struct {
	Mode           Mode                  `json:"mode"`
	EMOM           *EMOMConfig           `json:"emom,omitempty"`
	AMRAP          *AMRAPConfig          `json:"amrap,omitempty"`
	Tabata         *TabataConfig         `json:"tabata,omitempty"`
	ForTime        *ForTimeConfig        `json:"for_time,omitempty"`
	CustomInterval *CustomIntervalConfig `json:"custom_interval,omitempty"`
}

// State is the live timer session.
//
// Remaining is the time left in the current phase (or the count-up value
// for For-Time); Elapsed is total session time since start.
type State struct {
	Mode         Mode
	Status       Status
	CurrentRound int
	TotalRounds  int
	Remaining    int // seconds
	Elapsed      int // seconds
	IsWorkPhase  bool
	Config       *Config
}

// Record is a completed workout. Duration is in seconds.
type Record struct {
	ID              string
	Date            time.Time
	Mode            Mode
	Config          Config
	Duration        int
	RoundsCompleted int
	Notes           string
}

// Preset is a named, reusable Config.
type Preset struct {
	ID        string
	Name      string
	Config    Config
	CreatedAt time.Time
}
