package tui

import (
	"fmt"

	"github.com/sadopc/wodtimer/internal/alert"
	"github.com/sadopc/wodtimer/internal/session"
	"github.com/sadopc/wodtimer/internal/workout"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewTimer
	viewHistory
	viewSettings
)

var viewNames = []string{"Home", "Timer", "History", "Settings"}

// Alerts is the cue sink the sessions play through, with the sound and
// vibration switches from settings.
type Alerts interface {
	alert.Alerter
	SetEnabled(sound, vibration bool)
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// startWorkoutMsg asks the app to open the timer with a new session.
type startWorkoutMsg struct {
	config workout.Config
}

// sessionEventMsg carries an event from the controller that produced it, so
// events from a replaced session can be ignored.
type sessionEventMsg struct {
	ctl *session.Controller
	ev  session.Event
}

type sessionClosedMsg struct {
	ctl *session.Controller
}

type workoutSavedMsg struct {
	record workout.Record
}

// presetsChangedMsg reloads every view that lists presets.
type presetsChangedMsg struct {
	text string
}

type navigateMsg struct {
	view viewState
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// phaseLabel is the big word under the clock.
func phaseLabel(s workout.State) string {
	switch s.Status {
	case workout.StatusIdle:
		return "READY"
	case workout.StatusFinished:
		return "DONE"
	}
	switch s.Mode {
	case workout.ModeTabata, workout.ModeCustomInterval:
		if s.IsWorkPhase {
			return "WORK"
		}
		return "REST"
	case workout.ModeAMRAP:
		return "AMRAP"
	}
	return "GO!"
}

// roundText renders the round counter for the mode, or "" when the mode
// has no rounds.
func roundText(s workout.State) string {
	switch s.Mode {
	case workout.ModeForTime:
		return ""
	case workout.ModeAMRAP:
		return fmt.Sprintf("Round %d", s.CurrentRound)
	}
	return fmt.Sprintf("Round %d / %d", s.CurrentRound, s.TotalRounds)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
