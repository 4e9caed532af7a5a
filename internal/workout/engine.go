package workout

// InitialTime returns the length in seconds of the first phase for the
// config's mode. For-Time counts up from zero.
func InitialTime(c Config) int {
	switch c.Mode {
	case ModeEMOM:
		return c.emomInterval()
	case ModeAMRAP:
		return c.amrapMinutes() * 60
	case ModeTabata:
		_, work, _ := c.tabata()
		return work
	case ModeForTime:
		return 0
	case ModeCustomInterval:
		if c.CustomInterval == nil {
			return defaultCustomWorkSeconds
		}
		return c.CustomInterval.WorkTotal()
	}
	return 0
}

// TotalRounds returns the number of rounds the timer will run for.
func TotalRounds(c Config) int {
	switch c.Mode {
	case ModeEMOM:
		return c.emomMinutes()
	case ModeAMRAP:
		return AMRAPRounds
	case ModeTabata:
		rounds, _, _ := c.tabata()
		return rounds
	case ModeForTime:
		return 1
	case ModeCustomInterval:
		if c.CustomInterval == nil {
			return defaultCustomRounds
		}
		return c.CustomInterval.rounds()
	}
	return 1
}

// IsCountUpMode reports whether the timer counts up instead of down.
func IsCountUpMode(m Mode) bool {
	return m == ModeForTime
}

// HandlePhaseEnd computes the transition taken when the current phase runs
// out. For-Time returns an empty patch: it ends on its cap, not here.
// Unknown modes finish.
func HandlePhaseEnd(c Config, s State) StatePatch {
	switch c.Mode {
	case ModeEMOM:
		if s.CurrentRound >= c.emomMinutes() {
			return finishedPatch()
		}
		return advancePatch(s.CurrentRound+1, c.emomInterval())

	case ModeAMRAP:
		return finishedPatch()

	case ModeTabata:
		rounds, work, rest := c.tabata()
		if s.IsWorkPhase {
			return phasePatch(false, rest)
		}
		if s.CurrentRound >= rounds {
			return finishedPatch()
		}
		p := phasePatch(true, work)
		next := s.CurrentRound + 1
		p.CurrentRound = &next
		return p

	case ModeForTime:
		return StatePatch{}

	case ModeCustomInterval:
		return customPhaseEnd(c.CustomInterval, s)
	}
	return finishedPatch()
}

func customPhaseEnd(ci *CustomIntervalConfig, s State) StatePatch {
	if ci == nil {
		return finishedPatch()
	}
	work, rest, rounds := ci.WorkTotal(), ci.RestTotal(), ci.rounds()

	if s.IsWorkPhase && rest > 0 {
		return phasePatch(false, rest)
	}
	if s.CurrentRound >= rounds {
		return finishedPatch()
	}
	if s.IsWorkPhase {
		// No rest phase: stay in work and move to the next round.
		return advancePatch(s.CurrentRound+1, work)
	}
	p := phasePatch(true, work)
	next := s.CurrentRound + 1
	p.CurrentRound = &next
	return p
}

// TotalWorkoutTime estimates the full workout length in seconds. It is a
// planning figure and does not drive the countdown.
func TotalWorkoutTime(c Config) int {
	switch c.Mode {
	case ModeEMOM:
		return c.emomMinutes() * 60
	case ModeAMRAP:
		return c.amrapMinutes() * 60
	case ModeTabata:
		rounds, work, rest := c.tabata()
		return rounds * (work + rest)
	case ModeForTime:
		return c.CapSeconds()
	case ModeCustomInterval:
		ci := c.CustomInterval
		if ci == nil {
			return 0
		}
		return ci.rounds() * (ci.WorkTotal() + ci.RestTotal())
	}
	return 0
}

// NewState returns the idle state a session starts from for c.
func NewState(c Config) State {
	cfg := c
	return State{
		Mode:         c.Mode,
		Status:       StatusIdle,
		CurrentRound: 1,
		TotalRounds:  TotalRounds(c),
		Remaining:    InitialTime(c),
		Elapsed:      0,
		IsWorkPhase:  true,
		Config:       &cfg,
	}
}
