package workout

import "strings"

const (
	defaultEMOMMinutes         = 10
	defaultEMOMIntervalSeconds = 60
	defaultAMRAPMinutes        = 12
	defaultTabataRounds        = 8
	defaultTabataWorkSeconds   = 20
	defaultTabataRestSeconds   = 10
	defaultCustomRounds        = 5
	defaultCustomWorkSeconds   = 60

	// AMRAPRounds stands in for "unbounded": AMRAP rounds are counted by
	// the athlete, never by the timer.
	AMRAPRounds = 999
)

// ModeInfo describes a mode for pickers.
type ModeInfo struct {
	Mode        Mode
	Title       string
	Description string
}

var modes = []ModeInfo{
	{Mode: ModeEMOM, Title: "EMOM", Description: "Every Minute On the Minute"},
	{Mode: ModeAMRAP, Title: "AMRAP", Description: "As Many Rounds As Possible"},
	{Mode: ModeTabata, Title: "Tabata", Description: "20s work / 10s rest"},
	{Mode: ModeForTime, Title: "For Time", Description: "Stopwatch with optional cap"},
	{Mode: ModeCustomInterval, Title: "Custom", Description: "Custom work/rest intervals"},
}

// Modes returns the selectable modes in display order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modes))
	copy(out, modes)
	return out
}

// Info returns the catalogue entry for m. Unknown modes get their raw name.
func Info(m Mode) ModeInfo {
	for _, mi := range modes {
		if mi.Mode == m {
			return mi
		}
	}
	return ModeInfo{Mode: m, Title: string(m)}
}

// ParseMode accepts a mode name in any case, with '-' or ' ' for '_'.
func ParseMode(s string) (Mode, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch m := Mode(norm); m {
	case ModeEMOM, ModeAMRAP, ModeTabata, ModeForTime, ModeCustomInterval:
		return m, true
	case "CUSTOM":
		return ModeCustomInterval, true
	}
	return "", false
}

// DefaultConfig returns a fresh default config for mode. Unknown modes get
// the EMOM default.
func DefaultConfig(mode Mode) Config {
	switch mode {
	case ModeAMRAP:
		return Config{Mode: ModeAMRAP, AMRAP: &AMRAPConfig{Minutes: defaultAMRAPMinutes}}
	case ModeTabata:
		return Config{Mode: ModeTabata, Tabata: &TabataConfig{
			Rounds:      defaultTabataRounds,
			WorkSeconds: defaultTabataWorkSeconds,
			RestSeconds: defaultTabataRestSeconds,
		}}
	case ModeForTime:
		return Config{Mode: ModeForTime, ForTime: &ForTimeConfig{}}
	case ModeCustomInterval:
		return Config{Mode: ModeCustomInterval, CustomInterval: &CustomIntervalConfig{
			Rounds:      defaultCustomRounds,
			WorkMinutes: 1,
			RestSeconds: 30,
		}}
	default:
		return Config{Mode: ModeEMOM, EMOM: &EMOMConfig{
			Minutes:         defaultEMOMMinutes,
			IntervalSeconds: defaultEMOMIntervalSeconds,
		}}
	}
}

func positiveOr(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (c Config) emomMinutes() int {
	if c.EMOM == nil {
		return defaultEMOMMinutes
	}
	return positiveOr(c.EMOM.Minutes, defaultEMOMMinutes)
}

func (c Config) emomInterval() int {
	if c.EMOM == nil {
		return defaultEMOMIntervalSeconds
	}
	return positiveOr(c.EMOM.IntervalSeconds, defaultEMOMIntervalSeconds)
}

func (c Config) amrapMinutes() int {
	if c.AMRAP == nil {
		return defaultAMRAPMinutes
	}
	return positiveOr(c.AMRAP.Minutes, defaultAMRAPMinutes)
}

func (c Config) tabata() (rounds, work, rest int) {
	if c.Tabata == nil {
		return defaultTabataRounds, defaultTabataWorkSeconds, defaultTabataRestSeconds
	}
	rest = c.Tabata.RestSeconds
	if rest < 0 {
		rest = defaultTabataRestSeconds
	}
	return positiveOr(c.Tabata.Rounds, defaultTabataRounds),
		positiveOr(c.Tabata.WorkSeconds, defaultTabataWorkSeconds),
		rest
}

// CapSeconds returns the For-Time cap in seconds, or 0 when uncapped.
func (c Config) CapSeconds() int {
	if c.ForTime == nil || c.ForTime.CapMinutes == nil || *c.ForTime.CapMinutes <= 0 {
		return 0
	}
	return *c.ForTime.CapMinutes * 60
}

// WorkTotal returns the Custom Interval work phase length.
func (ci CustomIntervalConfig) WorkTotal() int {
	return nonNegative(ToTotalSeconds(ci.WorkMinutes, ci.WorkSeconds))
}

// RestTotal returns the Custom Interval rest phase length.
func (ci CustomIntervalConfig) RestTotal() int {
	return nonNegative(ToTotalSeconds(ci.RestMinutes, ci.RestSeconds))
}

func (ci CustomIntervalConfig) rounds() int {
	return positiveOr(ci.Rounds, defaultCustomRounds)
}
