package workout

import "fmt"

type bound struct {
	name     string
	val      int
	min, max int
}

func checkBounds(bs ...bound) error {
	for _, b := range bs {
		if b.val < b.min || b.val > b.max {
			return fmt.Errorf("%s must be between %d and %d, got %d", b.name, b.min, b.max, b.val)
		}
	}
	return nil
}

// Validate checks c against the ranges offered when configuring a timer.
// The engine never calls it; it falls back to defaults instead.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeEMOM:
		if c.EMOM == nil {
			return fmt.Errorf("emom: missing parameters")
		}
		return checkBounds(
			bound{"emom minutes", c.EMOM.Minutes, 1, 60},
			bound{"emom interval seconds", c.EMOM.IntervalSeconds, 30, 120},
		)
	case ModeAMRAP:
		if c.AMRAP == nil {
			return fmt.Errorf("amrap: missing parameters")
		}
		return checkBounds(bound{"amrap minutes", c.AMRAP.Minutes, 1, 60})
	case ModeTabata:
		if c.Tabata == nil {
			return fmt.Errorf("tabata: missing parameters")
		}
		return checkBounds(
			bound{"tabata rounds", c.Tabata.Rounds, 1, 20},
			bound{"tabata work seconds", c.Tabata.WorkSeconds, 5, 120},
			bound{"tabata rest seconds", c.Tabata.RestSeconds, 0, 120},
		)
	case ModeForTime:
		if c.ForTime == nil || c.ForTime.CapMinutes == nil {
			return nil
		}
		return checkBounds(bound{"cap minutes", *c.ForTime.CapMinutes, 0, 60})
	case ModeCustomInterval:
		ci := c.CustomInterval
		if ci == nil {
			return fmt.Errorf("custom interval: missing parameters")
		}
		if err := checkBounds(
			bound{"rounds", ci.Rounds, 1, 50},
			bound{"work minutes", ci.WorkMinutes, 0, 30},
			bound{"work seconds", ci.WorkSeconds, 0, 59},
			bound{"rest minutes", ci.RestMinutes, 0, 30},
			bound{"rest seconds", ci.RestSeconds, 0, 59},
		); err != nil {
			return err
		}
		if ci.WorkTotal() < 1 {
			return fmt.Errorf("work interval must be at least 1 second")
		}
		return nil
	}
	return fmt.Errorf("unknown mode %q", c.Mode)
}

// Summary renders the config as a one-line description, e.g. "8 x 20s/10s".
func (c Config) Summary() string {
	switch c.Mode {
	case ModeEMOM:
		return fmt.Sprintf("%d min, every %ds", c.emomMinutes(), c.emomInterval())
	case ModeAMRAP:
		return fmt.Sprintf("%d min", c.amrapMinutes())
	case ModeTabata:
		r, w, rest := c.tabata()
		return fmt.Sprintf("%d x %ds/%ds", r, w, rest)
	case ModeForTime:
		if cp := c.CapSeconds(); cp > 0 {
			return fmt.Sprintf("cap %d min", cp/60)
		}
		return "no cap"
	case ModeCustomInterval:
		if c.CustomInterval == nil {
			return "default"
		}
		ci := c.CustomInterval
		return fmt.Sprintf("%d x %s/%s", ci.rounds(), FormatMMSS(ci.WorkTotal()), FormatMMSS(ci.RestTotal()))
	}
	return string(c.Mode)
}
