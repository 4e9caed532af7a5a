package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/workout"
)

// formValues holds the raw form inputs. Their meaning depends on the mode,
// see fieldsFor.
type formValues struct {
	a, b, c string
	preset  string
}

type configureModel struct {
	store *store.Store
	width int

	mode     workout.Mode
	presetID string // set when editing an existing preset

	active bool
	form   *huh.Form
	vals   *formValues // survives value copies
}

func newConfigureModel(s *store.Store) configureModel {
	return configureModel{store: s, vals: &formValues{}}
}

// open starts the form prefilled from cfg.
func (c configureModel) open(cfg workout.Config, presetID, presetName string) (configureModel, tea.Cmd) {
	c.mode = cfg.Mode
	c.presetID = presetID
	*c.vals = valuesFrom(cfg)
	c.vals.preset = presetName

	fields := fieldsFor(cfg.Mode, c.vals)
	presetTitle := "Save as preset (blank to skip)"
	if presetID != "" {
		presetTitle = "Preset name"
	}
	fields = append(fields, huh.NewInput().Title(presetTitle).CharLimit(40).Value(&c.vals.preset))

	c.form = huh.NewForm(
		huh.NewGroup(fields...).Title(workout.Info(cfg.Mode).Title),
	).WithShowHelp(true).WithShowErrors(true)

	c.active = true
	return c, c.form.Init()
}

func valuesFrom(cfg workout.Config) formValues {
	itoa := strconv.Itoa
	switch cfg.Mode {
	case workout.ModeEMOM:
		if cfg.EMOM != nil {
			return formValues{a: itoa(cfg.EMOM.Minutes), b: itoa(cfg.EMOM.IntervalSeconds)}
		}
	case workout.ModeAMRAP:
		if cfg.AMRAP != nil {
			return formValues{a: itoa(cfg.AMRAP.Minutes)}
		}
	case workout.ModeTabata:
		if t := cfg.Tabata; t != nil {
			return formValues{a: itoa(t.Rounds), b: itoa(t.WorkSeconds), c: itoa(t.RestSeconds)}
		}
	case workout.ModeForTime:
		return formValues{a: itoa(cfg.CapSeconds() / 60)}
	case workout.ModeCustomInterval:
		if ci := cfg.CustomInterval; ci != nil {
			return formValues{
				a: itoa(ci.Rounds),
				b: workout.FormatMMSS(ci.WorkTotal()),
				c: workout.FormatMMSS(ci.RestTotal()),
			}
		}
	default:
		return formValues{}
	}
	return valuesFrom(workout.DefaultConfig(cfg.Mode))
}

func fieldsFor(mode workout.Mode, v *formValues) []huh.Field {
	switch mode {
	case workout.ModeEMOM:
		return []huh.Field{
			huh.NewInput().Title("Minutes (1-60)").Value(&v.a).Validate(intIn(1, 60)),
			huh.NewInput().Title("Interval seconds (30-120)").Value(&v.b).Validate(intIn(30, 120)),
		}
	case workout.ModeAMRAP:
		return []huh.Field{
			huh.NewInput().Title("Minutes (1-60)").Value(&v.a).Validate(intIn(1, 60)),
		}
	case workout.ModeTabata:
		return []huh.Field{
			huh.NewInput().Title("Rounds (1-20)").Value(&v.a).Validate(intIn(1, 20)),
			huh.NewInput().Title("Work seconds (5-120)").Value(&v.b).Validate(intIn(5, 120)),
			huh.NewInput().Title("Rest seconds (0-120)").Value(&v.c).Validate(intIn(0, 120)),
		}
	case workout.ModeForTime:
		return []huh.Field{
			huh.NewInput().Title("Time cap minutes (0 = none)").Value(&v.a).Validate(intIn(0, 60)),
		}
	case workout.ModeCustomInterval:
		return []huh.Field{
			huh.NewInput().Title("Rounds (1-50)").Value(&v.a).Validate(intIn(1, 50)),
			huh.NewInput().Title("Work (MM:SS)").Value(&v.b).Validate(mmssIn(1)),
			huh.NewInput().Title("Rest (MM:SS)").Value(&v.c).Validate(mmssIn(0)),
		}
	}
	return nil
}

func intIn(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func mmssIn(minSecs int) func(string) error {
	return func(s string) error {
		secs, err := workout.ParseMMSS(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("use MM:SS")
		}
		if secs < minSecs || secs > 30*60+59 {
			return fmt.Errorf("must be between %s and 30:59", workout.FormatMMSS(minSecs))
		}
		return nil
	}
}

// buildConfig turns form input into a validated config.
func buildConfig(mode workout.Mode, v formValues) (workout.Config, error) {
	num := func(s string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(s))
		return n
	}
	cfg := workout.Config{Mode: mode}
	switch mode {
	case workout.ModeEMOM:
		cfg.EMOM = &workout.EMOMConfig{Minutes: num(v.a), IntervalSeconds: num(v.b)}
	case workout.ModeAMRAP:
		cfg.AMRAP = &workout.AMRAPConfig{Minutes: num(v.a)}
	case workout.ModeTabata:
		cfg.Tabata = &workout.TabataConfig{Rounds: num(v.a), WorkSeconds: num(v.b), RestSeconds: num(v.c)}
	case workout.ModeForTime:
		ft := &workout.ForTimeConfig{}
		if capMin := num(v.a); capMin > 0 {
			ft.CapMinutes = &capMin
		}
		cfg.ForTime = ft
	case workout.ModeCustomInterval:
		work, err := workout.ParseMMSS(strings.TrimSpace(v.b))
		if err != nil {
			return cfg, fmt.Errorf("work: %w", err)
		}
		rest, err := workout.ParseMMSS(strings.TrimSpace(v.c))
		if err != nil {
			return cfg, fmt.Errorf("rest: %w", err)
		}
		cfg.CustomInterval = &workout.CustomIntervalConfig{
			Rounds:      num(v.a),
			WorkMinutes: work / 60,
			WorkSeconds: work % 60,
			RestMinutes: rest / 60,
			RestSeconds: rest % 60,
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c configureModel) update(msg tea.Msg) (configureModel, tea.Cmd) {
	if !c.active || c.form == nil {
		return c, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.active = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.active = false
		c.form = nil
		return c, c.submit()
	}
	return c, cmd
}

func (c configureModel) submit() tea.Cmd {
	cfg, err := buildConfig(c.mode, *c.vals)
	if err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Invalid config: %v", err), isError: true}
		}
	}
	name := strings.TrimSpace(c.vals.preset)

	if c.presetID != "" {
		id := c.presetID
		return func() tea.Msg {
			if err := c.store.UpdatePreset(id, name, cfg); err != nil {
				return statusMsg{text: fmt.Sprintf("Preset error: %v", err), isError: true}
			}
			return presetsChangedMsg{text: "Preset updated"}
		}
	}

	start := func() tea.Msg { return startWorkoutMsg{config: cfg} }
	if name == "" {
		return start
	}
	return tea.Batch(start, func() tea.Msg {
		if _, err := c.store.SavePreset(name, cfg); err != nil {
			return statusMsg{text: fmt.Sprintf("Preset error: %v", err), isError: true}
		}
		return presetsChangedMsg{text: "Preset saved: " + name}
	})
}

func (c configureModel) view() string {
	title := titleStyle.Render("Configure " + workout.Info(c.mode).Title)
	if c.presetID != "" {
		title = titleStyle.Render("Edit Preset")
	}
	desc := subtitleStyle.Render(workout.Info(c.mode).Description)
	return panelStyle.Width(c.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, desc, "", c.form.View()),
	)
}
