package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/wodtimer/internal/alert"
	"github.com/sadopc/wodtimer/internal/session"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/workout"
)

// timerModel shows one live session. The controller runs its own tick loop;
// the model only mirrors the events it publishes.
type timerModel struct {
	store    *store.Store
	alerts   Alerts
	interval time.Duration
	width    int
	height   int

	ctl     *session.Controller
	events  <-chan session.Event
	state   workout.State
	lastCue alert.Cue
	record  *workout.Record

	formActive bool
	form       *huh.Form
	notes      *string // survives value copies
}

func newTimerModel(s *store.Store, alerts Alerts, interval time.Duration) timerModel {
	notes := ""
	return timerModel{
		store:    s,
		alerts:   alerts,
		interval: interval,
		notes:    &notes,
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) hasSession() bool { return t.ctl != nil }

func (t timerModel) running() bool {
	return t.ctl != nil && t.state.Status == workout.StatusRunning
}

// open replaces the current session with a fresh idle one for cfg.
func (t timerModel) open(cfg workout.Config) (timerModel, tea.Cmd) {
	t = t.close()

	opts := []session.Option{session.WithTickInterval(t.interval)}
	if t.alerts != nil {
		opts = append(opts, session.WithAlerter(t.alerts))
	}
	if t.store != nil {
		opts = append(opts, session.WithSink(t.store))
	}
	t.ctl = session.New(cfg, opts...)
	t.events = t.ctl.Subscribe(8)
	t.state = t.ctl.Snapshot()
	return t, listenSession(t.ctl, t.events)
}

// close discards the session without saving it.
func (t timerModel) close() timerModel {
	if t.ctl != nil {
		t.ctl.Reset()
		t.ctl.Close()
	}
	t.ctl = nil
	t.events = nil
	t.state = workout.State{}
	t.lastCue = ""
	t.record = nil
	t.formActive = false
	t.form = nil
	return t
}

func listenSession(ctl *session.Controller, ch <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return sessionClosedMsg{ctl: ctl}
		}
		return sessionEventMsg{ctl: ctl, ev: ev}
	}
}

// suspend is called before the process stops on ctrl+z.
func (t timerModel) suspend(at time.Time) {
	if t.ctl != nil {
		t.ctl.Suspend(at)
	}
}

func (t timerModel) resumeFromBackground(at time.Time) timerModel {
	if t.ctl != nil {
		t.ctl.ResumeFromBackground(at)
		t.state = t.ctl.Snapshot()
	}
	return t
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		if msg.ctl != t.ctl {
			return t, nil
		}
		t.state = msg.ev.State
		if msg.ev.Cue != "" {
			t.lastCue = msg.ev.Cue
		}
		return t, listenSession(t.ctl, t.events)
	case sessionClosedMsg:
		return t, nil
	}

	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.ctl == nil {
			return t, nil
		}
		switch {
		case key.Matches(msg, keys.Toggle):
			if t.state.Status != workout.StatusFinished {
				t.ctl.Toggle()
			}
		case key.Matches(msg, keys.Reset):
			t.ctl.Reset()
			t.record = nil
			t.lastCue = ""
		case key.Matches(msg, keys.Finish):
			if _, done := t.ctl.Record(); done {
				return t, nil
			}
			rec := t.ctl.Finish()
			t.record = &rec
			t.state = t.ctl.Snapshot()
			return t, t.confirmSaved(rec)
		case key.Matches(msg, keys.Round):
			t.ctl.IncrementRound()
		case key.Matches(msg, keys.Notes):
			if t.record != nil {
				return t.showNotesForm()
			}
		case key.Matches(msg, keys.Back):
			t = t.close()
			return t, func() tea.Msg { return navigateMsg{view: viewHome} }
		}
		t.state = t.ctl.Snapshot()
	}
	return t, nil
}

// confirmSaved reads the record back, since the controller only logs a
// failed save.
func (t timerModel) confirmSaved(rec workout.Record) tea.Cmd {
	s := t.store
	return func() tea.Msg {
		if s == nil {
			return workoutSavedMsg{record: rec}
		}
		if _, err := s.GetWorkout(rec.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Workout not saved: %v", err), isError: true}
		}
		return workoutSavedMsg{record: rec}
	}
}

func (t timerModel) showNotesForm() (timerModel, tea.Cmd) {
	*t.notes = t.record.Notes
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Workout notes").CharLimit(500).Value(t.notes),
		),
	).WithShowHelp(true)
	t.formActive = true
	return t, t.form.Init()
}

func (t timerModel) updateForm(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		t.form = nil
		notes := strings.TrimSpace(*t.notes)
		rec := *t.record
		rec.Notes = notes
		t.record = &rec
		if t.store != nil {
			if err := t.store.UpdateWorkoutNotes(rec.ID, notes); err != nil {
				return t, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Notes error: %v", err), isError: true}
				}
			}
		}
		return t, func() tea.Msg { return statusMsg{text: "Notes saved"} }
	}

	return t, cmd
}

func (t timerModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Notes"), "", t.form.View()),
		)
	}

	if t.ctl == nil {
		content := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Timer"),
			"",
			mutedStyle.Render("No workout loaded. Pick a mode on Home (1)."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cfg := t.ctl.Config()
	detail := "  " + cfg.Summary()
	if est := workout.TotalWorkoutTime(cfg); est > 0 {
		detail += " · ~" + workout.FormatReadable(est)
	}
	title := titleStyle.Render(workout.Info(cfg.Mode).Title) + mutedStyle.Render(detail)

	clock := t.clockStyle().Width(w - 6).Render(workout.FormatMMSS(t.state.Remaining))
	phase := t.clockStyle().Render(phaseLabel(t.state))

	lines := []string{title, "", clock, phase}
	if rt := roundText(t.state); rt != "" {
		lines = append(lines, highlightStyle.Render(rt))
	}
	if p := t.renderProgress(); p != "" {
		lines = append(lines, p)
	}
	lines = append(lines, mutedStyle.Render("Elapsed "+workout.FormatHHMMSS(t.state.Elapsed)))
	if t.lastCue != "" && t.state.Status == workout.StatusRunning {
		lines = append(lines, mutedStyle.Render("♪ "+string(t.lastCue)))
	}

	if t.record != nil {
		lines = append(lines, "", t.renderResult())
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, append(lines, "", t.renderControls())...),
	)
}

func (t timerModel) clockStyle() lipgloss.Style {
	switch t.state.Status {
	case workout.StatusIdle:
		return clockIdleStyle
	case workout.StatusPaused:
		return clockPausedStyle
	case workout.StatusFinished:
		return clockDoneStyle
	}
	if t.state.IsWorkPhase {
		return clockWorkStyle
	}
	return clockRestStyle
}

// renderProgress draws one dot per round for modes with a fixed count.
func (t timerModel) renderProgress() string {
	s := t.state
	if s.Mode == workout.ModeAMRAP || s.Mode == workout.ModeForTime || s.TotalRounds > 30 {
		return ""
	}
	var parts []string
	for i := 1; i <= s.TotalRounds; i++ {
		switch {
		case i < s.CurrentRound || s.Status == workout.StatusFinished:
			parts = append(parts, successStyle.Render("●"))
		case i == s.CurrentRound && s.Status != workout.StatusIdle:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ")
}

func (t timerModel) renderResult() string {
	r := t.record
	rows := []string{
		successStyle.Bold(true).Render("Workout finished"),
		fmt.Sprintf("Total time  %s", highlightStyle.Render(workout.FormatReadable(r.Duration))),
		fmt.Sprintf("Rounds      %s", highlightStyle.Render(fmt.Sprintf("%d", r.RoundsCompleted))),
	}
	if r.Notes != "" {
		rows = append(rows, mutedStyle.Render(r.Notes))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t timerModel) renderControls() string {
	switch {
	case t.record != nil:
		return mutedStyle.Render("n: notes  r: again  esc: home")
	case t.state.Status == workout.StatusFinished:
		return mutedStyle.Render("f: save workout  r: reset  esc: discard")
	case t.state.Status == workout.StatusIdle:
		return mutedStyle.Render("space: start  esc: back")
	}
	controls := "space: pause/resume  r: reset  f: finish"
	if t.state.Mode == workout.ModeAMRAP {
		controls += "  +: round"
	}
	return mutedStyle.Render(controls)
}
