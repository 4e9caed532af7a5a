package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/workout"
)

// dashboardModel is the home view: mode picker, presets, and today's
// activity.
type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	modes   []workout.ModeInfo
	presets []workout.Preset
	recent  []workout.Record
	today   store.DailySummary

	cursor    int // over modes, then presets
	configure configureModel
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:     s,
		modes:     workout.Modes(),
		configure: newConfigureModel(s),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.configure.width = w
}

func (d dashboardModel) formActive() bool { return d.configure.active }

type dashboardDataMsg struct {
	presets []workout.Preset
	recent  []workout.Record
	today   store.DailySummary
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		presets, _ := d.store.ListPresets()
		recent, _ := d.store.ListWorkouts(store.WorkoutFilter{Limit: 5})

		now := time.Now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		summary, _ := d.store.GetDailySummary(dayStart, dayStart.Add(24*time.Hour))

		msg := dashboardDataMsg{presets: presets, recent: recent}
		if len(summary) > 0 {
			msg.today = summary[0]
		}
		return msg
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.configure.active {
		var cmd tea.Cmd
		d.configure, cmd = d.configure.update(msg)
		return d, cmd
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.presets = msg.presets
		d.recent = msg.recent
		d.today = msg.today
		if d.cursor >= d.itemCount() {
			d.cursor = max(0, d.itemCount()-1)
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < d.itemCount()-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if p, ok := d.selectedPreset(); ok {
				cfg := p.Config
				return d, func() tea.Msg { return startWorkoutMsg{config: cfg} }
			}
			return d.openConfigure(workout.DefaultConfig(d.modes[d.cursor].Mode), "", "")
		case key.Matches(msg, keys.New):
			if p, ok := d.selectedPreset(); ok {
				return d.openConfigure(p.Config, p.ID, p.Name)
			}
		case key.Matches(msg, keys.Delete):
			if p, ok := d.selectedPreset(); ok {
				if err := d.store.DeletePreset(p.ID); err != nil {
					return d, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return d, d.loadData()
			}
		}
	}
	return d, nil
}

func (d dashboardModel) openConfigure(cfg workout.Config, presetID, presetName string) (dashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	d.configure, cmd = d.configure.open(cfg, presetID, presetName)
	return d, cmd
}

func (d dashboardModel) itemCount() int {
	return len(d.modes) + len(d.presets)
}

func (d dashboardModel) selectedPreset() (workout.Preset, bool) {
	i := d.cursor - len(d.modes)
	if i < 0 || i >= len(d.presets) {
		return workout.Preset{}, false
	}
	return d.presets[i], true
}

func (d dashboardModel) view() string {
	if d.configure.active && d.configure.form != nil {
		return d.configure.view()
	}
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderPicker(contentWidth),
		d.renderTodayPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderPicker(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Choose a Workout"), "")

	for i, m := range d.modes {
		rows = append(rows, d.renderItem(i, fmt.Sprintf("%-10s", m.Title), subtitleStyle.Render(m.Description)))
	}

	rows = append(rows, "", titleStyle.Render("Presets"))
	if len(d.presets) == 0 {
		rows = append(rows, mutedStyle.Render("  No presets yet. Fill in the preset name when configuring."))
	}
	for i, p := range d.presets {
		detail := subtitleStyle.Render(workout.Info(p.Config.Mode).Title + "  " + p.Config.Summary())
		rows = append(rows, d.renderItem(len(d.modes)+i, fmt.Sprintf("%-20s", p.Name), detail))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: configure / start preset  c: edit preset  d: delete preset"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderItem(i int, label, detail string) string {
	cursor := "  "
	style := normalItemStyle
	if i == d.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	return style.Render(cursor+label) + "  " + detail
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	if d.today.Count == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workouts today"),
		))
	}
	line := fmt.Sprintf("%s  %s  (%d workouts)",
		title,
		highlightStyle.Render(workout.FormatHHMMSS(int(d.today.TotalSeconds))),
		d.today.Count,
	)
	return panelStyle.Width(w).Render(line)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Workouts")
	if len(d.recent) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workouts yet"),
		))
	}

	rows := []string{title}
	for _, r := range d.recent {
		rows = append(rows, fmt.Sprintf("  ✓ %s  %-10s %8s  %d rds",
			r.Date.Local().Format("Jan 02 15:04"),
			workout.Info(r.Mode).Title,
			workout.FormatMMSS(r.Duration),
			r.RoundsCompleted,
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
