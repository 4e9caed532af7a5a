package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/workout"
)

const chartDays = 7

type historyModel struct {
	store  *store.Store
	width  int
	height int

	records   []workout.Record
	summaries []store.DailySummary
	cursor    int
	offset    int // chart window, in weeks back from today

	chart barchart.Model

	formActive bool
	form       *huh.Form
	confirmed  *bool // survives value copies
}

func newHistoryModel(s *store.Store) historyModel {
	confirmed := false
	return historyModel{
		store:     s,
		chart:     barchart.New(60, 10),
		confirmed: &confirmed,
	}
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

type historyDataMsg struct {
	records   []workout.Record
	summaries []store.DailySummary
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := h.store.ListWorkouts(store.WorkoutFilter{})
		from, to := h.dateRange()
		summaries, _ := h.store.GetDailySummary(from, to)
		return historyDataMsg{records: records, summaries: summaries}
	}
}

func (h historyModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-chartDays*h.offset)
	return end.AddDate(0, 0, -chartDays), end
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		h.records = msg.records
		h.summaries = msg.summaries
		if h.cursor >= len(h.records) {
			h.cursor = max(0, len(h.records)-1)
		}
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.records)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		case key.Matches(msg, keys.Delete):
			if len(h.records) > 0 {
				r := h.records[h.cursor]
				if err := h.store.DeleteWorkout(r.ID); err != nil {
					return h, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return h, h.refresh()
			}
		case key.Matches(msg, keys.Clear):
			if len(h.records) > 0 {
				return h.showClearConfirm()
			}
		}
	}
	return h, nil
}

func (h historyModel) showClearConfirm() (historyModel, tea.Cmd) {
	*h.confirmed = false
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d workouts?", len(h.records))).
				Affirmative("Delete").
				Negative("Keep").
				Value(h.confirmed),
		),
	)
	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		h.form = nil
		if !*h.confirmed {
			return h, nil
		}
		if err := h.store.ClearHistory(); err != nil {
			return h, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		h.cursor = 0
		return h, tea.Batch(h.refresh(), func() tea.Msg { return statusMsg{text: "History cleared"} })
	}
	return h, cmd
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 10
	if h.height > 36 {
		chartHeight = 14
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	from, to := h.dateRange()
	style := lipgloss.NewStyle().Foreground(colorSecondary)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		minutes := 0.0
		for _, s := range h.summaries {
			if s.Date == dateStr {
				minutes = float64(s.TotalSeconds) / 60.0
			}
		}
		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: []barchart.BarValue{{Name: "minutes", Value: minutes, Style: style}},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Clear History"), "", h.form.View()),
		)
	}

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s, minutes per day",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("History"), "  ", dateLabel)

	nav := mutedStyle.Render("  ←/→: chart week  d: delete  X: clear all  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", h.renderList(w), "", nav,
		),
	)
}

// renderList shows the records around the cursor that fit the panel.
func (h historyModel) renderList(w int) string {
	if len(h.records) == 0 {
		return mutedStyle.Render("  No workouts recorded")
	}

	visible := max(3, h.height-24)
	start := 0
	if h.cursor >= visible {
		start = h.cursor - visible + 1
	}
	end := min(len(h.records), start+visible)

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-13s %-10s %-18s %8s %6s", "Date", "Mode", "Config", "Time", "Rounds")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 60))))

	for i := start; i < end; i++ {
		r := h.records[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-13s %-10s %-18s %8s %6d",
			cursor,
			r.Date.Local().Format("Jan 02 15:04"),
			workout.Info(r.Mode).Title,
			r.Config.Summary(),
			workout.FormatMMSS(r.Duration),
			r.RoundsCompleted,
		))
		if r.Notes != "" {
			row += mutedStyle.Render("  " + r.Notes)
		}
		rows = append(rows, row)
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d of %d", h.cursor+1, len(h.records))))
	return strings.Join(rows, "\n")
}
