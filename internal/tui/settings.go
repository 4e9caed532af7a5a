package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/workout"
)

const (
	rowSound = iota
	rowVibration
	toggleRows
)

type settingsModel struct {
	store  *store.Store
	alerts Alerts
	width  int
	height int

	sound     bool
	vibration bool
	presets   []workout.Preset
	cursor    int
}

func newSettingsModel(s *store.Store, alerts Alerts) settingsModel {
	return settingsModel{
		store:     s,
		alerts:    alerts,
		sound:     true,
		vibration: true,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	sound     bool
	vibration bool
	presets   []workout.Preset
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		presets, _ := s.store.ListPresets()
		msg := settingsDataMsg{sound: true, vibration: true, presets: presets}
		for _, st := range settings {
			v, err := strconv.ParseBool(st.Value)
			if err != nil {
				continue
			}
			switch st.Key {
			case store.SettingSound:
				msg.sound = v
			case store.SettingVibration:
				msg.vibration = v
			}
		}
		return msg
	}
}

// apply pushes the switches to the alert dispatcher.
func (s settingsModel) apply() {
	if s.alerts != nil {
		s.alerts.SetEnabled(s.sound, s.vibration)
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsDataMsg:
		s.sound = msg.sound
		s.vibration = msg.vibration
		s.presets = msg.presets
		if s.cursor >= toggleRows+len(s.presets) {
			s.cursor = toggleRows + len(s.presets) - 1
		}
		s.apply()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < toggleRows+len(s.presets)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Toggle):
			return s.toggle()
		case key.Matches(msg, keys.Delete):
			if i := s.cursor - toggleRows; i >= 0 && i < len(s.presets) {
				p := s.presets[i]
				if err := s.store.DeletePreset(p.ID); err != nil {
					return s, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return s, func() tea.Msg { return presetsChangedMsg{text: "Preset deleted: " + p.Name} }
			}
		}
	}
	return s, nil
}

func (s settingsModel) toggle() (settingsModel, tea.Cmd) {
	var k string
	switch s.cursor {
	case rowSound:
		k = store.SettingSound
	case rowVibration:
		k = store.SettingVibration
	default:
		return s, nil
	}

	v, err := s.store.Toggle(k)
	if err != nil {
		return s, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	if s.cursor == rowSound {
		s.sound = v
	} else {
		s.vibration = v
	}
	s.apply()
	return s, nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	rows := []string{titleStyle.Render("Settings"), ""}
	rows = append(rows, s.renderRow(rowSound, "Sound", onOff(s.sound)))
	rows = append(rows, s.renderRow(rowVibration, "Vibration", onOff(s.vibration)))

	rows = append(rows, "", titleStyle.Render("Presets"))
	if len(s.presets) == 0 {
		rows = append(rows, mutedStyle.Render("  No presets saved"))
	}
	for i, p := range s.presets {
		rows = append(rows, s.renderRow(toggleRows+i, p.Name, workout.Info(p.Config.Mode).Title+"  "+p.Config.Summary()))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter/space: toggle  d: delete preset"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) renderRow(i int, label, value string) string {
	cursor := "  "
	style := normalItemStyle
	if i == s.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	return style.Render(cursor+lipgloss.NewStyle().Width(24).Render(label)) + " " + highlightStyle.Render(value)
}
