package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/wodtimer/internal/alert"
	"github.com/sadopc/wodtimer/internal/config"
	"github.com/sadopc/wodtimer/internal/store"
	"github.com/sadopc/wodtimer/internal/tui"
)

func main() {
	cfg, cfgErr := config.Load()

	_ = os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755)
	if f, err := tea.LogToFile(cfg.LogPath, "wodtimer"); err == nil {
		defer f.Close()
	}
	if cfgErr != nil {
		log.Printf("config: %v (using defaults)", cfgErr)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()
	s.SetHistoryLimit(cfg.HistoryLimit)

	var sound alert.SoundPlayer
	if cfg.TerminalBell {
		sound = alert.NewBell(os.Stdout)
	}
	alerts := alert.NewDispatcher(sound, alert.LogVibrator{}, cfg.AlertQueueSize)
	defer alerts.Close()
	alerts.SetEnabled(
		s.GetBool(store.SettingSound, true),
		s.GetBool(store.SettingVibration, true),
	)

	app := tui.NewApp(s, alerts, cfg.TickInterval)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
