package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "wodtimer"
	configFileName = "config.yaml"

	// EnvDBPath overrides the database path from the config file.
	EnvDBPath = "WODTIMER_DB"
)

// Config holds application-level settings read from config.yaml. User
// toggles (sound, vibration) are stored in the database instead.
type Config struct {
	DBPath         string
	LogPath        string
	TickInterval   time.Duration
	AlertQueueSize int
	HistoryLimit   int
	TerminalBell   bool
}

type yamlConfig struct {
	DBPath         string `yaml:"db_path"`
	LogPath        string `yaml:"log_path"`
	TickIntervalMS int    `yaml:"tick_interval_ms"`
	AlertQueueSize int    `yaml:"alert_queue_size"`
	HistoryLimit   int    `yaml:"history_limit"`
	TerminalBell   *bool  `yaml:"terminal_bell"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		DBPath:         filepath.Join(dir, "wodtimer.db"),
		LogPath:        filepath.Join(dir, "wodtimer.log"),
		TickInterval:   time.Second,
		AlertQueueSize: 16,
		HistoryLimit:   100,
		TerminalBell:   true,
	}
}

// Dir returns ~/.config/wodtimer (or the platform equivalent).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Load reads the config file from the default directory.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default("."), err
	}
	return LoadOrCreate(filepath.Join(dir, configFileName))
}

// LoadOrCreate is LoadFile, but a missing file is first written with the
// defaults so there is something to edit.
func LoadOrCreate(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, Default(filepath.Dir(path))); err != nil {
			cfg := Default(filepath.Dir(path))
			applyEnv(&cfg)
			return cfg, err
		}
	}
	return LoadFile(path)
}

// LoadFile reads path. A missing file yields defaults; invalid values fall
// back to defaults field by field.
func LoadFile(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
	err := readYaml(path, &cfg)
	applyEnv(&cfg)
	return cfg, err
}

func readYaml(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	applyYaml(cfg, fileData)
	return nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	bell := cfg.TerminalBell
	fileData := yamlConfig{
		DBPath:         cfg.DBPath,
		LogPath:        cfg.LogPath,
		TickIntervalMS: int(cfg.TickInterval / time.Millisecond),
		AlertQueueSize: cfg.AlertQueueSize,
		HistoryLimit:   cfg.HistoryLimit,
		TerminalBell:   &bell,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyYaml(cfg *Config, fileData yamlConfig) {
	if fileData.DBPath != "" {
		cfg.DBPath = expandHome(fileData.DBPath)
	}
	if fileData.LogPath != "" {
		cfg.LogPath = expandHome(fileData.LogPath)
	}
	if fileData.TickIntervalMS >= 50 && fileData.TickIntervalMS <= 5000 {
		cfg.TickInterval = time.Duration(fileData.TickIntervalMS) * time.Millisecond
	}
	if fileData.AlertQueueSize > 0 {
		cfg.AlertQueueSize = fileData.AlertQueueSize
	}
	if fileData.HistoryLimit > 0 {
		cfg.HistoryLimit = fileData.HistoryLimit
	}
	if fileData.TerminalBell != nil {
		cfg.TerminalBell = *fileData.TerminalBell
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = expandHome(v)
	}
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
