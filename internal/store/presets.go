package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/wodtimer/internal/workout"
)

// SavePreset stores a new named config.
func (s *Store) SavePreset(name string, cfg workout.Config) (*workout.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("save preset: name is required")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode preset config: %w", err)
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO presets (id, name, config, created_at) VALUES (?, ?, ?, ?)`,
		id, name, string(data), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert preset: %w", err)
	}
	return s.GetPreset(id)
}

func (s *Store) GetPreset(id string) (*workout.Preset, error) {
	row := s.db.QueryRow(`SELECT id, name, config, created_at FROM presets WHERE id = ?`, id)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get preset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %s: %w", id, err)
	}
	return p, nil
}

// ListPresets returns presets in the order they were created.
func (s *Store) ListPresets() ([]workout.Preset, error) {
	rows, err := s.db.Query(`SELECT id, name, config, created_at FROM presets ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var presets []workout.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

func (s *Store) UpdatePreset(id, name string, cfg workout.Config) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("update preset: name is required")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode preset config: %w", err)
	}
	res, err := s.db.Exec(`UPDATE presets SET name = ?, config = ? WHERE id = ?`, name, string(data), id)
	if err != nil {
		return fmt.Errorf("update preset: %w", err)
	}
	return requireRow(res, "preset", id)
}

func (s *Store) DeletePreset(id string) error {
	_, err := s.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	return nil
}

func scanPreset(row rowScanner) (*workout.Preset, error) {
	p := &workout.Preset{}
	var cfg, createdAt string
	if err := row.Scan(&p.ID, &p.Name, &cfg, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cfg), &p.Config); err != nil {
		return nil, fmt.Errorf("decode preset %s config: %w", p.ID, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}
