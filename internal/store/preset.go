// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"coursecraft/internal/models"
)

// PresetStore handles all theme preset database operations.
type PresetStore struct {
	db *sql.DB
}

// NewPresetStore creates a new PresetStore.
func NewPresetStore(db *sql.DB) *PresetStore {
	return &PresetStore{db: db}
}

// presetColumns lists the columns selected in preset queries.
const presetColumns = `id, display_name, parent_theme, properties, created_at, updated_at`

// scanPreset scans a preset row, decoding the JSONB properties column.
func scanPreset(scanner interface{ Scan(...any) error }) (*models.Preset, error) {
	var p models.Preset
	var props []byte
	err := scanner.Scan(&p.ID, &p.DisplayName, &p.ParentTheme, &props, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &p.Properties); err != nil {
			return nil, fmt.Errorf("decode preset properties: %w", err)
		}
	}
	return &p, nil
}

// List returns all presets ordered by display name.
func (s *PresetStore) List(ctx context.Context) ([]models.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+presetColumns+`
		FROM theme_presets
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()
	return collectPresets(rows)
}

// ListByParentTheme returns the presets belonging to one theme.
func (s *PresetStore) ListByParentTheme(ctx context.Context, parentTheme string) ([]models.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+presetColumns+`
		FROM theme_presets
		WHERE parent_theme = $1
		ORDER BY display_name
	`, parentTheme)
	if err != nil {
		return nil, fmt.Errorf("list presets by theme: %w", err)
	}
	defer rows.Close()
	return collectPresets(rows)
}

func collectPresets(rows *sql.Rows) ([]models.Preset, error) {
	var items []models.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a preset by id. Returns nil if not found.
func (s *PresetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Preset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+presetColumns+` FROM theme_presets WHERE id = $1`, id)
	p, err := scanPreset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find preset by id: %w", err)
	}
	return p, nil
}

// Create inserts a new preset and fills in the generated id and timestamps.
func (s *PresetStore) Create(ctx context.Context, p *models.Preset) error {
	props, err := json.Marshal(p.Properties)
	if err != nil {
		return fmt.Errorf("encode preset properties: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO theme_presets (display_name, parent_theme, properties)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.DisplayName, p.ParentTheme, props).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create preset: %w", err)
	}
	return nil
}

// Rename changes a preset's display name.
func (s *PresetStore) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE theme_presets SET display_name = $1, updated_at = NOW()
		WHERE id = $2
	`, displayName, id)
	if err != nil {
		return fmt.Errorf("rename preset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("preset not found")
	}
	return nil
}

// Delete removes a preset. Courses referencing it keep their dangling
// reference; the resolver treats that as "no baseline".
func (s *PresetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM theme_presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("preset not found")
	}
	return nil
}
