// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL data access layer: one store type
// per entity over a shared *sql.DB pool.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"coursecraft/internal/models"
)

// ThemeStore handles the installed theme catalogue. Themes are written by
// theme package installation, never by the editor itself.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `name, display_name, schema_name, is_available_in_editor, properties, created_at, updated_at`

// scanTheme scans a theme row, decoding the JSONB properties column.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.Theme, error) {
	var t models.Theme
	var props []byte
	err := scanner.Scan(&t.Name, &t.DisplayName, &t.SchemaName, &t.IsAvailableInEditor, &props, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &t.Properties); err != nil {
			return nil, fmt.Errorf("decode theme properties: %w", err)
		}
	}
	return &t, nil
}

// List returns all installed themes ordered by display name.
func (s *ThemeStore) List(ctx context.Context) ([]models.Theme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM themes
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var items []models.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByName retrieves a theme by its stable name. Returns nil if not found.
func (s *ThemeStore) FindByName(ctx context.Context, name string) (*models.Theme, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes WHERE name = $1`, name)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by name: %w", err)
	}
	return t, nil
}

// Upsert installs or refreshes a theme definition. Used by seeding and by
// theme package installation.
func (s *ThemeStore) Upsert(ctx context.Context, t *models.Theme) error {
	props, err := json.Marshal(t.Properties)
	if err != nil {
		return fmt.Errorf("encode theme properties: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO themes (name, display_name, schema_name, is_available_in_editor, properties)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET display_name = EXCLUDED.display_name,
		              schema_name = EXCLUDED.schema_name,
		              is_available_in_editor = EXCLUDED.is_available_in_editor,
		              properties = EXCLUDED.properties,
		              updated_at = NOW()
	`, t.Name, t.DisplayName, t.SchemaName, t.IsAvailableInEditor, props)
	if err != nil {
		return fmt.Errorf("upsert theme: %w", err)
	}
	return nil
}
