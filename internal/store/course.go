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

// CourseStore handles the course fields the theme editor reads and writes.
// Its UpdateTheme, ApplyPreset, and UpdateVariables methods are the three
// save phases' remote endpoints.
type CourseStore struct {
	db *sql.DB
}

// NewCourseStore creates a new CourseStore.
func NewCourseStore(db *sql.DB) *CourseStore {
	return &CourseStore{db: db}
}

// courseColumns lists the columns selected in course queries.
const courseColumns = `id, title, theme, theme_preset, theme_variables, enabled_plugins, created_at, updated_at`

// scanCourse scans a course row, decoding the JSONB columns.
func scanCourse(scanner interface{ Scan(...any) error }) (*models.Course, error) {
	var c models.Course
	var themePreset sql.NullString
	var vars, plugins []byte
	err := scanner.Scan(&c.ID, &c.Title, &c.Theme, &themePreset, &vars, &plugins, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if themePreset.Valid {
		id, err := uuid.Parse(themePreset.String)
		if err != nil {
			return nil, fmt.Errorf("parse theme preset id: %w", err)
		}
		c.ThemePreset = &id
	}
	if len(vars) > 0 {
		if err := json.Unmarshal(vars, &c.ThemeVariables); err != nil {
			return nil, fmt.Errorf("decode theme variables: %w", err)
		}
	}
	if len(plugins) > 0 {
		if err := json.Unmarshal(plugins, &c.EnabledPlugins); err != nil {
			return nil, fmt.Errorf("decode enabled plugins: %w", err)
		}
	}
	return &c, nil
}

// FindByID retrieves a course by id. Returns nil if not found.
func (s *CourseStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return c, nil
}

// Create inserts a new course. Used by seeding and tests.
func (s *CourseStore) Create(ctx context.Context, c *models.Course) error {
	plugins, err := json.Marshal(c.EnabledPlugins)
	if err != nil {
		return fmt.Errorf("encode enabled plugins: %w", err)
	}
	vars, err := json.Marshal(c.ThemeVariables)
	if err != nil {
		return fmt.Errorf("encode theme variables: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO courses (title, theme, theme_variables, enabled_plugins)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Theme, vars, plugins).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// UpdateTheme patches the course's assigned theme and its enabled plugins
// in one statement. Phase 1 of the save pipeline.
func (s *CourseStore) UpdateTheme(ctx context.Context, courseID uuid.UUID, themeName string, enabledPlugins []string) error {
	plugins, err := json.Marshal(enabledPlugins)
	if err != nil {
		return fmt.Errorf("encode enabled plugins: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE courses SET theme = $1, enabled_plugins = $2, updated_at = NOW()
		WHERE id = $3
	`, themeName, plugins, courseID)
	if err != nil {
		return fmt.Errorf("update course theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("course not found")
	}
	return nil
}

// ApplyPreset applies a preset's stored values as the course's active
// customization and records the preset back-reference. Phase 2 of the save
// pipeline; runs in a transaction so the values and the reference cannot
// diverge.
func (s *CourseStore) ApplyPreset(ctx context.Context, presetID, courseID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var props []byte
	err = tx.QueryRowContext(ctx, `SELECT properties FROM theme_presets WHERE id = $1`, presetID).Scan(&props)
	if err == sql.ErrNoRows {
		return fmt.Errorf("preset not found")
	}
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE courses SET theme_preset = $1, theme_variables = $2, updated_at = NOW()
		WHERE id = $3
	`, presetID, props, courseID)
	if err != nil {
		return fmt.Errorf("apply preset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("course not found")
	}

	return tx.Commit()
}

// UpdateVariables persists the course's customized theme variables.
// Phase 3 of the save pipeline.
func (s *CourseStore) UpdateVariables(ctx context.Context, courseID uuid.UUID, vars models.VariableTree) error {
	encoded, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("encode theme variables: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE courses SET theme_variables = $1, updated_at = NOW()
		WHERE id = $2
	`, encoded, courseID)
	if err != nil {
		return fmt.Errorf("update theme variables: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("course not found")
	}
	return nil
}
