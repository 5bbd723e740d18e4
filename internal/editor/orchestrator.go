// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// CourseWriter is the remote course-update collaborator the orchestrator
// drives. Each method corresponds to one save phase.
type CourseWriter interface {
	// UpdateTheme patches the course's assigned theme and enabled plugins.
	UpdateTheme(ctx context.Context, courseID uuid.UUID, themeName string, enabledPlugins []string) error
	// ApplyPreset applies a preset's stored values to the course server-side.
	ApplyPreset(ctx context.Context, presetID, courseID uuid.UUID) error
	// UpdateVariables persists the course's customized variable values.
	UpdateVariables(ctx context.Context, courseID uuid.UUID, vars models.VariableTree) error
}

// SaveLocker serializes saves against the same course across sessions and
// instances. Acquire returns a release function on success.
type SaveLocker interface {
	Acquire(ctx context.Context, courseID uuid.UUID) (func(), error)
}

// Orchestrator executes the three-phase course theme save: theme assignment,
// preset application, variable values. Phases run strictly in order, each
// awaited before the next; the first failure aborts the rest. Completed
// phases are not rolled back, so a failed save can leave the course with a
// new theme but stale variables. The caller receives a single SaveError
// either way.
type Orchestrator struct {
	courses CourseWriter
	locks   SaveLocker
}

// NewOrchestrator creates an orchestrator. locks may be nil when cross-
// instance serialization is not needed (tests, single-instance deploys).
func NewOrchestrator(courses CourseWriter, locks SaveLocker) *Orchestrator {
	return &Orchestrator{courses: courses, locks: locks}
}

// Save runs the three phases for one course. appliedPreset is the preset
// being explicitly applied, not a display-only baseline; nil skips phase 2.
// vars is the re-nested variable tree snapshotted at save time; nil
// (non-customizable theme) skips phase 3. On success the in-memory course
// is updated to match what was persisted.
func (o *Orchestrator) Save(ctx context.Context, course *models.Course, selected *models.Theme, appliedPreset *models.Preset, vars models.VariableTree) error {
	if selected == nil {
		return &SaveError{Err: fmt.Errorf("no theme selected")}
	}

	if o.locks != nil {
		release, err := o.locks.Acquire(ctx, course.ID)
		if err != nil {
			return &SaveError{Err: fmt.Errorf("course is being saved elsewhere: %w", err)}
		}
		defer release()
	}

	// Phase 1: theme assignment. Always runs. Enabled plugins keep set
	// semantics: old theme removed, new theme present exactly once.
	plugins := course.PluginsWithTheme(selected.Name)
	if err := o.courses.UpdateTheme(ctx, course.ID, selected.Name, plugins); err != nil {
		slog.Error("theme assignment failed", "course", course.ID, "theme", selected.Name, "error", err)
		return &SaveError{Err: fmt.Errorf("theme assignment: %w", err)}
	}
	course.Theme = selected.Name
	course.EnabledPlugins = plugins

	// Phase 2: preset application.
	if appliedPreset != nil {
		if err := o.courses.ApplyPreset(ctx, appliedPreset.ID, course.ID); err != nil {
			slog.Error("preset application failed", "course", course.ID, "preset", appliedPreset.ID, "error", err)
			return &SaveError{Err: fmt.Errorf("preset application: %w", err)}
		}
		id := appliedPreset.ID
		course.ThemePreset = &id
	}

	// Phase 3: variable values.
	if vars != nil {
		if err := o.courses.UpdateVariables(ctx, course.ID, vars); err != nil {
			slog.Error("variable save failed", "course", course.ID, "error", err)
			return &SaveError{Err: fmt.Errorf("variable values: %w", err)}
		}
		course.ThemeVariables = vars
	}

	slog.Info("course theme saved", "course", course.ID, "theme", selected.Name)
	return nil
}

// Save runs the orchestrated save for the session's current selection.
// Only one save may be in flight per session; a second request is rejected
// with ErrSaveInFlight. Field changes remain allowed while saving but never
// trigger a save themselves. The variable tree is snapshotted under the
// session lock before the phases run, so mid-save edits persist only with a
// later save. On success the session reaches its terminal saved state and
// the caller is expected to navigate away.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	t := s.findTheme(s.selectedTheme)
	if t == nil {
		s.mu.Unlock()
		return &ValidationError{Reason: "no theme selected"}
	}
	s.saving = true
	course := s.course
	applied := s.activePreset(false)
	var vars models.VariableTree
	if s.form != nil {
		vars = theme.Extract(s.schema, s.form.Commit())
	}
	s.mu.Unlock()

	err := s.orchestrator.Save(ctx, course, t, applied, vars)

	s.mu.Lock()
	s.saving = false
	if err == nil {
		s.saved = true
	}
	s.mu.Unlock()

	if err != nil {
		s.notifier.Alert(ctx, "error", "Saving the theme settings failed. Please try again.")
		return err
	}
	return nil
}
