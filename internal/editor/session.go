// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the per-course theme editing session: live form
// state, baseline tracking, drift recomputation, preset management, and the
// three-phase save orchestration.
package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"coursecraft/internal/form"
	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// Catalogue provides read access to the theme and preset catalogues.
type Catalogue interface {
	Themes(ctx context.Context) ([]models.Theme, error)
	Presets(ctx context.Context) ([]models.Preset, error)
}

// PresetWriter persists preset mutations issued from a session.
type PresetWriter interface {
	Create(ctx context.Context, p *models.Preset) error
	Rename(ctx context.Context, id uuid.UUID, displayName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// State is the session's position in its editing lifecycle.
type State string

const (
	StateReady      State = "ready"
	StateEmptyTheme State = "empty_theme"
	StateDirty      State = "dirty"
	StateSaving     State = "saving"
	StateSaved      State = "saved"
)

// Session is one course's theme editing session. It owns the live form
// exclusively; no state is shared between sessions, and the theme/preset
// catalogues it holds are read-only snapshots. All methods are safe for
// concurrent use, but the intended model is a single logical caller.
type Session struct {
	mu sync.Mutex

	course  *models.Course
	themes  []models.Theme
	presets []models.Preset

	selectedTheme string
	selection     theme.Selection
	selectorValue *uuid.UUID

	schema  *theme.Schema
	form    *form.Form
	drifted bool
	saving  bool
	saved   bool

	notifier     Notifier
	presetWriter PresetWriter
	orchestrator *Orchestrator
}

// NewSession loads the catalogues and builds the live form for the course's
// assigned theme. Catalogue failures surface as FetchError; a theme without
// a schema is not an error, the session just has nothing to edit.
func NewSession(ctx context.Context, course *models.Course, cat Catalogue, presets PresetWriter, orch *Orchestrator, notifier Notifier) (*Session, error) {
	themes, err := cat.Themes(ctx)
	if err != nil {
		return nil, &FetchError{Resource: "themes", Err: err}
	}
	allPresets, err := cat.Presets(ctx)
	if err != nil {
		return nil, &FetchError{Resource: "presets", Err: err}
	}

	s := &Session{
		course:        course,
		themes:        themes,
		presets:       allPresets,
		selectedTheme: course.Theme,
		notifier:      notifier,
		presetWriter:  presets,
		orchestrator:  orch,
	}
	s.rebuildForm()
	return s, nil
}

// Course returns the course the session edits.
func (s *Session) Course() *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.course
}

// Themes returns the themes selectable in the editor.
func (s *Session) Themes() []models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Theme, 0, len(s.themes))
	for _, t := range s.themes {
		if t.IsAvailableInEditor {
			out = append(out, t)
		}
	}
	return out
}

// Presets returns the presets belonging to the currently selected theme.
func (s *Session) Presets() []models.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presetsFor(s.selectedTheme)
}

func (s *Session) presetsFor(themeName string) []models.Preset {
	var out []models.Preset
	for _, p := range s.presets {
		if p.ParentTheme == themeName {
			out = append(out, p)
		}
	}
	return out
}

// SelectedTheme returns the theme currently selected in the session, or nil
// when the course references a theme that no longer exists.
func (s *Session) SelectedTheme() *models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTheme(s.selectedTheme)
}

func (s *Session) findTheme(name string) *models.Theme {
	for i := range s.themes {
		if s.themes[i].Name == name {
			return &s.themes[i]
		}
	}
	return nil
}

// State reports the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.saved:
		return StateSaved
	case s.saving:
		return StateSaving
	case s.form == nil:
		return StateEmptyTheme
	case s.drifted:
		return StateDirty
	default:
		return StateReady
	}
}

// Drifted reports whether the live values diverge from the active baseline.
// Its result solely drives the restore-to-baseline affordance.
func (s *Session) Drifted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drifted
}

// Form returns the live form, or nil when the selected theme has no schema.
func (s *Session) Form() *form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SelectTheme switches the session to another theme. The live form is
// discarded and rebuilt against the new theme's schema, and any in-session
// preset choice is cleared: a preset belongs to exactly one theme.
func (s *Session) SelectTheme(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTheme = name
	s.selection = theme.NoSelection()
	s.selectorValue = nil
	s.rebuildForm()
}

// SelectPreset records an explicit preset choice (nil means "no preset"),
// restores the chosen baseline into the form, and resets drift: immediately
// after a preset switch the form matches its baseline by definition.
func (s *Session) SelectPreset(id *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.selection = theme.SelectNone()
	} else {
		s.selection = theme.SelectPreset(*id)
	}
	s.selectorValue = id
	if s.form != nil {
		s.form.Restore(s.baselineTree())
	}
	s.drifted = false
}

// SetField records a single field edit and synchronously recomputes drift,
// before any caller-visible read of the session.
func (s *Session) SetField(key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return false
	}
	fld, ok := s.form.Field(key)
	if !ok {
		return false
	}
	fld.SetValue(value)
	s.recomputeDrift()
	return true
}

// RestoreBaseline asks for confirmation, then writes the active baseline's
// values back into the form. Reports whether the restore ran. Drift is
// false immediately afterwards.
func (s *Session) RestoreBaseline(ctx context.Context) bool {
	if !s.notifier.Confirm(ctx, "Restore all settings to the selected preset or theme defaults?") {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return false
	}
	s.form.Restore(s.baselineTree())
	s.drifted = false
	return true
}

// ActivePreset resolves the current baseline preset under the full
// precedence order, including the course's persisted reference.
func (s *Session) ActivePreset() *models.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePreset(true)
}

// activePreset resolves the baseline preset. When includePersisted is
// false the course's cached reference is ignored, which is the rule for
// deciding whether a preset is being applied on save rather than merely
// displayed as a baseline.
func (s *Session) activePreset(includePersisted bool) *models.Preset {
	t := s.findTheme(s.selectedTheme)
	course := s.course
	if !includePersisted {
		course = nil
	}
	return theme.ResolveActivePreset(t, s.selection, s.selectorValue, course, s.presets)
}

// baselineTree returns the active baseline's value tree: the resolved
// preset's properties, or the theme defaults when no preset resolves.
func (s *Session) baselineTree() models.VariableTree {
	if p := s.activePreset(true); p != nil {
		return p.Properties
	}
	if s.schema == nil {
		return models.VariableTree{}
	}
	return theme.Defaults(s.schema)
}

// recomputeDrift compares live flattened values against the flattened
// baseline. Callers hold s.mu.
func (s *Session) recomputeDrift() {
	if s.form == nil {
		s.drifted = false
		return
	}
	live := theme.Flatten(s.form.Values())
	baseline := theme.Flatten(s.baselineTree())
	s.drifted = theme.HasDrifted(live, baseline)
}

// rebuildForm discards the live form and rebuilds it for the selected
// theme. The form is seeded with the course's persisted variables only when
// the selected theme is the saved one; any other theme starts from its
// defaults. Callers hold s.mu.
func (s *Session) rebuildForm() {
	s.form = nil
	s.schema = nil
	s.drifted = false

	t := s.findTheme(s.selectedTheme)
	schema, err := theme.SchemaOf(t)
	if err != nil {
		// Not an error to surface: the theme simply has nothing to edit.
		slog.Debug("theme not customizable", "theme", s.selectedTheme)
		return
	}
	s.schema = schema
	s.form = form.Build(schema)

	if s.selectedTheme == s.course.Theme && len(s.course.ThemeVariables) > 0 {
		s.form.Restore(s.course.ThemeVariables)
	} else {
		s.form.Restore(theme.Defaults(schema))
	}
	s.recomputeDrift()
}
