// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"github.com/google/uuid"

	"coursecraft/internal/models"
)

// Selection records the user's in-session preset choice. It distinguishes
// three states: no choice made yet, an explicit "no preset" choice, and an
// explicit preset id. The zero value means no choice has been made.
type Selection struct {
	made bool
	id   *uuid.UUID
}

// NoSelection returns the empty selection: the user has not touched the
// preset selector this session.
func NoSelection() Selection {
	return Selection{}
}

// SelectNone records an explicit "no preset" choice.
func SelectNone() Selection {
	return Selection{made: true}
}

// SelectPreset records an explicit choice of the given preset.
func SelectPreset(id uuid.UUID) Selection {
	return Selection{made: true, id: &id}
}

// Made reports whether the user made any explicit choice this session.
func (s Selection) Made() bool { return s.made }

// ID returns the chosen preset id, or nil for "no preset" or no choice.
func (s Selection) ID() *uuid.UUID { return s.id }

// ResolveActivePreset determines the single baseline preset for drift
// comparison, or nil when the baseline falls back to theme defaults.
//
// Precedence, first match wins:
//  1. an explicit in-session selection (including an explicit "none"),
//  2. the live selector control's current value,
//  3. the course's persisted preset reference.
//
// A preset only qualifies if its parent theme matches the given theme, and
// a reference that resolves to nothing (deleted preset, theme mismatch)
// yields nil rather than falling through: a stale persisted choice must not
// override a deliberate in-session one.
func ResolveActivePreset(t *models.Theme, sel Selection, selectorValue *uuid.UUID, course *models.Course, presets []models.Preset) *models.Preset {
	if t == nil {
		return nil
	}
	if sel.Made() {
		if sel.ID() == nil {
			return nil
		}
		return findPreset(presets, *sel.ID(), t.Name)
	}
	if selectorValue != nil {
		return findPreset(presets, *selectorValue, t.Name)
	}
	if course != nil && course.ThemePreset != nil {
		return findPreset(presets, *course.ThemePreset, t.Name)
	}
	return nil
}

// findPreset locates a preset by id, guarding against presets that belong
// to a different theme.
func findPreset(presets []models.Preset, id uuid.UUID, parentTheme string) *models.Preset {
	for i := range presets {
		if presets[i].ID == id && presets[i].ParentTheme == parentTheme {
			return &presets[i]
		}
	}
	return nil
}
