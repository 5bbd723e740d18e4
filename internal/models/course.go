// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is the course entity as seen by the theme editor. Theme, ThemePreset
// and ThemeVariables together form the persisted theme configuration; they
// are mutated only through the save orchestrator's three phases.
//
// Theme and ThemePreset are weak references by name/id. Either may dangle if
// the referenced theme or preset was removed after the course last saved;
// the engine treats a dangling reference as "no baseline".
type Course struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Theme          string       `json:"_theme"`
	ThemePreset    *uuid.UUID   `json:"_themePreset,omitempty"`
	ThemeVariables VariableTree `json:"themeVariables,omitempty"`
	EnabledPlugins []string     `json:"_enabledPlugins"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// PluginsWithTheme returns the enabled-plugins list after switching the course from
// its current theme to newTheme, preserving set semantics: the old theme name
// is removed, the new one appears exactly once, everything else is kept.
func (c *Course) PluginsWithTheme(newTheme string) []string {
	out := make([]string, 0, len(c.EnabledPlugins)+1)
	for _, p := range c.EnabledPlugins {
		if p == c.Theme || p == newTheme {
			continue
		}
		out = append(out, p)
	}
	return append(out, newTheme)
}
