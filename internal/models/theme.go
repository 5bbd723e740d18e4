// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Theme describes a selectable visual theme installed on the platform.
// Themes are defined by theme packages and are read-only to the editor:
// the service loads them once per editing session and never mutates them.
type Theme struct {
	Name                string          `json:"name"`
	DisplayName         string          `json:"display_name"`
	SchemaName          string          `json:"schema_name"`
	IsAvailableInEditor bool            `json:"is_available_in_editor"`
	Properties          ThemeProperties `json:"properties"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ThemeProperties is the declared customization surface of a theme.
// Variables maps a variable key to either a leaf definition or a group
// of leaf definitions. Nesting is bounded to one level.
type ThemeProperties struct {
	Variables map[string]VariableDef `json:"variables,omitempty"`
}

// VariableDef is a single entry in a theme's variable schema. A leaf
// carries a default value and an input type tag; a group carries a nested
// map of leaf definitions and nothing else.
type VariableDef struct {
	Default    any                    `json:"default,omitempty"`
	InputType  string                 `json:"inputType,omitempty"`
	Properties map[string]VariableDef `json:"properties,omitempty"`
}

// IsGroup reports whether the definition is a group of sub-variables
// rather than a single editable leaf.
func (d VariableDef) IsGroup() bool {
	return len(d.Properties) > 0
}

// IsCustomizable reports whether the theme declares any variables at all.
// Themes without variables are still assignable but expose nothing to edit.
func (t *Theme) IsCustomizable() bool {
	return len(t.Properties.Variables) > 0
}
