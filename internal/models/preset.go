// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable snapshot of theme variable values scoped to
// one parent theme. Presets are shared across all courses using that theme;
// deleting or renaming one never touches course data.
type Preset struct {
	ID          uuid.UUID     `json:"id"`
	DisplayName string        `json:"display_name"`
	ParentTheme string        `json:"parent_theme"`
	Properties  VariableTree  `json:"properties"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// VariableTree holds theme variable values, either flat or with one level
// of group nesting mirroring the theme's variable schema. Values are plain
// JSON scalars or, for group keys, nested maps of scalars.
type VariableTree map[string]any
