package handlers

import (
	"strings"
	"unicode/utf8"

	"coursecraft/internal/models"
)

// Validation limits for theme and preset fields.
const (
	maxThemeNameLen       = 100
	maxDisplayNameLen     = 200
	maxPresetNameLen      = 200
	maxSchemaNestingDepth = 1
)

// validateTheme checks an installed theme definition and returns the first
// error found, or "" when valid.
func validateTheme(t *models.Theme) string {
	if t.Name == "" {
		return "Theme name is required."
	}
	if utf8.RuneCountInString(t.Name) > maxThemeNameLen {
		return "Theme name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(t.DisplayName) > maxDisplayNameLen {
		return "Theme display name is too long (max 200 characters)."
	}
	return validateVariables(t.Properties.Variables, 0)
}

// validateVariables rejects schema shapes the editor cannot render: groups
// nested deeper than one level, and group entries that also carry a default.
func validateVariables(vars map[string]models.VariableDef, depth int) string {
	for key, def := range vars {
		if !def.IsGroup() {
			continue
		}
		if depth >= maxSchemaNestingDepth {
			return "Variable group " + key + " is nested too deeply (max 1 level)."
		}
		if def.Default != nil {
			return "Variable group " + key + " must not carry a default value."
		}
		if reason := validateVariables(def.Properties, depth+1); reason != "" {
			return reason
		}
	}
	return ""
}

// validatePresetName checks a preset display name from a create or rename
// request and returns the first error found, or "" when valid.
func validatePresetName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Preset name is required."
	}
	if utf8.RuneCountInString(name) > maxPresetNameLen {
		return "Preset name is too long (max 200 characters)."
	}
	return ""
}
