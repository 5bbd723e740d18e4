package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: two sample
// themes (one with a nested variable schema, one without any schema) and a
// sample course assigned to the customizable one. No-op if themes exist.
func Seed(db *sql.DB) error {
	// Check if any themes are installed already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM themes").Scan(&count); err != nil {
		return fmt.Errorf("seed check themes: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	vanillaProps, err := json.Marshal(map[string]any{
		"variables": map[string]any{
			"colorPrimary": map[string]any{"default": "#0f766e", "inputType": "ColourPicker"},
			"colorAccent":  map[string]any{"default": "#f59e0b", "inputType": "ColourPicker"},
			"fontFamily":   map[string]any{"default": "Inter, sans-serif", "inputType": "Text"},
			"heroImage":    map[string]any{"default": "", "inputType": "Asset:image"},
			"layout": map[string]any{
				"properties": map[string]any{
					"spacing":  map[string]any{"default": 8, "inputType": "Number"},
					"maxWidth": map[string]any{"default": 1024, "inputType": "Number"},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("seed encode theme properties: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO themes (name, display_name, schema_name, is_available_in_editor, properties)
		VALUES ($1, $2, $3, TRUE, $4), ($5, $6, '', TRUE, '{}'::jsonb)
	`, "vanilla", "Vanilla", "theme-vanilla", vanillaProps,
		"minimal", "Minimal")
	if err != nil {
		return fmt.Errorf("seed insert themes: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO courses (title, theme, enabled_plugins)
		VALUES ($1, $2, $3)
	`, "Sample Course", "vanilla", `["vanilla"]`)
	if err != nil {
		return fmt.Errorf("seed insert course: %w", err)
	}

	slog.Info("database seeded with sample themes and course")
	return nil
}
