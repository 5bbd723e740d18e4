// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"coursecraft/internal/database"
	"coursecraft/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "coursecraft")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "coursecraft")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanThemes removes test themes by name. Call in t.Cleanup().
func cleanThemes(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM themes WHERE name = $1", name)
	}
}

// cleanPresets removes test presets by parent theme. Call in t.Cleanup().
func cleanPresets(t *testing.T, db *sql.DB, parentThemes ...string) {
	t.Helper()
	for _, parent := range parentThemes {
		db.Exec("DELETE FROM theme_presets WHERE parent_theme = $1", parent)
	}
}

// cleanCourses removes test courses by title. Call in t.Cleanup().
func cleanCourses(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM courses WHERE title = $1", title)
	}
}

// installTheme upserts a customizable test theme and registers cleanup.
func installTheme(t *testing.T, db *sql.DB, name string) *models.Theme {
	t.Helper()
	th := &models.Theme{
		Name:                name,
		DisplayName:         "Test " + name,
		SchemaName:          "theme-" + name,
		IsAvailableInEditor: true,
		Properties: models.ThemeProperties{
			Variables: map[string]models.VariableDef{
				"colorPrimary": {Default: "#000", InputType: "ColourPicker"},
				"layout": {
					Properties: map[string]models.VariableDef{
						"spacing": {Default: float64(8), InputType: "Number"},
					},
				},
			},
		},
	}
	if err := NewThemeStore(db).Upsert(context.Background(), th); err != nil {
		t.Fatalf("install theme: %v", err)
	}
	t.Cleanup(func() { cleanThemes(t, db, name) })
	return th
}
