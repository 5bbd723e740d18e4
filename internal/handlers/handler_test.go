// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
// Valkey is deliberately left unwired: every handler must work without the
// catalogue cache and the cross-instance save lock.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"coursecraft/internal/database"
	"coursecraft/internal/models"
	"coursecraft/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "coursecraft")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "coursecraft")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAPI wires an API handler group over the test database with a chi
// router carrying the same URL parameters as production routes.
func testAPI(t *testing.T, db *sql.DB) (*API, chi.Router) {
	t.Helper()

	api := NewAPI(store.NewThemeStore(db), store.NewPresetStore(db), store.NewCourseStore(db), nil, nil)

	r := chi.NewRouter()
	r.Get("/api/themes", api.ThemesList)
	r.Post("/api/themes", api.ThemeInstall)
	r.Get("/api/themes/{name}/presets", api.PresetsList)
	r.Post("/api/themes/{name}/presets", api.PresetCreate)
	r.Put("/api/presets/{id}", api.PresetRename)
	r.Delete("/api/presets/{id}", api.PresetDelete)
	r.Post("/api/presets/{id}/apply/{courseID}", api.PresetApply)
	r.Get("/api/courses/{id}/theme", api.CourseTheme)
	r.Put("/api/courses/{id}/theme", api.CourseThemeSave)
	return api, r
}

// installTestTheme writes a customizable theme with a nested group into
// the database and registers cleanup.
func installTestTheme(t *testing.T, db *sql.DB, name string) *models.Theme {
	t.Helper()

	theme := &models.Theme{
		Name:                name,
		DisplayName:         "Theme " + name,
		SchemaName:          "theme-" + name,
		IsAvailableInEditor: true,
		Properties: models.ThemeProperties{
			Variables: map[string]models.VariableDef{
				"colorPrimary": {Default: "#000000", InputType: "ColourPicker"},
				"fontFamily":   {Default: "serif", InputType: "Text"},
				"layout": {
					Properties: map[string]models.VariableDef{
						"spacing": {Default: float64(8), InputType: "Number"},
					},
				},
			},
		},
	}
	if err := store.NewThemeStore(db).Upsert(context.Background(), theme); err != nil {
		t.Fatalf("install theme: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM theme_presets WHERE parent_theme = $1", name)
		db.Exec("DELETE FROM themes WHERE name = $1", name)
	})
	return theme
}

// createTestCourse inserts a course assigned to the given theme.
func createTestCourse(t *testing.T, db *sql.DB, title, themeName string) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:          title,
		Theme:          themeName,
		ThemeVariables: models.VariableTree{},
		EnabledPlugins: []string{themeName},
	}
	if err := store.NewCourseStore(db).Create(context.Background(), course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM courses WHERE id = $1", course.ID)
	})
	return course
}

// doJSON performs a request with an optional JSON body against the router
// and returns the recorder.
func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		// Sent verbatim so tests can exercise malformed payloads.
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
