// Package router sets up all HTTP routes and middleware chains for the
// CourseCraft theme service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"coursecraft/internal/handlers"
	"coursecraft/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Theme catalogue
		r.Route("/themes", func(r chi.Router) {
			r.Get("/", api.ThemesList)
			r.Post("/", api.ThemeInstall)
			r.Get("/{name}/presets", api.PresetsList)
			r.Post("/{name}/presets", api.PresetCreate)
		})

		// Presets
		r.Route("/presets", func(r chi.Router) {
			r.Put("/{id}", api.PresetRename)
			r.Delete("/{id}", api.PresetDelete)
			r.Post("/{id}/apply/{courseID}", api.PresetApply)
		})

		// Course theme configuration
		r.Route("/courses", func(r chi.Router) {
			r.Get("/{id}/theme", api.CourseTheme)
			r.Put("/{id}/theme", api.CourseThemeSave)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
