// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the CourseCraft theme
// service. All endpoints speak JSON and receive their dependencies through
// the handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"coursecraft/internal/cache"
	"coursecraft/internal/editor"
	"coursecraft/internal/models"
	"coursecraft/internal/store"
)

// API groups the theme service HTTP handlers and their dependencies.
// catalogueCache and locks may be nil when Valkey is not configured; the
// handlers then read straight from the stores and skip cross-instance
// save locking.
type API struct {
	themeStore     *store.ThemeStore
	presetStore    *store.PresetStore
	courseStore    *store.CourseStore
	catalogueCache *cache.CatalogueCache
	locks          editor.SaveLocker
}

// NewAPI creates a new API handler group with the given dependencies.
func NewAPI(themes *store.ThemeStore, presets *store.PresetStore, courses *store.CourseStore, catalogueCache *cache.CatalogueCache, locks editor.SaveLocker) *API {
	return &API{
		themeStore:     themes,
		presetStore:    presets,
		courseStore:    courses,
		catalogueCache: catalogueCache,
		locks:          locks,
	}
}

// catalogue returns the editor's read-side catalogue, serving the theme
// list from Valkey when cached.
func (a *API) catalogue() editor.Catalogue {
	return &storeCatalogue{
		themes:  a.themeStore,
		presets: a.presetStore,
		cached:  a.catalogueCache,
	}
}

// storeCatalogue adapts the stores to the editor's Catalogue interface.
type storeCatalogue struct {
	themes  *store.ThemeStore
	presets *store.PresetStore
	cached  *cache.CatalogueCache
}

func (c *storeCatalogue) Themes(ctx context.Context) ([]models.Theme, error) {
	if c.cached != nil {
		if themes, ok := c.cached.GetThemes(ctx); ok {
			return themes, nil
		}
	}
	themes, err := c.themes.List(ctx)
	if err != nil {
		return nil, err
	}
	if c.cached != nil {
		c.cached.SetThemes(ctx, themes)
	}
	return themes, nil
}

func (c *storeCatalogue) Presets(ctx context.Context) ([]models.Preset, error) {
	return c.presets.List(ctx)
}

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps an editor or store failure to an HTTP status and a JSON
// error body. Validation problems are the client's fault; everything else
// is reported as a server failure without leaking the cause.
func writeError(w http.ResponseWriter, err error) {
	var verr *editor.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Reason})
	case errors.Is(err, editor.ErrSaveInFlight), errors.Is(err, cache.ErrLocked):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "a save is already in progress"})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
