// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"coursecraft/internal/models"
)

// PresetsList returns the presets belonging to one theme.
func (a *API) PresetsList(w http.ResponseWriter, r *http.Request) {
	themeName := chi.URLParam(r, "name")

	presets, err := a.presetStore.ListByParentTheme(r.Context(), themeName)
	if err != nil {
		writeError(w, err)
		return
	}
	if presets == nil {
		presets = []models.Preset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

// presetRequest is the body for preset create and rename calls.
type presetRequest struct {
	DisplayName string              `json:"display_name"`
	Properties  models.VariableTree `json:"properties"`
}

// PresetCreate stores a new preset under a theme. The name must be unique
// within that theme; the check runs before any write so a duplicate never
// reaches the database.
func (a *API) PresetCreate(w http.ResponseWriter, r *http.Request) {
	themeName := chi.URLParam(r, "name")

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if reason := validatePresetName(req.DisplayName); reason != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: reason})
		return
	}

	t, err := a.themeStore.FindByName(r.Context(), themeName)
	if err != nil {
		writeError(w, err)
		return
	}
	if t == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "theme not found"})
		return
	}

	siblings, err := a.presetStore.ListByParentTheme(r.Context(), themeName)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, p := range siblings {
		if p.DisplayName == req.DisplayName {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "a preset with this name already exists for this theme"})
			return
		}
	}

	preset := &models.Preset{
		DisplayName: req.DisplayName,
		ParentTheme: themeName,
		Properties:  req.Properties,
	}
	if err := a.presetStore.Create(r.Context(), preset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, preset)
}

// PresetRename changes a preset's display name. The new name must be
// unique among the presets of the same theme.
func (a *API) PresetRename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preset id"})
		return
	}

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if reason := validatePresetName(req.DisplayName); reason != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: reason})
		return
	}

	preset, err := a.presetStore.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if preset == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "preset not found"})
		return
	}

	siblings, err := a.presetStore.ListByParentTheme(r.Context(), preset.ParentTheme)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, p := range siblings {
		if p.ID != id && p.DisplayName == req.DisplayName {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "a preset with this name already exists for this theme"})
			return
		}
	}

	if err := a.presetStore.Rename(r.Context(), id, req.DisplayName); err != nil {
		writeError(w, err)
		return
	}
	preset.DisplayName = req.DisplayName
	writeJSON(w, http.StatusOK, preset)
}

// PresetDelete removes a preset. Courses referencing it keep a dangling
// reference that the editor resolves to "no baseline".
func (a *API) PresetDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preset id"})
		return
	}

	preset, err := a.presetStore.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if preset == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "preset not found"})
		return
	}

	if err := a.presetStore.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PresetApply copies a preset's stored values onto a course server-side and
// records the course's preset reference. This is the save orchestrator's
// phase-2 surface, also callable on its own.
func (a *API) PresetApply(w http.ResponseWriter, r *http.Request) {
	presetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preset id"})
		return
	}
	courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid course id"})
		return
	}

	preset, err := a.presetStore.FindByID(r.Context(), presetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if preset == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "preset not found"})
		return
	}

	if err := a.courseStore.ApplyPreset(r.Context(), presetID, courseID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
