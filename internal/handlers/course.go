// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"coursecraft/internal/editor"
	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// courseThemeResponse is the editor payload for one course: the current
// configuration plus everything the client needs to render the form.
type courseThemeResponse struct {
	Course       *models.Course      `json:"course"`
	State        editor.State        `json:"state"`
	Themes       []models.Theme      `json:"themes"`
	Presets      []models.Preset     `json:"presets"`
	ActivePreset *uuid.UUID          `json:"active_preset"`
	Values       models.VariableTree `json:"values,omitempty"`
	Defaults     models.VariableTree `json:"defaults,omitempty"`
	Drifted      bool                `json:"drifted"`
}

// saveThemeRequest is the body for a course theme save. Preset is
// tri-state: absent means no choice was made this session, JSON null means
// "no preset" explicitly, and an id selects that preset.
type saveThemeRequest struct {
	Theme  string          `json:"theme"`
	Preset json.RawMessage `json:"preset"`
	Values map[string]any  `json:"values"`
}

// newSession builds an editing session for one course. Saves run through
// the orchestrator with the configured lock; restores are auto-confirmed
// since an API client confirms before calling.
func (a *API) newSession(r *http.Request, course *models.Course) (*editor.Session, error) {
	orch := editor.NewOrchestrator(a.courseStore, a.locks)
	return editor.NewSession(r.Context(), course, a.catalogue(), a.presetStore, orch, &editor.LogNotifier{AutoConfirm: true})
}

// loadCourse resolves the {id} URL parameter to a course, writing the
// error response itself when the course cannot be served.
func (a *API) loadCourse(w http.ResponseWriter, r *http.Request) *models.Course {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid course id"})
		return nil
	}
	course, err := a.courseStore.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil
	}
	if course == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "course not found"})
		return nil
	}
	return course
}

// CourseTheme returns the course's current theme configuration together
// with the selectable themes, the presets of its theme, the resolved
// baseline preset, and the live form values.
func (a *API) CourseTheme(w http.ResponseWriter, r *http.Request) {
	course := a.loadCourse(w, r)
	if course == nil {
		return
	}

	s, err := a.newSession(r, course)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := courseThemeResponse{
		Course:  course,
		State:   s.State(),
		Themes:  s.Themes(),
		Presets: s.Presets(),
		Drifted: s.Drifted(),
	}
	if resp.Presets == nil {
		resp.Presets = []models.Preset{}
	}
	if p := s.ActivePreset(); p != nil {
		id := p.ID
		resp.ActivePreset = &id
	}
	if f := s.Form(); f != nil {
		resp.Values = f.Values()
		resp.Defaults = theme.Defaults(f.Schema())
	}
	writeJSON(w, http.StatusOK, resp)
}

// CourseThemeSave applies a client's editing result to a course: theme
// choice, preset choice, and edited values, then runs the three-phase
// save. Phases that completed before a failure are not rolled back; the
// client retries the whole save.
func (a *API) CourseThemeSave(w http.ResponseWriter, r *http.Request) {
	course := a.loadCourse(w, r)
	if course == nil {
		return
	}

	var req saveThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	s, err := a.newSession(r, course)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Theme != "" {
		s.SelectTheme(req.Theme)
	}

	if len(req.Preset) > 0 {
		if string(req.Preset) == "null" {
			s.SelectPreset(nil)
		} else {
			var idStr string
			if err := json.Unmarshal(req.Preset, &idStr); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preset id"})
				return
			}
			id, err := uuid.Parse(idStr)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preset id"})
				return
			}
			s.SelectPreset(&id)
		}
	}

	for key, value := range req.Values {
		if !s.SetField(key, value) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown variable: " + key})
			return
		}
	}

	if err := s.Save(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Course())
}
