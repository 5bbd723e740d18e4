// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// ThemesList returns the themes selectable in the editor. Hidden themes
// stay out of the payload; the full catalogue is an internal concern.
func (a *API) ThemesList(w http.ResponseWriter, r *http.Request) {
	themes, err := a.catalogue().Themes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]models.Theme, 0, len(themes))
	for _, t := range themes {
		if t.IsAvailableInEditor {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ThemeInstall installs or updates a theme package definition. The cached
// catalogue is invalidated so the next editor open sees the change.
func (a *API) ThemeInstall(w http.ResponseWriter, r *http.Request) {
	var t models.Theme
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	t.Name = strings.TrimSpace(t.Name)
	if reason := validateTheme(&t); reason != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: reason})
		return
	}

	// Flattening is lossy for colliding sub-keys and undefined for missing
	// defaults, so those schemas are refused before they reach the catalogue.
	// A schema-less theme is fine; it just has nothing to edit.
	if sc, err := theme.SchemaOf(&t); err == nil {
		if verr := sc.Validate(); verr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid variable schema: " + verr.Error() + "."})
			return
		}
	} else if !errors.Is(err, theme.ErrSchemaUnavailable) {
		writeError(w, err)
		return
	}

	if err := a.themeStore.Upsert(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	if a.catalogueCache != nil {
		a.catalogueCache.Invalidate(r.Context())
	}
	writeJSON(w, http.StatusOK, t)
}
