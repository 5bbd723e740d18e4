// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// SavePreset snapshots the live form's committed values as a new named
// preset under the selected theme. Name validation is local: an empty name
// or a duplicate displayName within the same parent theme is rejected with
// a ValidationError before any remote call. On success the preset becomes
// the session's explicit selection, so drift resets to false.
func (s *Session) SavePreset(ctx context.Context, displayName string) (*models.Preset, error) {
	displayName = strings.TrimSpace(displayName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if displayName == "" {
		return nil, &ValidationError{Reason: "preset name must not be empty"}
	}
	if s.form == nil {
		return nil, &ValidationError{Reason: "the selected theme has no settings to save"}
	}
	for _, p := range s.presetsFor(s.selectedTheme) {
		if p.DisplayName == displayName {
			return nil, &ValidationError{Reason: "a preset with this name already exists for this theme"}
		}
	}

	preset := &models.Preset{
		DisplayName: displayName,
		ParentTheme: s.selectedTheme,
		Properties:  theme.Extract(s.schema, s.form.Commit()),
	}
	if err := s.presetWriter.Create(ctx, preset); err != nil {
		return nil, &SaveError{Err: err}
	}

	s.presets = append(s.presets, *preset)
	s.selection = theme.SelectPreset(preset.ID)
	id := preset.ID
	s.selectorValue = &id
	s.drifted = false

	slog.Info("preset saved", "preset", preset.ID, "theme", s.selectedTheme, "name", displayName)
	return preset, nil
}

// RenamePreset changes a preset's display name, applying the same local
// duplicate-name validation as SavePreset.
func (s *Session) RenamePreset(ctx context.Context, id uuid.UUID, displayName string) error {
	displayName = strings.TrimSpace(displayName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if displayName == "" {
		return &ValidationError{Reason: "preset name must not be empty"}
	}
	idx := -1
	for i := range s.presets {
		if s.presets[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ValidationError{Reason: "preset not found"}
	}
	for i, p := range s.presets {
		if i != idx && p.ParentTheme == s.presets[idx].ParentTheme && p.DisplayName == displayName {
			return &ValidationError{Reason: "a preset with this name already exists for this theme"}
		}
	}
	if err := s.presetWriter.Rename(ctx, id, displayName); err != nil {
		return &SaveError{Err: err}
	}
	s.presets[idx].DisplayName = displayName
	return nil
}

// DeletePreset removes a preset from the catalogue. On failure the preset
// stays in the session's list; it is only removed after confirmed success.
func (s *Session) DeletePreset(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.presetWriter.Delete(ctx, id); err != nil {
		derr := &DestroyError{Resource: "preset", Err: err}
		slog.Error("preset delete failed", "preset", id, "error", err)
		return derr
	}

	for i, p := range s.presets {
		if p.ID == id {
			s.presets = append(s.presets[:i], s.presets[i+1:]...)
			break
		}
	}
	// Clear a now-dangling selection so the baseline falls back cleanly.
	if s.selectorValue != nil && *s.selectorValue == id {
		s.selection = theme.SelectNone()
		s.selectorValue = nil
		s.recomputeDrift()
	}
	return nil
}
