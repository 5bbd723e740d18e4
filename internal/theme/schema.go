// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme implements the theme configuration reconciliation engine:
// schema interpretation, flatten/restore of nested variable trees, preset
// baseline resolution, and drift detection between live form values and
// the active baseline.
package theme

import (
	"errors"
	"fmt"
	"sort"

	"coursecraft/internal/models"
)

// ErrSchemaUnavailable marks a theme with no customizable variables.
// Callers must treat the theme as non-editable, not as a failure to
// surface to the user.
var ErrSchemaUnavailable = errors.New("theme has no customizable properties")

// Schema is a read-only view over a theme's declared variable tree.
// The tree is at most two levels deep: top-level keys are either leaves
// (default value + input type) or groups of leaves.
type Schema struct {
	vars map[string]models.VariableDef
}

// SchemaOf builds a Schema for the given theme. Returns ErrSchemaUnavailable
// when the theme declares no variables.
func SchemaOf(t *models.Theme) (*Schema, error) {
	if t == nil || !t.IsCustomizable() {
		return nil, ErrSchemaUnavailable
	}
	return &Schema{vars: t.Properties.Variables}, nil
}

// Keys returns the top-level variable keys in sorted order. Sorting gives
// the codec a stable iteration order, which pins down last-write-wins
// behavior when two groups share a sub-key name.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the definition for a top-level key.
func (s *Schema) Lookup(key string) (models.VariableDef, bool) {
	d, ok := s.vars[key]
	return d, ok
}

// GroupKeys returns the sorted sub-keys of a group, or nil if the key is
// absent or a leaf.
func (s *Schema) GroupKeys(key string) []string {
	d, ok := s.vars[key]
	if !ok || !d.IsGroup() {
		return nil
	}
	keys := make([]string, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LeafKeys returns every leaf key reachable from the schema, with group
// sub-keys promoted to the top level. The flattened list is sorted as a
// whole, so the ordering contract is independent of which group a sub-key
// came from. This is exactly the key set of the flattened form the editor
// presents.
func (s *Schema) LeafKeys() []string {
	var leaves []string
	for _, k := range s.Keys() {
		d := s.vars[k]
		if d.IsGroup() {
			leaves = append(leaves, s.GroupKeys(k)...)
			continue
		}
		leaves = append(leaves, k)
	}
	sort.Strings(leaves)
	return leaves
}

// Leaf resolves a leaf definition by its flattened key, searching top-level
// leaves first and then group sub-keys in stable order.
func (s *Schema) Leaf(key string) (models.VariableDef, bool) {
	if d, ok := s.vars[key]; ok && !d.IsGroup() {
		return d, true
	}
	for _, k := range s.Keys() {
		d := s.vars[k]
		if !d.IsGroup() {
			continue
		}
		if sub, ok := d.Properties[key]; ok {
			return sub, true
		}
	}
	return models.VariableDef{}, false
}

// Validate reports schema authoring errors: a leaf without a default, a
// group nested inside a group, or the same sub-key appearing in more than
// one place. Collisions make flattening lossy, so theme packages should be
// rejected at load time rather than silently losing a value.
func (s *Schema) Validate() error {
	seen := make(map[string]string, len(s.vars))
	for _, k := range s.Keys() {
		d := s.vars[k]
		if !d.IsGroup() {
			if d.Default == nil {
				return fmt.Errorf("variable %q has no default", k)
			}
			if prev, dup := seen[k]; dup {
				return fmt.Errorf("variable key %q collides with %s", k, prev)
			}
			seen[k] = "top-level variable"
			continue
		}
		for _, sub := range s.GroupKeys(k) {
			sd := d.Properties[sub]
			if sd.IsGroup() {
				return fmt.Errorf("group %q.%q: nesting deeper than one level", k, sub)
			}
			if sd.Default == nil {
				return fmt.Errorf("variable %q.%q has no default", k, sub)
			}
			if prev, dup := seen[sub]; dup {
				return fmt.Errorf("variable key %q in group %q collides with %s", sub, k, prev)
			}
			seen[sub] = fmt.Sprintf("group %q", k)
		}
	}
	return nil
}
