// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"sort"

	"coursecraft/internal/models"
)

// Flatten converts a possibly one-level-nested value tree into a single
// flat key→value map. Group sub-keys are promoted directly to the top
// level; scalar entries are copied as-is. Keys are walked in sorted order,
// so a sub-key colliding across groups resolves last-write-wins under a
// stable ordering. Already-flat input passes through unchanged, which makes
// the operation idempotent.
func Flatten(tree models.VariableTree) models.VariableTree {
	flat := make(models.VariableTree, len(tree))
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		group, ok := asTree(tree[k])
		if !ok {
			flat[k] = tree[k]
			continue
		}
		subKeys := make([]string, 0, len(group))
		for sub := range group {
			subKeys = append(subKeys, sub)
		}
		sort.Strings(subKeys)
		for _, sub := range subKeys {
			flat[sub] = group[sub]
		}
	}
	return flat
}

// Defaults walks the schema and produces the theme's default value tree in
// the same nested shape as persisted variable values: leaf defaults at the
// top level, group defaults under their group key.
func Defaults(s *Schema) models.VariableTree {
	tree := make(models.VariableTree)
	for _, k := range s.Keys() {
		d, _ := s.Lookup(k)
		if !d.IsGroup() {
			tree[k] = d.Default
			continue
		}
		group := make(map[string]any, len(d.Properties))
		for _, sub := range s.GroupKeys(k) {
			group[sub] = d.Properties[sub].Default
		}
		tree[k] = group
	}
	return tree
}

// Extract re-nests a flat attribute map (a committed form's values) into
// the tree shape declared by the schema. The inverse direction of Flatten,
// used when serializing the live form for persistence: top-level leaves are
// copied by key, group values are gathered from the flat map under the
// group's sub-keys.
func Extract(s *Schema, attrs map[string]any) models.VariableTree {
	tree := make(models.VariableTree)
	for _, k := range s.Keys() {
		d, _ := s.Lookup(k)
		if !d.IsGroup() {
			tree[k] = attrs[k]
			continue
		}
		group := make(map[string]any, len(d.Properties))
		for _, sub := range s.GroupKeys(k) {
			group[sub] = attrs[sub]
		}
		tree[k] = group
	}
	return tree
}

// asTree reports whether a tree value is itself a nested value map.
func asTree(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case models.VariableTree:
		return m, true
	default:
		return nil, false
	}
}
