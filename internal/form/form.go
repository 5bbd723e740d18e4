// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package form provides the dynamic form capability consumed by the theme
// editor: given a variable schema it builds an editable form with one flat
// field per reachable leaf, per-field get/set, value restoration dispatched
// on the field's input kind, and a Commit operation that writes all field
// values back into an attribute map.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"coursecraft/internal/models"
	"coursecraft/internal/theme"
)

// Kind classifies a field's input type for value restoration. Plain fields
// only accept string-coerced values; color pickers and asset references
// accept structured values unchanged.
type Kind int

const (
	KindPlain Kind = iota
	KindColorPicker
	KindAssetReference
)

// KindOf maps a schema input type tag to its field kind.
func KindOf(inputType string) Kind {
	switch {
	case inputType == "ColourPicker":
		return KindColorPicker
	case strings.Contains(inputType, "Asset"):
		return KindAssetReference
	default:
		return KindPlain
	}
}

// restorer applies a baseline value to a field. One implementation per
// Kind, so call sites never string-match input type tags.
type restorer interface {
	restore(f *Field, value any)
}

type plainRestorer struct{}

func (plainRestorer) restore(f *Field, value any) {
	f.value = coerceString(value)
}

type colorPickerRestorer struct{}

func (colorPickerRestorer) restore(f *Field, value any) {
	f.value = value
}

type assetRestorer struct{}

func (assetRestorer) restore(f *Field, value any) {
	f.value = value
}

// Field is a single editable entry in a built form.
type Field struct {
	Key      string
	Kind     Kind
	value    any
	restorer restorer
}

// Value returns the field's current value.
func (f *Field) Value() any { return f.value }

// SetValue overwrites the field's current value, as a user edit would.
func (f *Field) SetValue(v any) { f.value = v }

// Restore applies a baseline value to the field according to its kind.
func (f *Field) Restore(v any) { f.restorer.restore(f, v) }

// Form is an in-memory editable form over a theme's variable schema.
// The form is always flat: group sub-keys become top-level fields.
type Form struct {
	schema *theme.Schema
	fields map[string]*Field
	keys   []string
}

// Build constructs a form from the schema, one field per reachable leaf,
// seeded with the schema defaults.
func Build(s *theme.Schema) *Form {
	keys := s.LeafKeys()
	fields := make(map[string]*Field, len(keys))
	for _, k := range keys {
		def, _ := s.Leaf(k)
		kind := KindOf(def.InputType)
		f := &Field{Key: k, Kind: kind}
		switch kind {
		case KindColorPicker:
			f.restorer = colorPickerRestorer{}
		case KindAssetReference:
			f.restorer = assetRestorer{}
		default:
			f.restorer = plainRestorer{}
		}
		f.Restore(def.Default)
		fields[k] = f
	}
	return &Form{schema: s, fields: fields, keys: keys}
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *theme.Schema { return f.schema }

// Keys returns the form's field keys in stable order.
func (f *Form) Keys() []string { return f.keys }

// Field returns the field for a flattened key.
func (f *Form) Field(key string) (*Field, bool) {
	fld, ok := f.fields[key]
	return fld, ok
}

// Values returns the form's current values as a flat tree, the shape the
// drift detector compares against a flattened baseline.
func (f *Form) Values() models.VariableTree {
	vals := make(models.VariableTree, len(f.fields))
	for k, fld := range f.fields {
		vals[k] = fld.value
	}
	return vals
}

// Restore walks a possibly nested baseline tree and applies each value to
// its field. Unknown keys are skipped, matching the tolerance the editor
// needs for presets saved against an older schema revision.
func (f *Form) Restore(tree models.VariableTree) {
	for key, v := range tree {
		// A key naming a field is a leaf value even when it is a map:
		// pickers and asset references carry structured values.
		if fld, ok := f.fields[key]; ok {
			fld.Restore(v)
			continue
		}
		if group, ok := v.(map[string]any); ok {
			for sub, sv := range group {
				if fld, ok := f.fields[sub]; ok {
					fld.Restore(sv)
				}
			}
		}
	}
}

// Commit writes all field values into a fresh attribute map, keyed by the
// flattened field keys. The caller re-nests them by schema shape.
func (f *Form) Commit() map[string]any {
	attrs := make(map[string]any, len(f.fields))
	for k, fld := range f.fields {
		attrs[k] = fld.value
	}
	return attrs
}

// coerceString renders a scalar in its canonical string form for plain
// input fields.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprint(s)
	}
}
