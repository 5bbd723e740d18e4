// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"reflect"
	"strconv"

	"coursecraft/internal/models"
)

// HasDrifted compares the live form's flattened values against the active
// baseline's flattened values. It returns true when the two differ, which
// is what makes the "restore to baseline" affordance meaningful.
//
// Scalar comparison is normalized: a value that arrives as the string "8"
// is equal to the number 8, and JSON numbers compare by value regardless of
// their Go representation. Form fields hold string-coerced values while
// schema defaults and persisted trees hold typed JSON scalars, so a naive
// deep-equal would report permanent drift.
func HasDrifted(live, baseline models.VariableTree) bool {
	if len(live) != len(baseline) {
		return true
	}
	for k, lv := range live {
		bv, ok := baseline[k]
		if !ok {
			return true
		}
		if !scalarEqual(lv, bv) {
			return true
		}
	}
	return false
}

// scalarEqual reports value equality between two flattened entries after
// normalizing incidental representation differences.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	na, aNum := toFloat(a)
	nb, bNum := toFloat(b)
	if aNum && bNum {
		return na == nb
	}
	sa, aStr := toString(a)
	sb, bStr := toString(b)
	if aStr && bStr {
		return sa == sb
	}
	// Residual structured values (slices, nested maps inside a leaf).
	return reflect.DeepEqual(a, b)
}

// toFloat normalizes numeric values and numeric-looking strings to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toString renders scalar values in their canonical string form.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}
