package theme

import (
	"reflect"
	"testing"

	"coursecraft/internal/models"
)

// TestDefaults verifies the scenario from the theme package docs: a leaf
// default at the top level and group defaults nested under the group key.
func TestDefaults(t *testing.T) {
	th := &models.Theme{
		Name: "scenario",
		Properties: models.ThemeProperties{
			Variables: map[string]models.VariableDef{
				"colorPrimary": {Default: "#000", InputType: "ColourPicker"},
				"layout": {
					Properties: map[string]models.VariableDef{
						"spacing": {Default: float64(8), InputType: "Number"},
					},
				},
			},
		},
	}
	s, err := SchemaOf(th)
	if err != nil {
		t.Fatalf("SchemaOf() error = %v", err)
	}

	want := models.VariableTree{
		"colorPrimary": "#000",
		"layout":       map[string]any{"spacing": float64(8)},
	}
	if got := Defaults(s); !reflect.DeepEqual(got, want) {
		t.Errorf("Defaults() = %v, want %v", got, want)
	}

	wantFlat := models.VariableTree{
		"colorPrimary": "#000",
		"spacing":      float64(8),
	}
	if got := Flatten(Defaults(s)); !reflect.DeepEqual(got, wantFlat) {
		t.Errorf("Flatten(Defaults()) = %v, want %v", got, wantFlat)
	}
}

// TestFlatten verifies group promotion, scalar pass-through, and the
// stable last-write-wins rule for colliding sub-keys.
func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		tree models.VariableTree
		want models.VariableTree
	}{
		{
			name: "nil tree",
			tree: nil,
			want: models.VariableTree{},
		},
		{
			name: "flat input passes through",
			tree: models.VariableTree{"a": "1", "b": float64(2)},
			want: models.VariableTree{"a": "1", "b": float64(2)},
		},
		{
			name: "group sub-keys promoted",
			tree: models.VariableTree{
				"color": "#fff",
				"layout": map[string]any{
					"spacing": float64(8),
				},
			},
			want: models.VariableTree{"color": "#fff", "spacing": float64(8)},
		},
		{
			name: "collision resolves to the later group in sorted order",
			tree: models.VariableTree{
				"aGroup": map[string]any{"spacing": float64(4)},
				"bGroup": map[string]any{"spacing": float64(8)},
			},
			want: models.VariableTree{"spacing": float64(8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.tree); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFlattenIdempotent verifies Flatten(Flatten(x)) == Flatten(x).
func TestFlattenIdempotent(t *testing.T) {
	tree := models.VariableTree{
		"color": "#fff",
		"layout": map[string]any{
			"spacing":  float64(8),
			"maxWidth": float64(1024),
		},
	}

	once := Flatten(tree)
	twice := Flatten(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Flatten(Flatten(x)) = %v, want %v", twice, once)
	}
}

// TestFlattenCoversSchemaLeaves verifies that flattening the defaults tree
// yields exactly the schema's reachable leaf keys.
func TestFlattenCoversSchemaLeaves(t *testing.T) {
	s, err := SchemaOf(testTheme())
	if err != nil {
		t.Fatalf("SchemaOf() error = %v", err)
	}

	flat := Flatten(Defaults(s))
	leaves := s.LeafKeys()
	if len(flat) != len(leaves) {
		t.Fatalf("flattened defaults has %d keys, schema has %d leaves", len(flat), len(leaves))
	}
	for _, k := range leaves {
		if _, ok := flat[k]; !ok {
			t.Errorf("flattened defaults missing leaf %q", k)
		}
	}
}

// TestExtract verifies re-nesting committed flat attributes by schema shape.
func TestExtract(t *testing.T) {
	s, _ := SchemaOf(testTheme())
	attrs := map[string]any{
		"colorPrimary": "#123456",
		"fontFamily":   "sans",
		"spacing":      "12",
		"maxWidth":     "900",
		"unrelated":    "ignored",
	}

	want := models.VariableTree{
		"colorPrimary": "#123456",
		"fontFamily":   "sans",
		"layout": map[string]any{
			"spacing":  "12",
			"maxWidth": "900",
		},
	}
	if got := Extract(s, attrs); !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

// TestExtractFlattenRoundTrip verifies the two codec directions are
// mutually inverse over schema-shaped values.
func TestExtractFlattenRoundTrip(t *testing.T) {
	s, _ := SchemaOf(testTheme())
	flat := models.VariableTree{
		"colorPrimary": "#abc",
		"fontFamily":   "mono",
		"spacing":      float64(2),
		"maxWidth":     float64(640),
	}

	if got := Flatten(Extract(s, flat)); !reflect.DeepEqual(got, flat) {
		t.Errorf("Flatten(Extract(x)) = %v, want %v", got, flat)
	}
}
