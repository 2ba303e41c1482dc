// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestSchemaMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		want   string
	}{
		{
			name:   "scalar",
			schema: &Schema{Type: "string"},
			want:   `{"type":"string"}`,
		},
		{
			name:   "single item schema",
			schema: &Schema{Type: "array", Items: &Schema{Type: "string"}},
			want:   `{"items":{"type":"string"},"type":"array"}`,
		},
		{
			name: "tuple items",
			schema: &Schema{
				Type:       "array",
				ItemsArray: []*Schema{{Type: "string"}, {Type: "number"}},
			},
			want: `{"items":[{"type":"string"},{"type":"number"}],"type":"array"}`,
		},
		{
			name: "object with ordered properties",
			schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"name": {Type: "string"},
					"age":  {Type: "integer"},
				},
				PropertyOrder: []string{"name", "age"},
				Required:      []string{"name"},
			},
			want: `{"properties":{"name":{"type":"string"},"age":{"type":"integer"}},"type":"object","required":["name"]}`,
		},
		{
			name: "properties not in order render sorted after ordered ones",
			schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"c": {Type: "string"},
					"a": {Type: "string"},
					"b": {Type: "string"},
				},
				PropertyOrder: []string{"c"},
			},
			want: `{"properties":{"c":{"type":"string"},"a":{"type":"string"},"b":{"type":"string"}},"type":"object"}`,
		},
		{
			name:   "empty properties map is kept",
			schema: &Schema{Type: "object", Properties: map[string]*Schema{}},
			want:   `{"properties":{},"type":"object"}`,
		},
		{
			name:   "enum",
			schema: &Schema{Type: "string", Enum: []any{"Male", "Female", "Other"}},
			want:   `{"type":"string","enum":["Male","Female","Other"]}`,
		},
		{
			name:   "format",
			schema: &Schema{Type: "string", Format: "date-time"},
			want:   `{"type":"string","format":"date-time"}`,
		},
		{
			name:   "numeric bounds",
			schema: &Schema{Type: "number", Minimum: Ptr(1.0), Maximum: Ptr(10.0)},
			want:   `{"type":"number","minimum":1,"maximum":10}`,
		},
		{
			name:   "reference",
			schema: &Schema{Ref: "#/$defs/File", Format: "image"},
			want:   `{"$ref":"#/$defs/File","format":"image"}`,
		},
		{
			name:   "extra keywords sorted last",
			schema: &Schema{Type: "string", Extra: map[string]any{"x-ui": "hint", "configurable": true}},
			want:   `{"type":"string","configurable":true,"x-ui":"hint"}`,
		},
		{
			name:   "extra keywords only",
			schema: &Schema{Extra: map[string]any{"x-ui": "hint"}},
			want:   `{"x-ui":"hint"}`,
		},
		{
			name: "union with null member",
			schema: &Schema{
				AnyOf: []*Schema{{Type: "string"}, {Type: "null"}},
			},
			want: `{"anyOf":[{"type":"string"},{"type":"null"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.schema)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaMarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
	}{
		{
			name: "both items forms set",
			schema: &Schema{
				Type:       "array",
				Items:      &Schema{Type: "string"},
				ItemsArray: []*Schema{{Type: "string"}},
			},
		},
		{
			name: "duplicate property order entries",
			schema: &Schema{
				Properties:    map[string]*Schema{"a": {Type: "string"}},
				PropertyOrder: []string{"a", "a"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := json.Marshal(tt.schema); err == nil {
				t.Error("Marshal: expected error, got nil")
			}
		})
	}
}

func TestSchemaUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *Schema
	}{
		{
			name: "single item schema",
			data: `{"type":"array","items":{"type":"string"}}`,
			want: &Schema{Type: "array", Items: &Schema{Type: "string"}},
		},
		{
			name: "tuple items",
			data: `{"type":"array","items":[{"type":"string"},{"type":"number"}]}`,
			want: &Schema{Type: "array", ItemsArray: []*Schema{{Type: "string"}, {Type: "number"}}},
		},
		{
			name: "property order follows the document",
			data: `{"type":"object","properties":{"b":{"type":"string"},"a":{"type":"integer"}}}`,
			want: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"b": {Type: "string"},
					"a": {Type: "integer"},
				},
				PropertyOrder: []string{"b", "a"},
			},
		},
		{
			name: "unknown keywords land in extra",
			data: `{"type":"string","x-ui":"hint","configurable":true}`,
			want: &Schema{Type: "string", Extra: map[string]any{"x-ui": "hint", "configurable": true}},
		},
		{
			name: "defs",
			data: `{"$ref":"#/$defs/Status","$defs":{"Status":{"type":"string","enum":["on","off"]}}}`,
			want: &Schema{
				Ref: "#/$defs/Status",
				Defs: Definitions{
					"Status": {Type: "string", Enum: []any{"on", "off"}},
				},
			},
		},
		{
			name: "metadata",
			data: `{"type":"integer","title":"Age","description":"Years","default":30,"examples":[25,31],"minimum":0}`,
			want: &Schema{
				Type:        "integer",
				Title:       "Age",
				Description: "Years",
				Default:     float64(30),
				Examples:    []any{float64(25), float64(31)},
				Minimum:     Ptr(0.0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Schema
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, &got); diff != "" {
				t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"type":"string"}`,
		`{"items":{"type":"string"},"type":"array"}`,
		`{"properties":{"b":{"type":"string"},"a":{"type":"integer"}},"type":"object","required":["a","b"]}`,
		`{"$ref":"#/$defs/Image"}`,
		`{"type":"string","enum":["x","y"]}`,
	}
	for _, doc := range docs {
		var s Schema
		if err := json.Unmarshal([]byte(doc), &s); err != nil {
			t.Fatalf("Unmarshal(%s): %v", doc, err)
		}
		got, err := json.Marshal(&s)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", doc, err)
		}
		if diff := cmp.Diff(doc, string(got)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSchemaMarshalJSONConsistency(t *testing.T) {
	// The value receiver ensures the custom marshaler runs no matter
	// how the Schema is stored.
	s := Schema{Type: "array", Items: &Schema{Type: "string"}}
	want, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	t.Run("MapValue", func(t *testing.T) {
		got, err := json.Marshal(map[string]Schema{"s": s})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(got, &m); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if diff := cmp.Diff(string(want), string(m["s"])); diff != "" {
			t.Errorf("map value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SliceElement", func(t *testing.T) {
		got, err := json.Marshal([]Schema{s})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var l []json.RawMessage
		if err := json.Unmarshal(got, &l); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if len(l) != 1 {
			t.Fatalf("got %d elements, want 1", len(l))
		}
		if diff := cmp.Diff(string(want), string(l[0])); diff != "" {
			t.Errorf("slice element mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSchemaClone(t *testing.T) {
	orig := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"tags": {Type: "array", Items: &Schema{Type: "string"}},
			"age":  {Type: "integer", Minimum: Ptr(0.0)},
		},
		PropertyOrder: []string{"tags", "age"},
		Required:      []string{"tags"},
		Defs: Definitions{
			"Status": {Type: "string", Enum: []any{"on", "off"}},
		},
		Extra: map[string]any{"x-ui": "hint"},
	}

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}

	// Mutating the clone must not affect the original.
	clone.Properties["age"].Minimum = Ptr(18.0)
	clone.Properties["extra"] = &Schema{Type: "string"}
	clone.Defs["Status"].Enum[0] = "ON"
	clone.Required[0] = "age"
	clone.Properties["tags"].Items.Type = "integer"

	if got := *orig.Properties["age"].Minimum; got != 0 {
		t.Errorf("original minimum changed to %v", got)
	}
	if _, ok := orig.Properties["extra"]; ok {
		t.Error("original gained a property from the clone")
	}
	if got := orig.Defs["Status"].Enum[0]; got != "on" {
		t.Errorf("original enum changed to %v", got)
	}
	if got := orig.Required[0]; got != "tags" {
		t.Errorf("original required changed to %v", got)
	}
	if got := orig.Properties["tags"].Items.Type; got != "string" {
		t.Errorf("original item type changed to %v", got)
	}

	var nilSchema *Schema
	if nilSchema.Clone() != nil {
		t.Error("Clone of nil schema is not nil")
	}
}

func TestPropertyKeys(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Schema{
			"c": {}, "a": {}, "b": {},
		},
		PropertyOrder: []string{"b", "missing", "c"},
	}
	want := []string{"b", "c", "a"}
	if diff := cmp.Diff(want, s.PropertyKeys()); diff != "" {
		t.Errorf("PropertyKeys mismatch (-want +got):\n%s", diff)
	}

	if got := (&Schema{}).PropertyKeys(); got != nil {
		t.Errorf("PropertyKeys of schema without properties = %v, want nil", got)
	}
}
