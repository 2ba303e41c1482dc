// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fields converts schema trees to and from the flat field
// representation the visual schema editor works on. Flatten inlines
// references and collapses nullable unions into editor fields; Build
// is its inverse and reintroduces the canonical file-type references.
// Both directions return freshly allocated trees and never mutate
// their inputs.
package fields

// Type identifies the single selectable kind that best describes a
// schema node in the editor.
type Type string

// Selectable field types, the kinds a user can assign to a field.
const (
	TypeString   Type = "string"
	TypeBoolean  Type = "boolean"
	TypeNumber   Type = "number"
	TypeInteger  Type = "integer"
	TypeDate     Type = "date"
	TypeDateTime Type = "date-time"
	TypeTime     Type = "time"
	TypeTimezone Type = "timezone"
	TypeHTML     Type = "html"
	TypeArray    Type = "array"
	TypeObject   Type = "object"
	TypeEnum     Type = "enum"
	TypeImage    Type = "image"
	TypeAudio    Type = "audio"
	TypeDocument Type = "document"
)

// Classifier-only results. These can come back from Classify when a
// node carries no usable type information; they are never valid on an
// editor field.
const (
	TypeUnknown   Type = "unknown"
	TypeUndefined Type = "undefined"
	TypeNull      Type = "null"
)

// Selectable reports whether t is a kind a user can assign to a field.
func (t Type) Selectable() bool {
	switch t {
	case TypeString, TypeBoolean, TypeNumber, TypeInteger,
		TypeDate, TypeDateTime, TypeTime, TypeTimezone, TypeHTML,
		TypeArray, TypeObject, TypeEnum,
		TypeImage, TypeAudio, TypeDocument:
		return true
	}
	return false
}

// A Field is one node of the flattened, editor-facing representation
// of a schema. The Key is the property name under the parent object
// and is empty at the tree root.
type Field struct {
	Key  string `json:"key"`
	Type Type   `json:"type"`

	// ArrayType describes the element kind and is only present when
	// Type is array.
	ArrayType Type `json:"arrayType,omitempty"`

	// Fields holds the children: the properties of an object, or the
	// single wrapped element of an array (spliced up a level when the
	// element is itself an object).
	Fields []*Field `json:"fields,omitempty"`

	// Enum holds the literal values when Type is enum.
	Enum []any `json:"enum,omitempty"`

	// metadata, mirroring the schema node it came from
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []any    `json:"examples,omitempty"`
	Default     any      `json:"default,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
}

// ShouldDisableRemove reports whether removing a child from f must be
// prevented: an object, or an array of objects, keeps at least one
// child so the minimum structure cannot be edited away.
func ShouldDisableRemove(f *Field) bool {
	if f == nil {
		return false
	}
	if f.Type == TypeObject || (f.Type == TypeArray && f.ArrayType == TypeObject) {
		return len(f.Fields) < 2
	}
	return false
}
