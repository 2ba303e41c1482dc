// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fields

import (
	"fmt"
	"slices"

	"github.com/dacolabs/schemaedit-go/jsonschema"
)

// Build reconstructs a schema tree from an editor-field tree. See
// Transformer.Build.
func Build(f *Field, defs jsonschema.Definitions) (*jsonschema.Schema, jsonschema.Definitions) {
	return defaultTransformer.Build(f, defs)
}

// Build is the inverse of Flatten: it reconstructs a schema tree from
// f, along with an updated definitions table. The input table is never
// modified; the returned table is a deep copy extended with the
// canonical Image/File definitions for any file-typed fields, and
// compacted of reserved definitions the built schema no longer
// references. A nil f builds nothing and returns the copied table
// unchanged.
//
// A field with an invalid type reports an issue and degrades to a
// string node with an explanatory description, so one bad field never
// breaks the whole schema.
func (t *Transformer) Build(f *Field, defs jsonschema.Definitions) (*jsonschema.Schema, jsonschema.Definitions) {
	out := defs.Clone()
	if f == nil {
		return nil, out
	}
	if out == nil {
		out = jsonschema.Definitions{}
	}
	s := t.build(f, out, f.Key)
	out = jsonschema.CompactReservedDefs(s, out)
	if len(out) == 0 {
		out = nil
	}
	return s, out
}

// build constructs the schema node for f, adding any definitions it
// needs to defs. Children are built in order, so later children see
// definitions added by earlier ones.
func (t *Transformer) build(f *Field, defs jsonschema.Definitions, path string) *jsonschema.Schema {
	var s *jsonschema.Schema

	switch f.Type {
	case TypeObject:
		s = t.buildObject(f.Fields, defs, path)

	case TypeArray:
		s = &jsonschema.Schema{Type: "array"}
		switch {
		case f.ArrayType == TypeImage:
			s.Items = jsonschema.ImageRef()
			ensureDefinition(defs, jsonschema.DefNameImage)
		case f.ArrayType == TypeAudio:
			s.Items = jsonschema.FileRef("audio")
			ensureDefinition(defs, jsonschema.DefNameFile)
		case f.ArrayType == TypeDocument:
			s.Items = jsonschema.FileRef("document")
			ensureDefinition(defs, jsonschema.DefNameFile)
		case len(f.Fields) == 0:
			// Free-form array with no element shape; keep it editable
			// rather than failing the save.
			s.Items = &jsonschema.Schema{}
			t.sink.Report(Issue{
				Path:     path,
				Code:     CodeEmptyArrayItems,
				Severity: Warn,
				Message:  "array field has no element shape",
			})
		case f.ArrayType == TypeObject:
			s.Items = t.buildObject(f.Fields, defs, joinPath(path, "items"))
		default:
			s.Items = t.build(f.Fields[0], defs, joinPath(path, "items"))
		}

	case TypeString, TypeEnum:
		s = &jsonschema.Schema{Type: "string", Pattern: f.Pattern}
		if f.Type == TypeEnum {
			s.Enum = slices.Clone(f.Enum)
		}

	case TypeDate, TypeDateTime, TypeTime, TypeTimezone, TypeHTML:
		s = &jsonschema.Schema{Type: "string", Format: string(f.Type), Pattern: f.Pattern}

	case TypeNumber, TypeInteger:
		s = &jsonschema.Schema{
			Type:    string(f.Type),
			Minimum: clonePtr(f.Minimum),
			Maximum: clonePtr(f.Maximum),
		}

	case TypeBoolean:
		s = &jsonschema.Schema{Type: "boolean"}

	case TypeImage:
		s = jsonschema.ImageRef()
		ensureDefinition(defs, jsonschema.DefNameImage)

	case TypeAudio:
		s = jsonschema.FileRef("audio")
		ensureDefinition(defs, jsonschema.DefNameFile)

	case TypeDocument:
		s = jsonschema.FileRef("document")
		ensureDefinition(defs, jsonschema.DefNameFile)

	default:
		// Unreachable through the public API; degrade instead of
		// breaking the whole save.
		t.sink.Report(Issue{
			Path:     path,
			Code:     CodeInvalidFieldType,
			Severity: Error,
			Message:  fmt.Sprintf("field has invalid type %q", f.Type),
		})
		s = &jsonschema.Schema{
			Type:        "string",
			Description: fmt.Sprintf("Field with unsupported type %q, edited as text.", f.Type),
		}
	}

	if f.Title != "" {
		s.Title = f.Title
	}
	if f.Description != "" {
		s.Description = f.Description
	}
	if len(f.Examples) > 0 {
		s.Examples = slices.Clone(f.Examples)
	}
	if f.Default != nil {
		s.Default = f.Default
	}
	return s
}

// buildObject builds an object node from children in order. An empty
// child list is an intentionally free-form object and renders as
// {"properties": {}}.
func (t *Transformer) buildObject(children []*Field, defs jsonschema.Definitions, path string) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if _, dup := s.Properties[child.Key]; !dup {
			s.PropertyOrder = append(s.PropertyOrder, child.Key)
		}
		s.Properties[child.Key] = t.build(child, defs, joinPath(path, child.Key))
	}
	return s
}

func ensureDefinition(defs jsonschema.Definitions, name string) {
	if _, ok := defs[name]; ok {
		return
	}
	switch name {
	case jsonschema.DefNameImage:
		defs[name] = jsonschema.ImageDefinition()
	case jsonschema.DefNameFile:
		defs[name] = jsonschema.FileDefinition()
	}
}
