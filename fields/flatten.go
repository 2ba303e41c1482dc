// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fields

import (
	"fmt"
	"slices"

	"github.com/dacolabs/schemaedit-go/jsonschema"
)

// Flatten converts a schema tree into the flat editor-field tree. See
// Transformer.Flatten.
func Flatten(node *jsonschema.Schema, key string, defs jsonschema.Definitions) *Field {
	return defaultTransformer.Flatten(node, key, defs)
}

// Flatten recursively converts node into an editor field named key
// (empty at the root), resolving $ref through defs and collapsing
// nullable unions. When defs is nil the root node's own $defs table is
// used.
//
// Flatten returns nil when node is nil or resolves to nothing
// actionable (an unresolvable reference). Two transforms are lossy by
// contract: a multi-member non-null union collapses to its first
// non-null member, and an array of objects carries the element's
// children directly rather than a nested single object field.
func (t *Transformer) Flatten(node *jsonschema.Schema, key string, defs jsonschema.Definitions) *Field {
	if node != nil && defs == nil {
		defs = node.Defs
	}
	return t.flatten(node, key, defs, key, nil)
}

func (t *Transformer) flatten(node *jsonschema.Schema, key string, defs jsonschema.Definitions, path string, seen map[string]bool) *Field {
	if node == nil {
		return nil
	}

	switch {
	case node.Properties != nil:
		f := &Field{Key: key, Type: TypeObject, Fields: []*Field{}}
		for _, name := range node.PropertyKeys() {
			child := t.flatten(node.Properties[name], name, defs, joinPath(path, name), seen)
			if child != nil {
				f.Fields = append(f.Fields, child)
			}
		}
		return overlayMeta(f, node)

	case node.Type == "array" && (node.Items != nil || len(node.ItemsArray) > 0):
		elem := node.Items
		if elem == nil {
			elem = node.ItemsArray[0]
		}
		f := &Field{
			Key:       key,
			Type:      TypeArray,
			ArrayType: t.classify(elem, defs, nil, path, nil),
		}
		child := t.flatten(elem, "", defs, joinPath(path, "items"), seen)
		switch {
		case child == nil:
			// Element resolved to nothing; the array keeps its kind but
			// exposes no editable shape.
		case child.Type == TypeObject:
			// Splice the object's children up a level so the editor
			// presents "array of {a, b}" as a flat field list.
			f.Fields = child.Fields
		case child.Type == TypeImage:
			// Images are terminal in the editor.
		default:
			f.Fields = []*Field{child}
		}
		return overlayMeta(f, node)

	case node.Ref != "":
		name := jsonschema.RefName(node.Ref)
		if jsonschema.IsReservedDefName(name) {
			return overlayMeta(&Field{Key: key, Type: fileType(name, node.Format)}, node)
		}
		target, ok := defs[name]
		if !ok {
			t.sink.Report(Issue{
				Path:     path,
				Code:     CodeUnresolvedRef,
				Severity: Error,
				Message:  fmt.Sprintf("reference %q not found in definitions", node.Ref),
			})
			return nil
		}
		if seen[name] {
			t.sink.Report(Issue{
				Path:     path,
				Code:     CodeRefCycle,
				Severity: Error,
				Message:  fmt.Sprintf("reference %q is cyclic", node.Ref),
			})
			return nil
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[name] = true
		child := t.flatten(target, key, defs, path, seen)
		delete(seen, name)
		if child == nil {
			return nil
		}
		return overlayMeta(child, node)

	case len(node.AnyOf) > 0 || len(node.OneOf) > 0 || len(node.AllOf) > 0:
		members := node.AnyOf
		if len(members) == 0 {
			members = node.OneOf
		}
		if len(members) == 0 {
			members = node.AllOf
		}
		// Collapse to the first non-null member; the editor cannot
		// represent multi-member unions and the null member only
		// signals optionality.
		for _, m := range members {
			if m == nil || m.Type == "null" {
				continue
			}
			child := t.flatten(m, key, defs, path, seen)
			if child == nil {
				return nil
			}
			return overlayMeta(child, node)
		}
		return nil

	case node.Type == "string":
		f := &Field{Key: key, Pattern: node.Pattern}
		if len(node.Enum) > 0 {
			f.Type = TypeEnum
			f.Enum = slices.Clone(node.Enum)
		} else {
			f.Type = t.classify(node, defs, nil, path, nil)
		}
		return overlayMeta(f, node)

	case node.Type == "number" || node.Type == "integer":
		f := &Field{
			Key:     key,
			Type:    t.classify(node, defs, nil, path, nil),
			Minimum: clonePtr(node.Minimum),
			Maximum: clonePtr(node.Maximum),
		}
		return overlayMeta(f, node)

	default:
		f := &Field{Key: key, Type: t.classify(node, defs, nil, path, nil)}
		return overlayMeta(f, node)
	}
}

// overlayMeta copies the common metadata of node onto f, keeping any
// metadata f already carries when node has none.
func overlayMeta(f *Field, node *jsonschema.Schema) *Field {
	if node.Title != "" {
		f.Title = node.Title
	}
	if node.Description != "" {
		f.Description = node.Description
	}
	if len(node.Examples) > 0 {
		f.Examples = slices.Clone(node.Examples)
	}
	if node.Default != nil {
		f.Default = node.Default
	}
	return f
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func joinPath(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "/" + elem
}
