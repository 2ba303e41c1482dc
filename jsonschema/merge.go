// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import "maps"

// Merge structurally combines two independently-evolved schema trees,
// typically an old persisted schema and a freshly regenerated one. The
// result is a new tree; neither input is modified.
//
// The policy is deterministic: on scalar attributes the newer side
// (next) wins whenever it has a value, collections merge structurally.
// Required names are unioned, definitions merge per key with next
// overwriting old, properties present on both sides merge recursively,
// and items merge per shape (tuple positions beyond the old tuple's
// length come verbatim from next; a single-vs-tuple shape change is
// taken wholesale from next). If either input is nil the other is
// returned unchanged.
func Merge(old, next *Schema) *Schema {
	if old == nil {
		return next
	}
	if next == nil {
		return old
	}

	out := old.Clone()
	mergeScalars(out, next)

	out.Required = unionStrings(old.Required, next.Required)
	out.Defs = mergeDefs(old.Defs, next.Defs)
	mergeProperties(out, old, next)
	mergeItems(out, old, next)

	if next.AnyOf != nil {
		out.AnyOf = cloneSchemas(next.AnyOf)
	}
	if next.OneOf != nil {
		out.OneOf = cloneSchemas(next.OneOf)
	}
	if next.AllOf != nil {
		out.AllOf = cloneSchemas(next.AllOf)
	}
	return out
}

// mergeScalars overlays the scalar attributes of next onto out wherever
// next carries a value.
func mergeScalars(out, next *Schema) {
	if next.Ref != "" {
		out.Ref = next.Ref
	}
	if next.Type != "" {
		out.Type = next.Type
	}
	if next.Format != "" {
		out.Format = next.Format
	}
	if next.Title != "" {
		out.Title = next.Title
	}
	if next.Description != "" {
		out.Description = next.Description
	}
	if next.Pattern != "" {
		out.Pattern = next.Pattern
	}
	if next.Default != nil {
		out.Default = next.Default
	}
	if next.Examples != nil {
		out.Examples = append([]any(nil), next.Examples...)
	}
	if next.Enum != nil {
		out.Enum = append([]any(nil), next.Enum...)
	}
	if next.Minimum != nil {
		out.Minimum = Ptr(*next.Minimum)
	}
	if next.Maximum != nil {
		out.Maximum = Ptr(*next.Maximum)
	}
	if len(next.Extra) > 0 {
		if out.Extra == nil {
			out.Extra = make(map[string]any, len(next.Extra))
		}
		maps.Copy(out.Extra, next.Extra)
	}
}

// unionStrings returns the union of a and b, duplicates removed,
// keeping first-seen order. An empty union is nil.
func unionStrings(a, b []string) []string {
	var out []string
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	for _, s := range b {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

// mergeDefs shallow-merges two definitions tables; next overwrites old
// per key.
func mergeDefs(old, next Definitions) Definitions {
	if old == nil {
		return next.Clone()
	}
	out := old.Clone()
	for k, v := range next {
		out[k] = v.Clone()
	}
	return out
}

// mergeProperties merges properties key-wise into out. Keys on only
// one side pass through untouched; keys on both sides merge
// recursively. The old ordering is kept, with next-only keys appended
// in the next side's order.
func mergeProperties(out, old, next *Schema) {
	if old.Properties == nil && next.Properties == nil {
		return
	}
	out.Properties = make(map[string]*Schema)

	var order []string
	for _, k := range old.PropertyKeys() {
		out.Properties[k] = old.Properties[k].Clone()
		order = append(order, k)
	}
	for _, k := range next.PropertyKeys() {
		if existing, ok := out.Properties[k]; ok {
			out.Properties[k] = Merge(existing, next.Properties[k])
		} else {
			out.Properties[k] = next.Properties[k].Clone()
			order = append(order, k)
		}
	}
	out.PropertyOrder = order
}

// mergeItems merges the items of old and next into out per shape.
func mergeItems(out, old, next *Schema) {
	switch {
	case old.Items != nil && next.Items != nil:
		out.Items = Merge(old.Items, next.Items)
	case old.ItemsArray != nil && next.ItemsArray != nil:
		merged := make([]*Schema, len(next.ItemsArray))
		for i, item := range next.ItemsArray {
			if i < len(old.ItemsArray) {
				merged[i] = Merge(old.ItemsArray[i], item)
			} else {
				merged[i] = item.Clone()
			}
		}
		out.Items, out.ItemsArray = nil, merged
	case old.Items == nil && old.ItemsArray == nil:
		out.Items = next.Items.Clone()
		out.ItemsArray = cloneSchemas(next.ItemsArray)
	case next.Items == nil && next.ItemsArray == nil:
		// keep old's items, already cloned into out
	default:
		// Shape changed between single and tuple: take the next side.
		out.Items = next.Items.Clone()
		out.ItemsArray = cloneSchemas(next.ItemsArray)
	}
}
