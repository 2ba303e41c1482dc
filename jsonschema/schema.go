// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonschema holds the schema tree model shared by the visual
// schema editor: a JSON-Schema-like node type with ordered properties,
// a JSON and YAML codec, structural merge, and semantic equivalence.
// It performs structural transformation and comparison only; it is not
// a validator.
package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	json "github.com/goccy/go-json"
)

// A Schema is one JSON-Schema-like node. It covers the keyword subset
// the editor understands: objects with ordered properties, arrays with
// single or tuple items, $ref into a sibling definitions table,
// anyOf/oneOf/allOf unions, scalars with format/enum/bounds/pattern,
// and the common metadata every node may carry.
//
// Since this struct is a Go representation of a JSON value, it inherits
// JSON's distinction between nil and empty. Nil slices and maps are
// considered absent, but empty ones are present: an object node with
// Properties set to an empty map renders as {"properties": {}}.
type Schema struct {
	// core
	Ref  string      `json:"$ref,omitempty"`
	Defs Definitions `json:"$defs,omitempty"`

	// metadata
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Examples    []any  `json:"examples,omitempty"`

	// validation
	Type    string   `json:"type,omitempty"`
	Enum    []any    `json:"enum,omitempty"`
	Format  string   `json:"format,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
	Pattern string   `json:"pattern,omitempty"`

	// arrays
	// Use Items for a single item schema, or ItemsArray for a tuple; never both.
	Items      *Schema   `json:"-"`
	ItemsArray []*Schema `json:"-"`

	// objects
	Required   []string           `json:"required,omitempty"`
	Properties map[string]*Schema `json:"-"`

	// PropertyOrder records the ordering of properties for JSON and YAML
	// rendering. The decoder fills it with the key order of the source
	// document. Rendering first lists properties that appear in
	// PropertyOrder in the order they appear, followed by any remaining
	// properties sorted by name.
	PropertyOrder []string `json:"-"`

	// logic
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`

	// Extra allows for additional keywords beyond those specified.
	Extra map[string]any `json:"-"`
}

// Definitions is a table of named schemas referenced via "#/$defs/<name>".
// A table is only meaningful alongside the root Schema that references it.
type Definitions map[string]*Schema

// Clone returns a deep copy of d, or nil if d is nil.
func (d Definitions) Clone() Definitions {
	if d == nil {
		return nil
	}
	out := make(Definitions, len(d))
	for k, v := range d {
		out[k] = v.Clone()
	}
	return out
}

// Clone returns a deep copy of s. Metadata values held as any
// (Default, Enum and Examples elements, Extra values) are shared, not
// copied; the transforms in this module never mutate them.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	s2 := *s
	s2.Defs = s.Defs.Clone()
	s2.Examples = slices.Clone(s.Examples)
	s2.Enum = slices.Clone(s.Enum)
	s2.Minimum = clonePtr(s.Minimum)
	s2.Maximum = clonePtr(s.Maximum)
	s2.Items = s.Items.Clone()
	s2.ItemsArray = cloneSchemas(s.ItemsArray)
	s2.Required = slices.Clone(s.Required)
	s2.PropertyOrder = slices.Clone(s.PropertyOrder)
	s2.AnyOf = cloneSchemas(s.AnyOf)
	s2.OneOf = cloneSchemas(s.OneOf)
	s2.AllOf = cloneSchemas(s.AllOf)
	s2.Extra = maps.Clone(s.Extra)
	if s.Properties != nil {
		s2.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			s2.Properties[k] = v.Clone()
		}
	}
	return &s2
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}

func cloneSchemas(ss []*Schema) []*Schema {
	if ss == nil {
		return nil
	}
	out := make([]*Schema, len(ss))
	for i, s := range ss {
		out[i] = s.Clone()
	}
	return out
}

// PropertyKeys returns the property names of s in rendering order:
// names listed in PropertyOrder first, then any remaining names sorted.
func (s *Schema) PropertyKeys() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	var remaining []string
	for name := range s.Properties {
		if !seen[name] {
			remaining = append(remaining, name)
		}
	}
	slices.Sort(remaining)
	return append(keys, remaining...)
}

func (s *Schema) basicChecks() error {
	if s.Items != nil && s.ItemsArray != nil {
		return errors.New("both Items and ItemsArray are set; at most one should be")
	}
	seen := make(map[string]bool, len(s.PropertyOrder))
	for _, name := range s.PropertyOrder {
		if seen[name] {
			return fmt.Errorf("property order slice cannot contain duplicate entries, found duplicate %q", name)
		}
		seen[name] = true
	}
	return nil
}

type schemaWithoutMethods Schema // doesn't implement json.{Unm,M}arshaler

func (s Schema) MarshalJSON() ([]byte, error) {
	// NOTE: Use a value receiver so Schema itself implements
	// json.Marshaler and encoding always calls this method, regardless
	// of whether the value is addressable (map values, slice elements).
	if err := s.basicChecks(); err != nil {
		return nil, err
	}
	// Marshal either Items or ItemsArray as "items".
	var items any
	switch {
	case s.Items != nil:
		items = s.Items
	case s.ItemsArray != nil:
		items = s.ItemsArray
	}

	ms := struct {
		Items      any `json:"items,omitempty"`
		Properties any `json:"properties,omitempty"`
		*schemaWithoutMethods
	}{
		Items:                items,
		schemaWithoutMethods: (*schemaWithoutMethods)(&s),
	}
	// Marshal properties, even if the empty map (but not nil).
	if s.Properties != nil {
		ms.Properties = orderedProperties{
			props: s.Properties,
			order: s.PropertyOrder,
		}
	}

	bs, err := json.Marshal(&ms)
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return bs, nil
	}
	return appendExtra(bs, s.Extra)
}

// appendExtra splices the extra keywords, sorted by name, into the
// already-marshaled object bs.
func appendExtra(bs []byte, extra map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bs[:len(bs)-1]) // strip the closing brace
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(extra[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling extra keyword %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedProperties is a helper to marshal the properties map in a specific order.
type orderedProperties struct {
	props map[string]*Schema
	order []string
}

func (op orderedProperties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeEntry := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(op.props[key])
		if err != nil {
			return err
		}
		buf.Write(vb)
		return nil
	}

	processed := make(map[string]bool, len(op.props))
	for _, name := range op.order {
		if _, ok := op.props[name]; ok && !processed[name] {
			if err := writeEntry(name); err != nil {
				return nil, err
			}
			processed[name] = true
		}
	}

	var remaining []string
	for name := range op.props {
		if !processed[name] {
			remaining = append(remaining, name)
		}
	}
	slices.Sort(remaining)
	for _, name := range remaining {
		if err := writeEntry(name); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// knownKeywords lists the keywords decoded into named Schema fields.
// Anything else lands in Extra.
var knownKeywords = map[string]bool{
	"$ref": true, "$defs": true,
	"title": true, "description": true, "default": true, "examples": true,
	"type": true, "enum": true, "format": true,
	"minimum": true, "maximum": true, "pattern": true,
	"items": true, "required": true, "properties": true,
	"anyOf": true, "oneOf": true, "allOf": true,
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	ms := struct {
		Items      json.RawMessage `json:"items,omitempty"`
		Properties json.RawMessage `json:"properties,omitempty"`
		*schemaWithoutMethods
	}{
		schemaWithoutMethods: (*schemaWithoutMethods)(s),
	}
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}

	// Unmarshal "items" as either Items or ItemsArray.
	if len(ms.Items) > 0 {
		switch ms.Items[0] {
		case '[':
			var schemas []*Schema
			if err := json.Unmarshal(ms.Items, &schemas); err != nil {
				return err
			}
			s.ItemsArray = schemas
		default:
			var schema Schema
			if err := json.Unmarshal(ms.Items, &schema); err != nil {
				return err
			}
			s.Items = &schema
		}
	}

	// Unmarshal "properties" and record the source key order.
	if len(ms.Properties) > 0 {
		if err := json.Unmarshal(ms.Properties, &s.Properties); err != nil {
			return err
		}
		order, err := objectKeys(ms.Properties)
		if err != nil {
			return fmt.Errorf("reading property order: %w", err)
		}
		s.PropertyOrder = order
	}

	// Collect unknown keywords into Extra.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if knownKeywords[k] {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("decoding extra keyword %q: %w", k, err)
		}
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[k] = value
	}

	return nil
}

// objectKeys returns the top-level keys of a JSON object in source order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return keys, nil
}

// skipValue consumes one JSON value from dec, however deeply nested.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// Ptr returns a pointer to a new variable whose value is x.
func Ptr[T any](x T) *T { return &x }
