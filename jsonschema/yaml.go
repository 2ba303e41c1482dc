// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler. It mirrors the behavior of
// MarshalJSON, including the items single-vs-tuple union, property
// ordering via PropertyOrder, and Extra keywords.
func (s Schema) MarshalYAML() (any, error) {
	if err := s.basicChecks(); err != nil {
		return nil, err
	}

	node := &yaml.Node{Kind: yaml.MappingNode}

	// addField adds a key-value pair to the mapping node if value is non-zero.
	addField := func(key string, value any) error {
		if isZeroValue(reflect.ValueOf(value)) {
			return nil
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		var valueNode yaml.Node
		if err := valueNode.Encode(value); err != nil {
			return err
		}
		node.Content = append(node.Content, keyNode, &valueNode)
		return nil
	}

	if err := addField("$ref", s.Ref); err != nil {
		return nil, err
	}
	if err := addField("$defs", map[string]*Schema(s.Defs)); err != nil {
		return nil, err
	}
	if err := addField("title", s.Title); err != nil {
		return nil, err
	}
	if err := addField("description", s.Description); err != nil {
		return nil, err
	}
	if s.Default != nil {
		if err := addField("default", s.Default); err != nil {
			return nil, err
		}
	}
	if err := addField("examples", s.Examples); err != nil {
		return nil, err
	}
	if err := addField("type", s.Type); err != nil {
		return nil, err
	}
	if err := addField("enum", s.Enum); err != nil {
		return nil, err
	}
	if err := addField("format", s.Format); err != nil {
		return nil, err
	}
	if err := addField("minimum", s.Minimum); err != nil {
		return nil, err
	}
	if err := addField("maximum", s.Maximum); err != nil {
		return nil, err
	}
	if err := addField("pattern", s.Pattern); err != nil {
		return nil, err
	}

	// Items/ItemsArray union
	switch {
	case s.Items != nil:
		if err := addField("items", s.Items); err != nil {
			return nil, err
		}
	case s.ItemsArray != nil:
		if err := addField("items", s.ItemsArray); err != nil {
			return nil, err
		}
	}

	if err := addField("required", s.Required); err != nil {
		return nil, err
	}

	// Properties with PropertyOrder support
	if s.Properties != nil {
		propsNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range s.PropertyKeys() {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
			var valueNode yaml.Node
			if err := valueNode.Encode(s.Properties[name]); err != nil {
				return nil, err
			}
			propsNode.Content = append(propsNode.Content, keyNode, &valueNode)
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: "properties"}
		node.Content = append(node.Content, keyNode, propsNode)
	}

	if err := addField("anyOf", s.AnyOf); err != nil {
		return nil, err
	}
	if err := addField("oneOf", s.OneOf); err != nil {
		return nil, err
	}
	if err := addField("allOf", s.AllOf); err != nil {
		return nil, err
	}

	// Extra keywords, sorted for determinism. Always output, even when
	// the value is zero.
	extraKeys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		extraKeys = append(extraKeys, k)
	}
	slices.Sort(extraKeys)
	for _, k := range extraKeys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: k}
		var valueNode yaml.Node
		if err := valueNode.Encode(s.Extra[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, &valueNode)
	}

	return node, nil
}

// isZeroValue reports whether v is the zero value for its type.
func isZeroValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. It mirrors the behavior of
// UnmarshalJSON: the items union decodes into Items or ItemsArray,
// property order is taken from the mapping-node order, and unknown
// keywords land in Extra.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got kind %v", node.Kind)
	}

	type rawSchema struct {
		Ref         string             `yaml:"$ref"`
		Defs        map[string]*Schema `yaml:"$defs"`
		Title       string             `yaml:"title"`
		Description string             `yaml:"description"`
		Default     any                `yaml:"default"`
		Examples    []any              `yaml:"examples"`
		Type        string             `yaml:"type"`
		Enum        []any              `yaml:"enum"`
		Format      string             `yaml:"format"`
		Minimum     *float64           `yaml:"minimum"`
		Maximum     *float64           `yaml:"maximum"`
		Pattern     string             `yaml:"pattern"`
		Required    []string           `yaml:"required"`
		AnyOf       []*Schema          `yaml:"anyOf"`
		OneOf       []*Schema          `yaml:"oneOf"`
		AllOf       []*Schema          `yaml:"allOf"`
	}

	var raw rawSchema
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*s = Schema{
		Ref:         raw.Ref,
		Defs:        Definitions(raw.Defs),
		Title:       raw.Title,
		Description: raw.Description,
		Default:     raw.Default,
		Examples:    raw.Examples,
		Type:        raw.Type,
		Enum:        raw.Enum,
		Format:      raw.Format,
		Minimum:     raw.Minimum,
		Maximum:     raw.Maximum,
		Pattern:     raw.Pattern,
		Required:    raw.Required,
		AnyOf:       raw.AnyOf,
		OneOf:       raw.OneOf,
		AllOf:       raw.AllOf,
	}

	// Handle the union fields and source ordering by inspecting the node.
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		switch keyNode.Value {
		case "items":
			if valueNode.Kind == yaml.SequenceNode {
				var schemas []*Schema
				if err := valueNode.Decode(&schemas); err != nil {
					return fmt.Errorf("decoding items array: %w", err)
				}
				s.ItemsArray = schemas
			} else {
				var schema Schema
				if err := valueNode.Decode(&schema); err != nil {
					return fmt.Errorf("decoding items schema: %w", err)
				}
				s.Items = &schema
			}

		case "properties":
			if valueNode.Kind != yaml.MappingNode {
				return fmt.Errorf("properties must be a mapping")
			}
			if err := valueNode.Decode(&s.Properties); err != nil {
				return fmt.Errorf("decoding properties: %w", err)
			}
			for j := 0; j < len(valueNode.Content); j += 2 {
				s.PropertyOrder = append(s.PropertyOrder, valueNode.Content[j].Value)
			}

		default:
			if knownKeywords[keyNode.Value] {
				continue
			}
			var value any
			if err := valueNode.Decode(&value); err != nil {
				return fmt.Errorf("decoding extra keyword %q: %w", keyNode.Value, err)
			}
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[keyNode.Value] = value
		}
	}

	return nil
}
