// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fields

import (
	"fmt"
	"strings"
	"time"

	"github.com/dacolabs/schemaedit-go/jsonschema"
)

// A Transformer carries the diagnostics sink used by Classify, Flatten
// and Build. Transformers are stateless and safe for concurrent use.
type Transformer struct {
	sink Sink
}

// NewTransformer returns a Transformer reporting diagnostics to sink.
// A nil sink discards them.
func NewTransformer(sink Sink) *Transformer {
	if sink == nil {
		sink = nopSink{}
	}
	return &Transformer{sink: sink}
}

var defaultTransformer = NewTransformer(nil)

// Classify decides which single selectable field type best describes
// node, resolving $ref through defs and recognizing the reserved
// file-type definitions. See Transformer.Classify.
func Classify(node *jsonschema.Schema, defs jsonschema.Definitions, value *any) Type {
	return defaultTransformer.Classify(node, defs, value)
}

// Classify decides which single selectable field type best describes
// node. An optional runtime value refines the result: a file-like
// value (an object with a content_type string) classifies by MIME
// type, and a time value marks a string node as a date. Pass value as
// nil when absent, or pointing to nil for an explicit JSON null.
//
// A $ref to a name missing from defs reports an issue and degrades to
// string; a $ref with no defs table at all degrades to string silently
// (partial schema context).
func (t *Transformer) Classify(node *jsonschema.Schema, defs jsonschema.Definitions, value *any) Type {
	return t.classify(node, defs, value, "", nil)
}

func (t *Transformer) classify(node *jsonschema.Schema, defs jsonschema.Definitions, value *any, path string, seen map[string]bool) Type {
	if value != nil {
		if ct, ok := valueContentType(*value); ok {
			return classifyContentType(ct)
		}
	}
	if node == nil {
		node = &jsonschema.Schema{}
	}

	if node.Type == "string" {
		switch {
		case node.Format == "date-time":
			return TypeDateTime
		case valueIsTime(value) || node.Format == "date":
			return TypeDate
		case node.Format == "timezone":
			return TypeTimezone
		case node.Format == "time":
			return TypeTime
		case node.Format == "html":
			return TypeHTML
		}
	}

	if node.Ref != "" {
		name := jsonschema.RefName(node.Ref)
		if jsonschema.IsReservedDefName(name) {
			return fileType(name, node.Format)
		}
		if defs == nil {
			return TypeString
		}
		target, ok := defs[name]
		if !ok {
			t.sink.Report(Issue{
				Path:     path,
				Code:     CodeUnresolvedRef,
				Severity: Error,
				Message:  fmt.Sprintf("reference %q not found in definitions", node.Ref),
			})
			return TypeString
		}
		if seen[name] {
			t.sink.Report(Issue{
				Path:     path,
				Code:     CodeRefCycle,
				Severity: Error,
				Message:  fmt.Sprintf("reference %q is cyclic", node.Ref),
			})
			return TypeString
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[name] = true
		return t.classify(target, defs, value, path, seen)
	}

	switch node.Type {
	case "string":
		return TypeString
	case "integer":
		return TypeInteger
	case "number":
		return TypeNumber
	case "boolean":
		return TypeBoolean
	case "array":
		return TypeArray
	case "object":
		return TypeObject
	case "null":
		return TypeNull
	case "":
		if value == nil {
			return TypeUndefined
		}
		if *value == nil {
			return TypeNull
		}
		return TypeUnknown
	default:
		return TypeUnknown
	}
}

// valueContentType extracts the content_type of a file-like runtime
// value: an object with a content_type string member.
func valueContentType(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	ct, ok := m["content_type"].(string)
	return ct, ok
}

// classifyContentType maps a MIME type to a file field type.
func classifyContentType(ct string) Type {
	switch {
	case strings.HasPrefix(ct, "image/"):
		return TypeImage
	case strings.HasPrefix(ct, "audio/"):
		return TypeAudio
	default:
		return TypeDocument
	}
}

func valueIsTime(value *any) bool {
	if value == nil {
		return false
	}
	_, ok := (*value).(time.Time)
	return ok
}

// fileType maps a reserved definition name plus an optional format
// annotation to the concrete file field type. The format wins when it
// names a concrete kind; otherwise the definition name decides, with
// document as the fallback.
func fileType(name, format string) Type {
	switch format {
	case "image":
		return TypeImage
	case "audio":
		return TypeAudio
	}
	switch name {
	case jsonschema.DefNameImage:
		return TypeImage
	case jsonschema.DefNameAudio:
		return TypeAudio
	default: // File, PDF
		return TypeDocument
	}
}
