// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"reflect"

	json "github.com/goccy/go-json"
)

// equivalenceIgnoredDefs are definition names considered common or
// implicit: their presence or absence must not cause two schemas to be
// judged different.
var equivalenceIgnoredDefs = []string{
	DefNameImage,
	DefNameFile,
	DefNameAudio,
	DefNameDatetimeLocal,
}

// Equivalent reports whether a and b are semantically equal schemas.
// Both sides are compared after stripping the common file-type
// definitions (Image, File, Audio, DatetimeLocal) from their
// definitions tables. The comparison is over decoded JSON values, so
// property order never affects the result. If either side is nil the
// schemas are not equivalent.
func Equivalent(a, b *Schema) bool {
	if a == nil || b == nil {
		return false
	}
	va, err := normalize(a)
	if err != nil {
		return false
	}
	vb, err := normalize(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

// normalize strips ignored definitions from a copy of s and round-trips
// it through JSON into plain values.
func normalize(s *Schema) (any, error) {
	c := s.Clone()
	for _, name := range equivalenceIgnoredDefs {
		delete(c.Defs, name)
	}
	if len(c.Defs) == 0 {
		c.Defs = nil
	}
	bs, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(bs, &v); err != nil {
		return nil, err
	}
	return v, nil
}
