// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import "strings"

// Reserved definition names. These are treated as file-type markers
// regardless of the actual contents of the definitions table.
const (
	DefNameImage         = "Image"
	DefNameFile          = "File"
	DefNameAudio         = "Audio"
	DefNamePDF           = "PDF"
	DefNameDatetimeLocal = "DatetimeLocal"
)

// Canonical reference strings for the reserved file types.
const (
	RefImage = "#/$defs/Image"
	RefFile  = "#/$defs/File"
)

// reservedDefNames are the definitions the builder may introduce and
// that compaction may remove when no reference to them remains.
var reservedDefNames = []string{
	DefNameImage,
	DefNameFile,
	DefNameAudio,
	DefNamePDF,
	DefNameDatetimeLocal,
}

// RefName extracts the definition name from a local reference such as
// "#/$defs/Image" or "#/definitions/Image". It returns "" for
// references that do not point into a local definitions table.
func RefName(ref string) string {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			return name
		}
	}
	return ""
}

// IsReservedDefName reports whether name is one of the reserved
// file-type definition names recognized by the classifier.
func IsReservedDefName(name string) bool {
	switch name {
	case DefNameImage, DefNameFile, DefNameAudio, DefNamePDF:
		return true
	}
	return false
}

// ImageRef returns a node referencing the canonical Image definition.
func ImageRef() *Schema {
	return &Schema{Ref: RefImage}
}

// FileRef returns a node referencing the canonical File definition,
// annotated with the given format (one of image, audio, document, pdf,
// text).
func FileRef(format string) *Schema {
	return &Schema{Ref: RefFile, Format: format}
}

// ImageDefinition returns the canonical body of the Image definition.
func ImageDefinition() *Schema {
	return fileObject("Image")
}

// FileDefinition returns the canonical body of the File definition.
func FileDefinition() *Schema {
	return fileObject("File")
}

func fileObject(title string) *Schema {
	return &Schema{
		Title: title,
		Type:  "object",
		Properties: map[string]*Schema{
			"name":         {Type: "string"},
			"content_type": {Type: "string"},
			"data":         {Type: "string"},
			"url":          {Type: "string"},
		},
		PropertyOrder: []string{"name", "content_type", "data", "url"},
	}
}

// CompactReservedDefs removes reserved definitions from defs when the
// built schema no longer references them, e.g. after a File reference
// was collapsed into a concrete file type. User-named definitions are
// never removed. The table is modified in place and returned.
func CompactReservedDefs(root *Schema, defs Definitions) Definitions {
	if len(defs) == 0 {
		return defs
	}
	used := make(map[string]bool)
	collectRefs(root, used)
	for _, s := range defs {
		collectRefs(s, used)
	}
	for _, name := range reservedDefNames {
		if _, ok := defs[name]; ok && !used[name] {
			delete(defs, name)
		}
	}
	return defs
}

// collectRefs records the names of all local references under s.
func collectRefs(s *Schema, into map[string]bool) {
	if s == nil {
		return
	}
	if name := RefName(s.Ref); name != "" {
		into[name] = true
	}
	for _, p := range s.Properties {
		collectRefs(p, into)
	}
	collectRefs(s.Items, into)
	for _, group := range [][]*Schema{s.ItemsArray, s.AnyOf, s.OneOf, s.AllOf} {
		for _, m := range group {
			collectRefs(m, into)
		}
	}
	for _, d := range s.Defs {
		collectRefs(d, into)
	}
}
