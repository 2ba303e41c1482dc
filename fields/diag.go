// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fields

// Codes for the issues a Transformer can report.
const (
	CodeUnresolvedRef    = "unresolved_ref"
	CodeRefCycle         = "ref_cycle"
	CodeInvalidFieldType = "invalid_field_type"
	CodeEmptyArrayItems  = "empty_array_items"
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Issue represents a single diagnostic raised while transforming a
// schema or a field tree. Transformations never fail on an issue; the
// affected subtree degrades and the issue is reported to the sink.
type Issue struct {
	Path     string // Key path of the affected field (for example: items/2/price).
	Code     string // One of the codes listed above.
	Severity Severity
	Message  string
}

// Sink receives diagnostics from a Transformer. Implementations adapt
// it to whatever error tracking the host application uses.
type Sink interface {
	Report(Issue)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Issue)

func (f SinkFunc) Report(is Issue) { f(is) }

type nopSink struct{}

func (nopSink) Report(Issue) {}
