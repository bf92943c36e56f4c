package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leaksplit/leaksplit/internal/model"
)

// JSONWriter outputs findings as a JSON array of full gitleaks records.
// Records keep their input order and every field, so the output can be fed
// back to leaksplit or to any tool that reads gitleaks reports.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs findings as a JSON array with a trailing newline.
// An empty group is written as "[]".
func (w *JSONWriter) Write(findings []model.Finding) (int, error) {
	if findings == nil {
		findings = []model.Finding{}
	}
	return w.writeJSON(findings)
}

// writeJSON marshals the given value and writes it in a single call.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrSerialize, err)
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.write(data)
}
