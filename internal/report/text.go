package report

import (
	"io"
	"slices"
	"strings"

	"github.com/leaksplit/leaksplit/internal/model"
)

// TextWriter writes one fingerprint per line.
// Lines are sorted by fingerprint using byte-wise comparison unless sorting
// is disabled, in which case input order is kept.
type TextWriter struct {
	baseWriter

	// sort enables ordering lines by fingerprint.
	sort bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithSort enables or disables sorting by fingerprint.
func WithSort(sort bool) TextWriterOption {
	return func(w *TextWriter) {
		w.sort = sort
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
// Sorting is enabled by default.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		sort:       true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the fingerprints of findings, one per line.
// An empty group produces no output.
func (w *TextWriter) Write(findings []model.Finding) (int, error) {
	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = f.Fingerprint
	}

	if w.sort {
		// Stable so that equal fingerprints keep their relative order.
		slices.SortStableFunc(lines, strings.Compare)
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return w.write([]byte(sb.String()))
}
