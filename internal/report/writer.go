package report

import (
	"fmt"
	"io"

	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/partition"
)

// Writer defines the interface for rendering a group of findings.
type Writer interface {
	// Write renders findings to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(findings []model.Finding) (int, error)
}

// MultiWriter writes the same findings to multiple Writers in order.
// This is useful for printing to the terminal while also saving a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders findings with every configured Writer.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(findings []model.Finding) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(findings)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// write hands data to the destination in a single call.
// A failed or short write is wrapped in model.ErrIO.
func (b baseWriter) write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	n, err := b.output.Write(data)
	if err != nil {
		return n, fmt.Errorf("%w: write output: %w", model.ErrIO, err)
	}
	if n < len(data) {
		return n, fmt.Errorf("%w: write output: %w", model.ErrIO, io.ErrShortWrite)
	}
	return n, nil
}

// RenderConfig carries the caller's rendering preferences.
// The zero value renders sorted text for the duplicate group.
type RenderConfig struct {
	// KeepOrder disables fingerprint sorting in text mode.
	KeepOrder bool

	// Group names the group being rendered, used in Markdown headings.
	Group model.Group

	// Summary, when set, adds per-rule counts to Markdown output.
	Summary *partition.Summary
}

// NewWriter returns the Writer for format.
func NewWriter(output io.Writer, format model.Format, cfg RenderConfig) (Writer, error) {
	switch format {
	case model.FormatText:
		return NewTextWriter(output, WithSort(!cfg.KeepOrder)), nil
	case model.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case model.FormatMarkdown:
		opts := []MarkdownWriterOption{WithGroup(cfg.Group)}
		if cfg.Summary != nil {
			opts = append(opts, WithSummary(*cfg.Summary))
		}
		return NewMarkdownWriter(output, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Render writes findings to output in the requested format.
func Render(output io.Writer, findings []model.Finding, format model.Format, cfg RenderConfig) error {
	w, err := NewWriter(output, format, cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(findings)
	return err
}
