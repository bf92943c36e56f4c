package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/partition"
)

// SummaryWriter outputs a per-rule table of totals, unique findings and
// duplicates, with a footer row for the whole report.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSummary renders s as a table.
func (w *SummaryWriter) WriteSummary(s partition.Summary) (int, error) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.Header("Rule", "Total", "Unique", "Duplicates")

	for _, r := range s.Rules {
		row := []string{
			r.RuleID,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Unique),
			strconv.Itoa(r.Duplicates),
		}
		if err := table.Append(row); err != nil {
			return 0, fmt.Errorf("%w: summary row %s: %w", model.ErrSerialize, r.RuleID, err)
		}
	}

	table.Footer("Total", strconv.Itoa(s.Total), strconv.Itoa(s.Unique), strconv.Itoa(s.Duplicates))

	if err := table.Render(); err != nil {
		return 0, fmt.Errorf("%w: render summary: %w", model.ErrSerialize, err)
	}

	return w.write(buf.Bytes())
}
