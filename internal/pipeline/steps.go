package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leaksplit/leaksplit/internal/filter"
	"github.com/leaksplit/leaksplit/internal/loader"
	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/partition"
	"github.com/leaksplit/leaksplit/internal/report"
)

// LoadStep reads the gitleaks report named by Run.ReportPath.
type LoadStep struct {
	loader *loader.Loader
	logger *slog.Logger
}

// NewLoadStep creates a LoadStep using l, or the default loader when l is nil.
func NewLoadStep(l *loader.Loader, logger *slog.Logger) *LoadStep {
	if l == nil {
		l = loader.New(loader.WithLogger(logger))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{loader: l, logger: logger}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do loads the report. On failure Run.Findings is left untouched.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	findings, err := s.loader.LoadFile(run.ReportPath)
	if err != nil {
		return err
	}

	run.Findings = findings
	s.logger.Info("loaded findings", "path", run.ReportPath, "findings", len(findings))
	return nil
}

// FilterStep drops findings that do not match the configured filter.
type FilterStep struct {
	filter filter.Filter
	logger *slog.Logger
}

// NewFilterStep creates a FilterStep.
func NewFilterStep(f filter.Filter, logger *slog.Logger) *FilterStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterStep{filter: f, logger: logger}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do applies the filter. An empty filter keeps every finding.
func (s *FilterStep) Do(_ context.Context, run *Run) error {
	if s.filter.IsEmpty() {
		return nil
	}

	before := len(run.Findings)
	run.Findings = s.filter.Apply(run.Findings)

	s.logger.Info("filtered findings",
		"kept", len(run.Findings),
		"dropped", before-len(run.Findings),
	)
	return nil
}

// PartitionStep splits Run.Findings into unique and duplicate groups.
type PartitionStep struct {
	summarize bool
	logger    *slog.Logger
}

// PartitionStepOption configures a PartitionStep.
type PartitionStepOption func(*PartitionStep)

// WithSummary makes the step also compute per-rule counts into Run.Summary.
func WithSummary(summarize bool) PartitionStepOption {
	return func(s *PartitionStep) {
		s.summarize = summarize
	}
}

// NewPartitionStep creates a PartitionStep.
func NewPartitionStep(logger *slog.Logger, opts ...PartitionStepOption) *PartitionStep {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PartitionStep{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *PartitionStep) Name() string {
	return "partition"
}

// Do partitions the findings. It cannot fail.
func (s *PartitionStep) Do(_ context.Context, run *Run) error {
	run.Result = partition.Partition(run.Findings)

	s.logger.Info(fmt.Sprintf("%d unique findings, %d duplicates",
		len(run.Result.Unique), len(run.Result.Duplicated)),
		"unique", len(run.Result.Unique),
		"duplicates", len(run.Result.Duplicated),
	)

	if s.summarize {
		summary := partition.Summarize(run.Result)
		run.Summary = &summary
	}
	return nil
}

// RenderStep writes the selected group to the output.
type RenderStep struct {
	output    io.Writer
	format    model.Format
	keepOrder bool
}

// RenderStepOption configures a RenderStep.
type RenderStepOption func(*RenderStep)

// WithKeepOrder disables fingerprint sorting in text output.
func WithKeepOrder(keep bool) RenderStepOption {
	return func(s *RenderStep) {
		s.keepOrder = keep
	}
}

// NewRenderStep creates a RenderStep writing format to output.
func NewRenderStep(output io.Writer, format model.Format, opts ...RenderStepOption) *RenderStep {
	s := &RenderStep{output: output, format: format}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do renders the group selected by Run.Group.
func (s *RenderStep) Do(_ context.Context, run *Run) error {
	return report.Render(s.output, run.Selected(), s.format, report.RenderConfig{
		KeepOrder: s.keepOrder,
		Group:     run.Group,
		Summary:   run.Summary,
	})
}

// SummaryStep writes the per-rule summary table computed by PartitionStep.
type SummaryStep struct {
	output io.Writer
}

// NewSummaryStep creates a SummaryStep writing to output.
func NewSummaryStep(output io.Writer) *SummaryStep {
	return &SummaryStep{output: output}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do writes the table. The summary is computed here when the partition
// step did not do it.
func (s *SummaryStep) Do(_ context.Context, run *Run) error {
	summary := run.Summary
	if summary == nil {
		computed := partition.Summarize(run.Result)
		summary = &computed
	}
	_, err := report.NewSummaryWriter(s.output).WriteSummary(*summary)
	return err
}
