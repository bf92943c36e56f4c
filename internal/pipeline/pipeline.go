package pipeline

import (
	"context"
	"log/slog"

	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/partition"
)

// Run carries the state shared by the steps of one pipeline execution.
// Each step reads what earlier steps produced and adds its own output.
type Run struct {
	// ReportPath is the gitleaks report to load.
	ReportPath string

	// Group selects which side of the partition is rendered.
	Group model.Group

	// Findings holds the loaded (and possibly filtered) findings in input order.
	Findings []model.Finding

	// Result is the partition of Findings.
	Result model.PartitionResult

	// Summary holds per-rule counts when the partition step computed them.
	Summary *partition.Summary

	// Completed lists the names of the steps that finished, in order.
	Completed []string
}

// NewRun creates a Run for the report at path.
func NewRun(path string, group model.Group) *Run {
	return &Run{
		ReportPath: path,
		Group:      group,
	}
}

// Selected returns the findings of the selected group.
func (r *Run) Selected() []model.Finding {
	return r.Result.Select(r.Group)
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the Run
// populated by previous steps.
type Step interface {
	// Do executes the pipeline step.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence and stops at the first error.
// Cancellation is checked before each step; a running step is not interrupted.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"path", run.ReportPath,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"path", run.ReportPath,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"path", run.ReportPath,
		)

		run.Completed = append(run.Completed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
