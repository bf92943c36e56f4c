package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leaksplit/leaksplit/internal/config"
	"github.com/leaksplit/leaksplit/internal/loader"
	"github.com/leaksplit/leaksplit/internal/pipeline"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <report.json>",
		Short: "Print per-rule counts of unique and duplicate findings",
		Long: `Stats partitions a gitleaks report the same way the root command does and
prints a table with the total, unique and duplicate findings of each rule.

Examples:
  leaksplit stats gitleaks-report.json

  # Ignore test fixtures
  leaksplit stats --exclude-path "**/testdata/**" gitleaks-report.json`,
		Args: cobra.ExactArgs(1),
		RunE: runStatsCmd,
	}

	addFilterFlags(cmd)

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return runStats(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runStats renders the per-rule summary table of the report in cfg.
func runStats(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadStep(loader.New(loader.WithLogger(logger)), logger),
		pipeline.NewFilterStep(cfg.Filter, logger),
		pipeline.NewPartitionStep(logger, pipeline.WithSummary(true)),
		pipeline.NewSummaryStep(out),
	)

	return p.Execute(ctx, pipeline.NewRun(cfg.ReportPath, cfg.Group()))
}
