package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leaksplit/leaksplit/internal/config"
	"github.com/leaksplit/leaksplit/internal/loader"
	"github.com/leaksplit/leaksplit/internal/log"
	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/pipeline"
)

// NewRootCmd creates the root command for leaksplit.
// The root command itself performs the split.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaksplit [flags] <report.json>",
		Short: "Split a gitleaks report into unique and duplicate findings",
		Long: `leaksplit reads a gitleaks JSON report and separates findings that repeat
a secret already reported by the same rule from the first occurrence of
each secret.

A finding is a duplicate when an earlier finding in the report has the same
Secret and the same RuleID. By default the duplicates are printed, one
fingerprint per line, sorted. Use --unique to print the first occurrences
instead.

Examples:
  # Fingerprints to add to .gitleaksignore
  leaksplit gitleaks-report.json >> .gitleaksignore

  # Unique findings as a gitleaks-compatible JSON report
  leaksplit --unique -f json gitleaks-report.json > unique.json

  # Markdown review document for vendored code only
  leaksplit -f markdown --summary --include-path "vendor/**" gitleaks-report.json`,
		Args:          cobra.ExactArgs(1),
		RunE:          runSplitCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .leaksplit.yaml in current directory, XDG config directory or home directory)")

	cmd.Flags().BoolP("unique", "u", false, "Print unique findings instead of duplicates")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: "+strings.Join(model.FormatNames(), ", "))
	cmd.Flags().Bool("no-sort", false, "Keep input order in text output")
	cmd.Flags().Bool("summary", false, "Add per-rule counts to markdown output")
	addFilterFlags(cmd)

	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addFilterFlags registers the finding filter flags on cmd.
// StringArray keeps commas inside brace patterns like "{src,lib}/**".
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("include-path", nil, "Only keep findings whose file matches this glob (repeatable)")
	cmd.Flags().StringArray("exclude-path", nil, "Drop findings whose file matches this glob (repeatable)")
	cmd.Flags().StringArray("include-rule", nil, "Only keep findings whose rule matches this glob (repeatable)")
	cmd.Flags().StringArray("exclude-rule", nil, "Drop findings whose rule matches this glob (repeatable)")
}

// flagBinding maps a command-line flag to its configuration key.
type flagBinding struct {
	flag string
	key  string
}

// flagBindings lists every flag that overrides a configuration key.
var flagBindings = []flagBinding{
	{flag: "unique", key: "unique"},
	{flag: "format", key: "format"},
	{flag: "no-sort", key: "keep_order"},
	{flag: "summary", key: "summary"},
	{flag: "include-path", key: "filter.include_paths"},
	{flag: "exclude-path", key: "filter.exclude_paths"},
	{flag: "include-rule", key: "filter.include_rules"},
	{flag: "exclude-rule", key: "filter.exclude_rules"},
	{flag: "verbose", key: "verbose"},
	{flag: "quiet", key: "quiet"},
	{flag: "log-format", key: "log_format"},
}

// changedFlags returns the explicitly set flags of cmd keyed by
// configuration key, so unset flags do not mask the config file.
func changedFlags(cmd *cobra.Command) (map[string]any, error) {
	flags := make(map[string]any)

	for _, b := range flagBindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}

		switch f.Value.Type() {
		case "bool":
			v, err := cmd.Flags().GetBool(b.flag)
			if err != nil {
				return nil, err
			}
			flags[b.key] = v
		case "stringArray":
			v, err := cmd.Flags().GetStringArray(b.flag)
			if err != nil {
				return nil, err
			}
			flags[b.key] = v
		default:
			flags[b.key] = f.Value.String()
		}
	}

	return flags, nil
}

// buildConfig creates a Config from the configuration layers and cobra flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	flags, err := changedFlags(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: configPath,
		Flags:      flags,
	})
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.ReportPath = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// setupLogger creates the secure diagnostics logger for cfg.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return log.NewLogger(w, log.Options{
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		JSON:    cfg.LogFormat == config.LogFormatJSON,
	})
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// runSplitCmd executes the root command.
func runSplitCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	if cfg.ConfigFilePath != "" {
		logger.Debug("using configuration file", "path", cfg.ConfigFilePath)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return runSplit(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runSplit loads, filters, partitions and renders the report in cfg.
// Nothing is written to out unless every earlier step succeeds.
func runSplit(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadStep(loader.New(loader.WithLogger(logger)), logger),
		pipeline.NewFilterStep(cfg.Filter, logger),
		pipeline.NewPartitionStep(logger,
			pipeline.WithSummary(cfg.Summary && format == model.FormatMarkdown)),
		pipeline.NewRenderStep(out, format, pipeline.WithKeepOrder(cfg.KeepOrder)),
	)

	return p.Execute(ctx, pipeline.NewRun(cfg.ReportPath, cfg.Group()))
}
