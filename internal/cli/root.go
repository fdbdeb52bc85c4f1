// Package cli provides Cobra command definitions for histclean.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazuruo/histclean/internal/app"
	"github.com/chazuruo/histclean/internal/config"
	histerrors "github.com/chazuruo/histclean/internal/errors"
	"github.com/chazuruo/histclean/internal/history"
	"github.com/chazuruo/histclean/internal/journal"
	"github.com/chazuruo/histclean/internal/report"
)

// RootOptions contains the options for the root command.
type RootOptions struct {
	Global *GlobalOptions

	HistoryFile    string
	DryRun         bool
	NoBackup       bool
	KeepDuplicates bool
	Dedupe         string
	RemoveBetween  []string
	Analyze        bool
	TopN           int
	Format         string
	UTC            bool
	Yes            bool
	NoOplog        bool
}

// NewRootCommand creates the histclean command with all subcommands.
func NewRootCommand(info VersionInfo) *cobra.Command {
	global := &GlobalOptions{}
	opts := &RootOptions{Global: global}

	cmd := &cobra.Command{
		Use:   "histclean [flags] [END_DATE]",
		Short: "Clean and analyze zsh history files",
		Long: `histclean removes duplicate commands and date ranges from a zsh history
file, or prints statistics about it.

By default the first occurrence of every command is kept and the rest are
removed. The original file is copied to <file>.<timestamp> before it is
overwritten.`,
		Example: `  # Remove duplicates from ~/.zsh_history
  histclean

  # Preview what would be removed
  histclean --dry-run

  # Remove everything typed in the first half of 2023
  histclean --remove-between 2023-01-01 2023-06-30

  # Top 5 commands and executables
  histclean --analyze --top-n 5`,
		Version:       info.String(),
		Args:          endDateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	AddGlobalFlags(cmd, global)

	f := cmd.Flags()
	f.StringVarP(&opts.HistoryFile, "history-file", "f", "", "history file (default $HISTFILE or ~/.zsh_history)")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "show what would be removed without writing")
	f.BoolVar(&opts.NoBackup, "no-backup", false, "do not copy the original before overwriting")
	f.BoolVar(&opts.KeepDuplicates, "keep-duplicates", false, "do not remove duplicate commands")
	f.StringVar(&opts.Dedupe, "dedupe", "", "dedupe mode: all, consecutive or none (default from config)")
	f.StringSliceVar(&opts.RemoveBetween, "remove-between", nil, "remove entries between START and END, inclusive (START,END or START END)")
	f.BoolVar(&opts.Analyze, "analyze", false, "print statistics instead of cleaning")
	f.IntVar(&opts.TopN, "top-n", 10, "number of ranked commands and executables")
	f.StringVar(&opts.Format, "format", "", "output format: "+report.FormatList()+" (default from config)")
	f.BoolVar(&opts.UTC, "utc", false, "use UTC day boundaries instead of the configured time zone")
	f.BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	f.BoolVar(&opts.NoOplog, "no-oplog", false, "do not record the rewrite in the operation journal")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &histerrors.ConfigError{Err: err}
	})

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewConfigCommand(global))
	cmd.AddCommand(NewVersionCommand(info))

	return cmd
}

func endDateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return &histerrors.ConfigError{Err: err}
	}
	return nil
}

func runRoot(cmd *cobra.Command, opts *RootOptions, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Global.Verbose)

	cfg, err := config.LoadWithDefaults(opts.Global.ConfigPath)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return &histerrors.ConfigError{Err: err}
	}
	if opts.UTC {
		loc = time.UTC
	}

	dateRange, err := parseRemoveBetween(opts.RemoveBetween, args, loc)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(firstNonEmpty(opts.Format, cfg.Output.Format))
	if err != nil {
		return err
	}

	mode, err := app.ParseDedupeMode(firstNonEmpty(opts.Dedupe, cfg.Clean.Dedupe))
	if err != nil {
		return err
	}

	topN := cfg.Analyze.TopN
	if cmd.Flags().Changed("top-n") {
		topN = opts.TopN
	}

	path, err := resolveHistoryPath(opts.HistoryFile, cfg.History.Path)
	if err != nil {
		return err
	}
	logger.Debug("Using history file", "path", path)

	j, err := journal.New(cfg.Journal.Path, opts.NoOplog || !cfg.Journal.Enabled)
	if err != nil {
		return err
	}

	runOpts := app.Options{
		Path:           path,
		DryRun:         opts.DryRun,
		NoBackup:       opts.NoBackup || !cfg.History.Backup,
		KeepDuplicates: opts.KeepDuplicates,
		DedupeMode:     mode,
		DateRange:      dateRange,
		Analyze:        opts.Analyze,
		TopN:           topN,
		Location:       loc,
	}
	if !opts.Yes && cfg.Clean.Confirm && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		runOpts.Confirm = confirmRewrite
	}

	res, err := app.NewCleaner(logger, j).Run(cmd.Context(), runOpts)
	if histerrors.IsCanceled(err) && res != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Canceled, %s was left untouched.\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Report != nil {
		return report.WriteAnalysis(out, res.Report, format, report.Options{
			Width:    terminalWidth(out),
			Location: loc,
		})
	}
	return report.WriteSummary(out, res.Summary(), format)
}

// parseRemoveBetween builds the date range from --remove-between and the
// optional END_DATE argument. Both "START,END" and "START END" are
// accepted.
func parseRemoveBetween(values, args []string, loc *time.Location) (*history.DateRange, error) {
	dates := append(append([]string{}, values...), args...)

	switch {
	case len(values) == 0 && len(args) == 0:
		return nil, nil
	case len(values) == 0:
		return nil, histerrors.Invalidf("END_DATE", "%q given without --remove-between", args[0])
	case len(dates) != 2:
		return nil, histerrors.Invalidf("--remove-between", "expected START and END dates, got %d", len(dates))
	}

	r, err := history.ParseDateRange(dates[0], dates[1], loc)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// resolveHistoryPath picks the history file: the flag, then the config,
// then $HISTFILE and the usual locations.
func resolveHistoryPath(flag, configured string) (string, error) {
	path := firstNonEmpty(flag, configured)
	if path == "" {
		return history.DetectPath()
	}
	expanded, err := history.ExpandPath(path)
	if err != nil {
		return "", &histerrors.ConfigError{Err: err}
	}
	return expanded, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
