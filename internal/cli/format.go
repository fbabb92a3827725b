package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/qmdfmt/internal/logging"
	"github.com/yaklabco/qmdfmt/pkg/fsutil"
	"github.com/yaklabco/qmdfmt/pkg/reporter"
	"github.com/yaklabco/qmdfmt/pkg/runner"
)

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

type formatFlags struct {
	settings      settingFlags
	check         bool
	write         bool
	backup        bool
	diff          bool
	verify        bool
	output        string
	compact       bool
	jobs          int
	exclude       []string
	stdinFilepath string
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format Quarto and Markdown files",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format Quarto and Pandoc Markdown files.

With no paths, the document is read from standard input and the result is
written to standard output. Directories are searched for .qmd, .md,
.markdown and .Rmd files; hidden directories are skipped.

Without --check, --write or --diff the formatted text is printed.

Examples:
  qmdfmt format < doc.qmd              # Format stdin to stdout
  qmdfmt format --write .              # Rewrite every document in place
  qmdfmt format --check docs/          # Exit 1 if anything would change
  qmdfmt format --diff report.qmd      # Show what would change
  qmdfmt format --check --output json  # Machine-readable check results
  qmdfmt format --width 72 --wrap preserve notes.md`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVar(&flags.check, "check", false, "report files that are not formatted and exit 1")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a backup copy of each rewritten file")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs instead of formatted output")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "check idempotence and code block preservation")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "report format: text, json, diff")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringVar(&flags.stdinFilepath, "stdin-filepath", "", "path used to name stdin in messages")
	addSettingFlags(cmd, &flags.settings)

	cmd.MarkFlagsMutuallyExclusive("check", "write")
}

// reportMode reports whether results are summarized instead of printing
// the formatted documents. Stdin has nowhere to be written back to, so
// --write alone still prints it.
func (f *formatFlags) reportMode(cmd *cobra.Command, stdin bool) bool {
	return f.check || f.diff || cmd.Flags().Changed("output") || (f.write && !stdin)
}

func (f *formatFlags) reportFormat(cmd *cobra.Command) (reporter.Format, error) {
	if f.diff && !cmd.Flags().Changed("output") {
		return reporter.FormatDiff, nil
	}
	format, err := reporter.ParseFormat(f.output)
	if err != nil {
		return "", fmt.Errorf("invalid output: %w", err)
	}
	return format, nil
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := flags.reportFormat(cmd)
	if err != nil {
		return err
	}

	loadResult, err := loadConfig(ctx, cmd, &flags.settings)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	logger.Debug("configuration resolved",
		"line_width", cfg.LineWidth,
		"wrap", cfg.Wrap,
		"math_indent", cfg.MathIndent,
		"line_ending", cfg.LineEnding,
	)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
		Config:       &cfg,
		Write:        flags.write,
		Backup:       flags.backup,
		Diff:         flags.diff || format == reporter.FormatDiff || format == reporter.FormatJSON,
		Verify:       flags.verify,
	}

	var result *runner.Result
	if len(args) == 0 {
		result, err = formatStdin(ctx, cmd, flags, runOpts)
	} else {
		logger.Debug("starting format run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
			logging.FieldWrite, runOpts.Write,
			logging.FieldCheck, flags.check,
		)
		result, err = runner.Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	logger.Debug("format run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	if !flags.reportMode(cmd, len(args) == 0) {
		return printFormatted(ctx, cmd.OutOrStdout(), result)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: len(args) > 0,
		Wrote:       flags.write && len(args) > 0,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, flags.check)
}

// formatStdin formats standard input as a single document. It is never
// written anywhere but stdout.
func formatStdin(ctx context.Context, cmd *cobra.Command, flags *formatFlags, opts runner.Options) (*runner.Result, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logging.FromContext(ctx).Info("reading document from stdin; press Ctrl-D to finish or pass paths to format")
	}

	name := flags.stdinFilepath
	if name == "" {
		name = stdinName
	}

	src, err := fsutil.LoadReader(in, name)
	if err != nil {
		return nil, err
	}

	opts.Write = false
	result := &runner.Result{}
	result.Stats.FilesDiscovered = 1
	result.Add(runner.FormatSource(ctx, src, opts))
	return result, nil
}

// printFormatted writes the formatted text of every file to w. Files that
// failed are logged and skipped.
func printFormatted(ctx context.Context, w io.Writer, result *runner.Result) error {
	logger := logging.FromContext(ctx)

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			logger.Error("could not format file", logging.FieldPath, file.Display, logging.FieldError, file.Error)
			continue
		case len(file.Violations) > 0:
			for _, v := range file.Violations {
				logger.Error("verification failed", logging.FieldPath, file.Display, logging.FieldError, v)
			}
			continue
		}
		if _, err := w.Write(file.Formatted); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return resultError(result, false)
}

func resultError(result *runner.Result, check bool) error {
	switch {
	case result.HasFailures():
		return fmt.Errorf("%w: %d of %d files",
			ErrFormatFailed,
			result.Stats.FilesErrored+result.Stats.FilesUnverified,
			result.Stats.FilesDiscovered,
		)
	case ExitCodeFromResult(result, check) != ExitSuccess:
		return ErrNotFormatted
	default:
		return nil
	}
}
