package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/qmdfmt/internal/ui/pretty"
	"github.com/yaklabco/qmdfmt/pkg/runner"
)

// TextReporter lists files that are not formatted, one per line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to format."))
		}
		return 0, nil
	}

	var count int
	for _, file := range result.Files {
		if !reported(file) {
			continue
		}
		count++
		path := r.styles.FilePath.Render(file.Display)

		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		case len(file.Violations) > 0:
			for _, v := range file.Violations {
				fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Failure.Render(fmt.Sprintf("verification failed: %v", v)))
			}
		case file.Written:
			fmt.Fprintf(r.bw, "Reformatted %s\n", path)
		case !r.opts.Wrote:
			fmt.Fprintf(r.bw, "File is not formatted: %s\n", path)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Wrote))
	}

	return count, nil
}
