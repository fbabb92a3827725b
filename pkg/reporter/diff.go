package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/qmdfmt/internal/ui/pretty"
	"github.com/yaklabco/qmdfmt/pkg/diff"
	"github.com/yaklabco/qmdfmt/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. Only outcomes computed with runner.Options.Diff
// carry a diff to print.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var count, changed, insertions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			count++
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Display),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}

		count++
		changed++
		insertions += file.Diff.Insertions
		deletions += file.Diff.Deletions
		r.writeDiff(file.Diff)
	}

	if changed > 0 && r.opts.ShowSummary {
		r.writeSummary(changed, insertions, deletions)
	}
	return count, nil
}

func (r *DiffReporter) writeDiff(d *diff.Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", d.Path, d.Path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))

	for line := range strings.Lines(d.Unified()) {
		r.writeDiffLine(strings.TrimSuffix(line, "\n"))
	}
	fmt.Fprintln(r.out)
}

func (r *DiffReporter) writeDiffLine(line string) {
	var styled string
	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}
	fmt.Fprintln(r.out, styled)
}

func (r *DiffReporter) writeSummary(files, insertions, deletions int) {
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts := []string{fmt.Sprintf("%d %s changed", files, fileWord)}

	if insertions > 0 {
		word := "insertions"
		if insertions == 1 {
			word = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", insertions, word)))
	}
	if deletions > 0 {
		word := "deletions"
		if deletions == 1 {
			word = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, word)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
