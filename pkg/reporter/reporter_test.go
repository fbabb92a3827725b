package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/pkg/diff"
	"github.com/yaklabco/qmdfmt/pkg/reporter"
	"github.com/yaklabco/qmdfmt/pkg/runner"
	"github.com/yaklabco/qmdfmt/pkg/verify"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/w/a.qmd", Display: "a.qmd"},
			{
				Path:    "/w/b.qmd",
				Display: "b.qmd",
				Changed: true,
				Diff:    diff.Compute("b.qmd", []byte("Title\n=====\n"), []byte("# Title\n")),
			},
			{Path: "/w/c.qmd", Display: "c.qmd", Error: errors.New("parse: unterminated frontmatter")},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesFormatted: 2, FilesChanged: 1, FilesErrored: 1},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatDiff.IsValid())
	assert.False(t, reporter.Format("table").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_Check(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	want := "File is not formatted: b.qmd\n" +
		"c.qmd: error: parse: unterminated frontmatter\n" +
		"1 file would be reformatted, 1 file already formatted, 1 file could not be formatted\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Write(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", Wrote: true})

	result := &runner.Result{
		Files: []runner.FileOutcome{{Display: "b.qmd", Changed: true, Written: true}},
		Stats: runner.Stats{FilesFormatted: 1, FilesChanged: 1, FilesWritten: 1},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Reformatted b.qmd\n", buf.String())
}

func TestTextReporter_Violations(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Display:    "b.qmd",
			Changed:    true,
			Violations: []verify.Violation{{Err: verify.ErrCodeChanged, Detail: "block 1"}},
		}},
	}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "b.qmd: verification failed: code block changed: block 1\n", buf.String())
}

func TestTextReporter_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to format")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Files, 3)

	assert.True(t, out.Files[0].Formatted)
	assert.False(t, out.Files[1].Formatted)
	assert.Equal(t, "+1 -2", out.Files[1].Stat)
	assert.Contains(t, out.Files[1].Diff, "+# Title")
	assert.Equal(t, "parse: unterminated frontmatter", out.Files[2].Error)
	assert.Equal(t, 1, out.Summary.FilesChanged)
	assert.Equal(t, 3, out.Summary.FilesChecked)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestDiffReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/b.qmd b/b.qmd\n--- a/b.qmd\n+++ b/b.qmd\n@@ -1,2 +1 @@\n-Title\n-=====\n+# Title\n")
	assert.Contains(t, out, "c.qmd: error: parse: unterminated frontmatter")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 2 deletions(-)")
}
