package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/qmdfmt/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string   `json:"path"`
	Formatted  bool     `json:"formatted"`
	Written    bool     `json:"written,omitempty"`
	Diff       string   `json:"diff,omitempty"`
	Stat       string   `json:"stat,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnverified int `json:"filesUnverified"`
	FilesErrored    int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, count := buildJSON(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return count, nil
}

func buildJSON(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output, 0
	}

	var count int
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:      file.Display,
			Formatted: !file.Changed && file.Error == nil,
			Written:   file.Written,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if file.Diff.HasChanges() {
			entry.Diff = file.Diff.Unified()
			entry.Stat = file.Diff.Stat()
		}
		for _, v := range file.Violations {
			entry.Violations = append(entry.Violations, v.Error())
		}
		if reported(file) {
			count++
		}
		output.Files = append(output.Files, entry)
	}

	output.Summary = JSONSummary{
		FilesChecked:    result.Stats.FilesDiscovered,
		FilesChanged:    result.Stats.FilesChanged,
		FilesWritten:    result.Stats.FilesWritten,
		FilesUnverified: result.Stats.FilesUnverified,
		FilesErrored:    result.Stats.FilesErrored,
	}
	return output, count
}
