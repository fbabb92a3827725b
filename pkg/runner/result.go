package runner

import (
	"github.com/yaklabco/qmdfmt/pkg/diff"
	"github.com/yaklabco/qmdfmt/pkg/verify"
)

// FileOutcome is the result of formatting one document.
type FileOutcome struct {
	// Path is the absolute path, or the stdin display name.
	Path string

	// Display is Path relative to the working directory when possible.
	Display string

	// Formatted is the formatter output. Nil when Error is set.
	Formatted []byte

	// Changed reports whether Formatted differs from the input.
	Changed bool

	// Written reports whether the file on disk was replaced.
	Written bool

	// Diff is set for changed files when diffs were requested.
	Diff *diff.Diff

	// Violations lists failed verification checks.
	Violations []verify.Violation

	// Error is set when the file could not be read, formatted or written.
	Error error
}

// Failed reports whether the outcome is an error or a verification failure.
func (o FileOutcome) Failed() bool {
	return o.Error != nil || len(o.Violations) > 0
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesFormatted  int
	FilesChanged    int
	FilesWritten    int
	FilesErrored    int
	FilesUnverified int
}

// Result is the outcome of a run, with Files in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file is not in canonical form.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasFailures reports whether any file errored or failed verification.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || r.Stats.FilesUnverified > 0)
}

// Add appends outcome and updates the counters. FilesDiscovered is left to
// the caller.
func (r *Result) Add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesFormatted++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if len(outcome.Violations) > 0 {
		r.Stats.FilesUnverified++
	}
}
