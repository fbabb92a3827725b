// Package runner formats many documents concurrently: it discovers files,
// formats each on a worker pool, and collects the outcomes in path order.
package runner

import "github.com/yaklabco/qmdfmt/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and is the base for display paths
	// and exclude patterns. Empty means the process working directory.
	WorkingDir string

	// Extensions lists the file extensions (with leading dot) treated as
	// documents. Matching is case-insensitive. Defaults to DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs is the worker count. Zero or less means runtime.NumCPU().
	Jobs int

	// Config is the formatter configuration. Nil means defaults.
	Config *config.Config

	// Write replaces changed files on disk.
	Write bool

	// Backup keeps a sidecar copy of each file before its first rewrite.
	Backup bool

	// Diff computes a unified diff for each changed file.
	Diff bool

	// Verify checks idempotence and code block preservation. Files failing
	// verification are never written.
	Verify bool
}

// DefaultExtensions returns the document extensions recognized by default.
func DefaultExtensions() []string {
	return []string{".qmd", ".md", ".markdown", ".rmd"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) config() config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return *o.Config
}
