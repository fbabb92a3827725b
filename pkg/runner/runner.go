package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/qmdfmt/internal/logging"
	"github.com/yaklabco/qmdfmt/pkg/diff"
	"github.com/yaklabco/qmdfmt/pkg/fsutil"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
	"github.com/yaklabco/qmdfmt/pkg/verify"
)

// Run discovers files under opts.Paths and formats them on a worker pool.
// Outcomes are returned in discovery order regardless of completion order.
// The logger is taken from ctx.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("formatting files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		logging.FieldWorkingDir, workDir,
	)

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				path := files[idx]
				outcomes[idx] = processFile(ctx, path, display(workDir, path), opts)
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.Add(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// FormatSource formats an already loaded document. Sources read from disk
// are written back when opts.Write is set.
func FormatSource(ctx context.Context, src *fsutil.Source, opts Options) FileOutcome {
	return format(ctx, src, src.Path, opts)
}

func processFile(ctx context.Context, path, shown string, opts Options) FileOutcome {
	src, err := fsutil.Load(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Display: shown, Error: err}
	}
	return format(ctx, src, shown, opts)
}

func format(ctx context.Context, src *fsutil.Source, shown string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, shown)
	outcome := FileOutcome{Path: src.Path, Display: shown}

	cfg := opts.config()
	out, err := qmdfmt.Format(string(src.Content), &cfg, qmdfmt.WithLogger(logger))
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", shown, err)
		return outcome
	}

	outcome.Formatted = []byte(out)
	outcome.Changed = out != string(src.Content)

	if opts.Verify {
		outcome.Violations = verify.Check(string(src.Content), out, cfg)
		for _, v := range outcome.Violations {
			logger.Warn("verification failed", logging.FieldError, v)
		}
	}

	if opts.Diff && outcome.Changed {
		outcome.Diff = diff.Compute(shown, src.Content, outcome.Formatted)
	}

	if opts.Write && outcome.Changed && !src.Stdin && len(outcome.Violations) == 0 {
		written, err := fsutil.Replace(ctx, src, outcome.Formatted, fsutil.WriteOptions{Backup: opts.Backup})
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Written = written
		if written {
			logger.Debug("wrote file")
		}
	}

	return outcome
}

func display(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
