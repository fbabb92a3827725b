package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode used when none is known.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial file.
// A zero mode means DefaultFileMode. On error the target is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteOptions controls Replace.
type WriteOptions struct {
	// Backup keeps a copy of the original next to the file before the
	// first rewrite.
	Backup bool
}

// Replace writes formatted content over the file s was loaded from. It is a
// no-op returning false when content equals the loaded bytes, and fails with
// ErrModified when the file changed on disk since Load.
func Replace(ctx context.Context, s *Source, content []byte, opts WriteOptions) (bool, error) {
	if s.Stdin {
		return false, ErrNoPath
	}
	if bytes.Equal(s.Content, content) {
		return false, nil
	}

	changed, err := s.Changed(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		return false, fmt.Errorf("%w: %s", ErrModified, s.Path)
	}

	if opts.Backup {
		if _, err := CreateBackup(ctx, s.Path); err != nil {
			return false, err
		}
	}

	if err := WriteAtomic(ctx, s.Path, content, s.Mode); err != nil {
		return false, err
	}
	return true, nil
}
