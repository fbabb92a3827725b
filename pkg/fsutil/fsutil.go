// Package fsutil reads documents for formatting and writes the results back
// without losing data. Writes are atomic, refuse to clobber files changed by
// someone else in the meantime, and can leave a sidecar backup.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk after it was loaded.
	ErrModified = errors.New("file modified since it was read")

	// ErrNoPath is returned when writing a source that was not read from disk.
	ErrNoPath = errors.New("source has no path")
)

// Source is a document together with the on-disk state it was read from.
type Source struct {
	// Path is the file path, or the display name for stdin.
	Path string

	// Content is the raw file content.
	Content []byte

	// Mode is the file's permission bits. Zero for stdin.
	Mode os.FileMode

	// ModTime and Size drive the quick modification check.
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of Content.
	Hash [32]byte

	// Stdin is set when the content did not come from a file.
	Stdin bool
}

// Load reads the file at path.
func Load(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Source{
		Path:    path,
		Content: content,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// LoadReader reads a document from r, typically stdin. name is used in
// messages and diffs only.
func LoadReader(r io.Reader, name string) (*Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Source{
		Path:    name,
		Content: content,
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
		Stdin:   true,
	}, nil
}

// Changed reports whether the file behind s differs from what was loaded.
// Mod time and size are checked first; the content hash settles the rest.
// A deleted file counts as changed.
func (s *Source) Changed(ctx context.Context) (bool, error) {
	if s.Stdin {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
