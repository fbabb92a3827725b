package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/qmdfmt/pkg/runner"
)

func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"index.qmd":              "",
		"README.md":              "",
		"notes.markdown":         "",
		"analysis.Rmd":           "",
		"docs/guide.qmd":         "",
		"docs/deep/more.md":      "",
		"_site/index.md":         "",
		".quarto/cache.md":       "",
		".hidden.md":             "",
		"script.py":              "",
		"docs/generated.out.md":  "",
		"docs/deep/x.out.md":     "",
		"vendor/pkg/readme.md":   "",
		"vendor/pkg/changes.txt": "",
	}

	tests := []struct {
		name    string
		opts    runner.Options
		want    []string
	}{
		{
			name: "default extensions skip hidden entries",
			want: []string{
				"README.md", "_site/index.md", "analysis.Rmd", "docs/deep/more.md", "docs/deep/x.out.md",
				"docs/generated.out.md", "docs/guide.qmd", "index.qmd", "notes.markdown", "vendor/pkg/readme.md",
			},
		},
		{
			name: "exclude patterns",
			opts: runner.Options{ExcludeGlobs: []string{"_site/**", "vendor", "**/*.out.md"}},
			want: []string{
				"README.md", "analysis.Rmd", "docs/deep/more.md", "docs/guide.qmd", "index.qmd", "notes.markdown",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".QMD"}},
			want: []string{"docs/guide.qmd", "index.qmd"},
		},
		{
			name: "explicit paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.qmd", "index.qmd"}},
			want: []string{"docs/deep/more.md", "docs/deep/x.out.md", "docs/generated.out.md", "docs/guide.qmd", "index.qmd"},
		},
	}

	dir := writeTree(t, tree)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got := relative(t, dir, files); !slices.Equal(got, tt.want) {
				t.Errorf("Discover() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestDiscover_ExplicitFileIgnoresHiddenRule(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{".draft.qmd": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{".draft.qmd"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected explicit hidden file to be included, got %v", files)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.qmd"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"real/doc.qmd": ""})
	outside := writeTree(t, map[string]string{"linked.qmd": ""})
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("without FollowSymlinks: %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("with FollowSymlinks: %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	want := []string{".qmd", ".md", ".markdown", ".rmd"}
	if got := runner.DefaultExtensions(); !slices.Equal(got, want) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
