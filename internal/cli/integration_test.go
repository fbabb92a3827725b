package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/internal/cli"
	"github.com/yaklabco/qmdfmt/pkg/fsutil"
)

const (
	unformattedDoc = "a\nb\n"
	formattedDoc   = "a b\n"
)

// isolatedConfig writes a config file so tests do not pick up project or
// user settings.
func isolatedConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".qmdfmt.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_FormatStdin(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")

	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "defaults",
			input: unformattedDoc,
			want:  formattedDoc,
		},
		{
			name:  "width flag",
			input: "aaa bbb ccc\n",
			args:  []string{"--width", "7"},
			want:  "aaa bbb\nccc\n",
		},
		{
			name:  "preserve keeps breaks",
			input: unformattedDoc,
			args:  []string{"--wrap", "preserve"},
			want:  unformattedDoc,
		},
		{
			name:  "crlf output",
			input: "# T\ntext\n",
			args:  []string{"--line-ending", "crlf"},
			want:  "# T\r\n\r\ntext\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"format", "--config", cfg, "--color", "never"}, tt.args...)
			out, err := execute(t, tt.input, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIntegration_WriteStdinPrints(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")

	out, err := execute(t, unformattedDoc, "format", "--config", cfg, "--write")
	require.NoError(t, err)
	assert.Equal(t, formattedDoc, out)
}

func TestIntegration_ConfigFileWidth(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "line_width = 7\n")

	out, err := execute(t, "aaa bbb ccc\n", "format", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "aaa bbb\nccc\n", out)

	// Flags win over the file.
	out, err = execute(t, "aaa bbb ccc\n", "format", "--config", cfg, "--width", "80")
	require.NoError(t, err)
	assert.Equal(t, "aaa bbb ccc\n", out)
}

func TestIntegration_InvalidSettings(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")

	_, err := execute(t, formattedDoc, "format", "--config", cfg, "--wrap", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--wrap")

	_, err = execute(t, formattedDoc, "format", "--config", cfg, "--width", "0")
	require.Error(t, err)

	bad := isolatedConfig(t, "wrap = \"sideways\"\n")
	_, err = execute(t, formattedDoc, "format", "--config", bad)
	require.Error(t, err)
}

func TestIntegration_CheckStdin(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")

	out, err := execute(t, unformattedDoc,
		"format", "--config", cfg, "--check", "--color", "never", "--stdin-filepath", "notes.qmd")
	require.ErrorIs(t, err, cli.ErrNotFormatted)
	assert.Equal(t, "File is not formatted: notes.qmd\n", out)

	out, err = execute(t, formattedDoc, "format", "--config", cfg, "--check", "--color", "never")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIntegration_CheckFiles(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	dir := t.TempDir()
	bad := writeDoc(t, dir, "bad.qmd", unformattedDoc)
	writeDoc(t, dir, "good.md", formattedDoc)
	writeDoc(t, dir, "ignored.txt", unformattedDoc)

	out, err := execute(t, "", "format", "--config", cfg, "--check", "--color", "never", dir)
	require.ErrorIs(t, err, cli.ErrNotFormatted)
	assert.Contains(t, out, "File is not formatted: ")
	assert.Contains(t, out, "bad.qmd")
	assert.NotContains(t, out, "good.md")
	assert.NotContains(t, out, "ignored.txt")

	content, err := os.ReadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, unformattedDoc, string(content), "check must not modify files")
}

func TestIntegration_Write(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.qmd", unformattedDoc)

	out, err := execute(t, "", "format", "--config", cfg, "--write", "--backup", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Reformatted ")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formattedDoc, string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, unformattedDoc, string(backup))

	// A second run finds nothing to do.
	_, err = execute(t, "", "format", "--config", cfg, "--check", path)
	require.NoError(t, err)
}

func TestIntegration_WriteExcludes(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	dir := t.TempDir()
	kept := writeDoc(t, dir, "keep.qmd", unformattedDoc)
	skipped := writeDoc(t, dir, "draft.qmd", unformattedDoc)

	_, err := execute(t, "", "format", "--config", cfg, "--write", "--exclude", "draft.qmd", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(kept)
	require.NoError(t, err)
	assert.Equal(t, formattedDoc, string(content))

	content, err = os.ReadFile(skipped)
	require.NoError(t, err)
	assert.Equal(t, unformattedDoc, string(content))
}

func TestIntegration_Diff(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.qmd", unformattedDoc)

	out, err := execute(t, "", "format", "--config", cfg, "--diff", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, "@@ -1,2 +1 @@\n-a\n-b\n+a b\n")
	assert.Contains(t, out, "1 file changed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unformattedDoc, string(content), "diff must not modify files")
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	dir := t.TempDir()
	writeDoc(t, dir, "doc.qmd", unformattedDoc)

	out, err := execute(t, "", "format", "--config", cfg, "--check", "--output", "json", dir)
	require.ErrorIs(t, err, cli.ErrNotFormatted)

	var parsed struct {
		Files []struct {
			Path      string `json:"path"`
			Formatted bool   `json:"formatted"`
			Diff      string `json:"diff"`
		} `json:"files"`
		Summary struct {
			FilesChanged int `json:"filesChanged"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Files, 1)
	assert.False(t, parsed.Files[0].Formatted)
	assert.Contains(t, parsed.Files[0].Diff, "+a b")
	assert.Equal(t, 1, parsed.Summary.FilesChanged)
}

func TestIntegration_InvalidOutput(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	_, err := execute(t, formattedDoc, "format", "--config", cfg, "--output", "sarif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sarif")
}

func TestIntegration_MissingFile(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	missing := filepath.Join(t.TempDir(), "missing.qmd")

	_, err := execute(t, "", "format", "--config", cfg, "--check", missing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrNotFormatted)
}

func TestIntegration_Verify(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "")
	input := "# Title #\nsome    prose\n\n```python\ndef f():\n    return   1\n```\n"

	out, err := execute(t, input, "format", "--config", cfg, "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "    return   1\n")
}

func TestIntegration_CheckAndWriteConflict(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "format", "--check", "--write")
	require.Error(t, err)
}

func TestIntegration_Tree(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "# T\n", "tree", "--color", "never")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ROOT@0..4\n  DOCUMENT@0..4\n"), "unexpected dump:\n%s", out)
	assert.Contains(t, out, "    Heading@0..")

	out, err = execute(t, "```\nfmt.Println(1)\n```\n", "tree", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: ROOT")
	assert.Contains(t, out, "kind: DOCUMENT")

	_, err = execute(t, "# T\n", "tree", "--output", "xml")
	require.Error(t, err)
}

func TestIntegration_TreeFile(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "doc.qmd", "text\n")
	out, err := execute(t, "", "tree", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, "\"text\"")
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	cfg := isolatedConfig(t, "math_indent = 4\n")

	out, err := execute(t, "", "config", "--config", cfg, "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded from "+cfg)
	assert.Contains(t, out, "line_width = 100")
	assert.Contains(t, out, "math_indent = 4")

	out, err = execute(t, "", "config", "--config", cfg, "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "math_indent: 4")

	out, err = execute(t, "", "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, out, "QMDFMT_LINE_WIDTH")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "qmdfmt.toml")

	_, err := execute(t, "", "init", "--output", path, "--width", "72")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "line_width = 72")
	assert.Contains(t, string(content), "# qmdfmt configuration")

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "init", "--output", path, "--force", "--full")
	require.NoError(t, err)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "line_width = 80")

	// The generated file loads cleanly.
	out, err := execute(t, "aaa bbb ccc\n", "format", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "aaa bbb ccc\n", out)
}
