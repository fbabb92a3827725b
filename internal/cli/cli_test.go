package cli_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/internal/cli"
	"github.com/yaklabco/qmdfmt/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	if cmd.Use != "qmdfmt" {
		t.Errorf("expected Use to be 'qmdfmt', got %q", cmd.Use)
	}
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "tree", "config", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	expectedFlags := []string{
		"check",
		"write",
		"backup",
		"diff",
		"verify",
		"output",
		"jobs",
		"exclude",
		"stdin-filepath",
		"width",
		"wrap",
		"math-indent",
		"line-ending",
	}

	for _, flagName := range expectedFlags {
		if formatCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on format command", flagName)
		}
	}
}

func TestFormatCommandAlias(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	found, _, err := cmd.Find([]string{"fmt"})
	require.NoError(t, err)
	assert.Equal(t, "format", found.Name())
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestVersionCommandShort(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3"})
	cmd.SetArgs([]string{"version", "--short"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"format", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "format [paths...]")
	assert.Contains(t, help, "--check")
	assert.Contains(t, help, "-w, --write")
	assert.Contains(t, help, "(default text)")
	assert.Contains(t, help, "Global Flags:")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	changed := &runner.Result{Stats: runner.Stats{FilesChanged: 1}}
	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1}}

	tests := []struct {
		name   string
		result *runner.Result
		check  bool
		want   int
	}{
		{"nil result", nil, true, cli.ExitSuccess},
		{"clean", &runner.Result{}, true, cli.ExitSuccess},
		{"changed without check", changed, false, cli.ExitSuccess},
		{"changed with check", changed, true, cli.ExitFailure},
		{"errored", failed, false, cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.check))
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeFromError(cli.ErrNotFormatted))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeFromError(errors.New("boom")))
}
