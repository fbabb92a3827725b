package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qmdfmt/internal/configloader"
	"github.com/yaklabco/qmdfmt/internal/logging"
	"github.com/yaklabco/qmdfmt/pkg/config"
)

// settingFlags are the formatter settings that can be overridden on the
// command line.
type settingFlags struct {
	width      int
	wrap       string
	mathIndent int
	lineEnding string
}

func addSettingFlags(cmd *cobra.Command, flags *settingFlags) {
	def := config.Default()
	cmd.Flags().IntVar(&flags.width, "width", def.LineWidth, "maximum line width for reflowed text")
	cmd.Flags().StringVar(&flags.wrap, "wrap", string(def.Wrap), "paragraph layout: reflow, preserve")
	cmd.Flags().IntVar(&flags.mathIndent, "math-indent", def.MathIndent, "spaces before each display math line")
	cmd.Flags().StringVar(&flags.lineEnding, "line-ending", string(def.LineEnding),
		"output line endings: auto, lf, crlf")
}

// overrides returns the settings that were given explicitly.
func (f *settingFlags) overrides(cmd *cobra.Command) (configloader.Overrides, error) {
	var o configloader.Overrides

	if cmd.Flags().Changed("width") {
		o.LineWidth = &f.width
	}
	if cmd.Flags().Changed("math-indent") {
		o.MathIndent = &f.mathIndent
	}
	if cmd.Flags().Changed("wrap") {
		mode, err := config.ParseWrapMode(f.wrap)
		if err != nil {
			return o, fmt.Errorf("--wrap: %w", err)
		}
		o.Wrap = &mode
	}
	if cmd.Flags().Changed("line-ending") {
		ending, err := config.ParseLineEnding(f.lineEnding)
		if err != nil {
			return o, fmt.Errorf("--line-ending: %w", err)
		}
		o.LineEnding = &ending
	}

	return o, nil
}

// loadConfig resolves the configuration for cmd, logging where it came
// from and any load warnings.
func loadConfig(ctx context.Context, cmd *cobra.Command, flags *settingFlags) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	opts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	}
	if flags != nil {
		opts.Overrides, err = flags.overrides(cmd)
		if err != nil {
			return nil, err
		}
	}

	loadResult, err := configloader.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
