package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qmdfmt/internal/logging"
	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/fsutil"
)

// defaultConfigName is the file written by init.
const defaultConfigName = ".qmdfmt.toml"

type initFlags struct {
	settings settingFlags
	force    bool
	full     bool
	output   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a qmdfmt configuration file",
		Long: `Create a .qmdfmt.toml configuration file in the current directory.

Settings given as flags are written as the file's values; everything else
uses the built-in defaults.

Examples:
  qmdfmt init                        Create .qmdfmt.toml
  qmdfmt init --full                 Document every setting in comments
  qmdfmt init --width 100            Start from a 100 column width
  qmdfmt init --output docs/qmdfmt.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every setting in comments")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "output file path")
	addSettingFlags(cmd, &flags.settings)

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	overrides, err := flags.settings.overrides(cmd)
	if err != nil {
		return err
	}
	values := config.Default()
	overrides.Apply(&values)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Values: values,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'qmdfmt config' to see the settings in effect")

	return nil
}
