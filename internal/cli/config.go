package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qmdfmt/internal/configloader"
)

func newConfigCommand() *cobra.Command {
	var output string
	var showEnv bool
	settings := &settingFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration qmdfmt would use in the current directory,
after config files, QMDFMT_* environment variables and flags are applied.

Examples:
  qmdfmt config
  qmdfmt config --output yaml
  qmdfmt config --width 100
  qmdfmt config --env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return runConfig(cmd, settings, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "toml", "output format: toml, yaml")
	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables")
	addSettingFlags(cmd, settings)

	return cmd
}

func runConfig(cmd *cobra.Command, settings *settingFlags, output string) error {
	ctx := commandContext(cmd)

	loadResult, err := loadConfig(ctx, cmd, settings)
	if err != nil {
		return err
	}

	var data []byte
	switch output {
	case "toml", "":
		data, err = loadResult.Config.ToTOML()
	case "yaml":
		data, err = loadResult.Config.ToYAML()
	default:
		return fmt.Errorf("unknown output %q; valid outputs: toml, yaml", output)
	}
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	w := cmd.OutOrStdout()
	source := loadResult.LoadedFrom
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(w, "# loaded from %s\n", source)
	_, err = w.Write(data)
	return err
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	w := cmd.OutOrStdout()
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-20s %s\n", name, vars[name]); err != nil {
			return err
		}
	}
	return nil
}
