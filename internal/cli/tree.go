package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qmdfmt/internal/logging"
	"github.com/yaklabco/qmdfmt/internal/ui/pretty"
	"github.com/yaklabco/qmdfmt/pkg/fsutil"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
)

func newTreeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the syntax tree of a document",
		Long: `Parse a document and print its concrete syntax tree.

The text dump lists every node and token with its byte range. The YAML
dump is a structural outline that also records the language of each code
block, guessed from the content when the block has no info string.

With no file, the document is read from standard input.

Examples:
  qmdfmt tree doc.qmd
  qmdfmt tree --output yaml doc.qmd
  echo '# Title' | qmdfmt tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "dump format: text, yaml")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, output string) error {
	ctx := commandContext(cmd)

	var src *fsutil.Source
	var err error
	if len(args) == 0 {
		src, err = fsutil.LoadReader(cmd.InOrStdin(), stdinName)
	} else {
		src, err = fsutil.Load(ctx, args[0])
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch output {
	case "text", "":
		dump, err := qmdfmt.DebugTree(string(src.Content))
		if err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), w))
		_, err = io.WriteString(w, styles.FormatTree(dump))
		return err
	case "yaml":
		logger := logging.FromContext(ctx).With(logging.FieldPath, src.Path)
		data, err := qmdfmt.TreeYAML(string(src.Content), qmdfmt.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output %q; valid outputs: text, yaml", output)
	}
}
