package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every key with its accepted values. If false, a short
	// commented template is generated.
	Full bool

	// Values are written as the active settings. Zero fields use defaults.
	Values Config
}

type templateKey struct {
	name   string
	doc    []string
	render func(Config) string
}

//nolint:gochecknoglobals // Static table of documented keys.
var templateKeys = []templateKey{
	{
		name: "line_width",
		doc: []string{
			"Maximum display width of reflowed paragraphs, list items and quotes.",
			"Words that cannot be split (links, code spans, math) may exceed it.",
		},
		render: func(c Config) string { return fmt.Sprintf("%d", c.LineWidth) },
	},
	{
		name: "wrap",
		doc: []string{
			"Paragraph layout: \"reflow\" re-wraps text to line_width,",
			"\"preserve\" keeps existing line breaks and only normalizes spacing.",
		},
		render: func(c Config) string { return fmt.Sprintf("%q", c.Wrap) },
	},
	{
		name: "math_indent",
		doc: []string{
			"Spaces added before each line of display math between $$ fences.",
		},
		render: func(c Config) string { return fmt.Sprintf("%d", c.MathIndent) },
	},
	{
		name: "line_ending",
		doc: []string{
			"Output line terminator: \"auto\" keeps the style of the input,",
			"\"lf\" or \"crlf\" force one.",
		},
		render: func(c Config) string { return fmt.Sprintf("%q", c.LineEnding) },
	},
}

// GenerateTemplate renders a commented TOML configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	values := opts.Values.Normalize()
	if err := values.Validate(); err != nil {
		return nil, fmt.Errorf("template values: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteByte('\n')

	for i, key := range templateKeys {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if opts.Full {
			for _, line := range key.doc {
				buf.WriteString("# " + line + "\n")
			}
		}
		fmt.Fprintf(&buf, "%s = %s\n", key.name, key.render(values))
	}

	// Round-trip the result so a broken template is never written.
	if _, _, err := FromTOML(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("generated template is invalid: %w", err)
	}

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the comment block placed at the top of
// generated configuration files.
func DefaultTemplateHeader() string {
	return strings.Join([]string{
		"# qmdfmt configuration",
		"# See: https://github.com/yaklabco/qmdfmt",
		"#",
		"# Settings can be overridden with QMDFMT_* environment variables",
		"# and command-line flags.",
	}, "\n") + "\n"
}
