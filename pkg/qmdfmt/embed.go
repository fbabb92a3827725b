package qmdfmt

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/langdetect"
	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// yamlIndent is the indentation of YAML tree dumps.
const yamlIndent = 2

// FormatText formats text for hosts that only pass strings around. A width
// of zero or less uses the default line width.
func FormatText(text string, width int) (string, error) {
	cfg := config.Default()
	if width > 0 {
		cfg.LineWidth = width
	}
	return Format(text, &cfg)
}

// DebugTree returns the textual dump of the parsed tree of text.
func DebugTree(text string) (string, error) {
	root, err := Parse(text)
	if err != nil {
		return "", err
	}
	return syntax.Dump(root), nil
}

// Outline parses text and returns its serializable outline. Code blocks are
// annotated with their language, taken from the info string or guessed from
// the content.
func Outline(text string, opts ...Option) (*syntax.Outline, error) {
	root, err := Parse(text, opts...)
	if err != nil {
		return nil, err
	}
	return syntax.OutlineOf(root, annotateLanguage), nil
}

// TreeYAML renders the outline of text as YAML.
func TreeYAML(text string, opts ...Option) ([]byte, error) {
	outline, err := Outline(text, opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(outline); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func annotateLanguage(n *syntax.Node, o *syntax.Outline) {
	if n.Kind() != syntax.CodeBlock {
		return
	}

	var info string
	if open := n.FindChild(syntax.CodeFenceOpen); open != nil {
		if ci := open.FindChild(syntax.CodeInfo); ci != nil {
			info = ci.Text()
		}
	}

	var content string
	if body := n.FindChild(syntax.CodeContent); body != nil {
		content = body.Text()
	}
	if strings.TrimSpace(content) == "" && info == "" {
		return
	}

	o.Language = langdetect.ForCodeBlock(info, []byte(content))
}
