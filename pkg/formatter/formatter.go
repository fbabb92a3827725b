// Package formatter renders a concrete syntax tree back to canonical
// Quarto Markdown.
//
// The formatter never mutates the tree and keeps no state between calls:
// output depends only on the tree and the configuration. Verbatim regions
// (code, frontmatter, comments, tables, LaTeX) are copied exactly; prose is
// re-wrapped or re-spaced according to [config.Config.Wrap].
package formatter

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// nestedListIndent is the extra indentation of a list nested in a list item.
const nestedListIndent = 2

// Option configures a formatter run.
type Option func(*formatter)

// WithLogger routes debug tracing to logger.
func WithLogger(logger *log.Logger) Option {
	return func(f *formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

type formatter struct {
	writer

	cfg    config.Config
	logger *log.Logger
}

// FormatTree renders root, which is either a ROOT or a DOCUMENT node. Zero
// configuration fields take their defaults.
func FormatTree(root *syntax.Node, cfg config.Config, opts ...Option) string {
	f := &formatter{cfg: cfg.Normalize(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(f)
	}

	if root == nil {
		return ""
	}
	doc := root
	if root.Kind() == syntax.Root {
		doc = root.FindChild(syntax.Document)
		if doc == nil {
			return ""
		}
	}

	f.blocks(doc.Children())
	return f.String()
}

func (f *formatter) blocks(nodes []*syntax.Node) {
	for _, n := range nodes {
		if !n.IsToken() {
			f.block(n)
		}
	}
}

func (f *formatter) block(n *syntax.Node) {
	switch kind := n.Kind(); {
	case kind.IsVerbatim():
		f.writeRaw(n.Text())
	case kind == syntax.BlankLine:
		f.blank()
	case kind == syntax.Heading:
		f.heading(n)
	case kind == syntax.Paragraph:
		f.paragraph(n.Children())
	case kind == syntax.BlockQuote:
		f.push(quoteContainer())
		f.blocks(n.Children())
		f.pop()
	case kind == syntax.List:
		f.list(n, 0)
	case kind == syntax.FencedDiv:
		f.fencedDiv(n)
	case kind == syntax.MathBlock:
		f.mathBlock(n)
	default:
		f.logger.Debug("unhandled block, copied verbatim", "kind", kind)
		f.writeRaw(n.Text())
	}
}

// heading writes the ATX form of an ATX or setext heading, followed by a
// blank line when another block comes next.
func (f *formatter) heading(n *syntax.Node) {
	level := 1
	if marker := n.FindChild(syntax.AtxHeadingMarker); marker != nil {
		level = len(marker.Text())
	} else if under := n.FindChild(syntax.SetextHeadingUnderline); under != nil {
		if strings.HasPrefix(strings.TrimSpace(under.Text()), "-") {
			level = 2
		}
	}

	line := strings.Repeat("#", level)
	if content := n.FindChild(syntax.HeadingContent); content != nil {
		if text := strings.TrimSpace(atomText(content, f.quoted())); text != "" {
			line += " " + text
		}
	}
	f.writeLine(line)

	for next := n.NextSibling(); next != nil; next = next.NextSibling() {
		if !next.IsToken() {
			f.blank()
			break
		}
	}
}

// paragraph writes inline content. It reports whether anything was written.
func (f *formatter) paragraph(nodes []*syntax.Node) bool {
	lines := splitWords(nodes, f.quoted())
	if len(lines) == 0 {
		return false
	}

	if f.cfg.Wrap == config.WrapPreserve {
		for _, line := range lines {
			f.writeLine(joinWords(escapeLineStart(line)))
		}
		return true
	}

	var words []word
	for _, line := range lines {
		words = append(words, line...)
	}
	words = escapeLineStart(words)

	width := max(f.cfg.LineWidth-f.prefixWidth(), 1)
	for _, line := range wrap(words, width) {
		if w := lineWidth(line); w > width {
			f.logger.Debug("line exceeds width", "width", width, "len", w, "words", len(line))
		}
		f.writeLine(joinWords(escapeLineStart(line)))
	}
	return true
}

// quoted reports whether output is currently inside a block quote.
func (f *formatter) quoted() bool {
	for _, ct := range f.containers {
		if ct.quote {
			return true
		}
	}
	return false
}

func (f *formatter) list(n *syntax.Node, indent int) {
	for _, item := range n.ChildrenOfKind(syntax.ListItem) {
		f.listItem(item, indent)
	}
}

// listItem writes the marker and a hanging indent of the marker's width plus
// one. Nested lists sit two columns deeper than the item.
func (f *formatter) listItem(item *syntax.Node, indent int) {
	marker := item.FindChild(syntax.ListMarker)
	if marker == nil {
		f.writeRaw(item.Text())
		return
	}

	pad := strings.Repeat(" ", indent)
	ct := &container{
		marker: pad + marker.Text() + " ",
		cont:   pad + strings.Repeat(" ", len(marker.Text())+1),
	}

	var inline []*syntax.Node
	flush := func() {
		f.push(ct)
		if !f.paragraph(inline) && !ct.used {
			f.pop()
			f.writeRaw(f.markers() + ct.use())
			inline = nil
			return
		}
		f.pop()
		inline = nil
	}

	seenMarker := false
	for _, c := range item.Children() {
		switch {
		case !seenMarker:
			seenMarker = c == marker
		case c.Kind() == syntax.List:
			flush()
			f.list(c, indent+nestedListIndent)
		default:
			inline = append(inline, c)
		}
	}

	if len(inline) > 0 || !ct.used {
		flush()
	}
}

// fencedDiv copies the fences and formats the content like a document.
func (f *formatter) fencedDiv(n *syntax.Node) {
	if open := n.FindChild(syntax.DivFenceOpen); open != nil {
		f.writeRaw(open.Text())
	}
	if content := n.FindChild(syntax.DivContent); content != nil {
		f.blocks(content.Children())
	}
	if closing := n.FindChild(syntax.DivFenceClose); closing != nil {
		f.writeRaw(closing.Text())
	}
}
