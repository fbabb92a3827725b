package formatter

import (
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

const mathFence = "$$"

// mathBlock writes display math with the fences on their own lines. Content
// lines are dedented, then indented by the configured math indent; they are
// never reflowed. A label after the closing fence stays on the closing line.
// An unterminated block is copied as is.
func (f *formatter) mathBlock(n *syntax.Node) {
	markers := n.ChildrenOfKind(syntax.BlockMathMarker)
	if len(markers) < 2 {
		f.writeRaw(n.Text())
		return
	}

	var body string
	if content := n.FindChild(syntax.MathContent); content != nil {
		body = content.Text()
	}

	var label strings.Builder
	for next := markers[1].NextSibling(); next != nil; next = next.NextSibling() {
		if next.Kind() == syntax.Newline {
			break
		}
		label.WriteString(next.Text())
	}

	f.writeLine(mathFence)
	indent := strings.Repeat(" ", f.cfg.MathIndent)
	for _, line := range dedent(mathLines(body)) {
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(indent + line)
	}

	closing := mathFence
	if text := strings.TrimSpace(label.String()); text != "" {
		closing += " " + text
	}
	f.writeLine(closing)
}

// mathLines splits display math into lines, dropping the empty remainders of
// the fence lines and trailing whitespace.
func mathLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// dedent removes the indentation common to all non-empty lines.
func dedent(lines []string) []string {
	common := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if line != "" {
			out[i] = line[common:]
		}
	}
	return out
}
