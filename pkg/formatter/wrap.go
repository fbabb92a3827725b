package formatter

import (
	"strings"

	"github.com/muesli/reflow/ansi"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// maxHeadingLevel is the longest run of '#' that opens an ATX heading.
const maxHeadingLevel = 6

// maxListNumber is the longest digit run accepted as an ordered list marker.
const maxListNumber = 9

// word is an unbreakable unit of inline text.
type word struct {
	text  string
	width int
}

func newWord(text string) word {
	return word{text: text, width: ansi.PrintableRuneWidth(text)}
}

// splitWords groups inline children into words, one slice per source line.
// Adjacent non-whitespace tokens and nodes are glued into a single word.
// Indentation and block quote markers at the start of a line are dropped.
func splitWords(nodes []*syntax.Node, quoted bool) [][]word {
	var (
		lines     [][]word
		line      []word
		cur       strings.Builder
		lineStart = true
	)

	flush := func() {
		if cur.Len() > 0 {
			line = append(line, newWord(cur.String()))
			cur.Reset()
		}
	}

	for _, n := range nodes {
		switch n.Kind() {
		case syntax.Whitespace:
			flush()
			continue
		case syntax.Newline:
			flush()
			if len(line) > 0 {
				lines = append(lines, line)
			}
			line = nil
			lineStart = true
			continue
		case syntax.BlockQuoteMarker:
			if lineStart {
				continue
			}
		}
		lineStart = false
		cur.WriteString(atomText(n, quoted))
	}

	flush()
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// atomText returns the text of an inline unit on a single line. Line breaks
// inside it become one space and the next line's indentation is dropped.
func atomText(n *syntax.Node, quoted bool) string {
	if n.IsToken() {
		return joinLines(n.Text(), quoted)
	}

	var sb strings.Builder
	lineStart := false
	_ = syntax.Walk(n, func(c *syntax.Node) error {
		if !c.IsToken() {
			return nil
		}
		switch c.Kind() {
		case syntax.Newline:
			if s := sb.String(); s != "" && !strings.HasSuffix(s, " ") {
				sb.WriteByte(' ')
			}
			lineStart = true
			return nil
		case syntax.Whitespace, syntax.BlockQuoteMarker:
			if lineStart {
				return nil
			}
		}
		lineStart = false
		sb.WriteString(joinLines(c.Text(), quoted))
		return nil
	})
	return sb.String()
}

func joinLines(s string, quoted bool) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	cut := " \t\r"
	if quoted {
		cut += ">"
	}

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
		if i > 0 {
			lines[i] = strings.TrimLeft(lines[i], cut)
		}
	}
	return strings.Join(lines, " ")
}

// wrap packs words greedily into lines no wider than width. A word that would
// be read as block syntax at the start of a line is kept on the previous line
// together with the word before it.
func wrap(words []word, width int) [][]word {
	var (
		lines [][]word
		cur   []word
		used  int
	)

	for _, w := range words {
		if len(cur) == 0 {
			cur = []word{w}
			used = w.width
			continue
		}
		if used+1+w.width <= width {
			cur = append(cur, w)
			used += 1 + w.width
			continue
		}

		next := []word{w}
		for unsafeAtLineStart(next[0].text) && len(cur) > 1 {
			last := cur[len(cur)-1]
			cur = cur[:len(cur)-1]
			next = append([]word{last}, next...)
		}
		if unsafeAtLineStart(next[0].text) {
			cur = append(cur, next...)
			used = lineWidth(cur)
			continue
		}

		lines = append(lines, cur)
		cur = next
		used = lineWidth(cur)
	}

	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func lineWidth(words []word) int {
	if len(words) == 0 {
		return 0
	}
	total := len(words) - 1
	for _, w := range words {
		total += w.width
	}
	return total
}

func joinWords(words []word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}

// unsafeAtLineStart reports whether a line beginning with s would open a
// block construct when the output is parsed again.
func unsafeAtLineStart(s string) bool {
	for _, prefix := range []string{"```", "~~~", ":::", "$$", "<!--", `\begin{`, ">"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	switch {
	case s == "+" || s == "*":
		return true
	case isRun(s, '-') || isRun(s, '='):
		return true
	case isRun(s, '#') && len(s) <= maxHeadingLevel:
		return true
	}

	digits := strings.TrimSuffix(s, ".")
	return len(digits) < len(s) && len(digits) <= maxListNumber && isRun09(digits)
}

func isRun(s string, c byte) bool {
	return s != "" && strings.Trim(s, string(c)) == ""
}

func isRun09(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// escapeLineStart returns line with its first word rewritten to read as text
// when it would otherwise open a block construct.
func escapeLineStart(line []word) []word {
	if len(line) == 0 || !unsafeAtLineStart(line[0].text) {
		return line
	}
	out := make([]word, len(line))
	copy(out, line)
	out[0] = newWord(escapeMarker(line[0].text))
	return out
}

// escapeMarker backslash-escapes the block marker at the start of s. Runs of
// span delimiters are escaped whole so the remainder cannot open a code span
// or inline math.
func escapeMarker(s string) string {
	if strings.HasPrefix(s, `\`) {
		return s
	}
	if digits := strings.TrimSuffix(s, "."); digits != s && isRun09(digits) {
		return digits + `\.`
	}

	run := 1
	if strings.IndexByte("`~$", s[0]) >= 0 {
		for run < len(s) && s[run] == s[0] {
			run++
		}
	}
	return strings.Repeat(`\`+s[:1], run) + s[run:]
}
