package lexer

import (
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// leadingSpace returns the number of leading space and tab bytes in s.
func leadingSpace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// columns measures the display width of an indentation string.
func columns(s string) int {
	cols := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			cols += tabWidth
		} else {
			cols++
		}
	}
	return cols
}

// isTokenBoundary reports whether position i is the end of input or begins
// whitespace or a line terminator.
func isTokenBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	switch s[i] {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// openingFrontmatter returns the frontmatter delimiter when the input starts
// with a --- or +++ line.
func openingFrontmatter(input string) string {
	if len(input) < 3 {
		return ""
	}
	delim := input[:3]
	if delim != "---" && delim != "+++" {
		return ""
	}

	rest := input[3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if strings.TrimRight(rest, " \t\r") != "" {
		return ""
	}
	return delim
}

// closesFence reports whether line closes a code fence opened by f and
// returns the closing marker length.
func closesFence(line string, f fence) (int, bool) {
	indent := leadingSpace(line)
	if columns(line[:indent]) > maxFenceIndent {
		return 0, false
	}

	i := indent
	for i < len(line) && line[i] == f.char {
		i++
	}
	n := i - indent
	if n < f.n {
		return 0, false
	}
	if strings.TrimRight(line[i:], " \t") != "" {
		return 0, false
	}
	return n, true
}

// groupLen returns the length of a balanced open..close group starting at i
// that does not cross a line break, or 0.
func groupLen(s string, i int, open, closer byte) int {
	if i >= len(s) || s[i] != open {
		return 0
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return 0
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return j - i + 1
			}
		}
	}
	return 0
}

// linkEnd returns the index just past a [text](url) construct whose opening
// bracket is at open, or 0 when the brackets do not close on the line.
func linkEnd(s string, open int) int {
	depth := 0
	closeBracket := -1

	for j := open; j < len(s) && closeBracket < 0; j++ {
		switch s[j] {
		case '\n':
			return 0
		case '\\':
			if j+1 < len(s) && s[j+1] != '\n' {
				j++
			}
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				closeBracket = j
			}
		}
	}

	if closeBracket < 0 {
		return 0
	}
	n := groupLen(s, closeBracket+1, '(', ')')
	if n == 0 {
		return 0
	}
	return closeBracket + 1 + n
}

// codeSpanLen returns the length of a code span opened by a backtick run of
// length n at i, or 0 when no closing run of exactly n backticks follows
// before a blank line or a fence-like line.
func codeSpanLen(s string, i, n int) int {
	j := i + n
	for j < len(s) {
		switch s[j] {
		case '\n':
			if endsCodeSpanSearch(s[j+1:]) {
				return 0
			}
			j++
		case '`':
			k := j
			for k < len(s) && s[k] == '`' {
				k++
			}
			if k-j == n {
				return k - i
			}
			j = k
		default:
			j++
		}
	}
	return 0
}

// endsCodeSpanSearch reports whether the line starting rest is blank or opens
// a fenced construct.
func endsCodeSpanSearch(rest string) bool {
	line := rest
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	stripped := strings.TrimLeft(line, " \t>")
	if strings.TrimRight(stripped, " \t\r") == "" {
		return true
	}
	for _, prefix := range []string{"```", "~~~", ":::", "$$"} {
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}

// latexCommand lexes a backslash command at i: the name, an optional [...]
// group and any number of {...} groups. \begin{..} and \end{..} produce
// environment markers instead.
func latexCommand(s string, i int) (syntax.Kind, int) {
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	name := s[i+1 : j]

	if name == "begin" || name == "end" {
		if g := groupLen(s, j, '{', '}'); g > 0 {
			if name == "begin" {
				return syntax.LatexEnvBegin, j + g - i
			}
			return syntax.LatexEnvEnd, j + g - i
		}
	}

	j += groupLen(s, j, '[', ']')
	for {
		g := groupLen(s, j, '{', '}')
		if g == 0 {
			break
		}
		j += g
	}
	return syntax.LatexCommand, j - i
}
