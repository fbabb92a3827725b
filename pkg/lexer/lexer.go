// Package lexer splits Quarto markdown into a flat sequence of positional
// tokens. Tokenization is total: every input produces tokens whose lengths sum
// to the input length.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// maxFenceIndent is the widest indentation, in columns, at which fences and
// block quote markers are recognized.
const maxFenceIndent = 3

// tabWidth is the column width of a tab in indentation.
const tabWidth = 4

type fence struct {
	char byte
	n    int
}

type lexer struct {
	input  string
	pos    int
	tokens []syntax.Token

	lineStart   int
	lineContent bool // a non-whitespace token was emitted on the current line
	lineQuoted  bool // a block quote marker was accepted on the current line
	prevBlank   bool // the previous line was blank or closed a raw region
	boundary    bool // the current line closes a raw region
	quoteActive bool // lines since the last blank line belong to a quote

	code        *fence
	frontmatter string

	// footnotes holds the open bracket depth of every unclosed ^[ on the
	// current paragraph.
	footnotes []int
}

// Tokenize splits input into tokens. The tokens partition the input exactly.
func Tokenize(input string) []syntax.Token {
	l := &lexer{
		input:  input,
		tokens: make([]syntax.Token, 0, len(input)/4+1),
	}
	l.run()
	return l.tokens
}

func (l *lexer) run() {
	if delim := openingFrontmatter(l.input); delim != "" {
		l.frontmatter = delim
		l.emit(syntax.FrontmatterDelim, len(delim))
		l.emit(syntax.Whitespace, l.lineEnd()-l.pos)
		l.lexNewline()
	}

	for l.pos < len(l.input) {
		start := l.pos

		switch {
		case l.pos == l.lineStart && l.frontmatter != "":
			l.lexFrontmatterLine()
		case l.pos == l.lineStart && l.code != nil:
			l.lexCodeLine()
		default:
			l.lexToken()
		}

		if l.pos == start {
			_, size := utf8.DecodeRuneInString(l.input[l.pos:])
			l.emit(syntax.Text, size)
		}
	}
}

func (l *lexer) emit(kind syntax.Kind, n int) {
	if n <= 0 {
		return
	}
	l.tokens = append(l.tokens, syntax.Token{Kind: kind, Len: n})
	l.pos += n
	if kind != syntax.Whitespace && kind != syntax.Newline {
		l.lineContent = true
	}
}

func (l *lexer) peek(offset int) byte {
	i := l.pos + offset
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// lineEnd returns the index where the current line's content ends, excluding
// the line terminator.
func (l *lexer) lineEnd() int {
	idx := strings.IndexByte(l.input[l.pos:], '\n')
	if idx < 0 {
		return len(l.input)
	}
	end := l.pos + idx
	if end > l.pos && l.input[end-1] == '\r' {
		end--
	}
	return end
}

func (l *lexer) lexNewline() {
	switch {
	case strings.HasPrefix(l.input[l.pos:], "\r\n"):
		l.emit(syntax.Newline, 2)
	case l.peek(0) == '\n':
		l.emit(syntax.Newline, 1)
	default:
		return
	}
	l.endLine()
}

func (l *lexer) endLine() {
	blank := !l.lineContent
	if blank {
		l.quoteActive = false
		l.footnotes = l.footnotes[:0]
	}
	l.prevBlank = blank || l.boundary
	l.boundary = false
	l.lineStart = l.pos
	l.lineContent = false
	l.lineQuoted = false
}

// emitRawLine emits the remainder of the line up to end as leading
// whitespace followed by a single text token.
func (l *lexer) emitRawLine(end int) {
	ws := leadingSpace(l.input[l.pos:end])
	l.emit(syntax.Whitespace, ws)
	l.emit(syntax.Text, end-l.pos)
}

func (l *lexer) lexFrontmatterLine() {
	end := l.lineEnd()
	line := l.input[l.pos:end]

	if strings.TrimRight(line, " \t") == l.frontmatter {
		l.emit(syntax.FrontmatterDelim, len(l.frontmatter))
		l.emit(syntax.Whitespace, end-l.pos)
		l.frontmatter = ""
		l.boundary = true
	} else {
		l.emitRawLine(end)
	}

	l.lexNewline()
}

func (l *lexer) lexCodeLine() {
	end := l.lineEnd()
	line := l.input[l.pos:end]

	if n, ok := closesFence(line, *l.code); ok {
		indent := leadingSpace(line)
		l.emit(syntax.Whitespace, indent)
		l.emit(syntax.CodeFenceMarker, n)
		l.emit(syntax.Whitespace, end-l.pos)
		l.code = nil
		l.boundary = true
	} else {
		l.emitRawLine(end)
	}

	l.lexNewline()
}

func (l *lexer) lexToken() {
	c := l.input[l.pos]

	switch c {
	case '\n':
		l.lexNewline()
	case '\r':
		if l.peek(1) == '\n' {
			l.lexNewline()
		} else {
			l.lexWhitespace()
		}
	case ' ', '\t':
		l.lexWhitespace()
	case '-', '+':
		l.lexDashOrPlus(c)
	case '*':
		if l.atIndentPrefix() && l.peek(1) == ' ' {
			l.emit(syntax.ListMarker, 1)
		} else {
			l.lexText()
		}
	case '>':
		l.lexQuoteMarker()
	case '$':
		l.lexDollar()
	case '`', '~':
		l.lexFenceOrSpan(c)
	case ':':
		if run := l.runLen(':'); run >= 3 && l.atFencePrefix() {
			l.emit(syntax.DivMarker, run)
		} else {
			l.lexText()
		}
	case '[':
		l.lexLink(0)
	case '!':
		if l.peek(1) == '[' {
			l.lexLink(1)
		} else {
			l.lexText()
		}
	case '\\':
		l.lexBackslash()
	case '{':
		if n := groupLen(l.input, l.pos, '{', '}'); n > 0 {
			l.emit(syntax.Attribute, n)
		} else {
			l.lexText()
		}
	case '<':
		if strings.HasPrefix(l.input[l.pos:], "<!--") {
			l.emit(syntax.CommentStart, 4)
		} else {
			l.lexText()
		}
	case '^':
		if l.peek(1) == '[' {
			l.emit(syntax.InlineFootnoteStart, 2)
			l.footnotes = append(l.footnotes, 0)
		} else {
			l.lexText()
		}
	case ']':
		l.lexCloseBracket()
	default:
		if isDigit(c) {
			if n := l.orderedMarkerLen(); n > 0 {
				l.emit(syntax.ListMarker, n)
				return
			}
		}
		l.lexText()
	}
}

func (l *lexer) lexWhitespace() {
	i := l.pos
	for i < len(l.input) {
		c := l.input[i]
		if c == ' ' || c == '\t' || (c == '\r' && (i+1 >= len(l.input) || l.input[i+1] != '\n')) {
			i++
			continue
		}
		break
	}
	l.emit(syntax.Whitespace, i-l.pos)
}

func (l *lexer) lexDashOrPlus(c byte) {
	rest := l.input[l.pos:]
	run := l.runLen(c)

	switch {
	case c == '-' && strings.HasPrefix(rest, "-->"):
		l.emit(syntax.CommentEnd, 3)
	case l.pos == l.lineStart && run == 3 && isTokenBoundary(l.input, l.pos+3):
		l.emit(syntax.FrontmatterDelim, 3)
	case run == 1 && l.atIndentPrefix() && l.peek(1) == ' ':
		l.emit(syntax.ListMarker, 1)
	case c == '-' && run >= 3 && l.peek(run) == '>':
		// Leave "-->" for the comment terminator.
		l.emit(syntax.Text, run-2)
	default:
		l.lexText()
	}
}

func (l *lexer) lexQuoteMarker() {
	if l.quoteAllowed() {
		if !l.lineQuoted {
			l.quoteActive = true
		}
		l.lineQuoted = true
		l.emit(syntax.BlockQuoteMarker, 1)
		return
	}
	l.lexText()
}

// quoteAllowed applies the blank-before-blockquote rule. Nested markers on a
// line that already carries one are always accepted.
func (l *lexer) quoteAllowed() bool {
	prefix := l.input[l.lineStart:l.pos]
	indent := leadingSpace(prefix)
	if columns(prefix[:indent]) > maxFenceIndent {
		return false
	}
	for i := indent; i < len(prefix); i++ {
		switch prefix[i] {
		case ' ', '\t', '>':
		default:
			return false
		}
	}
	if l.lineQuoted {
		return true
	}
	return l.lineStart == 0 || l.prevBlank || l.quoteActive
}

func (l *lexer) lexDollar() {
	if run := l.runLen('$'); run >= 2 {
		l.emit(syntax.BlockMathMarker, run)
		return
	}

	if l.pos > 0 && l.input[l.pos-1] == '\\' {
		l.emit(syntax.Text, 1)
		return
	}

	if isDigit(l.peek(1)) {
		i := l.pos + 1
		for i < len(l.input) && (isDigit(l.input[i]) || l.input[i] == ',' || l.input[i] == '.') {
			i++
		}
		l.emit(syntax.Text, i-l.pos)
		return
	}

	l.emit(syntax.InlineMathMarker, 1)
}

func (l *lexer) lexFenceOrSpan(c byte) {
	run := l.runLen(c)
	bare := l.atFencePrefix()

	if run >= 3 && (bare || l.atQuotedPrefix()) {
		end := l.lineEnd()
		if c == '~' || !strings.ContainsRune(l.input[l.pos+run:end], '`') {
			l.emit(syntax.CodeFenceMarker, run)
			if bare {
				l.code = &fence{char: c, n: run}
			}
			return
		}
	}

	if c == '`' {
		if n := codeSpanLen(l.input, l.pos, run); n > 0 {
			l.emit(syntax.CodeSpan, n)
		} else {
			l.emit(syntax.Text, run)
		}
		return
	}

	l.lexText()
}

func (l *lexer) lexLink(bang int) {
	open := l.pos + bang
	if end := linkEnd(l.input, open); end > 0 {
		kind := syntax.Link
		if bang > 0 {
			kind = syntax.ImageLink
		}
		l.emit(kind, end-l.pos)
		return
	}

	kind := syntax.LinkStart
	if bang > 0 {
		kind = syntax.ImageLinkStart
	}
	l.emit(kind, bang+1)

	if n := len(l.footnotes); n > 0 {
		l.footnotes[n-1]++
	}
}

func (l *lexer) lexCloseBracket() {
	n := len(l.footnotes)
	if n == 0 {
		l.lexText()
		return
	}
	if l.footnotes[n-1] == 0 {
		l.footnotes = l.footnotes[:n-1]
		l.emit(syntax.InlineFootnoteEnd, 1)
		return
	}
	l.footnotes[n-1]--
	l.emit(syntax.Text, 1)
}

func (l *lexer) lexBackslash() {
	next := l.peek(1)

	switch {
	case l.pos+1 >= len(l.input) || next == '\n' || next == '\r':
		l.emit(syntax.Text, 1)
	case isLetter(next):
		l.emit(latexCommand(l.input, l.pos))
	default:
		_, size := utf8.DecodeRuneInString(l.input[l.pos+1:])
		l.emit(syntax.Text, 1+size)
	}
}

func (l *lexer) orderedMarkerLen() int {
	if !l.atIndentPrefix() {
		return 0
	}
	i := l.pos
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	digits := i - l.pos
	if digits == 0 || digits > 9 {
		return 0
	}
	if i+1 < len(l.input) && l.input[i] == '.' && l.input[i+1] == ' ' {
		return digits + 1
	}
	return 0
}

func (l *lexer) lexText() {
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	i := l.pos + size
	for i < len(l.input) && !l.stopsText(i) {
		i++
	}
	l.emit(syntax.Text, i-l.pos)
}

// stopsText reports whether the byte at i may begin a token other than text.
func (l *lexer) stopsText(i int) bool {
	rest := l.input[i:]

	switch rest[0] {
	case '\n', '\r', ' ', '\t', '`', '$', '[', '\\':
		return true
	case '-':
		return strings.HasPrefix(rest, "-->")
	case '!', '^':
		return len(rest) > 1 && rest[1] == '['
	case '{':
		return groupLen(l.input, i, '{', '}') > 0
	case '<':
		return strings.HasPrefix(rest, "<!--")
	case ']':
		return len(l.footnotes) > 0
	default:
		return false
	}
}

func (l *lexer) runLen(c byte) int {
	i := l.pos
	for i < len(l.input) && l.input[i] == c {
		i++
	}
	return i - l.pos
}

// atIndentPrefix reports whether only spaces and tabs precede pos on its line.
func (l *lexer) atIndentPrefix() bool {
	return leadingSpace(l.input[l.lineStart:l.pos]) == l.pos-l.lineStart
}

// atFencePrefix reports whether pos is preceded by at most three columns of
// indentation and nothing else.
func (l *lexer) atFencePrefix() bool {
	return l.atIndentPrefix() && columns(l.input[l.lineStart:l.pos]) <= maxFenceIndent
}

// atQuotedPrefix reports whether only block quote markers and whitespace
// precede pos on a quoted line.
func (l *lexer) atQuotedPrefix() bool {
	if !l.lineQuoted {
		return false
	}
	for i := l.lineStart; i < l.pos; i++ {
		switch l.input[i] {
		case ' ', '\t', '>':
		default:
			return false
		}
	}
	return true
}
