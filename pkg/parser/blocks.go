package parser

import (
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// maxHeadingLevel is the deepest ATX heading.
const maxHeadingLevel = 6

// maxBlockIndent is the widest indentation at which a heading is recognized.
const maxBlockIndent = 3

func (p *parser) parseBlankLine() *syntax.Node {
	b := syntax.NewBuilder(syntax.BlankLine)
	p.takeLine(b)
	return b.Finish()
}

func (p *parser) parseFrontmatter() (*syntax.Node, error) {
	b := syntax.NewBuilder(syntax.Frontmatter)
	delim := p.Text(0)

	for line := p.NextLine(0); line < p.Len(); line = p.NextLine(line) {
		if p.Is(line, syntax.FrontmatterDelim) && p.Text(line) == delim && p.RestIsSpace(line+1) {
			p.takeTo(b, p.NextLine(line))
			return b.Finish(), nil
		}
	}

	return nil, &ParseError{Kind: UnterminatedFrontmatter, Offset: 0}
}

// isAtxHeading reports whether the line starting at start, whose first
// content token is content, is an ATX heading.
func (p *parser) isAtxHeading(start, content int) bool {
	if p.Indent(start) > maxBlockIndent || !p.Is(content, syntax.Text) {
		return false
	}
	marker := p.Text(content)
	if len(marker) > maxHeadingLevel || !isRun(marker, '#') {
		return false
	}
	kind, ok := p.Kind(content + 1)
	return !ok || kind == syntax.Whitespace || kind == syntax.Newline
}

func (p *parser) parseAtxHeading(start, content int) *syntax.Node {
	b := syntax.NewBuilder(syntax.Heading)
	p.pos = start
	p.takeTo(b, content)

	b.Node(syntax.NewNode(syntax.AtxHeadingMarker, syntax.NewToken(syntax.Text, p.Text(p.pos))))
	p.pos++
	p.take(b, syntax.Whitespace)

	end := p.LineEnd(p.pos)
	contentEnd := p.trimTrailingSpace(p.pos, end)

	// A closing run of hashes must be separated from the text by whitespace.
	if last := contentEnd - 1; last >= p.pos && p.Is(last, syntax.Text) && isRun(p.Text(last), '#') {
		if last == p.pos || p.Is(last-1, syntax.Whitespace) {
			contentEnd = p.trimTrailingSpace(p.pos, last)
		}
	}

	b.Node(syntax.NewNode(syntax.HeadingContent, groupInline(p.tokenRange(p.pos, contentEnd))...))
	p.pos = contentEnd
	p.takeTo(b, end)
	p.take(b, syntax.Newline)

	return b.Finish()
}

// trimTrailingSpace returns the index after the last non-whitespace token in
// [from, to).
func (p *parser) trimTrailingSpace(from, to int) int {
	for to > from && p.Is(to-1, syntax.Whitespace) {
		to--
	}
	return to
}

func (p *parser) isSetextHeading(start, content int) bool {
	if p.Indent(start) > maxBlockIndent {
		return false
	}
	kind, _ := p.Kind(content)
	switch kind {
	case syntax.CodeFenceMarker, syntax.DivMarker, syntax.BlockMathMarker,
		syntax.BlockQuoteMarker, syntax.ListMarker, syntax.CommentStart,
		syntax.FrontmatterDelim, syntax.LatexEnvBegin:
		return false
	}

	under := p.NextLine(start)
	return under < p.Len() && p.isSetextUnderline(under)
}

func (p *parser) isSetextUnderline(line int) bool {
	if p.Indent(line) > maxBlockIndent {
		return false
	}
	j := p.SkipSpace(line)
	text := p.Text(j)

	switch {
	case p.Is(j, syntax.Text) && (isRun(text, '=') || isRun(text, '-')):
	case p.Is(j, syntax.FrontmatterDelim) && text == "---":
	default:
		return false
	}
	return p.RestIsSpace(j + 1)
}

func (p *parser) parseSetextHeading(content int) *syntax.Node {
	b := syntax.NewBuilder(syntax.Heading)
	p.takeTo(b, content)

	end := p.LineEnd(p.pos)
	contentEnd := p.trimTrailingSpace(p.pos, end)
	b.Node(syntax.NewNode(syntax.HeadingContent, groupInline(p.tokenRange(p.pos, contentEnd))...))
	p.pos = contentEnd
	p.takeTo(b, end)
	p.take(b, syntax.Newline)

	ub := syntax.NewBuilder(syntax.SetextHeadingUnderline)
	p.takeTo(ub, p.LineEnd(p.pos))
	b.Node(ub.Finish())
	p.take(b, syntax.Newline)

	return b.Finish()
}

func (p *parser) parseTable() *syntax.Node {
	b := syntax.NewBuilder(syntax.SimpleTable)
	for p.pos < p.Len() && !p.IsBlankLine(p.pos) {
		p.takeLine(b)
	}
	return b.Finish()
}

// parseFenceOpen builds the opening line of a fenced construct: prefix,
// marker, optional info, and newline.
func (p *parser) parseFenceOpen(content int, openKind, markerKind, infoKind syntax.Kind) *syntax.Node {
	ob := syntax.NewBuilder(openKind)
	p.takeTo(ob, content)
	p.take(ob, markerKind)
	p.take(ob, syntax.Whitespace)

	end := p.LineEnd(p.pos)
	infoEnd := p.trimTrailingSpace(p.pos, end)
	if infoEnd > p.pos {
		ob.Node(syntax.NewNode(infoKind, p.tokenRange(p.pos, infoEnd)...))
		p.pos = infoEnd
	}
	p.takeTo(ob, end)
	p.take(ob, syntax.Newline)

	return ob.Finish()
}

func (p *parser) parseCodeBlock(content int) *syntax.Node {
	return p.parseFencedCode(content, 0)
}

// parseFencedCode parses a fenced code block opened at content. depth is the
// block quote nesting of the fence; quoted lines keep their markers in the
// block's text and a line with fewer markers ends the block.
func (p *parser) parseFencedCode(content, depth int) *syntax.Node {
	marker := p.Text(content)
	b := syntax.NewBuilder(syntax.CodeBlock)
	b.Node(p.parseFenceOpen(content, syntax.CodeFenceOpen, syntax.CodeFenceMarker, syntax.CodeInfo))

	closeAt := -1
	line := p.pos
	for line < p.Len() {
		first := p.SkipSpace(line)
		if depth > 0 {
			var markers int
			markers, first = p.quotePrefix(line)
			if markers < depth {
				break
			}
		}
		if p.closesCodeFence(first, marker) {
			closeAt = line
			break
		}
		line = p.NextLine(line)
	}

	if closeAt < 0 {
		if line > p.pos {
			b.Node(syntax.NewNode(syntax.CodeContent, p.tokenRange(p.pos, line)...))
			p.pos = line
		}
		return b.Finish()
	}

	cb := syntax.NewBuilder(syntax.CodeFenceClose)
	if closeAt > p.pos {
		if closeAt-1 > p.pos {
			b.Node(syntax.NewNode(syntax.CodeContent, p.tokenRange(p.pos, closeAt-1)...))
			p.pos = closeAt - 1
		}
		p.take(cb, syntax.Newline)
	}
	p.takeTo(cb, p.NextLine(closeAt))
	b.Node(cb.Finish())

	return b.Finish()
}

// closesCodeFence reports whether the token at i is a fence of the same
// character as open, at least as long, followed only by whitespace.
func (p *parser) closesCodeFence(i int, open string) bool {
	if !p.Is(i, syntax.CodeFenceMarker) {
		return false
	}
	text := p.Text(i)
	return text[0] == open[0] && len(text) >= len(open) && p.RestIsSpace(i+1)
}

func (p *parser) parseFencedDiv(content int) (*syntax.Node, error) {
	n := len(p.Text(content))
	b := syntax.NewBuilder(syntax.FencedDiv)
	b.Node(p.parseFenceOpen(content, syntax.DivFenceOpen, syntax.DivMarker, syntax.DivInfo))

	blocks, err := p.parseBlocks(func() bool { return p.isDivClose(p.pos, n) })
	if err != nil {
		return nil, err
	}
	b.Node(syntax.NewNode(syntax.DivContent, blocks...))

	if p.pos < p.Len() && p.isDivClose(p.pos, n) {
		cb := syntax.NewBuilder(syntax.DivFenceClose)
		p.takeLine(cb)
		b.Node(cb.Finish())
	}

	return b.Finish(), nil
}

// isDivClose reports whether the line at i is a bare div fence of exactly n
// colons.
func (p *parser) isDivClose(i, n int) bool {
	j := p.SkipSpace(i)
	return p.Is(j, syntax.DivMarker) && len(p.Text(j)) == n && p.RestIsSpace(j+1)
}

func (p *parser) parseMathBlock(content int) *syntax.Node {
	b := syntax.NewBuilder(syntax.MathBlock)
	p.takeTo(b, content)
	p.take(b, syntax.BlockMathMarker)

	closeAt := p.Len()
	for j := p.pos; j < p.Len(); j++ {
		if p.Is(j, syntax.BlockMathMarker) {
			closeAt = j
			break
		}
	}

	if closeAt > p.pos {
		b.Node(syntax.NewNode(syntax.MathContent, p.tokenRange(p.pos, closeAt)...))
		p.pos = closeAt
	}
	if p.take(b, syntax.BlockMathMarker) {
		p.takeTo(b, p.NextLine(p.pos))
	}

	return b.Finish()
}

func (p *parser) parseComment() *syntax.Node {
	b := syntax.NewBuilder(syntax.Comment)

	end := p.Len()
	for j := p.SkipSpace(p.pos) + 1; j < p.Len(); j++ {
		if p.Is(j, syntax.CommentEnd) {
			end = j + 1
			break
		}
	}
	p.takeTo(b, end)

	if p.pos < p.Len() && p.RestIsSpace(p.pos) {
		p.takeTo(b, p.NextLine(p.pos))
	}

	return b.Finish()
}

func (p *parser) parseStandaloneLatex() *syntax.Node {
	b := syntax.NewBuilder(syntax.StandaloneLatexCommand)
	p.takeLine(b)
	return b.Finish()
}

func (p *parser) parseLatexEnvironment(content int) *syntax.Node {
	name := envName(p.Text(content))
	b := syntax.NewBuilder(syntax.LatexEnvironment)
	p.takeTo(b, content)
	p.take(b, syntax.LatexEnvBegin)

	closeAt := p.Len()
	depth := 1
	for j := p.pos; j < p.Len(); j++ {
		switch {
		case p.Is(j, syntax.LatexEnvBegin) && envName(p.Text(j)) == name:
			depth++
		case p.Is(j, syntax.LatexEnvEnd) && envName(p.Text(j)) == name:
			depth--
		}
		if depth == 0 {
			closeAt = j
			break
		}
	}

	if closeAt > p.pos {
		b.Node(syntax.NewNode(syntax.LatexEnvContent, p.tokenRange(p.pos, closeAt)...))
		p.pos = closeAt
	}
	if p.take(b, syntax.LatexEnvEnd) {
		p.takeTo(b, p.NextLine(p.pos))
	}

	return b.Finish()
}

// envName extracts the environment name from \begin{name} or \end{name}.
func envName(marker string) string {
	open := strings.IndexByte(marker, '{')
	if open < 0 || !strings.HasSuffix(marker, "}") {
		return ""
	}
	return marker[open+1 : len(marker)-1]
}

func (p *parser) parseParagraph() *syntax.Node {
	next := p.NextLine(p.pos)
	tokens := p.tokenRange(p.pos, next)
	p.pos = next

	for p.pos < p.Len() {
		if p.IsBlankLine(p.pos) || p.interruptsParagraph(p.SkipSpace(p.pos)) {
			break
		}
		next = p.NextLine(p.pos)
		tokens = append(tokens, p.tokenRange(p.pos, next)...)
		p.pos = next
	}

	return syntax.NewNode(syntax.Paragraph, groupInline(tokens)...)
}
