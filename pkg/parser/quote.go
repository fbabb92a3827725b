package parser

import "github.com/yaklabco/qmdfmt/pkg/syntax"

// quotePrefix counts the block quote markers at the start of the line at i
// and returns the index of the first token after them and any whitespace.
func (p *parser) quotePrefix(i int) (int, int) {
	markers := 0
	for {
		switch {
		case p.Is(i, syntax.Whitespace):
			i++
		case p.Is(i, syntax.BlockQuoteMarker):
			markers++
			i++
		default:
			return markers, i
		}
	}
}

// parseBlockQuote parses a block quote nested depth levels deep. A line with
// more markers than depth opens a nested quote only at the start of the quote
// or after a quoted blank line; otherwise the extra markers continue the
// current paragraph.
func (p *parser) parseBlockQuote(depth int) *syntax.Node {
	b := syntax.NewBuilder(syntax.BlockQuote)
	allowNest := true

	for p.pos < p.Len() {
		markers, content := p.quotePrefix(p.pos)
		if markers < depth {
			break
		}

		if markers > depth && allowNest {
			b.Node(p.parseBlockQuote(depth + 1))
			allowNest = false
			continue
		}

		if content >= p.Len() || p.Is(content, syntax.Newline) {
			blank := syntax.NewBuilder(syntax.BlankLine)
			p.takeLine(blank)
			b.Node(blank.Finish())
			allowNest = true
			continue
		}

		switch {
		case p.isAtxHeading(p.pos, content):
			b.Node(p.parseAtxHeading(p.pos, content))
		case p.Is(content, syntax.CodeFenceMarker):
			b.Node(p.parseFencedCode(content, depth))
		default:
			p.takeTo(b, content)
			b.Node(p.parseQuotedParagraph(depth))
		}
		allowNest = false
	}

	return b.Finish()
}

// parseQuotedParagraph collects a paragraph inside a quote. Continuation lines
// keep their markers as tokens. Lines without any marker continue the
// paragraph lazily unless they are blank or start a fenced construct.
func (p *parser) parseQuotedParagraph(depth int) *syntax.Node {
	next := p.NextLine(p.pos)
	tokens := p.tokenRange(p.pos, next)
	p.pos = next

	for p.pos < p.Len() {
		markers, content := p.quotePrefix(p.pos)

		if markers == 0 {
			if p.IsBlankLine(p.pos) || p.interruptsParagraph(content) {
				break
			}
		} else {
			if markers < depth || content >= p.Len() || p.Is(content, syntax.Newline) {
				break
			}
			if p.interruptsParagraph(content) || p.isAtxHeading(p.pos, content) {
				break
			}
		}

		next = p.NextLine(p.pos)
		tokens = append(tokens, p.tokenRange(p.pos, next)...)
		p.pos = next
	}

	return syntax.NewNode(syntax.Paragraph, groupInline(tokens)...)
}
