// Package parser builds a lossless concrete syntax tree from a token stream.
//
// Every parse function returns a finished subtree and advances the cursor past
// the tokens it owns. Blocks own their leading indentation and the newline
// that terminates their last line, so the concatenated text of the tree equals
// the input.
package parser

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes debug tracing to logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type parser struct {
	*Stream
	pos    int
	logger *log.Logger
}

// Parse builds the tree for input from its tokens. It fails only on fatal
// structural conditions; malformed constructs degrade to well-defined
// fallbacks.
func Parse(input string, tokens []syntax.Token, opts ...Option) (*syntax.Node, error) {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	if total := syntax.TotalLen(tokens); total != len(input) {
		return nil, &ParseError{Kind: TokenMismatch, Offset: min(total, len(input))}
	}

	p := &parser{Stream: NewStream(input, tokens), logger: o.logger}

	var blocks []*syntax.Node
	if p.Is(0, syntax.FrontmatterDelim) && p.RestIsSpace(1) {
		fm, err := p.parseFrontmatter()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, fm)
	}

	rest, err := p.parseBlocks(nil)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, rest...)

	doc := syntax.NewNode(syntax.Document, blocks...)
	return syntax.NewNode(syntax.Root, doc), nil
}

// parseBlocks parses blocks until end of input or until stop reports true at
// the start of a block.
func (p *parser) parseBlocks(stop func() bool) ([]*syntax.Node, error) {
	var blocks []*syntax.Node

	for p.pos < p.Len() {
		if stop != nil && stop() {
			break
		}

		start := p.pos
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if p.pos <= start {
			return nil, &ParseError{Kind: NoProgress, Offset: p.Offset(start)}
		}

		p.logger.Debug("block", "kind", block.Kind(), "offset", p.Offset(start), "len", block.Len())
		blocks = append(blocks, block)
	}

	return blocks, nil
}

func (p *parser) parseBlock() (*syntax.Node, error) {
	if p.IsBlankLine(p.pos) {
		return p.parseBlankLine(), nil
	}

	content := p.SkipSpace(p.pos)

	if p.isAtxHeading(p.pos, content) {
		return p.parseAtxHeading(p.pos, content), nil
	}
	if p.isSetextHeading(p.pos, content) {
		return p.parseSetextHeading(content), nil
	}
	if IsHeaderedTable(p.Stream, p.pos) || IsHeaderlessTable(p.Stream, p.pos) {
		return p.parseTable(), nil
	}

	kind, _ := p.Kind(content)
	switch kind {
	case syntax.CodeFenceMarker:
		return p.parseCodeBlock(content), nil
	case syntax.DivMarker:
		if !p.RestIsSpace(content + 1) {
			return p.parseFencedDiv(content)
		}
	case syntax.BlockMathMarker:
		return p.parseMathBlock(content), nil
	case syntax.CommentStart:
		return p.parseComment(), nil
	case syntax.LatexCommand:
		if p.RestIsSpace(content + 1) {
			return p.parseStandaloneLatex(), nil
		}
	case syntax.LatexEnvBegin:
		return p.parseLatexEnvironment(content), nil
	case syntax.BlockQuoteMarker:
		return p.parseBlockQuote(1), nil
	case syntax.ListMarker:
		return p.parseList(p.Indent(p.pos)), nil
	}

	return p.parseParagraph(), nil
}

// takeLine appends the tokens from the cursor through the end of the line,
// including its newline, and advances the cursor.
func (p *parser) takeLine(b *syntax.Builder) {
	next := p.NextLine(p.pos)
	b.Nodes(p.tokenRange(p.pos, next))
	p.pos = next
}

// takeTo appends tokens up to, but excluding, index end.
func (p *parser) takeTo(b *syntax.Builder, end int) {
	b.Nodes(p.tokenRange(p.pos, end))
	p.pos = max(p.pos, end)
}

// take appends the single token at the cursor when it has the given kind.
func (p *parser) take(b *syntax.Builder, kind syntax.Kind) bool {
	if !p.Is(p.pos, kind) {
		return false
	}
	b.Token(kind, p.Text(p.pos))
	p.pos++
	return true
}

// interruptsParagraph reports whether a line whose first content token is at
// i begins a construct that ends running text.
func (p *parser) interruptsParagraph(i int) bool {
	kind, ok := p.Kind(i)
	if !ok {
		return true
	}
	switch kind {
	case syntax.CodeFenceMarker, syntax.DivMarker, syntax.BlockMathMarker,
		syntax.CommentStart, syntax.LatexEnvBegin, syntax.BlockQuoteMarker:
		return true
	default:
		return false
	}
}
