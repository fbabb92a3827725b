package parser

import "github.com/yaklabco/qmdfmt/pkg/syntax"

// parseList collects consecutive items whose markers sit at exactly indent
// columns.
func (p *parser) parseList(indent int) *syntax.Node {
	b := syntax.NewBuilder(syntax.List)

	for p.pos < p.Len() {
		marker := p.SkipSpace(p.pos)
		if !p.Is(marker, syntax.ListMarker) || p.Indent(p.pos) != indent {
			break
		}
		b.Node(p.parseListItem(indent, marker))
	}

	return b.Finish()
}

// parseListItem consumes an item's marker line and its continuation lines. A
// marker indented deeper than the item opens a nested list owned by the item.
// The item ends at a blank line, at a marker at the same or shallower indent,
// or at a line opening a fenced construct.
func (p *parser) parseListItem(indent, marker int) *syntax.Node {
	b := syntax.NewBuilder(syntax.ListItem)
	p.takeTo(b, marker+1)

	next := p.NextLine(p.pos)
	tokens := p.tokenRange(p.pos, next)
	p.pos = next

	for p.pos < p.Len() && !p.IsBlankLine(p.pos) {
		first := p.SkipSpace(p.pos)

		if p.Is(first, syntax.ListMarker) {
			nested := p.Indent(p.pos)
			if nested <= indent {
				break
			}
			b.Nodes(groupInline(tokens))
			tokens = nil
			b.Node(p.parseList(nested))
			continue
		}

		if p.interruptsParagraph(first) {
			break
		}

		next = p.NextLine(p.pos)
		tokens = append(tokens, p.tokenRange(p.pos, next)...)
		p.pos = next
	}

	b.Nodes(groupInline(tokens))
	return b.Finish()
}
