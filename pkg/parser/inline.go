package parser

import "github.com/yaklabco/qmdfmt/pkg/syntax"

// groupInline wraps paired inline math markers and inline footnotes into
// nodes so they are treated as single units. Unpaired markers are left as
// tokens.
func groupInline(nodes []*syntax.Node) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		switch nodes[i].Kind() {
		case syntax.InlineMathMarker:
			if j := indexOfKind(nodes, i+1, syntax.InlineMathMarker); j > 0 {
				out = append(out, syntax.NewNode(syntax.InlineMath, nodes[i:j+1]...))
				i = j
				continue
			}
		case syntax.InlineFootnoteStart:
			if j := matchingFootnoteEnd(nodes, i); j > 0 {
				children := make([]*syntax.Node, 0, j-i+1)
				children = append(children, nodes[i])
				children = append(children, groupInline(nodes[i+1:j])...)
				children = append(children, nodes[j])
				out = append(out, syntax.NewNode(syntax.InlineFootnote, children...))
				i = j
				continue
			}
		}
		out = append(out, nodes[i])
	}

	return out
}

func indexOfKind(nodes []*syntax.Node, from int, kind syntax.Kind) int {
	for j := from; j < len(nodes); j++ {
		if nodes[j].Kind() == kind {
			return j
		}
	}
	return -1
}

func matchingFootnoteEnd(nodes []*syntax.Node, open int) int {
	depth := 0
	for j := open; j < len(nodes); j++ {
		switch nodes[j].Kind() {
		case syntax.InlineFootnoteStart:
			depth++
		case syntax.InlineFootnoteEnd:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
