package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump renders the tree one element per line in the form
// KIND@start..end, with token text quoted. Children are indented two spaces
// per level.
func Dump(root *Node) string {
	var sb strings.Builder
	_ = WriteDump(&sb, root)
	return sb.String()
}

// WriteDump writes the Dump rendering of root to w.
func WriteDump(w io.Writer, root *Node) error {
	if root == nil {
		return nil
	}
	_, err := dumpNode(w, root, 0, 0)
	return err
}

func dumpNode(w io.Writer, n *Node, depth, offset int) (int, error) {
	end := offset + n.Len()
	indent := strings.Repeat("  ", depth)

	if n.IsToken() {
		_, err := fmt.Fprintf(w, "%s%s@%d..%d %s\n", indent, n.kind, offset, end, strconv.Quote(n.text))
		return end, err
	}

	if _, err := fmt.Fprintf(w, "%s%s@%d..%d\n", indent, n.kind, offset, end); err != nil {
		return end, err
	}

	pos := offset
	for _, child := range n.children {
		var err error
		pos, err = dumpNode(w, child, depth+1, pos)
		if err != nil {
			return end, err
		}
	}

	return end, nil
}

// Outline is a serializable view of a tree used by structured dumps.
type Outline struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Start    int        `json:"start" yaml:"start"`
	End      int        `json:"end" yaml:"end"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Language string     `json:"language,omitempty" yaml:"language,omitempty"`
	Children []*Outline `json:"children,omitempty" yaml:"children,omitempty"`
}

// OutlineOf converts a tree into its Outline form. annotate, when non-nil, is
// called for every interior node and may fill extra fields.
func OutlineOf(root *Node, annotate func(*Node, *Outline)) *Outline {
	if root == nil {
		return nil
	}
	out, _ := outline(root, 0, annotate)
	return out
}

func outline(n *Node, offset int, annotate func(*Node, *Outline)) (*Outline, int) {
	end := offset + n.Len()
	o := &Outline{Kind: n.kind.String(), Start: offset, End: end}

	if n.IsToken() {
		o.Text = n.text
		return o, end
	}

	pos := offset
	for _, child := range n.children {
		var co *Outline
		co, pos = outline(child, pos, annotate)
		o.Children = append(o.Children, co)
	}

	if annotate != nil {
		annotate(n, o)
	}

	return o, end
}
