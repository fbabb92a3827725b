package syntax

import "strings"

// Node is an element of the concrete syntax tree. Leaves are tokens and carry
// their source text; interior nodes own an ordered list of children.
//
// Nodes are immutable once constructed. The parent link is assigned when a
// node is attached to its parent and never changes afterwards.
type Node struct {
	kind     Kind
	text     string
	children []*Node
	parent   *Node
}

// NewToken creates a leaf holding text.
func NewToken(kind Kind, text string) *Node {
	return &Node{kind: kind, text: text}
}

// NewNode creates an interior node owning children. Each child must be
// detached; attaching a node twice panics since it would break single
// ownership.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{kind: kind}
	if len(children) > 0 {
		n.children = make([]*Node, 0, len(children))
	}
	for _, child := range children {
		n.attach(child)
	}
	return n
}

func (n *Node) attach(child *Node) {
	if child == nil {
		return
	}
	if child.parent != nil {
		panic("syntax: node " + child.kind.String() + " already has a parent")
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// IsToken reports whether n is a leaf.
func (n *Node) IsToken() bool { return n.kind.IsToken() }

// Parent returns the containing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.Child(len(n.children) - 1) }

// Index returns the position of n within its parent, or -1 for the root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, sib := range n.parent.children {
		if sib == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	idx := n.Index()
	if idx < 0 {
		return nil
	}
	return n.parent.Child(idx + 1)
}

// PrevSibling returns the preceding sibling or nil.
func (n *Node) PrevSibling() *Node {
	idx := n.Index()
	if idx <= 0 {
		return nil
	}
	return n.parent.Child(idx - 1)
}

// Text returns the exact source text covered by n.
func (n *Node) Text() string {
	if n.IsToken() {
		return n.text
	}
	var sb strings.Builder
	sb.Grow(n.Len())
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsToken() {
		sb.WriteString(n.text)
		return
	}
	for _, child := range n.children {
		child.writeText(sb)
	}
}

// Len returns the byte length of the text covered by n.
func (n *Node) Len() int {
	if n.IsToken() {
		return len(n.text)
	}
	total := 0
	for _, child := range n.children {
		total += child.Len()
	}
	return total
}

// FindChild returns the first direct child of the given kind.
func (n *Node) FindChild(kind Kind) *Node {
	for _, child := range n.children {
		if child.kind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns the direct children of the given kind.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var out []*Node
	for _, child := range n.children {
		if child.kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// Ancestors returns the chain of parents from the nearest outwards.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Depth counts n and its ancestors whose kind is kind.
func (n *Node) Depth(kind Kind) int {
	depth := 0
	for p := n; p != nil; p = p.parent {
		if p.kind == kind {
			depth++
		}
	}
	return depth
}
