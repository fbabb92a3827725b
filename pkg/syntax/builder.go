package syntax

// Builder accumulates the children of a single node. Parse functions use one
// builder per node and hand the finished subtree back to their caller.
type Builder struct {
	kind     Kind
	children []*Node
}

// NewBuilder starts a node of the given kind.
func NewBuilder(kind Kind) *Builder {
	return &Builder{kind: kind}
}

// Token appends a leaf. Empty text is ignored.
func (b *Builder) Token(kind Kind, text string) *Builder {
	if text == "" {
		return b
	}
	b.children = append(b.children, NewToken(kind, text))
	return b
}

// Node appends a finished child subtree. Nil is ignored.
func (b *Builder) Node(child *Node) *Builder {
	if child != nil {
		b.children = append(b.children, child)
	}
	return b
}

// Nodes appends several finished subtrees.
func (b *Builder) Nodes(children []*Node) *Builder {
	for _, child := range children {
		b.Node(child)
	}
	return b
}

// Len returns the number of children accumulated so far.
func (b *Builder) Len() int { return len(b.children) }

// Finish constructs the node. The builder must not be reused.
func (b *Builder) Finish() *Node {
	n := NewNode(b.kind, b.children...)
	b.children = nil
	return n
}
