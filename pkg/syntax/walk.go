package syntax

import "errors"

// ErrSkipChildren may be returned from a WalkFunc to skip the current node's
// descendants without stopping the walk.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root, visiting
// interior nodes and tokens alike.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for _, child := range root.children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// Tokens returns every leaf under root in source order.
func Tokens(root *Node) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if n.IsToken() {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// FindAll returns every node of the given kind under root, including root.
func FindAll(root *Node, kind Kind) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if n.kind == kind {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// Count returns the number of nodes of the given kind under root.
func Count(root *Node, kind Kind) int {
	return len(FindAll(root, kind))
}
