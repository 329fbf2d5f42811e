package mdast

import "errors"

// WalkFunc is called for each node visited by Walk.
// A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// errStop ends a walk early without reporting a failure.
var errStop = errors.New("stop walk")

// Walk visits root and its descendants in document order (pre-order).
// The callback may detach the node it is given; its siblings are still
// visited.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}

	for child := root.FirstChild; child != nil; {
		next := child.Next
		if err := Walk(child, fn); err != nil {
			return err
		}
		child = next
	}
	return nil
}

// FindAll returns every node under root, root included, for which match
// reports true, in document order.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var found []*Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = append(found, n)
		}
		return nil
	})
	return found
}

// FindFirst returns the first node in document order for which match
// reports true, or nil.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = n
			return errStop
		}
		return nil
	})
	return found
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// FindContainerDirectives returns every container directive named name,
// in document order. An empty name matches all container directives.
func FindContainerDirectives(root *Node, name string) []*Node {
	return FindAll(root, func(n *Node) bool { return IsContainerDirective(n, name) })
}

// IsAttached reports whether n is root or lies under it.
func IsAttached(root, n *Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
