package mdast

// The predicates below classify nodes by kind. Each accepts a nil node
// and reports false for it.

// IsImage reports whether n is an image.
func IsImage(n *Node) bool {
	return n != nil && n.Kind == NodeImage
}

// IsLink reports whether n is a link.
func IsLink(n *Node) bool {
	return n != nil && n.Kind == NodeLink
}

// IsParagraph reports whether n is a paragraph.
func IsParagraph(n *Node) bool {
	return n != nil && n.Kind == NodeParagraph
}

// IsText reports whether n is a plain text node.
func IsText(n *Node) bool {
	return n != nil && n.Kind == NodeText
}

// IsDirectiveLabel reports whether n is the paragraph carrying a directive label.
func IsDirectiveLabel(n *Node) bool {
	return IsParagraph(n) && n.Block != nil && n.Block.DirectiveLabel
}

// IsContainerDirective reports whether n is a container directive named name.
// An empty name matches any container directive.
func IsContainerDirective(n *Node, name string) bool {
	if n == nil || n.Kind != NodeContainerDirective || n.Directive == nil {
		return false
	}
	return name == "" || n.Directive.Name == name
}

// IsLinkedImage reports whether n is a link whose only child is an image.
func IsLinkedImage(n *Node) bool {
	return IsLink(n) && n.FirstChild != nil && n.FirstChild == n.LastChild && IsImage(n.FirstChild)
}
