package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or source position.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:   kind,
		Offset: -1,
	}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node holding value.
func NewText(value string) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText([]byte(value))
	return node
}

// NewImage creates an image node with the given source and alt text.
func NewImage(src, alt string) *Node {
	node := NewNode(NodeImage)
	node.Inline = NewInlineAttrs().WithLink(&LinkAttrs{Destination: src, Alt: alt})
	return node
}

// NewLink creates a link node pointing at href with the given children.
func NewLink(href string, children ...*Node) *Node {
	node := NewNode(NodeLink)
	node.Inline = NewInlineAttrs().WithLink(&LinkAttrs{Destination: href})
	for _, child := range children {
		AppendChild(node, child)
	}
	return node
}

// NewParagraph creates a paragraph with the given inline children.
func NewParagraph(children ...*Node) *Node {
	node := NewNode(NodeParagraph)
	for _, child := range children {
		AppendChild(node, child)
	}
	return node
}

// NewContainerDirective creates a container directive with the given
// name, attributes and children. attrs may be nil.
func NewContainerDirective(name string, attrs map[string]string, children ...*Node) *Node {
	node := NewNode(NodeContainerDirective)
	node.Directive = &DirectiveAttrs{Name: name, Attributes: attrs}
	for _, child := range children {
		AppendChild(node, child)
	}
	return node
}

// NewLeafDirective creates a synthetic directive used purely to group
// content for rendering.
func NewLeafDirective(name string, hint *RenderHint, children ...*Node) *Node {
	node := NewNode(NodeLeafDirective)
	node.Directive = &DirectiveAttrs{Name: name}
	node.Hint = hint
	for _, child := range children {
		AppendChild(node, child)
	}
	return node
}

// AppendChild makes child the last child of parent, detaching it from
// any previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)

	child.Parent = parent
	child.Prev = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. It does nothing when child
// belongs to another parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	detach(child)
}

func detach(n *Node) {
	parent := n.Parent
	if parent == nil {
		return
	}

	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		parent.LastChild = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// ReplaceChildren detaches every child of parent and installs children
// in their place, in order, as one operation.
func ReplaceChildren(parent *Node, children ...*Node) {
	if parent == nil {
		return
	}

	for parent.FirstChild != nil {
		detach(parent.FirstChild)
	}

	for _, child := range children {
		AppendChild(parent, child)
	}
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}
