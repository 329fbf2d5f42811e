package mdast

// NodeKind is the Markdown construct a Node stands for.
type NodeKind uint16

const (
	NodeDocument NodeKind = iota

	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	NodeContainerDirective // :::name ... :::
	NodeLeafDirective      // ::name

	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// NodeRaw wraps parser nodes with no mdast counterpart, such as GFM
	// table parts.
	NodeRaw
)

type kindClass uint8

const (
	classOther kindClass = iota
	classBlock
	classInline
)

type kindInfo struct {
	name  string
	class kindClass
}

//nolint:gochecknoglobals // lookup table
var kinds = [...]kindInfo{
	NodeDocument:           {"Document", classBlock},
	NodeParagraph:          {"Paragraph", classBlock},
	NodeHeading:            {"Heading", classBlock},
	NodeList:               {"List", classBlock},
	NodeListItem:           {"ListItem", classBlock},
	NodeBlockquote:         {"Blockquote", classBlock},
	NodeCodeBlock:          {"CodeBlock", classBlock},
	NodeThematicBreak:      {"ThematicBreak", classBlock},
	NodeHTMLBlock:          {"HTMLBlock", classBlock},
	NodeContainerDirective: {"ContainerDirective", classBlock},
	NodeLeafDirective:      {"LeafDirective", classBlock},
	NodeText:               {"Text", classInline},
	NodeEmphasis:           {"Emphasis", classInline},
	NodeStrong:             {"Strong", classInline},
	NodeCodeSpan:           {"CodeSpan", classInline},
	NodeLink:               {"Link", classInline},
	NodeImage:              {"Image", classInline},
	NodeSoftBreak:          {"SoftBreak", classInline},
	NodeHardBreak:          {"HardBreak", classInline},
	NodeHTMLInline:         {"HTMLInline", classInline},
	NodeRaw:                {"Raw", classOther},
}

func (k NodeKind) info() kindInfo {
	if int(k) < len(kinds) {
		return kinds[k]
	}
	return kindInfo{name: "Unknown"}
}

func (k NodeKind) String() string { return k.info().name }

// Node is one element of an mdast tree. Children form a doubly linked
// list under their parent; use the builder functions to change it so the
// links stay consistent.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Offset is where the node starts in File.Content, or -1 when the node
	// was built rather than parsed.
	Offset int
	File   *FileSnapshot

	// At most one of Block, Inline and Directive is set, matching Kind.
	Block     *BlockAttrs
	Inline    *InlineAttrs
	Directive *DirectiveAttrs

	// Hint overrides the element a serializer emits. Nil keeps the default
	// for Kind.
	Hint *RenderHint

	// Ext holds flags from parser extensions, keyed by feature.
	Ext map[string]any
}

func (n *Node) IsBlock() bool  { return n.Kind.info().class == classBlock }
func (n *Node) IsInline() bool { return n.Kind.info().class == classInline }

func (n *Node) HasChildren() bool { return n.FirstChild != nil }

func (n *Node) ChildCount() int {
	return len(n.Children())
}

// Children returns a snapshot of the direct children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// ChildAt returns the direct child at index i, or nil when out of range.
func (n *Node) ChildAt(i int) *Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.Next
	}
	if i != 0 {
		return nil
	}
	return c
}

// TextValue is the literal content of a text, code span or inline HTML
// node, and "" for anything else.
func (n *Node) TextValue() string {
	if n == nil || n.Inline == nil {
		return ""
	}
	return string(n.Inline.Text)
}

// Position locates the node in its file. The zero Position means unknown.
func (n *Node) Position() Position {
	if n == nil || n.File == nil || n.Offset < 0 {
		return Position{}
	}
	line, col := n.File.LineAt(n.Offset)
	return Position{Line: line, Column: col}
}
