package goldmark

import (
	"slices"

	"github.com/yaklabco/mdcard/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mapper converts a goldmark AST into an mdast tree. Source offsets are
// carried over so positions can be reported against the original file.
type mapper struct {
	src []byte
}

func newMapper(src []byte) *mapper {
	return &mapper{src: src}
}

// mapDocument converts a goldmark document into an mdast document.
func (m *mapper) mapDocument(doc ast.Node) *mdast.Node {
	root := mdast.NewDocument()
	root.Offset = 0
	m.appendChildren(root, doc)
	return root
}

// appendChildren maps every child of from and appends it to to. Adjacent
// text runs are joined into one text node. A text node that ends a line
// is followed by a soft or hard break node.
func (m *mapper) appendChildren(to *mdast.Node, from ast.Node) {
	for child := from.FirstChild(); child != nil; child = child.NextSibling() {
		if node := m.convert(child); node != nil && !joinText(to.LastChild, node) {
			node.Offset = m.offsetOf(child)
			mdast.AppendChild(to, node)
		}
		if t, ok := child.(*ast.Text); ok {
			if br := breakAfter(t); br != nil {
				mdast.AppendChild(to, br)
			}
		}
	}
}

// branch creates a node of kind whose children are mapped from n.
func (m *mapper) branch(kind mdast.NodeKind, n ast.Node) *mdast.Node {
	node := mdast.NewNode(kind)
	m.appendChildren(node, n)
	return node
}

// convert maps one goldmark node. It returns nil for nodes that carry no
// content of their own, such as the empty text ending a line.
func (m *mapper) convert(n ast.Node) *mdast.Node {
	switch n := n.(type) {
	case *ast.Document:
		return m.branch(mdast.NodeDocument, n)

	case *ContainerDirective:
		node := mdast.NewContainerDirective(n.Name, n.Attrs)
		m.appendChildren(node, n)
		return node

	case *ast.Heading:
		node := m.branch(mdast.NodeHeading, n)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(n.Level)
		return node

	case *ast.Paragraph:
		node := m.branch(mdast.NodeParagraph, n)
		if IsLabel(n) {
			node.Block = mdast.NewBlockAttrs().WithDirectiveLabel(true)
		}
		return node

	case *ast.TextBlock:
		// Tight list items hold a text block where loose ones hold a paragraph.
		return m.branch(mdast.NodeParagraph, n)

	case *ast.List:
		node := m.branch(mdast.NodeList, n)
		attrs := &mdast.ListAttrs{Ordered: n.IsOrdered(), StartNumber: n.Start, Tight: n.IsTight}
		if !n.IsOrdered() {
			attrs.BulletMarker = string(n.Marker)
		}
		node.Block = mdast.NewBlockAttrs().WithList(attrs)
		return node

	case *ast.ListItem:
		return m.branch(mdast.NodeListItem, n)

	case *ast.Blockquote:
		return m.branch(mdast.NodeBlockquote, n)

	case *ast.FencedCodeBlock:
		attrs := &mdast.CodeBlockAttrs{FenceChar: m.fenceChar(n)}
		if n.Info != nil {
			attrs.Info = string(n.Info.Segment.Value(m.src))
		}
		return m.literalBlock(mdast.NodeCodeBlock, n.Lines(), attrs)

	case *ast.CodeBlock:
		return m.literalBlock(mdast.NodeCodeBlock, n.Lines(), &mdast.CodeBlockAttrs{Indented: true})

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node := m.literalBlock(mdast.NodeHTMLBlock, n.Lines(), nil)
		if n.HasClosure() {
			node.Block.Literal = append(node.Block.Literal, n.ClosureLine.Value(m.src)...)
		}
		return node

	case *ast.Text:
		value := n.Segment.Value(m.src)
		if len(value) == 0 && (n.SoftLineBreak() || n.HardLineBreak()) {
			return nil
		}
		if !n.IsRaw() {
			value = unescape(value)
		}
		return m.inlineText(mdast.NodeText, value)

	case *ast.String:
		return m.inlineText(mdast.NodeText, n.Value)

	case *ast.CodeSpan:
		return m.inlineText(mdast.NodeCodeSpan, m.rawText(n))

	case *ast.RawHTML:
		var buf []byte
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			buf = append(buf, seg.Value(m.src)...)
		}
		return m.inlineText(mdast.NodeHTMLInline, buf)

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if n.Level == 2 {
			kind = mdast.NodeStrong
		}
		node := m.branch(kind, n)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(n.Level)
		return node

	case *ast.Link:
		// goldmark resolves reference links while parsing, so every link
		// arrives with its final destination.
		node := m.branch(mdast.NodeLink, n)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(n.Destination),
			Title:       string(n.Title),
		})
		return node

	case *ast.Image:
		// The description becomes the alt text; the image keeps no children.
		node := mdast.NewImage(string(n.Destination), string(m.plainText(n)))
		node.Inline.Link.Title = string(n.Title)
		return node

	case *ast.AutoLink:
		node := mdast.NewLink(string(n.URL(m.src)), mdast.NewText(string(n.Label(m.src))))
		node.Inline.Link.Autolink = true
		return node

	case *east.Strikethrough:
		node := m.branch(mdast.NodeEmphasis, n)
		node.Ext = map[string]any{"strikethrough": true}
		return node

	case *east.TaskCheckBox:
		node := mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": n.IsChecked}
		return node

	case *east.Table:
		return m.tablePart(n, map[string]any{"table": true})

	case *east.TableHeader:
		return m.tablePart(n, map[string]any{"tableHeader": true})

	case *east.TableRow:
		return m.tablePart(n, map[string]any{"tableRow": true})

	case *east.TableCell:
		return m.tablePart(n, map[string]any{"tableCell": true, "alignment": n.Alignment.String()})

	default:
		return m.branch(mdast.NodeRaw, n)
	}
}

// tablePart maps a GFM table element to a raw node tagged with ext.
func (m *mapper) tablePart(n ast.Node, ext map[string]any) *mdast.Node {
	node := m.branch(mdast.NodeRaw, n)
	node.Ext = ext
	return node
}

func (m *mapper) literalBlock(kind mdast.NodeKind, lines *text.Segments, code *mdast.CodeBlockAttrs) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Block = mdast.NewBlockAttrs().WithLiteral(m.segments(lines))
	if code != nil {
		node.Block.WithCodeBlock(code)
	}
	return node
}

func (m *mapper) inlineText(kind mdast.NodeKind, value []byte) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Inline = mdast.NewInlineAttrs().WithText(value)
	return node
}

// fenceChar reports '~' when the opening fence of block uses tildes and
// '`' otherwise. The opening fence is the line before the first content
// line, after any indentation or blockquote markers.
func (m *mapper) fenceChar(block *ast.FencedCodeBlock) byte {
	if block.Lines().Len() == 0 {
		return '`'
	}

	start := block.Lines().At(0).Start
	for start > 0 && m.src[start-1] != '\n' {
		start--
	}
	if start == 0 {
		return '`'
	}

	end := start - 1
	pos := end
	for pos > 0 && m.src[pos-1] != '\n' {
		pos--
	}
	for pos < end && (m.src[pos] == ' ' || m.src[pos] == '\t' || m.src[pos] == '>') {
		pos++
	}
	if pos < end && m.src[pos] == '~' {
		return '~'
	}
	return '`'
}

// rawText joins the literal text children of a code span.
func (m *mapper) rawText(n ast.Node) []byte {
	var buf []byte
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf = append(buf, c.Segment.Value(m.src)...)
		case *ast.String:
			buf = append(buf, c.Value...)
		}
	}
	return buf
}

// plainText flattens the text of every descendant of n.
func (m *mapper) plainText(n ast.Node) []byte {
	var out []byte
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Segment.Value(m.src)
			if !c.IsRaw() {
				value = unescape(value)
			}
			out = append(out, value...)
			if c.SoftLineBreak() {
				out = append(out, '\n')
			}
		case *ast.String:
			out = append(out, c.Value...)
		default:
			out = append(out, m.plainText(child)...)
		}
	}
	return out
}

func (m *mapper) segments(lines *text.Segments) []byte {
	var out []byte
	for i := range lines.Len() {
		seg := lines.At(i)
		out = append(out, seg.Value(m.src)...)
	}
	return out
}

// offsetOf returns the byte offset where n starts, or -1 when it has no
// source position of its own or through its descendants.
func (m *mapper) offsetOf(n ast.Node) int {
	switch n := n.(type) {
	case *ContainerDirective:
		return n.Offset
	case *ast.Text:
		return n.Segment.Start
	case *ast.RawHTML:
		if n.Segments.Len() > 0 {
			return n.Segments.At(0).Start
		}
	}

	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset := m.offsetOf(child); offset >= 0 {
			return offset
		}
	}
	return -1
}

// joinText appends the text of node to last when both are plain text
// nodes and reports whether it did.
func joinText(last, node *mdast.Node) bool {
	if !isPlainText(last) || !isPlainText(node) {
		return false
	}
	last.Inline.Text = slices.Concat(last.Inline.Text, node.Inline.Text)
	return true
}

func isPlainText(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeText && n.Ext == nil && n.Inline != nil
}

// breakAfter returns the break node that follows a line-ending text, or nil.
func breakAfter(t *ast.Text) *mdast.Node {
	switch {
	case t.HardLineBreak():
		return mdast.NewNode(mdast.NodeHardBreak)
	case t.SoftLineBreak():
		return mdast.NewNode(mdast.NodeSoftBreak)
	default:
		return nil
	}
}

// unescape resolves backslash escapes and character references.
func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
