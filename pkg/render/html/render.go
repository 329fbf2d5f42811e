// Package html serializes mdast trees to HTML.
//
// The tree is lowered to golang.org/x/net/html nodes and written with
// html.Render, so escaping and void elements follow the HTML5 rules of
// that package. Nodes carrying a RenderHint are emitted with the hinted
// element name and attributes.
package html

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdcard/pkg/mdast"
)

// defaultDirectiveTag is emitted for directives without a render hint.
const defaultDirectiveTag = "div"

// Render writes the HTML for root to w.
func Render(w io.Writer, root *mdast.Node) error {
	if err := xhtml.Render(w, Lower(root)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderBytes returns the HTML for root.
func RenderBytes(root *mdast.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Lower converts an mdast tree into an x/net/html document node.
func Lower(root *mdast.Node) *xhtml.Node {
	doc := &xhtml.Node{Type: xhtml.DocumentNode}
	if root == nil {
		return doc
	}

	if root.Kind == mdast.NodeDocument {
		appendChildren(doc, root, false)
		return doc
	}

	for _, n := range lower(root) {
		doc.AppendChild(n)
	}
	return doc
}

// appendChildren lowers the children of src into dst. Block children are
// separated by newlines; wrap also surrounds them with newlines.
func appendChildren(dst *xhtml.Node, src *mdast.Node, wrap bool) {
	sawBlock := false
	for child := src.FirstChild; child != nil; child = child.Next {
		block := isBlockLike(child)
		if block && (sawBlock || wrap) {
			dst.AppendChild(textNode("\n"))
		}
		sawBlock = sawBlock || block

		for _, n := range lower(child) {
			dst.AppendChild(n)
		}
	}
	if sawBlock {
		dst.AppendChild(textNode("\n"))
	}
}

// lower converts one mdast node. Most nodes produce a single html node;
// tight list paragraphs and unknown wrappers produce their children.
func lower(n *mdast.Node) []*xhtml.Node {
	switch n.Kind {
	case mdast.NodeDocument:
		frag := element("div")
		appendChildren(frag, n, false)
		return detach(frag)

	case mdast.NodeParagraph:
		if inTightList(n) {
			return lowerInline(n)
		}
		return one(withInline(element("p"), n))

	case mdast.NodeHeading:
		level := 1
		if n.Block != nil && n.Block.HeadingLevel >= 1 && n.Block.HeadingLevel <= 6 {
			level = n.Block.HeadingLevel
		}
		return one(withInline(element("h"+strconv.Itoa(level)), n))

	case mdast.NodeList:
		return one(lowerList(n))

	case mdast.NodeListItem:
		li := element("li")
		appendChildren(li, n, !tightItem(n))
		return one(li)

	case mdast.NodeBlockquote:
		quote := element("blockquote")
		appendChildren(quote, n, true)
		return one(quote)

	case mdast.NodeCodeBlock:
		return one(lowerCodeBlock(n))

	case mdast.NodeThematicBreak:
		return one(element("hr"))

	case mdast.NodeHTMLBlock:
		return one(rawNode(blockLiteral(n)))

	case mdast.NodeContainerDirective, mdast.NodeLeafDirective:
		return one(lowerDirective(n))

	case mdast.NodeText:
		if n.Ext["taskCheckbox"] == true {
			return one(lowerCheckbox(n))
		}
		return one(textNode(n.TextValue()))

	case mdast.NodeEmphasis:
		tag := "em"
		if n.Ext["strikethrough"] == true {
			tag = "del"
		}
		return one(withInline(element(tag), n))

	case mdast.NodeStrong:
		return one(withInline(element("strong"), n))

	case mdast.NodeCodeSpan:
		code := element("code")
		code.AppendChild(textNode(n.TextValue()))
		return one(code)

	case mdast.NodeLink:
		return one(lowerLink(n))

	case mdast.NodeImage:
		return one(lowerImage(n))

	case mdast.NodeSoftBreak:
		return one(textNode("\n"))

	case mdast.NodeHardBreak:
		return []*xhtml.Node{element("br"), textNode("\n")}

	case mdast.NodeHTMLInline:
		return one(rawNode(n.TextValue()))

	case mdast.NodeRaw:
		return lowerRaw(n)

	default:
		return lowerInline(n)
	}
}

func lowerList(n *mdast.Node) *xhtml.Node {
	var list *xhtml.Node
	if n.Block != nil && n.Block.List != nil && n.Block.List.Ordered {
		list = element("ol")
		if start := n.Block.List.StartNumber; start != 1 {
			list.Attr = append(list.Attr, attr("start", strconv.Itoa(start)))
		}
	} else {
		list = element("ul")
	}
	appendChildren(list, n, true)
	return list
}

func lowerCodeBlock(n *mdast.Node) *xhtml.Node {
	code := element("code")
	if n.Block != nil && n.Block.CodeBlock != nil {
		if fields := strings.Fields(n.Block.CodeBlock.Info); len(fields) > 0 {
			code.Attr = append(code.Attr, attr("class", "language-"+fields[0]))
		}
	}
	code.AppendChild(textNode(blockLiteral(n)))

	pre := element("pre")
	pre.AppendChild(code)
	return pre
}

func lowerDirective(n *mdast.Node) *xhtml.Node {
	tag := defaultDirectiveTag
	var props map[string]string
	if n.Hint != nil {
		if n.Hint.TagName != "" {
			tag = n.Hint.TagName
		}
		props = n.Hint.Properties
	}

	el := element(tag)
	for _, key := range slices.Sorted(maps.Keys(props)) {
		el.Attr = append(el.Attr, attr(key, props[key]))
	}

	appendChildren(el, n, true)
	return el
}

func lowerLink(n *mdast.Node) *xhtml.Node {
	a := element("a")
	if link := linkAttrs(n); link != nil {
		a.Attr = append(a.Attr, attr("href", link.Destination))
		if link.Title != "" {
			a.Attr = append(a.Attr, attr("title", link.Title))
		}
	}
	return withInline(a, n)
}

func lowerImage(n *mdast.Node) *xhtml.Node {
	img := element("img")
	link := linkAttrs(n)
	if link == nil {
		link = &mdast.LinkAttrs{}
	}

	img.Attr = append(img.Attr, attr("src", link.Destination), attr("alt", link.Alt))
	if link.Title != "" {
		img.Attr = append(img.Attr, attr("title", link.Title))
	}
	return img
}

func lowerCheckbox(n *mdast.Node) *xhtml.Node {
	input := element("input", attr("type", "checkbox"), attr("disabled", ""))
	if n.Ext["checked"] == true {
		input.Attr = append(input.Attr, attr("checked", ""))
	}
	return input
}

// lowerRaw handles GFM tables and unknown wrapper nodes.
func lowerRaw(n *mdast.Node) []*xhtml.Node {
	if n.Ext["table"] != true {
		return lowerInline(n)
	}

	table := element("table")
	var body *xhtml.Node
	for child := n.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Ext["tableHeader"] == true:
			head := element("thead")
			head.AppendChild(lowerTableRow(child, "th"))
			table.AppendChild(head)
		case child.Ext["tableRow"] == true:
			if body == nil {
				body = element("tbody")
				table.AppendChild(body)
			}
			body.AppendChild(lowerTableRow(child, "td"))
		}
	}
	return one(table)
}

func lowerTableRow(row *mdast.Node, cellTag string) *xhtml.Node {
	tr := element("tr")
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		td := element(cellTag)
		if align, ok := cell.Ext["alignment"].(string); ok && align != "" && align != "none" {
			td.Attr = append(td.Attr, attr("align", align))
		}
		tr.AppendChild(withInline(td, cell))
	}
	return tr
}

// lowerInline returns the lowered children of n without a wrapper.
func lowerInline(n *mdast.Node) []*xhtml.Node {
	var out []*xhtml.Node
	for child := n.FirstChild; child != nil; child = child.Next {
		out = append(out, lower(child)...)
	}
	return out
}

func withInline(el *xhtml.Node, n *mdast.Node) *xhtml.Node {
	for _, child := range lowerInline(n) {
		el.AppendChild(child)
	}
	return el
}

func inTightList(n *mdast.Node) bool {
	item := n.Parent
	return item != nil && item.Kind == mdast.NodeListItem && tightItem(item)
}

func tightItem(item *mdast.Node) bool {
	list := item.Parent
	return list != nil && list.Kind == mdast.NodeList &&
		list.Block != nil && list.Block.List != nil && list.Block.List.Tight
}

func isBlockLike(n *mdast.Node) bool {
	if n.Kind == mdast.NodeParagraph && inTightList(n) {
		return false
	}
	return n.IsBlock() || n.Ext["table"] == true
}

func linkAttrs(n *mdast.Node) *mdast.LinkAttrs {
	if n.Inline == nil {
		return nil
	}
	return n.Inline.Link
}

func blockLiteral(n *mdast.Node) string {
	if n.Block == nil {
		return ""
	}
	return string(n.Block.Literal)
}

func element(tag string, attrs ...xhtml.Attribute) *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func textNode(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

func rawNode(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.RawNode, Data: s}
}

func attr(key, val string) xhtml.Attribute {
	return xhtml.Attribute{Key: key, Val: val}
}

func one(n *xhtml.Node) []*xhtml.Node {
	return []*xhtml.Node{n}
}

// detach removes and returns the children of a temporary wrapper.
func detach(wrapper *xhtml.Node) []*xhtml.Node {
	var out []*xhtml.Node
	for child := wrapper.FirstChild; child != nil; {
		next := child.NextSibling
		wrapper.RemoveChild(child)
		out = append(out, child)
		child = next
	}
	return out
}
