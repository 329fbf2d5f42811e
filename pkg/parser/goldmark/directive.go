package goldmark

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindContainerDirective is the goldmark node kind of a container directive.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once at init
var KindContainerDirective = ast.NewNodeKind("ContainerDirective")

// labelAttribute is set on the paragraph that holds a directive label.
const labelAttribute = "directiveLabel"

// directivePriority places the directive parser ahead of paragraphs and
// thematic breaks but after lists and blockquotes.
const directivePriority = 690

// minFenceLength is the minimum number of colons that open a container.
const minFenceLength = 3

// ContainerDirective is a ":::name[label]{attrs}" block.
type ContainerDirective struct {
	ast.BaseBlock

	// Name is the directive name.
	Name string

	// Attrs holds the parsed attribute list.
	Attrs map[string]string

	// FenceLength is the number of colons in the opening fence.
	FenceLength int

	// Offset is the byte offset of the opening fence.
	Offset int
}

// Kind implements ast.Node.
func (n *ContainerDirective) Kind() ast.NodeKind {
	return KindContainerDirective
}

// Dump implements ast.Node.
func (n *ContainerDirective) Dump(source []byte, level int) {
	meta := map[string]string{"Name": n.Name}
	for key, value := range n.Attrs {
		meta["Attr."+key] = value
	}
	ast.DumpHelper(n, source, level, meta, nil)
}

// IsLabel reports whether a goldmark paragraph holds a directive label.
func IsLabel(node ast.Node) bool {
	if node.Kind() != ast.KindParagraph {
		return false
	}
	value, ok := node.AttributeString(labelAttribute)
	if !ok {
		return false
	}
	flag, isBool := value.(bool)
	return isBool && flag
}

// Directives is a goldmark extension that parses container directives.
//
//nolint:gochecknoglobals // stateless extension value, like goldmark's extension.GFM
var Directives goldmark.Extender = &directiveExtension{}

type directiveExtension struct{}

// Extend implements goldmark.Extender.
func (e *directiveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewContainerDirectiveParser(), directivePriority),
	))
}

type containerDirectiveParser struct{}

// NewContainerDirectiveParser returns a block parser for container directives.
//
//nolint:ireturn // goldmark registers block parsers through the interface
func NewContainerDirectiveParser() parser.BlockParser {
	return &containerDirectiveParser{}
}

func (b *containerDirectiveParser) Trigger() []byte {
	return []byte{':'}
}

func (b *containerDirectiveParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != ':' {
		return nil, parser.NoChildren
	}

	i := pos
	for i < len(line) && line[i] == ':' {
		i++
	}
	fence := i - pos
	if fence < minFenceLength {
		return nil, parser.NoChildren
	}

	nameStart := i
	if i >= len(line) || !isNameStart(line[i]) {
		return nil, parser.NoChildren
	}
	for i < len(line) && isNameChar(line[i]) {
		i++
	}
	name := string(line[nameStart:i])

	base := segment.Start - segment.Padding
	labelStart, labelStop := -1, -1
	if i < len(line) && line[i] == '[' {
		end := matchingBracket(line, i)
		if end < 0 {
			return nil, parser.NoChildren
		}
		labelStart, labelStop = base+i+1, base+end
		i = end + 1
	}

	var attrs map[string]string
	if i < len(line) && line[i] == '{' {
		parsed, consumed, ok := ParseAttributes(line[i:])
		if !ok {
			return nil, parser.NoChildren
		}
		attrs = parsed
		i += consumed
	}

	if !util.IsBlank(line[i:]) {
		return nil, parser.NoChildren
	}

	node := &ContainerDirective{
		Name:        name,
		Attrs:       attrs,
		FenceLength: fence,
		Offset:      base + pos,
	}

	if labelStart >= 0 {
		label := ast.NewParagraph()
		label.Lines().Append(trimSegment(reader.Source(), text.NewSegment(labelStart, labelStop)))
		label.SetAttributeString(labelAttribute, true)
		node.AppendChild(node, label)
	}

	reader.Advance(segment.Stop - segment.Start - newlineWidth(line) + segment.Padding)
	return node, parser.HasChildren
}

func (b *containerDirectiveParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	directive, ok := node.(*ContainerDirective)
	if !ok {
		return parser.Close
	}

	if isClosingFence(line, reader.LineOffset(), directive.FenceLength) {
		reader.Advance(segment.Stop - segment.Start - newlineWidth(line) + segment.Padding)
		return parser.Close
	}

	return parser.Continue | parser.HasChildren
}

func (b *containerDirectiveParser) Close(_ ast.Node, _ text.Reader, _ parser.Context) {}

func (b *containerDirectiveParser) CanInterruptParagraph() bool {
	return true
}

func (b *containerDirectiveParser) CanAcceptIndentedLine() bool {
	return false
}

// isClosingFence reports whether line closes a container opened with
// fence colons.
func isClosingFence(line []byte, lineOffset, fence int) bool {
	width, pos := util.IndentWidth(line, lineOffset)
	if width > 3 || pos >= len(line) {
		return false
	}
	i := pos
	for i < len(line) && line[i] == ':' {
		i++
	}
	return i-pos >= fence && util.IsBlank(line[i:])
}

// matchingBracket returns the index of the ']' that balances the '[' at
// open, or -1.
func matchingBracket(line []byte, open int) int {
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		case '\n', '\r':
			return -1
		}
	}
	return -1
}

func trimSegment(source []byte, seg text.Segment) text.Segment {
	seg = seg.TrimLeftSpace(source)
	return seg.TrimRightSpace(source)
}

func newlineWidth(line []byte) int {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return 1
	}
	return 0
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
