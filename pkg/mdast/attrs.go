package mdast

// BlockAttrs carries the data of block nodes that is not in their children.
type BlockAttrs struct {
	HeadingLevel int // 1 to 6
	List         *ListAttrs
	CodeBlock    *CodeBlockAttrs

	// Literal is the verbatim body of a code or HTML block.
	Literal []byte

	// DirectiveLabel is set on the paragraph holding a directive's [label].
	DirectiveLabel bool
}

type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+" or "*"; empty for ordered lists
	StartNumber  int
	Tight        bool // items not separated by blank lines
}

type CodeBlockAttrs struct {
	FenceChar byte   // '`' or '~'; zero for indented blocks
	Info      string // text after the opening fence
	Indented  bool
}

// InlineAttrs carries the data of inline nodes.
type InlineAttrs struct {
	// Text is the content of text, code span and inline HTML nodes.
	Text []byte

	// Link is set on links and images.
	Link *LinkAttrs

	EmphasisLevel int // 1 emphasis, 2 strong
}

// LinkAttrs describes a link target or an image source.
type LinkAttrs struct {
	Destination string
	Title       string
	Alt         string // images only
	Autolink    bool   // written as <url>
}

// DirectiveAttrs is the name and {...} attribute block of a directive.
// Repeated classes are stored space-separated under "class".
type DirectiveAttrs struct {
	Name       string
	Attributes map[string]string
}

// Attribute looks up one attribute. It is safe on a nil receiver.
func (d *DirectiveAttrs) Attribute(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	value, ok := d.Attributes[name]
	return value, ok
}

// RenderHint tells a serializer which element to emit for a node in
// place of its default markup.
type RenderHint struct {
	TagName    string
	Properties map[string]string
}

func NewBlockAttrs() *BlockAttrs   { return &BlockAttrs{} }
func NewInlineAttrs() *InlineAttrs { return &InlineAttrs{} }

// The With methods set one field and return the receiver so constructors
// can chain them.

func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

func (a *BlockAttrs) WithList(list *ListAttrs) *BlockAttrs {
	a.List = list
	return a
}

func (a *BlockAttrs) WithCodeBlock(code *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = code
	return a
}

func (a *BlockAttrs) WithLiteral(body []byte) *BlockAttrs {
	a.Literal = body
	return a
}

func (a *BlockAttrs) WithDirectiveLabel(label bool) *BlockAttrs {
	a.DirectiveLabel = label
	return a
}

func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

func (a *InlineAttrs) WithLink(link *LinkAttrs) *InlineAttrs {
	a.Link = link
	return a
}

func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}
