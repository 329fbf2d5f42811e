// Package goldmark parses Markdown into mdast trees using the goldmark
// library, with container directive support always enabled.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/mdcard/pkg/mdast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Supported Markdown flavors. Both recognize container directives.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

type FileSnapshot = mdast.FileSnapshot

// Parser turns Markdown source into mdast trees. A Parser is safe for
// concurrent use; every Parse gets its own goldmark context.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. An unknown flavor falls back to
// CommonMark.
func New(flavor string) *Parser {
	if !IsValidFlavor(flavor) {
		flavor = FlavorCommonMark
	}

	exts := []goldmark.Extender{Directives}
	if flavor == FlavorGFM {
		exts = append(exts, extension.GFM)
	}
	return &Parser{
		flavor: flavor,
		md:     goldmark.New(goldmark.WithExtensions(exts...)),
	}
}

func IsValidFlavor(flavor string) bool {
	return flavor == FlavorCommonMark || flavor == FlavorGFM
}

func (p *Parser) Flavor() string { return p.flavor }

// Parse reads content as the file at path. The snapshot owns a copy of
// content, and every node in the tree points back at it.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap := mdast.NewFileSnapshot(path, bytes.Clone(content))
	doc := p.md.Parser().Parse(text.NewReader(snap.Content), parser.WithContext(parser.NewContext()))

	// goldmark cannot be interrupted, so a deadline that passed while it
	// ran is reported here.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap.Root = newMapper(snap.Content).mapDocument(doc)
	mdast.SetFile(snap.Root, snap)
	return snap, nil
}
