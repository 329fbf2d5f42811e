// Package convert runs the full Markdown to HTML pipeline for one
// document: parse, rewrite cards, render.
package convert

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/pkg/card"
	"github.com/yaklabco/mdcard/pkg/mdast"
	"github.com/yaklabco/mdcard/pkg/parser/goldmark"
	mdhtml "github.com/yaklabco/mdcard/pkg/render/html"
)

// Result is the output of converting one document.
type Result struct {
	// HTML is the rendered document.
	HTML []byte

	// Tree is the parsed file with its rewritten AST.
	Tree *mdast.FileSnapshot

	// Report lists what happened to each card and card-grid.
	Report *card.Report
}

// Converter converts Markdown documents. It is safe for concurrent use.
type Converter struct {
	parser *goldmark.Parser
	opts   *card.Options
}

// New creates a Converter for the given Markdown flavor. opts may be nil.
func New(flavor string, opts *card.Options) *Converter {
	return &Converter{
		parser: goldmark.New(flavor),
		opts:   opts,
	}
}

// Flavor returns the Markdown flavor used for parsing.
func (c *Converter) Flavor() string {
	return c.parser.Flavor()
}

// Convert parses src, rewrites its card directives and renders it.
// Skipped directives are logged at debug level with their position.
func (c *Converter) Convert(ctx context.Context, path string, src []byte) (*Result, error) {
	snapshot, err := c.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayPath(path), err)
	}

	report := card.Transform(snapshot.Root, c.opts)
	logSkips(ctx, path, report)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	html, err := mdhtml.RenderBytes(snapshot.Root)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", displayPath(path), err)
	}

	return &Result{
		HTML:   html,
		Tree:   snapshot,
		Report: report,
	}, nil
}

func logSkips(ctx context.Context, path string, report *card.Report) {
	logger := logging.FromContext(ctx)
	for _, skip := range report.Skips() {
		logger.Debug("directive left unchanged",
			logging.FieldPath, displayPath(path),
			logging.FieldPosition, skip.Node.Position().String(),
			logging.FieldDirective, skip.Name,
			logging.FieldReason, skip.Reason.String(),
		)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
