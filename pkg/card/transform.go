// Package card rewrites card and card-grid container directives into
// render-ready nodes.
//
// A card holds an image (optionally wrapped in a link) followed by body
// text:
//
//	:::card[Caption]{.featured}
//	![](photo.jpg)
//	Body text
//	:::
//
// Transform gives every valid card exactly two children, an image
// container and a content container, and annotates cards and grids with
// the element name and class to emit. Invalid directives are left
// untouched and reported.
package card

import "github.com/yaklabco/mdcard/pkg/mdast"

// Directive names.
const (
	CardName             = "card"
	GridName             = "card-grid"
	ImageContainerName   = "image-container"
	ContentContainerName = "content-container"
)

// TagDiv is the element used when custom tags are disabled.
const TagDiv = "div"

// Transform rewrites every card-grid and card directive under root in
// place and reports the outcome of each. Grids are annotated in one pass
// and cards rewritten in a second.
func Transform(root *mdast.Node, opts *Options) *Report {
	return transform(root, Resolve(DefaultConfig(), opts))
}

// transform is Transform with an already resolved configuration.
func transform(root *mdast.Node, cfg Config) *Report {
	report := &Report{}

	for _, grid := range mdast.FindContainerDirectives(root, GridName) {
		report.record(grid, GridName, rewriteGrid(grid, cfg))
	}

	// A card dropped from the tree by an enclosing rewrite is not reported.
	for _, card := range mdast.FindContainerDirectives(root, CardName) {
		if !mdast.IsAttached(root, card) {
			continue
		}
		report.record(card, CardName, rewriteCard(card, cfg))
	}

	return report
}
