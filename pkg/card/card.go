package card

import "github.com/yaklabco/mdcard/pkg/mdast"

// rewriteCard validates a card and, when valid, replaces its children
// with an image container and a content container. An invalid card is
// left untouched.
func rewriteCard(node *mdast.Node, cfg Config) SkipReason {
	if !node.HasChildren() {
		return SkipEmpty
	}

	first := node.FirstChild
	if !mdast.IsParagraph(first) {
		return SkipNotParagraph
	}
	if !first.HasChildren() {
		return SkipEmptyParagraph
	}

	body := first
	label := ""
	if mdast.IsDirectiveLabel(first) {
		if !mdast.IsText(first.FirstChild) {
			return SkipLabelNotText
		}
		label = first.FirstChild.TextValue()

		body = first.Next
		if !mdast.IsParagraph(body) {
			return SkipMissingBody
		}
	}

	media := body.FirstChild
	image := mediaImage(media)
	if image == nil {
		return SkipInvalidMedia
	}

	// Validation is complete. Collect everything before moving nodes.
	content := body.Children()[1:]
	if cfg.MergeTrailingBlocks {
		for sibling := body.Next; sibling != nil; sibling = sibling.Next {
			content = append(content, sibling)
		}
	}

	setAlt(image, label)

	imageContainer := mdast.NewLeafDirective(ImageContainerName, containerHint(cfg.ImageContainerClass), media)
	contentContainer := mdast.NewLeafDirective(ContentContainerName, containerHint(cfg.ContentContainerClass), content...)
	mdast.ReplaceChildren(node, imageContainer, contentContainer)

	node.Hint = &mdast.RenderHint{
		TagName:    tagName(cfg, CardName),
		Properties: classProperties(cfg.CardClass, node),
	}

	return NotSkipped
}

// mediaImage returns the image of a bare image or of a link whose only
// child is an image, or nil for anything else.
func mediaImage(media *mdast.Node) *mdast.Node {
	switch {
	case mdast.IsImage(media):
		return media
	case mdast.IsLinkedImage(media):
		return media.FirstChild
	default:
		return nil
	}
}

// setAlt fills an empty alt with the label.
func setAlt(image *mdast.Node, label string) {
	if image.Inline == nil {
		image.Inline = mdast.NewInlineAttrs()
	}
	if image.Inline.Link == nil {
		image.Inline.Link = &mdast.LinkAttrs{}
	}
	if image.Inline.Link.Alt == "" {
		image.Inline.Link.Alt = label
	}
}
