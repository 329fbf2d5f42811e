package card

import "github.com/yaklabco/mdcard/pkg/mdast"

// rewriteGrid sets the render hint of a card-grid. Its children are left
// for the card pass.
func rewriteGrid(node *mdast.Node, cfg Config) SkipReason {
	if !node.HasChildren() {
		return SkipEmpty
	}

	node.Hint = &mdast.RenderHint{
		TagName:    tagName(cfg, GridName),
		Properties: classProperties(cfg.CardGridClass, node),
	}

	return NotSkipped
}

// tagName returns the element name for a card or grid.
func tagName(cfg Config, name string) string {
	if cfg.CustomHTMLTags.Enabled {
		return name
	}
	return TagDiv
}

// classProperties returns the class attribute for a directive. A configured
// class wins over the directive's own class. Returns nil when neither is set.
func classProperties(configured string, node *mdast.Node) map[string]string {
	if configured != "" {
		return map[string]string{"class": configured}
	}
	if class, ok := node.Directive.Attribute("class"); ok && class != "" {
		return map[string]string{"class": class}
	}
	return nil
}

// containerHint returns the hint of a synthetic container.
func containerHint(class string) *mdast.RenderHint {
	hint := &mdast.RenderHint{TagName: TagDiv}
	if class != "" {
		hint.Properties = map[string]string{"class": class}
	}
	return hint
}
