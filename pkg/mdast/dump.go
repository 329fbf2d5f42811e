package mdast

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Fprint writes an indented outline of the tree rooted at root to w,
// one node per line.
func Fprint(w io.Writer, root *Node) error {
	depth := map[*Node]int{}

	return Walk(root, func(n *Node) error {
		if n.Parent != nil {
			depth[n] = depth[n.Parent] + 1
		}

		line := strings.Repeat("  ", depth[n]) + n.Kind.String() + describe(n)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		return nil
	})
}

// describe returns the notable attributes of a node, prefixed by a space.
func describe(n *Node) string {
	var parts []string

	if pos := n.Position(); pos.IsValid() {
		parts = append(parts, "@"+pos.String())
	}
	if n.Directive != nil {
		parts = append(parts, "name="+strconv.Quote(n.Directive.Name))
		parts = append(parts, formatMap("attrs", n.Directive.Attributes)...)
	}
	if n.Block != nil && n.Block.DirectiveLabel {
		parts = append(parts, "label")
	}
	if n.Kind == NodeText || n.Kind == NodeCodeSpan || n.Kind == NodeHTMLInline {
		parts = append(parts, strconv.Quote(n.TextValue()))
	}
	if n.Inline != nil && n.Inline.Link != nil {
		parts = append(parts, "dest="+strconv.Quote(n.Inline.Link.Destination))
		if n.Kind == NodeImage {
			parts = append(parts, "alt="+strconv.Quote(n.Inline.Link.Alt))
		}
	}
	if n.Hint != nil {
		parts = append(parts, "tag="+n.Hint.TagName)
		parts = append(parts, formatMap("props", n.Hint.Properties)...)
	}

	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func formatMap(label string, values map[string]string) []string {
	if len(values) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		pairs = append(pairs, key+"="+strconv.Quote(values[key]))
	}
	return []string{label + "{" + strings.Join(pairs, " ") + "}"}
}
