package card

import "github.com/yaklabco/mdcard/pkg/mdast"

// SkipReason explains why a directive was left unchanged.
type SkipReason int

// Skip reasons. NotSkipped marks a rewritten directive.
const (
	NotSkipped SkipReason = iota
	SkipEmpty
	SkipNotParagraph
	SkipEmptyParagraph
	SkipLabelNotText
	SkipMissingBody
	SkipInvalidMedia
)

var skipReasonText = [...]string{
	NotSkipped:         "rewritten",
	SkipEmpty:          "directive has no children",
	SkipNotParagraph:   "first child is not a paragraph",
	SkipEmptyParagraph: "first paragraph is empty",
	SkipLabelNotText:   "label does not start with plain text",
	SkipMissingBody:    "labelled card has no body paragraph",
	SkipInvalidMedia:   "body does not start with an image or linked image",
}

// String returns a human-readable description of the reason.
func (r SkipReason) String() string {
	if r >= 0 && int(r) < len(skipReasonText) {
		return skipReasonText[r]
	}
	return "unknown"
}

// Outcome records what happened to one matched directive.
type Outcome struct {
	Node      *mdast.Node
	Name      string
	Rewritten bool
	Reason    SkipReason
}

// Report lists the outcome of every matched directive in document order.
type Report struct {
	Outcomes       []Outcome
	GridsRewritten int
	CardsRewritten int
	Skipped        int
}

// Skips returns the outcomes of directives that were left unchanged.
func (r *Report) Skips() []Outcome {
	var skips []Outcome
	for _, o := range r.Outcomes {
		if !o.Rewritten {
			skips = append(skips, o)
		}
	}
	return skips
}

func (r *Report) record(node *mdast.Node, name string, reason SkipReason) {
	rewritten := reason == NotSkipped
	r.Outcomes = append(r.Outcomes, Outcome{
		Node:      node,
		Name:      name,
		Rewritten: rewritten,
		Reason:    reason,
	})

	switch {
	case !rewritten:
		r.Skipped++
	case name == GridName:
		r.GridsRewritten++
	default:
		r.CardsRewritten++
	}
}
