package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcard/pkg/card"
)

// FormatSkip formats a directive that was left unchanged for terminal output.
// The line reads: path:line:col  skipped  reason  (directive).
func (s *Styles) FormatSkip(path string, outcome card.Outcome) string {
	location := s.FilePath.Render(path)
	if pos := outcome.Node.Position(); pos.IsValid() {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", pos.Line, pos.Column))
	}

	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("skipped"),
		s.Message.Render(outcome.Reason.String()),
		s.Directive.Render("("+outcome.Name+")"),
	)
}

// FormatSkips formats every skipped directive of a report, in document order.
// Returns an empty string when nothing was skipped.
func (s *Styles) FormatSkips(path string, report *card.Report) string {
	if report == nil {
		return ""
	}

	var builder strings.Builder
	for _, outcome := range report.Skips() {
		builder.WriteString(s.FormatSkip(path, outcome))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, skipCount int) string {
	header := s.FilePath.Render(path)
	if skipCount > 0 {
		word := "directives"
		if skipCount == 1 {
			word = "directive"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s skipped)", skipCount, word))
	}
	return header
}
