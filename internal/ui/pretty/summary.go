package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcard/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 12 files: 8 cards, 2 grids, 1 skipped, 3 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	head := fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered, wordFile, wordFiles))
	if stats.FilesErrored == 0 {
		head = s.Success.Render(head)
	}

	parts := []string{
		fmt.Sprintf("%d %s", stats.CardsRewritten, plural(stats.CardsRewritten, "card", "cards")),
		fmt.Sprintf("%d %s", stats.GridsRewritten, plural(stats.GridsRewritten, "grid", "grids")),
	}
	if stats.DirectivesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.DirectivesSkipped)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesStale > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d stale", stats.FilesStale)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return head + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")

	if stats.FilesUnchanged > 0 {
		builder.WriteString("  Files unchanged:    " +
			s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesStale > 0 {
		builder.WriteString("  Files stale:        " +
			s.Failure.Render(strconv.Itoa(stats.FilesStale)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:       " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Cards rewritten:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.CardsRewritten)) + "\n")
	builder.WriteString("  Grids rewritten:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.GridsRewritten)) + "\n")
	if stats.DirectivesSkipped > 0 {
		builder.WriteString("  Directives skipped: " +
			s.Warning.Render(strconv.Itoa(stats.DirectivesSkipped)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Render failed for some files"))
	case stats.FilesStale > 0:
		builder.WriteString(s.Failure.Render("Rendered output is out of date"))
	case stats.DirectivesSkipped > 0:
		builder.WriteString(s.Warning.Render("Render completed with skipped directives"))
	default:
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
