package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdcard/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, CARDS, GRIDS, SKIPPED, STATUS
	countColumnWidth = 7
	minFileWidth     = 20
	minStatusWidth   = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// Row statuses.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusStdout    = "stdout"
	StatusStale     = "stale"
	StatusFailed    = "failed"
)

// TableRow represents a single file in the render table.
type TableRow struct {
	File    string
	Cards   int
	Grids   int
	Skipped int
	Status  string
	Error   string
}

// TableFormatter formats runner results as a styled per-file table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	baseDir      string
}

// NewTableFormatter creates a new table formatter. File paths are shown
// relative to baseDir when it is non-empty.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, baseDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		baseDir:      baseDir,
	}
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(path string, outcome runner.FileOutcome) TableRow {
	row := TableRow{File: path}

	switch {
	case outcome.Error != nil:
		row.Status = StatusFailed
		row.Error = outcome.Error.Error()
	case outcome.Stale:
		row.Status = StatusStale
	case outcome.Output == "":
		row.Status = StatusStdout
	case outcome.Written:
		row.Status = StatusWritten
	default:
		row.Status = StatusUnchanged
	}

	if outcome.Report != nil {
		row.Cards = outcome.Report.CardsRewritten
		row.Grids = outcome.Report.GridsRewritten
		row.Skipped = outcome.Report.Skipped
	}
	return row
}

// FormatTable formats runner results as a styled table followed by a
// totals line. Returns an empty string for an empty result.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, OutcomeToTableRow(t.displayPath(file.Path), file))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatTotals(result.Stats, widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	if t.colorEnabled {
		builder.WriteString(t.formatLegend())
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TableFormatter) displayPath(path string) string {
	if t.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(t.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

type columnWidths struct {
	file   int
	status int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, status: minStatusWidth}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.status = max(widths.status, len(statusText(row)))
	}

	// Constrain to terminal width: shrink status first, then file.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.status = max(minStatusWidth, widths.status-(total-t.termWidth))
		if total = t.calculateTotalWidth(widths); total > t.termWidth {
			widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
		}
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + 3*countColumnWidth + tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %-*s",
		widths.file, "FILE",
		countColumnWidth, "CARDS",
		countColumnWidth, "GRIDS",
		countColumnWidth, "SKIPPED",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row, coloring failed and skipping files.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %*d  %*d  %*d  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		countColumnWidth, row.Cards,
		countColumnWidth, row.Grids,
		countColumnWidth, row.Skipped,
		widths.status, truncateString(statusText(row), widths.status),
	)
	return t.getRowStyle(row).Render(content)
}

func (t *TableFormatter) formatTotals(stats runner.Stats, widths columnWidths) string {
	label := fmt.Sprintf("%d %s", stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))
	var status string
	if stats.FilesStale > 0 {
		status = strconv.Itoa(stats.FilesStale) + " " + StatusStale
	} else {
		status = strconv.Itoa(stats.FilesRendered-stats.FilesUnchanged) + " " + StatusWritten
	}
	if stats.FilesErrored > 0 {
		status += ", " + strconv.Itoa(stats.FilesErrored) + " " + StatusFailed
	}

	return t.styles.Bold.Render(fmt.Sprintf(" %-*s  %*d  %*d  %*d  %-*s",
		widths.file, label,
		countColumnWidth, stats.CardsRewritten,
		countColumnWidth, stats.GridsRewritten,
		countColumnWidth, stats.DirectivesSkipped,
		widths.status, truncateString(status, widths.status),
	))
}

// getRowStyle returns the style for a row.
func (t *TableFormatter) getRowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Status == StatusFailed, row.Status == StatusStale:
		return t.styles.TableErrorRow
	case row.Skipped > 0:
		return t.styles.TableSkipRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	errorSample := t.styles.TableErrorRow.Render(" failed or stale ")
	skipSample := t.styles.TableSkipRow.Render(" skipped directives ")

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s", errorSample, skipSample))
}

func statusText(row TableRow) string {
	if row.Error != "" {
		return row.Status + ": " + row.Error
	}
	return row.Status
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
