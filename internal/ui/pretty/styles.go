// Package pretty renders run summaries, skip reports and tables for the
// terminal using lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indices.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorGrey   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per piece of CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Parts of a skipped-directive line.
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	Directive lipgloss.Style
	Message   lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableSkipRow   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or styles that render text unchanged
// when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style { return base.Foreground(c) }
	if !colorEnabled {
		fg = func(lipgloss.Color) lipgloss.Style { return base }
	}
	strong := func(s lipgloss.Style) lipgloss.Style { return s.Bold(colorEnabled) }

	return &Styles{
		Error:   strong(fg(colorRed)),
		Warning: strong(fg(colorYellow)),
		Info:    strong(fg(colorBlue)),

		FilePath:  strong(base),
		Location:  fg(colorGrey),
		Directive: fg(colorCyan),
		Message:   base,

		SummaryTitle: strong(base),
		SummaryValue: base,
		Success:      strong(fg(colorGreen)),
		Failure:      strong(fg(colorRed)),

		TableHeader:    strong(fg(colorLight)),
		TableErrorRow:  fg(colorRed),
		TableSkipRow:   fg(colorYellow),
		TableLegend:    fg(colorGrey).Italic(colorEnabled),
		TableSeparator: fg(colorGrey),

		Dim:  fg(colorGrey),
		Bold: strong(base),
	}
}

// IsColorEnabled resolves a color mode of "always", "never" or "auto"
// against w. Any other mode is treated as auto, which colors only a
// terminal and honors NO_COLOR.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
