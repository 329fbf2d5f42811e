package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFlagLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantFlag string
		wantDesc string
		wantOK   bool
	}{
		{name: "flag and description", line: "-o, --out string   output directory", wantFlag: "-o, --out string", wantDesc: "output directory", wantOK: true},
		{name: "no description", line: "--check", wantFlag: "--check"},
		{name: "trailing spaces only", line: "--check   ", wantFlag: "--check   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag, desc, ok := splitFlagLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFlag, flag)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestStyleFlagLine_PlainKeepsLayout(t *testing.T) {
	t.Parallel()

	h := &HelpFormatter{styles: NewHelpStyles(false)}

	assert.Equal(t, "  -j, --jobs int   worker count", h.styleFlagLine("  -j, --jobs int      worker count"))
	assert.Equal(t, "  --stdout", h.styleFlagLine("  --stdout"))
}

func TestTrimTrailingWhitespaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Render cards\n\nin place", trimTrailingWhitespaces("Render cards  \n\t\nin place \t"))
}

func TestApplyToCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "mdcard", Short: "Rewrite card directives   "}
	root.Flags().Bool("check", false, "report stale files")
	root.AddCommand(&cobra.Command{Use: "render", Short: "Render files", Run: func(*cobra.Command, []string) {}})

	var out bytes.Buffer
	root.SetOut(&out)
	NewHelpFormatter("never", &out).ApplyToCommand(root)

	require.NoError(t, root.Usage())
	usage := out.String()
	assert.Contains(t, usage, "Usage:")
	assert.Contains(t, usage, "Available Commands:")
	assert.Contains(t, usage, "render")
	assert.Contains(t, usage, "--check")

	out.Reset()
	root.HelpFunc()(root, nil)
	assert.Contains(t, out.String(), "Rewrite card directives\n\nUsage:")
}
