// Package cli provides the Cobra command structure for mdcard.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcard/internal/logging"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug  bool
	config string
	color  string
}

// NewRootCommand builds the mdcard command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	root := &cobra.Command{
		Use:   "mdcard",
		Short: "Render card and card-grid directives in Markdown to HTML",
		Long: `mdcard renders Markdown to HTML, rewriting ":::card" and ":::card-grid"
container directives into a fixed card layout.

A card holds an image (or linked image) and a body; its optional label
becomes the image's alt text when the image has none. A card grid wraps
a run of cards. Directives that do not have the expected shape are left
unchanged and reported.`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&globals.debug, "debug", false, "enable debug logging")
	pf.StringVar(&globals.config, "config", "", "path to config file")
	pf.StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newRenderCommand(),
		newInitCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(globals.color, os.Stdout).ApplyToCommand(root)
	return root
}

// commandContext is cmd's context, or Background when Execute got none.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger is the logger the root command attached in PersistentPreRun.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(commandContext(cmd))
}
