package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/internal/ui/pretty"
	"github.com/yaklabco/mdcard/pkg/card"
	"github.com/yaklabco/mdcard/pkg/config"
	"github.com/yaklabco/mdcard/pkg/convert"
	"github.com/yaklabco/mdcard/pkg/fsutil"
	"github.com/yaklabco/mdcard/pkg/runner"
)

var (
	// ErrRenderFailed is returned when at least one document failed to render.
	ErrRenderFailed = errors.New("render failed")

	// ErrInteractiveStdin is returned when render has no paths and stdin is a terminal.
	ErrInteractiveStdin = errors.New("no input: pass Markdown paths or pipe a document on stdin")

	// ErrInvalidUsage is returned for flag combinations that cannot work together.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrStaleOutput is returned by --check when rendered files are out of date.
	ErrStaleOutput = errors.New("rendered output is out of date")
)

type renderFlags struct {
	flavor     string
	format     string
	output     string
	outDir     string
	jobs       int
	ignore     []string
	extensions []string
	watch      bool
	check      bool
	diff       bool

	customTags            bool
	cardClass             string
	cardGridClass         string
	imageContainerClass   string
	contentContainerClass string
	mergeTrailingBlocks   bool

	quiet       bool
	verbose     bool
	table       bool
	showSkipped bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML, rewriting card and card-grid directives.

With no paths, reads one document from stdin and writes HTML to stdout.
With a single file, writes to stdout unless --output or --out-dir is set.
With directories or several files, writes <name>.html next to each source,
or under --out-dir mirroring the source tree.

Examples:
  mdcard render < page.md             # Render stdin to stdout
  mdcard render page.md -o page.html  # Render one file
  mdcard render docs/                 # Render a tree in place
  mdcard render docs/ --out-dir site  # Render a tree into site/
  mdcard render docs/ --watch         # Re-render on change
  mdcard render docs/ --check         # Fail if any output is out of date
  mdcard render page.md --format tree # Print the rewritten tree`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatHTML), "output format: html, tree")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write a single document to this file")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for rendered files (mirrors the source tree)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "Markdown file extensions (default .md,.markdown)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "re-render files when they change")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report outputs that are out of date without writing them")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "with --check, print a unified diff for each stale output")

	cmd.Flags().BoolVar(&flags.customTags, "custom-tags", false, "emit <card> and <card-grid> elements instead of <div>")
	cmd.Flags().StringVar(&flags.cardClass, "card-class", "", "class added to every card")
	cmd.Flags().StringVar(&flags.cardGridClass, "card-grid-class", "", "class added to every card grid")
	cmd.Flags().StringVar(&flags.imageContainerClass, "image-container-class", card.DefaultImageContainerClass,
		"class of the image container (empty omits it)")
	cmd.Flags().StringVar(&flags.contentContainerClass, "content-container-class", card.DefaultContentContainerClass,
		"class of the content container (empty omits it)")
	cmd.Flags().BoolVar(&flags.mergeTrailingBlocks, "merge-trailing-blocks", false,
		"keep blocks after a card's body inside its content container")

	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not print the run summary")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "print the run summary as a detailed block")
	cmd.Flags().BoolVar(&flags.table, "table", false, "print a per-file table after a multi-file render")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "list directives that were left unchanged")
}

// cliConfig maps the flags the user actually set onto a partial config.
func cliConfig(cmd *cobra.Command, flags *renderFlags) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{}

	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("out-dir") {
		cfg.OutDir = flags.outDir
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	cfg.Jobs = flags.jobs
	cfg.Watch = flags.watch

	opts := &card.Options{}
	set := false
	if changed("custom-tags") {
		opts.CustomHTMLTags = &card.CustomHTMLTags{Enabled: flags.customTags}
		set = true
	}
	for _, s := range []struct {
		flag  string
		value string
		dst   **string
	}{
		{"card-class", flags.cardClass, &opts.CardClass},
		{"card-grid-class", flags.cardGridClass, &opts.CardGridClass},
		{"image-container-class", flags.imageContainerClass, &opts.ImageContainerClass},
		{"content-container-class", flags.contentContainerClass, &opts.ContentContainerClass},
	} {
		if changed(s.flag) {
			value := s.value
			*s.dst = &value
			set = true
		}
	}
	if changed("merge-trailing-blocks") {
		merge := flags.mergeTrailingBlocks
		opts.MergeTrailingBlocks = &merge
		set = true
	}
	if set {
		cfg.Cards = opts
	}

	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	logger := commandLogger(cmd)

	loaded, err := loadConfig(cmd, cliConfig(cmd, flags))
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldOutDir, cfg.OutDir,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := &renderOutput{
		cmd:          cmd,
		flags:        flags,
		colorEnabled: pretty.IsColorEnabled(colorMode, cmd.ErrOrStderr()),
	}
	out.styles = pretty.NewStyles(out.colorEnabled)

	conv := convert.New(string(cfg.Flavor), cfg.Cards)

	m, err := renderMode(cmd, args, cfg, flags)
	if err != nil {
		return err
	}

	switch m {
	case modeStdin:
		return renderStdin(cmd, conv, cfg, out)
	case modeSingle:
		return renderFile(cmd, conv, cfg, out, args[0])
	default:
		return renderTree(cmd, conv, cfg, out, args)
	}
}

type mode int

const (
	modeStdin mode = iota
	modeSingle
	modeTree
)

// renderMode picks how args are rendered and rejects flag combinations
// that do not fit the chosen mode.
func renderMode(cmd *cobra.Command, args []string, cfg *config.Config, flags *renderFlags) (mode, error) {
	if flags.quiet && flags.verbose {
		return 0, fmt.Errorf("%w: --quiet cannot be combined with --verbose", ErrInvalidUsage)
	}
	if flags.diff && !flags.check {
		return 0, fmt.Errorf("%w: --diff needs --check", ErrInvalidUsage)
	}
	if flags.check && cfg.Watch {
		return 0, fmt.Errorf("%w: --check cannot be combined with --watch", ErrInvalidUsage)
	}

	if len(args) == 0 {
		if cfg.Watch {
			return 0, fmt.Errorf("%w: --watch needs at least one path", ErrInvalidUsage)
		}
		if flags.check {
			return 0, fmt.Errorf("%w: --check needs at least one path", ErrInvalidUsage)
		}
		return modeStdin, nil
	}

	single := len(args) == 1 && !cfg.Watch && !flags.check && !cmd.Flags().Changed("out-dir")
	if single {
		info, err := os.Stat(args[0])
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", args[0], err)
		}
		single = !info.IsDir()
	}
	if single {
		return modeSingle, nil
	}

	if flags.output != "" {
		return 0, fmt.Errorf("%w: --output needs a single input file", ErrInvalidUsage)
	}
	return modeTree, nil
}

func renderStdin(cmd *cobra.Command, conv *convert.Converter, cfg *config.Config, out *renderOutput) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // Fd fits in int
		return ErrInteractiveStdin
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	return renderDocument(cmd, conv, cfg, out, "", src)
}

func renderFile(cmd *cobra.Command, conv *convert.Converter, cfg *config.Config, out *renderOutput, path string) error {
	src, _, err := fsutil.ReadFile(commandContext(cmd), path)
	if err != nil {
		return err
	}
	return renderDocument(cmd, conv, cfg, out, path, src)
}

// renderDocument converts one document and writes it to --output or stdout.
func renderDocument(cmd *cobra.Command, conv *convert.Converter, cfg *config.Config, out *renderOutput, path string, src []byte) error {
	ctx := commandContext(cmd)

	res, err := conv.Convert(ctx, path, src)
	if err != nil {
		return err
	}

	data, err := runner.Encode(res, cfg.Format)
	if err != nil {
		return err
	}

	if out.flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, out.flags.output, data, fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write %s: %w", out.flags.output, err)
		}
		commandLogger(cmd).Debug("wrote output", logging.FieldOutput, out.flags.output)
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	name := path
	if name == "" {
		name = "<stdin>"
	}
	out.skips(name, res.Report)
	return nil
}

// renderTree renders many files with the runner, optionally watching them.
func renderTree(cmd *cobra.Command, conv *convert.Converter, cfg *config.Config, out *renderOutput, paths []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	out.workDir = workDir

	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutDir:       cfg.OutDir,
		Format:       cfg.Format,
		Check:        out.flags.check,
	}

	commandLogger(cmd).Debug("starting render",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	r := runner.New(conv)
	ctx := commandContext(cmd)

	if cfg.Watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.Watch(ctx, opts, out.result)
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	out.result(result)

	if ExitCodeFromResult(result) == ExitSuccess {
		return nil
	}
	if result.HasErrors() {
		return errors.Join(ErrRenderFailed, result.Err())
	}
	if result.HasStale() {
		return fmt.Errorf("%w: %d %s", ErrStaleOutput, result.Stats.FilesStale, plural(result.Stats.FilesStale, "file", "files"))
	}
	return ErrRenderFailed
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// renderOutput writes skip listings, tables and summaries to stderr.
type renderOutput struct {
	cmd          *cobra.Command
	flags        *renderFlags
	styles       *pretty.Styles
	colorEnabled bool
	workDir      string
}

// skips lists the skipped directives of one document under a file header.
func (o *renderOutput) skips(path string, report *card.Report) {
	if !o.flags.showSkipped || report == nil || report.Skipped == 0 {
		return
	}
	w := o.cmd.ErrOrStderr()
	_, _ = io.WriteString(w, o.styles.FormatFileHeader(path, report.Skipped)+"\n")
	_, _ = io.WriteString(w, o.styles.FormatSkips(path, report))
}

func (o *renderOutput) result(result *runner.Result) {
	w := o.cmd.ErrOrStderr()

	if o.flags.diff {
		for _, file := range result.Files {
			if file.Diff != "" {
				_, _ = io.WriteString(o.cmd.OutOrStdout(), file.Diff)
			}
		}
	}

	for _, file := range result.Files {
		o.skips(o.relative(file.Path), file.Report)
	}

	if o.flags.table {
		formatter := pretty.NewTableFormatter(o.styles, o.colorEnabled, terminalWidth(w), o.workDir)
		_, _ = io.WriteString(w, formatter.FormatTable(result))
	}

	switch {
	case o.flags.quiet:
	case o.flags.verbose:
		_, _ = io.WriteString(w, o.styles.FormatSummary(result.Stats))
	default:
		_, _ = io.WriteString(w, o.styles.FormatSummaryOneLine(result.Stats))
	}
}

func (o *renderOutput) relative(path string) string {
	if o.workDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // Fd fits in int
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // Fd fits in int
	if err != nil {
		return 0
	}
	return width
}
