package runner

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/pkg/config"
	"github.com/yaklabco/mdcard/pkg/convert"
	"github.com/yaklabco/mdcard/pkg/fsutil"
	"github.com/yaklabco/mdcard/pkg/mdast"
)

// Runner renders Markdown files with a shared Converter.
type Runner struct {
	Converter *convert.Converter
}

// New creates a Runner that converts documents with conv.
func New(conv *convert.Converter) *Runner {
	return &Runner{Converter: conv}
}

// Run discovers files under opts.Paths and renders them with a pool of
// workers. Every document is converted independently; a failing file is
// recorded in its outcome and does not stop the others. Outcomes are
// ordered by path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	progress := logging.StartProgress(logger)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	outDir := opts.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	task := renderTask{
		conv:    r.Converter,
		format:  opts.format(),
		workDir: workDir,
		outDir:  outDir,
		stdout:  opts.Stdout != nil && !opts.Check,
		check:   opts.Check,
	}

	// Each worker fills its own slot, so outcomes stay in path order
	// whatever order the workers finish in.
	outcomes := make([]FileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = task.render(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome.Path == "" {
			continue // never started
		}
		if outcome.Error != nil {
			logger.Warn("render failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
		if task.stdout && outcome.Error == nil {
			if _, err := opts.Stdout.Write(outcome.rendered); err != nil {
				return result, fmt.Errorf("write output: %w", err)
			}
			outcome.rendered = nil
		}
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	progress.Done("render complete",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesStale, result.Stats.FilesStale,
		logging.FieldCardsRewritten, result.Stats.CardsRewritten,
		logging.FieldGridsRewritten, result.Stats.GridsRewritten,
		logging.FieldDirectivesSkipped, result.Stats.DirectivesSkipped,
	)

	return result, nil
}

// renderTask holds the read-only state shared by all workers.
type renderTask struct {
	conv    *convert.Converter
	format  config.OutputFormat
	workDir string
	outDir  string
	stdout  bool
	check   bool
}

func (t renderTask) render(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	src, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	res, err := t.conv.Convert(ctx, path, src)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Report = res.Report

	data, err := Encode(res, t.format)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if t.stdout {
		outcome.rendered = data
		return outcome
	}

	output := OutputPath(path, t.workDir, t.outDir, t.format)
	if t.check {
		stale, diff, err := compareOutput(ctx, output, data)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Output = output
		outcome.Stale = stale
		outcome.Diff = diff
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, output, data, info.Mode.Perm())
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", output, err)
		return outcome
	}
	outcome.Output = output
	outcome.Written = written
	return outcome
}

// Encode returns the bytes written for a converted document.
func Encode(res *convert.Result, format config.OutputFormat) ([]byte, error) {
	if format != config.FormatTree {
		return res.HTML, nil
	}

	var buf bytes.Buffer
	if err := mdast.Fprint(&buf, res.Tree.Root); err != nil {
		return nil, fmt.Errorf("print tree: %w", err)
	}
	return buf.Bytes(), nil
}

// OutputPath returns where the rendering of src is written. Without
// outDir the output sits next to src. With outDir it mirrors src's path
// relative to workDir; sources outside workDir land directly in outDir.
func OutputPath(src, workDir, outDir string, format config.OutputFormat) string {
	if format == "" {
		format = config.FormatHTML
	}
	name := strings.TrimSuffix(src, filepath.Ext(src)) + format.Extension()
	if outDir == "" {
		return name
	}

	rel, err := filepath.Rel(workDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}
