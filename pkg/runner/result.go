package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdcard/pkg/card"
)

// FileOutcome is the result of rendering one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Output is the file the result was written to.
	// Empty when rendering to Stdout or when the file failed.
	Output string

	// Written is false when Output already held identical content.
	Written bool

	// Stale is set in check mode when Output is missing or differs from
	// the fresh rendering.
	Stale bool

	// Diff is the unified diff from the current Output to the fresh
	// rendering. Only set for stale files in check mode.
	Diff string

	// Report lists what happened to each card and grid in the file.
	Report *card.Report

	// Error is set if the file could not be rendered.
	Error error

	// rendered holds the output bytes until they are flushed to Stdout.
	rendered []byte
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files converted without error.
	FilesRendered int

	// FilesUnchanged counts rendered files whose output was already up to date.
	FilesUnchanged int

	// FilesErrored is the number of files that could not be rendered.
	FilesErrored int

	// FilesStale counts files whose output is out of date in check mode.
	FilesStale int

	CardsRewritten    int
	GridsRewritten    int
	DirectivesSkipped int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to render.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasStale reports whether a check run found outdated output.
func (r *Result) HasStale() bool {
	return r != nil && r.Stats.FilesStale > 0
}

// Err joins the per-file errors, or returns nil when every file rendered.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %w", outcome.Path, outcome.Error))
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	switch {
	case outcome.Stale:
		r.Stats.FilesStale++
	case outcome.Output != "" && !outcome.Written:
		r.Stats.FilesUnchanged++
	}

	if outcome.Report != nil {
		r.Stats.CardsRewritten += outcome.Report.CardsRewritten
		r.Stats.GridsRewritten += outcome.Report.GridsRewritten
		r.Stats.DirectivesSkipped += outcome.Report.Skipped
	}
}
