// Package runner renders many Markdown files concurrently.
package runner

import (
	"io"

	"github.com/yaklabco/mdcard/pkg/config"
)

// Options controls a multi-file render.
type Options struct {
	// Paths are the files or directories to render.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths,
	// OutDir and exclude patterns. Empty means the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives the rendered files, mirroring each source's path
	// relative to WorkingDir. Empty writes each output next to its source.
	OutDir string

	// Format selects HTML or a tree outline. Empty means HTML.
	Format config.OutputFormat

	// Stdout, when set, receives every rendered document in discovery
	// order instead of files being written.
	Stdout io.Writer

	// Check compares each rendering with its existing output file and
	// records whether it is stale. Nothing is written. Stdout is ignored.
	Check bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) format() config.OutputFormat {
	if o.Format == "" {
		return config.FormatHTML
	}
	return o.Format
}
