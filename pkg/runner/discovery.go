package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds the Markdown files selected by opts and returns their
// absolute paths sorted and without duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.extensions(),
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			// Explicitly named files only need the right extension.
			if hasExtension(abs, d.extensions) && !d.excluded(abs) {
				d.add(abs)
			}
			continue
		}

		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	exclude    []string
	follow     bool

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) excluded(path string) bool {
	rel := d.rel(path)
	for _, pattern := range d.exclude {
		if MatchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// walk adds every matching file under root. Hidden entries below root are
// skipped, as are excluded directories.
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, path)
		}

		if hasExtension(path, d.extensions) && !d.excluded(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are ignored;
// directory links are walked only when following is enabled.
func (d *discoverer) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if info.IsDir() {
		if !d.follow {
			return nil
		}
		// Walk the target itself; WalkDir does not descend into a symlink root.
		return d.walk(ctx, target)
	}

	if hasExtension(path, d.extensions) && !d.excluded(path) {
		d.add(path)
	}
	return nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// MatchGlob reports whether a slash-separated relative path matches
// pattern. Patterns without a slash also match the base name, and "**"
// matches any number of path segments ("vendor/**", "**/drafts",
// "docs/**/*.md").
func MatchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
	}

	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

// ValidGlob reports whether pattern is syntactically valid.
func ValidGlob(pattern string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
		if segment == "**" {
			continue
		}
		if _, err := filepath.Match(segment, ""); err != nil {
			return false
		}
	}
	return true
}

// matchSegments matches path segments against pattern segments, where a
// "**" segment consumes zero or more path segments. A trailing "**" also
// matches the directory itself.
func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(path) + 1 {
				if matchSegments(path[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(path) == 0 {
			return false
		}
		if ok, err := filepath.Match(pattern[0], path[0]); err != nil || !ok {
			return false
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}
