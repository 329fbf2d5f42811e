package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/pkg/fsutil"
)

// WatchDebounce is how long Watch waits after the last change before
// re-rendering.
const WatchDebounce = 150 * time.Millisecond

// Watch renders opts once, then re-renders every selected Markdown file
// whose content changes until ctx is cancelled. Each run's result is
// passed to report. Directories created under a watched directory are
// watched too. Watch returns nil once ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, opts Options, report func(*Result)) error {
	logger := logging.FromContext(ctx)

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	scope, err := newWatchScope(opts)
	if err != nil {
		return err
	}
	if err := scope.addAll(watcher); err != nil {
		return err
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	report(result)

	w := &watchLoop{
		runner:  r,
		opts:    opts,
		scope:   scope,
		report:  report,
		state:   make(map[string]*fsutil.FileInfo),
		pending: make(map[string]struct{}),
	}
	w.remember(ctx, result.Files)

	logger.Info("watching for changes", logging.FieldPath, scope.describe())

	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(watcher, ev) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(WatchDebounce)
			} else {
				debounce.Reset(WatchDebounce)
			}
			fire = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-fire:
			fire = nil
			if err := w.flush(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("re-render failed", logging.FieldError, err)
			}
		}
	}
}

// watchLoop tracks the files seen by Watch and the changes waiting to be
// rendered.
type watchLoop struct {
	runner  *Runner
	opts    Options
	scope   *watchScope
	report  func(*Result)
	state   map[string]*fsutil.FileInfo
	pending map[string]struct{}
}

// handle applies one event and reports whether a file was queued.
func (w *watchLoop) handle(watcher *fsnotify.Watcher, ev fsnotify.Event) bool {
	path := filepath.Clean(ev.Name)
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}

	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		delete(w.state, path)
		delete(w.pending, path)
		return false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.scope.coversDir(path) {
				_ = w.scope.addTree(watcher, path)
			}
			return false
		}
	}

	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if !w.scope.covers(path) {
		return false
	}

	w.pending[path] = struct{}{}
	return true
}

// flush renders the queued files whose content actually changed.
func (w *watchLoop) flush(ctx context.Context) error {
	var changed []string
	for path := range w.pending {
		info, ok := w.state[path]
		if !ok {
			changed = append(changed, path)
			continue
		}
		ok, err := fsutil.Changed(ctx, info)
		if err == nil && ok {
			changed = append(changed, path)
		}
	}
	clear(w.pending)

	if len(changed) == 0 {
		return nil
	}
	slices.Sort(changed)

	opts := w.opts
	opts.Paths = changed
	result, err := w.runner.Run(ctx, opts)
	if err != nil {
		return err
	}
	w.remember(ctx, result.Files)
	w.report(result)
	return nil
}

// remember records the current state of each rendered file so later
// events can tell real edits from touches.
func (w *watchLoop) remember(ctx context.Context, files []FileOutcome) {
	for _, file := range files {
		_, info, err := fsutil.ReadFile(ctx, file.Path)
		if err != nil {
			delete(w.state, file.Path)
			continue
		}
		w.state[file.Path] = info
	}
}

// watchScope decides which paths a watch covers: explicitly named files,
// and the non-hidden, non-excluded Markdown files under named directories.
type watchScope struct {
	d     *discoverer
	roots []string
	files map[string]bool
}

func newWatchScope(opts Options) (*watchScope, error) {
	scope := &watchScope{
		d: &discoverer{
			workDir:    opts.WorkingDir,
			extensions: opts.extensions(),
			exclude:    opts.ExcludeGlobs,
			seen:       make(map[string]struct{}),
		},
		files: make(map[string]bool),
	}

	for _, input := range opts.paths() {
		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(opts.WorkingDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			scope.roots = append(scope.roots, abs)
		} else {
			scope.files[abs] = true
		}
	}
	return scope, nil
}

func (s *watchScope) addAll(watcher *fsnotify.Watcher) error {
	for _, root := range s.roots {
		if err := s.addTree(watcher, root); err != nil {
			return err
		}
	}
	for file := range s.files {
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(file), err)
		}
	}
	return nil
}

// addTree watches root and every non-hidden, non-excluded directory below it.
func (s *watchScope) addTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || s.d.excluded(path)) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

// coversDir reports whether dir lies inside a watched root.
func (s *watchScope) coversDir(dir string) bool {
	return slices.ContainsFunc(s.roots, func(root string) bool {
		return within(root, dir) && !s.d.excluded(dir)
	})
}

// covers reports whether a change to path should be rendered.
func (s *watchScope) covers(path string) bool {
	if s.files[path] {
		return !s.d.excluded(path)
	}
	if !hasExtension(path, s.d.extensions) || s.d.excluded(path) {
		return false
	}
	return slices.ContainsFunc(s.roots, func(root string) bool {
		return within(root, path)
	})
}

func (s *watchScope) describe() string {
	targets := slices.Clone(s.roots)
	for file := range s.files {
		targets = append(targets, file)
	}
	slices.Sort(targets)
	return strings.Join(targets, ", ")
}

// within reports whether path lies under root without crossing a hidden
// directory.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if segment != "." && strings.HasPrefix(segment, ".") {
			return false
		}
	}
	return true
}
