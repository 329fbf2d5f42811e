package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/mdcard/pkg/runner"
)

// layout creates files (slash-separated, relative to dir) with content.
func layout(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func discoverRel(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return relAll(t, dir, files)
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()

	if !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"cards.md": "", "other.md": ""})

	assertFiles(t, discoverRel(t, dir, runner.Options{Paths: []string{"cards.md"}}), []string{"cards.md"})
}

func TestDiscover_SingleFileWrongExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"notes.txt": ""})

	assertFiles(t, discoverRel(t, dir, runner.Options{Paths: []string{"notes.txt"}}), []string{})
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{
		"index.md":           "",
		"docs/guide.md":      "",
		"docs/api.markdown":  "",
		"docs/index.html":    "",
		"src/main.go":        "",
		"gallery/README.MD":  "",
		"gallery/photos.txt": "",
	})

	assertFiles(t, discoverRel(t, dir, runner.Options{}), []string{
		"docs/api.markdown",
		"docs/guide.md",
		"gallery/README.MD",
		"index.md",
	})
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"a.md": "", "b.mdx": ""})

	assertFiles(t, discoverRel(t, dir, runner.Options{Extensions: []string{".mdx"}}), []string{"b.mdx"})
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{
		"index.md":                   "",
		"vendor/pkg/doc.md":          "",
		"node_modules/lib/readme.md": "",
		"docs/drafts/wip.md":         "",
		"docs/guide.md":              "",
		"docs/CHANGELOG.md":          "",
	})

	got := discoverRel(t, dir, runner.Options{
		ExcludeGlobs: []string{"vendor/**", "node_modules/**", "**/drafts", "CHANGELOG.md"},
	})
	assertFiles(t, got, []string{"docs/guide.md", "index.md"})
}

func TestDiscover_HiddenEntriesAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{
		"visible.md":         "",
		".hidden.md":         "",
		".git/info.md":       "",
		"docs/.cache/old.md": "",
	})

	assertFiles(t, discoverRel(t, dir, runner.Options{}), []string{"visible.md"})
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"b.md": "", "a.md": "", "sub/c.md": ""})

	got := discoverRel(t, dir, runner.Options{Paths: []string{"sub", "b.md", ".", "a.md"}})
	assertFiles(t, got, []string{"a.md", "b.md", "sub/c.md"})
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"a.md": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"real/doc.md": ""})

	external := t.TempDir()
	layout(t, external, map[string]string{"external.md": ""})

	if err := os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "nowhere.md"), filepath.Join(dir, "broken.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	assertFiles(t, discoverRel(t, dir, runner.Options{}), []string{"link.md", "real/doc.md"})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	found := slices.ContainsFunc(files, func(f string) bool {
		return strings.HasSuffix(f, "external.md")
	})
	if len(files) != 3 || !found {
		t.Errorf("expected the linked directory to be followed, got %v", files)
	}
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"vendor", "vendor/**", true},
		{"vendor/a/b.md", "vendor/**", true},
		{"docs/vendor/b.md", "vendor/**", false},
		{"docs/drafts", "**/drafts", true},
		{"drafts", "**/drafts", true},
		{"docs/guide.md", "docs/**/*.md", true},
		{"docs/a/b/guide.md", "docs/**/*.md", true},
		{"blog/guide.md", "docs/**/*.md", false},
		{"docs/CHANGELOG.md", "CHANGELOG.md", true},
		{"docs/CHANGELOG.md", "other/CHANGELOG.md", false},
		{"notes.md", "*.md", true},
		{"a/b/notes.md", "a/*.md", false},
		{"anything/at/all", "**", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			if got := runner.MatchGlob(tt.path, tt.pattern); got != tt.want {
				t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestValidGlob(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"*.md", "vendor/**", "**/drafts", "docs/[a-z]*.md"} {
		if !runner.ValidGlob(pattern) {
			t.Errorf("ValidGlob(%q) = false, want true", pattern)
		}
	}
	for _, pattern := range []string{"[unclosed", "docs/[z-a"} {
		if runner.ValidGlob(pattern) {
			t.Errorf("ValidGlob(%q) = true, want false", pattern)
		}
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assertFiles(t, runner.DefaultExtensions(), []string{".md", ".markdown"})
}
