package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdcard/pkg/runner"
)

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layout(t, dir, map[string]string{"fresh.md": validCard, "stale.md": validCard, "missing.md": validCard})

	if _, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stalePath := filepath.Join(dir, "stale.html")
	if err := os.WriteFile(stalePath, []byte("<p>old</p>\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "missing.html")); err != nil {
		t.Fatal(err)
	}

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Check: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesStale != 2 || result.Stats.FilesUnchanged != 1 {
		t.Errorf("Stats = %+v, want 2 stale and 1 unchanged", result.Stats)
	}
	if !result.HasStale() {
		t.Error("HasStale() = false, want true")
	}

	byName := map[string]runner.FileOutcome{}
	for _, outcome := range result.Files {
		byName[filepath.Base(outcome.Path)] = outcome
	}

	if got := byName["fresh.md"]; got.Stale || got.Diff != "" {
		t.Errorf("fresh.md = %+v, want up to date", got)
	}

	stale := byName["stale.md"]
	if !stale.Stale || stale.Written {
		t.Errorf("stale.md = %+v, want stale and not written", stale)
	}
	if !strings.Contains(stale.Diff, "-<p>old</p>") || !strings.Contains(stale.Diff, "+<div class=\"feature\">") {
		t.Errorf("stale.md diff:\n%s", stale.Diff)
	}

	if got := readString(t, stalePath); got != "<p>old</p>\n" {
		t.Errorf("check mode rewrote stale.html: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.html")); !os.IsNotExist(err) {
		t.Error("check mode should not create missing outputs")
	}
	if !byName["missing.md"].Stale {
		t.Error("missing output should be stale")
	}
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	diff, err := runner.UnifiedDiff("page.html", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	if err != nil {
		t.Fatalf("UnifiedDiff() error = %v", err)
	}
	for _, want := range []string{"--- a/page.html", "+++ b/page.html", "-b\n", "+B\n", " a\n"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}

	same, err := runner.UnifiedDiff("page.html", []byte("x\n"), []byte("x\n"))
	if err != nil {
		t.Fatalf("UnifiedDiff() error = %v", err)
	}
	if same != "" {
		t.Errorf("equal inputs diff = %q, want empty", same)
	}
}
