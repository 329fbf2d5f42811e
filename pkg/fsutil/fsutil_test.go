package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/mdcard/pkg/fsutil"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		content := ":::card\n![a](b.png)\ntext\n:::\n"
		path := writeSource(t, content)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != content {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Mode.Perm() != 0o644 {
			t.Errorf("Mode = %o, want %o", info.Mode.Perm(), 0o644)
		}

		var zero [32]byte
		if info.Hash == zero {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "one")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info)
		if err != nil {
			t.Fatalf("Changed() error = %v", err)
		}
		if changed {
			t.Error("expected unchanged")
		}
	})

	t.Run("rewritten with same bytes", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "same")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		later := info.ModTime.Add(2 * time.Second)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info)
		if err != nil {
			t.Fatalf("Changed() error = %v", err)
		}
		if changed {
			t.Error("touching a file without editing it should not count as a change")
		}
	})

	t.Run("edited content", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "aaaa")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("bbbb"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		later := info.ModTime.Add(2 * time.Second)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info)
		if err != nil {
			t.Fatalf("Changed() error = %v", err)
		}
		if !changed {
			t.Error("expected changed after same-size edit")
		}
	})

	t.Run("size differs", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "short")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("a good deal longer"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info)
		if err != nil {
			t.Fatalf("Changed() error = %v", err)
		}
		if !changed {
			t.Error("expected changed after resize")
		}
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "gone")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info)
		if err != nil {
			t.Fatalf("Changed() error = %v", err)
		}
		if !changed {
			t.Error("expected deleted file to count as changed")
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.Changed(context.Background(), nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Fatalf("error = %v, want ErrNilFileInfo", err)
		}
	})
}
