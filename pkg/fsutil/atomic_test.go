package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcard/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rel      string
		existing string
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file", rel: "index.html", mode: 0o644, wantMode: 0o644},
		{name: "replaces existing", rel: "index.html", existing: "<p>old</p>", mode: 0o644, wantMode: 0o644},
		{name: "explicit mode", rel: "index.html", mode: 0o600, wantMode: 0o600},
		{name: "zero mode", rel: "index.html", wantMode: fsutil.DefaultFileMode},
		{name: "nested output", rel: filepath.Join("site", "guides", "index.html"), wantMode: fsutil.DefaultFileMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, tt.rel)
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			content := []byte("<div class=\"card\"></div>\n")
			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, content, tt.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, got)

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, stat.Mode().Perm())

			siblings, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, siblings, 1, "temp file left beside output")
		})
	}
}

func TestWriteAtomic_Failures(t *testing.T) {
	t.Parallel()

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := fsutil.WriteAtomic(context.Background(), filepath.Join(blocker, "index.html"), []byte("x"), 0)
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "index.html")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		existing    *string
		content     string
		wantWritten bool
	}{
		{name: "missing output", content: "<p>a</p>", wantWritten: true},
		{name: "identical output", existing: ptr("<p>a</p>"), content: "<p>a</p>", wantWritten: false},
		{name: "different output", existing: ptr("<p>a</p>"), content: "<p>b</p>", wantWritten: true},
		{name: "empty rendering over content", existing: ptr("<p>a</p>"), content: "", wantWritten: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "index.html")
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.existing), 0o644))
			}

			written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte(tt.content), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWritten, written)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))
		})
	}
}

func TestWriteAtomicIfChanged_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fsutil.WriteAtomicIfChanged(ctx, filepath.Join(t.TempDir(), "index.html"), []byte("x"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func ptr(s string) *string { return &s }
