package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// compareOutput reports whether the file at output differs from data and
// returns a unified diff from the current file to data. A missing output
// file is stale and diffs against empty content.
func compareOutput(ctx context.Context, output string, data []byte) (bool, string, error) {
	if err := ctx.Err(); err != nil {
		return false, "", fmt.Errorf("check %s: %w", output, err)
	}

	current, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, "", fmt.Errorf("check %s: %w", output, err)
	}
	if err == nil && bytes.Equal(current, data) {
		return false, "", nil
	}

	diff, err := UnifiedDiff(output, current, data)
	if err != nil {
		return true, "", err
	}
	return true, diff, nil
}

// UnifiedDiff returns a git-style unified diff turning before into after.
// Both sides are labelled with path. Returns "" when the inputs are equal.
func UnifiedDiff(path string, before, after []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return difflib.SplitLines(string(content))
}
