// Package mdast provides the Markdown AST used by mdcard.
// It defines a mutable tree of typed nodes plus an immutable view of the
// source file the tree was parsed from:
// - FileSnapshot: the source bytes, line index and AST root
// - Node: a tagged union discriminated by NodeKind
// - predicates, builders and walkers over the tree
package mdast

import (
	"bytes"
	"sort"
)

// FileSnapshot is a view of a Markdown file at a specific time.
type FileSnapshot struct {
	// Path is the file path. Empty for stdin and in-memory content.
	Path string

	// Content is the full file bytes.
	Content []byte

	// Root is the AST root node (Document).
	Root *Node

	// lineStarts holds the byte offset of every line start.
	lineStarts []int
}

// NewFileSnapshot creates a snapshot of content and indexes its lines.
// Root is left for the parser to fill in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:       path,
		Content:    content,
		lineStarts: indexLines(content),
	}
}

// indexLines returns the offset of each line start. A trailing newline
// ends the last line rather than starting an empty one.
func indexLines(content []byte) []int {
	if len(content) == 0 {
		return nil
	}

	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.lineStarts)
}

// LineAt converts a byte offset to a 1-based line and byte column.
// Returns (0, 0) when the offset lies outside the content.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(f.Content) || len(f.lineStarts) == 0 {
		return 0, 0
	}

	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	}) - 1

	return idx + 1, offset - f.lineStarts[idx] + 1
}

// Line returns the text of a 1-based line without its line ending.
// Returns nil when line is out of range.
func (f *FileSnapshot) Line(line int) []byte {
	if line < 1 || line > len(f.lineStarts) {
		return nil
	}

	start := f.lineStarts[line-1]
	end := len(f.Content)
	if line < len(f.lineStarts) {
		end = f.lineStarts[line]
	}
	return bytes.TrimRight(f.Content[start:end], "\r\n")
}
