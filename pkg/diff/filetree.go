// Package diff compares two snapshots: their file trees, their category
// totals and their build times.
package diff

import (
	"slices"
	"sort"

	"github.com/sdejongh/sizediff/pkg/models"
)

// ChangeType classifies a file tree entry
type ChangeType string

const (
	// Added entries exist only in the right snapshot
	Added ChangeType = "added"
	// Removed entries exist only in the left snapshot
	Removed ChangeType = "removed"
	// Modified entries exist in both snapshots with a different size
	Modified ChangeType = "modified"
)

// FileDiffEntry is one changed path.
// For added and removed entries the deltas hold the absolute sizes of the
// side where the path exists; for modified entries they are right minus left.
type FileDiffEntry struct {
	Type      ChangeType `json:"type"`
	Path      string     `json:"path"`
	SizeDelta int64      `json:"sizeDelta"`
	GzipDelta int64      `json:"gzipDelta"`
}

// FileTreeDiff is the result of FileTree
type FileTreeDiff struct {
	// Identical is set when both inputs are equal entry by entry.
	// It is never set after a full comparison, even one that found nothing.
	Identical bool `json:"identical"`

	// Entries are ordered added, removed, then modified
	Entries []FileDiffEntry `json:"entries"`
}

// FileTree classifies every path of two flattened entry lists.
// Directory summaries and files are compared alike. Only the raw size
// triggers a modification; a gzip-only change is not reported. When a path
// appears more than once on one side, its first occurrence is used.
func FileTree(left, right []models.FsEntry) FileTreeDiff {
	if slices.Equal(left, right) {
		return FileTreeDiff{Identical: true, Entries: []FileDiffEntry{}}
	}

	leftIndex := indexByPath(left)
	rightIndex := indexByPath(right)
	seen := make(map[string]bool, len(left)+len(right))
	entries := []FileDiffEntry{}

	for _, r := range right {
		if _, ok := leftIndex[r.Path]; ok || seen[r.Path] {
			continue
		}
		seen[r.Path] = true
		entries = append(entries, FileDiffEntry{
			Type:      Added,
			Path:      r.Path,
			SizeDelta: r.Size,
			GzipDelta: r.GzipSize,
		})
	}

	for _, l := range left {
		if _, ok := rightIndex[l.Path]; ok || seen[l.Path] {
			continue
		}
		seen[l.Path] = true
		entries = append(entries, FileDiffEntry{
			Type:      Removed,
			Path:      l.Path,
			SizeDelta: l.Size,
			GzipDelta: l.GzipSize,
		})
	}

	for _, l := range left {
		r, ok := rightIndex[l.Path]
		if !ok || seen[l.Path] {
			continue
		}
		seen[l.Path] = true
		if r.Size == l.Size {
			continue
		}
		entries = append(entries, FileDiffEntry{
			Type:      Modified,
			Path:      l.Path,
			SizeDelta: r.Size - l.Size,
			GzipDelta: r.GzipSize - l.GzipSize,
		})
	}

	return FileTreeDiff{Entries: entries}
}

func indexByPath(entries []models.FsEntry) map[string]models.FsEntry {
	index := make(map[string]models.FsEntry, len(entries))
	for _, e := range entries {
		if _, ok := index[e.Path]; !ok {
			index[e.Path] = e
		}
	}
	return index
}

// SortedByPath returns a copy of the entries sorted by path
func (d FileTreeDiff) SortedByPath() []FileDiffEntry {
	sorted := make([]FileDiffEntry, len(d.Entries))
	copy(sorted, d.Entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// Count returns the number of entries of the given type
func (d FileTreeDiff) Count(t ChangeType) int {
	n := 0
	for _, e := range d.Entries {
		if e.Type == t {
			n++
		}
	}
	return n
}
