package diff

import "github.com/sdejongh/sizediff/pkg/models"

// Side describes one snapshot of a report
type Side struct {
	Project string `json:"project"`
	GitRef  string `json:"gitRef,omitempty"`
	Date    string `json:"date"`
	Label   string `json:"label"`
}

// Report bundles every comparison between two snapshots
type Report struct {
	Left       Side          `json:"left"`
	Right      Side          `json:"right"`
	BuildTime  BuildTimeDiff `json:"buildTime"`
	Categories CategoryDiff  `json:"categories"`
	Files      FileTreeDiff  `json:"files"`
}

// Compare runs the three differs on two loaded snapshots
func Compare(left, right *models.Snapshot) *Report {
	return &Report{
		Left:       sideOf(left),
		Right:      sideOf(right),
		BuildTime:  BuildTime(left.BuildTime, right.BuildTime),
		Categories: Categories(left.Total, right.Total),
		Files:      FileTree(left.FsEntries, right.FsEntries),
	}
}

func sideOf(s *models.Snapshot) Side {
	return Side{
		Project: s.Project,
		GitRef:  s.GitRef,
		Date:    s.Date,
		Label:   s.Label(),
	}
}

// Identical reports whether both the totals and the file trees are equal.
// Build time is ignored since it varies between otherwise identical builds.
func (r *Report) Identical() bool {
	return r.Categories.Identical && r.Files.Identical
}

// HasChanges reports whether any size or file count differs
func (r *Report) HasChanges() bool {
	return len(r.Files.Entries) > 0 || r.Categories.HasChanges()
}
