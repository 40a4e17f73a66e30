package diff

import (
	"maps"
	"sort"

	"github.com/sdejongh/sizediff/pkg/models"
)

// DiffRow compares one category between two snapshots
type DiffRow struct {
	Name       string               `json:"name"`
	Left       models.CategoryTotal `json:"leftTotal"`
	Right      models.CategoryTotal `json:"rightTotal"`
	SizeDelta  int64                `json:"sizeDelta"`
	GzipDelta  int64                `json:"gzipDelta"`
	FilesDelta int64                `json:"filesDelta"`
	HasChanges bool                 `json:"hasChanges"`
}

// CategoryDiff is the result of Categories
type CategoryDiff struct {
	// Identical is set when both total maps are equal
	Identical bool `json:"identical"`

	// Rows holds explicit categories present on both sides, sorted by name
	Rows []DiffRow `json:"rows"`

	// Other and Total are nil when a side lacks the reserved total
	Other *DiffRow `json:"other,omitempty"`
	Total *DiffRow `json:"total,omitempty"`
}

// Categories compares the totals of two snapshots.
// Categories present on only one side are skipped.
func Categories(left, right map[string]models.CategoryTotal) CategoryDiff {
	if maps.Equal(left, right) {
		return CategoryDiff{Identical: true, Rows: []DiffRow{}}
	}

	names := make([]string, 0, len(left))
	for name := range left {
		if name == models.CategoryAll || name == models.CategoryOther {
			continue
		}
		if _, ok := right[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := CategoryDiff{Rows: make([]DiffRow, 0, len(names))}
	for _, name := range names {
		result.Rows = append(result.Rows, NewDiffRow(name, left[name], right[name]))
	}

	result.Other = reservedRow(models.CategoryOther, left, right)
	result.Total = reservedRow(models.CategoryAll, left, right)

	return result
}

func reservedRow(name string, left, right map[string]models.CategoryTotal) *DiffRow {
	l, lok := left[name]
	r, rok := right[name]
	if !lok || !rok {
		return nil
	}
	row := NewDiffRow(name, l, r)
	return &row
}

// NewDiffRow computes the right minus left deltas of one category
func NewDiffRow(name string, left, right models.CategoryTotal) DiffRow {
	delta := right.Sub(left)
	return DiffRow{
		Name:       name,
		Left:       left,
		Right:      right,
		SizeDelta:  delta.Size,
		GzipDelta:  delta.GzipSize,
		FilesDelta: delta.Files,
		HasChanges: delta != models.CategoryTotal{},
	}
}

// HasChanges reports whether any row, including other and total, changed
func (d CategoryDiff) HasChanges() bool {
	for _, row := range d.Rows {
		if row.HasChanges {
			return true
		}
	}
	return (d.Other != nil && d.Other.HasChanges) || (d.Total != nil && d.Total.HasChanges)
}
