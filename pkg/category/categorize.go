// Package category groups measured files into named categories and derives
// the "all" and "other" totals stored in a snapshot.
package category

import (
	"fmt"
	"sort"

	"github.com/sdejongh/sizediff/pkg/models"
)

// Category is a named file classification rule
type Category struct {
	Name    string
	Matcher Matcher
}

// Compile builds a category from a name and a pattern
func Compile(name, pattern string) (Category, error) {
	if IsReserved(name) {
		return Category{}, fmt.Errorf("category name %q is reserved", name)
	}
	m, err := NewMatcher(pattern)
	if err != nil {
		return Category{}, fmt.Errorf("category %q: %w", name, err)
	}
	return Category{Name: name, Matcher: m}, nil
}

// CompileAll compiles a name to pattern mapping into categories sorted by name
func CompileAll(patterns map[string]string) ([]Category, error) {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := Compile(name, patterns[name])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// IsReserved reports whether name is one of the derived totals
func IsReserved(name string) bool {
	return name == models.CategoryAll || name == models.CategoryOther
}

// Categorize aggregates the files of every directory per category.
// Categories are independent: a file matching several categories counts in
// each of them. "all" covers every file; "other" is all minus the sum of the
// explicit categories and is only present when at least one category exists.
func Categorize(dirs []models.DirectoryEntry, categories []Category) map[string]models.CategoryTotal {
	total := make(map[string]models.CategoryTotal, len(categories)+2)

	var explicit models.CategoryTotal
	for _, c := range categories {
		var sum models.CategoryTotal
		for _, dir := range dirs {
			sum = sum.Add(aggregate(dir.Files, c.Matcher))
		}
		total[c.Name] = sum
		explicit = explicit.Add(sum)
	}

	var all models.CategoryTotal
	for _, dir := range dirs {
		all = all.Add(aggregate(dir.Files, nil))
	}
	total[models.CategoryAll] = all

	if len(categories) > 0 {
		total[models.CategoryOther] = all.Sub(explicit)
	}

	return total
}

// aggregate sums the files accepted by m; a nil matcher accepts every file
func aggregate(files []models.FileEntry, m Matcher) models.CategoryTotal {
	var t models.CategoryTotal
	for _, f := range files {
		if m != nil && !m.Match(f.Path) {
			continue
		}
		t.Files++
		t.Size += f.Size
		t.GzipSize += f.GzipSize
	}
	return t
}

// OverlapWarnings lists the fields of "other" that went negative, which only
// happens when explicit categories overlap
func OverlapWarnings(total map[string]models.CategoryTotal) []string {
	other, ok := total[models.CategoryOther]
	if !ok {
		return nil
	}

	var fields []string
	if other.Files < 0 {
		fields = append(fields, "files")
	}
	if other.Size < 0 {
		fields = append(fields, "size")
	}
	if other.GzipSize < 0 {
		fields = append(fields, "gzipSize")
	}
	return fields
}
