package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/sizediff/pkg/diff"
)

// JSONFormatter formats the report as indented JSON
type JSONFormatter struct{}

// JSONReport is the document written by JSONFormatter
type JSONReport struct {
	*diff.Report
	Identical  bool        `json:"identical"`
	HasChanges bool        `json:"hasChanges"`
	Summary    JSONSummary `json:"summary"`
}

// JSONSummary counts file changes by type
type JSONSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Render writes the report as a single JSON document
func (f *JSONFormatter) Render(w io.Writer, report *diff.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(JSONReport{
		Report:     report,
		Identical:  report.Identical(),
		HasChanges: report.HasChanges(),
		Summary: JSONSummary{
			Added:    report.Files.Count(diff.Added),
			Removed:  report.Files.Count(diff.Removed),
			Modified: report.Files.Count(diff.Modified),
		},
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
