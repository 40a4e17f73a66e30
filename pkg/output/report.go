package output

import (
	"os"

	"github.com/sdejongh/sizediff/pkg/diff"
	"github.com/sdejongh/sizediff/pkg/models"
)

// WriteReportFile renders the report into a file, replacing any existing one
func WriteReportFile(report *diff.Report, path string, formatter Formatter) error {
	file, err := os.Create(path)
	if err != nil {
		return &models.FileSystemError{Op: "create", Path: path, Err: err}
	}
	defer file.Close()

	if err := formatter.Render(file, report); err != nil {
		return &models.FileSystemError{Op: "write", Path: path, Err: err}
	}
	return file.Close()
}
