// Package output renders snapshot comparisons for people and machines.
package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/sizediff/pkg/diff"
)

// Formatter defines the interface for report rendering
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Render writes the full report
	Render(w io.Writer, report *diff.Report) error

	// Name returns the formatter name
	Name() string
}

// Options control the human formatter
type Options struct {
	NoColor   bool
	ShowFiles bool
	// Width limits line length; 0 detects the terminal width
	Width int
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string, opts Options) (Formatter, error) {
	switch name {
	case "human", "":
		return NewHumanFormatter(opts), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected human or json)", name)
	}
}
