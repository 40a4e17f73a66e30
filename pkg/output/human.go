package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sdejongh/sizediff/pkg/diff"
)

const defaultWidth = 120

// HumanFormatter renders a colored table of category deltas followed by
// the changed files
type HumanFormatter struct {
	opts     Options
	increase *color.Color
	decrease *color.Color
	header   *color.Color
	faint    *color.Color
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(opts Options) *HumanFormatter {
	f := &HumanFormatter{
		opts:     opts,
		increase: color.New(color.FgRed),
		decrease: color.New(color.FgGreen),
		header:   color.New(color.Bold),
		faint:    color.New(color.Faint),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{f.increase, f.decrease, f.header, f.faint} {
			c.DisableColor()
		}
	}
	return f
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// Render writes the report
func (f *HumanFormatter) Render(w io.Writer, report *diff.Report) error {
	width := f.opts.Width
	if width <= 0 {
		width = terminalWidth(w)
	}

	fmt.Fprintf(w, "%s %s\n", f.header.Sprint("Left: "), describeSide(report.Left))
	fmt.Fprintf(w, "%s %s\n", f.header.Sprint("Right:"), describeSide(report.Right))
	fmt.Fprintf(w, "\n%s\n\n", report.BuildTime.String())

	if report.Identical() {
		fmt.Fprintln(w, "No changes")
		return nil
	}

	f.renderCategories(w, report.Categories)

	if f.opts.ShowFiles {
		fmt.Fprintln(w)
		f.renderFiles(w, report.Files, width)
	}

	return nil
}

func describeSide(s diff.Side) string {
	if s.Date == "" {
		return s.Label
	}
	return s.Label + " " + s.Date
}

var categoryColumns = []string{"Category", "Left", "Right", "Size", "Gzip", "Files"}

func (f *HumanFormatter) renderCategories(w io.Writer, cd diff.CategoryDiff) {
	rows := make([]diff.DiffRow, 0, len(cd.Rows)+2)
	rows = append(rows, cd.Rows...)
	if cd.Other != nil {
		rows = append(rows, *cd.Other)
	}
	if cd.Total != nil {
		rows = append(rows, *cd.Total)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No categories in common")
		return
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(categoryColumns))
	for i, c := range categoryColumns {
		widths[i] = len(c)
	}
	for i, row := range rows {
		cells[i] = []string{
			rowName(row.Name),
			FormatBytes(row.Left.Size),
			FormatBytes(row.Right.Size),
			FormatDelta(row.SizeDelta),
			FormatDelta(row.GzipDelta),
			formatCount(row.FilesDelta),
		}
		for j, cell := range cells[i] {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	header := make([]string, len(categoryColumns))
	for i, c := range categoryColumns {
		header[i] = pad(c, widths[i], i > 0)
	}
	fmt.Fprintln(w, f.header.Sprint(strings.Join(header, "  ")))

	separatorAt := len(cd.Rows)
	for i, row := range rows {
		if i == separatorAt && separatorAt > 0 {
			fmt.Fprintln(w, f.faint.Sprint(strings.Repeat("-", sum(widths)+2*(len(widths)-1))))
		}
		line := make([]string, len(cells[i]))
		for j, cell := range cells[i] {
			line[j] = pad(cell, widths[j], j > 0)
		}
		line[3] = f.colorize(row.SizeDelta, line[3])
		line[4] = f.colorize(row.GzipDelta, line[4])
		line[5] = f.colorize(row.FilesDelta, line[5])
		fmt.Fprintln(w, strings.Join(line, "  "))
	}
}

func rowName(name string) string {
	switch name {
	case "all":
		return "Total"
	case "other":
		return "Other"
	default:
		return name
	}
}

func (f *HumanFormatter) renderFiles(w io.Writer, fd diff.FileTreeDiff, width int) {
	if len(fd.Entries) == 0 {
		fmt.Fprintln(w, "No file changes")
		return
	}

	fmt.Fprintln(w, f.header.Sprintf("Files: %d added, %d removed, %d modified",
		fd.Count(diff.Added), fd.Count(diff.Removed), fd.Count(diff.Modified)))

	for _, e := range fd.SortedByPath() {
		var marker, sizes string
		var c *color.Color
		switch e.Type {
		case diff.Added:
			marker, c = "+", f.increase
			sizes = fmt.Sprintf("%s (gzip %s)", FormatBytes(e.SizeDelta), FormatBytes(e.GzipDelta))
		case diff.Removed:
			marker, c = "-", f.decrease
			sizes = fmt.Sprintf("%s (gzip %s)", FormatBytes(e.SizeDelta), FormatBytes(e.GzipDelta))
		default:
			marker = "~"
			c = f.increase
			if e.SizeDelta < 0 {
				c = f.decrease
			}
			sizes = fmt.Sprintf("%s (gzip %s)", FormatDelta(e.SizeDelta), FormatDelta(e.GzipDelta))
		}

		path := truncatePath(e.Path, width-len(sizes)-4)
		fmt.Fprintf(w, "%s %s  %s\n", c.Sprint(marker), path, c.Sprint(sizes))
	}
}

func (f *HumanFormatter) colorize(delta int64, s string) string {
	switch {
	case delta > 0:
		return f.increase.Sprint(s)
	case delta < 0:
		return f.decrease.Sprint(s)
	default:
		return s
	}
}

// pad pads plain text to width, right-aligned for numeric columns
func pad(s string, width int, right bool) string {
	if right {
		return fmt.Sprintf("%*s", width, s)
	}
	return fmt.Sprintf("%-*s", width, s)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// truncatePath keeps the end of a path, which carries the file name
func truncatePath(path string, max int) string {
	runes := []rune(path)
	if max < 8 || len(runes) <= max {
		return path
	}
	return "..." + string(runes[len(runes)-max+3:])
}

// terminalWidth returns the width of w when it is a terminal
func terminalWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	// Default to 120 if we couldn't detect (pipe, redirect, etc.)
	return defaultWidth
}
