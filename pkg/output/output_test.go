package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/sizediff/pkg/diff"
	"github.com/sdejongh/sizediff/pkg/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{-2048, "-2.0 KiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		delta int64
		want  string
	}{
		{0, "0 B"},
		{200, "+200 B"},
		{-300, "-300 B"},
		{2048, "+2.0 KiB"},
	}

	for _, tt := range tests {
		if got := FormatDelta(tt.delta); got != tt.want {
			t.Errorf("FormatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

func sampleReport() *diff.Report {
	left := &models.Snapshot{
		Project:   "web",
		GitRef:    "main",
		Date:      "2024-01-01T00:00:00.000Z",
		BuildTime: &models.BuildTime{Seconds: 10},
		Total: map[string]models.CategoryTotal{
			"js":    {Files: 5, Size: 600, GzipSize: 300},
			"other": {Files: 5, Size: 400, GzipSize: 200},
			"all":   {Files: 10, Size: 1000, GzipSize: 500},
		},
		FsEntries: []models.FsEntry{
			{Path: "/a.js", Size: 1000, GzipSize: 500},
			{Path: "/old.js", Size: 300, GzipSize: 150},
		},
	}
	right := &models.Snapshot{
		Project:   "web",
		GitRef:    "feature",
		Date:      "2024-01-02T00:00:00.000Z",
		BuildTime: &models.BuildTime{Seconds: 12},
		Total: map[string]models.CategoryTotal{
			"js":    {Files: 6, Size: 700, GzipSize: 350},
			"other": {Files: 6, Size: 500, GzipSize: 250},
			"all":   {Files: 12, Size: 1200, GzipSize: 600},
		},
		FsEntries: []models.FsEntry{
			{Path: "/a.js", Size: 1200, GzipSize: 600},
			{Path: "/new.js", Size: 400, GzipSize: 200},
		},
	}
	return diff.Compare(left, right)
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(Options{NoColor: true, ShowFiles: true, Width: 80})

	if err := f.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"web@main 2024-01-01T00:00:00.000Z",
		"web@feature 2024-01-02T00:00:00.000Z",
		"Build is 2 seconds slower",
		"Category",
		"+100 B",
		"Other",
		"Total",
		"+200 B",
		"Files: 1 added, 1 removed, 1 modified",
		"+ /new.js  400 B (gzip 200 B)",
		"- /old.js  300 B (gzip 150 B)",
		"~ /a.js  +200 B (gzip +100 B)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "\x1b[") {
		t.Error("NoColor output should not contain escape sequences")
	}

	// Files are listed by path
	if strings.Index(out, "/a.js") > strings.Index(out, "/new.js") {
		t.Error("file changes should be sorted by path")
	}
}

func TestHumanFormatterHidesFiles(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(Options{NoColor: true, Width: 80})

	if err := f.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "/new.js") {
		t.Errorf("file list should be hidden:\n%s", buf.String())
	}
}

func TestHumanFormatterNoChanges(t *testing.T) {
	snap := &models.Snapshot{
		Project:   "web",
		Date:      "2024-01-01T00:00:00.000Z",
		Total:     map[string]models.CategoryTotal{"all": {Files: 1, Size: 1}},
		FsEntries: []models.FsEntry{{Path: "/a", Size: 1}},
	}

	var buf bytes.Buffer
	f := NewHumanFormatter(Options{NoColor: true, ShowFiles: true})
	if err := f.Render(&buf, diff.Compare(snap, snap)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No changes") {
		t.Errorf("output missing No changes:\n%s", out)
	}
	if !strings.Contains(out, "Build time is not available") {
		t.Errorf("output missing build time sentence:\n%s", out)
	}
}

func TestTruncatePath(t *testing.T) {
	long := "/assets/very/deeply/nested/directory/structure/chunk-abcdef.js"
	got := truncatePath(long, 20)
	if len([]rune(got)) != 20 {
		t.Errorf("truncatePath() length = %d, want 20: %q", len([]rune(got)), got)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "chunk-abcdef.js") {
		t.Errorf("truncatePath() = %q, want the tail of the path", got)
	}
	if truncatePath("/a.js", 20) != "/a.js" {
		t.Error("short paths should not change")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc struct {
		Identical  bool        `json:"identical"`
		HasChanges bool        `json:"hasChanges"`
		Summary    JSONSummary `json:"summary"`
		Left       diff.Side   `json:"left"`
		BuildTime  struct {
			Status       string `json:"status"`
			DeltaSeconds uint64 `json:"deltaSeconds"`
		} `json:"buildTime"`
		Categories struct {
			Rows []diff.DiffRow `json:"rows"`
		} `json:"categories"`
		Files struct {
			Entries []diff.FileDiffEntry `json:"entries"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if doc.Identical {
		t.Error("identical = true, want false")
	}
	if !doc.HasChanges {
		t.Error("hasChanges = false, want true")
	}
	if doc.Summary != (JSONSummary{Added: 1, Removed: 1, Modified: 1}) {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if doc.Left.Label != "web@main" {
		t.Errorf("left label = %q", doc.Left.Label)
	}
	if doc.BuildTime.Status != "slower" || doc.BuildTime.DeltaSeconds != 2 {
		t.Errorf("buildTime = %+v", doc.BuildTime)
	}
	if len(doc.Categories.Rows) != 1 || doc.Categories.Rows[0].SizeDelta != 100 {
		t.Errorf("rows = %+v", doc.Categories.Rows)
	}
	if len(doc.Files.Entries) != 3 {
		t.Errorf("entries = %+v", doc.Files.Entries)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"human", "human", false},
		{"", "human", false},
		{"json", "json", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.name, Options{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && f.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.wantName)
			}
		})
	}
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReportFile(sampleReport(), path, NewJSONFormatter()); err != nil {
		t.Fatalf("WriteReportFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("report file is not valid JSON:\n%s", data)
	}
}

func TestMeasureProgressDisabledForBuffers(t *testing.T) {
	var buf bytes.Buffer
	p := NewMeasureProgress(&buf, true)

	p.Start(10)
	for i := 0; i < 10; i++ {
		p.Increment()
	}
	p.Finish()

	if buf.Len() != 0 {
		t.Errorf("progress wrote to a non-terminal writer: %q", buf.String())
	}
}
