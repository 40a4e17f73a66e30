package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

const progressTemplate pb.ProgressBarTemplate = `{{string . "prefix"}} {{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{etime . }}`

// MeasureProgress shows a progress bar while files are measured.
// It does nothing when disabled or when the writer is not a terminal.
type MeasureProgress struct {
	writer  io.Writer
	enabled bool
	bar     *pb.ProgressBar
}

// NewMeasureProgress creates a progress bar writing to w
func NewMeasureProgress(w io.Writer, enabled bool) *MeasureProgress {
	return &MeasureProgress{
		writer:  w,
		enabled: enabled && IsTerminal(w),
	}
}

// Start begins the bar for totalFiles files
func (p *MeasureProgress) Start(totalFiles int) {
	if !p.enabled || totalFiles == 0 {
		return
	}
	p.bar = progressTemplate.New(totalFiles)
	p.bar.SetWriter(p.writer)
	p.bar.Set("prefix", "Measuring")
	p.bar.Start()
}

// Increment advances the bar by one file
func (p *MeasureProgress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops the bar
func (p *MeasureProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
