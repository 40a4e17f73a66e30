package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Reserved category names
const (
	// CategoryAll aggregates every file of every directory
	CategoryAll = "all"
	// CategoryOther is all minus the explicit categories
	CategoryOther = "other"
)

// DateLayout is the ISO-8601 UTC layout used for snapshot dates
const DateLayout = "2006-01-02T15:04:05.000Z"

// CategoryTotal aggregates the files of one category.
// Values are signed because the derived "other" total can go negative
// when explicit categories overlap.
type CategoryTotal struct {
	Files    int64 `json:"files"`
	Size     int64 `json:"size"`
	GzipSize int64 `json:"gzipSize"`
}

// Add returns the field-wise sum
func (t CategoryTotal) Add(o CategoryTotal) CategoryTotal {
	return CategoryTotal{
		Files:    t.Files + o.Files,
		Size:     t.Size + o.Size,
		GzipSize: t.GzipSize + o.GzipSize,
	}
}

// Sub returns the field-wise difference
func (t CategoryTotal) Sub(o CategoryTotal) CategoryTotal {
	return CategoryTotal{
		Files:    t.Files - o.Files,
		Size:     t.Size - o.Size,
		GzipSize: t.GzipSize - o.GzipSize,
	}
}

// BuildTime is a build duration split into whole seconds and nanoseconds.
// It is serialized as a two element array [seconds, nanoseconds].
type BuildTime struct {
	Seconds     uint64
	Nanoseconds uint64
}

// NewBuildTime converts a duration into a BuildTime
func NewBuildTime(d time.Duration) *BuildTime {
	if d < 0 {
		d = 0
	}
	return &BuildTime{
		Seconds:     uint64(d / time.Second),
		Nanoseconds: uint64(d % time.Second),
	}
}

// TotalSeconds returns seconds + nanoseconds/1e9
func (b BuildTime) TotalSeconds() float64 {
	return float64(b.Seconds) + float64(b.Nanoseconds)/1e9
}

// RoundedSeconds rounds the duration to the nearest whole second
func (b BuildTime) RoundedSeconds() uint64 {
	return uint64(math.Round(b.TotalSeconds()))
}

// MarshalJSON encodes the pair as [seconds, nanoseconds]
func (b BuildTime) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{b.Seconds, b.Nanoseconds})
}

// UnmarshalJSON decodes a [seconds, nanoseconds] pair
func (b *BuildTime) UnmarshalJSON(data []byte) error {
	var pair []uint64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("build time must be a [seconds, nanoseconds] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("build time must have 2 elements, got %d", len(pair))
	}
	b.Seconds = pair[0]
	b.Nanoseconds = pair[1]
	return nil
}

// Snapshot is one measurement of a build output directory
type Snapshot struct {
	// Project is the package name, "unknown" when unavailable
	Project string `json:"project"`

	// GitRef is the branch name or abbreviated commit, omitted outside a repository
	GitRef string `json:"gitRef,omitempty"`

	// Date is the completion time formatted with DateLayout
	Date string `json:"date"`

	// BuildTime is nil when no build was run
	BuildTime *BuildTime `json:"buildTime"`

	// Total maps category names (including "all" and "other") to their totals
	Total map[string]CategoryTotal `json:"total"`

	// FsEntries lists each directory summary followed by its files
	FsEntries []FsEntry `json:"fsEntries"`
}

// Label returns "project@gitRef", or the project alone when there is no ref
func (s *Snapshot) Label() string {
	if s.GitRef == "" {
		return s.Project
	}
	return s.Project + "@" + s.GitRef
}
