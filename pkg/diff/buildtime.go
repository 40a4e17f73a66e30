package diff

import (
	"fmt"

	"github.com/sdejongh/sizediff/pkg/models"
)

// BuildTimeStatus classifies a build time comparison
type BuildTimeStatus string

const (
	// BuildTimeMissing means at least one snapshot has no build time
	BuildTimeMissing BuildTimeStatus = "missing"
	// BuildTimeEqual means both round to the same second
	BuildTimeEqual BuildTimeStatus = "equal"
	// BuildTimeFaster means the right build was faster
	BuildTimeFaster BuildTimeStatus = "faster"
	// BuildTimeSlower means the right build was slower
	BuildTimeSlower BuildTimeStatus = "slower"
)

// BuildTimeDiff compares build durations in whole seconds
type BuildTimeDiff struct {
	Status       BuildTimeStatus `json:"status"`
	LeftSeconds  uint64          `json:"leftSeconds"`
	RightSeconds uint64          `json:"rightSeconds"`
	DeltaSeconds uint64          `json:"deltaSeconds"`
}

// BuildTime rounds each side to the nearest second, then compares them
func BuildTime(left, right *models.BuildTime) BuildTimeDiff {
	if left == nil || right == nil {
		return BuildTimeDiff{Status: BuildTimeMissing}
	}

	l := left.RoundedSeconds()
	r := right.RoundedSeconds()
	d := BuildTimeDiff{LeftSeconds: l, RightSeconds: r}

	switch {
	case r < l:
		d.Status = BuildTimeFaster
		d.DeltaSeconds = l - r
	case r > l:
		d.Status = BuildTimeSlower
		d.DeltaSeconds = r - l
	default:
		d.Status = BuildTimeEqual
	}
	return d
}

// String returns a sentence describing the comparison
func (d BuildTimeDiff) String() string {
	switch d.Status {
	case BuildTimeEqual:
		return fmt.Sprintf("Build time is unchanged (%s)", Seconds(d.RightSeconds))
	case BuildTimeFaster:
		return fmt.Sprintf("Build is %s faster (%s instead of %s)",
			Seconds(d.DeltaSeconds), Seconds(d.RightSeconds), Seconds(d.LeftSeconds))
	case BuildTimeSlower:
		return fmt.Sprintf("Build is %s slower (%s instead of %s)",
			Seconds(d.DeltaSeconds), Seconds(d.RightSeconds), Seconds(d.LeftSeconds))
	default:
		return "Build time is not available for both snapshots"
	}
}

// Seconds formats n with a pluralised unit
func Seconds(n uint64) string {
	if n == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", n)
}
