package output

import "fmt"

// FormatBytes formats bytes in human-readable IEC units
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + FormatBytes(-bytes)
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDelta formats a signed byte delta, always with a sign unless zero
func FormatDelta(delta int64) string {
	if delta > 0 {
		return "+" + FormatBytes(delta)
	}
	return FormatBytes(delta)
}

// formatCount formats a signed file count delta
func formatCount(delta int64) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
