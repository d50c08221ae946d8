// Package utils provides small shared helpers for time formatting and
// freshness windows.
package utils

import (
	"fmt"
	"time"
)

// DefaultFreshnessWindow is how far back article fetches reach.
// Articles older than this are excluded: freshness over completeness.
const DefaultFreshnessWindow = 24 * time.Hour

// FreshnessBound returns the lower publication-date bound for a fetch,
// i.e. now minus the given window.
func FreshnessBound(window time.Duration) time.Time {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return time.Now().Add(-window)
}

// FormatDate formats a time as "2006-01-02", the date format news APIs
// accept for their from/to parameters.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats a time for human-readable output.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}

// TimeAgo renders the distance between t and now as a compact string,
// e.g. "5m ago", "3h ago", "2d ago". Future times render as "just now".
func TimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Truncate shortens s to at most n runes, appending "…" when trimmed.
// Used for table and digest output of long headlines.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
