// Package util holds small presentation helpers for the note list.
package util

import (
	"fmt"
	"strings"
	"time"
)

const (
	// SummaryLimit is the maximum number of runes kept by Summary.
	SummaryLimit = 160

	emptySummary = "Empty note."
	ellipsis     = "…"
)

// TimeAgo renders the age of t relative to now, e.g. "Just now", "5 mins ago", "1 day ago".
// Months are 30 days and years are 12 months.
func TimeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t) / time.Second)
	if seconds < 60 {
		return "Just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return ago(minutes, "min")
	}

	hours := minutes / 60
	if hours < 24 {
		return ago(hours, "hour")
	}

	days := hours / 24
	if days < 30 {
		return ago(days, "day")
	}

	months := days / 30
	if months < 12 {
		return ago(months, "month")
	}

	return ago(months/12, "year")
}

func ago(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}

	return fmt.Sprintf("%d %s ago", n, unit)
}

// Summary collapses whitespace runs to single spaces and truncates to SummaryLimit runes.
func Summary(content string) string {
	normalized := strings.Join(strings.Fields(content), " ")
	if normalized == "" {
		return emptySummary
	}

	runes := []rune(normalized)
	if len(runes) <= SummaryLimit {
		return normalized
	}

	return string(runes[:SummaryLimit]) + ellipsis
}
