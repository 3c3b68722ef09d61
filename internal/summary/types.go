// Package summary totals entry time per title and kind over a window, for
// comparing what was planned with what was executed.
package summary

import (
	"strconv"
	"time"

	"github.com/chris/planner/pkg/models"
)

// TitleSummary represents aggregated entry time for one title of one kind
type TitleSummary struct {
	Title string
	Kind  models.Kind
	Count int
	// Minutes is the time inside the summarized window only.
	Minutes int
	First   time.Time
	Last    time.Time
}

// Duration returns the summarized time
func (s *TitleSummary) Duration() time.Duration {
	return time.Duration(s.Minutes) * time.Minute
}

// FormatDuration returns a human-readable duration string
// Examples: "8h 12m", "45m", "2h", "0m"
func (s *TitleSummary) FormatDuration() string {
	return FormatMinutes(s.Minutes)
}

// FormatMinutes renders a minute count as hours and minutes.
func FormatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60

	if hours > 0 {
		if minutes > 0 {
			return formatWithSuffix(hours, "h") + " " + formatWithSuffix(minutes, "m")
		}
		return formatWithSuffix(hours, "h")
	}
	return formatWithSuffix(minutes, "m")
}

func formatWithSuffix(value int, suffix string) string {
	return strconv.Itoa(value) + suffix
}

// FormatTimeSpan returns the time range as "HH:MM - HH:MM"
func (s *TitleSummary) FormatTimeSpan() string {
	return s.First.Format("15:04") + " - " + s.Last.Format("15:04")
}
