package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/planner/pkg/models"
)

func at(d, h, m int) time.Time {
	return time.Date(2024, 3, d, h, m, 0, 0, time.Local)
}

func entry(kind models.Kind, title string, start, end time.Time) models.Entry {
	return *models.NewEntry(kind, title, start, end)
}

func TestSummarize(t *testing.T) {
	// Given: two plans and executions of "deep work", one spilling past the window
	entries := []models.Entry{
		entry(models.KindPlan, "deep work", at(10, 5, 30), at(10, 7, 15)),
		entry(models.KindExecution, "deep work", at(10, 6, 0), at(10, 7, 0)),
		entry(models.KindExecution, "deep work", at(10, 9, 0), at(10, 9, 30)),
		entry(models.KindTask, "email", at(10, 10, 0), at(10, 10, 0)),
		entry(models.KindPlan, "late", at(11, 3, 0), at(11, 5, 0)),
		entry(models.KindPlan, "outside", at(12, 9, 0), at(12, 10, 0)),
	}

	// When: summarizing the grid day 04:00 to 04:00
	got := Summarize(entries, at(10, 4, 0), at(11, 4, 0))

	// Then: groups keep first-seen order and clip to the window
	require.Len(t, got, 4)

	assert.Equal(t, "deep work", got[0].Title)
	assert.Equal(t, models.KindPlan, got[0].Kind)
	assert.Equal(t, 105, got[0].Minutes)

	assert.Equal(t, models.KindExecution, got[1].Kind)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, 90, got[1].Minutes)
	assert.Equal(t, "06:00 - 09:30", got[1].FormatTimeSpan())

	assert.Equal(t, "email", got[2].Title)
	assert.Equal(t, 0, got[2].Minutes, "instants count but add no time")

	assert.Equal(t, "late", got[3].Title)
	assert.Equal(t, 60, got[3].Minutes, "only the hour before 04:00 is inside")
}

func TestTotalsAndAdherence(t *testing.T) {
	got := Summarize([]models.Entry{
		entry(models.KindPlan, "a", at(10, 5, 0), at(10, 7, 0)),
		entry(models.KindExecution, "a", at(10, 5, 0), at(10, 6, 30)),
	}, at(10, 4, 0), at(11, 4, 0))

	totals := Totals(got)
	assert.Equal(t, 120, totals[models.KindPlan])
	assert.Equal(t, 90, totals[models.KindExecution])

	pct, ok := Adherence(got)
	require.True(t, ok)
	assert.Equal(t, 75, pct)

	_, ok = Adherence(nil)
	assert.False(t, ok)
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{492, "8h 12m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestFormatTable(t *testing.T) {
	summaries := Summarize([]models.Entry{
		entry(models.KindExecution, "review", at(10, 9, 0), at(10, 9, 30)),
		entry(models.KindPlan, "deep work", at(10, 5, 30), at(10, 7, 15)),
	}, at(10, 4, 0), at(11, 4, 0))

	output := FormatTable(summaries, "2024-03-10")

	for _, want := range []string{
		"Time Summary - 2024-03-10",
		"Title",
		"Kind",
		"Entries",
		"Time Span",
		"Duration",
		"05:30 - 07:15",
		"1h 45m",
		"09:00 - 09:30",
		"30m",
		"Planned 1h 45m, executed 30m, tasks 0m (28% of plan executed)",
	} {
		assert.Contains(t, output, want)
	}

	// Longest first
	assert.Less(t, strings.Index(output, "deep work"), strings.Index(output, "review"))
}

func TestFormatTable_Empty(t *testing.T) {
	output := FormatTable(nil, "2024-03-10")

	assert.Contains(t, output, "Time Summary - 2024-03-10")
	assert.Contains(t, output, "No entries found.")
}
