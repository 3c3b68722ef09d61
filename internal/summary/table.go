package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FormatTable formats title summaries as a table under a "Time Summary - label" header
func FormatTable(summaries []TitleSummary, label string) string {
	if len(summaries) == 0 {
		return formatEmptyState(label)
	}

	// Sort summaries by duration (desc), then entry count (desc), then title (asc)
	sortSummaries(summaries)

	var sb strings.Builder

	// Header
	sb.WriteString(formatTableHeader(label))
	sb.WriteString("\n\n")

	// Calculate column widths
	widths := calculateColumnWidths(summaries)

	// Table header row
	sb.WriteString(formatColumnHeaders(widths))
	sb.WriteString("\n")

	// Table rows
	for _, s := range summaries {
		sb.WriteString(formatTableRow(s, widths))
		sb.WriteString("\n")
	}

	// Summary statistics
	sb.WriteString("\n")
	sb.WriteString(formatSummaryStats(summaries))
	sb.WriteString("\n")

	return sb.String()
}

func formatEmptyState(label string) string {
	return formatTableHeader(label) + "\n\nNo entries found.\n"
}

func formatTableHeader(label string) string {
	title := fmt.Sprintf("Time Summary - %s", label)
	return title + "\n" + strings.Repeat("=", ansi.StringWidth(title))
}

// pad left-aligns s in width terminal cells
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-ansi.StringWidth(s)))
}

func formatColumnHeaders(widths columnWidths) string {
	return pad("Title", widths.title) + "  " +
		pad("Kind", widths.kind) + "  " +
		fmt.Sprintf("%*s", widths.entries, "Entries") + "  " +
		pad("Time Span", widths.timeSpan) + "  " +
		"Duration"
}

func formatTableRow(s TitleSummary, widths columnWidths) string {
	return pad(s.Title, widths.title) + "  " +
		pad(string(s.Kind), widths.kind) + "  " +
		fmt.Sprintf("%*s", widths.entries, strconv.Itoa(s.Count)) + "  " +
		pad(s.FormatTimeSpan(), widths.timeSpan) + "  " +
		s.FormatDuration()
}

func formatSummaryStats(summaries []TitleSummary) string {
	totals := Totals(summaries)

	line := fmt.Sprintf("Planned %s, executed %s, tasks %s",
		FormatMinutes(totals["plan"]),
		FormatMinutes(totals["execution"]),
		FormatMinutes(totals["task"]))
	if pct, ok := Adherence(summaries); ok {
		line += fmt.Sprintf(" (%d%% of plan executed)", pct)
	}
	return line
}

type columnWidths struct {
	title    int
	kind     int
	entries  int
	timeSpan int
}

func calculateColumnWidths(summaries []TitleSummary) columnWidths {
	widths := columnWidths{
		title:    len("Title"),
		kind:     len("Kind"),
		entries:  len("Entries"),
		timeSpan: len("Time Span"),
	}

	for _, s := range summaries {
		widths.title = max(widths.title, ansi.StringWidth(s.Title))
		widths.kind = max(widths.kind, len(s.Kind))
		widths.entries = max(widths.entries, len(strconv.Itoa(s.Count)))
		widths.timeSpan = max(widths.timeSpan, len(s.FormatTimeSpan()))
	}

	return widths
}

func sortSummaries(summaries []TitleSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		// Primary sort: duration (descending)
		if summaries[i].Minutes != summaries[j].Minutes {
			return summaries[i].Minutes > summaries[j].Minutes
		}

		// Secondary sort: entry count (descending)
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}

		// Tertiary sort: title (ascending)
		if summaries[i].Title != summaries[j].Title {
			return summaries[i].Title < summaries[j].Title
		}

		// Final sort: kind (ascending)
		return summaries[i].Kind < summaries[j].Kind
	})
}
