package timetable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chris/planner/internal/grid"
)

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // bright-magenta
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // bright-black
	entryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // bright-blue
	executionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // bright-green
	taskStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // bright-yellow
	selectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // bright-cyan
	nowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // bright-red
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))            // white
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // bright-black
)

const (
	maxCells      = 12
	cellEmpty     = '·'
	cellEntry     = '█'
	cellSelection = '▒'
	dayCellWidth  = 6
)

// FormatOptions controls text rendering.
type FormatOptions struct {
	NoColor bool
}

func renderStyle(style lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

func kindStyle(kind, color string) lipgloss.Style {
	if color != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	switch kind {
	case "execution":
		return executionStyle
	case "task":
		return taskStyle
	}
	return entryStyle
}

// CellRange maps [offset, offset+span) in a row of rowSize units onto a bar of
// cells cells. The result is never empty.
func CellRange(offset, span, rowSize, cells int) (int, int) {
	from := offset * cells / rowSize
	to := ((offset+span)*cells + rowSize - 1) / rowSize
	if to > cells {
		to = cells
	}
	if from >= cells {
		from = cells - 1
	}
	if to <= from {
		to = from + 1
	}
	return from, to
}

func cellsFor(rowSize int) int {
	return min(rowSize, maxCells)
}

func title(text string, noColor bool) string {
	separator := renderStyle(separatorStyle, strings.Repeat("=", max(40-(ansi.StringWidth(text)/2), 0)), noColor)
	return fmt.Sprintf("\n%s %s %s\n\n", separator, renderStyle(headerStyle, text, noColor), separator)
}

// FormatDaily renders a daily layout as one line per hour row: the hour
// label, a bar of occupied cells and the titles of entries starting there.
func FormatDaily(d Daily, opts FormatOptions) string {
	var out strings.Builder
	out.WriteString(title(fmt.Sprintf("Daily Plan - %s", d.Date), opts.NoColor))

	cells := cellsFor(d.RowSize)
	count := 0
	for _, row := range d.Rows {
		bar := make([]string, cells)
		for i := range bar {
			bar[i] = renderStyle(labelStyle, string(cellEmpty), opts.NoColor)
		}
		if row.Selection != nil {
			from, to := CellRange(row.Selection.OffsetInRow, row.Selection.Span, d.RowSize, cells)
			for i := from; i < to; i++ {
				bar[i] = renderStyle(selectionStyle, string(cellSelection), opts.NoColor)
			}
		}

		var titles []string
		for _, p := range row.Placements {
			from, to := CellRange(p.Offset, p.Span, d.RowSize, cells)
			for i := from; i < to; i++ {
				bar[i] = renderStyle(kindStyle(p.Kind, p.Color), string(cellEntry), opts.NoColor)
			}
			if p.IsStart {
				count++
				titles = append(titles, fmt.Sprintf("%s %s",
					renderStyle(titleStyle, p.Title, opts.NoColor),
					renderStyle(labelStyle, p.Range, opts.NoColor)))
			}
		}

		line := fmt.Sprintf("%s │%s│", renderStyle(labelStyle, row.Label, opts.NoColor), strings.Join(bar, ""))
		if len(titles) > 0 {
			line += " " + strings.Join(titles, ", ")
		}
		if d.Now != nil && d.Now.RowIndex == row.Index {
			line += " " + renderStyle(nowStyle, "◀ now "+clockLabel(d.DayStartHour, d.Now.Minutes), opts.NoColor)
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
	if count == 0 {
		out.WriteString(renderStyle(labelStyle, fmt.Sprintf("No entries for %s", d.Date), opts.NoColor) + "\n")
	} else {
		out.WriteString(fmt.Sprintf("Total: %d %s\n", count, plural(count, "entry", "entries")))
	}
	return out.String()
}

// FormatWeekly renders a weekly layout: a grid of hour rows by day columns,
// followed by each day's entries.
func FormatWeekly(w Weekly, opts FormatOptions) string {
	var out strings.Builder
	out.WriteString(title(fmt.Sprintf("Week of %s", w.Start), opts.NoColor))

	header := "   "
	for _, d := range w.Days {
		header += " " + fmt.Sprintf("%-*s", dayCellWidth, d.Weekday+" "+d.Date[len(d.Date)-2:])
	}
	out.WriteString(renderStyle(labelStyle, header, opts.NoColor) + "\n")

	cols := make([][]grid.Processed, len(w.Days))
	for i, d := range w.Days {
		for _, s := range d.Segments {
			cols[i] = append(cols[i], grid.Processed{StartIndex: s.Start, EndIndex: s.End})
		}
	}

	for row := 0; row < grid.HoursPerDay; row++ {
		line := renderStyle(labelStyle, clockLabel(w.DayStartHour, row*grid.MinutesPerHour)[:2], opts.NoColor) + " "
		for i, d := range w.Days {
			cell := make([]string, dayCellWidth)
			for c := range cell {
				cell[c] = renderStyle(labelStyle, string(cellEmpty), opts.NoColor)
			}
			if w.Selection != nil && w.Selection.DayIndex == d.Index {
				if seg, ok := grid.SelectionForRow(w.Selection.Start, w.Selection.End, row, grid.MinutesPerHour); ok {
					from, to := CellRange(seg.OffsetInRow, seg.Span, grid.MinutesPerHour, dayCellWidth)
					for c := from; c < to; c++ {
						cell[c] = renderStyle(selectionStyle, string(cellSelection), opts.NoColor)
					}
				}
			}
			for _, p := range grid.ForRow(cols[i], row, grid.MinutesPerHour) {
				from, to := CellRange(p.OffsetInRow, p.Span, grid.MinutesPerHour, dayCellWidth)
				for c := from; c < to; c++ {
					cell[c] = renderStyle(entryStyle, string(cellEntry), opts.NoColor)
				}
			}
			if w.Now != nil && w.Now.DayIndex == d.Index && grid.HourIndex(w.Now.Minutes) == row {
				c := min(grid.MinuteInHour(w.Now.Minutes)*dayCellWidth/grid.MinutesPerHour, dayCellWidth-1)
				cell[c] = renderStyle(nowStyle, "│", opts.NoColor)
			}
			line += " " + strings.Join(cell, "")
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
	count := 0
	for _, d := range w.Days {
		if len(d.Segments) == 0 {
			continue
		}
		out.WriteString(renderStyle(headerStyle, d.Weekday+" "+d.Date, opts.NoColor) + "\n")
		for _, s := range d.Segments {
			count++
			fmt.Fprintf(&out, "  %s  %s\n",
				renderStyle(labelStyle, s.Range, opts.NoColor),
				renderStyle(kindStyle(s.Kind, s.Color), s.Title, opts.NoColor))
		}
	}
	if count == 0 {
		out.WriteString(renderStyle(labelStyle, fmt.Sprintf("No entries for the week of %s", w.Start), opts.NoColor) + "\n")
	}
	return out.String()
}

// clockLabel renders grid minute m as wall-clock "HH:MM".
func clockLabel(dayStartHour, m int) string {
	total := (dayStartHour*grid.MinutesPerHour + m) % grid.MinutesPerDay
	return fmt.Sprintf("%02d:%02d", total/grid.MinutesPerHour, total%grid.MinutesPerHour)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
