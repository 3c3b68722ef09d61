package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/internal/timetable"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	focusDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	blurDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	planStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	executionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	taskStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	nowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	tooltipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

const (
	cellEmpty     = "·"
	cellEntry     = "█"
	cellSelection = "▒"
	cellNow       = "│"
)

func (m *Model) renderView() string {
	var b strings.Builder

	width := m.width
	if width == 0 {
		width = 80
	}

	// Content width excludes left and right margins
	contentWidth := width - 2*marginX
	if contentWidth < 20 {
		contentWidth = 20
	}
	margin := strings.Repeat(" ", marginX)

	// Header
	b.WriteString(margin + m.renderHeader())
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("=", contentWidth)))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		for _, hb := range bindingsForView(m.viewState) {
			b.WriteString(margin + keyStyle.Render(fmt.Sprintf("%-6s", hb.key)) + " " + hb.desc + "\n")
		}
	case m.viewState == WeeklyView:
		for _, line := range m.renderWeekly() {
			b.WriteString(margin + line + "\n")
		}
	default:
		for _, line := range m.renderDaily(contentWidth) {
			b.WriteString(margin + line + "\n")
		}
	}

	// Status bar
	b.WriteString("\n")
	if info := m.renderInfo(); info != "" {
		b.WriteString(margin + info + "\n")
	}
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	b.WriteString(margin + m.renderStatusBar())

	return b.String()
}

func (m *Model) renderHeader() string {
	dot := focusDotStyle.Render("●")
	if !m.focused {
		dot = blurDotStyle.Render("○")
	}

	label := "Daily Plan"
	date := m.currentDate
	if m.viewState == WeeklyView {
		label = "Week of"
		date = m.cfg.WeekOrigin(m.currentDate)
	}

	text := fmt.Sprintf("%s %s", date.Format("Monday"), date.Format("2006-01-02"))
	if rel := m.relativeDateString(); rel != "" {
		text += fmt.Sprintf(" (%s)", rel)
	}
	return headerStyle.Render(label) + " " + dot + " " + headerStyle.Render(text)
}

func (m *Model) relativeDateString() string {
	today := m.cfg.GridDate(m.now())
	if m.viewState == WeeklyView {
		if m.cfg.WeekOrigin(today).Equal(m.cfg.WeekOrigin(m.currentDate)) {
			return "This week"
		}
		return ""
	}

	days := int(today.Sub(m.currentDate).Round(time.Hour).Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	case -1:
		return "Tomorrow"
	default:
		return ""
	}
}

func placementStyle(kind, color string) lipgloss.Style {
	if color != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	switch kind {
	case "execution":
		return executionStyle
	case "task":
		return taskStyle
	}
	return planStyle
}

func emptyCells(n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = labelStyle.Render(cellEmpty)
	}
	return cells
}

// renderDaily draws one line per hour row. The bar of each row starts at
// the left edge of dailyContainer.
func (m *Model) renderDaily(contentWidth int) []string {
	d := m.daily
	barWidth := m.dailyBarWidth()
	lines := make([]string, 0, len(d.Rows))

	for _, row := range d.Rows {
		bar := emptyCells(barWidth)
		if row.Selection != nil {
			from, to := timetable.CellRange(row.Selection.OffsetInRow, row.Selection.Span, d.RowSize, barWidth)
			for i := from; i < to; i++ {
				bar[i] = selectionStyle.Render(cellSelection)
			}
		}

		var titles []string
		for _, p := range row.Placements {
			style := placementStyle(p.Kind, p.Color)
			from, to := timetable.CellRange(p.Offset, p.Span, d.RowSize, barWidth)
			for i := from; i < to; i++ {
				bar[i] = style.Render(cellEntry)
			}
			if p.IsStart {
				titles = append(titles, titleStyle.Render(p.Title))
			}
		}

		if d.Now != nil && d.Now.RowIndex == row.Index {
			i := min(int(d.Now.PercentWithinRow*float64(barWidth)/100), barWidth-1)
			bar[i] = nowStyle.Render(cellNow)
		}

		line := labelStyle.Render(row.Label) + " │" + strings.Join(bar, "") + "│"
		if m.hover != nil && int(m.hover.Anchor.Y) == headerLines+row.Index {
			line += " " + tooltipStyle.Render(" "+m.cfg.HoverLabel(*m.hover, m.currentDate)+" ")
		} else if len(titles) > 0 {
			line += " " + strings.Join(titles, ", ")
		}
		lines = append(lines, ansi.Truncate(line, contentWidth, "…"))
	}
	return lines
}

// renderWeekly draws the day header followed by one line per hour row. Each
// day column is a space and weeklyCells cells, matching weeklyContainer.
func (m *Model) renderWeekly() []string {
	w := m.weekly
	cells := m.weeklyCells()
	lines := make([]string, 0, grid.HoursPerDay+1)

	header := strings.Repeat(" ", weeklyLabelWidth)
	for _, d := range w.Days {
		label := d.Weekday + " " + d.Date[len(d.Date)-2:]
		header += " " + fmt.Sprintf("%-*s", cells, ansi.Truncate(label, cells, ""))
	}
	lines = append(lines, labelStyle.Render(header))

	cols := make([][]grid.Processed, len(w.Days))
	for i, d := range w.Days {
		for _, s := range d.Segments {
			cols[i] = append(cols[i], grid.Processed{StartIndex: s.Start, EndIndex: s.End})
		}
	}

	for row := 0; row < grid.HoursPerDay; row++ {
		line := labelStyle.Render(m.cfg.HourLabel(row)) + " "
		for i, d := range w.Days {
			bar := emptyCells(cells)
			for _, p := range grid.ForRow(cols[i], row, grid.MinutesPerHour) {
				style := planStyle
				for _, s := range d.Segments {
					if s.Start <= row*grid.MinutesPerHour+p.OffsetInRow && s.End > row*grid.MinutesPerHour+p.OffsetInRow {
						style = placementStyle(s.Kind, s.Color)
						break
					}
				}
				from, to := timetable.CellRange(p.OffsetInRow, p.Span, grid.MinutesPerHour, cells)
				for c := from; c < to; c++ {
					bar[c] = style.Render(cellEntry)
				}
			}
			if w.Selection != nil && w.Selection.DayIndex == d.Index {
				if seg, ok := grid.SelectionForRow(w.Selection.Start, w.Selection.End, row, grid.MinutesPerHour); ok {
					from, to := timetable.CellRange(seg.OffsetInRow, seg.Span, grid.MinutesPerHour, cells)
					for c := from; c < to; c++ {
						bar[c] = selectionStyle.Render(cellSelection)
					}
				}
			}
			if w.Now != nil && w.Now.DayIndex == d.Index && grid.HourIndex(w.Now.Minutes) == row {
				c := min(grid.MinuteInHour(w.Now.Minutes)*cells/grid.MinutesPerHour, cells-1)
				bar[c] = nowStyle.Render(cellNow)
			}
			line += " " + strings.Join(bar, "")
		}
		lines = append(lines, line)
	}
	return lines
}

// renderInfo describes the selection, the weekly hover and the last status.
func (m *Model) renderInfo() string {
	var parts []string

	base := m.currentDate
	if m.viewState == WeeklyView {
		base = m.cfg.WeekOrigin(m.currentDate)
	}

	if iv, ok := m.selection.Normalized(); ok {
		day := base.AddDate(0, 0, iv.DayIndex)
		parts = append(parts, selectionStyle.Render(fmt.Sprintf("Selected %s (%dm)",
			m.cfg.FormatRange(iv.Start, iv.End, day), iv.Len())))
	}
	if m.viewState == WeeklyView && m.hover != nil {
		day := base.AddDate(0, 0, m.hoverDay)
		parts = append(parts, tooltipStyle.Render(fmt.Sprintf(" %s %s ",
			day.Format("Mon"), m.cfg.HoverLabel(*m.hover, day))))
	}
	if m.status != "" {
		parts = append(parts, statusBarStyle.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderStatusBar() string {
	if m.viewState == WeeklyView {
		return statusBarStyle.Render("[drag] Select  [Enter] Log  [Esc] Clear  [h/l] Week  [t] Today  [w] Daily  [?] Help  [q] Quit")
	}
	return statusBarStyle.Render("[drag] Select  [Enter] Log  [Esc] Clear  [h/l] Day  [t] Today  [w] Weekly  [?] Help  [q] Quit")
}
