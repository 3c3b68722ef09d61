package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/pkg/models"
)

const (
	marginX = 2
	// Header, separator and blank line precede the grid.
	headerLines = 3
	// "05 │" before each daily bar.
	dailyLabelWidth = 4
	// "05 " before the weekly day columns.
	weeklyLabelWidth = 3
	maxDailyBar      = grid.MinutesPerHour
	minDailyBar      = 12
	titleReserve     = 20
	maxWeeklyCells   = 12
)

// dailyBarWidth is the number of cells of each daily hour bar.
func (m *Model) dailyBarWidth() int {
	width := m.width
	if width == 0 {
		width = 80
	}
	return max(minDailyBar, min(maxDailyBar, width-2*marginX-dailyLabelWidth-titleReserve))
}

// dailyContainer is the screen rect of the daily hour bars, one line per row.
func (m *Model) dailyContainer() grid.Rect {
	return grid.Rect{
		Left:   marginX + dailyLabelWidth,
		Top:    headerLines,
		Width:  float64(m.dailyBarWidth()),
		Height: grid.HoursPerDay,
	}
}

// weeklyCells is the number of cells per day column: one per snap unit.
func (m *Model) weeklyCells() int {
	return max(1, min(maxWeeklyCells, grid.MinutesPerHour/m.cfg.SnapMinutes))
}

// weeklyContainer is the screen rect of the day columns. Each column is a
// separator space followed by weeklyCells cells.
func (m *Model) weeklyContainer() grid.Rect {
	return grid.Rect{
		Left:   marginX + weeklyLabelWidth,
		Top:    headerLines + 1,
		Width:  float64(m.cfg.DaysCount * (m.weeklyCells() + 1)),
		Height: grid.HoursPerDay,
	}
}

func inside(r grid.Rect, x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.Left && fx < r.Left+r.Width && fy >= r.Top && fy < r.Top+r.Height
}

// weeklyPointer resolves a terminal cell in the weekly grid. The hour comes
// from the line and the minute within it from the cell within the day
// column, fed to the engine as a fractional row offset.
func (m *Model) weeklyPointer(x, y int) (grid.WeeklyPosition, grid.Point, bool) {
	container := m.weeklyContainer()
	colWidth := m.weeklyCells() + 1
	col := (x - int(container.Left)) / colWidth
	cell := (x - int(container.Left)) - col*colWidth - 1
	cell = max(0, min(m.weeklyCells()-1, cell))

	p := grid.Point{
		X: float64(x),
		Y: float64(y) + float64(cell)/float64(m.weeklyCells()),
	}
	pos, ok := m.cfg.WeeklyPointerPosition(p, &container, 1)
	return pos, p, ok
}

func (m *Model) handleMouse(msg tea.MouseMsg) (*Model, tea.Cmd) {
	if m.viewState == WeeklyView {
		m.handleWeeklyMouse(msg)
	} else {
		m.handleDailyMouse(msg)
	}
	m.rebuild()
	return m, nil
}

func (m *Model) handleDailyMouse(msg tea.MouseMsg) {
	container := m.dailyContainer()
	p := grid.Point{X: float64(msg.X), Y: float64(msg.Y)}
	in := inside(container, msg.X, msg.Y)

	pos, ok := grid.DailyPointerPosition(p, &container, 1)
	if !ok {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !in {
			return
		}
		m.selection.Dispatch(grid.PointerDown{Minutes: pos.Minutes, Anchor: p})

	case tea.MouseActionMotion:
		if m.selection.Dragging() {
			m.selection.Dispatch(grid.PointerMove{Minutes: pos.Minutes, Anchor: p})
		}

	case tea.MouseActionRelease:
		if m.selection.Dragging() {
			m.selection.Dispatch(grid.PointerUp{})
			m.selection.Dispatch(grid.Click{})
		}
	}

	if !in {
		m.hover = nil
		return
	}
	row := grid.Rect{Left: container.Left, Top: pos.RowTop, Width: container.Width, Height: 1}
	anchor, _ := grid.DailyTooltip(p, &row)
	h := m.hoverAt(pos, anchor)
	m.hover = &h
}

// hoverAt describes the entry under the pointer, or the empty minute.
func (m *Model) hoverAt(pos grid.DailyPosition, anchor grid.Point) grid.Hover {
	if pos.HourIndex < len(m.daily.Rows) {
		offset := grid.MinuteInHour(pos.Minutes)
		if pos.Minutes == (pos.HourIndex+1)*grid.MinutesPerHour {
			offset = grid.MinutesPerHour - 1
		}
		for _, p := range m.daily.Rows[pos.HourIndex].Placements {
			if offset < p.Offset || offset >= p.Offset+p.Span {
				continue
			}
			if e, ok := m.entryByUID(p.UID); ok {
				return m.cfg.HoverEntry(e, anchor)
			}
		}
	}
	return grid.HoverEmpty(pos, anchor)
}

func (m *Model) handleWeeklyMouse(msg tea.MouseMsg) {
	container := m.weeklyContainer()
	in := inside(container, msg.X, msg.Y)
	pos, p, ok := m.weeklyPointer(msg.X, msg.Y)
	if !ok {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !in {
			return
		}
		m.selection.Dispatch(grid.PointerDown{Minutes: pos.Minutes, DayIndex: pos.DayIndex, Anchor: p})

	case tea.MouseActionMotion:
		if m.selection.Dragging() {
			m.selection.Dispatch(grid.PointerMove{Minutes: pos.Minutes, Anchor: p})
		}

	case tea.MouseActionRelease:
		if m.selection.Dragging() {
			m.selection.Dispatch(grid.PointerUp{})
			m.selection.Dispatch(grid.Click{})
		}
	}

	if !in {
		m.hover = nil
		return
	}
	day := pos.DayIndex
	minutes := pos.Minutes
	top := minutes
	if m.selection.Dragging() {
		// During a drag the tooltip stays in the drag's column, pinned to
		// the top of the selected range.
		st := m.selection.State()
		day, minutes = st.DayIndex, st.End
		top = min(st.Start, st.End)
	}
	anchor, _ := m.cfg.WeeklyTooltip(&container, day, top, 1)
	m.hover = &grid.Hover{Start: minutes, Anchor: anchor}
	m.hoverDay = day
}

func (m *Model) entryByUID(uid string) (models.Entry, bool) {
	for _, e := range m.entries {
		if e.UID == uid {
			return e, true
		}
	}
	return models.Entry{}, false
}
