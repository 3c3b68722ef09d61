package grid

import (
	"time"

	"github.com/chris/planner/pkg/models"
)

// DailyTooltip anchors the daily tooltip: X follows the pointer, Y is pinned
// to the top of the hovered row.
func DailyTooltip(p Point, row *Rect) (Point, bool) {
	if row == nil {
		return Point{}, false
	}
	return Point{X: p.X, Y: row.Top}, true
}

// WeeklyTooltip anchors the weekly tooltip at the middle of day column
// dayIndex and at the vertical position of minutes, so it does not jitter
// sideways while dragging within a day.
func (c Config) WeeklyTooltip(container *Rect, dayIndex, minutes int, rowHeight float64) (Point, bool) {
	if container == nil {
		return Point{}, false
	}
	colWidth := container.Width / float64(c.DaysCount)
	return Point{
		X: container.Left + float64(dayIndex)*colWidth + colWidth/2,
		Y: container.Top + float64(minutes)/MinutesPerHour*rowHeight,
	}, true
}

// Hover is what the tooltip currently describes: a single instant over empty
// grid space or, when HasEnd is set, the full range of a hovered entry.
type Hover struct {
	Start  int
	End    int
	HasEnd bool
	Anchor Point
}

// HoverEmpty describes hovering empty daily grid space at minutes. The shown
// minute never reaches the next hour row.
func HoverEmpty(pos DailyPosition, anchor Point) Hover {
	return Hover{
		Start:  min(pos.Minutes, pos.HourIndex*MinutesPerHour+MinutesPerHour-1),
		Anchor: anchor,
	}
}

// HoverEntry describes hovering an existing entry.
func (c Config) HoverEntry(e models.Entry, anchor Point) Hover {
	return Hover{
		Start:  c.ToGridMinutes(e.Start),
		End:    c.ToGridMinutes(e.End),
		HasEnd: true,
		Anchor: anchor,
	}
}

// HoverLabel renders the tooltip text for h on baseDate.
func (c Config) HoverLabel(h Hover, baseDate time.Time) string {
	if h.HasEnd {
		return c.FormatMinutes(h.Start, baseDate) + " - " + c.FormatMinutes(h.End, baseDate)
	}
	return c.FormatMinutes(h.Start, baseDate)
}
