package grid

import "math"

// Point is a screen coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is a screen-space bounding box.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DailyPosition is a pointer position resolved against the daily grid.
type DailyPosition struct {
	HourIndex int
	Minutes   int
	RowTop    float64
}

// WeeklyPosition is a pointer position resolved against the weekly grid.
type WeeklyPosition struct {
	DayIndex int `json:"day_index" yaml:"day_index"`
	Minutes  int `json:"minutes" yaml:"minutes"`
}

// DailyPointerMinutes maps a pointer over the hour row hourIndex, whose
// bounding box is row, to grid minutes. The horizontal offset selects the
// minute with 1-minute granularity; no snapping is applied.
func DailyPointerMinutes(p Point, row *Rect, hourIndex int) (int, bool) {
	if row == nil {
		return 0, false
	}
	hourIndex = clampInclusive(hourIndex, 0, HoursPerDay-1)
	minute := 0
	if row.Width > 0 {
		x := p.X - row.Left
		minute = clampInclusive(int(math.Round(x/row.Width*MinutesPerHour)), 0, MinutesPerHour)
	}
	return hourIndex*MinutesPerHour + minute, true
}

// DailyPointerPosition resolves a pointer over the daily grid container, made
// of HoursPerDay rows of rowHeight stacked vertically.
func DailyPointerPosition(p Point, container *Rect, rowHeight float64) (DailyPosition, bool) {
	if container == nil || rowHeight <= 0 {
		return DailyPosition{}, false
	}
	hourIndex := clampInclusive(int(math.Floor((p.Y-container.Top)/rowHeight)), 0, HoursPerDay-1)
	row := Rect{
		Left:   container.Left,
		Top:    container.Top + float64(hourIndex)*rowHeight,
		Width:  container.Width,
		Height: rowHeight,
	}
	minutes, _ := DailyPointerMinutes(p, &row, hourIndex)
	return DailyPosition{HourIndex: hourIndex, Minutes: minutes, RowTop: row.Top}, true
}

// WeeklyPointerPosition resolves a pointer over the weekly grid container:
// DaysCount columns side by side, HoursPerDay rows of rowHeight. The minute
// within the hour is snapped to SnapMinutes.
func (c Config) WeeklyPointerPosition(p Point, container *Rect, rowHeight float64) (WeeklyPosition, bool) {
	if container == nil || rowHeight <= 0 {
		return WeeklyPosition{}, false
	}

	y := p.Y - container.Top
	hourIndex := clampInclusive(int(math.Floor(y/rowHeight)), 0, HoursPerDay-1)
	raw := (y - float64(hourIndex)*rowHeight) / rowHeight * MinutesPerHour
	minuteInHour := Snap(raw, c.SnapMinutes, 0, MinutesPerHour)

	dayIndex := 0
	if container.Width > 0 {
		colWidth := container.Width / float64(c.DaysCount)
		dayIndex = clampInclusive(int(math.Floor((p.X-container.Left)/colWidth)), 0, c.DaysCount-1)
	}

	return WeeklyPosition{
		DayIndex: dayIndex,
		Minutes:  hourIndex*MinutesPerHour + minuteInHour,
	}, true
}

// Snap rounds raw to the nearest multiple of unit and clamps it into [lo, hi].
func Snap(raw float64, unit, lo, hi int) int {
	if unit <= 0 {
		unit = 1
	}
	return clampInclusive(int(math.Round(raw/float64(unit)))*unit, lo, hi)
}
