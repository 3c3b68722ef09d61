package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRowHeight = 64

func weekContainer() *Rect {
	return &Rect{Left: 0, Top: 0, Width: 700, Height: HoursPerDay * testRowHeight}
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 130, Snap(127, 10, 0, MinutesPerDay))
	assert.Equal(t, 120, Snap(124, 10, 0, MinutesPerDay))
	assert.Equal(t, 0, Snap(-12, 10, 0, MinutesPerDay))
	assert.Equal(t, 60, Snap(59, 10, 0, MinutesPerHour))
	assert.Equal(t, 7, Snap(7.2, 0, 0, MinutesPerHour))
}

func TestWeeklyPointerPosition_Snaps(t *testing.T) {
	c := DefaultConfig()

	// 7 minutes into the third hour row of the second column.
	pos, ok := c.WeeklyPointerPosition(Point{X: 150, Y: 2*testRowHeight + 7.0/60*testRowHeight}, weekContainer(), testRowHeight)
	require.True(t, ok)
	assert.Equal(t, WeeklyPosition{DayIndex: 1, Minutes: 130}, pos)

	// 4 minutes in rounds down to the hour.
	pos, ok = c.WeeklyPointerPosition(Point{X: 150, Y: 2*testRowHeight + 4.0/60*testRowHeight}, weekContainer(), testRowHeight)
	require.True(t, ok)
	assert.Equal(t, 120, pos.Minutes)
}

func TestWeeklyPointerPosition_Clamps(t *testing.T) {
	c := DefaultConfig()

	pos, ok := c.WeeklyPointerPosition(Point{X: 900, Y: 2*testRowHeight - 0.5}, weekContainer(), testRowHeight)
	require.True(t, ok)
	assert.Equal(t, 6, pos.DayIndex)
	assert.Equal(t, 120, pos.Minutes)

	pos, ok = c.WeeklyPointerPosition(Point{X: -20, Y: -40}, weekContainer(), testRowHeight)
	require.True(t, ok)
	assert.Equal(t, WeeklyPosition{DayIndex: 0, Minutes: 0}, pos)

	pos, ok = c.WeeklyPointerPosition(Point{X: 10, Y: 5000}, weekContainer(), testRowHeight)
	require.True(t, ok)
	assert.Equal(t, MinutesPerDay, pos.Minutes)
}

func TestWeeklyPointerPosition_NoContainer(t *testing.T) {
	c := DefaultConfig()

	_, ok := c.WeeklyPointerPosition(Point{X: 10, Y: 10}, nil, testRowHeight)

	assert.False(t, ok)
}

func TestDailyPointerMinutes(t *testing.T) {
	row := &Rect{Left: 100, Top: 192, Width: 600, Height: 40}

	m, ok := DailyPointerMinutes(Point{X: 400, Y: 200}, row, 3)
	require.True(t, ok)
	assert.Equal(t, 210, m)

	m, _ = DailyPointerMinutes(Point{X: 401, Y: 200}, row, 3)
	assert.Equal(t, 210, m, "no snapping beyond the minute")

	m, _ = DailyPointerMinutes(Point{X: 2000, Y: 200}, row, 3)
	assert.Equal(t, 240, m)

	m, _ = DailyPointerMinutes(Point{X: 0, Y: 200}, row, 3)
	assert.Equal(t, 180, m)

	_, ok = DailyPointerMinutes(Point{X: 0, Y: 0}, nil, 3)
	assert.False(t, ok)
}

func TestDailyPointerPosition(t *testing.T) {
	container := &Rect{Left: 0, Top: 100, Width: 600, Height: HoursPerDay * 40}

	pos, ok := DailyPointerPosition(Point{X: 150, Y: 100 + 5*40 + 12}, container, 40)

	require.True(t, ok)
	assert.Equal(t, 5, pos.HourIndex)
	assert.Equal(t, 315, pos.Minutes)
	assert.Equal(t, float64(300), pos.RowTop)
}

func TestDailyTooltip(t *testing.T) {
	p, ok := DailyTooltip(Point{X: 321, Y: 250}, &Rect{Top: 240, Width: 600, Height: 40})
	require.True(t, ok)
	assert.Equal(t, Point{X: 321, Y: 240}, p)

	_, ok = DailyTooltip(Point{}, nil)
	assert.False(t, ok)
}

func TestWeeklyTooltip(t *testing.T) {
	c := DefaultConfig()

	p, ok := c.WeeklyTooltip(weekContainer(), 2, 90, testRowHeight)

	require.True(t, ok)
	assert.Equal(t, Point{X: 250, Y: 96}, p)
}

func TestHoverEmpty_CapsAtRowEnd(t *testing.T) {
	h := HoverEmpty(DailyPosition{HourIndex: 3, Minutes: 240}, Point{})

	assert.Equal(t, 239, h.Start)
	assert.False(t, h.HasEnd)
	assert.Equal(t, "07:59", DefaultConfig().HoverLabel(h, at(2024, 3, 10, 0, 0)))
}

func TestHoverEntry(t *testing.T) {
	c := DefaultConfig()
	e := entry("focus", at(2024, 3, 10, 5, 30), at(2024, 3, 10, 7, 15))

	h := c.HoverEntry(e, Point{X: 1, Y: 2})

	assert.True(t, h.HasEnd)
	assert.Equal(t, "05:30 - 07:15", c.HoverLabel(h, at(2024, 3, 10, 0, 0)))
}
