package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowPosition(t *testing.T) {
	c := DefaultConfig()

	m := c.NowPosition(at(2024, 3, 10, 9, 15))
	assert.Equal(t, NowMarker{RowIndex: 5, PercentWithinRow: 25, Minutes: 315}, m)

	m = c.NowPosition(at(2024, 3, 11, 3, 30))
	assert.Equal(t, 23, m.RowIndex)
	assert.Equal(t, 1410, m.Minutes)
	assert.InDelta(t, 50, m.PercentWithinRow, 0.001)
}

func TestShowsNow(t *testing.T) {
	c := DefaultConfig()
	sunday := at(2024, 3, 10, 0, 0)

	assert.True(t, c.ShowsNow(sunday, at(2024, 3, 10, 12, 0)))
	assert.True(t, c.ShowsNow(sunday, at(2024, 3, 11, 3, 30)), "before day start belongs to the previous grid day")
	assert.False(t, c.ShowsNow(sunday, at(2024, 3, 11, 4, 0)))
	assert.False(t, c.ShowsNow(sunday, at(2024, 3, 10, 3, 59)))
}

func TestWeeklyNowPosition(t *testing.T) {
	c := DefaultConfig()
	origin := c.WeekOrigin(at(2024, 3, 13, 12, 0))

	pos, ok := c.WeeklyNowPosition(at(2024, 3, 13, 3, 0), origin)
	require.True(t, ok)
	assert.Equal(t, WeeklyPosition{DayIndex: 2, Minutes: 1380}, pos)

	_, ok = c.WeeklyNowPosition(at(2024, 3, 17, 4, 0), origin)
	assert.False(t, ok)

	_, ok = c.WeeklyNowPosition(at(2024, 3, 10, 3, 59), origin)
	assert.False(t, ok)
}

func TestWeeklyNowPosition_AfterSpringForward(t *testing.T) {
	ny := newYork(t)
	c := DefaultConfig()
	c.WeekStart = time.Monday
	origin := c.WeekOrigin(time.Date(2026, 3, 4, 12, 0, 0, 0, ny))

	pos, ok := c.WeeklyNowPosition(time.Date(2026, 3, 8, 4, 30, 0, 0, ny), origin)

	require.True(t, ok)
	assert.Equal(t, WeeklyPosition{DayIndex: 6, Minutes: 30}, pos)
}
