package grid

import "time"

// NowMarker is the position of the current-time indicator on the daily grid.
type NowMarker struct {
	RowIndex         int     `json:"row_index" yaml:"row_index"`
	PercentWithinRow float64 `json:"percent_within_row" yaml:"percent_within_row"`
	Minutes          int     `json:"minutes" yaml:"minutes"`
}

// NowPosition places now on the daily grid. Times before DayStartHour land
// in the last rows of the previous grid day. Seconds are ignored.
func (c Config) NowPosition(now time.Time) NowMarker {
	m := c.ToGridMinutes(now)
	return NowMarker{
		RowIndex:         HourIndex(m),
		PercentWithinRow: float64(now.Minute()) / MinutesPerHour * 100,
		Minutes:          m,
	}
}

// ShowsNow reports whether the daily grid labelled displayed contains now.
func (c Config) ShowsNow(displayed, now time.Time) bool {
	y1, m1, d1 := displayed.Date()
	y2, m2, d2 := c.GridDate(now).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeeklyNowPosition places now in the weekly grid starting at origin. It
// returns false when now falls outside the displayed days.
func (c Config) WeeklyNowPosition(now, origin time.Time) (WeeklyPosition, bool) {
	day := dayIndexOf(now, origin, MinutesPerDay)
	if day < 0 || day >= c.DaysCount {
		return WeeklyPosition{}, false
	}
	return WeeklyPosition{DayIndex: day, Minutes: c.ToGridMinutes(now)}, true
}
