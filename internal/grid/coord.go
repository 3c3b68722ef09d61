// Package grid converts timed entries into positions on a discretized
// day/week time grid and tracks pointer-driven interval selection on it.
//
// All placement math happens in grid minutes: minutes elapsed since the grid
// day's origin, which sits at DayStartHour rather than midnight.
package grid

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	MinutesPerDay  = HoursPerDay * MinutesPerHour

	DefaultDayStartHour   = 4
	DefaultBlocksPerHour  = 6
	DefaultDaysCount      = 7
	DefaultSnapMinutes    = 10
	DefaultClickThreshold = 2
)

// Config parameterizes the grid. Daily and weekly views share one Config and
// differ only in the unit and row sizes they ask for.
type Config struct {
	// DayStartHour is the wall-clock hour at which a grid day begins.
	DayStartHour int
	// BlocksPerHour subdivides an hour row in the daily block view. Must divide 60.
	BlocksPerHour int
	// DaysCount is the number of day columns in the weekly view.
	DaysCount int
	// SnapMinutes is the weekly drag snap unit.
	SnapMinutes int
	// ClickThreshold is the minimum |end-start| for a drag to count as a selection.
	ClickThreshold int
	// WeekStart is the first day column of the weekly view.
	WeekStart time.Weekday
}

// DefaultConfig returns the stock grid configuration.
func DefaultConfig() Config {
	return Config{
		DayStartHour:   DefaultDayStartHour,
		BlocksPerHour:  DefaultBlocksPerHour,
		DaysCount:      DefaultDaysCount,
		SnapMinutes:    DefaultSnapMinutes,
		ClickThreshold: DefaultClickThreshold,
		WeekStart:      time.Sunday,
	}
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	if c.DayStartHour < 0 || c.DayStartHour >= HoursPerDay {
		c.DayStartHour = DefaultDayStartHour
	}
	if c.BlocksPerHour <= 0 || MinutesPerHour%c.BlocksPerHour != 0 {
		c.BlocksPerHour = DefaultBlocksPerHour
	}
	if c.DaysCount <= 0 {
		c.DaysCount = DefaultDaysCount
	}
	if c.SnapMinutes <= 0 || c.SnapMinutes > MinutesPerHour {
		c.SnapMinutes = DefaultSnapMinutes
	}
	if c.ClickThreshold <= 0 {
		c.ClickThreshold = DefaultClickThreshold
	}
	if c.WeekStart < time.Sunday || c.WeekStart > time.Saturday {
		c.WeekStart = time.Sunday
	}
}

// BlockMinutes returns the length of one daily block in minutes.
func (c Config) BlockMinutes() int {
	return MinutesPerHour / c.BlocksPerHour
}

// ToGridMinutes returns the minutes elapsed between the start of t's grid day
// and t. Hours before DayStartHour belong to the previous grid day.
func (c Config) ToGridMinutes(t time.Time) int {
	hour := t.Hour()
	if hour < c.DayStartHour {
		hour += HoursPerDay
	}
	return (hour-c.DayStartHour)*MinutesPerHour + t.Minute()
}

// ToBlock returns t's position in daily blocks (04:00 = 0 with the default config).
func (c Config) ToBlock(t time.Time) int {
	return c.ToGridMinutes(t) / c.BlockMinutes()
}

// FromGridMinutes reconstructs a wall-clock time on baseDate's calendar day.
// minutes is clamped to a single grid day.
func (c Config) FromGridMinutes(minutes int, baseDate time.Time) time.Time {
	m := ClampMinutes(minutes)
	hour := (c.DayStartHour + HourIndex(m)) % HoursPerDay
	y, mo, d := baseDate.Date()
	return time.Date(y, mo, d, hour, MinuteInHour(m), 0, 0, baseDate.Location())
}

// AtGridMinutes returns the absolute instant minutes after the grid day
// starting at dayOrigin. Unlike FromGridMinutes it keeps the end of the day
// (minute 1440) distinct from its start.
func (c Config) AtGridMinutes(dayOrigin time.Time, minutes int) time.Time {
	return dayOrigin.Add(time.Duration(clampInclusive(minutes, 0, MinutesPerDay)) * time.Minute)
}

// ClampMinutes clamps m into a single grid day, [0, 1440).
func ClampMinutes(m int) int {
	return clampInclusive(m, 0, MinutesPerDay-1)
}

// HourIndex returns the hour row that grid minute m falls in.
func HourIndex(m int) int {
	return m / MinutesPerHour
}

// MinuteInHour returns m's offset within its hour row.
func MinuteInHour(m int) int {
	return m % MinutesPerHour
}

// GridDate returns the calendar date (at midnight) of the grid day containing t.
func (c Config) GridDate(t time.Time) time.Time {
	if t.Hour() < c.DayStartHour {
		t = t.AddDate(0, 0, -1)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayOrigin returns DayStartHour:00 on date's calendar day.
func (c Config) DayOrigin(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.DayStartHour, 0, 0, 0, date.Location())
}

// DayRange returns the [start, end) instants of the grid day labelled date.
func (c Config) DayRange(date time.Time) (time.Time, time.Time) {
	start := c.DayOrigin(date)
	return start, start.AddDate(0, 0, 1)
}

// WeekOrigin returns the origin of the first grid day of date's week.
func (c Config) WeekOrigin(date time.Time) time.Time {
	offset := (int(date.Weekday()) - int(c.WeekStart) + 7) % 7
	return c.DayOrigin(date.AddDate(0, 0, -offset))
}

// WeekRange returns the [start, end) instants covered by the weekly grid.
func (c Config) WeekRange(date time.Time) (time.Time, time.Time) {
	start := c.WeekOrigin(date)
	return start, start.AddDate(0, 0, c.DaysCount)
}

// HourLabel returns the two-digit wall-clock hour shown beside row.
func (c Config) HourLabel(row int) string {
	return fmt.Sprintf("%02d", (c.DayStartHour+row)%HoursPerDay)
}

// FormatMinutes renders grid minute m as "HH:MM". Minute 1440, the end of
// the grid day, renders as the day start hour.
func (c Config) FormatMinutes(m int, baseDate time.Time) string {
	m = clampInclusive(m, 0, MinutesPerDay)
	y, mo, d := baseDate.Date()
	hour := (c.DayStartHour + HourIndex(m)) % HoursPerDay
	t := time.Date(y, mo, d, hour, MinuteInHour(m), 0, 0, baseDate.Location())
	return strftime.Format("%H:%M", t)
}

// FormatRange renders an interval as "HH:MM - HH:MM", ordering the ends.
func (c Config) FormatRange(start, end int, baseDate time.Time) string {
	if end < start {
		start, end = end, start
	}
	return c.FormatMinutes(start, baseDate) + " - " + c.FormatMinutes(end, baseDate)
}

func clampInclusive(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
