package grid

import (
	"time"

	"github.com/chris/planner/pkg/models"
)

// DaySegment is the part of an entry that falls in one day column.
// StartIndex and EndIndex are grid minutes within that day.
type DaySegment struct {
	Entry      models.Entry
	DayIndex   int
	StartIndex int
	EndIndex   int
}

// Processed converts the segment for use with ForRow.
func (s DaySegment) Processed() Processed {
	return Processed{Entry: s.Entry, StartIndex: s.StartIndex, EndIndex: s.EndIndex}
}

// SplitAcrossDays clips e into one segment per grid day it overlaps within
// [origin, origin + dayCount days). Entries wholly outside that window yield
// no segments. Each segment has a span of at least one minute.
//
// With the default minutesPerDay, day d starts at the same wall-clock time as
// origin d calendar days later, so columns stay aligned across DST changes.
func (c Config) SplitAcrossDays(e models.Entry, origin time.Time, dayCount, minutesPerDay int) []DaySegment {
	if dayCount <= 0 {
		dayCount = c.DaysCount
	}
	if minutesPerDay <= 0 {
		minutesPerDay = MinutesPerDay
	}

	firstDay := dayIndexOf(e.Start, origin, minutesPerDay)
	// Zero-length and inverted entries keep a single sliver on their first day.
	degenerate := !e.End.After(e.Start)
	lastDay := firstDay
	if !degenerate {
		// The end is exclusive: an entry ending on a day boundary stays out
		// of the next day.
		lastDay = dayIndexOf(e.End.Add(-time.Nanosecond), origin, minutesPerDay)
	}

	from := max(0, firstDay)
	to := min(dayCount-1, lastDay)

	var out []DaySegment
	for day := from; day <= to; day++ {
		start := 0
		if day == firstDay {
			start = c.ToGridMinutes(e.Start)
		}
		end := minutesPerDay
		if day == lastDay && degenerate {
			end = start
		} else if day == lastDay && e.End.Before(dayStart(origin, day+1, minutesPerDay)) {
			end = c.ToGridMinutes(e.End)
		}
		if end <= start {
			end = start + 1
		}
		out = append(out, DaySegment{
			Entry:      e,
			DayIndex:   day,
			StartIndex: start,
			EndIndex:   end,
		})
	}
	return out
}

// dayStart returns the instant day column d begins.
func dayStart(origin time.Time, d, minutesPerDay int) time.Time {
	if minutesPerDay == MinutesPerDay {
		return origin.AddDate(0, 0, d)
	}
	return origin.Add(time.Duration(d*minutesPerDay) * time.Minute)
}

// dayIndexOf returns the day column containing t, which may be negative or
// past the window.
func dayIndexOf(t, origin time.Time, minutesPerDay int) int {
	d := floorDiv(int(t.Sub(origin)/time.Minute), minutesPerDay)
	// A DST change moves real boundaries up to an hour off the fixed-length
	// estimate; step until t sits inside [dayStart(d), dayStart(d+1)).
	for t.Before(dayStart(origin, d, minutesPerDay)) {
		d--
	}
	for !t.Before(dayStart(origin, d+1, minutesPerDay)) {
		d++
	}
	return d
}

// SplitAll splits every entry over the configured number of days from origin.
func (c Config) SplitAll(entries []models.Entry, origin time.Time) []DaySegment {
	var out []DaySegment
	for _, e := range entries {
		out = append(out, c.SplitAcrossDays(e, origin, c.DaysCount, MinutesPerDay)...)
	}
	return out
}

// DayColumn is one day column of a weekly layout.
type DayColumn struct {
	Index    int
	Date     time.Time
	Segments []DaySegment
}

// Processed returns the column's segments ready for ForRow.
func (d DayColumn) Processed() []Processed {
	out := make([]Processed, 0, len(d.Segments))
	for _, s := range d.Segments {
		out = append(out, s.Processed())
	}
	return out
}

// WeeklyLayout groups the split segments of entries by day column.
func (c Config) WeeklyLayout(entries []models.Entry, origin time.Time) []DayColumn {
	cols := make([]DayColumn, c.DaysCount)
	for i := range cols {
		cols[i] = DayColumn{Index: i, Date: origin.AddDate(0, 0, i)}
	}
	for _, seg := range c.SplitAll(entries, origin) {
		cols[seg.DayIndex].Segments = append(cols[seg.DayIndex].Segments, seg)
	}
	return cols
}
