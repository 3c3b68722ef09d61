package grid

import (
	"time"

	"github.com/chris/planner/pkg/models"
)

// Unit selects the coordinate unit of projected indices.
type Unit int

const (
	// UnitMinutes indexes by grid minute; an hour row is 60 units wide.
	UnitMinutes Unit = iota
	// UnitBlocks indexes by daily block; an hour row is BlocksPerHour units wide.
	UnitBlocks
)

// String returns the flag spelling of u.
func (u Unit) String() string {
	if u == UnitBlocks {
		return "blocks"
	}
	return "minutes"
}

// RowSize returns how many units of u make up one hour row.
func (c Config) RowSize(u Unit) int {
	if u == UnitBlocks {
		return c.BlocksPerHour
	}
	return MinutesPerHour
}

// fromMinutes converts a grid-minute value into unit u.
func (c Config) fromMinutes(m int, u Unit) int {
	if u == UnitBlocks {
		return m / c.BlockMinutes()
	}
	return m
}

// Processed is an entry with its grid indices resolved.
type Processed struct {
	Entry      models.Entry
	StartIndex int
	EndIndex   int
}

// RowPlacement describes how one entry renders within one row.
type RowPlacement struct {
	Entry       models.Entry
	OffsetInRow int
	Span        int
	// IsStart marks the row the entry begins in, where its label renders.
	IsStart bool
}

// Project resolves grid indices for entries. Zero-length and inverted entries
// are widened to one unit so they always render.
func (c Config) Project(entries []models.Entry, unit Unit) []Processed {
	out := make([]Processed, 0, len(entries))
	for _, e := range entries {
		start := c.fromMinutes(c.ToGridMinutes(e.Start), unit)
		end := c.fromMinutes(c.ToGridMinutes(e.End), unit)
		out = append(out, newProcessed(e, start, end))
	}
	return out
}

func newProcessed(e models.Entry, start, end int) Processed {
	if end <= start {
		end = start + 1
	}
	return Processed{Entry: e, StartIndex: start, EndIndex: end}
}

// ForRow returns the placements of processed entries intersecting row
// rowIndex, where each row is rowUnit units wide. Input order is kept;
// overlapping entries are not assigned lanes.
func ForRow(processed []Processed, rowIndex, rowUnit int) []RowPlacement {
	rowStart := rowIndex * rowUnit
	rowEnd := rowStart + rowUnit

	var out []RowPlacement
	for _, p := range processed {
		if p.StartIndex >= rowEnd || p.EndIndex <= rowStart {
			continue
		}
		from := max(p.StartIndex, rowStart)
		out = append(out, RowPlacement{
			Entry:       p.Entry,
			OffsetInRow: from - rowStart,
			Span:        min(p.EndIndex, rowEnd) - from,
			IsStart:     p.StartIndex >= rowStart,
		})
	}
	return out
}

// RowSegment is the part of a selection that falls in one row.
type RowSegment struct {
	OffsetInRow int `json:"offset" yaml:"offset"`
	Span        int `json:"span" yaml:"span"`
}

// SelectionForRow clips the normalized interval [start, end) to row rowIndex.
func SelectionForRow(start, end, rowIndex, rowUnit int) (RowSegment, bool) {
	rowStart := rowIndex * rowUnit
	rowEnd := rowStart + rowUnit
	if start >= rowEnd || end <= rowStart {
		return RowSegment{}, false
	}
	from := max(start, rowStart)
	return RowSegment{
		OffsetInRow: from - rowStart,
		Span:        min(end, rowEnd) - from,
	}, true
}

// Row is one hour row of a daily layout.
type Row struct {
	Index      int
	Label      string
	Placements []RowPlacement
}

// DailyLayout lays entries out over the grid day starting at dayOrigin.
// Entries are first clipped to the day so that ones spilling in from the
// previous or next day do not wrap around the seam.
func (c Config) DailyLayout(entries []models.Entry, dayOrigin time.Time, unit Unit) []Row {
	processed := c.ProjectDay(entries, dayOrigin, unit)

	rowUnit := c.RowSize(unit)
	rows := make([]Row, HoursPerDay)
	for i := range rows {
		rows[i] = Row{
			Index:      i,
			Label:      c.HourLabel(i),
			Placements: ForRow(processed, i, rowUnit),
		}
	}
	return rows
}

// ProjectDay is Project restricted to the single grid day at dayOrigin.
func (c Config) ProjectDay(entries []models.Entry, dayOrigin time.Time, unit Unit) []Processed {
	var out []Processed
	for _, e := range entries {
		for _, seg := range c.SplitAcrossDays(e, dayOrigin, 1, MinutesPerDay) {
			out = append(out, newProcessed(e,
				c.fromMinutes(seg.StartIndex, unit),
				c.fromMinutes(seg.EndIndex, unit)))
		}
	}
	return out
}
