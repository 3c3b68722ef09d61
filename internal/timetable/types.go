// Package timetable builds serializable daily and weekly layouts from entries
// and renders them as text.
package timetable

import (
	"time"

	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/pkg/models"
)

const dateLayout = "2006-01-02"

// Placement is one entry's piece of an hour row.
type Placement struct {
	UID     string `json:"uid" yaml:"uid"`
	Title   string `json:"title" yaml:"title"`
	Kind    string `json:"kind" yaml:"kind"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
	Offset  int    `json:"offset" yaml:"offset"`
	Span    int    `json:"span" yaml:"span"`
	IsStart bool   `json:"is_start" yaml:"is_start"`
	// Range is the entry's full "HH:MM - HH:MM" span.
	Range string `json:"range" yaml:"range"`
}

// Row is one hour of the daily layout.
type Row struct {
	Index      int              `json:"index" yaml:"index"`
	Label      string           `json:"label" yaml:"label"`
	Placements []Placement      `json:"placements" yaml:"placements"`
	Selection  *grid.RowSegment `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// Daily is the layout of one grid day.
type Daily struct {
	Date         string          `json:"date" yaml:"date"`
	Unit         string          `json:"unit" yaml:"unit"`
	RowSize      int             `json:"row_size" yaml:"row_size"`
	DayStartHour int             `json:"day_start_hour" yaml:"day_start_hour"`
	Rows         []Row           `json:"rows" yaml:"rows"`
	Now          *grid.NowMarker `json:"now,omitempty" yaml:"now,omitempty"`
	Selection    *grid.Interval  `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// Segment is the part of an entry inside one day column, in grid minutes.
type Segment struct {
	UID   string `json:"uid" yaml:"uid"`
	Title string `json:"title" yaml:"title"`
	Kind  string `json:"kind" yaml:"kind"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Range string `json:"range" yaml:"range"`
}

// Day is one column of the weekly layout.
type Day struct {
	Index    int       `json:"index" yaml:"index"`
	Date     string    `json:"date" yaml:"date"`
	Weekday  string    `json:"weekday" yaml:"weekday"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Weekly is the layout of DaysCount consecutive grid days.
type Weekly struct {
	Start        string               `json:"start" yaml:"start"`
	DayStartHour int                  `json:"day_start_hour" yaml:"day_start_hour"`
	Days         []Day                `json:"days" yaml:"days"`
	Now          *grid.WeeklyPosition `json:"now,omitempty" yaml:"now,omitempty"`
	Selection    *grid.Interval       `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// Options are the optional overlays of a layout.
type Options struct {
	// Now, when set and inside the layout, adds the current-time marker.
	Now *time.Time
	// Selection is a normalized interval to clip into rows.
	Selection *grid.Interval
}

// BuildDaily lays out entries over the grid day labelled date.
func BuildDaily(cfg grid.Config, entries []models.Entry, date time.Time, unit grid.Unit, opts Options) Daily {
	origin := cfg.DayOrigin(date)
	layout := cfg.DailyLayout(entries, origin, unit)
	rowSize := cfg.RowSize(unit)

	d := Daily{
		Date:         date.Format(dateLayout),
		Unit:         unit.String(),
		RowSize:      rowSize,
		DayStartHour: cfg.DayStartHour,
		Rows:         make([]Row, 0, len(layout)),
		Selection:    opts.Selection,
	}

	for _, r := range layout {
		row := Row{Index: r.Index, Label: r.Label, Placements: make([]Placement, 0, len(r.Placements))}
		for _, p := range r.Placements {
			row.Placements = append(row.Placements, Placement{
				UID:     p.Entry.UID,
				Title:   p.Entry.Title,
				Kind:    string(p.Entry.Kind),
				Color:   p.Entry.Color,
				Offset:  p.OffsetInRow,
				Span:    p.Span,
				IsStart: p.IsStart,
				Range:   entryRange(cfg, p.Entry, origin),
			})
		}
		if opts.Selection != nil {
			start, end := selectionUnits(cfg, *opts.Selection, unit)
			if seg, ok := grid.SelectionForRow(start, end, r.Index, rowSize); ok {
				row.Selection = &seg
			}
		}
		d.Rows = append(d.Rows, row)
	}

	if opts.Now != nil && cfg.ShowsNow(date, *opts.Now) {
		m := cfg.NowPosition(*opts.Now)
		d.Now = &m
	}
	return d
}

// BuildWeekly lays out entries over the week containing date.
func BuildWeekly(cfg grid.Config, entries []models.Entry, date time.Time, opts Options) Weekly {
	origin := cfg.WeekOrigin(date)
	w := Weekly{
		Start:        origin.Format(dateLayout),
		DayStartHour: cfg.DayStartHour,
		Days:         make([]Day, 0, cfg.DaysCount),
		Selection:    opts.Selection,
	}

	for _, col := range cfg.WeeklyLayout(entries, origin) {
		day := Day{
			Index:    col.Index,
			Date:     col.Date.Format(dateLayout),
			Weekday:  col.Date.Weekday().String()[:3],
			Segments: make([]Segment, 0, len(col.Segments)),
		}
		for _, s := range col.Segments {
			day.Segments = append(day.Segments, Segment{
				UID:   s.Entry.UID,
				Title: s.Entry.Title,
				Kind:  string(s.Entry.Kind),
				Color: s.Entry.Color,
				Start: s.StartIndex,
				End:   s.EndIndex,
				Range: cfg.FormatRange(s.StartIndex, s.EndIndex, col.Date),
			})
		}
		w.Days = append(w.Days, day)
	}

	if opts.Now != nil {
		if pos, ok := cfg.WeeklyNowPosition(*opts.Now, origin); ok {
			w.Now = &pos
		}
	}
	return w
}

// entryRange formats the entry's own times, not its clipped segment.
func entryRange(cfg grid.Config, e models.Entry, origin time.Time) string {
	return cfg.FormatMinutes(cfg.ToGridMinutes(e.Start), origin) + " - " + cfg.FormatMinutes(cfg.ToGridMinutes(e.End), origin)
}

func selectionUnits(cfg grid.Config, iv grid.Interval, unit grid.Unit) (int, int) {
	if unit == grid.UnitBlocks {
		b := cfg.BlockMinutes()
		return iv.Start / b, (iv.End + b - 1) / b
	}
	return iv.Start, iv.End
}
