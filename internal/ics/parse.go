// Package ics turns iCalendar data into planner entries, expanding
// recurrences over a bounded window.
package ics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/chris/planner/internal/log"
)

// Event is one VEVENT with its recurrence data left unexpanded.
type Event struct {
	UID      string
	Summary  string
	Color    string
	Start    time.Time
	End      time.Time
	AllDay   bool
	RRule    string
	ExDates  []time.Time
	Override *time.Time // RECURRENCE-ID of the instance this event replaces
}

// ParseFile parses the calendar at path.
func ParseFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a calendar. Events that cannot be read are logged and skipped.
func Parse(r io.Reader) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, err := parseEvent(ve)
		if err != nil {
			log.Error("skipping vevent", err)
			continue
		}
		events = append(events, ev)
	}
	log.Debug("parsed calendar", "events", len(events))
	return events, nil
}

func parseEvent(ve *ical.VEvent) (Event, error) {
	var ev Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, errors.New("missing UID")
	}
	ev.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty("COLOR")); p != nil {
		ev.Color = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, errors.New("missing DTSTART")
	}
	ev.AllDay = isDateValue(dtStart)

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("bad DTSTART: %w", err)
	}
	ev.Start = start

	if end, err := ve.GetEndAt(); err == nil {
		ev.End = end
	} else if ev.AllDay {
		ev.End = start.AddDate(0, 0, 1)
	} else {
		ev.End = start
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseTime(part, start.Location()); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		if t, err := parseTime(p.Value, start.Location()); err == nil {
			ev.Override = &t
		}
	}

	return ev, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseTime reads the basic DATE and DATE-TIME forms. Floating values take loc.
func parseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
