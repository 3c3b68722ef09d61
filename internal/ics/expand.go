package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/pkg/models"
)

const defaultMaxOccurrences = 5000

// ExpandConfig bounds recurrence expansion.
type ExpandConfig struct {
	// Location is the zone entries are converted to. Defaults to time.Local.
	Location *time.Location
	// Start and End bound the window; occurrences overlapping it are kept.
	Start time.Time
	End   time.Time
	// MaxOccurrences caps each recurring event.
	MaxOccurrences int
	// Kind is assigned to every produced entry. Defaults to plan.
	Kind models.Kind
}

// Expand converts parsed events into entries within the window. Recurring
// instances get a UID of the event UID plus the instance start, so
// re-importing the same calendar updates rather than duplicates.
func Expand(events []Event, cfg ExpandConfig) ([]models.Entry, error) {
	if cfg.End.Before(cfg.Start) {
		return nil, errors.New("expand window ends before it starts")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}
	if cfg.Kind == "" {
		cfg.Kind = models.KindPlan
	}

	overrides := make(map[string][]Event)
	var bases []Event
	for _, ev := range events {
		if ev.Override != nil {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
			continue
		}
		bases = append(bases, ev)
	}

	var out []models.Entry
	for _, ev := range bases {
		if ev.RRule == "" {
			if overlaps(ev.Start, ev.End, cfg.Start, cfg.End) {
				out = append(out, toEntry(ev, ev.Start, ev.End, ev.UID, cfg))
			}
			continue
		}
		out = append(out, expandRecurring(ev, overrides[ev.UID], cfg)...)
	}
	return out, nil
}

func expandRecurring(ev Event, overrides []Event, cfg ExpandConfig) []models.Entry {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		log.Error("bad RRULE", err, "uid", ev.UID, "rrule", ev.RRule)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	dur := ev.End.Sub(ev.Start)
	loc := ev.Start.Location()
	// Widen the lower bound so instances that began earlier but still overlap
	// the window are found.
	starts := set.Between(cfg.Start.Add(-dur).In(loc), cfg.End.In(loc), true)
	if len(starts) > cfg.MaxOccurrences {
		log.Info("truncating recurrence", "uid", ev.UID, "cap", cfg.MaxOccurrences)
		starts = starts[:cfg.MaxOccurrences]
	}

	var out []models.Entry
	for _, s := range starts {
		inst, start, end := ev, s, s.Add(dur)
		if o, ok := findOverride(overrides, s); ok {
			inst, start, end = o, o.Start, o.End
		}
		if !overlaps(start, end, cfg.Start, cfg.End) {
			continue
		}
		uid := ev.UID + "@" + s.UTC().Format("20060102T150405Z")
		out = append(out, toEntry(inst, start, end, uid, cfg))
	}
	return out
}

func findOverride(overrides []Event, start time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.Override.Equal(start) {
			return o, true
		}
	}
	return Event{}, false
}

func toEntry(ev Event, start, end time.Time, uid string, cfg ExpandConfig) models.Entry {
	return models.Entry{
		UID:    uid,
		Kind:   cfg.Kind,
		Title:  ev.Summary,
		Color:  ev.Color,
		Start:  start.In(cfg.Location),
		End:    end.In(cfg.Location),
		AllDay: ev.AllDay,
	}
}

// overlaps treats zero-length ranges as instants.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aEnd.After(aStart) {
		return !aStart.Before(bStart) && aStart.Before(bEnd)
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
