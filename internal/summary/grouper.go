package summary

import (
	"time"

	"github.com/chris/planner/pkg/models"
)

type groupKey struct {
	kind  models.Kind
	title string
}

// Summarize groups entries by kind and title. Only the part of each entry
// inside [start, end) is counted; entries with no time inside are skipped
// unless they are instants within the window.
func Summarize(entries []models.Entry, start, end time.Time) []TitleSummary {
	index := make(map[groupKey]int)
	var out []TitleSummary

	for _, e := range entries {
		from, to := e.Start, e.End
		if to.Before(from) {
			from, to = to, from
		}
		instant := from.Equal(to)
		if !from.Before(end) || to.Before(start) || (!instant && !to.After(start)) {
			continue
		}
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}

		key := groupKey{kind: e.Kind, title: e.Title}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, TitleSummary{Title: e.Title, Kind: e.Kind, First: from, Last: to})
		}

		s := &out[i]
		s.Count++
		s.Minutes += int(to.Sub(from) / time.Minute)
		if from.Before(s.First) {
			s.First = from
		}
		if to.After(s.Last) {
			s.Last = to
		}
	}
	return out
}

// Totals returns the summarized minutes per kind.
func Totals(summaries []TitleSummary) map[models.Kind]int {
	totals := make(map[models.Kind]int)
	for _, s := range summaries {
		totals[s.Kind] += s.Minutes
	}
	return totals
}

// Adherence is executed time as a percentage of planned time. It returns
// false when nothing was planned.
func Adherence(summaries []TitleSummary) (int, bool) {
	totals := Totals(summaries)
	planned := totals[models.KindPlan]
	if planned == 0 {
		return 0, false
	}
	return totals[models.KindExecution] * 100 / planned, true
}
