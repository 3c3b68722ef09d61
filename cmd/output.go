package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/chris/planner/internal/grid"
)

const dateLayout = "2006-01-02"

// isTerminal returns true if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// noColor reports whether output to w should be plain. For terminals it
// also picks the lipgloss profile from the environment, so NO_COLOR and
// limited terminals are respected.
func noColor(w io.Writer) bool {
	if !isTerminal(w) {
		return true
	}
	profile := termenv.NewOutput(w).EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	return profile == termenv.Ascii
}

// parseDate resolves "today", "yesterday", "tomorrow" or YYYY-MM-DD to a
// grid date. Relative names follow the grid day, so 02:00 is still
// "today" for the day that started the evening before.
func parseDate(s string, cfg grid.Config, now time.Time) (time.Time, error) {
	today := cfg.GridDate(now)
	switch strings.ToLower(s) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be 'today', 'yesterday', 'tomorrow', or YYYY-MM-DD format")
	}
	return d, nil
}

// parseClock resolves "HH:MM" on the grid day labelled date. Hours before
// the day start belong to the next calendar day.
func parseClock(s string, cfg grid.Config, date time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	y, m, d := date.Date()
	out := time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
	if t.Hour() < cfg.DayStartHour {
		out = out.AddDate(0, 0, 1)
	}
	return out, nil
}
