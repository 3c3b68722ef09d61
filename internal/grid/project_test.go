package grid

import (
	"testing"
	"time"

	"github.com/chris/planner/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title string, start, end time.Time) models.Entry {
	return models.Entry{Kind: models.KindPlan, Title: title, Start: start, End: end}
}

// TestProject_ZeroLengthEntryAtDayStart covers an entry that starts and ends
// exactly at the grid day's origin.
func TestProject_ZeroLengthEntryAtDayStart(t *testing.T) {
	// Given: a zero-length entry at 04:00
	c := DefaultConfig()
	e := entry("wake", at(2024, 3, 10, 4, 0), at(2024, 3, 10, 4, 0))

	// When: projecting in blocks
	processed := c.Project([]models.Entry{e}, UnitBlocks)

	// Then: it occupies the first block
	require.Len(t, processed, 1)
	assert.Equal(t, 0, processed[0].StartIndex)
	assert.Equal(t, 1, processed[0].EndIndex)

	// And: row 0 shows it as its start row
	placements := ForRow(processed, 0, c.RowSize(UnitBlocks))
	require.Len(t, placements, 1)
	assert.Equal(t, 0, placements[0].OffsetInRow)
	assert.Equal(t, 1, placements[0].Span)
	assert.True(t, placements[0].IsStart)
}

func TestProject_MinimumSpan(t *testing.T) {
	c := DefaultConfig()
	entries := []models.Entry{
		entry("empty", at(2024, 3, 10, 9, 0), at(2024, 3, 10, 9, 0)),
		entry("inverted", at(2024, 3, 10, 9, 0), at(2024, 3, 10, 8, 0)),
		entry("short", at(2024, 3, 10, 9, 0), at(2024, 3, 10, 9, 5)),
	}

	for _, unit := range []Unit{UnitMinutes, UnitBlocks} {
		for _, p := range c.Project(entries, unit) {
			assert.GreaterOrEqual(t, p.EndIndex-p.StartIndex, 1, "%s in %s", p.Entry.Title, unit)
		}
	}
}

func TestForRow_SpansMultipleRows(t *testing.T) {
	// Given: an entry from 05:30 to 07:15
	c := DefaultConfig()
	e := entry("focus", at(2024, 3, 10, 5, 30), at(2024, 3, 10, 7, 15))
	processed := c.Project([]models.Entry{e}, UnitMinutes)

	// When: placing it in each row
	var placements []RowPlacement
	for row := 0; row < HoursPerDay; row++ {
		placements = append(placements, ForRow(processed, row, MinutesPerHour)...)
	}

	// Then: it covers three rows
	require.Len(t, placements, 3)
	assert.Equal(t, RowPlacement{Entry: e, OffsetInRow: 30, Span: 30, IsStart: true}, placements[0])
	assert.Equal(t, RowPlacement{Entry: e, OffsetInRow: 0, Span: 60}, placements[1])
	assert.Equal(t, RowPlacement{Entry: e, OffsetInRow: 0, Span: 15}, placements[2])

	// And: the spans add up to the duration
	total := 0
	starts := 0
	for _, p := range placements {
		total += p.Span
		if p.IsStart {
			starts++
		}
	}
	assert.Equal(t, 105, total)
	assert.Equal(t, 1, starts)
}

func TestForRow_Blocks(t *testing.T) {
	c := DefaultConfig()
	e := entry("focus", at(2024, 3, 10, 5, 30), at(2024, 3, 10, 7, 15))
	processed := c.Project([]models.Entry{e}, UnitBlocks)

	require.Len(t, processed, 1)
	assert.Equal(t, 9, processed[0].StartIndex)
	assert.Equal(t, 19, processed[0].EndIndex)

	rowUnit := c.RowSize(UnitBlocks)
	assert.Empty(t, ForRow(processed, 0, rowUnit))

	row1 := ForRow(processed, 1, rowUnit)
	require.Len(t, row1, 1)
	assert.Equal(t, 3, row1[0].OffsetInRow)
	assert.Equal(t, 3, row1[0].Span)
	assert.True(t, row1[0].IsStart)

	row3 := ForRow(processed, 3, rowUnit)
	require.Len(t, row3, 1)
	assert.Equal(t, 0, row3[0].OffsetInRow)
	assert.Equal(t, 1, row3[0].Span)
	assert.False(t, row3[0].IsStart)
}

func TestForRow_KeepsInputOrderForOverlaps(t *testing.T) {
	c := DefaultConfig()
	a := entry("a", at(2024, 3, 10, 9, 0), at(2024, 3, 10, 10, 0))
	b := entry("b", at(2024, 3, 10, 9, 15), at(2024, 3, 10, 9, 45))
	processed := c.Project([]models.Entry{a, b}, UnitMinutes)

	row := ForRow(processed, 5, MinutesPerHour)

	require.Len(t, row, 2)
	assert.Equal(t, "a", row[0].Entry.Title)
	assert.Equal(t, "b", row[1].Entry.Title)
	assert.Equal(t, 15, row[1].OffsetInRow)
	assert.Equal(t, 30, row[1].Span)
}

func TestSelectionForRow(t *testing.T) {
	seg, ok := SelectionForRow(100, 500, 1, MinutesPerHour)
	require.True(t, ok)
	assert.Equal(t, RowSegment{OffsetInRow: 40, Span: 20}, seg)

	seg, ok = SelectionForRow(100, 500, 4, MinutesPerHour)
	require.True(t, ok)
	assert.Equal(t, RowSegment{OffsetInRow: 0, Span: 60}, seg)

	seg, ok = SelectionForRow(100, 500, 8, MinutesPerHour)
	require.True(t, ok)
	assert.Equal(t, RowSegment{OffsetInRow: 0, Span: 20}, seg)

	_, ok = SelectionForRow(100, 500, 0, MinutesPerHour)
	assert.False(t, ok)
	_, ok = SelectionForRow(100, 500, 9, MinutesPerHour)
	assert.False(t, ok)
}

func TestDailyLayout(t *testing.T) {
	// Given: one entry inside the day and one spilling in from the previous day
	c := DefaultConfig()
	origin := c.DayOrigin(at(2024, 3, 10, 0, 0))
	entries := []models.Entry{
		entry("standup", at(2024, 3, 10, 9, 0), at(2024, 3, 10, 9, 30)),
		entry("late", at(2024, 3, 10, 2, 0), at(2024, 3, 10, 5, 0)),
	}

	// When: laying out the day
	rows := c.DailyLayout(entries, origin, UnitMinutes)

	// Then: there is a row per hour, labelled from the day start
	require.Len(t, rows, HoursPerDay)
	assert.Equal(t, "04", rows[0].Label)
	assert.Equal(t, "03", rows[23].Label)

	// And: the spill-over is clipped to the top of the day
	require.Len(t, rows[0].Placements, 1)
	assert.Equal(t, "late", rows[0].Placements[0].Entry.Title)
	assert.Equal(t, 60, rows[0].Placements[0].Span)
	assert.Empty(t, rows[23].Placements)

	// And: the standup sits in the 09 row
	require.Len(t, rows[5].Placements, 1)
	assert.Equal(t, "standup", rows[5].Placements[0].Entry.Title)
	assert.Equal(t, 30, rows[5].Placements[0].Span)
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "minutes", UnitMinutes.String())
	assert.Equal(t, "blocks", UnitBlocks.String())
}
