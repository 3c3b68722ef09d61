package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/planner/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewForTesting(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err, "failed to create database")
	t.Cleanup(func() { database.Close() })
	return database
}

func at(h, m int) time.Time {
	return time.Date(2024, 3, 10, h, m, 0, 0, time.Local)
}

// TestScenario1_DatabaseInitialization tests that init creates the entries table
func TestScenario1_DatabaseInitialization(t *testing.T) {
	// Given: no existing database
	dbPath := filepath.Join(t.TempDir(), "planner.db")
	_, err := os.Stat(dbPath)
	require.True(t, os.IsNotExist(err), "database should not exist yet")

	// When: initializing it
	database, err := NewForTesting(dbPath)
	require.NoError(t, err)
	defer database.Close()

	// Then: the file exists with an entries table
	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")
	assert.Equal(t, dbPath, database.Path())

	exists, err := database.TableExists()
	require.NoError(t, err)
	assert.True(t, exists, "entries table should exist")

	// And: the table has the expected columns
	schema, err := database.GetTableSchema()
	require.NoError(t, err)

	expected := []struct {
		name string
		typ  string
	}{
		{"id", "INTEGER"},
		{"uid", "TEXT"},
		{"kind", "TEXT"},
		{"title", "TEXT"},
		{"color", "TEXT"},
		{"start_ts", "INTEGER"},
		{"end_ts", "INTEGER"},
		{"all_day", "INTEGER"},
		{"completed", "INTEGER"},
	}
	require.Len(t, schema, len(expected))
	for i, col := range expected {
		assert.Equal(t, col.name, schema[i]["name"], "column %d name", i)
		assert.Equal(t, col.typ, schema[i]["type"], "column %d type", i)
	}
}

func TestNew_UninitializedDatabase(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "planner.db"))

	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestNew_AfterInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "planner.db")
	database, err := NewForTesting(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestInitSchema_Idempotent(t *testing.T) {
	database := newTestDB(t)

	created, err := database.InitSchema()

	require.NoError(t, err)
	assert.False(t, created, "second init should not recreate the schema")
}

// TestScenario2_InsertAndGetEntry tests a round trip of an entry
func TestScenario2_InsertAndGetEntry(t *testing.T) {
	// Given: an initialized database
	database := newTestDB(t)

	// When: inserting a plan
	e := models.NewEntry(models.KindPlan, "standup", at(9, 0), at(9, 30))
	e.Color = "#ff8800"
	id, err := database.InsertEntry(e)
	require.NoError(t, err)

	// Then: it can be read back
	got, err := database.GetEntry(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, e.UID, got.UID)
	assert.Equal(t, models.KindPlan, got.Kind)
	assert.Equal(t, "standup", got.Title)
	assert.Equal(t, "#ff8800", got.Color)
	assert.True(t, got.Start.Equal(at(9, 0)))
	assert.True(t, got.End.Equal(at(9, 30)))
	assert.False(t, got.Completed)

	count, err := database.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertEntry_Validation(t *testing.T) {
	database := newTestDB(t)

	_, err := database.InsertEntry(&models.Entry{Kind: models.KindTask, Title: "no uid"})
	assert.Error(t, err)

	_, err = database.InsertEntry(&models.Entry{UID: "x", Kind: "meeting", Title: "bad kind"})
	assert.Error(t, err)
}

func TestUpsertEntry_ReplacesByUID(t *testing.T) {
	database := newTestDB(t)
	e := models.NewEntry(models.KindPlan, "draft", at(9, 0), at(10, 0))
	id, err := database.UpsertEntry(e)
	require.NoError(t, err)

	e.Title = "final"
	e.End = at(11, 0)
	id2, err := database.UpsertEntry(e)
	require.NoError(t, err)

	assert.Equal(t, id, id2)
	got, err := database.GetEntry(id)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.True(t, got.End.Equal(at(11, 0)))

	count, err := database.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestScenario3_GetEntriesByRange tests the overlap query that feeds the grid
func TestScenario3_GetEntriesByRange(t *testing.T) {
	// Given: entries before, inside, across and after a window
	database := newTestDB(t)
	for _, e := range []*models.Entry{
		models.NewEntry(models.KindPlan, "before", at(5, 0), at(6, 0)),
		models.NewEntry(models.KindPlan, "across-start", at(7, 30), at(8, 30)),
		models.NewEntry(models.KindTask, "inside", at(9, 0), at(9, 30)),
		models.NewEntry(models.KindTask, "instant", at(10, 0), at(10, 0)),
		models.NewEntry(models.KindExecution, "across-end", at(11, 30), at(13, 0)),
		models.NewEntry(models.KindPlan, "touching-end", at(12, 0), at(12, 30)),
	} {
		_, err := database.InsertEntry(e)
		require.NoError(t, err)
	}

	// When: querying 08:00 to 12:00
	entries, err := database.GetEntriesByRange(at(8, 0), at(12, 0))
	require.NoError(t, err)

	// Then: only overlapping entries come back, ordered by start
	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"across-start", "inside", "instant", "across-end"}, titles)
}

func TestDeleteEntry(t *testing.T) {
	database := newTestDB(t)
	id, err := database.InsertEntry(models.NewEntry(models.KindTask, "gone", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	deleted, err := database.DeleteEntry(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = database.DeleteEntry(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSetCompleted(t *testing.T) {
	database := newTestDB(t)
	id, err := database.InsertEntry(models.NewEntry(models.KindTask, "write", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	require.NoError(t, database.SetCompleted(id, true))

	got, err := database.GetEntry(id)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	assert.Error(t, database.SetCompleted(999, true))
}

func TestRecordImport(t *testing.T) {
	database := newTestDB(t)

	_, _, ok, err := database.LastImport("work.ics")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, database.RecordImport("work.ics", at(8, 0), 3))
	require.NoError(t, database.RecordImport("work.ics", at(9, 0), 5))

	when, count, ok, err := database.LastImport("work.ics")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, when.Equal(at(9, 0)))
	assert.Equal(t, 5, count)
}
