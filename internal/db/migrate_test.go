package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/planner/internal/db/migrations"
)

// TestMigrate_FromVersion1 tests that opening a v1 database adds the imports table
func TestMigrate_FromVersion1(t *testing.T) {
	// Given: a database with only the first migration applied
	dbPath := filepath.Join(t.TempDir(), "planner.db")
	conn, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)

	_, err = conn.Exec(migrations.All[0])
	require.NoError(t, err)
	_, err = conn.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	_, err = conn.Exec(`
		INSERT INTO entries (uid, kind, title, start_ts, end_ts)
		VALUES ('abc', 'plan', 'kept', 1000, 2000)`)
	require.NoError(t, err)
	conn.Close()

	// When: opening it
	database, err := New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	// Then: it is at the latest version with data intact
	version, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, migrations.Version(), version)

	e, err := database.GetEntry(1)
	require.NoError(t, err)
	assert.Equal(t, "kept", e.Title)

	require.NoError(t, database.RecordImport("cal.ics", e.Start, 1))
}

func TestMigrate_NoMigrationNeeded(t *testing.T) {
	database := newTestDB(t)

	applied, err := migrations.Migrate(database.conn)

	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}
