package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chris/planner/internal/db/migrations"
	"github.com/chris/planner/pkg/models"
)

const defaultDBPath = "~/.local/share/planner/planner.db"

// ErrNotInitialized is returned when opening a database that has no schema.
var ErrNotInitialized = errors.New("database not initialized, run: planner init-db")

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Options configures database connection behavior
type Options struct {
	// SkipSchemaCheck opens the database without verifying schema exists.
	// Use this for init-db command which creates the schema.
	SkipSchemaCheck bool
}

// New opens an initialized database, applying any pending migrations
func New(dbPath string) (*DB, error) {
	return NewWithOptions(dbPath, Options{})
}

// DefaultPath returns the database location used when none is configured
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local/share")
	}
	return filepath.Join(dataDir, "planner/planner.db"), nil
}

// NewWithOptions creates a new database connection with configurable options
func NewWithOptions(dbPath string, opts Options) (*DB, error) {
	if dbPath == "" || dbPath == defaultDBPath {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	} else if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout first, before any other operations that might need write locks
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if !opts.SkipSchemaCheck {
		var version int
		if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to check schema version: %w", err)
		}
		if version == 0 {
			conn.Close()
			return nil, ErrNotInitialized
		}
		if _, err := migrations.Migrate(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// NewForTesting creates a new database with schema initialized.
// This is a convenience function for tests.
func NewForTesting(dbPath string) (*DB, error) {
	db, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	if err != nil {
		return nil, err
	}

	if _, err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema creates or upgrades the schema.
// Returns true if the schema was created, false if it already existed.
func (db *DB) InitSchema() (bool, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return false, fmt.Errorf("failed to check schema version: %w", err)
	}

	if _, err := migrations.Migrate(db.conn); err != nil {
		return false, err
	}
	return version == 0, nil
}

// SchemaVersion returns the database's PRAGMA user_version
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to check schema version: %w", err)
	}
	return version, nil
}

const entrySelectColumns = `
	id, uid, kind, title, color, start_ts, end_ts, all_day, completed
	FROM entries
`

func scanEntry(scanner interface{ Scan(...any) error }) (*models.Entry, error) {
	e := &models.Entry{}
	var kind string
	var start, end int64
	var allDay, completed int
	err := scanner.Scan(&e.ID, &e.UID, &kind, &e.Title, &e.Color, &start, &end, &allDay, &completed)
	if err != nil {
		return nil, err
	}
	e.Kind = models.Kind(kind)
	e.Start = time.Unix(start, 0)
	e.End = time.Unix(end, 0)
	e.AllDay = allDay != 0
	e.Completed = completed != 0
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertEntry stores a new entry and returns its ID. An empty UID or kind is
// rejected; NewEntry fills both.
func (db *DB) InsertEntry(e *models.Entry) (int64, error) {
	if e.UID == "" {
		return 0, errors.New("entry has no uid")
	}
	if !e.Kind.Valid() {
		return 0, fmt.Errorf("invalid entry kind %q", e.Kind)
	}

	result, err := db.conn.Exec(`
		INSERT INTO entries (uid, kind, title, color, start_ts, end_ts, all_day, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UID,
		string(e.Kind),
		e.Title,
		e.Color,
		e.Start.Unix(),
		e.End.Unix(),
		boolInt(e.AllDay),
		boolInt(e.Completed),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	e.ID = id
	return id, nil
}

// UpsertEntry inserts e or, when an entry with the same UID exists, replaces
// its fields. Used for re-importing calendars.
func (db *DB) UpsertEntry(e *models.Entry) (int64, error) {
	if e.UID == "" {
		return 0, errors.New("entry has no uid")
	}
	if !e.Kind.Valid() {
		return 0, fmt.Errorf("invalid entry kind %q", e.Kind)
	}

	_, err := db.conn.Exec(`
		INSERT INTO entries (uid, kind, title, color, start_ts, end_ts, all_day, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			color = excluded.color,
			start_ts = excluded.start_ts,
			end_ts = excluded.end_ts,
			all_day = excluded.all_day,
			completed = excluded.completed`,
		e.UID,
		string(e.Kind),
		e.Title,
		e.Color,
		e.Start.Unix(),
		e.End.Unix(),
		boolInt(e.AllDay),
		boolInt(e.Completed),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert entry: %w", err)
	}

	var id int64
	if err := db.conn.QueryRow("SELECT id FROM entries WHERE uid = ?", e.UID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get entry id: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetEntry retrieves an entry by ID
func (db *DB) GetEntry(id int64) (*models.Entry, error) {
	e, err := scanEntry(db.conn.QueryRow("SELECT "+entrySelectColumns+" WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes an entry. It reports whether a row was deleted.
func (db *DB) DeleteEntry(id int64) (bool, error) {
	result, err := db.conn.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// SetCompleted marks an entry done or not done
func (db *DB) SetCompleted(id int64, completed bool) error {
	result, err := db.conn.Exec("UPDATE entries SET completed = ? WHERE id = ?", boolInt(completed), id)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to update entry: %w", sql.ErrNoRows)
	}
	return nil
}

// CountEntries returns the total number of entries in the database
func (db *DB) CountEntries() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// GetEntriesByRange returns entries overlapping [start, end), ordered by start
// then ID. Zero-length entries count when their instant falls in the range.
func (db *DB) GetEntriesByRange(start, end time.Time) ([]models.Entry, error) {
	rows, err := db.conn.Query("SELECT "+entrySelectColumns+`
		WHERE start_ts < ? AND (end_ts > ? OR start_ts >= ?)
		ORDER BY start_ts ASC, id ASC`,
		end.Unix(), start.Unix(), start.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries by range: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

// RecordImport logs that count entries were imported from source
func (db *DB) RecordImport(source string, at time.Time, count int) error {
	_, err := db.conn.Exec(
		"INSERT INTO imports (source, imported_at, entry_count) VALUES (?, ?, ?)",
		source, at.Unix(), count,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// LastImport returns when source was last imported. ok is false if never.
func (db *DB) LastImport(source string) (at time.Time, count int, ok bool, err error) {
	var ts int64
	err = db.conn.QueryRow(`
		SELECT imported_at, entry_count FROM imports
		WHERE source = ?
		ORDER BY imported_at DESC, id DESC
		LIMIT 1`, source).Scan(&ts, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, 0, false, nil
	}
	if err != nil {
		return time.Time{}, 0, false, fmt.Errorf("failed to get last import: %w", err)
	}
	return time.Unix(ts, 0), count, true, nil
}

// TableExists checks if the entries table exists
func (db *DB) TableExists() (bool, error) {
	var name string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='entries'`).Scan(&name)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return true, nil
}

// GetTableSchema returns the columns of the entries table
func (db *DB) GetTableSchema() ([]map[string]any, error) {
	rows, err := db.conn.Query("PRAGMA table_info(entries)")
	if err != nil {
		return nil, fmt.Errorf("failed to get table schema: %w", err)
	}
	defer rows.Close()

	var schema []map[string]any
	for rows.Next() {
		var name, colType string
		var placeholder any
		if err := rows.Scan(&placeholder, &name, &colType, &placeholder, &placeholder, &placeholder); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}

		schema = append(schema, map[string]any{
			"name": name,
			"type": colType,
		})
	}

	return schema, nil
}
