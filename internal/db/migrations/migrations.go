package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed 001_initial_schema.sql
var initialSchemaSQL string

//go:embed 002_imports.sql
var importsSQL string

// All contains all migrations in order. Each migration's index+1 is its version number.
var All = []string{
	initialSchemaSQL, // version 1
	importsSQL,       // version 2
}

// Version is the schema version after all migrations have run.
func Version() int {
	return len(All)
}

// Migrate runs all pending migrations on the database.
// It reads the current version from PRAGMA user_version and runs every
// migration at or past it, each in its own transaction. If a migration
// fails, it rolls back and stops.
func Migrate(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	applied := 0
	for i := version; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("failed to set schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
		applied++
	}

	return applied, nil
}
