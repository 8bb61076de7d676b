package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createFilesTable(db); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}

	if err := createDeclarationsTable(db); err != nil {
		return fmt.Errorf("creating declarations table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createFilesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY NOT NULL,
			size INTEGER NOT NULL,
			mod_time INTEGER NOT NULL
		)
	`)
	return err
}

func createDeclarationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS declarations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file TEXT NOT NULL REFERENCES files(path),
			line INTEGER NOT NULL,
			name TEXT NOT NULL,
			ret TEXT NOT NULL,
			args_json TEXT NOT NULL,
			UNIQUE(file, line, name)
		)
	`)
	if err != nil {
		return err
	}

	// Index for efficient lookup by file when re-indexing
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_declarations_file ON declarations(file)
	`)
	return err
}
