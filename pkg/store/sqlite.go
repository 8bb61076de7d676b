package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddFile records an indexed source file.
func (s *SQLiteStore) AddFile(path string, size int64, modTime int64) error {
	_, err := s.db.Exec(`
		INSERT INTO files (path, size, mod_time) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET size = excluded.size, mod_time = excluded.mod_time
	`, path, size, modTime)
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	return nil
}

// RemoveFile drops a file and its declarations.
func (s *SQLiteStore) RemoveFile(path string) error {
	if _, err := s.db.Exec("DELETE FROM declarations WHERE file = ?", path); err != nil {
		return fmt.Errorf("deleting declarations: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM files WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

// FileUnchanged reports whether a file is already indexed with the same
// size and modification time.
func (s *SQLiteStore) FileUnchanged(path string, size int64, modTime int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM files WHERE path = ? AND size = ? AND mod_time = ?",
		path, size, modTime,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking file: %w", err)
	}
	return count > 0, nil
}

// AddDeclaration stores one extracted declaration.
func (s *SQLiteStore) AddDeclaration(d *types.Declaration) error {
	argsJSON, err := json.Marshal(d.Args)
	if err != nil {
		return fmt.Errorf("marshaling args: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR IGNORE INTO declarations (file, line, name, ret, args_json)
		VALUES (?, ?, ?, ?, ?)
	`,
		d.File,
		d.Line,
		d.Name,
		d.Ret,
		string(argsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting declaration: %w", err)
	}

	return nil
}

// Declarations retrieves all indexed declarations.
func (s *SQLiteStore) Declarations() ([]*types.Declaration, error) {
	return s.queryDeclarations(`
		SELECT file, line, name, ret, args_json
		FROM declarations
		ORDER BY file, line
	`)
}

// DeclarationsInFile retrieves the declarations indexed for one file.
func (s *SQLiteStore) DeclarationsInFile(path string) ([]*types.Declaration, error) {
	return s.queryDeclarations(`
		SELECT file, line, name, ret, args_json
		FROM declarations
		WHERE file = ?
		ORDER BY line
	`, path)
}

func (s *SQLiteStore) queryDeclarations(query string, args ...any) ([]*types.Declaration, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying declarations: %w", err)
	}
	defer rows.Close()

	var decls []*types.Declaration
	for rows.Next() {
		var d types.Declaration
		var argsJSON string

		err := rows.Scan(&d.File, &d.Line, &d.Name, &d.Ret, &argsJSON)
		if err != nil {
			return nil, fmt.Errorf("scanning declaration: %w", err)
		}

		if err := json.Unmarshal([]byte(argsJSON), &d.Args); err != nil {
			return nil, fmt.Errorf("unmarshaling args: %w", err)
		}

		decls = append(decls, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating declarations: %w", err)
	}

	return decls, nil
}

// Count returns the number of indexed declarations.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM declarations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting declarations: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
