package store

import (
	"fmt"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

// Store persists an index of extracted declarations.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, in-memory, etc.).
type Store interface {
	// AddFile records an indexed source file.
	AddFile(path string, size int64, modTime int64) error

	// RemoveFile drops a file and its declarations (used when re-indexing).
	RemoveFile(path string) error

	// FileUnchanged reports whether a file is already indexed with the
	// same size and modification time.
	FileUnchanged(path string, size int64, modTime int64) (bool, error)

	// AddDeclaration stores one extracted declaration.
	AddDeclaration(d *types.Declaration) error

	// Declarations retrieves all indexed declarations.
	Declarations() ([]*types.Declaration, error)

	// DeclarationsInFile retrieves the declarations indexed for one file.
	DeclarationsInFile(path string) ([]*types.Declaration, error)

	// Count returns the number of indexed declarations.
	Count() (int, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for in-memory database (useful for testing).
	Path string
}

// New creates a new Store.
// Currently only supports the SQLite backend.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	return NewSQLite(cfg.Path)
}
