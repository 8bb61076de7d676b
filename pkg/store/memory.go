package store

import (
	"sort"
	"sync"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

// fileRecord stores indexed file metadata.
type fileRecord struct {
	size    int64
	modTime int64
}

// declKey deduplicates declarations the way the SQLite backend does.
type declKey struct {
	file string
	line int
	name string
}

// MemoryStore implements Store using in-memory data structures.
// Used for tests and for one-shot searches that never touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]fileRecord
	decls map[declKey]*types.Declaration
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		files: make(map[string]fileRecord),
		decls: make(map[declKey]*types.Declaration),
	}
}

// AddFile records an indexed source file.
func (m *MemoryStore) AddFile(path string, size int64, modTime int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = fileRecord{size: size, modTime: modTime}
	return nil
}

// RemoveFile drops a file and its declarations.
func (m *MemoryStore) RemoveFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, path)
	for k := range m.decls {
		if k.file == path {
			delete(m.decls, k)
		}
	}
	return nil
}

// FileUnchanged reports whether a file is already indexed with the same
// size and modification time.
func (m *MemoryStore) FileUnchanged(path string, size int64, modTime int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.files[path]
	return exists && rec.size == size && rec.modTime == modTime, nil
}

// AddDeclaration stores one extracted declaration.
func (m *MemoryStore) AddDeclaration(d *types.Declaration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := declKey{file: d.File, line: d.Line, name: d.Name}
	if _, exists := m.decls[key]; exists {
		// Idempotent - already exists
		return nil
	}

	m.decls[key] = d
	return nil
}

// Declarations retrieves all indexed declarations.
func (m *MemoryStore) Declarations() ([]*types.Declaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Declaration, 0, len(m.decls))
	for _, d := range m.decls {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].File != result[j].File {
			return result[i].File < result[j].File
		}
		return result[i].Line < result[j].Line
	})
	return result, nil
}

// DeclarationsInFile retrieves the declarations indexed for one file.
func (m *MemoryStore) DeclarationsInFile(path string) ([]*types.Declaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*types.Declaration
	for k, d := range m.decls {
		if k.file == path {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Line < result[j].Line
	})
	return result, nil
}

// Count returns the number of indexed declarations.
func (m *MemoryStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.decls), nil
}

// Close closes the store.
// For in-memory store, this is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
