package scanner

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/cloudlet-dev/coogle/pkg/enum"
	"github.com/cloudlet-dev/coogle/pkg/inspect"
	"github.com/cloudlet-dev/coogle/pkg/store"
)

// Indexer extracts declarations from a source tree and persists them.
type Indexer struct {
	store      store.Store
	inspectors chan *inspect.Inspector
}

// IndexStats summarizes one indexing run.
type IndexStats struct {
	Files        int `json:"files"`
	Declarations int `json:"declarations"`
	Unchanged    int `json:"unchanged"`
}

// NewIndexer creates an Indexer writing to the given store.
func NewIndexer(st store.Store, workers int) (*Indexer, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ix := &Indexer{
		store:      st,
		inspectors: make(chan *inspect.Inspector, workers),
	}
	for i := 0; i < workers; i++ {
		ins, err := inspect.New()
		if err != nil {
			return nil, err
		}
		ix.inspectors <- ins
	}
	return ix, nil
}

// IndexTree walks a source tree and records every declaration. Files
// whose size and modification time match the index are skipped.
func (ix *Indexer) IndexTree(ctx context.Context, enumCfg enum.Config) (IndexStats, error) {
	e := enum.NewFilesystemEnumerator(enumCfg)

	var mu sync.Mutex
	var stats IndexStats

	err := e.Enumerate(ctx, func(path string, content []byte) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		size := info.Size()
		modTime := info.ModTime().Unix()

		unchanged, err := ix.store.FileUnchanged(path, size, modTime)
		if err != nil {
			return err
		}
		if unchanged {
			mu.Lock()
			stats.Unchanged++
			mu.Unlock()
			return nil
		}

		// Stale declarations from a previous version of the file
		if err := ix.store.RemoveFile(path); err != nil {
			return err
		}

		ins := <-ix.inspectors
		decls := ins.File(path, content)
		ix.inspectors <- ins

		if err := ix.store.AddFile(path, size, modTime); err != nil {
			return err
		}
		for i := range decls {
			if err := ix.store.AddDeclaration(&decls[i]); err != nil {
				return err
			}
		}

		mu.Lock()
		stats.Files++
		stats.Declarations += len(decls)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return IndexStats{}, err
	}

	return stats, nil
}
