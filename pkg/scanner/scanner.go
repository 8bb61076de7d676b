package scanner

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/cloudlet-dev/coogle/pkg/enum"
	"github.com/cloudlet-dev/coogle/pkg/inspect"
	"github.com/cloudlet-dev/coogle/pkg/sig"
	"github.com/cloudlet-dev/coogle/pkg/store"
	"github.com/cloudlet-dev/coogle/pkg/types"
	"golang.org/x/sync/errgroup"
)

// declBatchSize is how many indexed declarations a worker takes at once
// when searching a database instead of a source tree.
const declBatchSize = 256

// Scanner matches a parsed query signature against declarations pulled
// from source trees or from a declaration index.
type Scanner struct {
	cfg     Config
	pre     *inspect.Prefilter
	workers chan *worker
}

// worker holds the per-goroutine matching state. Signatures are views
// into the worker's private arena, so nothing here may be shared.
type worker struct {
	storage   *sig.Storage // candidate signatures, reset after every file
	queryStor *sig.Storage // owns the query views, never reset
	query     sig.Signature
	inspector *inspect.Inspector
}

// New creates a Scanner for one query. The query is parsed up front so
// malformed input fails before any file is touched.
func New(cfg Config) (*Scanner, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	s := &Scanner{
		cfg:     cfg,
		workers: make(chan *worker, cfg.Workers),
	}

	for i := 0; i < cfg.Workers; i++ {
		w, err := s.newWorker()
		if err != nil {
			return nil, err
		}
		s.workers <- w
	}

	if cfg.Prefilter {
		// Any worker's query copy serves for keyword extraction.
		w := <-s.workers
		args := make([]string, len(w.query.Args))
		for i, a := range w.query.Args {
			args[i] = string(a)
		}
		s.pre = inspect.NewPrefilter(inspect.QueryKeywords(string(w.query.Ret), args))
		s.workers <- w
	}

	return s, nil
}

// newWorker parses the query into a private storage. Views cannot cross
// arenas, so every worker carries its own copy.
func (s *Scanner) newWorker() (*worker, error) {
	ins, err := inspect.New()
	if err != nil {
		return nil, err
	}

	norm := sig.NewNormalizer(s.cfg.Aliases)
	queryStor := sig.NewStorage(norm)
	query, err := queryStor.Parse(s.cfg.Query)
	if err != nil {
		return nil, err
	}

	return &worker{
		storage:   sig.NewStorage(sig.NewNormalizer(s.cfg.Aliases)),
		queryStor: queryStor,
		query:     query,
		inspector: ins,
	}, nil
}

// SearchTree walks a source tree and reports every declaration matching
// the query. Files are read and matched in parallel; results are ordered
// by file and line.
func (s *Scanner) SearchTree(ctx context.Context, enumCfg enum.Config) ([]types.Match, error) {
	e := enum.NewFilesystemEnumerator(enumCfg)

	var mu sync.Mutex
	var results []types.Match

	err := e.Enumerate(ctx, func(path string, content []byte) error {
		if !s.pre.Accepts(content) {
			return nil
		}

		w := <-s.workers
		hits := w.searchFile(path, content, s.cfg.Name)
		s.workers <- w

		if len(hits) > 0 {
			mu.Lock()
			results = append(results, hits...)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortMatches(results)
	return results, nil
}

// SearchIndex matches the query against a previously built declaration
// index instead of re-walking sources.
func (s *Scanner) SearchIndex(ctx context.Context, st store.Store) ([]types.Match, error) {
	decls, err := st.Declarations()
	if err != nil {
		return nil, err
	}
	return s.SearchDeclarations(ctx, decls)
}

// SearchDeclarations matches the query against an in-memory declaration
// list, fanning batches out across the workers.
func (s *Scanner) SearchDeclarations(ctx context.Context, decls []*types.Declaration) ([]types.Match, error) {
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []*types.Declaration)

	g.Go(func() error {
		defer close(batches)
		for start := 0; start < len(decls); start += declBatchSize {
			end := start + declBatchSize
			if end > len(decls) {
				end = len(decls)
			}
			select {
			case batches <- decls[start:end]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	var results []types.Match

	for i := 0; i < cap(s.workers); i++ {
		g.Go(func() error {
			w := <-s.workers
			defer func() { s.workers <- w }()

			for batch := range batches {
				hits := w.matchDecls(batch, s.cfg.Name)
				if len(hits) > 0 {
					mu.Lock()
					results = append(results, hits...)
					mu.Unlock()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortMatches(results)
	return results, nil
}

// searchFile extracts declarations from one file and matches each against
// the worker's query copy. Matches are copied out of the arena (the
// formatted signature is an owned string) before the storage is reset.
func (w *worker) searchFile(path string, content []byte, nameFilter string) []types.Match {
	return w.match(w.inspector.File(path, content), nameFilter)
}

// matchDecls matches declarations that were loaded from an index.
func (w *worker) matchDecls(decls []*types.Declaration, nameFilter string) []types.Match {
	flat := make([]types.Declaration, len(decls))
	for i, d := range decls {
		flat[i] = *d
	}
	return w.match(flat, nameFilter)
}

func (w *worker) match(decls []types.Declaration, nameFilter string) []types.Match {
	defer w.storage.Reset()

	var out []types.Match
	for _, d := range decls {
		if nameFilter != "" && len(fuzzy.Find(nameFilter, []string{d.Name})) == 0 {
			continue
		}

		cand := w.storage.Build(d.Ret, d.Args)
		if !sig.Matches(&w.query, &cand) {
			continue
		}

		out = append(out, types.Match{
			Declaration: d,
			Signature:   sig.Format(&cand),
		})
	}
	return out
}

// sortMatches orders results by file then line so parallel runs are
// deterministic.
func sortMatches(matches []types.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].File != matches[j].File {
			return matches[i].File < matches[j].File
		}
		return matches[i].Line < matches[j].Line
	})
}
