// Package coogle provides signature-based search over C and C++ sources.
//
// Coogle answers "where is a function shaped like this?" the way Hoogle
// does for Haskell: you give it a function type such as "int(int, char *)"
// and it finds declarations in a source tree whose signature matches,
// after normalizing qualifier noise, whitespace and common template
// aliases on both sides.
//
// # Basic Usage
//
// Create a searcher for a query and run it over a directory:
//
//	searcher, err := coogle.NewSearcher("int(int, int)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matches, err := searcher.Search(ctx, "./src")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range matches {
//	    fmt.Printf("%s:%d: %s %s\n", m.File, m.Line, m.Signature, m.Name)
//	}
//
// # Wildcards
//
// A '*' in an argument position matches any type:
//
//	searcher, err := coogle.NewSearcher("void(*, size_t)")
//
// # Indexes
//
// Large trees can be indexed once and searched many times:
//
//	stats, err := coogle.Index(ctx, "./src", "coogle.db")
//	matches, err := searcher.SearchIndex(ctx, "coogle.db")
package coogle

import (
	"context"
	"fmt"

	"github.com/cloudlet-dev/coogle/pkg/alias"
	"github.com/cloudlet-dev/coogle/pkg/config"
	"github.com/cloudlet-dev/coogle/pkg/enum"
	"github.com/cloudlet-dev/coogle/pkg/scanner"
	"github.com/cloudlet-dev/coogle/pkg/sig"
	"github.com/cloudlet-dev/coogle/pkg/store"
	"github.com/cloudlet-dev/coogle/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/cloudlet-dev/coogle" without subpackages.
type (
	// Declaration is one function declaration extracted from a source file.
	Declaration = types.Declaration

	// Match is a declaration whose signature satisfied a query.
	Match = types.Match

	// AliasRule rewrites a verbose template spelling to its canonical form
	// during normalization.
	AliasRule = sig.AliasRule

	// IndexStats summarizes an indexing run.
	IndexStats = scanner.IndexStats
)

// Wildcard is the query token matching any type in one argument position.
const Wildcard = sig.Wildcard

// Searcher runs one query signature against source trees or indexes.
type Searcher struct {
	query  string
	config *searcherConfig
}

// searcherConfig holds searcher configuration.
type searcherConfig struct {
	name          string
	prefilter     bool
	workers       int
	aliases       []AliasRule
	extensions    []string
	exclude       []string
	includeHidden bool
	maxFileSize   int64
	followLinks   bool
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithName narrows results to functions whose name fuzzily matches the
// given string.
func WithName(name string) Option {
	return func(c *searcherConfig) {
		c.name = name
	}
}

// WithPrefilter skips files that contain none of the query's type
// keywords before declaration extraction runs. A cheap win on large
// trees when the query names uncommon types.
func WithPrefilter() Option {
	return func(c *searcherConfig) {
		c.prefilter = true
	}
}

// WithWorkers sets the matching parallelism. Default is NumCPU.
func WithWorkers(workers int) Option {
	return func(c *searcherConfig) {
		c.workers = workers
	}
}

// WithAliases replaces the builtin template alias rules.
func WithAliases(rules []AliasRule) Option {
	return func(c *searcherConfig) {
		c.aliases = rules
	}
}

// WithExtensions overrides the default C/C++ file extension set.
func WithExtensions(exts []string) Option {
	return func(c *searcherConfig) {
		c.extensions = exts
	}
}

// WithExclude adds glob patterns for paths to skip.
func WithExclude(patterns []string) Option {
	return func(c *searcherConfig) {
		c.exclude = patterns
	}
}

// WithHidden includes dotfiles and dot-directories in the walk.
func WithHidden() Option {
	return func(c *searcherConfig) {
		c.includeHidden = true
	}
}

// WithMaxFileSize skips files larger than the given size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(c *searcherConfig) {
		c.maxFileSize = size
	}
}

// NewSearcher creates a Searcher for one query signature.
//
// By default, the searcher:
//   - Uses the builtin template alias rules
//   - Walks .c/.h/.cc/.cpp/.cxx/.hh/.hpp/.hxx files
//   - Respects .gitignore and skips hidden files
//
// The query is validated immediately; a malformed signature fails here,
// not during the walk.
func NewSearcher(query string, opts ...Option) (*Searcher, error) {
	cfg := &searcherConfig{
		aliases: alias.Builtin(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Fail fast on malformed queries
	probe := sig.NewStorage(sig.NewNormalizer(cfg.aliases))
	if _, err := probe.Parse(query); err != nil {
		return nil, err
	}

	return &Searcher{query: query, config: cfg}, nil
}

// Search walks root and returns every matching declaration, ordered by
// file and line. A .coogle.yml at root contributes extra alias rules and
// walk settings.
func (s *Searcher) Search(ctx context.Context, root string) ([]Match, error) {
	projCfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	sc, err := scanner.New(s.scannerConfig(projCfg))
	if err != nil {
		return nil, err
	}

	return sc.SearchTree(ctx, s.enumConfig(root, projCfg))
}

// SearchIndex matches the query against a previously built index
// database instead of walking sources.
func (s *Searcher) SearchIndex(ctx context.Context, dbPath string) ([]Match, error) {
	st, err := store.New(store.Config{Path: dbPath})
	if err != nil {
		return nil, err
	}
	defer st.Close()

	sc, err := scanner.New(s.scannerConfig(nil))
	if err != nil {
		return nil, err
	}

	return sc.SearchIndex(ctx, st)
}

// SearchDeclarations matches the query against declarations the caller
// already holds.
func (s *Searcher) SearchDeclarations(ctx context.Context, decls []*Declaration) ([]Match, error) {
	sc, err := scanner.New(s.scannerConfig(nil))
	if err != nil {
		return nil, err
	}
	return sc.SearchDeclarations(ctx, decls)
}

func (s *Searcher) scannerConfig(projCfg *config.Config) scanner.Config {
	aliases := s.config.aliases
	if projCfg != nil {
		aliases = append(append([]AliasRule{}, aliases...), projCfg.AliasRules()...)
	}
	return scanner.Config{
		Query:     s.query,
		Name:      s.config.name,
		Prefilter: s.config.prefilter,
		Aliases:   aliases,
		Workers:   s.config.workers,
	}
}

func (s *Searcher) enumConfig(root string, projCfg *config.Config) enum.Config {
	cfg := enum.Config{
		Root:           root,
		Extensions:     s.config.extensions,
		Exclude:        s.config.exclude,
		IncludeHidden:  s.config.includeHidden,
		MaxFileSize:    s.config.maxFileSize,
		FollowSymlinks: s.config.followLinks,
	}
	if projCfg != nil {
		if len(cfg.Extensions) == 0 {
			cfg.Extensions = projCfg.Extensions
		}
		cfg.Exclude = append(cfg.Exclude, projCfg.Exclude...)
		if cfg.MaxFileSize == 0 {
			cfg.MaxFileSize = projCfg.MaxFileSize
		}
		if projCfg.IncludeHidden {
			cfg.IncludeHidden = true
		}
	}
	return cfg
}

// Index walks root and persists every extracted declaration into the
// database at dbPath, creating it when absent. Unchanged files (same
// size and modification time) are skipped on repeat runs.
//
// Example:
//
//	stats, err := coogle.Index(ctx, "./src", "coogle.db")
//	fmt.Printf("indexed %d declarations in %d files\n",
//	    stats.Declarations, stats.Files)
func Index(ctx context.Context, root, dbPath string, opts ...Option) (IndexStats, error) {
	cfg := &searcherConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	projCfg, err := config.Load(root)
	if err != nil {
		return IndexStats{}, err
	}

	st, err := store.New(store.Config{Path: dbPath})
	if err != nil {
		return IndexStats{}, fmt.Errorf("opening index: %w", err)
	}
	defer st.Close()

	ix, err := scanner.NewIndexer(st, cfg.workers)
	if err != nil {
		return IndexStats{}, err
	}

	s := &Searcher{config: cfg}
	return ix.IndexTree(ctx, s.enumConfig(root, projCfg))
}

// BuiltinAliases returns the builtin template alias rules, for callers
// that want to extend rather than replace them.
func BuiltinAliases() []AliasRule {
	return alias.Builtin()
}
