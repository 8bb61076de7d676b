package scanner

import "github.com/cloudlet-dev/coogle/pkg/sig"

// Config describes one search.
type Config struct {
	// Query is the textual signature to search for, e.g. "int(int, char *)".
	Query string

	// Name optionally narrows results to functions whose name fuzzily
	// matches this string.
	Name string

	// Prefilter skips files that cannot contain the query's type
	// keywords before extraction runs.
	Prefilter bool

	// Aliases holds the template alias rules applied during
	// normalization, typically the builtin set plus any project extras.
	Aliases []sig.AliasRule

	// Workers is the matching parallelism (0 = NumCPU).
	Workers int
}
