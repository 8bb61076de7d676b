package enum

import (
	"context"
)

// Enumerator discovers source files to inspect.
type Enumerator interface {
	// Enumerate yields files from the source.
	// The callback receives the file path and its content.
	Enumerate(ctx context.Context, callback func(path string, content []byte) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// Extensions is the set of file extensions to include (with leading
	// dot, e.g. ".c"). Empty means the default C/C++ set.
	Extensions []string

	// Exclude holds glob patterns matched against paths relative to Root.
	Exclude []string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool
}

// DefaultExtensions covers the C and C++ source and header suffixes
// recognized when Config.Extensions is empty.
var DefaultExtensions = []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hh", ".hpp", ".hxx"}
