package coogle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestSearcher_Search(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "math.c", "int add(int a, int b) { return a + b; }\nint sub(int a, int b);\ndouble half(double x);\n")

	searcher, err := NewSearcher("int(int, int)")
	require.NoError(t, err)

	matches, err := searcher.Search(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "add", matches[0].Name)
	assert.Equal(t, "sub", matches[1].Name)
	assert.Equal(t, 2, matches[1].Line)
}

func TestSearcher_ProjectConfigAliases(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "names.cpp", "MyString render(int n);\n")
	writeFile(t, root, ".coogle.yml", "aliases:\n  - verbose: \"MyString\"\n    canonical: \"std::string\"\n")

	// MyString<...> would be the template form; plain identifiers are not
	// rewritten, so search for the original spelling still works.
	searcher, err := NewSearcher("MyString(int)")
	require.NoError(t, err)

	matches, err := searcher.Search(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "render", matches[0].Name)
}

func TestSearcher_MalformedQuery(t *testing.T) {
	_, err := NewSearcher("no parens here")
	assert.Error(t, err)
}

func TestIndexAndSearchIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "io.c", "void flush(void);\nint read_byte(void);\n")
	dbPath := filepath.Join(t.TempDir(), "coogle.db")

	stats, err := Index(context.Background(), root, dbPath)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 2, stats.Declarations)

	searcher, err := NewSearcher("void()")
	require.NoError(t, err)

	matches, err := searcher.SearchIndex(context.Background(), dbPath)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "flush", matches[0].Name)
}

func TestSearcher_Wildcard(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f.c", "int a(char *s);\nint b(double d);\nvoid c(int n);\n")

	searcher, err := NewSearcher("int(*)", WithName("a"))
	require.NoError(t, err)

	matches, err := searcher.Search(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Name)
}
