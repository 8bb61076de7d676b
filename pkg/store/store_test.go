package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

// backends returns every Store implementation under test.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLite(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemory(),
	}
}

func TestStore_AddAndQueryDeclarations(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddFile("src/math.c", 100, 1700000000))
			require.NoError(t, s.AddFile("src/str.c", 200, 1700000001))

			decls := []*types.Declaration{
				{Name: "add", Ret: "int", Args: []string{"int", "int"}, File: "src/math.c", Line: 3},
				{Name: "sub", Ret: "int", Args: []string{"int", "int"}, File: "src/math.c", Line: 8},
				{Name: "concat", Ret: "char *", Args: []string{"const char *", "const char *"}, File: "src/str.c", Line: 1},
			}
			for _, d := range decls {
				require.NoError(t, s.AddDeclaration(d))
			}

			count, err := s.Count()
			require.NoError(t, err)
			assert.Equal(t, 3, count)

			all, err := s.Declarations()
			require.NoError(t, err)
			require.Len(t, all, 3)
			// Ordered by file then line
			assert.Equal(t, "add", all[0].Name)
			assert.Equal(t, "sub", all[1].Name)
			assert.Equal(t, "concat", all[2].Name)
			assert.Equal(t, []string{"int", "int"}, all[0].Args)

			inFile, err := s.DeclarationsInFile("src/math.c")
			require.NoError(t, err)
			require.Len(t, inFile, 2)
			assert.Equal(t, 3, inFile[0].Line)
			assert.Equal(t, 8, inFile[1].Line)
		})
	}
}

func TestStore_AddDeclarationIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddFile("a.c", 10, 1))
			d := &types.Declaration{Name: "f", Ret: "void", File: "a.c", Line: 1}
			require.NoError(t, s.AddDeclaration(d))
			require.NoError(t, s.AddDeclaration(d))

			count, err := s.Count()
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestStore_RemoveFile(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddFile("a.c", 10, 1))
			require.NoError(t, s.AddFile("b.c", 20, 2))
			require.NoError(t, s.AddDeclaration(&types.Declaration{Name: "f", Ret: "void", File: "a.c", Line: 1}))
			require.NoError(t, s.AddDeclaration(&types.Declaration{Name: "g", Ret: "void", File: "b.c", Line: 1}))

			require.NoError(t, s.RemoveFile("a.c"))

			count, err := s.Count()
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			unchanged, err := s.FileUnchanged("a.c", 10, 1)
			require.NoError(t, err)
			assert.False(t, unchanged)
		})
	}
}

func TestStore_FileUnchanged(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddFile("a.c", 10, 100))

			unchanged, err := s.FileUnchanged("a.c", 10, 100)
			require.NoError(t, err)
			assert.True(t, unchanged)

			unchanged, err = s.FileUnchanged("a.c", 10, 200)
			require.NoError(t, err)
			assert.False(t, unchanged, "modified file should be re-indexed")

			unchanged, err = s.FileUnchanged("missing.c", 10, 100)
			require.NoError(t, err)
			assert.False(t, unchanged)
		})
	}
}

func TestStore_EmptyArgs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddFile("a.c", 10, 1))
			require.NoError(t, s.AddDeclaration(&types.Declaration{Name: "f", Ret: "void", File: "a.c", Line: 1}))

			all, err := s.Declarations()
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Empty(t, all[0].Args)
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	s, err := New(Config{Path: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
