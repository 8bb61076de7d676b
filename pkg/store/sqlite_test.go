package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "index.db")

	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.AddFile("a.c", 10, 100))
	require.NoError(t, s.AddDeclaration(&types.Declaration{
		Name: "add", Ret: "int", Args: []string{"int", "int"}, File: "a.c", Line: 4,
	}))
	require.NoError(t, s.Close())

	s, err = NewSQLite(dbPath)
	require.NoError(t, err)
	defer s.Close()

	all, err := s.Declarations()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "add", all[0].Name)
	assert.Equal(t, []string{"int", "int"}, all[0].Args)

	unchanged, err := s.FileUnchanged("a.c", 10, 100)
	require.NoError(t, err)
	assert.True(t, unchanged)
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
