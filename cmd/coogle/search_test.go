package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudlet-dev/coogle"
)

func resetSearchFlags() {
	searchName = ""
	searchPrefilter = false
	searchDB = ""
	searchIncludeHidden = false
	searchMaxFileSize = 10 * 1024 * 1024
	searchWorkers = 0
	searchAliasFile = ""
	searchExclude = nil
	searchFormat = "human"
	searchColor = "never"
}

func TestRunSearch(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "math.c"),
		[]byte("int add(int a, int b) { return a + b; }\nint sub(int a, int b);\n"), 0644)
	require.NoError(t, err)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetSearchFlags()

	err = runSearch(cmd, []string{tmpDir, "int(int, int)"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "add")
	assert.Contains(t, output, "sub")
	assert.Contains(t, output, "math.c:1")
	assert.Contains(t, output, "2 matches")
}

func TestRunSearchNoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "f.c"), []byte("void g(void);\n"), 0644)
	require.NoError(t, err)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetSearchFlags()

	err = runSearch(cmd, []string{tmpDir, "int(int)"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matches")
}

func TestRunSearchJSON(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "f.c"), []byte("int neg(int n);\n"), 0644)
	require.NoError(t, err)

	var buf, errBuf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&errBuf)

	resetSearchFlags()
	searchFormat = "json"

	err = runSearch(cmd, []string{tmpDir, "int(int)"})
	require.NoError(t, err)

	assert.Contains(t, errBuf.String(), "1 matches")

	var matches []coogle.Match
	require.NoError(t, json.Unmarshal(buf.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "neg", matches[0].Name)
	assert.Equal(t, 1, matches[0].Line)
}

func TestRunSearchInvalidTarget(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetSearchFlags()

	err := runSearch(cmd, []string{"/nonexistent/path", "int(int)"})
	assert.Error(t, err, "should error on nonexistent target")
}

func TestRunSearchMalformedQuery(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetSearchFlags()

	err := runSearch(cmd, []string{t.TempDir(), "not a signature"})
	assert.Error(t, err, "should error on malformed query")
}

func TestRunSearchWithDB(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "f.c"), []byte("int neg(int n);\n"), 0644)
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "coogle.db")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	// Build the index first
	indexDB = dbPath
	indexIncludeHidden = false
	indexMaxFileSize = 10 * 1024 * 1024
	indexWorkers = 0
	require.NoError(t, runIndex(cmd, []string{tmpDir}))
	assert.Contains(t, buf.String(), "1 declarations in 1 files")

	// Then search it without a real target
	buf.Reset()
	resetSearchFlags()
	searchDB = dbPath

	err = runSearch(cmd, []string{"ignored", "int(int)"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "neg")
}
