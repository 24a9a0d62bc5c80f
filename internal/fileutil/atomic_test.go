package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "report.txt")

	require.NoError(t, WriteFileAtomic(testFile, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(testFile, []byte("second"), 0o600))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "x.txt"), []byte("x"), 0o644)
	require.ErrorContains(t, err, "failed to create temp file")
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONAtomic(path, map[string]int{"games": 3}, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded["games"])

	err = WriteJSONAtomic(path, make(chan int), 0o644)
	require.ErrorContains(t, err, "failed to encode")
}
