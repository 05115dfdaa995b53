package fileutils_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")

	require.NoError(t, fileutils.EnsureDirectoryExists(nested))
	assert.True(t, fileutils.DirectoryExists(nested))
	assert.NoError(t, fileutils.EnsureDirectoryExists(nested))
	assert.NoError(t, fileutils.EnsureDirectoryExists(""))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := fileutils.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWriteFile_RoundTripAndReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "expenses.json")

	require.NoError(t, fileutils.WriteFile(path, []byte("first"), 0600))
	require.NoError(t, fileutils.WriteFile(path, []byte("second"), 0600))

	data, err := fileutils.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "export.csv")

	f, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileutils.FileExists(path))
}
