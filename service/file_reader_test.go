package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/domain"
)

func createTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "repolens-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func createTestFile(t *testing.T, dirPath, fileName, content string) string {
	t.Helper()
	path := filepath.Join(dirPath, fileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectPythonFiles(t *testing.T) {
	dir := createTempDir(t)
	aPath := createTestFile(t, dir, "a.py", "x = 1\n")
	createTestFile(t, dir, "b.txt", "not python\n")
	cPath := createTestFile(t, dir, filepath.Join("sub", "c.py"), "y = 2\n")
	createTestFile(t, dir, filepath.Join("__pycache__", "d.py"), "z = 3\n")
	createTestFile(t, dir, filepath.Join(".hidden", "e.py"), "w = 4\n")

	reader := NewFileReader()

	files, err := reader.CollectPythonFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{aPath, cPath}, files)
}

func TestCollectPythonFilesNonRecursive(t *testing.T) {
	dir := createTempDir(t)
	aPath := createTestFile(t, dir, "a.py", "x = 1\n")
	createTestFile(t, dir, filepath.Join("sub", "c.py"), "y = 2\n")

	reader := NewFileReader()

	files, err := reader.CollectPythonFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{aPath}, files)
}

func TestCollectPythonFilesPatterns(t *testing.T) {
	dir := createTempDir(t)
	aPath := createTestFile(t, dir, "alpha.py", "x = 1\n")
	bPath := createTestFile(t, dir, "beta.py", "y = 2\n")

	reader := NewFileReader()

	included, err := reader.CollectPythonFiles([]string{dir}, true, []string{"alpha*.py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{aPath}, included)

	excluded, err := reader.CollectPythonFiles([]string{dir}, true, nil, []string{"alpha*.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{bPath}, excluded)
}

func TestCollectPythonFilesDirectPath(t *testing.T) {
	dir := createTempDir(t)
	aPath := createTestFile(t, dir, "a.py", "x = 1\n")
	txtPath := createTestFile(t, dir, "b.txt", "not python\n")

	reader := NewFileReader()

	files, err := reader.CollectPythonFiles([]string{aPath}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{aPath}, files)

	files, err = reader.CollectPythonFiles([]string{txtPath}, false, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectPythonFilesMissingPath(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.CollectPythonFiles([]string{"/nonexistent/path"}, true, nil, nil)
	assert.Error(t, err)
}

func TestIsValidPythonFile(t *testing.T) {
	reader := NewFileReader()

	assert.True(t, reader.IsValidPythonFile("module.py"))
	assert.True(t, reader.IsValidPythonFile("stubs.pyi"))
	assert.True(t, reader.IsValidPythonFile("UPPER.PY"))
	assert.False(t, reader.IsValidPythonFile("notes.txt"))
	assert.False(t, reader.IsValidPythonFile("script.pyc"))
}

func TestReadFile(t *testing.T) {
	dir := createTempDir(t)
	path := createTestFile(t, dir, "a.py", "x = 1\n")

	reader := NewFileReader()

	content, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	_, err = reader.ReadFile(filepath.Join(dir, "missing.py"))
	assert.Error(t, err)
}

func TestValidatePaths(t *testing.T) {
	dir := createTempDir(t)

	reader := NewFileReader()

	assert.NoError(t, reader.ValidatePaths([]string{dir}))

	err := reader.ValidatePaths([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)

	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeFileNotFound, de.Code)
}
