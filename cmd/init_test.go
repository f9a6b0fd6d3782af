package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesMspecsDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, "mspecs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, "mspecs/ created")
}

func TestInit_DirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "mspecs"), 0o755))

	out := runInit(t)
	assert.Contains(t, out, "mspecs/ already exists")
}

func TestInit_CreatesDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	_, err := os.Stat(filepath.Join(dir, "mspecs", "mspec.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "mspecs/mspec.db created")
}

func TestInit_DatabaseAlreadyExists(t *testing.T) {
	inTempDir(t)
	runInit(t)
	out := runInit(t)
	assert.Contains(t, out, "mspecs/mspec.db already exists")
}

func TestInit_CreatesGitignore(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "mspecs/mspec.db\n", string(data))
	assert.Contains(t, out, ".gitignore created")
	assert.Contains(t, out, "mspecs/mspec.db added to .gitignore")
}

func TestInit_AppendsToExistingGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("*.log"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*.log\nmspecs/mspec.db\n", string(data))
	assert.Contains(t, out, "mspecs/mspec.db added to .gitignore")
}

func TestInit_GitignoreEntryAlreadyPresent(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("mspecs/mspec.db\n"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "mspecs/mspec.db\n", string(data))
	assert.Contains(t, out, "mspecs/mspec.db already in .gitignore")
}
