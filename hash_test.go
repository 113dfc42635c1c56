package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSourceHash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(dir, "sub", "util.go"), "package sub\n")

	first, err := sourceHash(dir)
	require.NoError(t, err)
	again, err := sourceHash(dir)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Len(t, first, 64)

	// non-Go files are ignored
	writeFile(t, filepath.Join(dir, "README.md"), "notes\n")
	readme, err := sourceHash(dir)
	require.NoError(t, err)
	assert.Equal(t, first, readme)

	writeFile(t, filepath.Join(dir, "sub", "util.go"), "package sub\n\nconst x = 1\n")
	changed, err := sourceHash(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestSourceHash_Rename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package main\n")
	before, err := sourceHash(dir)
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")))
	after, err := sourceHash(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestSourceHash_MissingDir(t *testing.T) {
	_, err := sourceHash(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
