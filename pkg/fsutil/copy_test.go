package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func TestCopyFileKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "make.sh")
	writeFile(t, src, "#!/bin/sh\n", 0755)

	dst := filepath.Join(dir, "out", "make.sh")
	require.NoError(t, CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyFileIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "a", 0644)
	dest := filepath.Join(dir, "dest")
	require.NoError(t, os.Mkdir(dest, 0755))

	require.NoError(t, CopyFile(src, dest))
	assert.True(t, IsFile(filepath.Join(dest, "a.txt")))
}

func TestCopyFileMissingSource(t *testing.T) {
	err := CopyFile(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a", "b", "c.h"), "c", 0644)
	writeFile(t, filepath.Join(src, "top.c"), "top", 0644)

	dst := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "a", "b", "c.h"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
	assert.True(t, IsFile(filepath.Join(dst, "top.c")))
}

func TestRecreateEmptiesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib")
	writeFile(t, filepath.Join(dir, "stale.so"), "old", 0644)

	require.NoError(t, Recreate(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGlobDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "uc.c"), "", 0644)
	writeFile(t, filepath.Join(dir, "list.h"), "", 0644)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.c"), 0755))

	files, err := Glob(dir, "*.[ch]", "uc.c")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "uc.c"), filepath.Join(dir, "list.h")}, files)
}

func TestCopyTreeFuncSkips(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "core.py"), "", 0644)
	writeFile(t, filepath.Join(src, "__pycache__", "core.pyc"), "", 0644)

	dst := filepath.Join(t.TempDir(), "copy")
	err := CopyTreeFunc(src, dst, func(rel string, d fs.DirEntry) bool {
		return d.IsDir() && d.Name() == "__pycache__"
	})
	require.NoError(t, err)

	assert.True(t, IsFile(filepath.Join(dst, "core.py")))
	assert.NoDirExists(t, filepath.Join(dst, "__pycache__"))
}
