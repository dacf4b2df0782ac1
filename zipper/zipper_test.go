package zipper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestZipDirThenUnzip(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "bundle")
	writeTree(t, src, map[string]string{
		"a.txt":       "alpha",
		"sub/b.txt":   "beta",
		"sub/c/d.txt": "delta",
	})

	zipPath, err := ZipDir(src)
	require.NoError(t, err)
	assert.Equal(t, src+".zip", zipPath)

	require.NoError(t, os.RemoveAll(src))
	dir, err := Unzip(zipPath, "", true)
	require.NoError(t, err)
	assert.Equal(t, src, dir)
	assert.NoFileExists(t, zipPath)

	b, err := os.ReadFile(filepath.Join(dir, "sub", "c", "d.txt"))
	require.NoError(t, err)
	assert.Equal(t, "delta", string(b))
	b, err = os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(b))
}

func TestUnzipKeepArchive(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "keep")
	writeTree(t, src, map[string]string{"x.txt": "x"})
	zipPath, err := ZipDir(src)
	require.NoError(t, err)

	target := filepath.Join(base, "elsewhere")
	dir, err := Unzip(zipPath, target, false)
	require.NoError(t, err)
	assert.Equal(t, target, dir)
	assert.FileExists(t, zipPath)
	assert.FileExists(t, filepath.Join(target, "x.txt"))
}

func TestUnzipRejectsEscapingEntries(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../outside.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Unzip(zipPath, "", false)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(zipPath), "outside.txt"))
	assert.NoDirExists(t, ExtractDir(zipPath))
}

func TestUnzipCorruptArchiveCreatesNothing(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip"), 0644))

	_, err := Unzip(zipPath, "", true)
	assert.Error(t, err)
	assert.NoDirExists(t, ExtractDir(zipPath))
	assert.FileExists(t, zipPath)
}

func TestUnzipFailureKeepsExistingDir(t *testing.T) {
	base := t.TempDir()
	zipPath := filepath.Join(base, "evil.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("../outside.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	writeTree(t, ExtractDir(zipPath), map[string]string{"kept.txt": "kept"})

	_, err = Unzip(zipPath, "", false)
	assert.Error(t, err)
	assert.FileExists(t, filepath.Join(ExtractDir(zipPath), "kept.txt"))
}

func TestUnzipAll(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"one", "nested/two"} {
		src := filepath.Join(base, filepath.FromSlash(name))
		writeTree(t, src, map[string]string{"f.txt": name})
		_, err := ZipDir(src)
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(src))
	}

	dirs, err := UnzipAll(base, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(base, "one"),
		filepath.Join(base, "nested", "two"),
	}, dirs)
	assert.FileExists(t, filepath.Join(base, "nested", "two", "f.txt"))
	assert.NoFileExists(t, filepath.Join(base, "one.zip"))
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("a/2.zip"))
	assert.True(t, IsArchive("A.ZIP"))
	assert.False(t, IsArchive("a/zip.txt"))
	assert.Equal(t, "a/2", ExtractDir("a/2.zip"))
}
