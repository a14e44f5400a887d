package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.pdf", "a.mp3", ".hidden", "写真.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	// Already-sorted output directory and a plain subdirectory
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Documents"), 0o750))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))
	// A file that happens to share a taxonomy name is left alone too
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Music"), []byte("x"), 0o600))

	files, err := Scan(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"a.mp3", "b.pdf", "写真.jpg"}, names, "lexical order, dirs/dotfiles/category names excluded")

	for _, f := range files {
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
}

func TestScanExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.tar.gz"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o600))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "", files[0].Ext)
	assert.Equal(t, ".gz", files[1].Ext)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestScanEmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
