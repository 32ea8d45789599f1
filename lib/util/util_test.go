package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHomeReturnsPath(t *testing.T) {
	assert.NotEmpty(t, UserHome())
}

func TestUserHomeHonoursHOME(t *testing.T) {
	t.Setenv("HOME", "/tmp/gn-home")
	assert.Equal(t, "/tmp/gn-home", UserHome())
}

func TestCheckFileExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/file.txt", []byte("x"), 0o644))

	assert.True(t, CheckFileExists(fs, "/a/file.txt"))
	assert.True(t, CheckFileExists(fs, "/a"))
	assert.False(t, CheckFileExists(fs, "/a/missing.txt"))
}

func TestIsEmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/full/entry", []byte("x"), 0o644))

	assert.True(t, IsEmptyDir(fs, "/empty"))
	assert.True(t, IsEmptyDir(fs, "/missing"))
	assert.False(t, IsEmptyDir(fs, "/full"))
}

func TestCopyDirectoryRecursively(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.xml", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/nested/b.xml", []byte("b"), 0o644))

	require.NoError(t, CopyDirectoryOrFile(fs, "/src", "/dst"))

	data, err := afero.ReadFile(fs, "/dst/a.xml")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	data, err = afero.ReadFile(fs, "/dst/nested/b.xml")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestCopyNeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.xml", []byte("bundled"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dst/a.xml", []byte("local edit"), 0o644))

	require.NoError(t, CopyDirectoryOrFile(fs, "/src", "/dst"))

	data, err := afero.ReadFile(fs, "/dst/a.xml")
	require.NoError(t, err)
	assert.Equal(t, "local edit", string(data))
}

func TestCopySingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "catalog.xml")
	require.NoError(t, os.WriteFile(src, []byte("<catalog/>"), 0o644))
	dst := filepath.Join(dir, "config", "catalog.xml")

	require.NoError(t, CopyDirectoryOrFile(afero.NewOsFs(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<catalog/>", string(data))
}

func TestCopyMissingSource(t *testing.T) {
	err := CopyDirectoryOrFile(afero.NewMemMapFs(), "/nope", "/dst")
	assert.Error(t, err)
}
