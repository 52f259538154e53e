package pngfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ssargent/pngme/pkg/png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T) *png.Png {
	t.Helper()
	end, err := png.NewChunk(png.MustParseChunkType("IEND"), nil)
	require.NoError(t, err)
	return png.New(end)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	image := testImage(t)

	backupPath, err := Save(path, image, Options{})
	require.NoError(t, err)
	assert.Empty(t, backupPath)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Bytes(), loaded.Bytes())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, testImage(t).Bytes(), 0600))

	_, err := Save(path, testImage(t), Options{})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSave_Backup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	original := testImage(t)
	_, err := Save(path, original, Options{})
	require.NoError(t, err)

	updated := testImage(t)
	secret, err := png.NewChunk(png.MustParseChunkType("ruSt"), []byte("secret"))
	require.NoError(t, err)
	updated.AppendChunk(secret)

	backupDir := filepath.Join(dir, "backups")
	backupPath, err := Save(path, updated, Options{Backup: true, BackupDir: backupDir})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(backupPath, filepath.Join(backupDir, "image.png.")))
	assert.True(t, strings.HasSuffix(backupPath, ".bak"))

	backedUp, err := Load(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original.Bytes(), backedUp.Bytes())

	current, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, updated.Bytes(), current.Bytes())
}

func TestSave_BackupSkippedForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.png")

	backupPath, err := Save(path, testImage(t), Options{Backup: true})
	require.NoError(t, err)
	assert.Empty(t, backupPath)
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "image.png")

	_, err := Save(path, testImage(t), Options{})
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.png"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not a png", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

		_, err := Load(path)
		assert.ErrorIs(t, err, png.ErrInvalidSignature)
		assert.Contains(t, err.Error(), "notes.txt")
	})
}
