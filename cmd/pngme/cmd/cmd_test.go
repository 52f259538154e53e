package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ssargent/pngme/pkg/config"
	"github.com/ssargent/pngme/pkg/logging"
	"github.com/ssargent/pngme/pkg/png"
	"github.com/ssargent/pngme/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Stash.DataDir = filepath.Join(t.TempDir(), "stash")
	out := &bytes.Buffer{}
	return &app{config: cfg, logger: logging.Discard(), out: out}, out
}

func testChunk(t *testing.T, chunkType, data string) *png.Chunk {
	t.Helper()
	c, err := png.NewChunk(png.MustParseChunkType(chunkType), []byte(data))
	require.NoError(t, err)
	return c
}

// writeTestImage writes a small PNG with a header, one data chunk and an end marker
func writeTestImage(t *testing.T) string {
	t.Helper()
	image := png.New(
		testChunk(t, "IHDR", "\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"),
		testChunk(t, "IDAT", "pixels"),
		testChunk(t, "IEND", ""),
	)
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, image.Bytes(), 0644))
	return path
}

func loadImage(t *testing.T, path string) *png.Png {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	image, err := png.Parse(data)
	require.NoError(t, err)
	return image
}

func TestEncodeDecode(t *testing.T) {
	a, out := newTestApp(t)
	path := writeTestImage(t)

	require.NoError(t, runEncode(a, path, "ruSt", "hidden message", ""))
	assert.Equal(t, "The message has been encoded into the file.\n", out.String())

	image := loadImage(t, path)
	assert.Equal(t, 4, image.Len())

	out.Reset()
	require.NoError(t, runDecode(a, path, "ruSt"))
	assert.Equal(t, "The message is:\nhidden message\n", out.String())
}

func TestEncodeToOutputPath(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeTestImage(t)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "secret.png")
	require.NoError(t, runEncode(a, path, "ruSt", "hidden", outputPath))

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, unchanged)

	image := loadImage(t, outputPath)
	c, ok := image.ChunkByType("ruSt")
	require.True(t, ok)
	assert.Equal(t, []byte("hidden"), c.Data())
}

func TestEncodeErrors(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeTestImage(t)

	t.Run("Invalid chunk type", func(t *testing.T) {
		err := runEncode(a, path, "ru1t", "x", "")
		assert.ErrorIs(t, err, png.ErrInvalidCharacter)
	})

	t.Run("Missing file", func(t *testing.T) {
		err := runEncode(a, filepath.Join(t.TempDir(), "missing.png"), "ruSt", "x", "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Not a png", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("GIF89a.."), 0644))
		err := runEncode(a, bad, "ruSt", "x", "")
		assert.ErrorIs(t, err, png.ErrInvalidSignature)
	})
}

func TestDecodeNotFound(t *testing.T) {
	a, out := newTestApp(t)
	path := writeTestImage(t)

	err := runDecode(a, path, "ruSt")
	assert.ErrorIs(t, err, png.ErrChunkNotFound)
	assert.Empty(t, out.String())
}

func TestRemove(t *testing.T) {
	a, out := newTestApp(t)
	path := writeTestImage(t)
	require.NoError(t, runEncode(a, path, "ruSt", "first", ""))
	require.NoError(t, runEncode(a, path, "ruSt", "second", ""))

	out.Reset()
	require.NoError(t, runRemove(a, path, "ruSt", false))
	assert.Equal(t, "Successfully removed chunk with pattern ruSt in file "+path+".\n", out.String())

	// Only the first match goes; the change is written back.
	out.Reset()
	require.NoError(t, runDecode(a, path, "ruSt"))
	assert.Contains(t, out.String(), "second")

	require.NoError(t, runRemove(a, path, "ruSt", false))
	err := runRemove(a, path, "ruSt", false)
	assert.ErrorIs(t, err, png.ErrChunkNotFound)
	assert.Equal(t, 3, loadImage(t, path).Len())
}

func TestRemoveStashAndRestore(t *testing.T) {
	a, out := newTestApp(t)
	path := writeTestImage(t)
	require.NoError(t, runEncode(a, path, "ruSt", "keep me", ""))

	out.Reset()
	require.NoError(t, runStashList(a))
	assert.Equal(t, "The stash is empty.\n", out.String())

	out.Reset()
	require.NoError(t, runRemove(a, path, "ruSt", true))
	assert.Contains(t, out.String(), "Stashed as ")
	_, found := loadImage(t, path).ChunkByType("ruSt")
	assert.False(t, found)

	s, err := storage.Open(a.config.Stash.DataDir)
	require.NoError(t, err)
	entries, err := s.List()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.Len(t, entries, 1)
	id := entries[0].ID.String()
	assert.Equal(t, path, entries[0].Source)

	out.Reset()
	require.NoError(t, runStashList(a))
	assert.True(t, strings.HasPrefix(out.String(), id))
	assert.Contains(t, out.String(), "ruSt")

	out.Reset()
	require.NoError(t, runRestore(a, path, id))
	assert.Contains(t, out.String(), "Restored chunk ruSt")

	c, found := loadImage(t, path).ChunkByType("ruSt")
	require.True(t, found)
	assert.Equal(t, []byte("keep me"), c.Data())

	// The entry is gone once restored.
	err = runRestore(a, path, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestoreInvalidID(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeTestImage(t)

	err := runRestore(a, path, "not-a-ksuid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stash id")
}

func TestPrint(t *testing.T) {
	a, out := newTestApp(t)
	path := writeTestImage(t)

	require.NoError(t, runPrint(a, path, false))
	assert.Equal(t, "Chunk 0; Type: IHDR; Data Length: 13 Byte\n"+
		"Chunk 1; Type: IDAT; Data Length: 6 Byte\n"+
		"Chunk 2; Type: IEND; Data Length: 0 Byte\n", out.String())

	out.Reset()
	require.NoError(t, runPrint(a, path, true))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[5], "CRC: ae426082")
	assert.Contains(t, lines[5], "Critical: true")
}

func TestInit(t *testing.T) {
	a, out := newTestApp(t)
	configPath := filepath.Join(t.TempDir(), "pngme.yaml")
	stashDir := filepath.Join(t.TempDir(), "stash")

	require.NoError(t, runInit(a, configPath, stashDir, false))
	assert.FileExists(t, configPath)
	assert.Contains(t, out.String(), configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, stashDir, cfg.Stash.DataDir)
	assert.Len(t, cfg.Server.APIKey, 64)

	t.Run("Existing config without force", func(t *testing.T) {
		err := runInit(a, configPath, stashDir, false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "--force")
	})

	t.Run("Existing config with force", func(t *testing.T) {
		require.NoError(t, runInit(a, configPath, stashDir, true))
		reloaded, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.NotEqual(t, cfg.Server.APIKey, reloaded.Server.APIKey)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Explicit path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "pngme.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: debug\n"), 0600))

		cfg, err := loadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
	})

	t.Run("Missing explicit path", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("No path falls back to defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})
}

func TestRootCommand(t *testing.T) {
	path := writeTestImage(t)
	configPath := filepath.Join(t.TempDir(), "pngme.yaml")
	stashDir := filepath.Join(t.TempDir(), "stash")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0600))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", configPath, "--stash-dir", stashDir, "encode", path, "ruSt", "via cobra"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "The message has been encoded into the file.\n", out.String())

	c, ok := loadImage(t, path).ChunkByType("ruSt")
	require.True(t, ok)
	assert.Equal(t, []byte("via cobra"), c.Data())
}
