package unarchiver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "archive.zip")
	writeZip(t, zipPath, sample, "")

	// content wins over a misleading extension
	renamed := filepath.Join(dir, "archive.bin")
	require.NoError(t, os.Rename(zipPath, renamed))
	format, err := Detect(renamed)
	require.NoError(t, err)
	assert.Equal(t, FormatZip, format)

	gz := filepath.Join(dir, "data.gz")
	require.NoError(t, os.WriteFile(gz, compress(t, FormatGzip, []byte("x")), 0o644))
	format, err = Detect(gz)
	require.NoError(t, err)
	assert.Equal(t, FormatGzip, format)

	lz := filepath.Join(dir, "data.lz4")
	require.NoError(t, os.WriteFile(lz, compress(t, FormatLZ4, []byte("x")), 0o644))
	format, err = Detect(lz)
	require.NoError(t, err)
	assert.Equal(t, FormatLZ4, format)

	text := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(text, []byte("not an archive at all"), 0o644))
	_, err = Detect(text)
	require.ErrorIs(t, err, ErrNotArchive)
}

func TestByExtension(t *testing.T) {
	t.Parallel()
	assert.Equal(t, FormatZip, ByExtension("A.ZIP"))
	assert.Equal(t, FormatGzip, ByExtension("bundle.tar.gz"))
	assert.Equal(t, FormatZstd, ByExtension("bundle.tzst"))
	assert.Equal(t, FormatUnknown, ByExtension("photo.jpg"))
}

func TestExtensions(t *testing.T) {
	t.Parallel()
	exts := Extensions()
	assert.Contains(t, exts, ".zip")
	assert.Contains(t, exts, ".gz")
	for _, ext := range exts {
		assert.NotEqual(t, FormatUnknown, ByExtension("file"+ext), ext)
	}
}

func TestFormat_Stream(t *testing.T) {
	t.Parallel()
	assert.False(t, FormatZip.Stream())
	assert.False(t, FormatTar.Stream())
	assert.True(t, FormatXZ.Stream())
	assert.Equal(t, "zstd", FormatZstd.String())
	assert.Equal(t, "unknown", Format(99).String())
}
