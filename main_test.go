package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexmullins/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points the config lookup at an empty directory
func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("HOME", dir)
}

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRun_HelpShowsAllCommands(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := Run([]string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	for _, cmd := range []string{"extract", "formats", "gui"} {
		assert.Contains(t, stdout.String(), cmd, "help should mention %s", cmd)
	}
}

func TestRun_NoArgs(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := Run(nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Formats(t *testing.T) {
	isolateConfig(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	require.NoError(t, Run([]string{"formats"}, stdout, stderr))
	assert.Contains(t, stdout.String(), ".zip")
	assert.Contains(t, stdout.String(), ".tgz")
}

func TestRun_GUI(t *testing.T) {
	isolateConfig(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	require.NoError(t, Run([]string{"gui"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "./cmd/gui")
}

func TestRun_Extract(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.zip")
	second := filepath.Join(dir, "second.zip")
	writeTestZip(t, first, map[string]string{"a.txt": "alpha"})
	writeTestZip(t, second, map[string]string{"b/b.txt": "beta"})
	out := t.TempDir()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := Run([]string{"extract", "--dest", out, first, second}, stdout, stderr)
	require.NoError(t, err, stderr.String())

	assert.FileExists(t, filepath.Join(out, "a.txt"))
	assert.FileExists(t, filepath.Join(out, "b", "b.txt"))
	assert.Contains(t, stdout.String(), "File successfully unarchived!")
	assert.Contains(t, stdout.String(), "1. first.zip")
	assert.Contains(t, stdout.String(), "2. second.zip")
}

func TestRun_ExtractPartialFailure(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zip")
	writeTestZip(t, good, map[string]string{"a.txt": "alpha"})
	missing := filepath.Join(dir, "missing.zip")
	out := t.TempDir()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := Run([]string{"extract", "-d", out, missing, good}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 archives failed")

	assert.Contains(t, stdout.String(), "File is not readable.")
	assert.Contains(t, stdout.String(), "1. good.zip")
	assert.NotContains(t, stdout.String(), "missing.zip\n")
}

func TestRun_ExtractBadDestination(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	writeTestZip(t, archive, map[string]string{"a.txt": "alpha"})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := Run([]string{"extract", "--dest", filepath.Join(dir, "nope"), archive}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Folder is not writable.")
}

func TestRun_ExtractMaxSize(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	archive := filepath.Join(dir, "big.zip")
	writeTestZip(t, archive, map[string]string{"big.txt": string(bytes.Repeat([]byte("x"), 8192))})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := Run([]string{"extract", "--max-size", "1K", "--dest", t.TempDir(), archive}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Failed to unarchive file")

	err = Run([]string{"extract", "--max-size", "lots", "--dest", t.TempDir(), archive}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --max-size")
}
