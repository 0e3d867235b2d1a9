package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhulincqu/uview/internal/fixture"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := fixture.File{
		Width:  8,
		Height: 8,
		LeemData: fixture.LeemData(
			fixture.Field(133, "Foo", 1, 3.5),
		),
		Pixels: fixture.Ramp(8, 8),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.dat"), src.Bytes(), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.DAT"), src.Bytes(), 0644))

	err := run(&Config{Dir: dir, Ext: ".dat", Workers: 2, TIFF: true, HDR: true, Sigma: 1, SkipSize: -1, Log: &bytes.Buffer{}})
	require.NoError(t, err)

	for _, name := range []string{"a.txt", "a.tiff", "a.hdr", filepath.Join("sub", "b.txt")} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	txt, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(txt), "Time Stamp:\t"))
	assert.Contains(t, string(txt), "Foo:\t3.5 V\n")
}

func TestRunBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.dat"), []byte("UKSOFT"), 0644))

	err := run(&Config{Dir: dir, Ext: ".dat", SkipSize: -1, Log: &bytes.Buffer{}})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "bad.txt"))
}

func TestRunLogsWarningsOnce(t *testing.T) {
	dir := t.TempDir()
	src := fixture.File{
		LeemData: fixture.LeemData(
			fixture.Field(133, "Foo", 1, 3.5),
			fixture.Record(7, []byte{1, 2}),
		),
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.dat"), src.Bytes(), 0644))

	var logs bytes.Buffer
	err := run(&Config{Dir: dir, Ext: ".dat", SkipSize: -1, Log: &logs})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), "no decode rule"), logs.String())
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
}
