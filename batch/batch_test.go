package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhulincqu/uview/batch"
	"github.com/zhulincqu/uview/internal/fixture"
)

// tree creates:
//
//	a.dat, b.DAT, notes.txt, sub/c.dat, sub/broken.dat
func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	write := func(name string, b []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), b, 0644))
	}
	for i, name := range []string{"a.dat", "b.DAT", filepath.Join("sub", "c.dat")} {
		f := fixture.File{
			Width:    int16(i + 1),
			Height:   2,
			LeemData: fixture.LeemData(fixture.Field(133, "Foo", 1, float32(i))),
		}
		write(name, f.Bytes())
	}
	write("notes.txt", []byte("not a dat file"))
	write(filepath.Join("sub", "broken.dat"), []byte("UKSOFT2001"))
	return dir
}

func TestFind(t *testing.T) {
	dir := tree(t)

	paths, err := batch.Find(dir, ".dat")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.dat"),
		filepath.Join(dir, "b.DAT"),
		filepath.Join(dir, "sub", "broken.dat"),
		filepath.Join(dir, "sub", "c.dat"),
	}, paths)

	all, err := batch.Find(dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = batch.Find(filepath.Join(dir, "missing"), ".dat")
	assert.Error(t, err)
}

func TestDecodeKeepsOrder(t *testing.T) {
	dir := tree(t)
	paths, err := batch.Find(dir, ".dat")
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3} {
		results, err := batch.Decode(context.Background(), paths, workers)
		require.Error(t, err)
		merr, ok := err.(*multierror.Error)
		require.True(t, ok)
		assert.Len(t, merr.Errors, 1)

		require.Len(t, results, 4)
		for i, r := range results {
			assert.Equal(t, paths[i], r.Path)
		}
		assert.Equal(t, 1, results[0].File.Header.Width)
		assert.Equal(t, 2, results[1].File.Header.Width)
		assert.Nil(t, results[2].File)
		assert.Error(t, results[2].Err)
		assert.Equal(t, 3, results[3].File.Header.Width)
	}
}

func TestDecodeCanceled(t *testing.T) {
	dir := tree(t)
	paths, err := batch.Find(dir, ".dat")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := batch.Decode(ctx, paths, 2)
	require.Error(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestExtract(t *testing.T) {
	dir := tree(t)

	n, err := batch.Extract(context.Background(), dir, ".dat", 2, []string{"width", "Foo"}, nil)
	assert.Error(t, err)
	assert.Equal(t, 3, n)

	b, err := os.ReadFile(filepath.Join(dir, "sub", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Time Stamp:\t1601-01-01 00:00:00\nwidth:\t3\nFoo:\t2 V\n", string(b))

	_, err = os.Stat(filepath.Join(dir, "sub", "broken.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractExport(t *testing.T) {
	dir := tree(t)

	var exported []string
	n, err := batch.Extract(context.Background(), dir, ".dat", 2, nil, func(r batch.Result) error {
		exported = append(exported, filepath.Base(r.Path))
		if r.File.Header.Width == 2 {
			return errors.New("export failed")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a.dat", "b.DAT", "c.dat"}, exported)

	// The report is written before the export runs.
	assert.FileExists(t, filepath.Join(dir, "b.txt"))
}
