package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhulincqu/uview"
	"github.com/zhulincqu/uview/internal/fixture"
	"github.com/zhulincqu/uview/report"
)

func decoded(t *testing.T) *uview.File {
	t.Helper()
	src := fixture.File{
		Width:  2,
		Height: 2,
		Ticks:  uint64(1587660723+11644473600) * 10000000,
		LeemData: fixture.LeemData(
			fixture.Field(11, "Start Voltage", 1, 3.5),
			fixture.Record(104, fixture.Float(0.25), []byte{255, 0}),
			fixture.Record(233, []byte("Title\x00")),
			fixture.Record(110, []byte("LEED\x00"), fixture.Float(1)),
		),
	}
	f, err := uview.DecodeBytes(src.Bytes())
	require.NoError(t, err)
	return f
}

func TestWriteSelectedKeys(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, decoded(t), "width", "Start Voltage", "Camera Exposure", "Average Images", "Image Title", "LEED", "FOV", "missing")
	require.NoError(t, err)

	assert.Equal(t, "Time Stamp:\t2020-04-23 16:52:03\n"+
		"width:\t2\n"+
		"Start Voltage:\t3.5 V\n"+
		"Camera Exposure:\t0.25 s\n"+
		"Average Images:\t255\n", buf.String())
}

func TestWriteAllKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, decoded(t)))

	out := buf.String()
	assert.Contains(t, out, "Time Stamp:\t2020-04-23 16:52:03\n")
	assert.Contains(t, out, "bitsperpix:\t16\n")
	assert.Contains(t, out, "FOV cal. factor:\t1\n")
	assert.NotContains(t, out, "id:")
	assert.NotContains(t, out, "Image Title")
}

func TestLine(t *testing.T) {
	for _, tc := range []struct {
		v    uview.Value
		line string
		ok   bool
	}{
		{uview.Int(-4), "k:\t-4", true},
		{uview.Quantity(float64(float32(0.2)), "s"), "k:\t0.2 s", true},
		{uview.Quantity(1.5e-9, "mbar"), "k:\t1.5e-09 mbar", true},
		{uview.Number(1234567), "k:\t1.23457e+06", true},
		{uview.Bool(true), "", false},
		{uview.None(), "", false},
		{uview.Text("x"), "", false},
	} {
		line, ok := report.Line("k", tc.v)
		assert.Equal(t, tc.ok, ok)
		assert.Equal(t, tc.line, line)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := report.Path(filepath.Join(dir, "LEED.dat"))
	assert.Equal(t, filepath.Join(dir, "LEED.txt"), path)

	require.NoError(t, report.WriteFile(path, decoded(t), "height"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Time Stamp:\t2020-04-23 16:52:03\nheight:\t2\n", string(b))

	assert.Error(t, report.WriteFile(filepath.Join(dir, "no", "such", "dir.txt"), decoded(t)))
}
