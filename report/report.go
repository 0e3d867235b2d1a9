// Package report writes decoded UView metadata as plain text, one
// "name:<TAB>value [unit]" line per field after a leading time stamp line.
package report

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhulincqu/uview"
)

// TimeLayout is the layout of the time stamp line.
const TimeLayout = "2006-01-02 15:04:05"

// Write writes the report of f to w. Without keys every field is written
// in decode order. Requested keys missing from the file are skipped, as
// are fields that are neither integers nor numbers (text, flags, empty
// values).
func Write(w io.Writer, f *uview.File, keys ...string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Time Stamp:\t" + f.Timestamp().Format(TimeLayout) + "\n")

	write := func(name string, v uview.Value) bool {
		if line, ok := Line(name, v); ok {
			bw.WriteString(line + "\n")
		}
		return true
	}
	if len(keys) == 0 {
		f.Metadata.Each(write)
	}
	for _, k := range keys {
		if v, ok := f.Metadata.Get(k); ok {
			write(k, v)
		}
	}
	return errors.Wrap(bw.Flush(), "could not write report")
}

// Line formats one report line. It returns false for values the report
// has no representation for.
func Line(name string, v uview.Value) (string, bool) {
	switch v.Kind {
	case uview.KindInt, uview.KindQuantity:
		return name + ":\t" + v.String(), true
	default:
		return "", false
	}
}

// Path returns the report path of a data file: the same path with a
// ".txt" extension.
func Path(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".txt"
}

// WriteFile writes the report of f to path.
func WriteFile(path string, f *uview.File, keys ...string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create report")
	}
	if err = Write(out, f, keys...); err != nil {
		out.Close()
		return err
	}
	return errors.Wrap(out.Close(), "could not close report")
}
