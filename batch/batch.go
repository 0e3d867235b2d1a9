// Package batch decodes every UView file of a directory tree with a pool
// of workers.
package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/zhulincqu/uview"
	"github.com/zhulincqu/uview/report"
)

// Result is the outcome of decoding one file. Exactly one of File and Err
// is set.
type Result struct {
	Path string
	File *uview.File
	Err  error
}

// Find returns the regular files below dir whose extension matches ext
// (case-insensitive, e.g. ".dat"), sorted. An empty ext matches every file.
func Find(dir, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ext == "" || strings.EqualFold(filepath.Ext(path), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// Decode decodes paths with the given number of workers (runtime.NumCPU()
// when workers <= 0). Results keep the order of paths. A file failing to
// decode does not stop the others; the returned error gathers every
// failure. Files not started when ctx is done fail with ctx.Err().
func Decode(ctx context.Context, paths []string, workers int, opts ...uview.DecodeOption) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := Result{Path: paths[j]}
				if err := ctx.Err(); err != nil {
					r.Err = err
				} else {
					r.File, r.Err = uview.DecodeFile(paths[j], opts...)
				}
				results[j] = r
			}
		}()
	}
	for j := range paths {
		jobs <- j
	}
	close(jobs)
	wg.Wait()

	var err *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			err = multierror.Append(err, errors.Wrap(r.Err, r.Path))
		}
	}
	return results, err.ErrorOrNil()
}

// Export is called for every decoded file once its report is written.
type Export func(r Result) error

// Extract decodes every file with extension ext below dir and writes a
// report next to each one (see report.Path), then calls export when it is
// not nil. It returns the number of files fully processed; failures are
// gathered in the returned error.
func Extract(ctx context.Context, dir, ext string, workers int, keys []string, export Export, opts ...uview.DecodeOption) (int, error) {
	paths, err := Find(dir, ext)
	if err != nil {
		return 0, err
	}

	results, err := Decode(ctx, paths, workers, opts...)
	var merr *multierror.Error
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	var n int
	for _, r := range results {
		if r.File == nil {
			continue
		}
		if err := report.WriteFile(report.Path(r.Path), r.File, keys...); err != nil {
			merr = multierror.Append(merr, errors.Wrap(err, r.Path))
			continue
		}
		if export != nil {
			if err := export(r); err != nil {
				merr = multierror.Append(merr, errors.Wrap(err, r.Path))
				continue
			}
		}
		n++
	}
	return n, merr.ErrorOrNil()
}
