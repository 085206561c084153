package main

import (
	"context"
	"fmt"
	"os"

	"lifeline/internal/diag"
	"lifeline/internal/driver"
	"lifeline/internal/observ"
)

// run is what resolve and diag share: one result per input file.
type run struct {
	Files  []*driver.FileResult
	Timing observ.Report
	IsDir  bool
}

func (r run) hasErrors() bool {
	for _, f := range r.Files {
		if f.HasErrors() {
			return true
		}
	}
	return false
}

// collect resolves target, a file or a directory. withUI shows the
// progress view for directories.
func collect(ctx context.Context, target string, opts driver.Options, withUI bool) (run, error) {
	st, err := os.Stat(target)
	if err != nil {
		return run{}, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !st.IsDir() {
		res, err := driver.ResolveFile(ctx, target, opts)
		if err != nil {
			return run{}, err
		}
		return run{Files: []*driver.FileResult{res}, Timing: res.Timing}, nil
	}

	var dres *driver.DirResult
	if withUI {
		dres, err = resolveDirWithUI(ctx, "resolving "+target, target, opts)
	} else {
		dres, err = driver.ResolveDir(ctx, target, opts)
	}
	if err != nil {
		return run{}, err
	}
	return run{Files: dres.Files, Timing: dres.Timing, IsDir: true}, nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
